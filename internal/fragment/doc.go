// Package fragment implements the configuration tree the composer works on
// and the base/overlay merge.
//
// Every field of a Fragment has a declared Kind:
//
//	Scalar  string, number or bool (held as a cty.Value)
//	Object  a nested Fragment; keys keep insertion order
//	List    an ordered sequence of Values
//
// Merge combines two fragments field by field: scalars from the overlay
// win, objects merge recursively, lists concatenate base first. Fields whose
// kinds disagree between the two sides produce a MergeFault.
package fragment
