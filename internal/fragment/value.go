package fragment

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
)

// Kind is the declared shape of a field.
type Kind int

const (
	KindScalar Kind = iota + 1
	KindObject
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindObject:
		return "object"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is one field of a Fragment. Construct it with the helpers below;
// the zero Value is invalid.
type Value struct {
	kind   Kind
	scalar cty.Value
	object *Fragment
	list   []Value
}

// Scalar wraps a primitive cty value. A null primitive is allowed and marks
// an explicitly empty field.
func Scalar(v cty.Value) (Value, error) {
	if !v.IsKnown() {
		return Value{}, fmt.Errorf("scalar value is not known")
	}
	if !v.Type().IsPrimitiveType() {
		return Value{}, fmt.Errorf("scalar value must be a string, number or bool, got %s", v.Type().FriendlyName())
	}
	return Value{kind: KindScalar, scalar: v}, nil
}

// String returns a string scalar.
func String(s string) Value { return Value{kind: KindScalar, scalar: cty.StringVal(s)} }

// Int returns a number scalar.
func Int(i int64) Value { return Value{kind: KindScalar, scalar: cty.NumberIntVal(i)} }

// Bool returns a bool scalar.
func Bool(b bool) Value { return Value{kind: KindScalar, scalar: cty.BoolVal(b)} }

// Null returns a null string scalar.
func Null() Value { return Value{kind: KindScalar, scalar: cty.NullVal(cty.String)} }

// Object wraps a nested fragment. A nil fragment is an empty object.
func Object(f *Fragment) Value {
	if f == nil {
		f = New()
	}
	return Value{kind: KindObject, object: f}
}

// List returns a list holding vs in order.
func List(vs ...Value) Value {
	return Value{kind: KindList, list: append([]Value(nil), vs...)}
}

// Strings returns a list of string scalars.
func Strings(ss ...string) Value {
	vs := make([]Value, len(ss))
	for i, s := range ss {
		vs[i] = String(s)
	}
	return List(vs...)
}

// Kind returns the declared kind of v.
func (v Value) Kind() Kind { return v.kind }

// Cty returns the scalar value. It is cty.NilVal for non-scalars.
func (v Value) Cty() cty.Value { return v.scalar }

// Fragment returns the nested fragment of an object value, nil otherwise.
func (v Value) Fragment() *Fragment { return v.object }

// Items returns a copy of the elements of a list value.
func (v Value) Items() []Value { return append([]Value(nil), v.list...) }

// AsString returns the Go string of a non-null string scalar.
func (v Value) AsString() (string, bool) {
	if v.kind != KindScalar || v.scalar.IsNull() || v.scalar.Type() != cty.String {
		return "", false
	}
	return v.scalar.AsString(), true
}

// AsBool returns the Go bool of a non-null bool scalar.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindScalar || v.scalar.IsNull() || v.scalar.Type() != cty.Bool {
		return false, false
	}
	return v.scalar.True(), true
}

func (v Value) clone() Value {
	switch v.kind {
	case KindObject:
		return Object(v.object.Clone())
	case KindList:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.clone()
		}
		return Value{kind: KindList, list: items}
	}
	return v
}

// Equal reports structural equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar.RawEquals(o.scalar)
	case KindObject:
		return v.object.Equal(o.object)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	}
	return true
}

// ToCty converts v into a cty value. Objects become cty objects and lists
// become tuples, so heterogeneous lists are representable.
func (v Value) ToCty() cty.Value {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindObject:
		return v.object.ToCty()
	case KindList:
		if len(v.list) == 0 {
			return cty.EmptyTupleVal
		}
		elems := make([]cty.Value, len(v.list))
		for i, item := range v.list {
			elems[i] = item.ToCty()
		}
		return cty.TupleVal(elems)
	}
	return cty.NilVal
}

// ToGo converts v into plain Go values: string, int64, float64, bool, nil,
// map[string]any and []any.
func (v Value) ToGo() any {
	switch v.kind {
	case KindScalar:
		return scalarToGo(v.scalar)
	case KindObject:
		return v.object.ToGo()
	case KindList:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.ToGo()
		}
		return out
	}
	return nil
}

func scalarToGo(v cty.Value) any {
	if v.IsNull() {
		return nil
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Bool:
		return v.True()
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return i
			}
		}
		f, _ := bf.Float64()
		return f
	}
	return nil
}
