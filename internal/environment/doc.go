// Package environment resolves the build mode from the invocation context and
// reads the fixed set of injectable variables from the process environment.
//
// It is the only package that touches environment state. Everything it
// reads is captured once in a Resolution and handed to the rest of the
// composition by value:
//
//	invocation event ──► Mode (development | production)
//	process env (+ .env) ──► VariableSet (set value or unset marker per name)
//
// Absence of a variable is not an error at resolution time. The
// missing-variable policy is applied later, when the composer asks for the
// variables to be injected (see VariableSet.Inject).
package environment
