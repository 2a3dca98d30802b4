package environment

import "slices"

// Name identifies one of the variables the composer may inject into the
// built artifact.
type Name string

const (
	APIURL               Name = "API_URL"
	AppName              Name = "APP_NAME"
	SocketURL            Name = "SOCKET_URL"
	FooterMessage        Name = "FOOTER_MESSAGE"
	StripePublishableKey Name = "STRIPE_PUBLISHABLE_KEY"
	StorageKey           Name = "STORAGE_KEY"
)

var names = []Name{APIURL, AppName, SocketURL, FooterMessage, StripePublishableKey, StorageKey}

// UnsetPlaceholder is how an unset Value renders as text.
const UnsetPlaceholder = "<unset>"

// Names returns the fixed enumeration in declaration order.
func Names() []Name {
	return slices.Clone(names)
}

// IsKnown reports whether n belongs to the enumeration.
func IsKnown(n Name) bool {
	return slices.Contains(names, n)
}

// ParseNames validates a list of variable names against the enumeration.
// Duplicates are dropped; order is preserved.
func ParseNames(raw []string) ([]Name, error) {
	var unknown []string
	out := make([]Name, 0, len(raw))
	for _, s := range raw {
		n := Name(s)
		if !IsKnown(n) {
			unknown = append(unknown, s)
			continue
		}
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownVariableFault{Names: unknown}
	}
	return out, nil
}

// Value is the resolved content of one variable: either an opaque string or
// the explicit unset marker. The zero Value is unset.
type Value struct {
	raw string
	set bool
}

// SetValue wraps a value read from the environment.
func SetValue(s string) Value { return Value{raw: s, set: true} }

// Unset returns the unset marker.
func Unset() Value { return Value{} }

// IsSet reports whether the variable was present in the environment.
func (v Value) IsSet() bool { return v.set }

// Raw returns the value and whether it was set.
func (v Value) Raw() (string, bool) { return v.raw, v.set }

func (v Value) String() string {
	if !v.set {
		return UnsetPlaceholder
	}
	return v.raw
}

// VariableSet holds one Value per enumerated Name.
type VariableSet struct {
	values map[Name]Value
}

// NewVariableSet builds a set from explicit values. Names outside the
// enumeration are rejected; enumerated names not given are unset.
func NewVariableSet(values map[Name]Value) (VariableSet, error) {
	set := VariableSet{values: make(map[Name]Value, len(names))}
	for n, v := range values {
		if !IsKnown(n) {
			return VariableSet{}, &UnknownVariableFault{Names: []string{string(n)}}
		}
		set.values[n] = v
	}
	return set, nil
}

// Get returns the value for n, unset if n was absent.
func (s VariableSet) Get(n Name) Value {
	return s.values[n]
}

// Missing returns the enumerated names that resolved to the unset marker.
func (s VariableSet) Missing() []Name {
	var out []Name
	for _, n := range names {
		if !s.values[n].IsSet() {
			out = append(out, n)
		}
	}
	return out
}

// Binding is one variable as it will be injected into the artifact.
type Binding struct {
	Name  Name
	Value Value
}

// Inject returns the bindings for the requested names under the
// missing-variable policy of mode. In Development an absent variable is
// bound to the unset marker; in Production any absent variable fails the
// whole injection with a MissingVariableFault.
func (s VariableSet) Inject(mode Mode, requested []Name) ([]Binding, error) {
	var unknown []string
	for _, n := range requested {
		if !IsKnown(n) {
			unknown = append(unknown, string(n))
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownVariableFault{Names: unknown}
	}

	bindings := make([]Binding, 0, len(requested))
	var missing []Name
	for _, n := range requested {
		v := s.values[n]
		if !v.IsSet() {
			missing = append(missing, n)
		}
		bindings = append(bindings, Binding{Name: n, Value: v})
	}

	strict := Select(mode, false, true)
	if strict && len(missing) > 0 {
		return nil, &MissingVariableFault{Mode: mode, Names: missing}
	}
	return bindings, nil
}
