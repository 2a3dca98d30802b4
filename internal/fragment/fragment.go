package fragment

import (
	"slices"

	"github.com/zclconf/go-cty/cty"
)

// Fragment is an object node of the configuration tree.
type Fragment struct {
	keys   []string
	fields map[string]Value
}

// New returns an empty fragment.
func New() *Fragment {
	return &Fragment{fields: make(map[string]Value)}
}

// Set stores v under key and returns f for chaining. Replacing an existing
// key keeps its position.
func (f *Fragment) Set(key string, v Value) *Fragment {
	if v.kind == 0 {
		panic("fragment: Set called with the zero Value for key " + key)
	}
	if _, ok := f.fields[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.fields[key] = v
	return f
}

// Get returns the field stored under key.
func (f *Fragment) Get(key string) (Value, bool) {
	if f == nil {
		return Value{}, false
	}
	v, ok := f.fields[key]
	return v, ok
}

// Has reports whether key is present.
func (f *Fragment) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Lookup walks nested objects along path.
func (f *Fragment) Lookup(path ...string) (Value, bool) {
	if len(path) == 0 {
		return Object(f), f != nil
	}
	cur := f
	for i, key := range path {
		v, ok := cur.Get(key)
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		if v.kind != KindObject {
			return Value{}, false
		}
		cur = v.object
	}
	return Value{}, false
}

// Keys returns the keys in insertion order.
func (f *Fragment) Keys() []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.keys)
}

// Len returns the number of fields.
func (f *Fragment) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Clone returns a deep copy of f.
func (f *Fragment) Clone() *Fragment {
	out := New()
	if f == nil {
		return out
	}
	for _, k := range f.keys {
		out.Set(k, f.fields[k].clone())
	}
	return out
}

// Equal reports structural equality, including key order.
func (f *Fragment) Equal(o *Fragment) bool {
	if f.Len() != o.Len() {
		return false
	}
	if f == nil || o == nil {
		return true
	}
	if !slices.Equal(f.keys, o.keys) {
		return false
	}
	for _, k := range f.keys {
		if !f.fields[k].Equal(o.fields[k]) {
			return false
		}
	}
	return true
}

// ToCty converts f into a cty object value.
func (f *Fragment) ToCty() cty.Value {
	if f.Len() == 0 {
		return cty.EmptyObjectVal
	}
	attrs := make(map[string]cty.Value, len(f.keys))
	for _, k := range f.keys {
		attrs[k] = f.fields[k].ToCty()
	}
	return cty.ObjectVal(attrs)
}

// ToGo converts f into a map of plain Go values.
func (f *Fragment) ToGo() map[string]any {
	out := make(map[string]any, f.Len())
	if f == nil {
		return out
	}
	for _, k := range f.keys {
		out[k] = f.fields[k].ToGo()
	}
	return out
}
