package fragment

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// FromCty converts a cty value, typically evaluated from a config file, into
// a typed Value. Objects and maps become Objects, lists, sets and tuples
// become Lists, primitives become Scalars. Unknown values and lists whose
// elements have different kinds are rejected here, so a malformed input
// never reaches Merge.
func FromCty(v cty.Value) (Value, error) {
	return fromCty("", v)
}

// FromCtyObject is FromCty for values that must be objects.
func FromCtyObject(v cty.Value) (*Fragment, error) {
	if v.IsNull() {
		return New(), nil
	}
	val, err := FromCty(v)
	if err != nil {
		return nil, err
	}
	if val.kind != KindObject {
		return nil, fmt.Errorf("expected an object, got %s", v.Type().FriendlyName())
	}
	return val.object, nil
}

func fromCty(path string, v cty.Value) (Value, error) {
	if !v.IsWhollyKnown() {
		return Value{}, fmt.Errorf("%s: value is not known", describe(path))
	}
	ty := v.Type()
	switch {
	case ty.IsPrimitiveType():
		return Scalar(v)
	case v.IsNull():
		return Null(), nil
	case ty.IsObjectType() || ty.IsMapType():
		f := New()
		for it := v.ElementIterator(); it.Next(); {
			k, ev := it.Element()
			key := k.AsString()
			child, err := fromCty(join(path, key), ev)
			if err != nil {
				return Value{}, err
			}
			f.Set(key, child)
		}
		return Object(f), nil
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		var items []Value
		i := 0
		for it := v.ElementIterator(); it.Next(); i++ {
			_, ev := it.Element()
			child, err := fromCty(fmt.Sprintf("%s[%d]", path, i), ev)
			if err != nil {
				return Value{}, err
			}
			if len(items) > 0 && items[0].kind != child.kind {
				return Value{}, fmt.Errorf("%s: list mixes %s and %s elements", describe(path), items[0].kind, child.kind)
			}
			items = append(items, child)
		}
		return List(items...), nil
	}
	return Value{}, fmt.Errorf("%s: unsupported type %s", describe(path), ty.FriendlyName())
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func describe(path string) string {
	if path == "" {
		return "value"
	}
	return fmt.Sprintf("field %q", path)
}
