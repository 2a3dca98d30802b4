package fragment

import (
	"fmt"
	"strings"
)

// MergeFault is returned when base and overlay declare the same field with
// different kinds.
type MergeFault struct {
	Path    string
	Base    Kind
	Overlay Kind
}

func (f *MergeFault) Error() string {
	return fmt.Sprintf("cannot merge field %q: base declares a %s, overlay declares a %s", f.Path, f.Base, f.Overlay)
}

// Merge combines base with overlay and returns a new fragment. Neither input
// is modified.
//
//   - scalar in both: overlay wins
//   - object in both: merged recursively
//   - list in both: base items followed by overlay items
//   - present on one side only: copied through
//
// Keys keep base order, followed by keys that only the overlay declares.
func Merge(base, overlay *Fragment) (*Fragment, error) {
	return mergeAt(nil, base, overlay)
}

func mergeAt(path []string, base, overlay *Fragment) (*Fragment, error) {
	out := New()
	for _, k := range base.Keys() {
		bv := base.fields[k]
		ov, ok := overlay.Get(k)
		if !ok {
			out.Set(k, bv.clone())
			continue
		}
		merged, err := mergeValue(append(path[:len(path):len(path)], k), bv, ov)
		if err != nil {
			return nil, err
		}
		out.Set(k, merged)
	}
	for _, k := range overlay.Keys() {
		if base.Has(k) {
			continue
		}
		out.Set(k, overlay.fields[k].clone())
	}
	return out, nil
}

func mergeValue(path []string, base, overlay Value) (Value, error) {
	if base.kind != overlay.kind {
		return Value{}, &MergeFault{Path: strings.Join(path, "."), Base: base.kind, Overlay: overlay.kind}
	}
	switch base.kind {
	case KindObject:
		merged, err := mergeAt(path, base.object, overlay.object)
		if err != nil {
			return Value{}, err
		}
		return Object(merged), nil
	case KindList:
		items := make([]Value, 0, len(base.list)+len(overlay.list))
		for _, item := range base.list {
			items = append(items, item.clone())
		}
		for _, item := range overlay.list {
			items = append(items, item.clone())
		}
		return Value{kind: KindList, list: items}, nil
	}
	return overlay, nil
}
