package fragment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ListsConcatenateInOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	base := New().Set("rules", Strings("A", "B"))
	overlay := New().Set("rules", Strings("C"))

	// --- Act ---
	merged, err := Merge(base, overlay)

	// --- Assert ---
	require.NoError(t, err)
	want := map[string]any{"rules": []any{"A", "B", "C"}}
	if diff := cmp.Diff(want, merged.ToGo()); diff != "" {
		t.Errorf("merged rules mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_ObjectsMergeRecursively(t *testing.T) {
	t.Parallel()

	base := New().Set("o", Object(New().Set("x", Int(1)).Set("y", Int(2))))
	overlay := New().Set("o", Object(New().Set("y", Int(3))))

	merged, err := Merge(base, overlay)

	require.NoError(t, err)
	want := map[string]any{"o": map[string]any{"x": int64(1), "y": int64(3)}}
	if diff := cmp.Diff(want, merged.ToGo()); diff != "" {
		t.Errorf("merged object mismatch (-want +got):\n%s", diff)
	}
}

func TestMerge_ScalarOverlayWinsAndOneSidedFieldsCarry(t *testing.T) {
	t.Parallel()

	base := New().
		Set("mode", String("development")).
		Set("baseOnly", Bool(true))
	overlay := New().
		Set("mode", String("production")).
		Set("overlayOnly", Strings("x"))

	merged, err := Merge(base, overlay)

	require.NoError(t, err)
	assert.Equal(t, []string{"mode", "baseOnly", "overlayOnly"}, merged.Keys())
	got, _ := merged.Get("mode")
	s, ok := got.AsString()
	require.True(t, ok)
	assert.Equal(t, "production", s)
}

func TestMerge_KindMismatchIsFault(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	base := New().Set("module", Object(New().Set("rules", String("oops"))))
	overlay := New().Set("module", Object(New().Set("rules", Strings("a"))))

	// --- Act ---
	merged, err := Merge(base, overlay)

	// --- Assert ---
	require.Nil(t, merged)
	var fault *MergeFault
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "module.rules", fault.Path)
	assert.Equal(t, KindScalar, fault.Base)
	assert.Equal(t, KindList, fault.Overlay)
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := New().Set("o", Object(New().Set("l", Strings("a"))))
	overlay := New().Set("o", Object(New().Set("l", Strings("b"))))
	baseBefore := base.Clone()
	overlayBefore := overlay.Clone()

	merged, err := Merge(base, overlay)
	require.NoError(t, err)

	inner, ok := merged.Lookup("o")
	require.True(t, ok)
	inner.Fragment().Set("extra", Bool(true))

	assert.True(t, base.Equal(baseBefore), "base must be untouched")
	assert.True(t, overlay.Equal(overlayBefore), "overlay must be untouched")
}

func TestMerge_Deterministic(t *testing.T) {
	t.Parallel()

	base := New().
		Set("output", Object(New().Set("path", String("dist")).Set("publicPath", String("/")))).
		Set("plugins", List(Object(New().Set("name", String("clean")))))
	overlay := New().
		Set("output", Object(New().Set("filename", String("[name]-[hash].js")))).
		Set("plugins", List(Object(New().Set("name", String("minify")))))

	first, err := Merge(base, overlay)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Merge(base, overlay)
		require.NoError(t, err)
		require.True(t, first.Equal(again), "merge must yield identical output on every call")
	}
}
