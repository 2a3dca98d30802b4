package fragment

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestFromCty(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	in := cty.ObjectVal(map[string]cty.Value{
		"hot":  cty.True,
		"port": cty.NumberIntVal(8080),
		"tags": cty.ListVal([]cty.Value{cty.StringVal("a"), cty.StringVal("b")}),
		"nested": cty.MapVal(map[string]cty.Value{
			"ratio": cty.NumberFloatVal(0.5),
		}),
		"none": cty.NullVal(cty.DynamicPseudoType),
	})

	// --- Act ---
	f, err := FromCtyObject(in)

	// --- Assert ---
	require.NoError(t, err)
	want := map[string]any{
		"hot":    true,
		"port":   int64(8080),
		"tags":   []any{"a", "b"},
		"nested": map[string]any{"ratio": 0.5},
		"none":   nil,
	}
	if diff := cmp.Diff(want, f.ToGo()); diff != "" {
		t.Errorf("conversion mismatch (-want +got):\n%s", diff)
	}
}

func TestFromCty_RejectsMixedLists(t *testing.T) {
	t.Parallel()

	in := cty.TupleVal([]cty.Value{
		cty.StringVal("a"),
		cty.ObjectVal(map[string]cty.Value{"b": cty.True}),
	})

	_, err := FromCty(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mixes scalar and object")
}

func TestFromCty_RejectsUnknown(t *testing.T) {
	t.Parallel()

	_, err := FromCty(cty.UnknownVal(cty.String))
	require.Error(t, err)
}

func TestFromCtyObject_RejectsScalars(t *testing.T) {
	t.Parallel()

	_, err := FromCtyObject(cty.StringVal("x"))
	require.Error(t, err)
}

func TestToCty_RoundTripsThroughFromCty(t *testing.T) {
	t.Parallel()

	f := New().
		Set("entry", Strings("src/index.js")).
		Set("devServer", Object(New().Set("hot", Bool(true)))).
		Set("empty", List()).
		Set("unset", Null())

	back, err := FromCtyObject(f.ToCty())
	require.NoError(t, err)

	// cty objects do not keep key order, so compare plain values.
	if diff := cmp.Diff(f.ToGo(), back.ToGo()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestScalar_RejectsCollections(t *testing.T) {
	t.Parallel()

	_, err := Scalar(cty.ListValEmpty(cty.String))
	require.Error(t, err)
}

func TestSet_ZeroValuePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { New().Set("k", Value{}) })
}
