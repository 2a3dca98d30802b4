package artifact

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vk/spabuild/internal/fragment"
)

func sampleTree() *fragment.Fragment {
	return fragment.New().
		Set("output", fragment.Object(fragment.New().
			Set("path", fragment.String("dist/current")).
			Set("filename", fragment.String("static/js/[name]-[hash].js")))).
		Set("entry", fragment.Strings("./src/index.js")).
		Set("devServer", fragment.Object(fragment.New().
			Set("port", fragment.Int(8080)).
			Set("hot", fragment.Bool(true)))).
		Set("variables", fragment.Object(fragment.New().
			Set("API_URL", fragment.Null()))).
		Set("rules", fragment.List())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "json", want: JSON},
		{in: "YAML", want: YAML},
		{in: "yml", want: YAML},
		{in: "toml", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCanonical_IsOrderIndependent(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	a := fragment.New().Set("b", fragment.Int(1)).Set("a", fragment.String("x"))
	b := fragment.New().Set("a", fragment.String("x")).Set("b", fragment.Int(1))

	// --- Act ---
	ca, errA := Canonical(a)
	cb, errB := Canonical(b)

	// --- Assert ---
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, string(ca), string(cb))
	assert.Equal(t, `{"a":"x","b":1}`, string(ca))
}

func TestEncode_JSON(t *testing.T) {
	t.Parallel()

	// --- Act ---
	var buf bytes.Buffer
	err := Encode(&buf, JSON, Header{Mode: "production"}, sampleTree())

	// --- Assert ---
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	want := map[string]any{
		"output": map[string]any{
			"path":     "dist/current",
			"filename": "static/js/[name]-[hash].js",
		},
		"entry":     []any{"./src/index.js"},
		"devServer": map[string]any{"port": float64(8080), "hot": true},
		"variables": map[string]any{"API_URL": nil},
		"rules":     []any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_YAML(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h := Header{Mode: "development", Fingerprint: "abc123"}

	// --- Act ---
	var buf bytes.Buffer
	err := Encode(&buf, YAML, h, sampleTree())

	// --- Assert ---
	require.NoError(t, err)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "# Generated by spabuild."), out)
	assert.Contains(t, out, "# fingerprint: abc123")
	assert.Less(t, strings.Index(out, "output:"), strings.Index(out, "entry:"), "insertion order is kept")
	assert.Less(t, strings.Index(out, "entry:"), strings.Index(out, "devServer:"), "insertion order is kept")

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	want := map[string]any{
		"output": map[string]any{
			"path":     "dist/current",
			"filename": "static/js/[name]-[hash].js",
		},
		"entry":     []any{"./src/index.js"},
		"devServer": map[string]any{"port": 8080, "hot": true},
		"variables": map[string]any{"API_URL": nil},
		"rules":     []any{},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("YAML artifact mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := Encode(&bytes.Buffer{}, Format("xml"), Header{}, sampleTree())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown artifact format")
}
