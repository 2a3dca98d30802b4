package plugins

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/naming"
)

func bindings(t *testing.T, values map[environment.Name]environment.Value) []environment.Binding {
	t.Helper()
	set, err := environment.NewVariableSet(values)
	require.NoError(t, err)
	b, err := set.Inject(environment.Development, environment.Names())
	require.NoError(t, err)
	return b
}

func TestCommon_EnvironmentVariables(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	out := naming.For(environment.Development, naming.DefaultLayout())
	b := bindings(t, map[environment.Name]environment.Value{
		environment.APIURL: environment.SetValue("http://api"),
	})
	tpl := Template{Source: "src/index.html", Filename: "index.html", Inject: "body"}

	// --- Act ---
	ps := Common(tpl, out, b)

	// --- Assert ---
	assert.Equal(t, []string{HTMLTemplate, Environment, Clean}, Names(ps))

	want := map[string]any{
		"API_URL":                "http://api",
		"APP_NAME":               nil,
		"SOCKET_URL":             nil,
		"FOOTER_MESSAGE":         nil,
		"STRIPE_PUBLISHABLE_KEY": nil,
		"STORAGE_KEY":            nil,
	}
	vars, ok := ps[1].Options.Lookup("variables")
	require.True(t, ok)
	if diff := cmp.Diff(want, vars.ToGo()); diff != "" {
		t.Errorf("variables mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"API_URL", "APP_NAME", "SOCKET_URL", "FOOTER_MESSAGE", "STRIPE_PUBLISHABLE_KEY", "STORAGE_KEY"},
		vars.Fragment().Keys(), "variables keep enumeration order")
}

func TestForMode(t *testing.T) {
	t.Parallel()

	t.Run("development adds nothing", func(t *testing.T) {
		t.Parallel()
		out := naming.For(environment.Development, naming.DefaultLayout())
		assert.Empty(t, ForMode(out, "src/favicon.ico"))
	})

	t.Run("production extracts, copies the icon and minifies", func(t *testing.T) {
		t.Parallel()

		// --- Arrange ---
		out := naming.For(environment.Production, naming.DefaultLayout())

		// --- Act ---
		ps := ForMode(out, "src/favicon.ico")

		// --- Assert ---
		require.Equal(t, []string{CSSExtract, Copy, Minify}, Names(ps))
		from, _ := ps[1].Options.Lookup("from")
		s, _ := from.AsString()
		assert.Equal(t, "src/favicon.ico", s)
		filename, _ := ps[0].Options.Lookup("filename")
		s, _ = filename.AsString()
		assert.Equal(t, out.StyleFilename, s)
	})

	t.Run("production without an icon skips the copy", func(t *testing.T) {
		t.Parallel()
		out := naming.For(environment.Production, naming.DefaultLayout())
		assert.Equal(t, []string{CSSExtract, Minify}, Names(ForMode(out, "")))
	})
}

func TestPlugin_FragmentOmitsEmptyOptions(t *testing.T) {
	t.Parallel()

	f := Plugin{Name: Minify}.Fragment()

	assert.Equal(t, []string{"name"}, f.Keys())
}
