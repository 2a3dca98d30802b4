package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vk/spabuild/internal/environment"
)

func TestFor_Development(t *testing.T) {
	t.Parallel()

	out := For(environment.Development, DefaultLayout())

	assert.Equal(t, "static/js/[name].js", out.ScriptFilename)
	assert.Equal(t, "static/css/[name].css", out.StyleFilename)
	assert.Equal(t, "static/assets/[name].[ext]", out.AssetFilename)
	assert.Equal(t, "/", out.PublicPath)
	assert.False(t, out.IncludeAuxiliary)
	assert.False(t, out.Hashed())
	for _, tmpl := range []string{out.ScriptFilename, out.StyleFilename, out.AssetFilename} {
		assert.False(t, strings.Contains(tmpl, HashPlaceholder), "%s must be stable in development", tmpl)
	}
}

func TestFor_Production(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()
	layout.PublicPath = "/app/"

	out := For(environment.Production, layout)

	assert.Equal(t, "static/js/[name]-[hash].js", out.ScriptFilename)
	assert.Equal(t, "static/css/[name]-[hash].css", out.StyleFilename)
	assert.Equal(t, "static/assets/[name]-[hash].[ext]", out.AssetFilename)
	assert.Equal(t, "/app/", out.PublicPath)
	assert.True(t, out.IncludeAuxiliary)
	assert.True(t, out.Hashed())
}

func TestFor_DevelopmentIgnoresConfiguredPublicPath(t *testing.T) {
	t.Parallel()

	layout := DefaultLayout()
	layout.PublicPath = "/app/"

	out := For(environment.Development, layout)
	assert.Equal(t, DevPublicPath, out.PublicPath)
}

func TestOutputSpec_Fragment(t *testing.T) {
	t.Parallel()

	f := For(environment.Production, DefaultLayout()).Fragment()

	assert.Equal(t, []string{"path", "publicPath", "filename"}, f.Keys())
	v, _ := f.Get("filename")
	s, _ := v.AsString()
	assert.Equal(t, "static/js/[name]-[hash].js", s)
}
