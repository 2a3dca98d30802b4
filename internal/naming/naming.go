// Package naming derives output locations and filename templates from the
// build mode. Development names are stable so the dev server can keep
// long-lived references to in-memory artifacts; production names embed a
// content hash so each build busts caches.
package naming

import (
	"path"
	"strings"

	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/fragment"
)

// Template placeholders understood by the build executor.
const (
	NamePlaceholder = "[name]"
	HashPlaceholder = "[hash]"
	ExtPlaceholder  = "[ext]"
)

// DevPublicPath is the fixed public path used in development.
const DevPublicPath = "/"

// Layout is the mode-independent part of the output: where things go.
type Layout struct {
	OutputDir  string
	PublicPath string
	ScriptDir  string
	StyleDir   string
	AssetDir   string
}

// DefaultLayout mirrors the conventional dist/current tree.
func DefaultLayout() Layout {
	return Layout{
		OutputDir:  "dist/current",
		PublicPath: "/",
		ScriptDir:  "static/js",
		StyleDir:   "static/css",
		AssetDir:   "static/assets",
	}
}

// OutputSpec is the naming law for one mode.
type OutputSpec struct {
	Mode           environment.Mode
	Dir            string
	PublicPath     string
	ScriptFilename string
	StyleFilename  string
	AssetFilename  string
	// IncludeAuxiliary is true when fixed auxiliary assets (the site icon)
	// are copied into the output root.
	IncludeAuxiliary bool
}

// For returns the OutputSpec of mode under layout.
func For(mode environment.Mode, layout Layout) OutputSpec {
	stem := environment.Select(mode, NamePlaceholder, NamePlaceholder+"-"+HashPlaceholder)
	return OutputSpec{
		Mode:             mode,
		Dir:              layout.OutputDir,
		PublicPath:       environment.Select(mode, DevPublicPath, layout.PublicPath),
		ScriptFilename:   path.Join(layout.ScriptDir, stem+".js"),
		StyleFilename:    path.Join(layout.StyleDir, stem+".css"),
		AssetFilename:    path.Join(layout.AssetDir, stem+"."+ExtPlaceholder),
		IncludeAuxiliary: environment.Select(mode, false, true),
	}
}

// Hashed reports whether every filename template embeds the content hash.
func (o OutputSpec) Hashed() bool {
	for _, t := range []string{o.ScriptFilename, o.StyleFilename, o.AssetFilename} {
		if !strings.Contains(t, HashPlaceholder) {
			return false
		}
	}
	return true
}

// Fragment renders the executor-facing output section.
func (o OutputSpec) Fragment() *fragment.Fragment {
	return fragment.New().
		Set("path", fragment.String(o.Dir)).
		Set("publicPath", fragment.String(o.PublicPath)).
		Set("filename", fragment.String(o.ScriptFilename))
}
