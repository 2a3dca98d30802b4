// Package plugins builds the ordered plugin list of a build configuration.
// Plugins shared by both modes live in the base fragment; the production
// extras are added by the overlay so the merge appends them after the
// shared ones.
package plugins

import (
	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/fragment"
	"github.com/vk/spabuild/internal/naming"
)

// Plugin names understood by the build executor.
const (
	HTMLTemplate = "html-template"
	Environment  = "environment"
	Clean        = "clean"
	CSSExtract   = "css-extract"
	Copy         = "copy"
	Minify       = "minify"
)

// Plugin is one named executor plugin with its options.
type Plugin struct {
	Name    string
	Options *fragment.Fragment
}

// Fragment renders p as {name, options}.
func (p Plugin) Fragment() *fragment.Fragment {
	f := fragment.New().Set("name", fragment.String(p.Name))
	if p.Options.Len() > 0 {
		f.Set("options", fragment.Object(p.Options.Clone()))
	}
	return f
}

// Template describes the HTML page the bundle is injected into.
type Template struct {
	Source   string
	Filename string
	Inject   string
}

// Common returns the plugins present in every mode: the page template, the
// injected variables and the output cleaner, in that order.
func Common(tpl Template, out naming.OutputSpec, bindings []environment.Binding) []Plugin {
	vars := fragment.New()
	for _, b := range bindings {
		if raw, ok := b.Value.Raw(); ok {
			vars.Set(string(b.Name), fragment.String(raw))
		} else {
			vars.Set(string(b.Name), fragment.Null())
		}
	}

	return []Plugin{
		{
			Name: HTMLTemplate,
			Options: fragment.New().
				Set("template", fragment.String(tpl.Source)).
				Set("filename", fragment.String(tpl.Filename)).
				Set("inject", fragment.String(tpl.Inject)),
		},
		{Name: Environment, Options: fragment.New().Set("variables", fragment.Object(vars))},
		{Name: Clean, Options: fragment.New().Set("paths", fragment.Strings(out.Dir))},
	}
}

// ForMode returns the plugins that only the mode of out adds. Development
// adds none; production extracts stylesheets, copies the icon into the
// output root and minifies.
func ForMode(out naming.OutputSpec, icon string) []Plugin {
	if !environment.Select(out.Mode, false, true) {
		return nil
	}
	ps := []Plugin{
		{Name: CSSExtract, Options: fragment.New().Set("filename", fragment.String(out.StyleFilename))},
	}
	if out.IncludeAuxiliary && icon != "" {
		ps = append(ps, Plugin{
			Name: Copy,
			Options: fragment.New().
				Set("from", fragment.String(icon)).
				Set("to", fragment.String(out.Dir)),
		})
	}
	return append(ps, Plugin{Name: Minify})
}

// List renders ps as a fragment list value.
func List(ps []Plugin) fragment.Value {
	items := make([]fragment.Value, len(ps))
	for i, p := range ps {
		items[i] = fragment.Object(p.Fragment())
	}
	return fragment.List(items...)
}

// Names returns the plugin names in order.
func Names(ps []Plugin) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}
