package compose

import (
	"slices"

	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/fragment"
	"github.com/vk/spabuild/internal/naming"
	"github.com/vk/spabuild/internal/pipeline"
	"github.com/vk/spabuild/internal/plugins"
)

// BuildConfig is the result of one composition. It is never mutated after
// Compose returns; accessors hand out copies.
type BuildConfig struct {
	event       string
	source      string
	mode        environment.Mode
	entry       []string
	output      naming.OutputSpec
	rules       []pipeline.Rule
	plugins     []plugins.Plugin
	bindings    []environment.Binding
	tree        *fragment.Fragment
	fingerprint string
}

func (b *BuildConfig) Mode() environment.Mode { return b.mode }

// Event is the lifecycle event the mode was resolved from.
func (b *BuildConfig) Event() string { return b.event }

// Source is where the base configuration came from; empty for defaults.
func (b *BuildConfig) Source() string { return b.source }

func (b *BuildConfig) Entry() []string { return slices.Clone(b.entry) }

func (b *BuildConfig) Output() naming.OutputSpec { return b.output }

// Rules returns the selected rules in pipeline.Classes() order. Within a
// class the rules with longer extensions come first.
func (b *BuildConfig) Rules() []pipeline.Rule {
	out := make([]pipeline.Rule, len(b.rules))
	for i, r := range b.rules {
		out[i] = r.Clone()
	}
	return out
}

// RuleFor returns the rule that handles the file name.
func (b *BuildConfig) RuleFor(file string) (pipeline.Rule, bool) {
	r, ok := pipeline.Match(b.rules, file)
	if !ok {
		return pipeline.Rule{}, false
	}
	return r.Clone(), true
}

// Plugins returns the plugins in executor order.
func (b *BuildConfig) Plugins() []plugins.Plugin {
	out := make([]plugins.Plugin, len(b.plugins))
	for i, p := range b.plugins {
		out[i] = plugins.Plugin{Name: p.Name, Options: p.Options.Clone()}
	}
	return out
}

func (b *BuildConfig) HasPlugin(name string) bool {
	return slices.ContainsFunc(b.plugins, func(p plugins.Plugin) bool { return p.Name == name })
}

// Environment returns the injected variables. In development unset
// variables are present with the unset marker.
func (b *BuildConfig) Environment() []environment.Binding { return slices.Clone(b.bindings) }

// Tree returns a copy of the merged configuration fragment.
func (b *BuildConfig) Tree() *fragment.Fragment { return b.tree.Clone() }

// Fingerprint is the hex BLAKE3-256 digest of the canonical JSON encoding
// of Tree().
func (b *BuildConfig) Fingerprint() string { return b.fingerprint }
