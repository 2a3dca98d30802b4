package pipeline

import (
	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/fragment"
	"github.com/vk/spabuild/internal/naming"
)

// Step names of the built-in chains.
const (
	StepHotReloader   = "elm-hot-reloader"
	StepCompiler      = "elm-compiler"
	StepOptimize      = "optimize"
	StepSass          = "sass"
	StepPostCSS       = "postcss"
	StepCSS           = "css"
	StepStyleInject   = "style-inject"
	StepCSSExtract    = "css-extract"
	StepHTMLTemplate  = "html-template"
	StepAssetResource = "asset-resource"
	StepTranspile     = "babel"
)

// Names of the built-in rules.
const (
	RuleModuleSource = "module-source"
	RuleScript       = "script"
	RuleStylesheet   = "stylesheet"
	RuleTemplate     = "template"
	RuleStaticBinary = "static-binary"
)

// builtins returns the default rule of every class for mode. Rules that
// reference emitted files read their names from out.
func builtins(mode environment.Mode, out naming.OutputSpec) []Rule {
	return []Rule{
		moduleSourceRule(mode),
		scriptRule(),
		stylesheetRule(mode, out),
		templateRule(mode, out),
		staticBinaryRule(out),
	}
}

func moduleSourceRule(mode environment.Mode) Rule {
	dev := environment.Select(mode, true, false)
	compiler := Step{
		Loader: StepCompiler,
		Options: fragment.New().
			Set("cwd", fragment.String("./")).
			Set("debug", fragment.Bool(dev)).
			Set("verbose", fragment.Bool(dev)).
			Set("optimize", fragment.Bool(false)).
			Set("reload", fragment.Bool(dev)),
	}
	steps := environment.Select(mode,
		[]Step{{Loader: StepHotReloader}, compiler},
		[]Step{compiler, {Loader: StepOptimize, Options: fragment.New().Set("minify", fragment.Bool(true))}},
	)
	return Rule{
		Name:       RuleModuleSource,
		Class:      ModuleSource,
		Extensions: []string{".elm"},
		Exclude:    []string{"elm-stuff", "node_modules"},
		Steps:      steps,
	}
}

// scriptRule transpiles plain script modules such as the entry point. It is
// the same in both modes.
func scriptRule() Rule {
	return Rule{
		Name:       RuleScript,
		Class:      ModuleSource,
		Extensions: []string{".js"},
		Exclude:    []string{"node_modules"},
		Steps:      []Step{{Loader: StepTranspile}},
	}
}

func stylesheetRule(mode environment.Mode, out naming.OutputSpec) Rule {
	final := environment.Select(mode,
		Step{Loader: StepStyleInject},
		Step{Loader: StepCSSExtract, Options: fragment.New().Set("filename", fragment.String(out.StyleFilename))},
	)
	return Rule{
		Name:       RuleStylesheet,
		Class:      Stylesheet,
		Extensions: Stylesheet.Extensions(),
		Steps: []Step{
			{Loader: StepSass},
			{Loader: StepPostCSS, Options: fragment.New().Set("plugins", fragment.Strings("autoprefixer"))},
			{Loader: StepCSS},
			final,
		},
	}
}

func templateRule(mode environment.Mode, out naming.OutputSpec) Rule {
	opts := fragment.New().
		Set("inject", fragment.String("body")).
		Set("scripts", fragment.String(out.ScriptFilename))
	if environment.Select(mode, false, true) {
		opts.Set("hash", fragment.Bool(true))
	}
	return Rule{
		Name:       RuleTemplate,
		Class:      Template,
		Extensions: Template.Extensions(),
		Steps:      []Step{{Loader: StepHTMLTemplate, Options: opts}},
	}
}

func staticBinaryRule(out naming.OutputSpec) Rule {
	return Rule{
		Name:       RuleStaticBinary,
		Class:      StaticBinary,
		Extensions: StaticBinary.Extensions(),
		Steps: []Step{{
			Loader:  StepAssetResource,
			Options: fragment.New().Set("filename", fragment.String(out.AssetFilename)),
		}},
	}
}
