package config

import (
	"github.com/vk/spabuild/internal/fragment"
)

// Base is the unified, format-agnostic representation of the base
// configuration.
type Base struct {
	// Source is the file or directory the model was loaded from.
	Source string

	Entry     string
	Output    Output
	Resolve   Resolve
	Template  Template
	DevServer DevServer
	// Icon is copied verbatim to the output root in production.
	Icon string
	// Inject lists the variables to inject. Nil means the whole enumeration.
	Inject []string
	Rules  []*Rule
	// Settings are free-form fields added to the mode-independent fragment.
	Settings *fragment.Fragment
}

// Output configures where artifacts are written and served from.
type Output struct {
	Path       string
	PublicPath string
}

// Resolve configures module resolution.
type Resolve struct {
	Extensions []string
	Modules    []string
}

// Template configures the application shell document.
type Template struct {
	Source   string
	Filename string
	Inject   string
}

// DevServer configures the development server section.
type DevServer struct {
	Host               string
	Port               int
	ContentBase        string
	HistoryAPIFallback bool
	Hot                bool
}

// Rule is an extra asset rule declared in the base configuration.
type Rule struct {
	Name       string
	Extensions []string
	Exclude    []string
	Modes      []string
	Steps      []*Step
}

// Step is one transformation step of an extra rule.
type Step struct {
	Loader  string
	Options *fragment.Fragment
}

// Defaults returns the base configuration used when a field is not set.
func Defaults() *Base {
	return &Base{
		Entry: "src/index.js",
		Output: Output{
			Path:       "dist/current",
			PublicPath: "/",
		},
		Resolve: Resolve{
			Extensions: []string{".elm", ".js"},
			Modules:    []string{"src", "node_modules"},
		},
		Template: Template{
			Source:   "src/index.html",
			Filename: "index.html",
			Inject:   "body",
		},
		DevServer: DevServer{
			Host:               "localhost",
			Port:               8080,
			ContentBase:        "./src",
			HistoryAPIFallback: true,
			Hot:                true,
		},
		Icon:     "src/favicon.ico",
		Settings: fragment.New(),
	}
}
