package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level structure of a base configuration file.
type fileRoot struct {
	Entry     *string         `hcl:"entry,optional"`
	Icon      *string         `hcl:"icon,optional"`
	Inject    hcl.Expression  `hcl:"inject,optional"`
	Output    *outputBlock    `hcl:"output,block"`
	Resolve   *resolveBlock   `hcl:"resolve,block"`
	Template  *templateBlock  `hcl:"template,block"`
	DevServer *devServerBlock `hcl:"dev_server,block"`
	Rules     []*ruleBlock    `hcl:"rule,block"`
	Settings  *settingsBlock  `hcl:"settings,block"`
}

type outputBlock struct {
	Path       *string `hcl:"path,optional"`
	PublicPath *string `hcl:"public_path,optional"`
}

type resolveBlock struct {
	Extensions *[]string `hcl:"extensions,optional"`
	Modules    *[]string `hcl:"modules,optional"`
}

type templateBlock struct {
	Source   *string `hcl:"source,optional"`
	Filename *string `hcl:"filename,optional"`
	Inject   *string `hcl:"inject,optional"`
}

type devServerBlock struct {
	Host               *string `hcl:"host,optional"`
	Port               *int    `hcl:"port,optional"`
	ContentBase        *string `hcl:"content_base,optional"`
	HistoryAPIFallback *bool   `hcl:"history_api_fallback,optional"`
	Hot                *bool   `hcl:"hot,optional"`
}

// ruleBlock represents a `rule` block declaring an extra asset rule.
type ruleBlock struct {
	Name       string       `hcl:"name,label"`
	Extensions []string     `hcl:"extensions,optional"`
	Exclude    []string     `hcl:"exclude,optional"`
	Modes      []string     `hcl:"modes,optional"`
	Steps      []*stepBlock `hcl:"step,block"`
}

// stepBlock represents one `step` inside a rule.
type stepBlock struct {
	Loader  string         `hcl:"loader,label"`
	Options hcl.Expression `hcl:"options,optional"`
}

// settingsBlock holds free-form attributes.
type settingsBlock struct {
	Body hcl.Body `hcl:",remain"`
}
