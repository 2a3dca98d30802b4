// Package jsonc loads base configuration files written as JSON with
// comments and trailing commas. The document shape mirrors the HCL format
// with camelCase keys:
//
//	{
//	  // entry module
//	  "entry": "src/index.js",
//	  "output": { "path": "dist/current", "publicPath": "/" },
//	  "inject": ["API_URL", "APP_NAME"],
//	  "rules": [
//	    { "name": "css-modules", "extensions": [".module.scss"],
//	      "steps": [{ "loader": "css-modules", "options": { "modules": true } }] },
//	  ],
//	  "settings": { "performance": { "hints": false } },
//	}
package jsonc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tidwall/jsonc"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/vk/spabuild/internal/config"
	"github.com/vk/spabuild/internal/ctxlog"
	"github.com/vk/spabuild/internal/fragment"
)

type document struct {
	Entry     *string         `json:"entry"`
	Icon      *string         `json:"icon"`
	Inject    *[]string       `json:"inject"`
	Output    *output         `json:"output"`
	Resolve   *resolve        `json:"resolve"`
	Template  *template       `json:"template"`
	DevServer *devServer      `json:"devServer"`
	Rules     []rule          `json:"rules"`
	Settings  json.RawMessage `json:"settings"`
}

type output struct {
	Path       *string `json:"path"`
	PublicPath *string `json:"publicPath"`
}

type resolve struct {
	Extensions *[]string `json:"extensions"`
	Modules    *[]string `json:"modules"`
}

type template struct {
	Source   *string `json:"source"`
	Filename *string `json:"filename"`
	Inject   *string `json:"inject"`
}

type devServer struct {
	Host               *string `json:"host"`
	Port               *int    `json:"port"`
	ContentBase        *string `json:"contentBase"`
	HistoryAPIFallback *bool   `json:"historyApiFallback"`
	Hot                *bool   `json:"hot"`
}

type rule struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
	Exclude    []string `json:"exclude"`
	Modes      []string `json:"modes"`
	Steps      []step   `json:"steps"`
}

type step struct {
	Loader  string          `json:"loader"`
	Options json.RawMessage `json:"options"`
}

// Loader is the JSONC implementation of config.Loader.
type Loader struct{}

// NewLoader creates a new JSONC configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the file at path and overlays it on config.Defaults().
func (l *Loader) Load(ctx context.Context, path string) (*config.Base, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("JSONC loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	base, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base.Source = path

	logger.Debug("JSONC loading complete.", "rules", len(base.Rules), "settings", base.Settings.Len())
	return base, nil
}

// Parse strips comments and trailing commas from data and translates the
// document into a config.Base overlaid on the defaults.
func Parse(data []byte) (*config.Base, error) {
	stripped := jsonc.ToJSON(data)

	var doc document
	dec := json.NewDecoder(bytes.NewReader(stripped))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing base configuration: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("parsing base configuration: unexpected content after the top-level object")
	}

	base := config.Defaults()
	setString(&base.Entry, doc.Entry)
	setString(&base.Icon, doc.Icon)
	if doc.Inject != nil {
		base.Inject = append([]string{}, (*doc.Inject)...)
	}
	if o := doc.Output; o != nil {
		setString(&base.Output.Path, o.Path)
		setString(&base.Output.PublicPath, o.PublicPath)
	}
	if r := doc.Resolve; r != nil {
		if r.Extensions != nil {
			base.Resolve.Extensions = *r.Extensions
		}
		if r.Modules != nil {
			base.Resolve.Modules = *r.Modules
		}
	}
	if t := doc.Template; t != nil {
		setString(&base.Template.Source, t.Source)
		setString(&base.Template.Filename, t.Filename)
		setString(&base.Template.Inject, t.Inject)
	}
	if d := doc.DevServer; d != nil {
		setString(&base.DevServer.Host, d.Host)
		setString(&base.DevServer.ContentBase, d.ContentBase)
		if d.Port != nil {
			base.DevServer.Port = *d.Port
		}
		if d.HistoryAPIFallback != nil {
			base.DevServer.HistoryAPIFallback = *d.HistoryAPIFallback
		}
		if d.Hot != nil {
			base.DevServer.Hot = *d.Hot
		}
	}

	for _, r := range doc.Rules {
		cr := &config.Rule{Name: r.Name, Extensions: r.Extensions, Exclude: r.Exclude, Modes: r.Modes}
		for _, s := range r.Steps {
			opts, err := rawObject(s.Options)
			if err != nil {
				return nil, fmt.Errorf("invalid options for step '%s' in rule '%s': %w", s.Loader, r.Name, err)
			}
			cr.Steps = append(cr.Steps, &config.Step{Loader: s.Loader, Options: opts})
		}
		base.Rules = append(base.Rules, cr)
	}

	settings, err := rawObject(doc.Settings)
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	base.Settings = settings
	return base, nil
}

// rawObject converts a raw JSON object into a fragment by way of cty, so
// JSON and HCL settings go through the same kind checks.
func rawObject(raw json.RawMessage) (*fragment.Fragment, error) {
	if len(raw) == 0 {
		return fragment.New(), nil
	}
	ty, err := ctyjson.ImpliedType(raw)
	if err != nil {
		return nil, err
	}
	val, err := ctyjson.Unmarshal(raw, ty)
	if err != nil {
		return nil, err
	}
	return fragment.FromCtyObject(val)
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

