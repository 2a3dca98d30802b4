// This file translates the HCL schema structs into the format-agnostic
// config.Base model.

package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/vk/spabuild/internal/config"
	"github.com/vk/spabuild/internal/fragment"
)

// apply overlays one decoded file onto base.
func (l *Loader) apply(ctx context.Context, base *config.Base, root *fileRoot) error {
	setString(&base.Entry, root.Entry)
	setString(&base.Icon, root.Icon)

	if isExprDefined(ctx, root.Inject, "inject") {
		var names []string
		if diags := gohcl.DecodeExpression(root.Inject, nil, &names); diags.HasErrors() {
			return fmt.Errorf("invalid inject list: %w", diags)
		}
		if names == nil {
			names = []string{}
		}
		base.Inject = names
	}

	if o := root.Output; o != nil {
		setString(&base.Output.Path, o.Path)
		setString(&base.Output.PublicPath, o.PublicPath)
	}
	if r := root.Resolve; r != nil {
		if r.Extensions != nil {
			base.Resolve.Extensions = *r.Extensions
		}
		if r.Modules != nil {
			base.Resolve.Modules = *r.Modules
		}
	}
	if t := root.Template; t != nil {
		setString(&base.Template.Source, t.Source)
		setString(&base.Template.Filename, t.Filename)
		setString(&base.Template.Inject, t.Inject)
	}
	if d := root.DevServer; d != nil {
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

	for _, rb := range root.Rules {
		rule, err := l.translateRule(ctx, rb)
		if err != nil {
			return err
		}
		base.Rules = append(base.Rules, rule)
	}

	if root.Settings != nil {
		if err := l.translateSettings(root.Settings, base.Settings); err != nil {
			return err
		}
	}
	return nil
}

// translateRule converts a rule block into the agnostic model.
func (l *Loader) translateRule(ctx context.Context, rb *ruleBlock) (*config.Rule, error) {
	rule := &config.Rule{
		Name:       rb.Name,
		Extensions: rb.Extensions,
		Exclude:    rb.Exclude,
		Modes:      rb.Modes,
	}
	for _, sb := range rb.Steps {
		step := &config.Step{Loader: sb.Loader, Options: fragment.New()}
		if isExprDefined(ctx, sb.Options, "options") {
			val, diags := sb.Options.Value(nil)
			if diags.HasErrors() {
				return nil, fmt.Errorf("invalid options for step '%s' in rule '%s': %w", sb.Loader, rb.Name, diags)
			}
			opts, err := fragment.FromCtyObject(val)
			if err != nil {
				return nil, fmt.Errorf("invalid options for step '%s' in rule '%s': %w", sb.Loader, rb.Name, err)
			}
			step.Options = opts
		}
		rule.Steps = append(rule.Steps, step)
	}
	return rule, nil
}

// translateSettings evaluates every attribute of the settings block into
// dst, in source order.
func (l *Loader) translateSettings(sb *settingsBlock, dst *fragment.Fragment) error {
	attrs, diags := sb.Body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("invalid settings block: %w", diags)
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	for _, attr := range ordered {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("invalid setting '%s': %w", attr.Name, diags)
		}
		v, err := fragment.FromCty(val)
		if err != nil {
			return fmt.Errorf("invalid setting '%s': %w", attr.Name, err)
		}
		dst.Set(attr.Name, v)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
