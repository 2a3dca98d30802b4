package compose

import (
	"context"
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/vk/spabuild/internal/artifact"
	"github.com/vk/spabuild/internal/config"
	"github.com/vk/spabuild/internal/ctxlog"
	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/fragment"
	"github.com/vk/spabuild/internal/naming"
	"github.com/vk/spabuild/internal/pipeline"
	"github.com/vk/spabuild/internal/plugins"
)

// DevServerClient is prepended to the entry list in development.
const DevServerClient = "webpack-dev-server/client"

// ElmNoParse keeps compiled module sources out of the executor's parser.
const ElmNoParse = `\.elm$`

// Resolver is the environment resolution step.
type Resolver interface {
	Resolve(ctx context.Context, inv environment.Invocation) (environment.Resolution, error)
}

// Composer runs compositions against one base configuration source.
type Composer struct {
	resolver Resolver
	loader   config.Loader
	basePath string
}

// NewComposer creates a composer. basePath is handed to loader as is.
func NewComposer(resolver Resolver, loader config.Loader, basePath string) *Composer {
	return &Composer{resolver: resolver, loader: loader, basePath: basePath}
}

// Compose resolves the mode for inv and produces the BuildConfig for it.
func (c *Composer) Compose(ctx context.Context, inv environment.Invocation) (*BuildConfig, error) {
	logger := ctxlog.FromContext(ctx)
	var st stage

	res, err := c.resolver.Resolve(ctx, inv)
	if err != nil {
		return nil, err
	}
	st.advance(stageModeResolved)
	logger.Info("Build mode selected.", "event", res.Event, "mode", res.Mode.String())
	ctx = ctxlog.With(ctx, "mode", res.Mode.String())
	logger = ctxlog.FromContext(ctx)

	base, err := c.loader.Load(ctx, c.basePath)
	if err != nil {
		return nil, fmt.Errorf("loading base configuration: %w", err)
	}
	st.advance(stageBaseLoaded)
	logger.Debug("Base configuration loaded.", "source", base.Source, "rules", len(base.Rules))

	requested := environment.Names()
	if base.Inject != nil {
		if requested, err = environment.ParseNames(base.Inject); err != nil {
			return nil, err
		}
	}
	bindings, err := res.Variables.Inject(res.Mode, requested)
	if err != nil {
		return nil, err
	}
	for _, b := range bindings {
		if !b.Value.IsSet() {
			logger.Warn("Environment variable not set, injecting placeholder.", "name", string(b.Name), "placeholder", environment.UnsetPlaceholder)
		}
	}

	out := naming.For(res.Mode, layoutFor(base))

	extra, err := extraRules(base.Rules)
	if err != nil {
		return nil, err
	}
	rules, err := pipeline.NewAssembler(extra...).Assemble(ctx, res.Mode, out)
	if err != nil {
		return nil, err
	}

	tpl := plugins.Template{Source: base.Template.Source, Filename: base.Template.Filename, Inject: base.Template.Inject}
	common := plugins.Common(tpl, out, bindings)
	modal := plugins.ForMode(out, base.Icon)
	all := append(slices.Clone(common), modal...)

	baseFrag, err := baseFragment(base, common)
	if err != nil {
		return nil, err
	}
	entry := entryFor(res.Mode, base)
	overlay := overlayFragment(res.Mode, base, entry, out, rules, modal)
	st.advance(stageOverlayAssembled)

	tree, err := fragment.Merge(baseFrag, overlay)
	if err != nil {
		return nil, err
	}
	st.advance(stageMerged)

	fp, err := fingerprint(tree)
	if err != nil {
		return nil, err
	}
	st.advance(stageFinal)

	logger.Info("Build configuration composed.",
		"rules", len(rules),
		"plugins", plugins.Names(all),
		"fingerprint", fp)

	return &BuildConfig{
		event:       res.Event,
		source:      base.Source,
		mode:        res.Mode,
		entry:       entry,
		output:      out,
		rules:       rules,
		plugins:     all,
		bindings:    bindings,
		tree:        tree,
		fingerprint: fp,
	}, nil
}

func layoutFor(base *config.Base) naming.Layout {
	l := naming.DefaultLayout()
	l.OutputDir = base.Output.Path
	l.PublicPath = base.Output.PublicPath
	return l
}

func extraRules(declared []*config.Rule) ([]pipeline.Rule, error) {
	var out []pipeline.Rule
	for _, d := range declared {
		modes := make([]environment.Mode, 0, len(d.Modes))
		for _, m := range d.Modes {
			mode, err := environment.ParseMode(m)
			if err != nil {
				return nil, fmt.Errorf("rule '%s': %w", d.Name, err)
			}
			modes = append(modes, mode)
		}
		steps := make([]pipeline.Step, 0, len(d.Steps))
		for _, s := range d.Steps {
			steps = append(steps, pipeline.Step{Loader: s.Loader, Options: s.Options})
		}
		r, err := pipeline.NewRule(d.Name, d.Extensions, d.Exclude, modes, steps)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func entryFor(mode environment.Mode, base *config.Base) []string {
	client := DevServerClient + "?http://" + base.DevServer.Host + ":" + strconv.Itoa(base.DevServer.Port)
	return environment.Select(mode,
		[]string{client, base.Entry},
		[]string{base.Entry},
	)
}

// baseFragment renders the mode-independent part. Free-form settings are
// appended but may not replace a composed key.
func baseFragment(base *config.Base, common []plugins.Plugin) (*fragment.Fragment, error) {
	f := fragment.New().
		Set("output", fragment.Object(fragment.New().
			Set("path", fragment.String(base.Output.Path)).
			Set("publicPath", fragment.String(base.Output.PublicPath)))).
		Set("resolve", fragment.Object(fragment.New().
			Set("extensions", fragment.Strings(base.Resolve.Extensions...)).
			Set("modules", fragment.Strings(base.Resolve.Modules...)))).
		Set("module", fragment.Object(fragment.New().
			Set("noParse", fragment.String(ElmNoParse)).
			Set("rules", fragment.List()))).
		Set("plugins", plugins.List(common)).
		Set("optimization", fragment.Object(fragment.New().
			Set("emitOnErrors", fragment.Bool(false))))

	for _, k := range base.Settings.Keys() {
		if f.Has(k) {
			return nil, fmt.Errorf("setting '%s' conflicts with a composed section", k)
		}
		v, _ := base.Settings.Get(k)
		f.Set(k, v)
	}
	return f, nil
}

func overlayFragment(mode environment.Mode, base *config.Base, entry []string, out naming.OutputSpec, rules []pipeline.Rule, modal []plugins.Plugin) *fragment.Fragment {
	ruleVals := make([]fragment.Value, len(rules))
	for i, r := range rules {
		ruleVals[i] = fragment.Object(r.Fragment())
	}

	f := fragment.New().
		Set("mode", fragment.String(mode.String())).
		Set("entry", fragment.Strings(entry...)).
		Set("output", fragment.Object(out.Fragment())).
		Set("module", fragment.Object(fragment.New().Set("rules", fragment.List(ruleVals...)))).
		Set("plugins", plugins.List(modal))

	switch mode {
	case environment.Development:
		ds := base.DevServer
		f.Set("devServer", fragment.Object(fragment.New().
			Set("host", fragment.String(ds.Host)).
			Set("port", fragment.Int(int64(ds.Port))).
			Set("contentBase", fragment.String(ds.ContentBase)).
			Set("historyApiFallback", fragment.Bool(ds.HistoryAPIFallback)).
			Set("hot", fragment.Bool(ds.Hot))))
	case environment.Production:
	default:
		panic(fmt.Sprintf("compose: invalid mode %d", int(mode)))
	}
	return f
}

func fingerprint(tree *fragment.Fragment) (string, error) {
	canonical, err := artifact.Canonical(tree)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
