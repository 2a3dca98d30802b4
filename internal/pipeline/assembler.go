package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/spabuild/internal/ctxlog"
	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/naming"
)

// AmbiguousRuleFault is returned when two or more rules tie for an
// extension of an asset class at the highest specificity.
type AmbiguousRuleFault struct {
	Class       Class
	Extension   string
	Specificity int
	Rules       []string
}

func (f *AmbiguousRuleFault) Error() string {
	return fmt.Sprintf("ambiguous rules for %s assets: %s all match %q with specificity %d",
		f.Class, strings.Join(f.Rules, ", "), f.Extension, f.Specificity)
}

// Assembler selects the rules that handle each asset class.
type Assembler struct {
	extra []Rule
}

// NewAssembler creates an assembler that considers extra rules alongside
// the built-in ones.
func NewAssembler(extra ...Rule) *Assembler {
	return &Assembler{extra: extra}
}

// Assemble returns the selected rules in Classes() order. Every extension
// of a class is handled by exactly one rule; within a class the rules with
// longer extensions come first.
func (a *Assembler) Assemble(ctx context.Context, mode environment.Mode, out naming.OutputSpec) ([]Rule, error) {
	logger := ctxlog.FromContext(ctx)

	candidates := builtins(mode, out)
	firstExtra := len(candidates)
	for _, r := range a.extra {
		if r.AppliesTo(mode) {
			candidates = append(candidates, r)
		} else {
			logger.Debug("Rule skipped for mode.", "rule", r.Name, "mode", mode.String())
		}
	}

	selected := make([]bool, len(candidates))
	rules := make([]Rule, 0, len(candidates))
	for _, c := range classes {
		picked, err := selectRules(c, candidates, selected)
		if err != nil {
			return nil, err
		}
		for _, r := range picked {
			logger.Debug("Rule selected.", "class", c.String(), "rule", r.Name, "extensions", r.Extensions, "steps", r.Loaders())
		}
		rules = append(rules, picked...)
	}

	for i := firstExtra; i < len(candidates); i++ {
		if !selected[i] {
			logger.Warn("Rule not selected for any extension.", "rule", candidates[i].Name)
		}
	}
	return rules, nil
}

// selectRules resolves every extension declared for class c to the
// candidate with the longest matching extension. Each winner is narrowed
// to the extensions it won and shadows the compound ones it lost.
func selectRules(c Class, candidates []Rule, selected []bool) ([]Rule, error) {
	var exts []string
	for _, r := range candidates {
		if r.Class != c {
			continue
		}
		for _, ext := range r.Extensions {
			if !slices.Contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
	}
	if len(exts) == 0 {
		return nil, fmt.Errorf("no rule matches %s assets", c)
	}

	owner := make(map[string]int, len(exts))
	won := make(map[int][]string)
	var order []int
	for _, ext := range exts {
		best := -1
		var top []int
		for i, r := range candidates {
			score, ok := r.specificity(c, ext)
			if !ok {
				continue
			}
			switch {
			case score > best:
				best = score
				top = []int{i}
			case score == best:
				top = append(top, i)
			}
		}
		if len(top) > 1 {
			names := make([]string, len(top))
			for i, idx := range top {
				names[i] = candidates[idx].Name
			}
			return nil, &AmbiguousRuleFault{Class: c, Extension: ext, Specificity: best, Rules: names}
		}
		w := top[0]
		if _, seen := won[w]; !seen {
			order = append(order, w)
		}
		won[w] = append(won[w], ext)
		owner[ext] = w
	}

	rules := make([]Rule, 0, len(order))
	for _, idx := range order {
		r := candidates[idx].Clone()
		r.Class = c
		r.Extensions = won[idx]
		for _, ext := range exts {
			if owner[ext] == idx {
				continue
			}
			if _, ok := r.specificity(c, ext); ok {
				r.Shadowed = append(r.Shadowed, ext)
			}
		}
		selected[idx] = true
		rules = append(rules, r)
	}
	slices.SortStableFunc(rules, func(a, b Rule) int { return cmp.Compare(b.longest(), a.longest()) })
	return rules, nil
}

// Match returns the first of rules that handles the file name.
func Match(rules []Rule, file string) (Rule, bool) {
	for _, r := range rules {
		if r.Matches(file) {
			return r, true
		}
	}
	return Rule{}, false
}
