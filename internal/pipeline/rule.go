package pipeline

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/vk/spabuild/internal/environment"
	"github.com/vk/spabuild/internal/fragment"
)

// Step is one named transformation with its options.
type Step struct {
	Loader  string
	Options *fragment.Fragment
}

// Rule binds an asset class to an ordered chain of steps. A rule without
// extensions is a catch-all: it competes for every extension at the lowest
// specificity, so it only wins where no fixed extension matches.
type Rule struct {
	Name       string
	Class      Class
	Extensions []string
	// Shadowed lists compound extensions owned by a more specific rule.
	// Files ending in one of them are not matched even though they also end
	// in one of Extensions.
	Shadowed []string
	Exclude  []string
	// Modes restricts the rule; empty means every mode.
	Modes []environment.Mode
	Steps []Step
}

// NewRule validates a rule declared outside the built-in set.
func NewRule(name string, extensions, exclude []string, modes []environment.Mode, steps []Step) (Rule, error) {
	if name == "" {
		return Rule{}, fmt.Errorf("rule must have a name")
	}
	if len(steps) == 0 {
		return Rule{}, fmt.Errorf("rule %q declares no steps", name)
	}
	for i, s := range steps {
		if s.Loader == "" {
			return Rule{}, fmt.Errorf("rule %q: step %d has no loader", name, i)
		}
	}
	for _, m := range modes {
		if !m.Valid() {
			return Rule{}, fmt.Errorf("rule %q: invalid mode %d", name, int(m))
		}
	}

	r := Rule{Name: name, Exclude: slices.Clone(exclude), Modes: slices.Clone(modes), Steps: slices.Clone(steps)}
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return Rule{}, fmt.Errorf("rule %q: extension %q must start with a dot", name, ext)
		}
		c, ok := ClassOf(ext)
		if !ok {
			return Rule{}, fmt.Errorf("rule %q: extension %q does not belong to any asset class", name, ext)
		}
		if r.Class != 0 && r.Class != c {
			return Rule{}, fmt.Errorf("rule %q: extensions span the %s and %s classes", name, r.Class, c)
		}
		r.Class = c
		r.Extensions = append(r.Extensions, strings.ToLower(ext))
	}
	return r, nil
}

// CatchAll reports whether r matches every class.
func (r Rule) CatchAll() bool {
	return len(r.Extensions) == 0
}

// AppliesTo reports whether r is active in mode.
func (r Rule) AppliesTo(mode environment.Mode) bool {
	return len(r.Modes) == 0 || slices.Contains(r.Modes, mode)
}

// specificity is the length of the longest extension of r that ext ends
// in. ok is false when r does not match ext at all.
func (r Rule) specificity(c Class, ext string) (score int, ok bool) {
	if r.CatchAll() {
		return 0, true
	}
	if r.Class != c {
		return 0, false
	}
	for _, own := range r.Extensions {
		if strings.HasSuffix(ext, own) && len(own) > score {
			score, ok = len(own), true
		}
	}
	return score, ok
}

func (r Rule) longest() int {
	n := 0
	for _, ext := range r.Extensions {
		n = max(n, len(ext))
	}
	return n
}

// Matches reports whether r handles the file name.
func (r Rule) Matches(file string) bool {
	if r.CatchAll() {
		return true
	}
	name := strings.ToLower(file)
	for _, ext := range r.Extensions {
		if !strings.HasSuffix(name, ext) {
			continue
		}
		shadowed := slices.ContainsFunc(r.Shadowed, func(s string) bool {
			return len(s) > len(ext) && strings.HasSuffix(name, s)
		})
		if !shadowed {
			return true
		}
	}
	return false
}

// Test returns the file pattern of r as a regular expression. Shadowed
// extensions become negative lookbehinds on the alternative they end in.
func (r Rule) Test() string {
	if r.CatchAll() {
		return ".*"
	}
	alts := make([]string, len(r.Extensions))
	for i, ext := range r.Extensions {
		var b strings.Builder
		for _, s := range r.Shadowed {
			if len(s) > len(ext) && strings.HasSuffix(s, ext) {
				b.WriteString(`(?<!` + regexp.QuoteMeta(strings.TrimSuffix(s, ext)+".") + `)`)
			}
		}
		b.WriteString(regexp.QuoteMeta(strings.TrimPrefix(ext, ".")))
		alts[i] = b.String()
	}
	return `\.(` + strings.Join(alts, "|") + `)$`
}

// Loaders returns the step names in chain order.
func (r Rule) Loaders() []string {
	out := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Loader
	}
	return out
}

// HasStep reports whether the chain contains loader.
func (r Rule) HasStep(loader string) bool {
	return slices.Contains(r.Loaders(), loader)
}

// LastStep returns the final step of the chain.
func (r Rule) LastStep() Step {
	if len(r.Steps) == 0 {
		return Step{}
	}
	return r.Steps[len(r.Steps)-1]
}

// Fragment renders r for the executor.
func (r Rule) Fragment() *fragment.Fragment {
	f := fragment.New().
		Set("name", fragment.String(r.Name)).
		Set("test", fragment.String(r.Test()))
	if len(r.Exclude) > 0 {
		f.Set("exclude", fragment.Strings(r.Exclude...))
	}
	use := make([]fragment.Value, len(r.Steps))
	for i, s := range r.Steps {
		sf := fragment.New().Set("loader", fragment.String(s.Loader))
		if s.Options.Len() > 0 {
			sf.Set("options", fragment.Object(s.Options.Clone()))
		}
		use[i] = fragment.Object(sf)
	}
	return f.Set("use", fragment.List(use...))
}

// Clone returns a deep copy of r.
func (r Rule) Clone() Rule {
	c := r
	c.Extensions = slices.Clone(r.Extensions)
	c.Shadowed = slices.Clone(r.Shadowed)
	c.Exclude = slices.Clone(r.Exclude)
	c.Modes = slices.Clone(r.Modes)
	c.Steps = make([]Step, len(r.Steps))
	for i, s := range r.Steps {
		c.Steps[i] = Step{Loader: s.Loader, Options: s.Options.Clone()}
	}
	return c
}
