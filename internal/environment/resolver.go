package environment

import (
	"context"
	"os"
	"unicode"

	"github.com/vk/spabuild/internal/ctxlog"
)

// LifecycleEventVar is consulted when the caller does not name the
// invocation event explicitly.
const LifecycleEventVar = "npm_lifecycle_event"

// LookupFunc reads one entry of an environment snapshot.
type LookupFunc func(key string) (string, bool)

// ProcessLookup reads the live process environment.
func ProcessLookup() LookupFunc {
	return os.LookupEnv
}

// MapLookup serves a fixed map. Useful for callers that already hold a
// snapshot, and for tests.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

// Invocation describes how the composer was launched.
type Invocation struct {
	// Event is the lifecycle event, e.g. "build" or "start". When empty the
	// resolver falls back to LifecycleEventVar.
	Event string
}

// Resolution is everything the rest of the composition needs from the
// environment.
type Resolution struct {
	Event     string
	Mode      Mode
	Variables VariableSet
}

// Resolver turns an invocation plus an environment snapshot into a
// Resolution.
type Resolver struct {
	lookup LookupFunc
}

// NewResolver creates a resolver over the given snapshot. A nil lookup reads
// the process environment.
func NewResolver(lookup LookupFunc) *Resolver {
	if lookup == nil {
		lookup = ProcessLookup()
	}
	return &Resolver{lookup: lookup}
}

// Resolve determines the mode and reads every enumerated variable. It has
// no side effects and returns the same result for the same snapshot.
func (r *Resolver) Resolve(ctx context.Context, inv Invocation) (Resolution, error) {
	logger := ctxlog.FromContext(ctx)

	event := inv.Event
	if event == "" {
		if v, ok := r.lookup(LifecycleEventVar); ok {
			logger.Debug("Invocation event taken from environment.", "var", LifecycleEventVar, "event", v)
			event = v
		}
	}

	mode, err := ModeFor(event)
	if err != nil {
		return Resolution{}, err
	}

	values := make(map[Name]Value, len(names))
	for _, n := range names {
		if v, ok := r.lookup(string(n)); ok {
			values[n] = SetValue(v)
		} else {
			values[n] = Unset()
		}
	}
	logger.Debug("Environment resolved.", "event", event, "mode", mode.String(), "variables", len(values))

	return Resolution{
		Event:     event,
		Mode:      mode,
		Variables: VariableSet{values: values},
	}, nil
}

// ModeFor applies the trigger rule: BuildTrigger selects Production, every
// other well-formed event selects Development.
func ModeFor(event string) (Mode, error) {
	if event == "" {
		return 0, &ModeResolutionFault{Reason: "no invocation event given and " + LifecycleEventVar + " is not set"}
	}
	for _, r := range event {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return 0, &ModeResolutionFault{Event: event, Reason: "event contains whitespace or control characters"}
		}
	}
	if event == BuildTrigger {
		return Production, nil
	}
	return Development, nil
}
