package environment

import (
	"fmt"
	"strings"
)

// ModeResolutionFault is returned when the invocation context does not map
// to a mode. Nothing is composed after it.
type ModeResolutionFault struct {
	Event  string
	Reason string
}

func (f *ModeResolutionFault) Error() string {
	if f.Event == "" {
		return "mode resolution failed: " + f.Reason
	}
	return fmt.Sprintf("mode resolution failed for event %q: %s", f.Event, f.Reason)
}

// MissingVariableFault is returned when variables requested for injection
// are absent and the mode does not tolerate it.
type MissingVariableFault struct {
	Mode  Mode
	Names []Name
}

func (f *MissingVariableFault) Error() string {
	parts := make([]string, len(f.Names))
	for i, n := range f.Names {
		parts[i] = string(n)
	}
	return fmt.Sprintf("missing environment variables in %s mode: %s", f.Mode, strings.Join(parts, ", "))
}

// UnknownVariableFault is returned when a variable outside the fixed
// enumeration is requested for injection.
type UnknownVariableFault struct {
	Names []string
}

func (f *UnknownVariableFault) Error() string {
	return fmt.Sprintf("variables not in the injectable set: %s", strings.Join(f.Names, ", "))
}
