package environment

import "fmt"

// Mode is the build variant. The zero value is invalid; only Development and
// Production exist.
type Mode int

const (
	Development Mode = iota + 1
	Production
)

// BuildTrigger is the lifecycle event that selects Production.
const BuildTrigger = "build"

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case Development:
		return "development"
	case Production:
		return "production"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the declared modes.
func (m Mode) Valid() bool {
	return m == Development || m == Production
}

// ParseMode maps a mode name back to its Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "development":
		return Development, nil
	case "production":
		return Production, nil
	}
	return 0, fmt.Errorf("unknown mode %q: must be 'development' or 'production'", s)
}

// Select returns dev or prod depending on m. Every mode-conditional value in
// the composer goes through Select so that both branches are always spelled
// out. It panics on an invalid Mode, which can only come from a programming
// error.
func Select[T any](m Mode, dev, prod T) T {
	switch m {
	case Development:
		return dev
	case Production:
		return prod
	}
	panic(fmt.Sprintf("environment: invalid mode %d", int(m)))
}
