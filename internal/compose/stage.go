package compose

import "fmt"

type stage int

const (
	stageStart stage = iota
	stageModeResolved
	stageBaseLoaded
	stageOverlayAssembled
	stageMerged
	stageFinal
)

func (s stage) String() string {
	switch s {
	case stageStart:
		return "Start"
	case stageModeResolved:
		return "ModeResolved"
	case stageBaseLoaded:
		return "BaseLoaded"
	case stageOverlayAssembled:
		return "OverlayAssembled"
	case stageMerged:
		return "Merged"
	case stageFinal:
		return "Final"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// advance moves s to next. Only the immediate successor is allowed; Final
// is terminal.
func (s *stage) advance(next stage) {
	if *s == stageFinal || next != *s+1 {
		panic(fmt.Sprintf("compose: illegal transition %s -> %s", *s, next))
	}
	*s = next
}
