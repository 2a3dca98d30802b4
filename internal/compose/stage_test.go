package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStage_Advance(t *testing.T) {
	t.Parallel()

	var s stage
	for _, next := range []stage{stageModeResolved, stageBaseLoaded, stageOverlayAssembled, stageMerged, stageFinal} {
		s.advance(next)
		assert.Equal(t, next, s)
	}
	assert.Panics(t, func() { s.advance(stageFinal + 1) }, "Final is terminal")
}

func TestStage_AdvanceRejectsSkips(t *testing.T) {
	t.Parallel()

	var s stage
	assert.Panics(t, func() { s.advance(stageBaseLoaded) })
	assert.Panics(t, func() { s.advance(stageStart) })
	assert.Equal(t, "Start", s.String())
}
