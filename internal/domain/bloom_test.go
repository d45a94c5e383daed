package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBloomIndexOrdering(t *testing.T) {
	t.Run("levels ascend in declared order", func(t *testing.T) {
		for i, level := range BloomLevels {
			assert.Equal(t, i, level.Index())
		}
	})

	t.Run("unrecognized level has index -1", func(t *testing.T) {
		assert.Equal(t, -1, BloomLevel("invented").Index())
	})

	t.Run("Valid reflects membership in the six levels", func(t *testing.T) {
		assert.True(t, BloomApply.Valid())
		assert.False(t, BloomLevel("synthesis").Valid())
	})
}

func TestMeets(t *testing.T) {
	t.Run("detected at or above intended meets", func(t *testing.T) {
		assert.True(t, Meets(BloomAnalyze, BloomApply))
		assert.True(t, Meets(BloomApply, BloomApply))
	})

	t.Run("detected below intended does not meet", func(t *testing.T) {
		assert.False(t, Meets(BloomUnderstand, BloomApply))
	})
}

func TestClamp(t *testing.T) {
	t.Run("within band is unchanged", func(t *testing.T) {
		assert.Equal(t, BloomApply, Clamp(BloomApply, BloomUnderstand, BloomAnalyze))
	})

	t.Run("below floor clamps up to floor", func(t *testing.T) {
		assert.Equal(t, BloomUnderstand, Clamp(BloomRemember, BloomUnderstand, BloomAnalyze))
	})

	t.Run("above ceiling clamps down to ceiling", func(t *testing.T) {
		assert.Equal(t, BloomAnalyze, Clamp(BloomCreate, BloomUnderstand, BloomAnalyze))
	})

	t.Run("invalid input resolves to floor", func(t *testing.T) {
		assert.Equal(t, BloomUnderstand, Clamp(BloomLevel("nope"), BloomUnderstand, BloomAnalyze))
	})
}

func TestStep(t *testing.T) {
	t.Run("steps up within range", func(t *testing.T) {
		assert.Equal(t, BloomApply, Step(BloomUnderstand, 1))
	})

	t.Run("steps down within range", func(t *testing.T) {
		assert.Equal(t, BloomUnderstand, Step(BloomApply, -1))
	})

	t.Run("clamps at the top", func(t *testing.T) {
		assert.Equal(t, BloomCreate, Step(BloomCreate, 3))
	})

	t.Run("clamps at the bottom", func(t *testing.T) {
		assert.Equal(t, BloomRemember, Step(BloomRemember, -3))
	})
}
