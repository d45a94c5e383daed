package scribe

import (
	"testing"

	"assessment-forge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestApplyRunOutcomeCleanRunRaisesBothScores(t *testing.T) {
	d := &domain.Dossier{TrustScore: 5, StabilityScore: 5}
	applyRunOutcome(d, nil, 5)
	assert.Equal(t, 6.0, d.TrustScore)
	assert.Equal(t, 6.0, d.StabilityScore)
	assert.Equal(t, 1, d.DomainMastery.Runs)
	assert.Equal(t, 1, d.DomainMastery.CleanRuns)
}

func TestApplyRunOutcomeHeavyViolationsLowerTrustMore(t *testing.T) {
	d := &domain.Dossier{TrustScore: 5, StabilityScore: 5}
	violations := make([]domain.Violation, 5)
	applyRunOutcome(d, violations, 5)
	assert.Equal(t, 3.0, d.TrustScore)
	assert.Equal(t, 3.0, d.StabilityScore, "violation density of 1.0 triggers the harsher stability penalty")
}

func TestApplyRunOutcomeLightViolationsOnlyTouchStability(t *testing.T) {
	d := &domain.Dossier{TrustScore: 5, StabilityScore: 5}
	applyRunOutcome(d, []domain.Violation{{}, {}}, 10)
	assert.Equal(t, 5.0, d.TrustScore)
	assert.Equal(t, 6.0, d.StabilityScore)
}

func TestClamp10BoundsToRange(t *testing.T) {
	assert.Equal(t, 0.0, clamp10(-3))
	assert.Equal(t, 10.0, clamp10(15))
	assert.Equal(t, 4.0, clamp10(4))
}

func TestFrictionTierThresholds(t *testing.T) {
	assert.Equal(t, domain.FrictionNone, frictionTier(1, 10))
	assert.Equal(t, domain.FrictionMild, frictionTier(4, 10))
	assert.Equal(t, domain.FrictionSystemic, frictionTier(8, 10))
	assert.Equal(t, domain.FrictionSystemic, frictionTier(11, 20), "more than 10 rewrites is systemic regardless of ratio")
}

func TestPruneBehaviorsKeepsMostRecentTail(t *testing.T) {
	in := []string{"a", "b", "c", "d", "e", "f"}
	out := pruneBehaviors(in, 5)
	assert.Equal(t, []string{"b", "c", "d", "e", "f"}, out)
}

func TestPruneBehaviorsNoopUnderLimit(t *testing.T) {
	in := []string{"a", "b"}
	assert.Equal(t, in, pruneBehaviors(in, 5))
}
