package scribe

import (
	"testing"

	"assessment-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeCandidatesDedupesByViolationType(t *testing.T) {
	violations := []domain.Violation{
		{Type: domain.ViolationMCQOptionsInvalid},
		{Type: domain.ViolationMCQOptionsInvalid},
		{Type: domain.ViolationPacing},
	}
	candidates := synthesizeCandidates(violations, "algebra")
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.Equal(t, domain.PolarityRequire, c.Polarity)
		assert.Equal(t, "algebra", c.Domain)
		assert.Equal(t, 0.5, c.Weight)
	}
}

func TestGuardrailMessageKnownAndUnknownTypes(t *testing.T) {
	assert.Contains(t, guardrailMessage(domain.ViolationMCQOptionsInvalid), "4 unique")
	assert.Contains(t, guardrailMessage(domain.ViolationType("made-up")), "made-up")
}

func TestMergeGuardrailsReinforcesExistingRule(t *testing.T) {
	existing := []domain.GuardrailRule{
		{Category: domain.ViolationPacing, Polarity: domain.PolarityRequire, Domain: "algebra", Weight: 0.5, TriggerCount: 1},
	}
	incoming := []domain.GuardrailRule{
		{Category: domain.ViolationPacing, Polarity: domain.PolarityRequire, Domain: "algebra"},
	}

	merged := mergeGuardrails(existing, incoming, 3)
	require.Len(t, merged, 1)
	assert.InDelta(t, 0.65, merged[0].Weight, 1e-9)
	assert.Equal(t, 2, merged[0].TriggerCount)
	assert.Equal(t, 3, merged[0].LastTriggeredRun)
}

func TestMergeGuardrailsAppendsNewRuleWithGeneratedID(t *testing.T) {
	incoming := []domain.GuardrailRule{
		{Category: domain.ViolationPacing, Polarity: domain.PolarityRequire, Domain: "algebra"},
	}
	merged := mergeGuardrails(nil, incoming, 2)
	require.Len(t, merged, 1)
	assert.Equal(t, "algebra:pacing-violation:require", merged[0].ID)
	assert.Equal(t, 1, merged[0].TriggerCount)
	assert.Equal(t, 2, merged[0].CreatedAtRun)
}

func TestMin1CapsAtOne(t *testing.T) {
	assert.Equal(t, 1.0, min1(1.2))
	assert.Equal(t, 0.4, min1(0.4))
}

func TestDecayGuardrailsDropsLowWeightRules(t *testing.T) {
	rules := []domain.GuardrailRule{
		{Weight: 0.31, LastTriggeredRun: 0},
	}
	out := decayGuardrails(rules, 50, 5, 5, 0.3)
	assert.Empty(t, out)
}

func TestDecayGuardrailsKeepsRecentlyTriggeredRule(t *testing.T) {
	rules := []domain.GuardrailRule{
		{Weight: 1.0, LastTriggeredRun: 10},
	}
	out := decayGuardrails(rules, 10, 5, 5, 0.3)
	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].Weight)
}

func TestDecayRateHighTrustLowStability(t *testing.T) {
	assert.InDelta(t, 0.13, decayRate(9, 5), 1e-9)
	assert.InDelta(t, 0.08, decayRate(9, 1), 1e-9)
	assert.InDelta(t, 0.01, decayRate(0, 0), 1e-9)
}

func TestGetInjectableFiltersSortsAndCaps(t *testing.T) {
	rules := []domain.GuardrailRule{
		{ID: "low", Weight: 0.4},
		{ID: "mid", Weight: 0.6},
		{ID: "high", Weight: 0.9},
	}
	out := getInjectable(rules, 1)
	require.Len(t, out, 1)
	assert.Equal(t, "high", out[0].ID)
}
