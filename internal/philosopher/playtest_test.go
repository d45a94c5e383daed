package philosopher

import (
	"testing"

	"assessment-forge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPredictCompletionRateDefaultsWhenBudgetsUnset(t *testing.T) {
	assert.Equal(t, 0.9, predictCompletionRate(domain.Blueprint{}))
}

func TestPredictCompletionRateScalesWithPacingRatio(t *testing.T) {
	bp := domain.Blueprint{
		UAR:  domain.TeacherIntent{TimeMinutes: 20},
		Plan: domain.Plan{TotalEstimatedTimeSeconds: 1200},
	}
	assert.Equal(t, 1.0, predictCompletionRate(bp))
}

func TestPredictCompletionRateClampsLowRatioToFloor(t *testing.T) {
	bp := domain.Blueprint{
		UAR:  domain.TeacherIntent{TimeMinutes: 1},
		Plan: domain.Plan{TotalEstimatedTimeSeconds: 3600},
	}
	assert.Equal(t, 0.1, predictCompletionRate(bp))
}

func TestPredictEngagementMixedOrderingAndWideScopeBoth(t *testing.T) {
	bp := domain.Blueprint{Plan: domain.Plan{OrderingStrategy: domain.OrderingMixed, ScopeWidth: 5}}
	assert.InDelta(t, 0.85, predictEngagement(bp), 1e-9)
}

func TestPredictEngagementProgressiveNarrowScopeIsBaseline(t *testing.T) {
	bp := domain.Blueprint{Plan: domain.Plan{OrderingStrategy: domain.OrderingProgressive, ScopeWidth: 1}}
	assert.Equal(t, 0.6, predictEngagement(bp))
}

func TestConfusionHotspotsFlagsSlotsRunningLong(t *testing.T) {
	bp := domain.Blueprint{Plan: domain.Plan{Slots: []domain.Slot{
		{Index: 1, EstimatedTimeSeconds: 10},
	}}}
	longPrompt := "Explain in great and exhaustive detail every single step of the entire water cycle process from start to finish using full sentences"
	items := []domain.GeneratedItem{{SlotID: 1, Prompt: longPrompt}}

	hotspots := confusionHotspots(bp, items)
	assert.NotEmpty(t, hotspots)
}

func TestConfusionHotspotsIgnoresSlotsWithoutPacingBudget(t *testing.T) {
	bp := domain.Blueprint{Plan: domain.Plan{Slots: []domain.Slot{{Index: 1, EstimatedTimeSeconds: 0}}}}
	items := []domain.GeneratedItem{{SlotID: 1, Prompt: "A very very very very very very very very very long prompt indeed"}}
	assert.Empty(t, confusionHotspots(bp, items))
}

func TestEstimateSecondsFloorsAtTenForShortPrompts(t *testing.T) {
	assert.Equal(t, 10.0, estimateSeconds("yes"))
}

func TestEstimateSecondsScalesWithWordCount(t *testing.T) {
	assert.Equal(t, 16.0, estimateSeconds("one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty"))
}

func TestPlaytestAggregatesAllThreeSignals(t *testing.T) {
	bp := domain.Blueprint{
		UAR: domain.TeacherIntent{TimeMinutes: 10},
		Plan: domain.Plan{
			TotalEstimatedTimeSeconds: 600,
			OrderingStrategy:          domain.OrderingMixed,
		},
	}
	report := Playtest(bp, nil)
	assert.Greater(t, report.PredictedCompletionRate, 0.0)
	assert.Greater(t, report.PredictedEngagement, 0.0)
}
