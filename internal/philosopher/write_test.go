package philosopher

import (
	"testing"

	"assessment-forge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestWriteRestartsOnZeroItems(t *testing.T) {
	report := Write(domain.Blueprint{}, nil, domain.GatekeeperReport{})
	assert.Equal(t, "restart", report.Status)
	assert.Equal(t, 0.0, report.QualityScore)
}

func TestWriteCleanRunScoresNearPerfect(t *testing.T) {
	bp := domain.Blueprint{
		UAR:  domain.TeacherIntent{GradeBand: "8", TimeMinutes: 30},
		Plan: domain.Plan{QuestionCount: 2, TotalEstimatedTimeSeconds: 600, RealisticTotalMinutes: 10},
	}
	items := []domain.GeneratedItem{
		{SlotID: 1, Prompt: "Explain why plants need sunlight.", Answer: "they photosynthesize"},
		{SlotID: 2, Prompt: "Describe the water cycle in your own words.", Answer: "evaporation, condensation, precipitation"},
	}

	report := Write(bp, items, domain.GatekeeperReport{})

	assert.Equal(t, "complete", report.Status)
	assert.Equal(t, 0, report.MissingSlotCount)
	assert.Equal(t, 10.0, report.QualityScore)
}

func TestWriteDeductsForMissingSlotsAndViolations(t *testing.T) {
	bp := domain.Blueprint{
		UAR:  domain.TeacherIntent{GradeBand: "8"},
		Plan: domain.Plan{QuestionCount: 3},
	}
	items := []domain.GeneratedItem{{SlotID: 1, Prompt: "Define photosynthesis."}}
	report := Write(bp, items, domain.GatekeeperReport{Violations: []domain.Violation{
		{Type: domain.ViolationMissingField, Severity: domain.SeverityHigh},
	}})

	assert.Equal(t, 2, report.MissingSlotCount)
	assert.Less(t, report.QualityScore, 10.0)
	assert.Equal(t, 1, report.ViolationSummary[string(domain.ViolationMissingField)])
}

func TestWritePacingRealismNoteWhenOverBudget(t *testing.T) {
	bp := domain.Blueprint{
		UAR: domain.TeacherIntent{TimeMinutes: 10},
		Plan: domain.Plan{
			QuestionCount:             1,
			TotalEstimatedTimeSeconds: 900,
			RealisticTotalMinutes:     15,
		},
	}
	items := []domain.GeneratedItem{{SlotID: 1, Prompt: "Solve the equation."}}

	report := Write(bp, items, domain.GatekeeperReport{})
	assert.NotEmpty(t, report.PacingRealismNotes)
}

func TestLexicalCheckFlagsLongSentencesForLowGrades(t *testing.T) {
	longSentence := "Explain precisely and comprehensively how photosynthesis transforms electromagnetic radiation into chemical potential energy within specialized cellular organelles called chloroplasts."
	notes := lexicalCheck(3, []domain.GeneratedItem{{SlotID: 1, Prompt: longSentence}})
	assert.NotEmpty(t, notes)
}
