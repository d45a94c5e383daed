package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratedItemIsMCQ(t *testing.T) {
	assert.True(t, GeneratedItem{QuestionType: QuestionMultipleChoice}.IsMCQ())
	assert.False(t, GeneratedItem{QuestionType: QuestionShortAnswer}.IsMCQ())
}

func TestGatekeeperReportHighestSeverity(t *testing.T) {
	t.Run("no violations is empty", func(t *testing.T) {
		r := GatekeeperReport{}
		assert.Equal(t, Severity(""), r.HighestSeverity())
	})

	t.Run("high outranks medium and low", func(t *testing.T) {
		r := GatekeeperReport{Violations: []Violation{
			{Severity: SeverityLow},
			{Severity: SeverityHigh},
			{Severity: SeverityMedium},
		}}
		assert.Equal(t, SeverityHigh, r.HighestSeverity())
	})

	t.Run("medium outranks low when no high present", func(t *testing.T) {
		r := GatekeeperReport{Violations: []Violation{
			{Severity: SeverityLow},
			{Severity: SeverityMedium},
		}}
		assert.Equal(t, SeverityMedium, r.HighestSeverity())
	})
}
