package gatekeeper

import (
	"testing"

	"assessment-forge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func slotFor(level domain.BloomLevel) domain.Slot {
	return domain.Slot{Index: 1, CognitiveProcess: level, Type: domain.QuestionShortAnswer}
}

func TestCheckItemEmptyPromptIsHighSeverity(t *testing.T) {
	g := New(0.7, 3)
	item := domain.GeneratedItem{QuestionType: domain.QuestionShortAnswer, Answer: "42"}
	report := g.CheckItem(slotFor(domain.BloomApply), item, ItemContext{})

	assert.Equal(t, domain.SeverityHigh, report.HighestSeverity())
	found := false
	for _, v := range report.Violations {
		if v.Type == domain.ViolationMissingField && v.Field == "prompt" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckItemMCQRequiresFourUniqueOptions(t *testing.T) {
	g := New(0.7, 3)
	item := domain.GeneratedItem{
		QuestionType: domain.QuestionMultipleChoice,
		Prompt:       "Solve for x.",
		Options:      []string{"1", "1", "2"},
		Answer:       "1",
	}
	report := g.CheckItem(slotFor(domain.BloomApply), item, ItemContext{})

	var types []domain.ViolationType
	for _, v := range report.Violations {
		types = append(types, v.Type)
	}
	assert.Contains(t, types, domain.ViolationMCQOptionsInvalid)
}

func TestCheckItemMCQAnswerMustMatchAnOptionVerbatim(t *testing.T) {
	g := New(0.7, 3)
	item := domain.GeneratedItem{
		QuestionType: domain.QuestionMultipleChoice,
		Prompt:       "Solve for x.",
		Options:      []string{"1", "2", "3", "4"},
		Answer:       "5",
	}
	report := g.CheckItem(slotFor(domain.BloomApply), item, ItemContext{})

	var types []domain.ViolationType
	for _, v := range report.Violations {
		types = append(types, v.Type)
	}
	assert.Contains(t, types, domain.ViolationMCQAnswerMismatch)
}

func TestCheckItemBloomBelowSlotIsFlagged(t *testing.T) {
	g := New(0.7, 3)
	item := domain.GeneratedItem{
		QuestionType: domain.QuestionShortAnswer,
		Prompt:       "Define the term photosynthesis.",
		Answer:       "the process plants use to convert light to energy",
	}
	report := g.CheckItem(slotFor(domain.BloomAnalyze), item, ItemContext{})

	var types []domain.ViolationType
	for _, v := range report.Violations {
		types = append(types, v.Type)
	}
	assert.Contains(t, types, domain.ViolationCognitiveDemandMismatch)
}

func TestCheckItemForbiddenContentIsDetectedCaseInsensitively(t *testing.T) {
	g := New(0.7, 3)
	item := domain.GeneratedItem{
		QuestionType: domain.QuestionShortAnswer,
		Prompt:       "A train leaves the station carrying a CALCULATOR.",
		Answer:       "ok",
	}
	report := g.CheckItem(slotFor(domain.BloomRemember), item, ItemContext{ForbidPhrases: []string{"calculator"}})

	var types []domain.ViolationType
	for _, v := range report.Violations {
		types = append(types, v.Type)
	}
	assert.Contains(t, types, domain.ViolationForbiddenContent)
}

func TestCheckItemCleanItemHasNoHighSeverity(t *testing.T) {
	g := New(0.7, 3)
	item := domain.GeneratedItem{
		QuestionType: domain.QuestionShortAnswer,
		Prompt:       "Analyze and compare the two photosynthesis diagrams for key differences.",
		Answer:       "a full worked comparison",
	}
	ctx := ItemContext{TopicTokens: []string{"photosynthesis"}}
	report := g.CheckItem(slotFor(domain.BloomAnalyze), item, ctx)

	assert.NotEqual(t, domain.SeverityHigh, report.HighestSeverity())
}

func TestClassifyBloomLevelPicksHighestMatchingVerb(t *testing.T) {
	level := ClassifyBloomLevel("First define the term, then compare and contrast the two models.")
	assert.Equal(t, domain.BloomAnalyze, level)
}

func TestClassifyBloomLevelDefaultsToRememberWithNoVerbMatch(t *testing.T) {
	level := ClassifyBloomLevel("xyzzy plugh")
	assert.Equal(t, domain.BloomRemember, level)
}

func TestBloomMeets(t *testing.T) {
	assert.True(t, BloomMeets(domain.BloomEvaluate, domain.BloomApply))
	assert.False(t, BloomMeets(domain.BloomUnderstand, domain.BloomApply))
}
