package constraints

import (
	"testing"

	"assessment-forge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestClassifyMatchesCatalogPhrases(t *testing.T) {
	classified := Classify("Please, no word problems and no calculators today.", nil)

	var types []domain.ConstraintType
	for _, c := range classified {
		types = append(types, c.Type)
	}
	assert.Contains(t, types, domain.ConstraintForbiddenContent)
	assert.Len(t, classified, 2)
}

func TestClassifyPriorityIsExplicitWhenCanonicalHintCorroborates(t *testing.T) {
	hints := map[domain.ConstraintType]string{
		domain.ConstraintBloomRaise: string(domain.BloomAnalyze),
	}
	classified := Classify("push them to analyze", hints)
	assert.Len(t, classified, 1)
	assert.Equal(t, domain.PriorityExplicit, classified[0].Priority)
}

func TestClassifyPriorityIsHeuristicWithoutCorroboration(t *testing.T) {
	classified := Classify("push them to analyze", nil)
	assert.Len(t, classified, 1)
	assert.Equal(t, domain.PriorityHeuristic, classified[0].Priority)
}

func TestResolveDropsContradictoryLowerPriority(t *testing.T) {
	classified := []domain.ClassifiedConstraint{
		{Type: domain.ConstraintBloomCap, Polarity: domain.PolarityRequire, Priority: domain.PriorityHeuristic, SourceText: "heuristic cap", Seq: 0},
		{Type: domain.ConstraintBloomCap, Polarity: domain.PolarityForbid, Priority: domain.PriorityExplicit, SourceText: "explicit override", Seq: 1},
	}
	resolved, warnings := Resolve(classified)
	assert.Len(t, resolved, 1)
	assert.Equal(t, "explicit override", resolved[0].SourceText)
	assert.Len(t, warnings, 1)
}

func TestResolveTieBreaksOnRecency(t *testing.T) {
	classified := []domain.ClassifiedConstraint{
		{Type: domain.ConstraintScopeNarrow, Polarity: domain.PolarityRequire, Priority: domain.PriorityHeuristic, SourceText: "older", Seq: 0},
		{Type: domain.ConstraintScopeNarrow, Polarity: domain.PolarityForbid, Priority: domain.PriorityHeuristic, SourceText: "newer", Seq: 1},
	}
	resolved, _ := Resolve(classified)
	assert.Len(t, resolved, 1)
	assert.Equal(t, "newer", resolved[0].SourceText)
}

func TestDeriveCapAlwaysWinsOverRaise(t *testing.T) {
	resolved := []domain.ClassifiedConstraint{
		{Type: domain.ConstraintBloomCap, Value: string(domain.BloomUnderstand)},
		{Type: domain.ConstraintBloomRaise, Value: string(domain.BloomCreate)},
	}
	derived := Derive(resolved)
	assert.NotNil(t, derived.CapBloomAt)
	assert.Equal(t, domain.BloomUnderstand, *derived.CapBloomAt)
	assert.Nil(t, derived.RaiseBloomCeiling)
}

func TestDeriveScopeAndPacingKnobs(t *testing.T) {
	resolved := []domain.ClassifiedConstraint{
		{Type: domain.ConstraintScopeBroad},
		{Type: domain.ConstraintPacingStrict},
	}
	derived := Derive(resolved)
	assert.NotNil(t, derived.ScopeWidth)
	assert.Equal(t, 6, *derived.ScopeWidth)
	assert.NotNil(t, derived.PacingTolerance)
}

func TestRunFullPipeline(t *testing.T) {
	resolution := Run("don't go past apply, no calculators", nil)
	assert.NotEmpty(t, resolution.Classified)
	assert.NotEmpty(t, resolution.Resolved)
	assert.NotNil(t, resolution.Derived.CapBloomAt)
	assert.Equal(t, domain.BloomApply, *resolution.Derived.CapBloomAt)
}
