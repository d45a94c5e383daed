// Package architect turns a TeacherIntent into a Blueprint: a rigor
// band, a cognitive distribution, an ordered set of slots, and pacing
// figures the Writer must hit.
package architect

import (
	"fmt"
	"math"

	"assessment-forge/internal/constraints"
	"assessment-forge/internal/domain"
	"assessment-forge/internal/rigor"
)

// Architect builds blueprints. Every request-scoped dependency arrives
// as a Plan() argument; the only state it carries is the configured
// consecutive-same-level repeat limit used when interleaving slots, so
// a single instance is safe to share across concurrent pipeline runs.
type Architect struct {
	consecutiveRepeatMax int
}

// New returns an Architect configured with the consecutive-same-level
// repeat limit (default 3) used by the mixed ordering strategy.
func New(consecutiveRepeatMax int) *Architect {
	if consecutiveRepeatMax <= 0 {
		consecutiveRepeatMax = 3
	}
	return &Architect{consecutiveRepeatMax: consecutiveRepeatMax}
}

// Plan implements the Architect contract: plan(intent) -> Blueprint.
// prescriptions is not read here: it does not change the quantitative
// plan, the Blueprint's warnings or its constraints.
func (a *Architect) Plan(intent domain.TeacherIntent, prescriptions domain.CompensationProfile) (domain.Blueprint, error) {
	intent = normalize(intent)

	resolution := constraints.Run(intent.AdditionalDetails, canonicalHints(intent))

	profile := rigor.Resolve(rigor.Input{
		StudentLevel:   intent.StudentLevel,
		AssessmentType: intent.AssessmentType,
		TimeMinutes:    intent.TimeMinutes,
		Derived:        resolution.Derived,
	})

	distribution, warnings := buildDistribution(intent, profile)
	resolution.Warnings = append(resolution.Warnings, warnings...)

	slots := allocateSlots(intent, distribution, profile, a.consecutiveRepeatMax)

	plan := domain.Plan{
		Intensity:             intensityFor(intent.StudentLevel),
		ScopeWidth:            scopeWidth(resolution.Derived),
		DepthFloor:            profile.DepthFloor,
		DepthCeiling:          profile.DepthCeiling,
		DifficultyProfile:     difficultyProfileForLevel[intent.StudentLevel],
		QuestionCount:         intent.QuestionCount,
		CognitiveDistribution: distribution,
		OrderingStrategy:      orderingStrategyFor(intent),
		Slots:                 slots,
	}

	if w := applyPacing(&plan, intent); w != "" {
		resolution.Warnings = append(resolution.Warnings, w)
	}

	bp := domain.Blueprint{
		UAR:         intent,
		Plan:        plan,
		Constraints: resolution,
		Warnings:    resolution.Warnings,
	}

	if err := validate(bp); err != nil {
		repaired, ok := repair(bp)
		if !ok {
			return domain.Blueprint{}, fmt.Errorf("architect: %w", err)
		}
		bp = repaired
	}

	return bp, nil
}

func canonicalHints(intent domain.TeacherIntent) map[domain.ConstraintType]string {
	hints := map[domain.ConstraintType]string{}
	if intent.MathFormat != "" {
		hints[domain.ConstraintFormatPreference] = string(intent.MathFormat)
	}
	return hints
}

// normalize fills in default question types and math format, and infers
// question count from the time budget when omitted. The grade band is
// passed through unchanged.
func normalize(intent domain.TeacherIntent) domain.TeacherIntent {
	if len(intent.QuestionTypes) == 0 {
		intent.QuestionTypes = defaultQuestionTypes[intent.AssessmentType]
		if len(intent.QuestionTypes) == 0 {
			intent.QuestionTypes = []domain.QuestionType{domain.QuestionShortAnswer}
		}
	}
	if intent.QuestionCount <= 0 {
		intent.QuestionCount = inferQuestionCount(intent)
	}
	if intent.QuestionCount < 1 {
		intent.QuestionCount = 1
	}
	if intent.MathFormat == "" {
		intent.MathFormat = domain.MathUnicode
	}
	return intent
}

func inferQuestionCount(intent domain.TeacherIntent) int {
	if intent.TimeMinutes <= 0 {
		return 10
	}
	weighted := weightedPacing(intent.QuestionTypes)
	if weighted <= 0 {
		weighted = 2.0
	}
	return int(math.Round(float64(intent.TimeMinutes) / weighted))
}

// weightedPacing averages the per-minute pacing cost across the
// requested question types.
func weightedPacing(types []domain.QuestionType) float64 {
	if len(types) == 0 {
		return 2.0
	}
	sum := 0.0
	for _, t := range types {
		m, ok := pacingMinutesPerType[t]
		if !ok {
			m = 2.0
		}
		sum += m
	}
	return sum / float64(len(types))
}

func intensityFor(level domain.StudentLevel) float64 {
	switch level {
	case domain.LevelRemedial:
		return 0.6
	case domain.LevelHonors:
		return 1.2
	case domain.LevelAP:
		return 1.4
	default:
		return 1.0
	}
}

func scopeWidth(derived domain.DerivedStructuralConstraints) int {
	if derived.ScopeWidth != nil {
		return *derived.ScopeWidth
	}
	return 4
}

func orderingStrategyFor(intent domain.TeacherIntent) domain.OrderingStrategy {
	switch intent.AssessmentType {
	case domain.AssessmentTest, domain.AssessmentTestReview:
		return domain.OrderingBackloaded
	case domain.AssessmentQuiz, domain.AssessmentWorksheet:
		return domain.OrderingMixed
	default:
		return domain.OrderingProgressive
	}
}
