// Package rigor resolves a teacher's request into a floor/ceiling band
// of Bloom levels the Architect must distribute items within.
package rigor

import (
	"fmt"

	"assessment-forge/internal/domain"
)

// baseBand is the unconstrained floor/ceiling per student level, before
// any assessment-type or time-based narrowing applies.
var baseBand = map[domain.StudentLevel][2]domain.BloomLevel{
	domain.LevelRemedial: {domain.BloomRemember, domain.BloomApply},
	domain.LevelStandard: {domain.BloomRemember, domain.BloomAnalyze},
	domain.LevelHonors:   {domain.BloomUnderstand, domain.BloomEvaluate},
	domain.LevelAP:       {domain.BloomApply, domain.BloomCreate},
}

// shallowTypeCeiling caps the band for assessment types that are
// structurally shallow regardless of student level.
var shallowTypeCeiling = map[domain.AssessmentType]domain.BloomLevel{
	domain.AssessmentBellRinger: domain.BloomApply,
	domain.AssessmentExitTicket: domain.BloomApply,
}

// Input bundles everything the resolver needs, mirroring spec's
// {studentLevel, assessmentType, timeMinutes, derivedStructural}.
type Input struct {
	StudentLevel  domain.StudentLevel
	AssessmentType domain.AssessmentType
	TimeMinutes   int
	Derived       domain.DerivedStructuralConstraints
}

// Resolve applies the fixed-order rule chain: base band → shallow-type
// cap → time cap → constraint cap → constraint raise → floor≤ceiling
// clamp. It is a pure function of its input — same input always yields
// an identical profile and trace.
func Resolve(in Input) domain.RigorProfile {
	band, ok := baseBand[in.StudentLevel]
	if !ok {
		band = baseBand[domain.LevelStandard]
	}
	floor, ceiling := band[0], band[1]
	var trace []string
	trace = append(trace, fmt.Sprintf("base band for %s: %s..%s", in.StudentLevel, floor, ceiling))

	if cap, ok := shallowTypeCeiling[in.AssessmentType]; ok && cap.Index() < ceiling.Index() {
		ceiling = cap
		trace = append(trace, fmt.Sprintf("shallow-type cap for %s: ceiling -> %s", in.AssessmentType, ceiling))
	}

	if in.TimeMinutes > 0 && in.TimeMinutes < 20 && ceiling.Index() > domain.BloomApply.Index() {
		ceiling = domain.BloomApply
		trace = append(trace, fmt.Sprintf("time cap (%d min): ceiling -> %s", in.TimeMinutes, ceiling))
	}

	if in.TimeMinutes > 0 && in.TimeMinutes < 10 && ceiling.Index() > domain.BloomUnderstand.Index() {
		ceiling = domain.BloomUnderstand
		trace = append(trace, fmt.Sprintf("time cap (%d min): ceiling -> %s", in.TimeMinutes, ceiling))
	}

	if in.Derived.CapBloomAt != nil && in.Derived.CapBloomAt.Index() < ceiling.Index() {
		ceiling = *in.Derived.CapBloomAt
		trace = append(trace, fmt.Sprintf("constraint cap: ceiling -> %s", ceiling))
	}

	if in.Derived.CapBloomAt == nil && in.Derived.RaiseBloomCeiling != nil && in.Derived.RaiseBloomCeiling.Index() > ceiling.Index() {
		ceiling = *in.Derived.RaiseBloomCeiling
		trace = append(trace, fmt.Sprintf("constraint raise: ceiling -> %s", ceiling))
	}

	if floor.Index() > ceiling.Index() {
		floor = ceiling
		trace = append(trace, fmt.Sprintf("floor clamped to ceiling: floor -> %s", floor))
	}

	return domain.RigorProfile{
		DepthFloor:   floor,
		DepthCeiling: ceiling,
		Trace:        trace,
	}
}
