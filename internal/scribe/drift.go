package scribe

import "assessment-forge/internal/domain"

// driftOutcome is recalibrateFromBloomDrift's verdict: whether the
// mismatch rate crossed a tier threshold, and which direction dominates
// among misaligned entries.
type driftOutcome struct {
	Rate      float64
	Direction domain.BloomDirection
	Tier      domain.FrictionTier
}

// recalibrateFromBloomDrift computes the misalignment rate and dominant
// direction over a Writer run's alignment log, tiering the response:
// systemic (>0.5) injects full prescriptions, mild (0.25-0.5) a soft
// reminder, otherwise no action.
func recalibrateFromBloomDrift(log []domain.BloomAlignmentEntry) driftOutcome {
	if len(log) == 0 {
		return driftOutcome{Tier: domain.FrictionNone}
	}

	misses := 0
	over, under := 0, 0
	for _, e := range log {
		if e.Aligned {
			continue
		}
		misses++
		if e.Direction != nil && *e.Direction == domain.DirectionOver {
			over++
		} else {
			under++
		}
	}

	rate := float64(misses) / float64(len(log))
	direction := domain.DirectionUnder
	if over > under {
		direction = domain.DirectionOver
	}

	tier := domain.FrictionNone
	switch {
	case rate > 0.5:
		tier = domain.FrictionSystemic
	case rate > 0.25:
		tier = domain.FrictionMild
	}

	return driftOutcome{Rate: rate, Direction: direction, Tier: tier}
}

// prescriptionsForDrift turns a driftOutcome into required/forbidden
// behavior strings for the next run's CompensationProfile.
func prescriptionsForDrift(outcome driftOutcome) (required, forbidden []string) {
	switch outcome.Tier {
	case domain.FrictionSystemic:
		if outcome.Direction == domain.DirectionUnder {
			required = append(required, "Use explicit Bloom-level verbs matching each slot's intended cognitive process.")
			forbidden = append(forbidden, "Do not substitute recall-level phrasing on higher-Bloom slots.")
		} else {
			required = append(required, "Constrain verb choice to the slot's intended level; do not exceed it.")
			forbidden = append(forbidden, "Do not introduce analysis/evaluation framing on shallow slots.")
		}
	case domain.FrictionMild:
		if outcome.Direction == domain.DirectionUnder {
			required = append(required, "Double-check that prompt verbs match the intended cognitive demand.")
		} else {
			required = append(required, "Keep shallow slots genuinely shallow; avoid over-elaborating.")
		}
	}
	return required, forbidden
}
