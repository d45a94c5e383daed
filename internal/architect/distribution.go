package architect

import (
	"fmt"

	"assessment-forge/internal/domain"
)

// buildDistribution starts from the per-assessment-type template, shifts
// mass toward the ceiling for honors/AP, then redistributes anything
// outside [depthFloor, depthCeiling] into the nearest in-band level.
func buildDistribution(intent domain.TeacherIntent, profile domain.RigorProfile) (map[domain.BloomLevel]int, []string) {
	template := distributionTemplate[intent.AssessmentType]
	if template == nil {
		template = distributionTemplate[domain.AssessmentQuiz]
	}

	weights := make(map[domain.BloomLevel]int, len(template))
	for k, v := range template {
		weights[k] = v
	}

	if intent.StudentLevel == domain.LevelHonors || intent.StudentLevel == domain.LevelAP {
		shiftTowardCeiling(weights, profile.DepthCeiling)
	}

	var warnings []string
	weights, dropped := clampToBand(weights, profile)
	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("redistributed %d%% of template mass outside depth band into nearest in-band level", dropped))
	}

	counts := allocateCounts(weights, intent.QuestionCount)
	return counts, warnings
}

// shiftTowardCeiling moves 10 percentage points of mass from the
// lowest populated level to the ceiling level, modeling "lean harder
// into the top of the band for advanced cohorts."
func shiftTowardCeiling(weights map[domain.BloomLevel]int, ceiling domain.BloomLevel) {
	var lowest domain.BloomLevel
	lowestIdx := 99
	for lvl, w := range weights {
		if w > 0 && lvl.Index() < lowestIdx {
			lowestIdx = lvl.Index()
			lowest = lvl
		}
	}
	if lowestIdx == 99 || lowest == ceiling {
		return
	}
	shift := 10
	if weights[lowest] < shift {
		shift = weights[lowest]
	}
	weights[lowest] -= shift
	weights[ceiling] += shift
}

// clampToBand moves any weight assigned outside [floor, ceiling] into
// the nearest level still inside the band, returning the total
// percentage points moved.
func clampToBand(weights map[domain.BloomLevel]int, profile domain.RigorProfile) (map[domain.BloomLevel]int, int) {
	out := make(map[domain.BloomLevel]int, len(weights))
	moved := 0
	for lvl, w := range weights {
		if w == 0 {
			continue
		}
		target := domain.Clamp(lvl, profile.DepthFloor, profile.DepthCeiling)
		if target != lvl {
			moved += w
		}
		out[target] += w
	}
	return out, moved
}

// allocateCounts converts percentage weights into integer item counts
// summing to exactly questionCount, using largest-remainder rounding so
// the total is exact even when percentages don't divide evenly.
func allocateCounts(weights map[domain.BloomLevel]int, questionCount int) map[domain.BloomLevel]int {
	counts := make(map[domain.BloomLevel]int)
	total := 0
	for _, w := range weights {
		total += w
	}
	if total == 0 {
		counts[domain.BloomUnderstand] = questionCount
		return counts
	}

	type remainder struct {
		level domain.BloomLevel
		frac  float64
	}
	var remainders []remainder
	assigned := 0
	for _, lvl := range domain.BloomLevels {
		w, ok := weights[lvl]
		if !ok || w == 0 {
			continue
		}
		exact := float64(w) * float64(questionCount) / float64(total)
		whole := int(exact)
		counts[lvl] = whole
		assigned += whole
		remainders = append(remainders, remainder{lvl, exact - float64(whole)})
	}

	remaining := questionCount - assigned
	for remaining > 0 && len(remainders) > 0 {
		bestIdx := 0
		for i, r := range remainders {
			if r.frac > remainders[bestIdx].frac {
				bestIdx = i
			}
		}
		counts[remainders[bestIdx].level]++
		remainders[bestIdx].frac = -1
		remaining--
	}
	return counts
}
