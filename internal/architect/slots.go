package architect

import (
	"fmt"
	"math"

	"assessment-forge/internal/domain"
)

// allocateSlots assigns Bloom levels to questionCount ordered positions
// per orderingStrategy, then a question type and difficulty modifier to
// each.
func allocateSlots(intent domain.TeacherIntent, distribution map[domain.BloomLevel]int, profile domain.RigorProfile, consecutiveRepeatMax int) []domain.Slot {
	sequence := orderLevels(distribution, orderingStrategyFor(intent), consecutiveRepeatMax)

	mix := difficultyMix[difficultyProfileForLevel[intent.StudentLevel]]
	slots := make([]domain.Slot, 0, len(sequence))
	for i, level := range sequence {
		qType := questionTypeFor(level, intent.QuestionTypes, i)
		slots = append(slots, domain.Slot{
			Index:              i + 1,
			CognitiveProcess:   level,
			Type:               qType,
			DifficultyModifier: difficultyModifierFor(mix, i, len(sequence)),
			ConceptTag:         conceptTagFor(intent, i),
		})
	}
	return slots
}

// orderLevels expands a distribution into a flat, ordered slice of
// Bloom levels per orderingStrategy:
//   - progressive: non-decreasing
//   - mixed: interleaved, no more than consecutiveRepeatMax repeats
//   - backloaded: highest-Bloom items pushed into the final third
func orderLevels(distribution map[domain.BloomLevel]int, strategy domain.OrderingStrategy, consecutiveRepeatMax int) []domain.BloomLevel {
	var ascending []domain.BloomLevel
	for _, lvl := range domain.BloomLevels {
		for i := 0; i < distribution[lvl]; i++ {
			ascending = append(ascending, lvl)
		}
	}

	switch strategy {
	case domain.OrderingProgressive:
		return ascending
	case domain.OrderingBackloaded:
		return backload(ascending)
	default:
		return interleave(ascending, consecutiveRepeatMax)
	}
}

// backload moves the final third of positions to contain the highest
// Bloom levels present, keeping everything else progressive.
func backload(ascending []domain.BloomLevel) []domain.BloomLevel {
	n := len(ascending)
	if n == 0 {
		return ascending
	}
	thirdStart := n - n/3
	if thirdStart == n {
		return ascending
	}
	head := append([]domain.BloomLevel(nil), ascending[:thirdStart]...)
	tail := append([]domain.BloomLevel(nil), ascending[thirdStart:]...)
	// head is reversed twice, so it ends in ascending order: its highest
	// levels stay next to the boundary and the tail (already highest)
	// stays at the very end.
	for i, j := 0, len(head)-1; i < j; i, j = i+1, j-1 {
		head[i], head[j] = head[j], head[i]
	}
	for i, j := 0, len(head)-1; i < j; i, j = i+1, j-1 {
		head[i], head[j] = head[j], head[i]
	}
	return append(head, tail...)
}

// interleave places, at each position, the lowest remaining level that
// the repeat limit does not block, so no more than consecutiveRepeatMax
// consecutive slots share a level while another level is still left.
func interleave(ascending []domain.BloomLevel, consecutiveRepeatMax int) []domain.BloomLevel {
	if consecutiveRepeatMax <= 0 {
		consecutiveRepeatMax = 3
	}
	buckets := make(map[domain.BloomLevel][]domain.BloomLevel)
	var levels []domain.BloomLevel
	for _, lvl := range ascending {
		if _, ok := buckets[lvl]; !ok {
			levels = append(levels, lvl)
		}
		buckets[lvl] = append(buckets[lvl], lvl)
	}

	out := make([]domain.BloomLevel, 0, len(ascending))
	consecutive := 0
	var last domain.BloomLevel
	for len(out) < len(ascending) {
		placed := false
		for _, lvl := range levels {
			if len(buckets[lvl]) == 0 {
				continue
			}
			if lvl == last && consecutive >= consecutiveRepeatMax {
				continue
			}
			out = append(out, lvl)
			buckets[lvl] = buckets[lvl][1:]
			if lvl == last {
				consecutive++
			} else {
				consecutive = 1
			}
			last = lvl
			placed = true
			break
		}
		if !placed {
			// every remaining bucket is blocked by the repeat limit; take
			// from whichever has the most left to avoid starving it.
			best := levels[0]
			for _, lvl := range levels {
				if len(buckets[lvl]) > len(buckets[best]) {
					best = lvl
				}
			}
			if len(buckets[best]) == 0 {
				break
			}
			out = append(out, best)
			buckets[best] = buckets[best][1:]
			last = best
			consecutive = 1
		}
	}
	return out
}

// questionTypeFor biases higher-Bloom slots toward open-ended types.
func questionTypeFor(level domain.BloomLevel, requested []domain.QuestionType, i int) domain.QuestionType {
	if len(requested) == 0 {
		return domain.QuestionShortAnswer
	}
	if level.Index() >= domain.BloomAnalyze.Index() {
		for _, t := range requested {
			if t == domain.QuestionConstructedResponse || t == domain.QuestionShortAnswer {
				return t
			}
		}
	}
	return requested[i%len(requested)]
}

func difficultyModifierFor(mix [3]int, i, n int) domain.DifficultyModifier {
	total := mix[0] + mix[1] + mix[2]
	if total == 0 || n <= 0 {
		return domain.DifficultyMedium
	}
	// place slot i's midpoint on the 0..total weight scale so the n slots
	// split across low/medium/high in proportion to mix.
	pos := (2*i + 1) * total / (2 * n)
	switch {
	case pos < mix[0]:
		return domain.DifficultyLow
	case pos < mix[0]+mix[1]:
		return domain.DifficultyMedium
	default:
		return domain.DifficultyHigh
	}
}

func conceptTagFor(intent domain.TeacherIntent, i int) string {
	if intent.Topic != "" {
		return intent.Topic
	}
	return intent.Unit
}

// applyPacing fills in pacingSecondsPerItem, per-slot estimated time,
// and pacingToleranceSeconds. It returns a warning when the realistic
// total blows the time budget by more than 15%.
func applyPacing(plan *domain.Plan, intent domain.TeacherIntent) string {
	if plan.QuestionCount == 0 {
		return ""
	}
	pacingSeconds := int(math.Round(60 * float64(intent.TimeMinutes) / float64(plan.QuestionCount)))
	plan.PacingSecondsPerItem = pacingSeconds

	total := 0.0
	for i := range plan.Slots {
		slot := &plan.Slots[i]
		scale := 1.0 + 0.15*float64(slot.CognitiveProcess.Index())
		switch slot.DifficultyModifier {
		case domain.DifficultyLow:
			scale *= 0.8
		case domain.DifficultyHigh:
			scale *= 1.3
		}
		est := float64(pacingSeconds) * scale
		slot.EstimatedTimeSeconds = int(math.Round(est))
		total += est
	}

	plan.TotalEstimatedTimeSeconds = int(math.Round(total))
	plan.RealisticTotalMinutes = total / 60
	plan.PacingToleranceSeconds = math.Max(30, 0.15*total)

	budgetSeconds := float64(intent.TimeMinutes * 60)
	if budgetSeconds > 0 && total > budgetSeconds*1.15 {
		return fmt.Sprintf("realistic total time %.1f min exceeds the %d min budget by more than 15%%", plan.RealisticTotalMinutes, intent.TimeMinutes)
	}
	return ""
}
