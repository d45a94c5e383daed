package philosopher

import (
	"fmt"

	"assessment-forge/internal/domain"
)

// Playtest produces a post-simulation, informational-only prediction
// of how students will experience the assessment: completion rate,
// engagement, and likely confusion hotspots (slots whose prompt, read at
// 0.8 s per word with a 10 s minimum, runs over 1.3 times the slot's
// estimated time).
func Playtest(bp domain.Blueprint, items []domain.GeneratedItem) domain.PlaytestReport {
	completionRate := predictCompletionRate(bp)
	engagement := predictEngagement(bp)
	hotspots := confusionHotspots(bp, items)

	return domain.PlaytestReport{
		PredictedCompletionRate: completionRate,
		PredictedEngagement:     engagement,
		ConfusionHotspots:       hotspots,
	}
}

func predictCompletionRate(bp domain.Blueprint) float64 {
	if bp.Plan.TotalEstimatedTimeSeconds == 0 || bp.UAR.TimeMinutes == 0 {
		return 0.9
	}
	ratio := float64(bp.UAR.TimeMinutes*60) / float64(bp.Plan.TotalEstimatedTimeSeconds)
	rate := ratio
	if rate > 1 {
		rate = 1
	}
	if rate < 0.1 {
		rate = 0.1
	}
	return rate
}

func predictEngagement(bp domain.Blueprint) float64 {
	// Mixed ordering and a broader scope correlate with higher predicted
	// engagement than flat progressive drills in the absence of any
	// direct student-response signal.
	base := 0.6
	if bp.Plan.OrderingStrategy == domain.OrderingMixed {
		base += 0.15
	}
	if bp.Plan.ScopeWidth >= 4 {
		base += 0.1
	}
	if base > 1 {
		base = 1
	}
	return base
}

func confusionHotspots(bp domain.Blueprint, items []domain.GeneratedItem) []string {
	slotByID := make(map[int]domain.Slot, len(bp.Plan.Slots))
	for _, s := range bp.Plan.Slots {
		slotByID[s.Index] = s
	}

	var hotspots []string
	for _, item := range items {
		slot, ok := slotByID[item.SlotID]
		if !ok || slot.EstimatedTimeSeconds == 0 {
			continue
		}
		estimated := estimateSeconds(item.Prompt)
		if estimated > float64(slot.EstimatedTimeSeconds)*1.3 {
			hotspots = append(hotspots, fmt.Sprintf("slot %d: likely to run long relative to its pacing budget", item.SlotID))
		}
	}
	return hotspots
}

func estimateSeconds(prompt string) float64 {
	words := 0
	inWord := false
	for _, r := range prompt {
		if r == ' ' || r == '\n' || r == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			words++
			inWord = true
		}
	}
	est := float64(words) * 0.8
	if est < 10 {
		return 10
	}
	return est
}
