package gatekeeper

import (
	"fmt"
	"strings"

	"assessment-forge/internal/domain"
)

// CheckBatch runs the final-pass checks once the Writer has committed
// every item: distribution match, ordering, scope width, and
// (informational only) redundancy.
func (g *Gatekeeper) CheckBatch(bp domain.Blueprint, items []domain.GeneratedItem) domain.GatekeeperReport {
	var violations []domain.Violation

	violations = append(violations, checkDistribution(bp, items)...)
	violations = append(violations, g.checkOrdering(bp, items)...)
	violations = append(violations, checkScopeWidth(bp, items)...)
	violations = append(violations, g.checkRedundancy(items)...)

	return domain.GatekeeperReport{Violations: violations}
}

func checkDistribution(bp domain.Blueprint, items []domain.GeneratedItem) []domain.Violation {
	slotLevel := make(map[int]domain.BloomLevel, len(bp.Plan.Slots))
	for _, s := range bp.Plan.Slots {
		slotLevel[s.Index] = s.CognitiveProcess
	}

	observed := make(map[domain.BloomLevel]int)
	for _, item := range items {
		detected := ClassifyBloomLevel(item.Prompt)
		observed[detected]++
		_ = slotLevel
	}

	var out []domain.Violation
	for lvl, want := range bp.Plan.CognitiveDistribution {
		if observed[lvl] != want {
			out = append(out, domain.Violation{
				Type: domain.ViolationCognitiveDemandMismatch,
				Message: fmt.Sprintf("observed %s count %d does not match planned %d",
					lvl, observed[lvl], want),
				Severity: domain.SeverityLow, Culprit: domain.CulpritWriter,
			})
		}
	}
	return out
}

func (g *Gatekeeper) checkOrdering(bp domain.Blueprint, items []domain.GeneratedItem) []domain.Violation {
	if bp.Plan.OrderingStrategy != domain.OrderingProgressive {
		return consecutiveRepeatViolations(items, g.consecutiveRepeatMax)
	}
	var out []domain.Violation
	last := -1
	for _, item := range items {
		idx := ClassifyBloomLevel(item.Prompt).Index()
		if idx < last {
			out = append(out, domain.Violation{
				SlotID: item.SlotID, Type: domain.ViolationOrdering,
				Message:  "progressive ordering violated: a later slot has a lower cognitive demand",
				Severity: domain.SeverityLow, Culprit: domain.CulpritArchitect,
			})
		}
		if idx > last {
			last = idx
		}
	}
	return out
}

func consecutiveRepeatViolations(items []domain.GeneratedItem, limit int) []domain.Violation {
	var out []domain.Violation
	run := 0
	var lastLevel domain.BloomLevel
	for _, item := range items {
		lvl := ClassifyBloomLevel(item.Prompt)
		if lvl == lastLevel {
			run++
		} else {
			run = 1
			lastLevel = lvl
		}
		if run > limit {
			out = append(out, domain.Violation{
				SlotID: item.SlotID, Type: domain.ViolationOrdering,
				Message:  "more than the allowed number of consecutive same-level slots",
				Severity: domain.SeverityLow, Culprit: domain.CulpritArchitect,
			})
		}
	}
	return out
}

func checkScopeWidth(bp domain.Blueprint, items []domain.GeneratedItem) []domain.Violation {
	tags := map[string]bool{}
	for _, s := range bp.Plan.Slots {
		if s.ConceptTag != "" {
			tags[s.ConceptTag] = true
		}
	}
	distinct := len(tags)
	width := bp.Plan.ScopeWidth
	if width == 0 {
		return nil
	}
	lower, upper := width-2, width+2
	if lower < 1 {
		lower = 1
	}
	if distinct < lower || distinct > upper {
		return []domain.Violation{{
			Type: domain.ViolationScopeWidth,
			Message: fmt.Sprintf("distinct concept tag count %d falls outside the configured scope width band [%d,%d]",
				distinct, lower, upper),
			Severity: domain.SeverityLow, Culprit: domain.CulpritArchitect,
		}}
	}
	return nil
}

// checkRedundancy flags (informationally, not blocking) any pair of
// prompts whose word-overlap ratio over long words exceeds the
// configured redundancy ratio.
func (g *Gatekeeper) checkRedundancy(items []domain.GeneratedItem) []domain.Violation {
	var out []domain.Violation
	wordSets := make([]map[string]bool, len(items))
	for i, item := range items {
		wordSets[i] = longWordSet(item.Prompt)
	}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			ratio := overlapRatio(wordSets[i], wordSets[j])
			if ratio > g.redundancyRatio {
				out = append(out, domain.Violation{
					SlotID: items[i].SlotID, Type: domain.ViolationFormat,
					Message: fmt.Sprintf("prompts for slots %d and %d overlap %.0f%% on long words (informational)",
						items[i].SlotID, items[j].SlotID, ratio*100),
					Severity: domain.SeverityLow, Culprit: domain.CulpritWriter,
				})
			}
		}
	}
	return out
}

func longWordSet(prompt string) map[string]bool {
	set := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(prompt)) {
		if isLongWord(w) {
			set[w] = true
		}
	}
	return set
}

func overlapRatio(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for w := range a {
		if b[w] {
			shared++
		}
	}
	smaller := len(a)
	if len(b) < smaller {
		smaller = len(b)
	}
	return float64(shared) / float64(smaller)
}
