// Package scribe implements governance and memory: per-teacher
// dossiers, Bloom-drift recalibration, and the guardrail engine's
// prescription lifecycle.
package scribe

import (
	"fmt"

	"assessment-forge/internal/domain"
)

// buildHints derives SCRIBE.selectAgents's prompt-level hints from a
// dossier's accumulated weaknesses and mastery.
func buildHints(d domain.Dossier) []string {
	var hints []string

	if d.Weaknesses[domain.ViolationPacing] > 3 {
		hints = append(hints, "Keep prompts concise and consistent.")
	}
	if d.Weaknesses[domain.ViolationMCQOptionsInvalid] > 2 {
		hints = append(hints, "Emit exactly 4 unique options; the answer must match one verbatim.")
	}
	if d.DomainMastery.Runs >= 5 && d.DomainMastery.CleanRate() < 0.5 {
		hints = append(hints, fmt.Sprintf("Warning: clean-run rate is %.0f%% over %d runs; follow the blueprint closely.", d.DomainMastery.CleanRate()*100, d.DomainMastery.Runs))
	}
	if d.TrustScore <= 3 {
		hints = append(hints, "Follow the blueprint precisely; no embellishments.")
	}
	if d.DomainMastery.Runs >= 3 && d.DomainMastery.CleanRate() >= 0.8 {
		hints = append(hints, "Recent runs have been clean; maintain current approach.")
	}

	return hints
}
