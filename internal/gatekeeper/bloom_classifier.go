// Package gatekeeper validates Writer output, both per item (called
// inline by the Writer's adaptive loop) and in a final batch pass.
package gatekeeper

import (
	"strings"

	"assessment-forge/internal/domain"
)

// verbDictionary maps each Bloom level to the verbs/phrases a prompt
// must contain to be classified at that level. Shared between
// Gatekeeper and SCRIBE's drift recalibration so both agree on what
// "detected Bloom level" means.
var verbDictionary = map[domain.BloomLevel][]string{
	domain.BloomRemember: {
		"define", "list", "identify", "recall", "name", "state", "label", "recognize",
	},
	domain.BloomUnderstand: {
		"explain", "describe", "summarize", "paraphrase", "interpret", "classify", "illustrate",
	},
	domain.BloomApply: {
		"solve", "calculate", "use", "demonstrate", "compute", "apply", "show",
	},
	domain.BloomAnalyze: {
		"compare", "contrast", "categorize", "differentiate", "analyze", "examine", "distinguish",
	},
	domain.BloomEvaluate: {
		"justify", "critique", "evaluate", "defend", "judge", "argue", "assess",
	},
	domain.BloomCreate: {
		"design", "construct", "compose", "devise", "formulate", "create", "generate",
	},
}

// ClassifyBloomLevel returns the highest Bloom level whose verb list
// matches text, or BloomRemember if nothing matches (the floor of the
// taxonomy, never an error — Gatekeeper treats "no verb matched" as the
// weakest possible classification so it still fails a high-Bloom slot).
func ClassifyBloomLevel(text string) domain.BloomLevel {
	matches := ClassifyBloomLevelRange(text)
	if len(matches) == 0 {
		return domain.BloomRemember
	}
	highest := matches[0]
	for _, m := range matches[1:] {
		if m.Index() > highest.Index() {
			highest = m
		}
	}
	return highest
}

// ClassifyBloomLevelRange returns every Bloom level whose verb list has
// at least one match in text.
func ClassifyBloomLevelRange(text string) []domain.BloomLevel {
	folded := strings.ToLower(text)
	var matches []domain.BloomLevel
	for _, lvl := range domain.BloomLevels {
		for _, verb := range verbDictionary[lvl] {
			if strings.Contains(folded, verb) {
				matches = append(matches, lvl)
				break
			}
		}
	}
	return matches
}

// BloomMeets reports whether a detected level satisfies an intended
// floor. Equivalent to domain.Meets; kept as a local alias so gatekeeper
// call sites read naturally against "detected" and "intended" names.
func BloomMeets(detected, intended domain.BloomLevel) bool {
	return domain.Meets(detected, intended)
}
