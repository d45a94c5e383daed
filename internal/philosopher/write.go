// Package philosopher produces quality, playtest, and comparison
// reports on Writer/Gatekeeper output. It never mutates the pipeline's
// committed items — every mode is purely observational.
package philosopher

import (
	"fmt"
	"strings"

	"assessment-forge/internal/domain"
	"assessment-forge/internal/gatekeeper"
)

// lexicalThresholds gives the grade band above which a lexical note
// fires for average sentence length (words) and long-word ratio.
type lexicalThresholds struct {
	maxSentenceWords float64
	maxLongWordRatio float64
}

func thresholdsForGrade(grade int) lexicalThresholds {
	switch {
	case grade <= 5:
		return lexicalThresholds{maxSentenceWords: 12, maxLongWordRatio: 0.15}
	case grade <= 8:
		return lexicalThresholds{maxSentenceWords: 18, maxLongWordRatio: 0.25}
	default:
		return lexicalThresholds{maxSentenceWords: 25, maxLongWordRatio: 0.35}
	}
}

// Write runs the post-Gatekeeper, pre-Builder quality pass. It always
// returns status "complete" unless the Writer produced zero items, in
// which case the orchestrator restarts the pipeline.
func Write(bp domain.Blueprint, items []domain.GeneratedItem, batchReport domain.GatekeeperReport) domain.QualityReport {
	if len(items) == 0 {
		return domain.QualityReport{Status: "restart", QualityScore: 0}
	}

	summary := violationSummary(batchReport.Violations)
	distribution := bloomDistribution(items)
	missing := bp.Plan.QuestionCount - len(items)
	if missing < 0 {
		missing = 0
	}

	lexicalNotes := lexicalCheck(bp.UAR.Grade(), items)
	pacingNotes := pacingRealism(bp)
	redundancy := redundancyHotspots(batchReport.Violations)

	deductions := scoreDeductions(batchReport.Violations, missing, len(lexicalNotes))

	return domain.QualityReport{
		Status:               "complete",
		QualityScore:         maxFloat(0, 10-deductions),
		ViolationSummary:     summary,
		BloomDistribution:    distribution,
		RedundancyHotspots:   redundancy,
		MissingSlotCount:     missing,
		LexicalNotes:         lexicalNotes,
		PacingRealismNotes:   pacingNotes,
		PlausibilityWarnings: append([]string(nil), bp.Warnings...),
	}
}

func violationSummary(violations []domain.Violation) map[string]int {
	out := map[string]int{}
	for _, v := range violations {
		out[string(v.Type)]++
	}
	return out
}

func bloomDistribution(items []domain.GeneratedItem) map[domain.BloomLevel]int {
	out := map[domain.BloomLevel]int{}
	for _, item := range items {
		out[gatekeeper.ClassifyBloomLevel(item.Prompt)]++
	}
	return out
}

func redundancyHotspots(violations []domain.Violation) []string {
	var out []string
	for _, v := range violations {
		if v.Type == domain.ViolationFormat && strings.Contains(v.Message, "overlap") {
			out = append(out, v.Message)
		}
	}
	return out
}

func lexicalCheck(grade int, items []domain.GeneratedItem) []string {
	t := thresholdsForGrade(grade)
	var notes []string
	for _, item := range items {
		sentences := splitSentences(item.Prompt)
		if len(sentences) == 0 {
			continue
		}
		avgWords := avgSentenceLength(sentences)
		longRatio := longWordRatio(item.Prompt)
		if avgWords > t.maxSentenceWords {
			notes = append(notes, fmt.Sprintf("slot %d: average sentence length %.1f words exceeds grade-band threshold %.0f", item.SlotID, avgWords, t.maxSentenceWords))
		}
		if longRatio > t.maxLongWordRatio {
			notes = append(notes, fmt.Sprintf("slot %d: long-word ratio %.2f exceeds grade-band threshold %.2f", item.SlotID, longRatio, t.maxLongWordRatio))
		}
	}
	return notes
}

func splitSentences(prompt string) []string {
	var sentences []string
	for _, s := range strings.FieldsFunc(prompt, func(r rune) bool { return r == '.' || r == '?' || r == '!' }) {
		trimmed := strings.TrimSpace(s)
		if trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}

func avgSentenceLength(sentences []string) float64 {
	total := 0
	for _, s := range sentences {
		total += len(strings.Fields(s))
	}
	return float64(total) / float64(len(sentences))
}

func longWordRatio(prompt string) float64 {
	words := strings.Fields(prompt)
	if len(words) == 0 {
		return 0
	}
	long := 0
	for _, w := range words {
		if len(w) > 7 {
			long++
		}
	}
	return float64(long) / float64(len(words))
}

func pacingRealism(bp domain.Blueprint) []string {
	var notes []string
	budgetSeconds := float64(bp.UAR.TimeMinutes * 60)
	if budgetSeconds > 0 && float64(bp.Plan.TotalEstimatedTimeSeconds) > budgetSeconds*1.15 {
		notes = append(notes, fmt.Sprintf("realistic total %.1f min exceeds the %d min budget", bp.Plan.RealisticTotalMinutes, bp.UAR.TimeMinutes))
	}
	return notes
}

func scoreDeductions(violations []domain.Violation, missing, lexicalNoteCount int) float64 {
	deductions := 0.0
	for _, v := range violations {
		switch v.Severity {
		case domain.SeverityHigh:
			deductions += 1.0
		case domain.SeverityMedium:
			deductions += 0.4
		case domain.SeverityLow:
			deductions += 0.1
		}
	}
	deductions += float64(missing) * 1.5
	deductions += float64(lexicalNoteCount) * 0.2
	return deductions
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
