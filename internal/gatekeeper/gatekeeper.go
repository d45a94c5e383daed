package gatekeeper

import (
	"strings"
	"unicode"

	"assessment-forge/internal/domain"
)

// Gatekeeper validates Writer output against the Blueprint it was
// generated from. Every check is a pure function of its inputs plus
// the two configured thresholds below.
type Gatekeeper struct {
	redundancyRatio      float64
	consecutiveRepeatMax int
}

// New returns a Gatekeeper configured with the redundancy-ratio
// threshold (default 0.7) and consecutive-same-level repeat limit
// (default 3) used by the batch-level checks.
func New(redundancyRatio float64, consecutiveRepeatMax int) *Gatekeeper {
	if redundancyRatio <= 0 {
		redundancyRatio = 0.7
	}
	if consecutiveRepeatMax <= 0 {
		consecutiveRepeatMax = 3
	}
	return &Gatekeeper{redundancyRatio: redundancyRatio, consecutiveRepeatMax: consecutiveRepeatMax}
}

// ItemContext bundles what a per-item check needs beyond the slot and
// item themselves.
type ItemContext struct {
	TopicTokens     []string
	ForbidPhrases   []string
	SlotCount       int
	PacingTolerance float64 // seconds, already divided by slot count by the caller
}

// CheckItem runs every structural, Bloom-alignment, topic, forbidden-
// content, and pacing check for one committed candidate.
func (g *Gatekeeper) CheckItem(slot domain.Slot, item domain.GeneratedItem, ctx ItemContext) domain.GatekeeperReport {
	var violations []domain.Violation

	violations = append(violations, checkStructural(slot, item)...)
	violations = append(violations, checkBloomAlignment(slot, item)...)
	violations = append(violations, checkTopic(slot, item, ctx.TopicTokens)...)
	violations = append(violations, checkForbidden(slot, item, ctx.ForbidPhrases)...)
	violations = append(violations, checkPacing(slot, item, ctx.PacingTolerance)...)

	return domain.GatekeeperReport{Violations: violations}
}

func checkStructural(slot domain.Slot, item domain.GeneratedItem) []domain.Violation {
	var out []domain.Violation
	if strings.TrimSpace(item.Prompt) == "" {
		out = append(out, domain.Violation{
			SlotID: slot.Index, Type: domain.ViolationMissingField, Message: "prompt is empty",
			Severity: domain.SeverityHigh, Culprit: domain.CulpritWriter, Field: "prompt",
		})
	}
	if item.IsMCQ() {
		unique := uniqueNonEmpty(item.Options)
		if len(unique) != 4 {
			out = append(out, domain.Violation{
				SlotID: slot.Index, Type: domain.ViolationMCQOptionsInvalid,
				Message: "multiple choice items must have exactly 4 unique options",
				Severity: domain.SeverityHigh, Culprit: domain.CulpritWriter, Field: "options",
			})
		} else if !contains(unique, item.Answer) {
			out = append(out, domain.Violation{
				SlotID: slot.Index, Type: domain.ViolationMCQAnswerMismatch,
				Message: "answer does not match any option verbatim",
				Severity: domain.SeverityHigh, Culprit: domain.CulpritWriter, Field: "answer",
			})
		}
	} else if strings.TrimSpace(item.Answer) == "" {
		out = append(out, domain.Violation{
			SlotID: slot.Index, Type: domain.ViolationMissingField, Message: "answer is empty",
			Severity: domain.SeverityHigh, Culprit: domain.CulpritWriter, Field: "answer",
		})
	}
	return out
}

func checkBloomAlignment(slot domain.Slot, item domain.GeneratedItem) []domain.Violation {
	detected := ClassifyBloomLevel(item.Prompt)
	if BloomMeets(detected, slot.CognitiveProcess) {
		return nil
	}
	return []domain.Violation{{
		SlotID: slot.Index, Type: domain.ViolationCognitiveDemandMismatch,
		Message:  "detected cognitive demand is below the slot's intended level",
		Severity: domain.SeverityMedium, Culprit: domain.CulpritWriter,
	}}
}

func checkTopic(slot domain.Slot, item domain.GeneratedItem, tokens []string) []domain.Violation {
	if len(tokens) == 0 {
		return nil
	}
	folded := strings.ToLower(item.Prompt)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(folded, stem(strings.ToLower(tok))) {
			return nil
		}
	}
	return []domain.Violation{{
		SlotID: slot.Index, Type: domain.ViolationTopicMismatch,
		Message:  "prompt does not reference any topic/unit/lesson token",
		Severity: domain.SeverityMedium, Culprit: domain.CulpritWriter,
	}}
}

func checkForbidden(slot domain.Slot, item domain.GeneratedItem, forbidden []string) []domain.Violation {
	folded := strings.ToLower(item.Prompt)
	for _, phrase := range forbidden {
		if phrase == "" {
			continue
		}
		if strings.Contains(folded, strings.ToLower(phrase)) {
			return []domain.Violation{{
				SlotID: slot.Index, Type: domain.ViolationForbiddenContent,
				Message:  "prompt contains forbidden content: " + phrase,
				Severity: domain.SeverityHigh, Culprit: domain.CulpritWriter,
			}}
		}
	}
	return nil
}

func checkPacing(slot domain.Slot, item domain.GeneratedItem, perSlotTolerance float64) []domain.Violation {
	if slot.EstimatedTimeSeconds == 0 {
		return nil
	}
	estimated := estimateSecondsFromPrompt(item.Prompt)
	lower := float64(slot.EstimatedTimeSeconds) - perSlotTolerance
	upper := float64(slot.EstimatedTimeSeconds) + perSlotTolerance
	if estimated < lower || estimated > upper {
		return []domain.Violation{{
			SlotID: slot.Index, Type: domain.ViolationPacing,
			Message:  "prompt length implies a time cost outside the slot's pacing tolerance",
			Severity: domain.SeverityLow, Culprit: domain.CulpritWriter,
		}}
	}
	return nil
}

// estimateSecondsFromPrompt assumes roughly 0.8 seconds of reading/
// working time per token-ish word, floored at 10 seconds.
func estimateSecondsFromPrompt(prompt string) float64 {
	words := len(strings.Fields(prompt))
	est := float64(words) * 0.8
	if est < 10 {
		return 10
	}
	return est
}

// stem strips common English suffixes so a crude singular/plural or
// verb-form match still counts as a topic hit.
func stem(s string) string {
	for _, suffix := range []string{"ing", "tion", "es", "ed", "s"} {
		if strings.HasSuffix(s, suffix) && len(s) > len(suffix)+2 {
			return strings.TrimSuffix(s, suffix)
		}
	}
	return s
}

func uniqueNonEmpty(options []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, o := range options {
		trimmed := strings.TrimSpace(o)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}

// isLongWord reports whether w qualifies as "long" for redundancy
// word-overlap purposes (length > 4, letters only).
func isLongWord(w string) bool {
	if len(w) <= 4 {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
