package scribe

import (
	"fmt"
	"sort"

	"assessment-forge/internal/domain"
)

// synthesizeCandidates builds one candidate require-rule per distinct
// violation type observed in a gatekeeper report.
func synthesizeCandidates(violations []domain.Violation, dom string) []domain.GuardrailRule {
	seen := map[domain.ViolationType]bool{}
	var out []domain.GuardrailRule
	for _, v := range violations {
		if seen[v.Type] {
			continue
		}
		seen[v.Type] = true
		out = append(out, domain.GuardrailRule{
			Category: v.Type,
			Polarity: domain.PolarityRequire,
			Message:  guardrailMessage(v.Type),
			Domain:   dom,
			Weight:   0.5,
		})
	}
	return out
}

func guardrailMessage(t domain.ViolationType) string {
	switch t {
	case domain.ViolationMCQOptionsInvalid:
		return "Always emit exactly 4 unique multiple-choice options."
	case domain.ViolationMCQAnswerMismatch:
		return "The answer field must match one option verbatim."
	case domain.ViolationCognitiveDemandMismatch:
		return "Use verbs that match the slot's intended cognitive level."
	case domain.ViolationTopicMismatch:
		return "Reference the assigned topic or unit explicitly."
	case domain.ViolationForbiddenContent:
		return "Avoid previously flagged forbidden content."
	case domain.ViolationPacing:
		return "Keep prompt length proportional to the slot's estimated time."
	default:
		return fmt.Sprintf("Avoid recurrence of %s violations.", t)
	}
}

// mergeGuardrails reinforces rules that already exist in the set
// (matched on category+polarity+domain) and appends new ones,
// recording currentRun as each rule's trigger point.
func mergeGuardrails(existing []domain.GuardrailRule, incoming []domain.GuardrailRule, currentRun int) []domain.GuardrailRule {
	out := append([]domain.GuardrailRule(nil), existing...)
	for _, in := range incoming {
		matched := false
		for i := range out {
			if out[i].Category == in.Category && out[i].Polarity == in.Polarity && out[i].Domain == in.Domain {
				out[i].Weight = min1(out[i].Weight + 0.15)
				out[i].TriggerCount++
				out[i].LastTriggeredRun = currentRun
				matched = true
				break
			}
		}
		if !matched {
			in.CreatedAtRun = currentRun
			in.LastTriggeredRun = currentRun
			in.TriggerCount = 1
			in.ID = fmt.Sprintf("%s:%s:%s", in.Domain, in.Category, in.Polarity)
			out = append(out, in)
		}
	}
	return out
}

func min1(w float64) float64 {
	if w > 1 {
		return 1
	}
	return w
}

// decayGuardrails applies inactivity decay to every rule and drops any
// whose weight falls below expiryWeight.
func decayGuardrails(rules []domain.GuardrailRule, currentRun int, trust, stability, expiryWeight float64) []domain.GuardrailRule {
	rate := decayRate(trust, stability)
	var out []domain.GuardrailRule
	for _, r := range rules {
		inactiveRuns := currentRun - r.LastTriggeredRun
		if inactiveRuns < 0 {
			inactiveRuns = 0
		}
		factor := 1 - float64(inactiveRuns)*rate
		if factor < 0 {
			factor = 0
		}
		r.Weight *= factor
		if r.Weight >= expiryWeight {
			out = append(out, r)
		}
	}
	return out
}

func decayRate(trust, stability float64) float64 {
	rate := 0.05
	if trust >= 8 {
		rate += 0.03
	}
	if trust >= 9 {
		rate += 0.05
	}
	if stability <= 4 {
		rate -= 0.02
	}
	if stability <= 2 {
		rate -= 0.03
	}
	if rate < 0.01 {
		rate = 0.01
	}
	return rate
}

// getInjectable returns at most maxInjected rules with weight >= 0.5,
// sorted by descending weight.
func getInjectable(rules []domain.GuardrailRule, maxInjected int) []domain.GuardrailRule {
	var eligible []domain.GuardrailRule
	for _, r := range rules {
		if r.Weight >= 0.5 {
			eligible = append(eligible, r)
		}
	}
	sort.Slice(eligible, func(i, j int) bool { return eligible[i].Weight > eligible[j].Weight })
	if len(eligible) > maxInjected {
		eligible = eligible[:maxInjected]
	}
	return eligible
}
