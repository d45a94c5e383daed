package architect

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"assessment-forge/internal/domain"
	"assessment-forge/internal/llmprovider"
)

// sentinel is the fixed ASCII delimiter the Writer's sentinel parser
// splits on.
const sentinel = "<END_OF_PROBLEM>"

// ComposeWriterPrompt builds the system prompt handed to the Writer's
// LLM call: the blueprint's slot descriptors, SCRIBE's compensation
// hints, the top-weighted active guardrails, and the math-format
// directive.
func ComposeWriterPrompt(bp domain.Blueprint, prescriptions domain.CompensationProfile, maxGuardrails int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are generating %d assessment items for a %s %s, grade band %s, student level %s.\n",
		bp.Plan.QuestionCount, bp.UAR.AssessmentType, bp.UAR.Course, bp.UAR.GradeBand, bp.UAR.StudentLevel)
	if bp.UAR.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", bp.UAR.Topic)
	}
	if bp.UAR.Unit != "" {
		fmt.Fprintf(&b, "Unit: %s\n", bp.UAR.Unit)
	}
	fmt.Fprintf(&b, "Math format: %s\n", bp.UAR.MathFormat)

	b.WriteString("\nSlots (produce exactly one item per slot, in order):\n")
	for _, s := range bp.Plan.Slots {
		fmt.Fprintf(&b, "- slot %d: cognitive process=%s, type=%s, difficulty=%s, concept=%q, target time=%ds\n",
			s.Index, s.CognitiveProcess, s.Type, s.DifficultyModifier, s.ConceptTag, s.EstimatedTimeSeconds)
	}

	if len(prescriptions.Hints) > 0 {
		b.WriteString("\nGuidance from prior runs with this teacher:\n")
		for _, h := range prescriptions.Hints {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	if len(prescriptions.RequiredBehaviors) > 0 {
		b.WriteString("\nRequired behaviors:\n")
		for _, h := range prescriptions.RequiredBehaviors {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	if len(prescriptions.ForbiddenBehaviors) > 0 {
		b.WriteString("\nForbidden behaviors:\n")
		for _, h := range prescriptions.ForbiddenBehaviors {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}

	top := topGuardrails(prescriptions.InjectedGuardrails, maxGuardrails)
	if len(top) > 0 {
		b.WriteString("\nActive guardrails:\n")
		for _, g := range top {
			fmt.Fprintf(&b, "- [%s] %s\n", g.Polarity, g.Message)
		}
	}

	if len(bp.Warnings) > 0 {
		b.WriteString("\nPlausibility notes (account for these, do not repeat them in output):\n")
		for _, w := range bp.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	schema, _ := json.MarshalIndent(llmprovider.ItemSchema(), "", "  ")
	fmt.Fprintf(&b, "\nEmit each item as a single JSON object matching this schema:\n%s\n", schema)
	fmt.Fprintf(&b, "\nAfter each item's JSON object, emit the exact sentinel on its own line: %s\n", sentinel)
	b.WriteString("Do not wrap items in a JSON array. Do not use markdown code fences.\n")

	return b.String()
}

// topGuardrails returns at most max guardrails sorted by descending
// weight, matching Guardrail Engine's getInjectable ordering.
func topGuardrails(rules []domain.GuardrailRule, max int) []domain.GuardrailRule {
	sorted := append([]domain.GuardrailRule(nil), rules...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Weight > sorted[j].Weight })
	if len(sorted) > max {
		sorted = sorted[:max]
	}
	return sorted
}
