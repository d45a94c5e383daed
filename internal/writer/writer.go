package writer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"assessment-forge/internal/domain"
	"assessment-forge/internal/gatekeeper"
	"assessment-forge/internal/llmprovider"
)

// Writer runs the adaptive chunked generation loop described in the
// component design: issue a chunk, parse with sentinel framing,
// validate each candidate against the Gatekeeper, halve the chunk size
// on truncation, and stop once every slot is committed or the attempt
// budget runs out.
type Writer struct {
	provider    llmprovider.Provider
	gatekeeper  *gatekeeper.Gatekeeper
	chunkMax    int
	llmDeadline time.Duration
}

// New builds a Writer bound to an LLM provider, the configured maximum
// chunk size (default 5), and the per-call LLM deadline (default 60s)
// each generate call is bounded by.
func New(provider llmprovider.Provider, gk *gatekeeper.Gatekeeper, chunkMax int, llmDeadline time.Duration) *Writer {
	if chunkMax <= 0 {
		chunkMax = 5
	}
	if llmDeadline <= 0 {
		llmDeadline = 60 * time.Second
	}
	return &Writer{provider: provider, gatekeeper: gk, chunkMax: chunkMax, llmDeadline: llmDeadline}
}

// itemContext bundles the per-item Gatekeeper context derived once from
// the blueprint, reused across every slot.
func itemContextFor(bp domain.Blueprint) gatekeeper.ItemContext {
	var topics []string
	if bp.UAR.Topic != "" {
		topics = append(topics, strings.Fields(bp.UAR.Topic)...)
	}
	if bp.UAR.Unit != "" {
		topics = append(topics, strings.Fields(bp.UAR.Unit)...)
	}
	if bp.UAR.LessonName != "" {
		topics = append(topics, strings.Fields(bp.UAR.LessonName)...)
	}

	var forbid []string
	for _, c := range bp.Constraints.Resolved {
		if c.Type == domain.ConstraintForbiddenContent {
			forbid = append(forbid, c.Value)
		}
	}

	slotCount := len(bp.Plan.Slots)
	perSlotTolerance := bp.Plan.PacingToleranceSeconds
	if slotCount > 0 {
		perSlotTolerance = bp.Plan.PacingToleranceSeconds / float64(slotCount)
	}

	return gatekeeper.ItemContext{
		TopicTokens:     topics,
		ForbidPhrases:   forbid,
		SlotCount:       slotCount,
		PacingTolerance: perSlotTolerance,
	}
}

// rewriteBudget derives the per-item rewrite allowance from trust:
// 5 - floor(trustScore/3), clamped to [1,5].
func rewriteBudget(trustScore float64) int {
	budget := 5 - int(math.Floor(trustScore/3))
	if budget < 1 {
		budget = 1
	}
	if budget > 5 {
		budget = 5
	}
	return budget
}

// Write implements the Writer contract: write(blueprint, prescriptions)
// -> {items[], telemetry}.
func (w *Writer) Write(ctx context.Context, bp domain.Blueprint, prescriptions domain.CompensationProfile, trustScore float64, systemPrompt string) (domain.WriterResult, error) {
	slots := bp.Plan.Slots
	questionCount := len(slots)
	committed := make(map[int]domain.GeneratedItem, questionCount)
	rewritesLeft := make(map[int]int, questionCount)
	for _, s := range slots {
		rewritesLeft[s.Index] = rewriteBudget(trustScore)
	}

	itemCtx := itemContextFor(bp)

	chunkSize := questionCount
	if chunkSize > w.chunkMax {
		chunkSize = w.chunkMax
	}
	if chunkSize < 1 {
		chunkSize = 1
	}
	attemptBudget := int(math.Ceil(float64(questionCount) / float64(chunkSize)))
	if attemptBudget > 3 {
		attemptBudget = 3
	}
	if attemptBudget < 1 {
		attemptBudget = 1
	}

	telemetry := domain.WriterTelemetry{}

	for attempt := 0; attempt < attemptBudget && len(committed) < questionCount; attempt++ {
		select {
		case <-ctx.Done():
			// Partial committed items are discarded on cancellation per
			// the concurrency model; SCRIBE still sees a truncated,
			// cancelled trace via the orchestrator.
			telemetry.FinalProblemCount = 0
			return domain.WriterResult{Telemetry: telemetry, Complete: false}, ctx.Err()
		default:
		}

		pending := firstUnfilled(slots, committed, chunkSize)
		if len(pending) == 0 {
			break
		}

		telemetry.ChunkSizes = append(telemetry.ChunkSizes, len(pending))

		raw, err := w.generate(ctx, systemPrompt, pending)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				// A per-call LLM deadline is treated as a truncated chunk:
				// halve the chunk size and retry within the attempt budget
				// rather than failing the whole run.
				telemetry.TruncationEvents++
				if chunkSize > 1 {
					chunkSize /= 2
					if chunkSize < 1 {
						chunkSize = 1
					}
				}
				continue
			}
			return domain.WriterResult{}, fmt.Errorf("writer: generate chunk: %w", err)
		}

		parsed := parseChunk(raw)
		if parsed.Truncated {
			telemetry.TruncationEvents++
		}

		committedThisChunk := w.commitItems(pending, parsed, bp, itemCtx, committed, rewritesLeft, &telemetry)

		if parsed.Truncated || committedThisChunk < len(pending) {
			if chunkSize > 1 {
				chunkSize /= 2
				if chunkSize < 1 {
					chunkSize = 1
				}
			}
		}
	}

	complete := len(committed) == questionCount
	telemetry.FinalProblemCount = len(committed)
	return w.result(committed, slots, telemetry, complete), nil
}

func (w *Writer) generate(ctx context.Context, systemPrompt string, pending []domain.Slot) (string, error) {
	var b strings.Builder
	b.WriteString("Generate the following slots now:\n")
	for _, s := range pending {
		fmt.Fprintf(&b, "- slot %d: %s / %s\n", s.Index, s.CognitiveProcess, s.Type)
	}

	callCtx, cancel := context.WithTimeout(ctx, w.llmDeadline)
	defer cancel()

	text, _, err := w.provider.Generate(callCtx, llmprovider.Request{
		SystemPrompt: systemPrompt,
		Messages:     []llmprovider.Message{{Role: "user", Content: b.String()}},
		MaxTokens:    4096,
		Temperature:  0.2,
	})
	return text, err
}

// commitItems maps parsed shapes back onto pending slots positionally,
// runs per-item Gatekeeper, and commits or queues for rewrite.
func (w *Writer) commitItems(
	pending []domain.Slot,
	parsed parseResult,
	bp domain.Blueprint,
	itemCtx gatekeeper.ItemContext,
	committed map[int]domain.GeneratedItem,
	rewritesLeft map[int]int,
	telemetry *domain.WriterTelemetry,
) int {
	count := 0
	for i, shape := range parsed.Items {
		if i >= len(pending) {
			break
		}
		slot := pending[i]
		item := domain.GeneratedItem{
			SlotID:       slot.Index,
			QuestionType: domain.QuestionType(shape.QuestionType),
			Prompt:       shape.Prompt,
			Options:      shape.Options,
			Answer:       shape.Answer,
		}

		report := w.gatekeeper.CheckItem(slot, item, itemCtx)
		telemetry.GatekeeperViolations = append(telemetry.GatekeeperViolations, report.Violations...)
		telemetry.BloomAlignmentLog = append(telemetry.BloomAlignmentLog, bloomAlignmentEntry(slot, item))

		severity := report.HighestSeverity()
		mustRewrite := severity == domain.SeverityHigh ||
			(severity == domain.SeverityMedium && rewritesLeft[slot.Index] > 0)

		if mustRewrite && rewritesLeft[slot.Index] > 0 {
			rewritesLeft[slot.Index]--
			telemetry.RewriteCount++
			for _, v := range report.Violations {
				telemetry.RewriteReasons = append(telemetry.RewriteReasons, string(v.Type))
			}
			continue
		}

		committed[slot.Index] = item
		count++
	}
	return count
}

func bloomAlignmentEntry(slot domain.Slot, item domain.GeneratedItem) domain.BloomAlignmentEntry {
	detected := gatekeeper.ClassifyBloomLevel(item.Prompt)
	aligned := gatekeeper.BloomMeets(detected, slot.CognitiveProcess)
	entry := domain.BloomAlignmentEntry{
		SlotID:          slot.Index,
		WriterBloom:     detected,
		GatekeeperBloom: &detected,
		Aligned:         aligned,
	}
	if !aligned {
		dir := domain.DirectionUnder
		if detected.Index() > slot.CognitiveProcess.Index() {
			dir = domain.DirectionOver
		}
		entry.Direction = &dir
	}
	return entry
}

// firstUnfilled returns up to chunkSize slots, in slot order, that have
// not yet been committed.
func firstUnfilled(slots []domain.Slot, committed map[int]domain.GeneratedItem, chunkSize int) []domain.Slot {
	var out []domain.Slot
	for _, s := range slots {
		if _, ok := committed[s.Index]; ok {
			continue
		}
		out = append(out, s)
		if len(out) == chunkSize {
			break
		}
	}
	return out
}

func (w *Writer) result(committed map[int]domain.GeneratedItem, slots []domain.Slot, telemetry domain.WriterTelemetry, complete bool) domain.WriterResult {
	items := make([]domain.GeneratedItem, 0, len(committed))
	for _, s := range slots {
		if item, ok := committed[s.Index]; ok {
			items = append(items, item)
		}
	}
	return domain.WriterResult{Items: items, Telemetry: telemetry, Complete: complete}
}
