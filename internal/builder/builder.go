package builder

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"assessment-forge/internal/domain"
)

// Builder assembles committed GeneratedItems into a presentable
// FinalAssessment: text cleaning, math normalization/formatting,
// lexical calibration, and pagination metadata.
type Builder struct{}

// New returns a Builder.
func New() *Builder {
	return &Builder{}
}

// Assemble transforms items (already ordered by slotId) into a
// FinalAssessment carrying the plan's pacing/format metadata.
func (b *Builder) Assemble(bp domain.Blueprint, items []domain.GeneratedItem) domain.FinalAssessment {
	grade := bp.UAR.Grade()
	format := bp.UAR.MathFormat
	if format == "" {
		format = domain.MathUnicode
	}

	finalItems := make([]domain.FinalItem, 0, len(items))
	for i, item := range items {
		finalItems = append(finalItems, domain.FinalItem{
			QuestionNumber: i + 1,
			SlotID:         item.SlotID,
			QuestionType:   item.QuestionType,
			Prompt:         renderText(item.Prompt, grade, format),
			Options:        renderOptions(item.Options, grade, format),
			Answer:         renderText(item.Answer, grade, format),
			Metadata:       item.Metadata,
		})
	}

	return domain.FinalAssessment{
		ID:          generateID(),
		GeneratedAt: time.Now().UTC(),
		Items:       finalItems,
		TotalItems:  len(finalItems),
		Metadata: domain.AssessmentMetadata{
			DifficultyProfile:         bp.Plan.DifficultyProfile,
			OrderingStrategy:          bp.Plan.OrderingStrategy,
			PacingSecondsPerItem:      bp.Plan.PacingSecondsPerItem,
			TotalEstimatedTimeSeconds: bp.Plan.TotalEstimatedTimeSeconds,
			MathFormat:                format,
		},
	}
}

func renderText(s string, grade int, format domain.MathFormat) string {
	s = cleanText(s)
	s = normalizeMath(s)
	s = formatMath(s, format)
	s = calibrateLexicon(s, grade)
	return s
}

func renderOptions(options []string, grade int, format domain.MathFormat) []string {
	if options == nil {
		return nil
	}
	out := make([]string, len(options))
	for i, o := range options {
		out[i] = renderText(o, grade, format)
	}
	return out
}

// generateID returns "assessment_{unixMillis}_{random6hex}".
func generateID() string {
	buf := make([]byte, 3)
	_, _ = rand.Read(buf)
	return fmt.Sprintf("assessment_%d_%s", time.Now().UnixMilli(), hex.EncodeToString(buf))
}
