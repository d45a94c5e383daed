package domain

import "time"

// FinalItem is one Builder-assembled, display-ready item.
type FinalItem struct {
	QuestionNumber int            `json:"questionNumber"`
	SlotID         int            `json:"slotId"`
	QuestionType   QuestionType   `json:"questionType"`
	Prompt         string         `json:"prompt"`
	Options        []string       `json:"options,omitempty"`
	Answer         string         `json:"answer,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
}

// AssessmentMetadata carries plan-derived bookkeeping into the final
// artifact.
type AssessmentMetadata struct {
	DifficultyProfile DifficultyProfile `json:"difficultyProfile"`
	OrderingStrategy  OrderingStrategy  `json:"orderingStrategy"`
	PacingSecondsPerItem int            `json:"pacingSecondsPerItem"`
	TotalEstimatedTimeSeconds int       `json:"totalEstimatedTimeSeconds"`
	MathFormat        MathFormat        `json:"mathFormat"`
}

// FinalAssessment is the Builder's printable artifact.
type FinalAssessment struct {
	ID          string              `json:"id"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Items       []FinalItem         `json:"items"`
	TotalItems  int                 `json:"totalItems"`
	Metadata    AssessmentMetadata  `json:"metadata"`
}

// QualityReport is the Philosopher's output for the `write` mode.
type QualityReport struct {
	Status              string         `json:"status"` // "complete" or "restart"
	QualityScore         float64        `json:"qualityScore"`
	ViolationSummary     map[string]int `json:"violationSummary"`
	BloomDistribution    map[BloomLevel]int `json:"bloomDistribution"`
	RedundancyHotspots   []string       `json:"redundancyHotspots,omitempty"`
	MissingSlotCount     int            `json:"missingSlotCount"`
	LexicalNotes         []string       `json:"lexicalNotes,omitempty"`
	PacingRealismNotes   []string       `json:"pacingRealismNotes,omitempty"`
	PlausibilityWarnings []string       `json:"plausibilityWarnings,omitempty"`
}

// PlaytestReport is the Philosopher's output for the `playtest` mode.
type PlaytestReport struct {
	PredictedCompletionRate float64  `json:"predictedCompletionRate"`
	PredictedEngagement     float64  `json:"predictedEngagement"`
	ConfusionHotspots       []string `json:"confusionHotspots,omitempty"`
}

// CompareReport is the Philosopher's output for the `compare` mode.
type CompareReport struct {
	BloomDistributionDiff map[BloomLevel]int `json:"bloomDistributionDiff"`
	QuestionCountDiff     int                `json:"questionCountDiff"`
	AvgPromptWordCountDiff float64           `json:"avgPromptWordCountDiff"`
	RedundancyCountDiff   int                `json:"redundancyCountDiff"`
}
