package domain

import "time"

// PipelineStep is one agent's execution record within a PipelineTrace.
type PipelineStep struct {
	Agent      string    `json:"agent"`
	Input      any       `json:"input,omitempty"`
	Output     any       `json:"output,omitempty"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Errors     []string  `json:"errors,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

// PipelineTrace is the orchestrator's full run telemetry.
type PipelineTrace struct {
	RunID     string         `json:"runId"`
	Steps     []PipelineStep `json:"steps"`
	Cancelled bool           `json:"cancelled,omitempty"`
}

// AgentRunSummary is what SCRIBE.finalize consumes per agent run to
// update the corresponding dossier.
type AgentRunSummary struct {
	Agent            AgentPrefix
	Domain           string
	Violations       []Violation
	BloomAlignmentLog []BloomAlignmentEntry
	RewriteCount     int
	FinalProblemCount int
}
