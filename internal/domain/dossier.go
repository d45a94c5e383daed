package domain

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// DomainMastery tracks a dossier's long-run clean-run ratio.
type DomainMastery struct {
	Runs       int `json:"runs"`
	CleanRuns  int `json:"cleanRuns"`
}

// CleanRate returns CleanRuns/Runs, or 0 when no runs are recorded yet.
func (d DomainMastery) CleanRate() float64 {
	if d.Runs == 0 {
		return 0
	}
	return float64(d.CleanRuns) / float64(d.Runs)
}

// WeaknessMap is a JSONB-backed map[ViolationType]int, following the
// teacher's JSONB custom-scan pattern for opaque map columns.
type WeaknessMap map[ViolationType]int

func (m WeaknessMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *WeaknessMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), m)
	}
	return json.Unmarshal(bytes, m)
}

// StrengthMap is a JSONB-backed map[string]int keyed by domain/topic.
type StrengthMap map[string]int

func (m StrengthMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *StrengthMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), m)
	}
	return json.Unmarshal(bytes, m)
}

// Dossier is the per (user, agent-prefix, domain) trust/stability/
// weakness record SCRIBE reads and updates under optimistic concurrency.
type Dossier struct {
	UserID        string        `json:"userId"`
	Agent         AgentPrefix   `json:"agent"`
	Domain        string        `json:"domain"`
	TrustScore    float64       `json:"trustScore"`    // 0-10
	StabilityScore float64      `json:"stabilityScore"` // 0-10
	Weaknesses    WeaknessMap   `json:"weaknesses"`
	Strengths     StrengthMap   `json:"strengths"`
	DomainMastery DomainMastery `json:"domainMastery"`
	Version       int           `json:"version"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Key returns the composite row key used by the storage adapter.
func (d Dossier) Key() string {
	return d.UserID + "|" + string(d.Agent) + "|" + d.Domain
}

// NewDossier returns a freshly created dossier with neutral starting
// scores, matching the lifecycle rule "created lazily on first run."
func NewDossier(userID string, agent AgentPrefix, domain string) Dossier {
	return Dossier{
		UserID:         userID,
		Agent:          agent,
		Domain:         domain,
		TrustScore:     5,
		StabilityScore: 5,
		Weaknesses:     WeaknessMap{},
		Strengths:      StrengthMap{},
		Version:        0,
	}
}

// GuardrailRule is a reinforced, decayed prompt-level rule injected into
// future generations.
type GuardrailRule struct {
	ID               string        `json:"id"`
	Category         ViolationType `json:"category"`
	Polarity         Polarity      `json:"polarity"`
	Message          string        `json:"message"`
	Domain           string        `json:"domain"`
	CreatedAtRun     int           `json:"createdAtRun"`
	LastTriggeredRun int           `json:"lastTriggeredRun"`
	TriggerCount     int           `json:"triggerCount"`
	Weight           float64       `json:"weight"`
}

// GuardrailSet is the persisted (user, agent, domain) guardrail row.
type GuardrailSet struct {
	UserID   string          `json:"userId"`
	Agent    AgentPrefix     `json:"agent"`
	Domain   string          `json:"domain"`
	Rules    []GuardrailRule `json:"rules"`
	Version  int             `json:"version"`
	RunCount int             `json:"runCount"`
}

func (g GuardrailSet) Key() string {
	return g.UserID + "|" + string(g.Agent) + "|" + g.Domain
}

// CompensationProfile is the prompt-level guidance SCRIBE.selectAgents
// derives from a dossier for injection into the Writer/Architect prompt.
type CompensationProfile struct {
	Hints              []string        `json:"hints"`
	RequiredBehaviors  []string        `json:"requiredBehaviors,omitempty"`
	ForbiddenBehaviors []string        `json:"forbiddenBehaviors,omitempty"`
	InjectedGuardrails []GuardrailRule `json:"injectedGuardrails,omitempty"`
	TrustScore         float64         `json:"trustScore"`
}

// PredictiveDefaults is the per-teacher modal-preference snapshot that
// AssessmentRepo.PredictiveDefaults derives on read from the saved
// assessment history. No predictive-defaults row is stored.
type PredictiveDefaults struct {
	UserID                string         `json:"userId"`
	MostCommonAssessment  AssessmentType `json:"mostCommonAssessmentType"`
	MedianQuestionCount   int            `json:"medianQuestionCount"`
	MostCommonDifficulty  DifficultyProfile `json:"mostCommonDifficulty"`
	SampleSize            int            `json:"sampleSize"`
}
