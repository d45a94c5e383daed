package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"assessment-forge/internal/domain"
)

const (
	tableDossiers    = "dossiers"
	tableGuardrails  = "guardrail_sets"
	tableAssessments = "assessments"
	tableUsage       = "usage_counters"
)

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}

func fromMap(m map[string]any, out any) error {
	raw, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// DossierRepo is SCRIBE's typed view over Adapter for the per
// (user, agent, domain) trust/strength/weakness record.
type DossierRepo struct {
	adapter Adapter
}

func NewDossierRepo(adapter Adapter) *DossierRepo {
	return &DossierRepo{adapter: adapter}
}

// Get returns the dossier for key, or a fresh one at version 0 if none
// exists yet. A row just written by Create also reads back at version
// 0, so the version alone does not tell the two apart.
func (r *DossierRepo) Get(ctx context.Context, userID string, agent domain.AgentPrefix, dom string) (domain.Dossier, int, error) {
	d := domain.NewDossier(userID, agent, dom)
	row, err := r.adapter.ReadOne(ctx, tableDossiers, d.Key())
	if err != nil {
		return domain.Dossier{}, 0, fmt.Errorf("dossier repo: get %s: %w", d.Key(), err)
	}
	if row == nil {
		return d, 0, nil
	}
	if err := fromMap(row.Value, &d); err != nil {
		return domain.Dossier{}, 0, fmt.Errorf("dossier repo: decode %s: %w", d.Key(), err)
	}
	return d, row.Version, nil
}

// Create inserts a brand-new dossier row (version 0).
func (r *DossierRepo) Create(ctx context.Context, d domain.Dossier) error {
	m, err := toMap(d)
	if err != nil {
		return fmt.Errorf("dossier repo: encode %s: %w", d.Key(), err)
	}
	return r.adapter.Upsert(ctx, tableDossiers, d.Key(), m)
}

// CompareAndSwap applies d on top of the stored row only if the stored
// version still equals expectedVersion. Returns false on a CAS miss so
// the caller (SCRIBE) can re-read and retry per spec.md's "last write
// wins after reconciliation" rule.
func (r *DossierRepo) CompareAndSwap(ctx context.Context, d domain.Dossier, expectedVersion int) (bool, error) {
	m, err := toMap(d)
	if err != nil {
		return false, fmt.Errorf("dossier repo: encode %s: %w", d.Key(), err)
	}
	ok, err := r.adapter.UpdateIfVersion(ctx, tableDossiers, d.Key(), m, expectedVersion)
	if err != nil {
		return false, fmt.Errorf("dossier repo: cas %s: %w", d.Key(), err)
	}
	return ok, nil
}

// GuardrailRepo is SCRIBE's typed view over Adapter for injectable
// guardrail rule sets.
type GuardrailRepo struct {
	adapter Adapter
}

func NewGuardrailRepo(adapter Adapter) *GuardrailRepo {
	return &GuardrailRepo{adapter: adapter}
}

func (r *GuardrailRepo) Get(ctx context.Context, userID string, agent domain.AgentPrefix, dom string) (domain.GuardrailSet, int, error) {
	gs := domain.GuardrailSet{UserID: userID, Agent: agent, Domain: dom}
	row, err := r.adapter.ReadOne(ctx, tableGuardrails, gs.Key())
	if err != nil {
		return domain.GuardrailSet{}, 0, fmt.Errorf("guardrail repo: get %s: %w", gs.Key(), err)
	}
	if row == nil {
		return gs, 0, nil
	}
	if err := fromMap(row.Value, &gs); err != nil {
		return domain.GuardrailSet{}, 0, fmt.Errorf("guardrail repo: decode %s: %w", gs.Key(), err)
	}
	return gs, row.Version, nil
}

func (r *GuardrailRepo) Create(ctx context.Context, gs domain.GuardrailSet) error {
	m, err := toMap(gs)
	if err != nil {
		return fmt.Errorf("guardrail repo: encode %s: %w", gs.Key(), err)
	}
	return r.adapter.Upsert(ctx, tableGuardrails, gs.Key(), m)
}

func (r *GuardrailRepo) CompareAndSwap(ctx context.Context, gs domain.GuardrailSet, expectedVersion int) (bool, error) {
	m, err := toMap(gs)
	if err != nil {
		return false, fmt.Errorf("guardrail repo: encode %s: %w", gs.Key(), err)
	}
	ok, err := r.adapter.UpdateIfVersion(ctx, tableGuardrails, gs.Key(), m, expectedVersion)
	if err != nil {
		return false, fmt.Errorf("guardrail repo: cas %s: %w", gs.Key(), err)
	}
	return ok, nil
}

// AssessmentRepo stores completed FinalAssessment records for the
// history endpoint and predictive-defaults mining.
type AssessmentRepo struct {
	adapter Adapter
}

func NewAssessmentRepo(adapter Adapter) *AssessmentRepo {
	return &AssessmentRepo{adapter: adapter}
}

func (r *AssessmentRepo) Save(ctx context.Context, userID string, fa domain.FinalAssessment) error {
	m, err := toMap(fa)
	if err != nil {
		return fmt.Errorf("assessment repo: encode %s: %w", fa.ID, err)
	}
	m["userId"] = userID
	if err := r.adapter.Upsert(ctx, tableAssessments, fa.ID, m); err != nil {
		return fmt.Errorf("assessment repo: save %s: %w", fa.ID, err)
	}
	return r.adapter.Append(ctx, tableAssessments, userID, "history", m)
}

func (r *AssessmentRepo) Get(ctx context.Context, id string) (*domain.FinalAssessment, error) {
	row, err := r.adapter.ReadOne(ctx, tableAssessments, id)
	if err != nil {
		return nil, fmt.Errorf("assessment repo: get %s: %w", id, err)
	}
	if row == nil {
		return nil, nil
	}
	var fa domain.FinalAssessment
	if err := fromMap(row.Value, &fa); err != nil {
		return nil, fmt.Errorf("assessment repo: decode %s: %w", id, err)
	}
	return &fa, nil
}

// UsageRepo tracks the daily free-tier counter SCRIBE/Orchestrator
// enforce fail-closed on read error.
type UsageRepo struct {
	adapter Adapter
}

func NewUsageRepo(adapter Adapter) *UsageRepo {
	return &UsageRepo{adapter: adapter}
}

func usageKey(userID, day string) string {
	return userID + "|" + day
}

// CountToday returns how many runs userID has already used on day
// (caller passes a YYYY-MM-DD string so the repo stays clock-free).
func (r *UsageRepo) CountToday(ctx context.Context, userID, day string) (int, int, error) {
	row, err := r.adapter.ReadOne(ctx, tableUsage, usageKey(userID, day))
	if err != nil {
		return 0, 0, fmt.Errorf("usage repo: read %s: %w", usageKey(userID, day), err)
	}
	if row == nil {
		return 0, 0, nil
	}
	count, _ := row.Value["count"].(float64)
	return int(count), row.Version, nil
}

// Increment bumps today's counter via CAS, creating the row on first
// use. Returns false on a CAS race so the caller retries.
func (r *UsageRepo) Increment(ctx context.Context, userID, day string, currentCount, expectedVersion int) (bool, error) {
	key := usageKey(userID, day)
	if expectedVersion == 0 && currentCount == 0 {
		row, err := r.adapter.ReadOne(ctx, tableUsage, key)
		if err != nil {
			return false, fmt.Errorf("usage repo: precheck %s: %w", key, err)
		}
		if row == nil {
			if err := r.adapter.Upsert(ctx, tableUsage, key, map[string]any{"count": 1}); err != nil {
				return false, fmt.Errorf("usage repo: create %s: %w", key, err)
			}
			return true, nil
		}
	}
	ok, err := r.adapter.UpdateIfVersion(ctx, tableUsage, key, map[string]any{"count": currentCount + 1}, expectedVersion)
	if err != nil {
		return false, fmt.Errorf("usage repo: cas %s: %w", key, err)
	}
	return ok, nil
}

// PredictiveDefaults derives a PredictiveDefaults snapshot from a
// user's saved assessment history. It reads the append log rather than
// scanning tableAssessments so it stays O(history size) instead of
// O(all assessments). MostCommonAssessment is always empty: the saved
// FinalAssessment entries carry no assessment type, so typeCounts stays
// empty.
func (r *AssessmentRepo) PredictiveDefaults(ctx context.Context, userID string) (domain.PredictiveDefaults, error) {
	entries, err := r.adapter.ReadHistory(ctx, tableAssessments, userID, "history")
	if err != nil {
		return domain.PredictiveDefaults{}, fmt.Errorf("assessment repo: predictive defaults %s: %w", userID, err)
	}
	pd := domain.PredictiveDefaults{UserID: userID, SampleSize: len(entries)}
	if len(entries) == 0 {
		return pd, nil
	}

	typeCounts := make(map[string]int)
	diffCounts := make(map[string]int)
	counts := make([]int, 0, len(entries))
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		if items, ok := m["totalItems"].(float64); ok {
			counts = append(counts, int(items))
		}
		if meta, ok := m["metadata"].(map[string]any); ok {
			if dp, ok := meta["difficultyProfile"].(string); ok {
				diffCounts[dp]++
			}
		}
	}
	for k, v := range typeCounts {
		if v > typeCounts[pd.MostCommonAssessment] {
			pd.MostCommonAssessment = k
		}
	}
	for k, v := range diffCounts {
		if v > diffCounts[pd.MostCommonDifficulty] {
			pd.MostCommonDifficulty = k
		}
	}
	if len(counts) > 0 {
		sort.Ints(counts)
		mid := len(counts) / 2
		if len(counts)%2 == 0 {
			pd.MedianQuestionCount = (counts[mid-1] + counts[mid]) / 2
		} else {
			pd.MedianQuestionCount = counts[mid]
		}
	}
	return pd, nil
}
