package scribe

import (
	"context"
	"fmt"
	"log"

	"assessment-forge/internal/domain"
	"assessment-forge/internal/storage"
)

// SCRIBE implements governance and memory: selectAgents, recalibration
// from Bloom drift, and the post-run finalize that updates dossiers,
// guardrails, history, and predictive defaults.
type SCRIBE struct {
	dossiers     *storage.DossierRepo
	guardrails   *storage.GuardrailRepo
	assessments  *storage.AssessmentRepo
	maxInjected  int
	expiryWeight float64
}

// New builds a SCRIBE bound to the storage repositories it governs.
func New(adapter storage.Adapter, maxInjected int, expiryWeight float64) *SCRIBE {
	if maxInjected <= 0 {
		maxInjected = 8
	}
	if expiryWeight <= 0 {
		expiryWeight = 0.3
	}
	return &SCRIBE{
		dossiers:     storage.NewDossierRepo(adapter),
		guardrails:   storage.NewGuardrailRepo(adapter),
		assessments:  storage.NewAssessmentRepo(adapter),
		maxInjected:  maxInjected,
		expiryWeight: expiryWeight,
	}
}

// SelectAgents loads (or lazily creates) the (userId, writer, domain)
// dossier and derives a CompensationProfile: hints from dossier
// weaknesses/mastery, plus the top-weighted active guardrails.
func (s *SCRIBE) SelectAgents(ctx context.Context, userID, dom string) (domain.CompensationProfile, error) {
	d, _, err := s.dossiers.Get(ctx, userID, domain.AgentWriter, dom)
	if err != nil {
		return domain.CompensationProfile{}, fmt.Errorf("scribe: select agents: %w", err)
	}

	gs, _, err := s.guardrails.Get(ctx, userID, domain.AgentWriter, dom)
	if err != nil {
		return domain.CompensationProfile{}, fmt.Errorf("scribe: select agents guardrails: %w", err)
	}

	return domain.CompensationProfile{
		Hints:              buildHints(d),
		InjectedGuardrails: getInjectable(gs.Rules, s.maxInjected),
		TrustScore:         d.TrustScore,
	}, nil
}

// RunOutcome bundles what Finalize needs for one agent's run within
// the pipeline.
type RunOutcome struct {
	Summary domain.AgentRunSummary
}

// FinalizeInput bundles everything a completed run hands to Finalize.
type FinalizeInput struct {
	UserID          string
	Domain          string
	Runs            []RunOutcome
	FinalAssessment *domain.FinalAssessment
	CurrentRun      int
}

// Finalize updates every agent's dossier, reinforces/decays the
// guardrail set, and (when a FinalAssessment was produced) records
// history for predictive defaults. Storage failures are logged and
// skipped rather than propagated — a governance update must never
// abort an otherwise-successful pipeline run.
func (s *SCRIBE) Finalize(ctx context.Context, in FinalizeInput) {
	for _, run := range in.Runs {
		s.finalizeDossier(ctx, in.UserID, run.Summary)
		s.finalizeGuardrails(ctx, in.UserID, run.Summary, in.CurrentRun)
	}

	if in.FinalAssessment != nil {
		if err := s.assessments.Save(ctx, in.UserID, *in.FinalAssessment); err != nil {
			log.Printf("scribe: failed to save assessment history: %v", err)
		}
	}
}

func (s *SCRIBE) finalizeDossier(ctx context.Context, userID string, summary domain.AgentRunSummary) {
	for attempt := 0; attempt < 2; attempt++ {
		d, version, err := s.dossiers.Get(ctx, userID, summary.Agent, summary.Domain)
		if err != nil {
			log.Printf("scribe: dossier read failed for %s/%s/%s: %v", userID, summary.Agent, summary.Domain, err)
			return
		}

		applyRunOutcome(&d, summary.Violations, max1(summary.FinalProblemCount))

		var ok bool
		if version == 0 && d.DomainMastery.Runs == 1 {
			err = s.dossiers.Create(ctx, d)
			ok = err == nil
		} else {
			ok, err = s.dossiers.CompareAndSwap(ctx, d, version)
		}
		if err != nil {
			log.Printf("scribe: dossier write failed for %s/%s/%s: %v", userID, summary.Agent, summary.Domain, err)
			return
		}
		if ok {
			return
		}
		// CAS miss: reload and retry once, per the lifecycle rule; a
		// second miss is logged and skipped rather than retried forever.
	}
	log.Printf("scribe: dossier cas miss twice for %s/%s/%s, skipping this run's update", userID, summary.Agent, summary.Domain)
}

func (s *SCRIBE) finalizeGuardrails(ctx context.Context, userID string, summary domain.AgentRunSummary, currentRun int) {
	gs, version, err := s.guardrails.Get(ctx, userID, summary.Agent, summary.Domain)
	if err != nil {
		log.Printf("scribe: guardrail read failed for %s/%s/%s: %v", userID, summary.Agent, summary.Domain, err)
		return
	}

	candidates := synthesizeCandidates(summary.Violations, summary.Domain)
	gs.Rules = mergeGuardrails(gs.Rules, candidates, currentRun)

	d, _, err := s.dossiers.Get(ctx, userID, summary.Agent, summary.Domain)
	trust, stability := 5.0, 5.0
	if err == nil {
		trust, stability = d.TrustScore, d.StabilityScore
	}
	gs.Rules = decayGuardrails(gs.Rules, currentRun, trust, stability, s.expiryWeight)
	gs.RunCount = currentRun

	var ok bool
	if version == 0 && gs.RunCount == currentRun && len(gs.Rules) > 0 {
		err = s.guardrails.Create(ctx, gs)
		ok = err == nil
	} else {
		ok, err = s.guardrails.CompareAndSwap(ctx, gs, version)
	}
	if err != nil {
		log.Printf("scribe: guardrail write failed for %s/%s/%s: %v", userID, summary.Agent, summary.Domain, err)
		return
	}
	if !ok {
		log.Printf("scribe: guardrail cas miss for %s/%s/%s, skipping this run's update", userID, summary.Agent, summary.Domain)
	}
}

// RecalibrateFromBloomDrift tiers the drift in an alignment log and
// returns the matching required/forbidden behaviors as a
// CompensationProfile. The orchestrator does not call it, and Finalize
// does not store these behaviors on the dossier.
func (s *SCRIBE) RecalibrateFromBloomDrift(log []domain.BloomAlignmentEntry) domain.CompensationProfile {
	outcome := recalibrateFromBloomDrift(log)
	required, forbidden := prescriptionsForDrift(outcome)
	return domain.CompensationProfile{
		RequiredBehaviors:  pruneBehaviors(required, 5),
		ForbiddenBehaviors: pruneBehaviors(forbidden, 5),
	}
}

// PredictiveDefaults exposes the teacher's modal-preference snapshot
// for the /assessments history read path.
func (s *SCRIBE) PredictiveDefaults(ctx context.Context, userID string) (domain.PredictiveDefaults, error) {
	return s.assessments.PredictiveDefaults(ctx, userID)
}
