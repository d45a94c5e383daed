// Package orchestrator sequences Architect -> Writer -> Gatekeeper ->
// SCRIBE.finalize -> Philosopher -> Builder, enforcing the per-user
// daily usage cap and producing a PipelineTrace for telemetry.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"assessment-forge/internal/architect"
	"assessment-forge/internal/builder"
	"assessment-forge/internal/cache"
	"assessment-forge/internal/domain"
	"assessment-forge/internal/gatekeeper"
	"assessment-forge/internal/llmprovider"
	"assessment-forge/internal/metrics"
	"assessment-forge/internal/philosopher"
	"assessment-forge/internal/scribe"
	"assessment-forge/internal/storage"
)

// Config bundles the orchestrator's tunables, sourced from
// internal/config.Config so this package stays free of an env-reading
// dependency of its own.
type Config struct {
	DailyFreeLimit                   int
	PipelineDeadline                 time.Duration
	LLMDeadline                      time.Duration
	WriterChunkSizeMax               int
	GuardrailMaxInjected             int
	GuardrailExpiryWeight            float64
	GatekeeperRedundancyRatio        float64
	GatekeeperConsecutiveRepeatLimit int
	MaxRestarts                      int
}

// Orchestrator wires every agent together behind a single Run call.
type Orchestrator struct {
	architect  *architect.Architect
	gatekeeper *gatekeeper.Gatekeeper
	scribe     *scribe.SCRIBE
	builder    *builder.Builder
	provider   llmprovider.Provider
	usage      *storage.UsageRepo
	compCache  *cache.CompensationCache
	cfg        Config
}

// New builds an Orchestrator from its dependencies. compCache may be nil,
// in which case every request reads compensation profiles straight from
// SCRIBE/storage.
func New(provider llmprovider.Provider, adapter storage.Adapter, compCache *cache.CompensationCache, cfg Config) *Orchestrator {
	if cfg.MaxRestarts <= 0 {
		cfg.MaxRestarts = 1
	}
	return &Orchestrator{
		architect:  architect.New(cfg.GatekeeperConsecutiveRepeatLimit),
		gatekeeper: gatekeeper.New(cfg.GatekeeperRedundancyRatio, cfg.GatekeeperConsecutiveRepeatLimit),
		scribe:     scribe.New(adapter, cfg.GuardrailMaxInjected, cfg.GuardrailExpiryWeight),
		builder:    builder.New(),
		provider:   provider,
		usage:      storage.NewUsageRepo(adapter),
		compCache:  compCache,
		cfg:        cfg,
	}
}

// selectAgents fetches a CompensationProfile, checking the Redis cache
// before falling back to SCRIBE's dossier/guardrail reads.
func (o *Orchestrator) selectAgents(ctx context.Context, userID, dom string) domain.CompensationProfile {
	if o.compCache != nil {
		if profile, ok := o.compCache.Get(ctx, userID, dom); ok {
			return profile
		}
	}

	profile, err := o.scribe.SelectAgents(ctx, userID, dom)
	if err != nil {
		return domain.CompensationProfile{}
	}
	if o.compCache != nil {
		o.compCache.Set(ctx, userID, dom, profile)
	}
	return profile
}

// Result is what Run returns to its caller (the HTTP/CLI surface).
type Result struct {
	Assessment domain.FinalAssessment
	Quality    domain.QualityReport
	Trace      domain.PipelineTrace
}

// Run executes one full pipeline request for a TeacherIntent.
func (o *Orchestrator) Run(ctx context.Context, intent domain.TeacherIntent, runID string, currentRun int, day string) (Result, error) {
	runStarted := time.Now()
	defer func() {
		metrics.RunDuration.WithLabelValues(string(intent.AssessmentType)).Observe(time.Since(runStarted).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, o.cfg.PipelineDeadline)
	defer cancel()

	if err := o.checkUsageCap(ctx, intent.UserID, day); err != nil {
		metrics.RunsTotal.WithLabelValues("rejected").Inc()
		return Result{}, err
	}

	trace := domain.PipelineTrace{RunID: runID}

	var lastQuality domain.QualityReport
	var finalAssessment domain.FinalAssessment
	var writerRun, architectRun domain.AgentRunSummary

	for attempt := 0; attempt < o.cfg.MaxRestarts+1; attempt++ {
		select {
		case <-ctx.Done():
			trace.Cancelled = true
			o.bestEffortFinalize(context.Background(), intent, []scribe.RunOutcome{
				{Summary: writerRun}, {Summary: architectRun},
			}, nil, currentRun)
			metrics.RunsTotal.WithLabelValues("cancelled").Inc()
			return Result{}, domain.NewPipelineError(domain.ErrPipelineDeadline, "orchestrator", "pipeline deadline exceeded", ctx.Err())
		default:
		}

		comp := o.selectAgents(ctx, intent.UserID, intent.Topic)

		bp, step, err := o.runArchitect(ctx, intent, comp)
		trace.Steps = append(trace.Steps, step)
		if err != nil {
			o.bestEffortFinalize(ctx, intent, []scribe.RunOutcome{{Summary: architectRunSummary(bp, nil)}}, nil, currentRun)
			metrics.RunsTotal.WithLabelValues("failed").Inc()
			return Result{}, fmt.Errorf("orchestrator: architect: %w", err)
		}
		architectRun = architectRunSummary(bp, nil)

		prompt := architect.ComposeWriterPrompt(bp, comp, o.cfg.GuardrailMaxInjected)
		wr, wstep, err := o.runWriter(ctx, bp, comp, prompt)
		trace.Steps = append(trace.Steps, wstep)
		if err != nil {
			o.bestEffortFinalize(ctx, intent, []scribe.RunOutcome{
				{Summary: architectRun}, {Summary: writerRunSummary(wr)},
			}, nil, currentRun)
			metrics.RunsTotal.WithLabelValues("failed").Inc()
			return Result{}, fmt.Errorf("orchestrator: writer: %w", err)
		}
		writerRun = writerRunSummary(wr)
		if !wr.Complete {
			o.bestEffortFinalize(ctx, intent, []scribe.RunOutcome{
				{Summary: architectRun}, {Summary: writerRun},
			}, nil, currentRun)
			metrics.RunsTotal.WithLabelValues("failed").Inc()
			return Result{}, domain.NewPipelineError(domain.ErrWriterIncomplete, "writer", "writer did not commit all slots within its attempt budget", nil)
		}

		batchReport, bstep := o.runGatekeeperBatch(bp, wr.Items)
		trace.Steps = append(trace.Steps, bstep)
		writerRun.Violations = append(writerRun.Violations, batchReport.Violations...)

		quality := philosopher.Write(bp, wr.Items, batchReport)
		lastQuality = quality
		if quality.Status == "restart" {
			metrics.RunsTotal.WithLabelValues("restart").Inc()
			continue
		}

		finalAssessment = o.builder.Assemble(bp, wr.Items)
		break
	}

	if finalAssessment.ID == "" {
		o.bestEffortFinalize(ctx, intent, []scribe.RunOutcome{
			{Summary: architectRun}, {Summary: writerRun},
		}, nil, currentRun)
		metrics.RunsTotal.WithLabelValues("failed").Inc()
		return Result{}, domain.NewPipelineError(domain.ErrWriterIncomplete, "philosopher", "quality review requested a restart on every available attempt", nil)
	}

	o.scribe.Finalize(ctx, scribe.FinalizeInput{
		UserID:          intent.UserID,
		Domain:          intent.Topic,
		Runs:            []scribe.RunOutcome{{Summary: architectRun}, {Summary: writerRun}},
		FinalAssessment: &finalAssessment,
		CurrentRun:      currentRun,
	})
	if o.compCache != nil {
		o.compCache.Invalidate(ctx, intent.UserID, intent.Topic)
	}

	if err := o.incrementUsage(ctx, intent.UserID, day); err != nil {
		// Usage accounting failure is logged by incrementUsage; a run that
		// otherwise succeeded is still returned to the caller.
		_ = err
	}

	metrics.RunsTotal.WithLabelValues("complete").Inc()

	return Result{Assessment: finalAssessment, Quality: lastQuality, Trace: trace}, nil
}

func (o *Orchestrator) bestEffortFinalize(ctx context.Context, intent domain.TeacherIntent, runs []scribe.RunOutcome, fa *domain.FinalAssessment, currentRun int) {
	o.scribe.Finalize(ctx, scribe.FinalizeInput{
		UserID:          intent.UserID,
		Domain:          intent.Topic,
		Runs:            runs,
		FinalAssessment: fa,
		CurrentRun:      currentRun,
	})
	if o.compCache != nil {
		o.compCache.Invalidate(ctx, intent.UserID, intent.Topic)
	}
}

func architectRunSummary(bp domain.Blueprint, violations []domain.Violation) domain.AgentRunSummary {
	return domain.AgentRunSummary{
		Agent:             domain.AgentArchitect,
		Domain:            bp.UAR.Topic,
		Violations:        violations,
		FinalProblemCount: bp.TotalSlots(),
	}
}

func writerRunSummary(wr domain.WriterResult) domain.AgentRunSummary {
	return domain.AgentRunSummary{
		Agent:             domain.AgentWriter,
		Violations:        wr.Telemetry.GatekeeperViolations,
		BloomAlignmentLog: wr.Telemetry.BloomAlignmentLog,
		RewriteCount:      wr.Telemetry.RewriteCount,
		FinalProblemCount: wr.Telemetry.FinalProblemCount,
	}
}
