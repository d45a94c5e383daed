package orchestrator

import (
	"context"
	"fmt"
	"log"
	"time"

	"assessment-forge/internal/domain"
	"assessment-forge/internal/metrics"
	"assessment-forge/internal/writer"
)

func (o *Orchestrator) runArchitect(ctx context.Context, intent domain.TeacherIntent, comp domain.CompensationProfile) (domain.Blueprint, domain.PipelineStep, error) {
	started := time.Now()
	bp, err := o.architect.Plan(intent, comp)
	step := domain.PipelineStep{
		Agent:      string(domain.AgentArchitect),
		Input:      intent,
		StartedAt:  started,
		FinishedAt: time.Now(),
	}
	if err != nil {
		step.Errors = []string{err.Error()}
		return domain.Blueprint{}, step, err
	}
	step.Output = bp
	return bp, step, nil
}

func (o *Orchestrator) runWriter(ctx context.Context, bp domain.Blueprint, comp domain.CompensationProfile, systemPrompt string) (domain.WriterResult, domain.PipelineStep, error) {
	started := time.Now()
	chunkMax := o.cfg.WriterChunkSizeMax
	if chunkMax <= 0 {
		chunkMax = 5
	}
	w := writer.New(o.provider, o.gatekeeper, chunkMax, o.cfg.LLMDeadline)

	trustScore := comp.TrustScore
	wr, err := w.Write(ctx, bp, comp, trustScore, systemPrompt)

	step := domain.PipelineStep{
		Agent:      string(domain.AgentWriter),
		StartedAt:  started,
		FinishedAt: time.Now(),
		Violations: wr.Telemetry.GatekeeperViolations,
	}
	metrics.WriterRewrites.Add(float64(wr.Telemetry.RewriteCount))
	for _, v := range wr.Telemetry.GatekeeperViolations {
		metrics.GatekeeperViolations.WithLabelValues(string(v.Type)).Inc()
	}

	if err != nil {
		step.Errors = []string{err.Error()}
		return wr, step, err
	}
	step.Output = wr
	return wr, step, nil
}

func (o *Orchestrator) runGatekeeperBatch(bp domain.Blueprint, items []domain.GeneratedItem) (domain.GatekeeperReport, domain.PipelineStep) {
	started := time.Now()
	report := o.gatekeeper.CheckBatch(bp, items)
	for _, v := range report.Violations {
		metrics.GatekeeperViolations.WithLabelValues(string(v.Type)).Inc()
	}
	return report, domain.PipelineStep{
		Agent:      "gatekeeper",
		StartedAt:  started,
		FinishedAt: time.Now(),
		Output:     report,
		Violations: report.Violations,
	}
}

// checkUsageCap enforces the per-user daily free-tier cap, failing
// closed (blocking the run) if the usage read itself errors.
func (o *Orchestrator) checkUsageCap(ctx context.Context, userID, day string) error {
	if o.cfg.DailyFreeLimit <= 0 {
		return nil
	}
	count, _, err := o.usage.CountToday(ctx, userID, day)
	if err != nil {
		return domain.NewPipelineError(domain.ErrUsageCapRead, "orchestrator", "usage cap read failed, failing closed", err)
	}
	if count >= o.cfg.DailyFreeLimit {
		return domain.NewPipelineError(domain.ErrUsageCapRead, "orchestrator", fmt.Sprintf("daily usage cap of %d reached", o.cfg.DailyFreeLimit), nil)
	}
	return nil
}

// incrementUsage bumps today's counter via CAS, retrying once on a
// version race before giving up and logging.
func (o *Orchestrator) incrementUsage(ctx context.Context, userID, day string) error {
	for attempt := 0; attempt < 2; attempt++ {
		count, version, err := o.usage.CountToday(ctx, userID, day)
		if err != nil {
			log.Printf("orchestrator: usage increment read failed for %s/%s: %v", userID, day, err)
			return err
		}
		ok, err := o.usage.Increment(ctx, userID, day, count, version)
		if err != nil {
			log.Printf("orchestrator: usage increment failed for %s/%s: %v", userID, day, err)
			return err
		}
		if ok {
			return nil
		}
	}
	log.Printf("orchestrator: usage increment CAS exhausted retries for %s/%s", userID, day)
	return nil
}
