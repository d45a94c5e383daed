// Package metrics registers the Prometheus collectors the orchestrator
// and HTTP layer update as pipeline runs complete.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// RunsTotal counts completed pipeline runs by outcome.
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assessment_forge_runs_total",
		Help: "Total pipeline runs by outcome (complete, restart, failed, cancelled, rejected).",
	}, []string{"outcome"})

	// RunDuration observes end-to-end pipeline run latency.
	RunDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "assessment_forge_run_duration_seconds",
		Help:    "Pipeline run duration in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"assessment_type"})

	// WriterRewrites counts Writer rewrite attempts.
	WriterRewrites = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assessment_forge_writer_rewrites_total",
		Help: "Total Writer rewrite attempts across all runs.",
	})

	// GatekeeperViolations counts violations by type.
	GatekeeperViolations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assessment_forge_gatekeeper_violations_total",
		Help: "Total Gatekeeper violations by type.",
	}, []string{"type"})
)

func init() {
	prometheus.MustRegister(RunsTotal, RunDuration, WriterRewrites, GatekeeperViolations)
}
