// Package sweeper runs the background maintenance jobs that don't belong
// in the request path: periodic DB-pool telemetry and a daily log line
// marking usage-cap rollover, grounded on the devclaw scheduler's
// robfig/cron wiring.
package sweeper

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

var dbPoolOpenConnections = prometheus.NewGauge(prometheus.GaugeOpts{
	Name: "assessment_forge_db_pool_open_connections",
	Help: "Open connections in the Postgres pool, sampled periodically.",
})

func init() {
	prometheus.MustRegister(dbPoolOpenConnections)
}

// Sweeper owns the cron scheduler and the jobs registered on it.
type Sweeper struct {
	cron *cron.Cron
	db   *sql.DB
}

// New builds a Sweeper bound to db for pool-stat sampling.
func New(db *sql.DB) *Sweeper {
	return &Sweeper{
		cron: cron.New(),
		db:   db,
	}
}

// Start registers and starts every background job. It is non-blocking;
// the returned cron scheduler runs in its own goroutine.
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc("@every 30s", s.samplePoolStats); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@daily", s.logDailyRollover); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop waits for any in-flight job to finish and stops the scheduler.
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) samplePoolStats() {
	stats := s.db.Stats()
	dbPoolOpenConnections.Set(float64(stats.OpenConnections))
}

func (s *Sweeper) logDailyRollover() {
	log.Printf("sweeper: daily usage-cap window rolled over")
}
