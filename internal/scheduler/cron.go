// Package scheduler fires ingestion runs on a fixed cadence.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/hszk-dev/tubedigest/internal/infrastructure/cache"
	"github.com/hszk-dev/tubedigest/internal/infrastructure/metrics"
	"github.com/hszk-dev/tubedigest/internal/usecase"
)

// Config holds configuration for the Cron scheduler.
type Config struct {
	// Spec is the cron schedule, e.g. "@every 6h" or "0 */6 * * *".
	Spec string
	// RunOnStartup fires one run immediately when Start is called.
	RunOnStartup bool
	// Category is the channel category each scheduled run ingests.
	Category string
}

// Cron schedules ingestion runs and consults the shared gate before each
// one, so an admin can pause the cadence without restarting the worker.
type Cron struct {
	ingest usecase.IngestService
	gate   cache.Gate
	cron   *cron.Cron
	cfg    Config
}

// New creates a Cron scheduler. Start must be called to arm it.
func New(ingest usecase.IngestService, gate cache.Gate, cfg Config) *Cron {
	return &Cron{
		ingest: ingest,
		gate:   gate,
		cron:   cron.New(),
		cfg:    cfg,
	}
}

// Start arms the schedule and optionally fires a startup run. The startup
// run is synchronous so the worker begins consuming queue messages with a
// warm store.
func (c *Cron) Start(ctx context.Context) error {
	if _, err := c.cron.AddFunc(c.cfg.Spec, func() {
		c.fire(ctx)
	}); err != nil {
		return err
	}

	if c.cfg.RunOnStartup {
		c.fire(ctx)
	}

	c.cron.Start()
	slog.Info("scheduler started", "spec", c.cfg.Spec, "category", c.cfg.Category)
	return nil
}

// Stop halts the schedule; a run already in flight finishes on its own.
func (c *Cron) Stop() {
	c.cron.Stop()
	slog.Info("scheduler stopped")
}

// fire runs one scheduled ingestion pass if the gate allows it.
func (c *Cron) fire(ctx context.Context) {
	enabled, err := c.gate.Enabled(ctx)
	if err != nil {
		slog.Error("failed to read cron gate, skipping run", "error", err)
		return
	}
	if !enabled {
		slog.Info("scheduled ingestion is paused, skipping run")
		return
	}

	if err := c.ingest.Run(ctx, c.cfg.Category); err != nil {
		metrics.IngestRunsTotal.WithLabelValues(metrics.TriggerCron, metrics.StatusError).Inc()
		slog.Error("scheduled ingestion run failed", "error", err)
		return
	}
	metrics.IngestRunsTotal.WithLabelValues(metrics.TriggerCron, metrics.StatusSuccess).Inc()
}
