// Package scheduler runs the periodic digest notification task.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jonesrussell/goharvest/internal/logger"
	"github.com/jonesrussell/goharvest/internal/metrics"
	"github.com/jonesrussell/goharvest/internal/notify"
	"github.com/jonesrussell/goharvest/internal/stats"
)

// DigestScheduler owns the background digest task: one immediate tick on
// start, then a fixed-interval cadence. Ticks are independent; a failing
// tick is logged, counted, and forgotten.
type DigestScheduler struct {
	aggregator *stats.Aggregator
	sink       notify.Sink
	logger     logger.Interface
	metrics    *metrics.Metrics
	interval   time.Duration
	cron       *cron.Cron
}

// NewDigestScheduler creates a digest scheduler with the given cadence.
func NewDigestScheduler(
	aggregator *stats.Aggregator,
	sink notify.Sink,
	log logger.Interface,
	m *metrics.Metrics,
	interval time.Duration,
) *DigestScheduler {
	return &DigestScheduler{
		aggregator: aggregator,
		sink:       sink,
		logger:     log.WithComponent("digest-scheduler"),
		metrics:    m,
		interval:   interval,
		cron:       cron.New(),
	}
}

// Start fires one tick immediately and schedules the periodic cadence.
func (s *DigestScheduler) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() {
		s.RunOnce(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule digest: %w", err)
	}

	s.logger.Info("Starting digest scheduler", "interval", s.interval)
	go s.RunOnce(ctx)
	s.cron.Start()

	return nil
}

// Stop halts the cadence. In-flight ticks are left to finish on their own.
func (s *DigestScheduler) Stop() {
	s.logger.Info("Stopping digest scheduler")
	s.cron.Stop()
}

// RunOnce executes a single digest tick: compute today's summary and hand it
// to the notification sink. Failures never escape; the next tick starts
// fresh.
func (s *DigestScheduler) RunOnce(ctx context.Context) {
	digest, err := s.aggregator.ComputeDailyDigest(ctx)
	if err != nil {
		s.logger.Error("Failed to compute daily digest", "error", err)
		s.metrics.IncDigestTick(metrics.OutcomeQueryErr)
		return
	}

	if err := s.sink.Send(ctx, digest.Text()); err != nil {
		s.logger.Error("Failed to deliver daily digest", "error", err)
		s.metrics.IncDigestTick(metrics.OutcomeSendErr)
		return
	}

	s.logger.Info("Delivered daily digest",
		"date", digest.Date,
		"jobs", digest.JobsTotal)
	s.metrics.IncDigestTick(metrics.OutcomeOK)
}
