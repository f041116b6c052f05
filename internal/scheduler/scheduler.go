package scheduler

import (
	"context"
	"log/slog"
	"time"

	"paper_digest/internal/domain"
)

// Batcher runs a collection pass for every subscriber eligible at now.
type Batcher interface {
	CollectAll(ctx context.Context, now time.Time) (*domain.BatchStats, error)
}

// Scheduler fires one batch per wall-clock minute so each subscriber's
// "HH:MM" send time is hit exactly once per day.
type Scheduler struct {
	collector  Batcher
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(collector Batcher, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		collector:  collector,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "run_timeout", s.runTimeout)

	for {
		next := time.Now().Truncate(time.Minute).Add(time.Minute)

		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-time.After(time.Until(next)):
			s.runBatch(ctx, next)
		}
	}
}

func (s *Scheduler) runBatch(ctx context.Context, slot time.Time) {
	runCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	if _, err := s.collector.CollectAll(runCtx, slot); err != nil {
		s.logger.Error("batch collection failed", "slot", slot.Format("15:04"), "error", err)
	}
}
