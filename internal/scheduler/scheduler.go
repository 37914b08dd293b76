package scheduler

import (
	"context"
	"log/slog"
	"time"
)

const saveTimeout = 30 * time.Second

// Checkpointer persists the current watch-state when it is safe to do so.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// Scheduler saves watch-state on a fixed interval and once more on shutdown.
type Scheduler struct {
	target   Checkpointer
	interval time.Duration
	logger   *slog.Logger
}

func NewScheduler(target Checkpointer, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		target:   target,
		interval: interval,
		logger:   logger.With("component", "autosave"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("autosave started", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.runCheckpoint(context.WithoutCancel(ctx))
			s.logger.Info("autosave stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCheckpoint(ctx)
		}
	}
}

func (s *Scheduler) runCheckpoint(ctx context.Context) {
	saveCtx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	if err := s.target.Checkpoint(saveCtx); err != nil {
		s.logger.Error("autosave failed", "error", err)
	}
}
