package scheduler

import (
	"context"
	"log/slog"
	"time"

	"cinecraze/internal/domain"
)

// Refresher defines the interface for catalog refresh operations.
type Refresher interface {
	RefreshAll(ctx context.Context) (*domain.RefreshStats, error)
}

type Scheduler struct {
	refresher Refresher
	interval  time.Duration
	logger    *slog.Logger
}

func NewScheduler(refresher Refresher, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		refresher: refresher,
		interval:  interval,
		logger:    logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runRefresh(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runRefresh(ctx)
		}
	}
}

func (s *Scheduler) runRefresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()

	if _, err := s.refresher.RefreshAll(refreshCtx); err != nil {
		s.logger.Error("catalog refresh failed", "error", err)
	}
}
