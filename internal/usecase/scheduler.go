package usecase

import (
	"context"
	"log/slog"
	"time"

	"NewsSift/internal/ports"
)

// ScheduledIngestion binds the periodic trigger to full pipeline cycles.
type ScheduledIngestion struct {
	pipeline  *Pipeline
	scheduler ports.Scheduler
	logger    *slog.Logger
}

// NewScheduledIngestion wires a pipeline to its trigger.
func NewScheduledIngestion(pipeline *Pipeline, scheduler ports.Scheduler, logger *slog.Logger) *ScheduledIngestion {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduledIngestion{pipeline: pipeline, scheduler: scheduler, logger: logger}
}

// Start begins periodic ingestion. Each tick runs an unscoped cycle:
// every category, default quota.
func (s *ScheduledIngestion) Start(ctx context.Context) error {
	return s.scheduler.Start(ctx, func(t time.Time) {
		s.logger.Info("scheduled cycle starting", "tick", t.Format(time.RFC3339))
		result, err := s.pipeline.Run(ctx, CycleOptions{})
		if err != nil {
			s.logger.Error("scheduled cycle failed", "error", err)
			return
		}
		s.logger.Info("scheduled cycle done", "articlesAdded", result.TotalArticlesAdded)
	})
}

// Stop halts the periodic trigger.
func (s *ScheduledIngestion) Stop(ctx context.Context) error {
	return s.scheduler.Stop(ctx)
}
