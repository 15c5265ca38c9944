package scheduler

import (
	"context"
	"sync"
	"time"

	"NewsSift/internal/ports"
)

// IntervalScheduler triggers ingestion cycles on a fixed period. There is
// no long-running pipeline process; each tick is one bounded batch
// invocation, mirroring an external cron trigger.
type IntervalScheduler struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

var _ ports.Scheduler = (*IntervalScheduler)(nil)

// NewIntervalScheduler builds a scheduler with the given cycle period.
func NewIntervalScheduler(interval time.Duration) *IntervalScheduler {
	if interval <= 0 {
		interval = time.Hour
	}
	return &IntervalScheduler{interval: interval}
}

// Start begins ticking and runs the job once immediately.
func (s *IntervalScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	s.mu.Lock()
	if s.stop != nil {
		s.mu.Unlock()
		return nil
	}
	stop := make(chan struct{})
	s.stop = stop
	s.mu.Unlock()

	// The goroutine selects on its own copy of the channel so Stop can
	// reset the field without racing the ticker loop.
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		job(time.Now())
		for {
			select {
			case t := <-ticker.C:
				job(t)
			case <-ctx.Done():
				return
			case <-stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the ticker goroutine. Safe to call multiple times and
// concurrently with ticks.
func (s *IntervalScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return nil
	}
	close(s.stop)
	s.stop = nil
	return nil
}
