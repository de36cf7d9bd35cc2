package cron

import (
	"context"
	"log/slog"
	"time"
)

// Job is a unit of scheduled background work.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs every registered job on a fixed interval. Jobs must be
// idempotent: a job observes state and repairs it, so running twice is
// harmless.
type Scheduler struct {
	jobs     []Job
	interval time.Duration
	logger   *slog.Logger
	stop     chan struct{}
	done     chan struct{}
}

func NewScheduler(interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Register(job Job) {
	s.jobs = append(s.jobs, job)
}

// Start launches the scheduler loop. It returns immediately; jobs run on
// a background goroutine until Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)

	go func() {
		defer close(s.done)
		defer ticker.Stop()

		s.runAll(ctx)
		for {
			select {
			case <-ticker.C:
				s.runAll(ctx)
			case <-s.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	s.logger.Info("scheduler started", "interval", s.interval, "jobs", len(s.jobs))
}

func (s *Scheduler) Stop() {
	close(s.stop)
	<-s.done
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, job := range s.jobs {
		start := time.Now()
		if err := job.Run(ctx); err != nil {
			s.logger.Error("scheduled job failed", "job", job.Name(), "error", err)
			continue
		}
		s.logger.Debug("scheduled job finished", "job", job.Name(), "duration", time.Since(start))
	}
}
