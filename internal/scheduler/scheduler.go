// Package scheduler provides periodic re-scoring for watch mode.
// Forecasts shift as departure time approaches; watch mode keeps the
// rendered trip current without the user re-running the command.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is the unit of work the scheduler runs on each tick.
// The context carries the per-run timeout.
type Job func(ctx context.Context) error

// Scheduler periodically runs a scoring job.
type Scheduler struct {
	scheduler *gocron.Scheduler
	job       Job
	interval  time.Duration
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger for run results.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTimeout sets the per-run timeout. Default is one minute.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// New creates a Scheduler that runs job every interval.
func New(interval time.Duration, job Job, opts ...Option) *Scheduler {
	s := &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		job:       job,
		interval:  interval,
		timeout:   time.Minute,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start schedules the job and starts the underlying scheduler.
// The first run happens immediately; later runs follow the interval.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).StartImmediately().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		start := time.Now()
		if err := s.job(ctx); err != nil {
			s.logger.Warn("scheduled run failed", "error", err)
			return
		}
		s.logger.Debug("scheduled run complete",
			"elapsed", time.Since(start),
			"next", time.Now().Add(s.interval))
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Run starts the scheduler and blocks until the context is cancelled.
// This is the entry point watch mode uses: Ctrl-C cancels the context
// and Run stops the scheduler before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	s.Stop()
	return ctx.Err()
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
