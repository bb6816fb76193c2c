package daemon

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docsite/internal/foundation/errors"
	"git.home.luguber.info/inful/docsite/internal/logfields"
)

// Scheduler wraps gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(logger *slog.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "failed to create scheduler").Build()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{scheduler: s, logger: logger}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler", logfields.Count(len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() error {
	s.logger.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleEvery runs fn every interval under name. A run still in progress
// when the next one is due makes the next one wait. Returns the job ID.
func (s *Scheduler) ScheduleEvery(name string, interval time.Duration, fn func()) (string, error) {
	if interval <= 0 {
		return "", errors.ValidationError("schedule interval must be positive").
			WithContext("job", name).
			WithContext("interval", interval.String()).
			Build()
	}
	job, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			start := time.Now()
			fn()
			s.logger.Debug("Scheduled job finished",
				logfields.Job(name),
				logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeWait),
	)
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryRuntime, "failed to schedule job").
			WithContext("job", name).
			Build()
	}
	return job.ID().String(), nil
}
