// Package scheduler drives the notification jobs on a fixed interval.
// Every job is idempotent, so overlapping or repeated runs are safe.
package scheduler

import (
	"context"
	"time"

	"github.com/daiki-lova/Privateskytour-sub000/internal/domain"
	dispatchNotifications "github.com/daiki-lova/Privateskytour-sub000/internal/usecase/dispatch_notifications"
)

// Dispatcher runs one notification job.
type Dispatcher interface {
	Execute(ctx context.Context, jobType string) (*dispatchNotifications.Summary, error)
}

// Logger is the logging surface the scheduler needs.
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler ticks through the notification jobs.
type Scheduler struct {
	dispatcher Dispatcher
	interval   time.Duration
	jobs       []string
	logger     Logger
}

// New creates a scheduler running every job each interval.
func New(dispatcher Dispatcher, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		dispatcher: dispatcher,
		interval:   interval,
		jobs: []string{
			domain.JobThankYou,
			domain.JobReminder3Day,
			domain.JobReminder1Day,
		},
		logger: logger,
	}
}

// Run blocks until ctx is cancelled, executing all jobs once per interval.
// The first pass runs immediately so a restart never delays notifications
// by a full interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("Scheduler started, interval=%s", s.interval)

	s.runAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopped")
			return
		case <-ticker.C:
			s.runAll(ctx)
		}
	}
}

func (s *Scheduler) runAll(ctx context.Context) {
	for _, job := range s.jobs {
		summary, err := s.dispatcher.Execute(ctx, job)
		if err != nil {
			s.logger.Error("Scheduler: job %s failed: %v", job, err)
			continue
		}
		if summary.Total > 0 {
			s.logger.Info("Scheduler: job %s done, total=%d sent=%d failed=%d skipped=%d",
				job, summary.Total, summary.Sent, summary.Failed, summary.Skipped)
		}
	}
}
