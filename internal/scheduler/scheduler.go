// Package scheduler runs a job once per day at a fixed local time-of-day.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/isufellowship/attendance-bot/internal/apperror"
)

// Job is the work fired on each tick. now is the fire time.
type Job func(ctx context.Context, now time.Time) error

// Scheduler waits until the configured wall-clock time, fires the job,
// then waits for the next day. It holds no persisted state: a fire missed
// while the process was down is skipped, not caught up.
type Scheduler struct {
	hour   int
	minute int
	job    Job
	logger *slog.Logger
}

// New creates a scheduler firing daily at fireAt ("HH:MM", local time).
func New(fireAt string, job Job, logger *slog.Logger) (*Scheduler, error) {
	t, err := time.Parse("15:04", fireAt)
	if err != nil {
		return nil, apperror.ValidationFailed("fire_time",
			fmt.Sprintf("invalid fire time %q, want HH:MM", fireAt))
	}

	return &Scheduler{
		hour:   t.Hour(),
		minute: t.Minute(),
		job:    job,
		logger: logger,
	}, nil
}

// Run blocks until ctx is cancelled. Job errors are logged and never stop
// the loop; the next tick fires normally.
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("scheduler started",
		slog.String("fire_at", fmt.Sprintf("%02d:%02d", s.hour, s.minute)),
	)

	for {
		next := nextFire(time.Now(), s.hour, s.minute)
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("scheduler stopped")
			return
		case now := <-timer.C:
			if err := s.job(ctx, now); err != nil {
				s.logger.Error("scheduled job failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// nextFire returns the next instant at hour:minute after now: later today
// if that time is still ahead, otherwise the same time tomorrow.
func nextFire(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
