// Package jobs runs the background maintenance tasks of the server.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/IstiakDeveloper/School-Management-Pro-sub001/internal/core/ports/services"
	"github.com/robfig/cron/v3"
)

// SystemUserID is recorded as the creator of checkpoints stored by the scheduler.
const SystemUserID = "system"

const runTimeout = 4 * time.Minute

// ClosingScheduler stores month-end closing checkpoints on a cron schedule.
type ClosingScheduler struct {
	closer   portssvc.PeriodClosingSvc
	schedule string
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time
	cron     *cron.Cron
}

// ClosingSchedulerOption configures a ClosingScheduler.
type ClosingSchedulerOption func(*ClosingScheduler)

// WithSchedulerClock overrides the clock used to pick the month to close.
func WithSchedulerClock(now func() time.Time) ClosingSchedulerOption {
	return func(s *ClosingScheduler) {
		s.now = now
	}
}

// NewClosingScheduler builds a scheduler; schedule is a standard five-field cron spec
// evaluated in loc.
func NewClosingScheduler(closer portssvc.PeriodClosingSvc, schedule string, loc *time.Location, logger *slog.Logger, options ...ClosingSchedulerOption) *ClosingScheduler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = slog.Default()
	}
	s := &ClosingScheduler{
		closer:   closer,
		schedule: schedule,
		loc:      loc,
		logger:   logger.With(slog.String("job", "period-closing")),
		now:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	cronLogger := slogCronLogger{s.logger}
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	return s
}

// Start registers the job and starts the cron runner in its own goroutine.
func (s *ClosingScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		if err := s.RunOnce(ctx); err != nil {
			s.logger.Error("Period closing run finished with errors", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid period closing schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Period closing scheduler started", slog.String("schedule", s.schedule), slog.String("timezone", s.loc.String()))
	return nil
}

// Stop stops the runner. The returned context is done once a running job completes.
func (s *ClosingScheduler) Stop() context.Context {
	return s.cron.Stop()
}

// PreviousMonthEnd returns the last day of the month before the one containing now.
func (s *ClosingScheduler) PreviousMonthEnd() time.Time {
	now := s.now().In(s.loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 0, -1)
}

// RunOnce closes the previous month for every scope. A failing scope does not stop
// the others; all failures are returned joined.
func (s *ClosingScheduler) RunOnce(ctx context.Context) error {
	periodEnd := s.PreviousMonthEnd()
	scopes, err := s.closer.ClosingScopes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list closing scopes: %w", err)
	}

	var errs []error
	for _, scope := range scopes {
		closing, err := s.closer.ClosePeriod(ctx, scope, periodEnd, SystemUserID)
		if err != nil {
			s.logger.Error("Failed to close period", slog.String("scope", scope), slog.String("error", err.Error()))
			errs = append(errs, fmt.Errorf("%s: %w", scope, err))
			continue
		}
		s.logger.Info("Closed period",
			slog.String("scope", scope),
			slog.String("period_end", periodEnd.Format(time.DateOnly)),
			slog.String("closing_balance", closing.ClosingBalance.StringFixed(2)))
	}
	return errors.Join(errs...)
}

// slogCronLogger adapts slog to cron's logger interface.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
