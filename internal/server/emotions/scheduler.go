package emotions

import (
	"context"
	"time"

	"github.com/khmorad/Mood-Tracker/internal/common"
	"github.com/khmorad/Mood-Tracker/internal/logging"
)

// The nightly pass runs late enough that the day's conversation is complete.
const (
	runHour   = 23
	runMinute = 30

	startupCatchUpDays = 7
	nightlyCatchUpDays = 3

	userPause = 2 * time.Second
)

// Scheduler drives the nightly analysis pass and fills in days missed while
// the server was down.
type Scheduler struct {
	service *Service
	logger  logging.Logger
	now     func() time.Time
	pause   time.Duration
}

func NewScheduler(service *Service, logger logging.Logger) *Scheduler {
	return &Scheduler{
		service: service,
		logger:  logger,
		now:     time.Now,
		pause:   userPause,
	}
}

// Run blocks until ctx is cancelled. It first back-fills missed days, then
// analyzes each finished day shortly before midnight.
func (s *Scheduler) Run(ctx context.Context) {

	s.logger.Info(ctx, "emotion analysis scheduler started")
	s.CatchUp(ctx, startupCatchUpDays)

	for {
		timer := time.NewTimer(time.Until(s.nextRun(s.now())))

		select {
		case <-timer.C:
			today := s.now().Format(common.JournalDateLayout)
			covered := s.service.AnalyzeDay(ctx, today, s.pause)
			s.logger.Info(ctx, "nightly emotion analysis finished", "journal_date", today, "covered", covered)
			s.CatchUp(ctx, nightlyCatchUpDays)

		case <-ctx.Done():
			timer.Stop()
			s.logger.Info(context.Background(), "emotion analysis scheduler stopped")
			return
		}
	}
}

// CatchUp analyzes the previous daysBack days for every user who wrote on
// them. Days already analyzed are skipped inside the service.
func (s *Scheduler) CatchUp(ctx context.Context, daysBack int) int {

	covered := 0
	for ago := 1; ago <= daysBack; ago++ {
		if ctx.Err() != nil {
			return covered
		}
		date := s.now().AddDate(0, 0, -ago).Format(common.JournalDateLayout)
		covered += s.service.AnalyzeDay(ctx, date, s.pause)
	}

	if covered > 0 {
		s.logger.Info(ctx, "catch-up emotion analysis finished", "days_back", daysBack, "covered", covered)
	}
	return covered
}

// nextRun returns the next daily run instant strictly after now.
func (s *Scheduler) nextRun(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), now.Day(), runHour, runMinute, 0, 0, now.Location())
	if !run.After(now) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}
