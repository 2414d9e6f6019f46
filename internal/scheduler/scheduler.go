package scheduler

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/uniem/uniem-api/internal/constants"
	"github.com/uniem/uniem-api/internal/logger"
	"github.com/uniem/uniem-api/internal/models"
	"github.com/uniem/uniem-api/internal/repository"
	"github.com/uniem/uniem-api/internal/services"
)

// Scheduler runs the four periodic maintenance jobs: nightly audit-log
// retention, weekly leaderboard snapshots, the hourly activity sweep and the
// nightly daily-login reset. Jobs are independent; a failing job logs the
// error and waits for its next tick, it never crashes the process.
type Scheduler struct {
	cron     *cron.Cron
	activity *services.ActivityService
	rankings *services.RankingService
	logs     repository.LogRepository
}

// New creates a Scheduler with panic recovery around every job.
func New(
	activity *services.ActivityService,
	rankings *services.RankingService,
	logs repository.LogRepository,
) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
		)),
		activity: activity,
		rankings: rankings,
		logs:     logs,
	}
}

// Start registers the job timetable and launches the cron loop.
func (s *Scheduler) Start() error {
	jobs := []struct {
		spec string
		name string
		run  func()
	}{
		{constants.ScheduleLogCleanup, "log cleanup", s.cleanupLogs},
		{constants.ScheduleLeaderboards, "leaderboard snapshots", s.publishLeaderboards},
		{constants.ScheduleHourlySweep, "hourly activity sweep", s.hourlySweep},
		{constants.ScheduleDailyReset, "daily login reset", s.dailyReset},
	}

	for _, job := range jobs {
		if _, err := s.cron.AddFunc(job.spec, job.run); err != nil {
			return fmt.Errorf("failed to schedule %s: %w", job.name, err)
		}
	}

	s.cron.Start()
	logger.Info("scheduler started with %d jobs", len(jobs))
	return nil
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// cleanupLogs removes audit-log rows past the retention window.
func (s *Scheduler) cleanupLogs() {
	cutoff := time.Now().AddDate(0, 0, -constants.LogRetentionDays)

	count, err := s.logs.DeleteOlderThan(cutoff)
	if err != nil {
		logger.Error("log cleanup: %v", err)
		return
	}
	logger.Success("log cleanup: deleted %d expired rows", count)
}

// publishLeaderboards writes a fresh snapshot for each reporting period. The
// periods are independent: one failing does not stop the others.
func (s *Scheduler) publishLeaderboards() {
	periods := []models.RankingPeriod{
		models.PeriodWeekly,
		models.PeriodMonthly,
		models.PeriodYearly,
	}

	for _, period := range periods {
		snapshot, err := s.rankings.PublishSnapshot(period)
		if err != nil {
			logger.Error("leaderboard snapshot %s: %v", period, err)
			continue
		}
		logger.Success("leaderboard snapshot %s: %d users", period, len(snapshot.TopUsers))
	}
}

func (s *Scheduler) hourlySweep() {
	credited, err := s.activity.HourlyActivitySweep()
	if err != nil {
		logger.Error("hourly activity sweep: %v", err)
		return
	}
	logger.Success("hourly activity sweep: credited %d users", credited)
}

func (s *Scheduler) dailyReset() {
	credited, err := s.activity.DailyLoginSweep()
	if err != nil {
		logger.Error("daily login reset: %v", err)
		return
	}
	logger.Success("daily login reset: credited %d users", credited)
}
