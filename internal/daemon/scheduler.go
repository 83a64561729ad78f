package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/baristalabs/mastrena/internal/analytics"
	"github.com/baristalabs/mastrena/internal/logfields"
)

// TrendPersister is the service surface the scheduler drives.
type TrendPersister interface {
	PersistTrends(period analytics.TrendPeriod) (analytics.Trends, error)
}

// Scheduler wraps gocron scheduler for managing periodic tasks.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a new scheduler instance.
func NewScheduler() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	return &Scheduler{scheduler: s}, nil
}

// Start begins the scheduler.
func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("Starting scheduler")
	s.scheduler.Start()
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop(ctx context.Context) error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// ScheduleTrendSnapshots registers a periodic job that computes and persists
// a daily trend summary over the current history.
func (s *Scheduler) ScheduleTrendSnapshots(interval time.Duration, persister TrendPersister) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.snapshotTrends, persister),
		gocron.WithName("trend-snapshot"),
	)
	if err != nil {
		return fmt.Errorf("failed to create trend snapshot job: %w", err)
	}
	return nil
}

// snapshotTrends is called by gocron on each tick.
func (s *Scheduler) snapshotTrends(persister TrendPersister) {
	trends, err := persister.PersistTrends(analytics.PeriodDaily)
	if err != nil {
		slog.Error("Scheduled trend snapshot failed", logfields.Error(err))
		return
	}
	slog.Info("Trend snapshot persisted",
		logfields.Period(string(trends.Period)),
		slog.Int("sample_size", trends.SampleSize),
		slog.Float64("perfect_rate", trends.PerfectRate))
}
