// Package service orchestrates validation, simulation, storage, and
// analytics for extraction requests.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/baristalabs/mastrena/internal/analytics"
	"github.com/baristalabs/mastrena/internal/config"
	"github.com/baristalabs/mastrena/internal/errors"
	"github.com/baristalabs/mastrena/internal/extraction"
	"github.com/baristalabs/mastrena/internal/logfields"
	"github.com/baristalabs/mastrena/internal/metrics"
	"github.com/baristalabs/mastrena/internal/notify"
	"github.com/baristalabs/mastrena/internal/store"
)

// ExtractionService owns the record store for the process lifetime and runs
// the Validator → Simulator → Store pipeline on each request.
type ExtractionService struct {
	// mu guards the validator/simulator pair, the alert rules, and the
	// session window, all of which config hot-reload swaps.
	mu        sync.RWMutex
	validator *extraction.Validator
	simulator *extraction.Simulator
	alerts    *analytics.AlertGenerator
	window    int

	store    store.Store
	recorder metrics.Recorder
	repo     analytics.Repository
	notifier *notify.Orchestrator
	logger   *slog.Logger
}

// Options carries optional collaborators. Nil fields fall back to no-ops.
type Options struct {
	Recorder metrics.Recorder
	Alerts   *analytics.AlertGenerator
	Repo     analytics.Repository
	Notifier *notify.Orchestrator
	Logger   *slog.Logger
}

// New constructs a service over the given brewing configuration and store.
func New(brewing config.BrewingConfig, st store.Store, opts Options) *ExtractionService {
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Repo == nil {
		opts.Repo = analytics.NewMemoryRepository()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NewOrchestrator(opts.Logger)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &ExtractionService{
		validator: extraction.NewValidator(brewing),
		simulator: extraction.NewSimulator(brewing),
		store:     st,
		recorder:  opts.Recorder,
		alerts:    opts.Alerts,
		repo:      opts.Repo,
		notifier:  opts.Notifier,
		window:    config.DefaultConfig().Analytics.SessionWindow,
		logger:    opts.Logger,
	}
}

// SetSessionWindow overrides the number of recent records the session alert
// rules consider. Safe to call while extractions are running.
func (s *ExtractionService) SetSessionWindow(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	s.window = n
	s.mu.Unlock()
}

// SetBrewing swaps the validation bounds and simulation model, used by config
// hot-reload. Alert rules follow the new bounds; records already stored are
// unaffected.
func (s *ExtractionService) SetBrewing(brewing config.BrewingConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.validator = extraction.NewValidator(brewing)
	s.simulator = extraction.NewSimulator(brewing)
	if s.alerts != nil {
		s.alerts = analytics.NewAlertGenerator(brewing)
	}
}

// Start runs one extraction request end to end. A validation failure is
// terminal: no record is created and the store is untouched.
func (s *ExtractionService) Start(ctx context.Context, raw extraction.RawParameters) (extraction.Record, error) {
	began := time.Now()

	s.mu.RLock()
	validator, simulator := s.validator, s.simulator
	s.mu.RUnlock()

	params, err := validator.Validate(raw)
	if err != nil {
		s.recordValidationFailure(err)
		return extraction.Record{}, err
	}

	outcome := simulator.Simulate(params)

	record := extraction.Record{
		Parameters: params,
		Outcome:    outcome,
		CreatedAt:  time.Now().UTC(),
	}

	id, err := s.store.Append(record)
	if err != nil {
		return extraction.Record{}, err
	}
	record.ID = id

	s.recorder.IncExtraction(string(outcome.Quality))
	s.recorder.ObserveSimulateDuration(time.Since(began))
	if n, err := s.store.Len(); err == nil {
		s.recorder.SetHistorySize(n)
	}

	s.logger.Info("Extraction completed",
		logfields.RecordID(record.ID),
		logfields.Quality(string(outcome.Quality)),
		logfields.Score(outcome.Score))

	s.evaluateAlerts(ctx, record)

	return record, nil
}

// History returns the full ordered extraction history as a snapshot.
func (s *ExtractionService) History() ([]extraction.Record, error) {
	return s.store.All()
}

// Trends computes an aggregate quality summary over the current history.
func (s *ExtractionService) Trends(period analytics.TrendPeriod) (analytics.Trends, error) {
	records, err := s.store.All()
	if err != nil {
		return analytics.Trends{}, err
	}
	return analytics.Calculate(records, period), nil
}

// Alerts returns every persisted alert.
func (s *ExtractionService) Alerts() ([]analytics.Alert, error) {
	return s.repo.Alerts()
}

// PersistTrends computes and stores a trend snapshot; called by the scheduler.
func (s *ExtractionService) PersistTrends(period analytics.TrendPeriod) (analytics.Trends, error) {
	trends, err := s.Trends(period)
	if err != nil {
		return analytics.Trends{}, err
	}
	if err := s.repo.StoreTrends(trends); err != nil {
		return analytics.Trends{}, err
	}
	return trends, nil
}

func (s *ExtractionService) recordValidationFailure(err error) {
	field := "unknown"
	if me, ok := err.(*errors.MastrenaError); ok {
		if f, ok := me.Context["field"].(string); ok {
			field = f
		}
	}
	s.recorder.IncValidationFailure(field)
}

// evaluateAlerts runs the rule set over the new record plus the recent
// session window, persists any hits, and fans them out.
func (s *ExtractionService) evaluateAlerts(ctx context.Context, record extraction.Record) {
	s.mu.RLock()
	generator := s.alerts
	window := s.window
	s.mu.RUnlock()
	if generator == nil {
		return
	}

	session := []extraction.Record{record}
	if records, err := s.store.All(); err == nil {
		start := len(records) - window
		if start < 0 {
			start = 0
		}
		session = records[start:]
	}

	generated := generator.Generate(record, session)
	if len(generated) == 0 {
		return
	}

	if err := s.repo.StoreAlerts(generated); err != nil {
		s.logger.Error("Failed to persist alerts", logfields.Error(err))
	}

	for _, alert := range generated {
		s.recorder.IncAlert(string(alert.Severity))
		s.notifier.NotifyAll(ctx, alert)
	}
}
