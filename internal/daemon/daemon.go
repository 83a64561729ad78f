// Package daemon assembles the long-running Mastrena service: storage,
// extraction service, scheduler, notifiers, and the HTTP API.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/baristalabs/mastrena/internal/analytics"
	"github.com/baristalabs/mastrena/internal/config"
	"github.com/baristalabs/mastrena/internal/logfields"
	"github.com/baristalabs/mastrena/internal/metrics"
	"github.com/baristalabs/mastrena/internal/notify"
	"github.com/baristalabs/mastrena/internal/server/httpserver"
	"github.com/baristalabs/mastrena/internal/service"
	"github.com/baristalabs/mastrena/internal/store"
)

// Status represents the current state of the daemon
type Status string

const (
	StatusStopped  Status = "stopped"
	StatusStarting Status = "starting"
	StatusRunning  Status = "running"
	StatusStopping Status = "stopping"
)

// Daemon owns every long-lived component and coordinates startup and
// shutdown ordering.
type Daemon struct {
	config         *config.Config
	configFilePath string
	status         atomic.Value // Status
	startTime      time.Time

	store      store.Store
	service    *service.ExtractionService
	repo       analytics.Repository
	notifier   *notify.Orchestrator
	natsTarget *notify.NATSNotifier
	registry   *prom.Registry
	httpServer *httpserver.Server
	scheduler  *Scheduler

	watchCancel context.CancelFunc
}

// New builds a daemon from configuration. configFilePath enables config
// hot-reload when non-empty.
func New(cfg *config.Config, configFilePath string) (*Daemon, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	d := &Daemon{
		config:         cfg,
		configFilePath: configFilePath,
	}
	d.status.Store(StatusStopped)

	st, err := store.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open record store: %w", err)
	}
	d.store = st

	repo, err := openRepository(cfg)
	if err != nil {
		st.Close()
		return nil, err
	}
	d.repo = repo

	notifier, natsTarget, err := buildNotifier(cfg.Notify)
	if err != nil {
		st.Close()
		repo.Close()
		return nil, err
	}
	d.notifier = notifier
	d.natsTarget = natsTarget

	d.registry = prom.NewRegistry()
	recorder := metrics.NewPrometheusRecorder(d.registry)

	var alerts *analytics.AlertGenerator
	if cfg.Analytics.Enabled {
		alerts = analytics.NewAlertGenerator(cfg.Brewing)
	}

	d.service = service.New(cfg.Brewing, st, service.Options{
		Recorder: recorder,
		Alerts:   alerts,
		Repo:     repo,
		Notifier: notifier,
	})
	d.service.SetSessionWindow(cfg.Analytics.SessionWindow)

	d.httpServer = httpserver.New(cfg, d.service, d, httpserver.Options{Registry: d.registry})

	if cfg.Analytics.Enabled {
		scheduler, err := NewScheduler()
		if err != nil {
			d.closeComponents()
			return nil, err
		}
		d.scheduler = scheduler
	}

	return d, nil
}

// Start brings every component up. It returns once the daemon is serving;
// it does not block until shutdown.
func (d *Daemon) Start(ctx context.Context) error {
	d.status.Store(StatusStarting)
	d.startTime = time.Now()

	slog.Info("Starting daemon",
		slog.String("addr", d.config.Server.Addr),
		slog.String("storage", d.StorageBackend()))

	if d.configFilePath != "" {
		if err := d.startConfigWatcher(ctx); err != nil {
			return err
		}
	}

	if d.scheduler != nil {
		if err := d.scheduler.ScheduleTrendSnapshots(d.config.Analytics.TrendInterval.Std(), d.service); err != nil {
			return err
		}
		d.scheduler.Start(ctx)
	}

	if err := d.httpServer.Start(ctx); err != nil {
		d.status.Store(StatusStopped)
		return err
	}

	d.status.Store(StatusRunning)
	slog.Info("Daemon started")
	return nil
}

// Stop shuts components down in reverse startup order.
func (d *Daemon) Stop(ctx context.Context) error {
	d.status.Store(StatusStopping)
	slog.Info("Stopping daemon")

	var firstErr error

	if err := d.httpServer.Stop(ctx); err != nil {
		firstErr = err
	}

	if d.scheduler != nil {
		if err := d.scheduler.Stop(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if d.watchCancel != nil {
		d.watchCancel()
	}

	d.closeComponents()

	d.status.Store(StatusStopped)
	slog.Info("Daemon stopped")
	return firstErr
}

// Service exposes the extraction service, used by the one-shot CLI paths.
func (d *Daemon) Service() *service.ExtractionService { return d.service }

// GetStatus returns the current daemon status string.
func (d *Daemon) GetStatus() string { return string(d.status.Load().(Status)) }

// GetStartTime returns when the daemon started.
func (d *Daemon) GetStartTime() time.Time { return d.startTime }

// ExtractionCount returns the number of stored extraction records.
func (d *Daemon) ExtractionCount() int {
	n, err := d.store.Len()
	if err != nil {
		slog.Warn("Failed to count extractions", logfields.Error(err))
		return 0
	}
	return n
}

// StorageBackend names the configured record store backend.
func (d *Daemon) StorageBackend() string {
	if d.config.Storage.Backend == "" {
		return "memory"
	}
	return d.config.Storage.Backend
}

// NotifyTargets returns the number of configured alert delivery targets.
func (d *Daemon) NotifyTargets() int { return d.notifier.Targets() }

func (d *Daemon) startConfigWatcher(ctx context.Context) error {
	watcher, err := config.NewWatcher(d.configFilePath, func(cfg *config.Config) {
		d.service.SetBrewing(cfg.Brewing)
		d.service.SetSessionWindow(cfg.Analytics.SessionWindow)
	})
	if err != nil {
		return fmt.Errorf("failed to start config watcher: %w", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	d.watchCancel = cancel
	go watcher.Run(watchCtx)

	slog.Info("Config watcher started", slog.String("path", d.configFilePath))
	return nil
}

func (d *Daemon) closeComponents() {
	if d.natsTarget != nil {
		d.natsTarget.Close()
	}
	if d.repo != nil {
		if err := d.repo.Close(); err != nil {
			slog.Warn("Failed to close analytics repository", logfields.Error(err))
		}
	}
	if d.store != nil {
		if err := d.store.Close(); err != nil {
			slog.Warn("Failed to close record store", logfields.Error(err))
		}
	}
}

// openRepository picks the analytics repository matching the record store
// backend so trends and alerts survive restarts exactly when records do.
func openRepository(cfg *config.Config) (analytics.Repository, error) {
	if cfg.Storage.Backend == "sqlite" {
		repo, err := analytics.NewSQLiteRepository(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open analytics repository: %w", err)
		}
		return repo, nil
	}
	return analytics.NewMemoryRepository(), nil
}

// buildNotifier assembles the orchestrator from configured targets. The NATS
// notifier is returned separately so the daemon can close its connection.
func buildNotifier(cfg config.NotifyConfig) (*notify.Orchestrator, *notify.NATSNotifier, error) {
	var targets []notify.Notifier

	if cfg.SlackWebhookURL != "" {
		targets = append(targets, notify.NewSlackNotifier(cfg.SlackWebhookURL))
	}

	var natsTarget *notify.NATSNotifier
	if cfg.NATSURL != "" {
		n, err := notify.NewNATSNotifier(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect NATS notifier: %w", err)
		}
		natsTarget = n
		targets = append(targets, n)
	}

	return notify.NewOrchestrator(slog.Default(), targets...), natsTarget, nil
}
