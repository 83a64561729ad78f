// Package notify delivers analytics alerts to external targets.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/baristalabs/mastrena/internal/analytics"
	"github.com/baristalabs/mastrena/internal/errors"
	"github.com/baristalabs/mastrena/internal/logfields"
	"github.com/baristalabs/mastrena/internal/retry"
)

// Notifier delivers one alert to a single target.
type Notifier interface {
	Notify(ctx context.Context, alert analytics.Alert) error
	Name() string
}

// Orchestrator fans alerts out to every configured notifier. Delivery
// failures are logged, never propagated: a dead webhook must not fail the
// extraction request that triggered the alert.
type Orchestrator struct {
	notifiers []Notifier
	policy    retry.Policy
	logger    *slog.Logger
}

// NewOrchestrator creates an orchestrator over the given notifiers.
func NewOrchestrator(logger *slog.Logger, notifiers ...Notifier) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{notifiers: notifiers, policy: retry.DefaultPolicy(), logger: logger}
}

// SetRetryPolicy overrides the delivery retry policy.
func (o *Orchestrator) SetRetryPolicy(p retry.Policy) { o.policy = p }

// NotifyAll delivers the alert to every target.
func (o *Orchestrator) NotifyAll(ctx context.Context, alert analytics.Alert) {
	for _, n := range o.notifiers {
		if err := o.deliver(ctx, n, alert); err != nil {
			o.logger.Warn("Alert delivery failed",
				slog.String("notifier", n.Name()),
				logfields.AlertID(alert.ID),
				logfields.Error(err))
			continue
		}
		o.logger.Debug("Alert delivered",
			slog.String("notifier", n.Name()),
			logfields.AlertID(alert.ID),
			logfields.Severity(string(alert.Severity)))
	}
}

// deliver attempts a single target, retrying transient failures per policy.
func (o *Orchestrator) deliver(ctx context.Context, n Notifier, alert analytics.Alert) error {
	err := n.Notify(ctx, alert)
	for attempt := 1; err != nil && errors.IsRetryable(err) && attempt <= o.policy.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return err
		case <-time.After(o.policy.Delay(attempt)):
		}
		err = n.Notify(ctx, alert)
	}
	return err
}

// Targets reports how many notifiers are configured.
func (o *Orchestrator) Targets() int {
	return len(o.notifiers)
}
