package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/baristalabs/mastrena/internal/analytics"
	"github.com/baristalabs/mastrena/internal/errors"
	"github.com/baristalabs/mastrena/internal/logfields"
)

// NATSNotifier publishes alerts to a JetStream subject so downstream
// consumers (dashboards, pagers) can subscribe to extraction problems.
type NATSNotifier struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
}

// NewNATSNotifier connects to NATS and prepares a JetStream context.
func NewNATSNotifier(url, subject string) (*NATSNotifier, error) {
	if url == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	if subject == "" {
		return nil, fmt.Errorf("nats subject is required")
	}

	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	slog.Info("NATS notifier initialized",
		slog.String("url", url),
		logfields.Subject(subject))

	return &NATSNotifier{conn: conn, js: js, subject: subject}, nil
}

// Name implements Notifier.
func (n *NATSNotifier) Name() string { return "nats" }

// Notify implements Notifier.
func (n *NATSNotifier) Notify(ctx context.Context, alert analytics.Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return errors.NotifyError("nats", err)
	}

	if _, err := n.js.Publish(ctx, n.subject, data); err != nil {
		return errors.NotifyError("nats", err)
	}
	return nil
}

// Close drains the connection.
func (n *NATSNotifier) Close() {
	if n.conn != nil {
		n.conn.Close()
	}
}
