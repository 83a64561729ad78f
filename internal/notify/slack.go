package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/baristalabs/mastrena/internal/analytics"
	"github.com/baristalabs/mastrena/internal/errors"
)

const slackTimeout = 5 * time.Second

// SlackNotifier posts alerts to a Slack incoming webhook.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewSlackNotifier creates a notifier for the given webhook URL.
func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: slackTimeout},
	}
}

// Name implements Notifier.
func (n *SlackNotifier) Name() string { return "slack" }

// Notify implements Notifier.
func (n *SlackNotifier) Notify(ctx context.Context, alert analytics.Alert) error {
	payload := map[string]string{
		"text": fmt.Sprintf("[%s/%s] %s", alert.Severity, alert.Category, alert.Message),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.NotifyError("slack", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.NotifyError("slack", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errors.NotifyError("slack", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.NotifyError("slack", fmt.Errorf("webhook returned status %d", resp.StatusCode))
	}
	return nil
}
