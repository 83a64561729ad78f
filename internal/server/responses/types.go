// Package responses defines the JSON payload types served by the HTTP API.
package responses

import (
	"time"

	"github.com/baristalabs/mastrena/internal/analytics"
	"github.com/baristalabs/mastrena/internal/extraction"
)

// HealthResponse is served by /healthz.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime_seconds"`
}

// StatusResponse summarizes the running daemon for /api/status.
type StatusResponse struct {
	Status         string    `json:"status"`
	StartTime      time.Time `json:"start_time"`
	Uptime         float64   `json:"uptime_seconds"`
	Extractions    int       `json:"extractions"`
	StorageBackend string    `json:"storage_backend"`
	NotifyTargets  int       `json:"notify_targets"`
}

// StartResponse wraps the record created by a /start call.
type StartResponse = extraction.Record

// HistoryResponse is the ordered extraction history for /metrics.
type HistoryResponse = []extraction.Record

// TrendsResponse wraps a computed trend summary.
type TrendsResponse struct {
	Trends    analytics.Trends `json:"trends"`
	Timestamp time.Time        `json:"timestamp"`
}

// AlertsResponse lists persisted alerts.
type AlertsResponse struct {
	Alerts []analytics.Alert `json:"alerts"`
	Count  int               `json:"count"`
}
