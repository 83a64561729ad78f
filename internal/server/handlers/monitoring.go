package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/baristalabs/mastrena/internal/errors"
	"github.com/baristalabs/mastrena/internal/server/responses"
	"github.com/baristalabs/mastrena/internal/version"
)

// DaemonInterface defines the daemon methods needed by monitoring handlers.
type DaemonInterface interface {
	GetStatus() string
	GetStartTime() time.Time
	ExtractionCount() int
	StorageBackend() string
	NotifyTargets() int
}

// MonitoringHandlers contains monitoring-related HTTP handlers.
type MonitoringHandlers struct {
	daemon       DaemonInterface
	errorAdapter *errors.HTTPErrorAdapter
}

// NewMonitoringHandlers creates a new monitoring handlers instance.
func NewMonitoringHandlers(daemon DaemonInterface) *MonitoringHandlers {
	return &MonitoringHandlers{
		daemon:       daemon,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleHealthCheck handles the health check endpoint.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := errors.New(errors.CategoryMalformed, errors.SeverityWarning, "invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.daemon.GetStartTime()).Seconds(),
	}

	if err := writeJSONPretty(w, r, http.StatusOK, health); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "failed to write health response"))
	}
}

// HandleStatus handles the daemon status endpoint.
func (h *MonitoringHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := errors.New(errors.CategoryMalformed, errors.SeverityWarning, "invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	status := &responses.StatusResponse{
		Status:         h.daemon.GetStatus(),
		StartTime:      h.daemon.GetStartTime(),
		Uptime:         time.Since(h.daemon.GetStartTime()).Seconds(),
		Extractions:    h.daemon.ExtractionCount(),
		StorageBackend: h.daemon.StorageBackend(),
		NotifyTargets:  h.daemon.NotifyTargets(),
	}

	if err := writeJSONPretty(w, r, http.StatusOK, status); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "failed to write status response"))
	}
}
