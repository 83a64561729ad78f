package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/baristalabs/mastrena/internal/analytics"
	"github.com/baristalabs/mastrena/internal/errors"
	"github.com/baristalabs/mastrena/internal/server/responses"
)

// AnalyticsAPI defines the service methods the analytics handlers need.
type AnalyticsAPI interface {
	Trends(period analytics.TrendPeriod) (analytics.Trends, error)
	Alerts() ([]analytics.Alert, error)
}

// AnalyticsHandlers serves trend and alert queries.
type AnalyticsHandlers struct {
	service      AnalyticsAPI
	errorAdapter *errors.HTTPErrorAdapter
}

// NewAnalyticsHandlers creates a new analytics handlers instance.
func NewAnalyticsHandlers(service AnalyticsAPI) *AnalyticsHandlers {
	return &AnalyticsHandlers{
		service:      service,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleTrends computes trends over the current history. The period defaults
// to daily.
func (h *AnalyticsHandlers) HandleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := errors.New(errors.CategoryMalformed, errors.SeverityWarning, "invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	period, err := parsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	trends, err := h.service.Trends(period)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.Wrap(err, errors.CategoryAnalytics, errors.SeverityError, "trend computation failed"))
		return
	}

	resp := responses.TrendsResponse{Trends: trends, Timestamp: time.Now().UTC()}
	if werr := writeJSONPretty(w, r, http.StatusOK, resp); werr != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.Wrap(werr, errors.CategoryInternal, errors.SeverityError, "failed to write trends response"))
	}
}

// HandleAlerts lists persisted alerts.
func (h *AnalyticsHandlers) HandleAlerts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := errors.New(errors.CategoryMalformed, errors.SeverityWarning, "invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	alerts, err := h.service.Alerts()
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.Wrap(err, errors.CategoryAnalytics, errors.SeverityError, "alert query failed"))
		return
	}
	if alerts == nil {
		alerts = []analytics.Alert{}
	}

	resp := responses.AlertsResponse{Alerts: alerts, Count: len(alerts)}
	if werr := writeJSONPretty(w, r, http.StatusOK, resp); werr != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.Wrap(werr, errors.CategoryInternal, errors.SeverityError, "failed to write alerts response"))
	}
}

func parsePeriod(raw string) (analytics.TrendPeriod, error) {
	switch raw {
	case "", "daily":
		return analytics.PeriodDaily, nil
	case "weekly":
		return analytics.PeriodWeekly, nil
	case "monthly":
		return analytics.PeriodMonthly, nil
	case "yearly":
		return analytics.PeriodYearly, nil
	default:
		return "", errors.New(errors.CategoryMalformed, errors.SeverityWarning, "unknown trend period").
			WithContext("field", "period").
			WithContext("value", raw).
			WithContext("allowed", "daily, weekly, monthly, yearly")
	}
}
