package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/baristalabs/mastrena/internal/analytics"
)

type stubAnalytics struct {
	trends analytics.Trends
	alerts []analytics.Alert

	gotPeriod analytics.TrendPeriod
}

func (s *stubAnalytics) Trends(period analytics.TrendPeriod) (analytics.Trends, error) {
	s.gotPeriod = period
	s.trends.Period = period
	return s.trends, nil
}

func (s *stubAnalytics) Alerts() ([]analytics.Alert, error) {
	return s.alerts, nil
}

func TestHandleTrendsDefaultPeriod(t *testing.T) {
	stub := &stubAnalytics{trends: analytics.Trends{PerfectRate: 80, SampleSize: 5}}
	h := NewAnalyticsHandlers(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/trends", nil)
	rec := httptest.NewRecorder()
	h.HandleTrends(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.gotPeriod != analytics.PeriodDaily {
		t.Errorf("period = %q, want daily default", stub.gotPeriod)
	}

	var resp struct {
		Trends analytics.Trends `json:"trends"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Trends.PerfectRate != 80 || resp.Trends.SampleSize != 5 {
		t.Errorf("trends = %+v", resp.Trends)
	}
}

func TestHandleTrendsExplicitPeriods(t *testing.T) {
	stub := &stubAnalytics{}
	h := NewAnalyticsHandlers(stub)

	for raw, want := range map[string]analytics.TrendPeriod{
		"daily":   analytics.PeriodDaily,
		"weekly":  analytics.PeriodWeekly,
		"monthly": analytics.PeriodMonthly,
		"yearly":  analytics.PeriodYearly,
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/trends?period="+raw, nil)
		rec := httptest.NewRecorder()
		h.HandleTrends(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("period %q: status %d", raw, rec.Code)
		}
		if stub.gotPeriod != want {
			t.Errorf("period %q parsed as %q", raw, stub.gotPeriod)
		}
	}
}

func TestHandleTrendsUnknownPeriod(t *testing.T) {
	h := NewAnalyticsHandlers(&stubAnalytics{})

	req := httptest.NewRequest(http.MethodGet, "/api/trends?period=hourly", nil)
	rec := httptest.NewRecorder()
	h.HandleTrends(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Code != "malformed" {
		t.Errorf("code = %q", resp.Code)
	}
	if resp.Details["value"] != "hourly" {
		t.Errorf("details = %v", resp.Details)
	}
}

func TestHandleAlerts(t *testing.T) {
	stub := &stubAnalytics{alerts: []analytics.Alert{
		{ID: "a1", Timestamp: time.Now().UTC(), Severity: analytics.SeverityCritical, Category: analytics.CategoryParameterDeviation, Message: "temperature outside stable band"},
	}}
	h := NewAnalyticsHandlers(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	rec := httptest.NewRecorder()
	h.HandleAlerts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Alerts []analytics.Alert `json:"alerts"`
		Count  int               `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 1 || len(resp.Alerts) != 1 {
		t.Fatalf("count = %d, alerts = %d", resp.Count, len(resp.Alerts))
	}
	if resp.Alerts[0].ID != "a1" {
		t.Errorf("alert id = %q", resp.Alerts[0].ID)
	}
}

func TestHandleAlertsEmpty(t *testing.T) {
	h := NewAnalyticsHandlers(&stubAnalytics{})

	req := httptest.NewRequest(http.MethodGet, "/api/alerts", nil)
	rec := httptest.NewRecorder()
	h.HandleAlerts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Alerts []analytics.Alert `json:"alerts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Alerts == nil {
		t.Error("alerts should be an empty array, not null")
	}
}
