package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type stubDaemon struct {
	startTime time.Time
}

func (s *stubDaemon) GetStatus() string       { return "running" }
func (s *stubDaemon) GetStartTime() time.Time { return s.startTime }
func (s *stubDaemon) ExtractionCount() int    { return 7 }
func (s *stubDaemon) StorageBackend() string  { return "memory" }
func (s *stubDaemon) NotifyTargets() int      { return 2 }

func TestHandleHealthCheck(t *testing.T) {
	h := NewMonitoringHandlers(&stubDaemon{startTime: time.Now().Add(-time.Minute)})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("content type = %q", ct)
	}

	var resp struct {
		Status  string  `json:"status"`
		Version string  `json:"version"`
		Uptime  float64 `json:"uptime_seconds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Version == "" {
		t.Error("version missing")
	}
	if resp.Uptime <= 0 {
		t.Errorf("uptime = %v", resp.Uptime)
	}
}

func TestHandleHealthCheckRejectsPost(t *testing.T) {
	h := NewMonitoringHandlers(&stubDaemon{startTime: time.Now()})

	req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	start := time.Now().Add(-2 * time.Minute).UTC()
	h := NewMonitoringHandlers(&stubDaemon{startTime: start})

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Status         string  `json:"status"`
		Extractions    int     `json:"extractions"`
		StorageBackend string  `json:"storage_backend"`
		NotifyTargets  int     `json:"notify_targets"`
		Uptime         float64 `json:"uptime_seconds"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Status != "running" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Extractions != 7 {
		t.Errorf("extractions = %d", resp.Extractions)
	}
	if resp.StorageBackend != "memory" {
		t.Errorf("backend = %q", resp.StorageBackend)
	}
	if resp.NotifyTargets != 2 {
		t.Errorf("notify targets = %d", resp.NotifyTargets)
	}
	if resp.Uptime < 100 {
		t.Errorf("uptime = %v, want roughly two minutes", resp.Uptime)
	}
}

func TestHandleStatusPretty(t *testing.T) {
	h := NewMonitoringHandlers(&stubDaemon{startTime: time.Now()})

	req := httptest.NewRequest(http.MethodGet, "/api/status?pretty=1", nil)
	rec := httptest.NewRecorder()
	h.HandleStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "\n  \"") {
		t.Error("pretty output should be indented")
	}
}
