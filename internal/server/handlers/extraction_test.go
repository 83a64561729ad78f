package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baristalabs/mastrena/internal/config"
	"github.com/baristalabs/mastrena/internal/extraction"
	"github.com/baristalabs/mastrena/internal/service"
	"github.com/baristalabs/mastrena/internal/store"
)

func newHandlers() *ExtractionHandlers {
	svc := service.New(config.DefaultConfig().Brewing, store.NewMemoryStore(), service.Options{})
	return NewExtractionHandlers(svc)
}

func TestHandleStartSuccess(t *testing.T) {
	h := newHandlers()

	req := httptest.NewRequest(http.MethodPost, "/start?temperature=95&pressure=9.5&time_seconds=27", nil)
	rec := httptest.NewRecorder()

	h.HandleStart(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var record extraction.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if record.Parameters.Temperature != 95 || record.Parameters.Pressure != 9.5 || record.Parameters.TimeSeconds != 27 {
		t.Errorf("parameters = %+v", record.Parameters)
	}
	if record.ID != 1 {
		t.Errorf("id = %d, want 1", record.ID)
	}
	if record.Outcome.Quality == "" {
		t.Error("outcome quality missing")
	}
}

func TestHandleStartDefaults(t *testing.T) {
	h := newHandlers()

	req := httptest.NewRequest(http.MethodPost, "/start", nil)
	rec := httptest.NewRecorder()

	h.HandleStart(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var record extraction.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := extraction.Parameters{Temperature: 93.0, Pressure: 9.0, TimeSeconds: 25}
	if record.Parameters != want {
		t.Errorf("parameters = %+v, want defaults %+v", record.Parameters, want)
	}
}

func TestHandleStartOutOfRange(t *testing.T) {
	h := newHandlers()

	req := httptest.NewRequest(http.MethodPost, "/start?temperature=200", nil)
	rec := httptest.NewRecorder()

	h.HandleStart(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var resp struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error payload: %v", err)
	}
	if resp.Code != "out_of_range" {
		t.Errorf("code = %q", resp.Code)
	}
	if resp.Details["field"] != "temperature" {
		t.Errorf("field = %v", resp.Details["field"])
	}
	if resp.Details["value"] != 200.0 {
		t.Errorf("value = %v", resp.Details["value"])
	}
	if resp.Details["min"] == nil || resp.Details["max"] == nil {
		t.Errorf("allowed bounds missing: %v", resp.Details)
	}

	// Failed start must leave the history untouched.
	histReq := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	histRec := httptest.NewRecorder()
	h.HandleHistory(histRec, histReq)

	var history []extraction.Record
	if err := json.Unmarshal(histRec.Body.Bytes(), &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("history len = %d after failed start", len(history))
	}
}

func TestHandleStartMalformed(t *testing.T) {
	h := newHandlers()

	req := httptest.NewRequest(http.MethodPost, "/start?pressure=strong", nil)
	rec := httptest.NewRecorder()

	h.HandleStart(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Code != "malformed" {
		t.Errorf("code = %q", resp.Code)
	}
}

func TestHandleStartRejectsGet(t *testing.T) {
	h := newHandlers()

	req := httptest.NewRequest(http.MethodGet, "/start", nil)
	rec := httptest.NewRecorder()

	h.HandleStart(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for GET /start, got %d", rec.Code)
	}
}

func TestHandleHistoryEmptyIsArray(t *testing.T) {
	h := newHandlers()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	h.HandleHistory(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty history, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]\n" {
		t.Errorf("empty history body = %q, want JSON array", body)
	}
}

func TestHandleHistoryOrdering(t *testing.T) {
	h := newHandlers()

	for _, temp := range []string{"90", "93", "96"} {
		req := httptest.NewRequest(http.MethodPost, "/start?temperature="+temp, nil)
		h.HandleStart(httptest.NewRecorder(), req)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.HandleHistory(rec, req)

	var history []extraction.Record
	if err := json.Unmarshal(rec.Body.Bytes(), &history); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("history len = %d, want 3", len(history))
	}
	wantTemps := []float64{90, 93, 96}
	for i, r := range history {
		if r.Parameters.Temperature != wantTemps[i] {
			t.Errorf("record %d temperature = %v, want %v (insertion order)", i, r.Parameters.Temperature, wantTemps[i])
		}
		if r.ID != uint64(i+1) {
			t.Errorf("record %d id = %d", i, r.ID)
		}
	}
}
