package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/baristalabs/mastrena/internal/errors"
	"github.com/baristalabs/mastrena/internal/extraction"
	"github.com/baristalabs/mastrena/internal/server/responses"
)

// ExtractionAPI defines the service methods the extraction handlers need.
type ExtractionAPI interface {
	Start(ctx context.Context, raw extraction.RawParameters) (extraction.Record, error)
	History() ([]extraction.Record, error)
}

// ExtractionHandlers contains the /start and /metrics handlers.
type ExtractionHandlers struct {
	service      ExtractionAPI
	errorAdapter *errors.HTTPErrorAdapter
}

// NewExtractionHandlers creates a new extraction handlers instance.
func NewExtractionHandlers(service ExtractionAPI) *ExtractionHandlers {
	return &ExtractionHandlers{
		service:      service,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleStart runs one extraction from query parameters. All parameters are
// optional; configured defaults fill the gaps.
func (h *ExtractionHandlers) HandleStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		err := errors.New(errors.CategoryMalformed, errors.SeverityWarning, "invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "POST")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	q := r.URL.Query()
	raw := extraction.RawParameters{
		Temperature: q.Get("temperature"),
		Pressure:    q.Get("pressure"),
		TimeSeconds: q.Get("time_seconds"),
	}

	record, err := h.service.Start(r.Context(), raw)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	if err := writeJSONPretty(w, r, http.StatusCreated, responses.StartResponse(record)); err != nil {
		internalErr := errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "failed to write extraction response")
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}

// HandleHistory serves the full ordered extraction history. An empty store
// yields an empty JSON array, never an error.
func (h *ExtractionHandlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		err := errors.New(errors.CategoryMalformed, errors.SeverityWarning, "invalid HTTP method").
			WithContext("method", r.Method).
			WithContext("allowed_method", "GET")
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}

	history, err := h.service.History()
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, errors.StorageError("history", err))
		return
	}

	resp := responses.HistoryResponse(history)
	if resp == nil {
		resp = responses.HistoryResponse{}
	}

	if err := writeJSONPretty(w, r, http.StatusOK, resp); err != nil {
		internalErr := errors.Wrap(err, errors.CategoryInternal, errors.SeverityError, "failed to write history response")
		h.errorAdapter.WriteErrorResponse(w, r, internalErr)
	}
}
