package handler

import (
	"context"
	"net/http"
	"time"

	"fintrack/internal/usecase"
)

// AnalyticsService defines the behavior needed by AnalyticsHandler.
type AnalyticsService interface {
	GetSummary(ctx context.Context, input usecase.SummaryInput) (*usecase.Summary, error)
}

// AnalyticsHandler handles reporting HTTP requests.
type AnalyticsHandler struct {
	analyticsUC AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsUC AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUC: analyticsUC}
}

// Summary computes totals, category breakdowns and the monthly trend for the
// requested range. Defaults to the current month.
func (h *AnalyticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	input := usecase.SummaryInput{
		OwnerID: ownerID,
		Months:  parseIntQuery(r, "months", 0),
	}

	var err error
	if input.From, err = parseTimeQuery(r, "from"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid from parameter", err.Error())
		return
	}
	if input.To, err = parseTimeQuery(r, "to"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid to parameter", err.Error())
		return
	}

	summary, err := h.analyticsUC.GetSummary(r.Context(), input)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// parseTimeQuery parses an RFC 3339 time query parameter. A missing parameter
// yields the zero time.
func parseTimeQuery(r *http.Request, key string) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, val)
}
