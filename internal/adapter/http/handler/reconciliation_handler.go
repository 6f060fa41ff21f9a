package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/adapter/http/dto"
	"fintrack/internal/infrastructure/metrics"
	"fintrack/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconciliationHandler.
type ReconciliationService interface {
	ReconcileAccount(ctx context.Context, ownerID, accountID string) (*usecase.ReconciliationResult, error)
	ReconcileAllAccounts(ctx context.Context, ownerID string) ([]*usecase.ReconciliationResult, error)
}

// ReconciliationHandler handles balance verification HTTP requests.
type ReconciliationHandler struct {
	reconciliationUC ReconciliationService
	metrics          *metrics.Metrics
}

// NewReconciliationHandler creates a new ReconciliationHandler.
func NewReconciliationHandler(reconciliationUC ReconciliationService, m *metrics.Metrics) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationUC: reconciliationUC, metrics: m}
}

// CheckAccount verifies one account's cached balance against its transaction
// sum.
func (h *ReconciliationHandler) CheckAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	accountID := chi.URLParam(r, "id")

	result, err := h.reconciliationUC.ReconcileAccount(r.Context(), ownerID, accountID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile account", err.Error())
		return
	}

	h.record(result)

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}

// CheckAll verifies every account of the owner.
func (h *ReconciliationHandler) CheckAll(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	results, err := h.reconciliationUC.ReconcileAllAccounts(r.Context(), ownerID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reconcile accounts", err.Error())
		return
	}

	for _, result := range results {
		h.record(result)
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationsFromUseCase(results))
}

func (h *ReconciliationHandler) record(result *usecase.ReconciliationResult) {
	if h.metrics == nil {
		return
	}

	h.metrics.ReconciliationChecks.Inc()
	if !result.IsReconciled {
		h.metrics.ReconciliationMismatches.Inc()
	}
}
