package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fintrack/internal/adapter/http/dto"
	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

// BudgetService defines the behavior needed by BudgetHandler.
type BudgetService interface {
	CreateBudget(ctx context.Context, input usecase.CreateBudgetInput) (*domain.Budget, error)
	UpdateBudgetLimit(ctx context.Context, ownerID, id string, limit decimal.Decimal) (*domain.Budget, error)
	GetBudget(ctx context.Context, ownerID, id string) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, ownerID, id string) error
	ListBudgets(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Budget, error)
	GetBudgetProgress(ctx context.Context, ownerID, id string) (*usecase.BudgetProgress, error)
}

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC}
}

// Create creates a new monthly budget.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.CreateBudget(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create budget", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.BudgetFromDomain(budget))
}

// Update changes a budget's limit.
func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.UpdateBudgetLimit(r.Context(), ownerID, id, req.LimitAmount)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Get retrieves a budget by ID.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	budget, err := h.budgetUC.GetBudget(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Delete removes a budget.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.budgetUC.DeleteBudget(r.Context(), ownerID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete budget", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists the owner's budgets.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	budgets, err := h.budgetUC.ListBudgets(r.Context(), ownerID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list budgets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetsFromDomain(budgets))
}

// Progress reports spending against a budget's limit.
func (h *BudgetHandler) Progress(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	progress, err := h.budgetUC.GetBudgetProgress(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get budget progress", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetProgressFromUseCase(progress))
}
