package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/adapter/http/dto"
	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

// TransactionService defines the behavior needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, id string) error
	GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// TransactionHandler handles transaction-related HTTP requests.
type TransactionHandler struct {
	transactionUC TransactionService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionUC TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC}
}

// Create records a new transaction and applies it to the account balance.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.CreateTransaction(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Update rewrites a transaction and reconciles the affected balances.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := h.transactionUC.UpdateTransaction(r.Context(), req.ToUseCaseInput(ownerID, id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Delete removes a transaction and restores the account balance.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.transactionUC.DeleteTransaction(r.Context(), ownerID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete transaction", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves a transaction by ID.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	txn, err := h.transactionUC.GetTransaction(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// List lists the owner's transactions, newest first.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	txns, err := h.transactionUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		OwnerID: ownerID,
		Limit:   parseIntQuery(r, "limit", 50),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}

// ListByAccount lists one account's transactions, newest first.
func (h *TransactionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	accountID := chi.URLParam(r, "id")

	txns, err := h.transactionUC.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		OwnerID:   ownerID,
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 50),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list transactions", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.TransactionsFromDomain(txns),
		Total:        int64(len(txns)),
	})
}
