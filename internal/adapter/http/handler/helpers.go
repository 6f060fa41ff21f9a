package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"fintrack/internal/adapter/http/dto"
	"fintrack/internal/adapter/http/middleware"
	"fintrack/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrBudgetNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCategoryExists),
		errors.Is(err, domain.ErrBudgetExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrInvalidEntryType),
		errors.Is(err, domain.ErrInvalidAccountName),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrInvalidCurrency),
		errors.Is(err, domain.ErrCategoryTypeMismatch),
		errors.Is(err, domain.ErrCategoryCycle):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// ownerFromRequest extracts the authenticated owner ID. Returns false after
// writing a 401 when no identity is present.
func ownerFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	ownerID, ok := middleware.GetOwnerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing identity", "")
		return "", false
	}
	return ownerID, true
}
