package domain

import "errors"

var (
	// Not-found errors. A row owned by another user surfaces as the same
	// not-found error so existence of foreign data never leaks.
	ErrAccountNotFound     = errors.New("account not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")

	// Validation errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidEntryType     = errors.New("type must be income or expense")
	ErrCategoryTypeMismatch = errors.New("transaction type must match category type")
	ErrCategoryCycle        = errors.New("category cannot be its own ancestor")

	// Uniqueness conflicts
	ErrCategoryExists = errors.New("category with this name and type already exists")
	ErrBudgetExists   = errors.New("budget for this category and period already exists")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
