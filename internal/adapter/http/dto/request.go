package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput(ownerID string) usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		OwnerID:  ownerID,
		Name:     r.Name,
		Currency: r.Currency,
	}
}

// RenameAccountRequest represents a request to rename an account.
type RenameAccountRequest struct {
	Name string `json:"name"`
}

// CreateTransactionRequest represents a request to record a transaction.
type CreateTransactionRequest struct {
	AccountID   string          `json:"account_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input. A missing date defaults to now.
func (r *CreateTransactionRequest) ToUseCaseInput(ownerID string) usecase.CreateTransactionInput {
	date := time.Now().UTC()
	if r.Date != nil {
		date = *r.Date
	}

	return usecase.CreateTransactionInput{
		OwnerID:     ownerID,
		AccountID:   r.AccountID,
		CategoryID:  r.CategoryID,
		Amount:      r.Amount,
		Type:        domain.EntryType(r.Type),
		Date:        date,
		Description: r.Description,
	}
}

// UpdateTransactionRequest represents a request to rewrite a transaction.
type UpdateTransactionRequest struct {
	AccountID   string          `json:"account_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Date        *time.Time      `json:"date,omitempty"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input. A missing date stays zero so the
// use case keeps the transaction's current date.
func (r *UpdateTransactionRequest) ToUseCaseInput(ownerID, id string) usecase.UpdateTransactionInput {
	var date time.Time
	if r.Date != nil {
		date = *r.Date
	}

	return usecase.UpdateTransactionInput{
		OwnerID:     ownerID,
		ID:          id,
		AccountID:   r.AccountID,
		CategoryID:  r.CategoryID,
		Amount:      r.Amount,
		Type:        domain.EntryType(r.Type),
		Date:        date,
		Description: r.Description,
	}
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput(ownerID string) usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		OwnerID:  ownerID,
		Name:     r.Name,
		Type:     domain.EntryType(r.Type),
		ParentID: r.ParentID,
	}
}

// UpdateCategoryRequest represents a request to rewrite a category.
type UpdateCategoryRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCategoryRequest) ToUseCaseInput(ownerID, id string) usecase.UpdateCategoryInput {
	return usecase.UpdateCategoryInput{
		OwnerID:  ownerID,
		ID:       id,
		Name:     r.Name,
		Type:     domain.EntryType(r.Type),
		ParentID: r.ParentID,
	}
}

// CreateBudgetRequest represents a request to create a monthly budget.
type CreateBudgetRequest struct {
	CategoryID  string          `json:"category_id"`
	PeriodStart time.Time       `json:"period_start"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBudgetRequest) ToUseCaseInput(ownerID string) usecase.CreateBudgetInput {
	return usecase.CreateBudgetInput{
		OwnerID:     ownerID,
		CategoryID:  r.CategoryID,
		PeriodStart: r.PeriodStart,
		LimitAmount: r.LimitAmount,
	}
}

// UpdateBudgetRequest represents a request to change a budget's limit.
type UpdateBudgetRequest struct {
	LimitAmount decimal.Decimal `json:"limit_amount"`
}
