package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Currency  string          `json:"currency"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Currency:  a.Currency,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	CategoryID  string          `json:"category_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionFromDomain converts domain transaction to response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		AccountID:   t.AccountID,
		CategoryID:  t.CategoryID,
		Amount:      t.Amount,
		Type:        string(t.Type),
		Date:        t.Date,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []*TransactionResponse `json:"transactions"`
	Total        int64                  `json:"total"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	ParentID string `json:"parent_id,omitempty"`
}

// CategoryFromDomain converts domain category to response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Type:     string(c.Type),
		ParentID: c.ParentID,
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID          string          `json:"id"`
	CategoryID  string          `json:"category_id"`
	PeriodStart time.Time       `json:"period_start"`
	LimitAmount decimal.Decimal `json:"limit_amount"`
}

// BudgetFromDomain converts domain budget to response.
func BudgetFromDomain(b *domain.Budget) *BudgetResponse {
	return &BudgetResponse{
		ID:          b.ID,
		CategoryID:  b.CategoryID,
		PeriodStart: b.PeriodStart,
		LimitAmount: b.LimitAmount,
	}
}

// BudgetsFromDomain converts domain budgets to responses.
func BudgetsFromDomain(budgets []*domain.Budget) []*BudgetResponse {
	result := make([]*BudgetResponse, len(budgets))
	for i, b := range budgets {
		result[i] = BudgetFromDomain(b)
	}
	return result
}

// BudgetProgressResponse reports spending against a budget's limit.
type BudgetProgressResponse struct {
	Budget    *BudgetResponse `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	Exceeded  bool            `json:"exceeded"`
}

// BudgetProgressFromUseCase converts budget progress to response.
func BudgetProgressFromUseCase(p *usecase.BudgetProgress) *BudgetProgressResponse {
	return &BudgetProgressResponse{
		Budget:    BudgetFromDomain(p.Budget),
		Spent:     p.Spent,
		Remaining: p.Remaining,
		Exceeded:  p.Exceeded,
	}
}

// ReconciliationResponse reports one account's balance check.
type ReconciliationResponse struct {
	AccountID         string          `json:"account_id"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	CheckedAt         time.Time       `json:"checked_at"`
}

// ReconciliationFromUseCase converts a reconciliation result to response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountID:         r.AccountID,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		CheckedAt:         r.CheckedAt,
	}
}

// ReconciliationsFromUseCase converts reconciliation results to responses.
func ReconciliationsFromUseCase(results []*usecase.ReconciliationResult) []*ReconciliationResponse {
	out := make([]*ReconciliationResponse, len(results))
	for i, r := range results {
		out[i] = ReconciliationFromUseCase(r)
	}
	return out
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
