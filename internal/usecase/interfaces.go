package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// AccountRepository defines data access for accounts. Every method is scoped
// to an owner; rows belonging to other owners behave as missing.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, ownerID, id string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	Rename(ctx context.Context, ownerID, id, name string, updatedAt time.Time) error
	Delete(ctx context.Context, ownerID, id string) error
	List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error)
}

// CategoryRepository defines data access for categories.
// Create and Update return domain.ErrCategoryExists when the
// (owner, name, type) uniqueness constraint is violated.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	Update(ctx context.Context, category *domain.Category) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error)
	List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Category, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// TransactionRepository defines data access for transactions. Owner scoping
// goes through the owning account.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, ownerID, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Tx, txn *domain.Transaction) error
	Delete(ctx context.Context, tx Tx, id string) error
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
	ListByAccount(ctx context.Context, ownerID, accountID string, limit, offset int) ([]*domain.Transaction, error)
	SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error)
}

// BudgetRepository defines data access for budgets. Create and Update return
// domain.ErrBudgetExists on a duplicate (owner, category, period_start).
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	Update(ctx context.Context, budget *domain.Budget) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Budget, error)
	List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Budget, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// CategorySum is one row of a category breakdown. An empty CategoryID means
// the uncategorized bucket.
type CategorySum struct {
	CategoryID   string          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlyTotal holds income/expense totals for one calendar month.
type MonthlyTotal struct {
	Month   time.Time       `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// AnalyticsRepository defines the read-only aggregation queries. All sums are
// computed from transaction rows, never from cached account balances.
type AnalyticsRepository interface {
	TotalsByType(ctx context.Context, ownerID string, from, to time.Time) (income, expense decimal.Decimal, err error)
	SumByCategory(ctx context.Context, ownerID string, entryType domain.EntryType, from, to time.Time) ([]CategorySum, error)
	MonthlyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]MonthlyTotal, error)
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles database transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines the caching operations used by the analytics read side.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Incr(ctx context.Context, key string) (int64, error)
}
