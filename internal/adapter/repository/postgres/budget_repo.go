package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack/internal/domain"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, owner_id, category_id, period_start, limit_amount`

// Create creates a new budget. A duplicate (owner, category, period_start)
// maps to domain.ErrBudgetExists.
func (r *BudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		budget.ID,
		budget.OwnerID,
		budget.CategoryID,
		timeToPgTimestamptz(budget.PeriodStart),
		decimalToNumeric(budget.LimitAmount),
	)
	return mapUniqueViolation(err, domain.ErrBudgetExists)
}

// Update rewrites a budget's limit.
func (r *BudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	query := `
		UPDATE budgets
		SET limit_amount = $3
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := r.pool.Exec(ctx, query, budget.ID, budget.OwnerID, decimalToNumeric(budget.LimitAmount))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

// GetByID retrieves a budget by ID, scoped to the owner.
func (r *BudgetRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE id = $1 AND owner_id = $2
	`

	return scanBudget(r.pool.QueryRow(ctx, query, id, ownerID))
}

// List lists the owner's budgets with pagination, newest period first.
func (r *BudgetRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + `
		FROM budgets
		WHERE owner_id = $1
		ORDER BY period_start DESC, id
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var budgets []*domain.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, budget)
	}

	return budgets, rows.Err()
}

// Delete removes a budget.
func (r *BudgetRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM budgets WHERE id = $1 AND owner_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrBudgetNotFound
	}

	return nil
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var (
		budget      domain.Budget
		periodStart pgtype.Timestamptz
		limitAmount pgtype.Numeric
	)

	err := row.Scan(
		&budget.ID,
		&budget.OwnerID,
		&budget.CategoryID,
		&periodStart,
		&limitAmount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}

		return nil, err
	}

	budget.PeriodStart = periodStart.Time
	budget.LimitAmount = numericToDecimal(limitAmount)

	return &budget, nil
}
