package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

// AnalyticsRepository implements usecase.AnalyticsRepository. All sums are
// computed from transaction rows; cached account balances are never read.
type AnalyticsRepository struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository creates a new AnalyticsRepository.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{pool: pool}
}

// TotalsByType sums income and expense amounts over a date range.
func (r *AnalyticsRepository) TotalsByType(ctx context.Context, ownerID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.owner_id = $1 AND t.date >= $2 AND t.date < $3
	`

	var income, expense pgtype.Numeric
	err := r.pool.QueryRow(ctx, query, ownerID, timeToPgTimestamptz(from), timeToPgTimestamptz(to)).
		Scan(&income, &expense)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(income), numericToDecimal(expense), nil
}

// SumByCategory breaks one entry type's total down per category. Transactions
// without a category land in an unnamed bucket with an empty category ID.
func (r *AnalyticsRepository) SumByCategory(ctx context.Context, ownerID string, entryType domain.EntryType, from, to time.Time) ([]usecase.CategorySum, error) {
	query := `
		SELECT COALESCE(t.category_id, ''), COALESCE(c.name, ''), SUM(t.amount)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE a.owner_id = $1 AND t.type = $2 AND t.date >= $3 AND t.date < $4
		GROUP BY t.category_id, c.name
		ORDER BY SUM(t.amount) DESC
	`

	rows, err := r.pool.Query(ctx, query,
		ownerID, string(entryType), timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sums := []usecase.CategorySum{}
	for rows.Next() {
		var (
			sum   usecase.CategorySum
			total pgtype.Numeric
		)

		if err := rows.Scan(&sum.CategoryID, &sum.CategoryName, &total); err != nil {
			return nil, err
		}

		sum.Total = numericToDecimal(total)
		sums = append(sums, sum)
	}

	return sums, rows.Err()
}

// MonthlyTotals returns per-month income and expense totals over a date
// range. Months with no transactions are absent from the result.
func (r *AnalyticsRepository) MonthlyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]usecase.MonthlyTotal, error) {
	query := `
		SELECT
			date_trunc('month', t.date AT TIME ZONE 'UTC') AS month,
			COALESCE(SUM(CASE WHEN t.type = 'income' THEN t.amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.type = 'expense' THEN t.amount ELSE 0 END), 0)
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.owner_id = $1 AND t.date >= $2 AND t.date < $3
		GROUP BY month
		ORDER BY month
	`

	rows, err := r.pool.Query(ctx, query,
		ownerID, timeToPgTimestamptz(from), timeToPgTimestamptz(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := []usecase.MonthlyTotal{}
	for rows.Next() {
		var (
			month   time.Time
			income  pgtype.Numeric
			expense pgtype.Numeric
		)

		if err := rows.Scan(&month, &income, &expense); err != nil {
			return nil, err
		}

		totals = append(totals, usecase.MonthlyTotal{
			Month:   month.UTC(),
			Income:  numericToDecimal(income),
			Expense: numericToDecimal(expense),
		})
	}

	return totals, rows.Err()
}
