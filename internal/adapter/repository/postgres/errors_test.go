package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"fintrack/internal/domain"
)

func TestMapUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgErrUniqueViolation, ConstraintName: "categories_owner_name_type_key"}

	t.Run("unique violation maps to the conflict sentinel", func(t *testing.T) {
		if err := mapUniqueViolation(unique, domain.ErrCategoryExists); !errors.Is(err, domain.ErrCategoryExists) {
			t.Errorf("expected ErrCategoryExists, got %v", err)
		}
		if err := mapUniqueViolation(unique, domain.ErrBudgetExists); !errors.Is(err, domain.ErrBudgetExists) {
			t.Errorf("expected ErrBudgetExists, got %v", err)
		}
	})

	t.Run("wrapped unique violation still maps", func(t *testing.T) {
		wrapped := fmt.Errorf("exec insert: %w", unique)
		if err := mapUniqueViolation(wrapped, domain.ErrBudgetExists); !errors.Is(err, domain.ErrBudgetExists) {
			t.Errorf("expected ErrBudgetExists for wrapped error, got %v", err)
		}
	})

	t.Run("other postgres errors pass through", func(t *testing.T) {
		serialization := &pgconn.PgError{Code: "40001"}
		err := mapUniqueViolation(serialization, domain.ErrBudgetExists)

		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != "40001" {
			t.Errorf("expected the serialization failure unchanged, got %v", err)
		}
	})

	t.Run("non-postgres errors pass through", func(t *testing.T) {
		plain := errors.New("connection refused")
		if err := mapUniqueViolation(plain, domain.ErrCategoryExists); !errors.Is(err, plain) {
			t.Errorf("expected the original error, got %v", err)
		}
	})

	t.Run("nil stays nil", func(t *testing.T) {
		if err := mapUniqueViolation(nil, domain.ErrCategoryExists); err != nil {
			t.Errorf("expected nil, got %v", err)
		}
	})
}
