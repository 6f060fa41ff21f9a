package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/usecase"
	"fintrack/internal/usecase/mocks"
)

func newBudgetFixture() (*mocks.MockBudgetRepository, *mocks.MockCategoryRepository, *mocks.MockAnalyticsRepository, *usecase.BudgetUseCase) {
	budgets := mocks.NewMockBudgetRepository()
	cats := mocks.NewMockCategoryRepository()
	analytics := mocks.NewMockAnalyticsRepository()
	uc := usecase.NewBudgetUseCase(budgets, cats, analytics, mocks.NewMockIDGenerator())

	cats.Categories["cat-food"] = &domain.Category{
		ID: "cat-food", OwnerID: testOwner, Name: "Food", Type: domain.EntryTypeExpense,
	}

	return budgets, cats, analytics, uc
}

func TestBudgetUseCase_CreateBudget(t *testing.T) {
	t.Run("normalizes the period to the first of the month", func(t *testing.T) {
		_, _, _, uc := newBudgetFixture()

		budget, err := uc.CreateBudget(context.Background(), usecase.CreateBudgetInput{
			OwnerID:     testOwner,
			CategoryID:  "cat-food",
			PeriodStart: time.Date(2026, 8, 17, 13, 45, 0, 0, time.UTC),
			LimitAmount: decimal.NewFromInt(300),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		if !budget.PeriodStart.Equal(want) {
			t.Errorf("period start = %s, want %s", budget.PeriodStart, want)
		}
	})

	t.Run("duplicate period conflicts", func(t *testing.T) {
		_, _, _, uc := newBudgetFixture()

		input := usecase.CreateBudgetInput{
			OwnerID:     testOwner,
			CategoryID:  "cat-food",
			PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			LimitAmount: decimal.NewFromInt(300),
		}

		if _, err := uc.CreateBudget(context.Background(), input); err != nil {
			t.Fatalf("first create: %v", err)
		}

		// Same month on a different day still collides after normalization.
		input.PeriodStart = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
		if _, err := uc.CreateBudget(context.Background(), input); !errors.Is(err, domain.ErrBudgetExists) {
			t.Errorf("expected ErrBudgetExists, got %v", err)
		}
	})

	t.Run("unknown category reads as not found", func(t *testing.T) {
		_, _, _, uc := newBudgetFixture()

		_, err := uc.CreateBudget(context.Background(), usecase.CreateBudgetInput{
			OwnerID:     testOwner,
			CategoryID:  "cat-missing",
			PeriodStart: time.Now(),
			LimitAmount: decimal.NewFromInt(300),
		})
		if !errors.Is(err, domain.ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("non-positive limit rejected", func(t *testing.T) {
		_, _, _, uc := newBudgetFixture()

		_, err := uc.CreateBudget(context.Background(), usecase.CreateBudgetInput{
			OwnerID:     testOwner,
			CategoryID:  "cat-food",
			PeriodStart: time.Now(),
			LimitAmount: decimal.NewFromInt(-5),
		})
		if !errors.Is(err, domain.ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestBudgetUseCase_GetBudgetProgress(t *testing.T) {
	budgets, _, analytics, uc := newBudgetFixture()

	budgets.Budgets["bud-1"] = &domain.Budget{
		ID:          "bud-1",
		OwnerID:     testOwner,
		CategoryID:  "cat-food",
		PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		LimitAmount: decimal.NewFromInt(300),
	}

	analytics.SumByCategoryFunc = func(ctx context.Context, ownerID string, entryType domain.EntryType, from, to time.Time) ([]usecase.CategorySum, error) {
		if entryType != domain.EntryTypeExpense {
			t.Errorf("expected expense query, got %s", entryType)
		}
		return []usecase.CategorySum{
			{CategoryID: "cat-food", CategoryName: "Food", Total: decimal.NewFromInt(320)},
			{CategoryID: "cat-other", CategoryName: "Other", Total: decimal.NewFromInt(10)},
		}, nil
	}

	progress, err := uc.GetBudgetProgress(context.Background(), testOwner, "bud-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !progress.Spent.Equal(decimal.NewFromInt(320)) {
		t.Errorf("spent = %s, want 320", progress.Spent)
	}
	if !progress.Remaining.Equal(decimal.NewFromInt(-20)) {
		t.Errorf("remaining = %s, want -20", progress.Remaining)
	}
	if !progress.Exceeded {
		t.Error("expected budget to be exceeded")
	}
}

func TestBudgetUseCase_UpdateBudgetLimit(t *testing.T) {
	budgets, _, _, uc := newBudgetFixture()

	budgets.Budgets["bud-1"] = &domain.Budget{
		ID: "bud-1", OwnerID: testOwner, CategoryID: "cat-food",
		PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		LimitAmount: decimal.NewFromInt(300),
	}

	updated, err := uc.UpdateBudgetLimit(context.Background(), testOwner, "bud-1", decimal.NewFromInt(450))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.LimitAmount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("limit = %s, want 450", updated.LimitAmount)
	}

	if _, err := uc.UpdateBudgetLimit(context.Background(), "owner-2", "bud-1", decimal.NewFromInt(100)); !errors.Is(err, domain.ErrBudgetNotFound) {
		t.Errorf("foreign owner should read as not found, got %v", err)
	}
}
