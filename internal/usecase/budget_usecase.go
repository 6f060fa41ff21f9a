package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/infrastructure/metrics"
)

// BudgetUseCase handles budget business logic. Budgets never touch account
// balances; their spend side is computed by the analytics queries.
type BudgetUseCase struct {
	budgetRepo    BudgetRepository
	categoryRepo  CategoryRepository
	analyticsRepo AnalyticsRepository
	idGen         IDGenerator
	metrics       *metrics.Metrics
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(
	budgetRepo BudgetRepository,
	categoryRepo CategoryRepository,
	analyticsRepo AnalyticsRepository,
	idGen IDGenerator,
) *BudgetUseCase {
	return &BudgetUseCase{
		budgetRepo:    budgetRepo,
		categoryRepo:  categoryRepo,
		analyticsRepo: analyticsRepo,
		idGen:         idGen,
	}
}

// WithMetrics enables budget counters.
func (uc *BudgetUseCase) WithMetrics(m *metrics.Metrics) *BudgetUseCase {
	uc.metrics = m
	return uc
}

// CreateBudgetInput represents input for creating a budget.
type CreateBudgetInput struct {
	OwnerID     string
	CategoryID  string
	PeriodStart time.Time
	LimitAmount decimal.Decimal
}

// CreateBudget creates a monthly budget for a category. PeriodStart is
// normalized to the first day of its month. A duplicate
// (owner, category, period) surfaces as domain.ErrBudgetExists.
func (uc *BudgetUseCase) CreateBudget(ctx context.Context, input CreateBudgetInput) (*domain.Budget, error) {
	if err := domain.ValidateAmount(input.LimitAmount); err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.GetByID(ctx, input.OwnerID, input.CategoryID); err != nil {
		return nil, err
	}

	budget := &domain.Budget{
		ID:          uc.idGen.Generate(),
		OwnerID:     input.OwnerID,
		CategoryID:  input.CategoryID,
		PeriodStart: domain.NormalizePeriod(input.PeriodStart),
		LimitAmount: input.LimitAmount,
	}

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BudgetsCreated.Inc()
	}

	return budget, nil
}

// UpdateBudgetLimit changes the limit of an existing budget.
func (uc *BudgetUseCase) UpdateBudgetLimit(ctx context.Context, ownerID, id string, limit decimal.Decimal) (*domain.Budget, error) {
	if err := domain.ValidateAmount(limit); err != nil {
		return nil, err
	}

	budget, err := uc.budgetRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	budget.LimitAmount = limit
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}

	return budget, nil
}

// GetBudget retrieves a budget by ID.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, ownerID, id string) (*domain.Budget, error) {
	return uc.budgetRepo.GetByID(ctx, ownerID, id)
}

// DeleteBudget deletes a budget.
func (uc *BudgetUseCase) DeleteBudget(ctx context.Context, ownerID, id string) error {
	return uc.budgetRepo.Delete(ctx, ownerID, id)
}

// ListBudgets lists the owner's budgets.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Budget, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.budgetRepo.List(ctx, ownerID, limit, offset)
}

// BudgetProgress reports how much of a budget's limit has been spent.
type BudgetProgress struct {
	Budget    *domain.Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Exceeded  bool
}

// GetBudgetProgress computes spend against the budget's category over the
// budget month, from transaction records only.
func (uc *BudgetUseCase) GetBudgetProgress(ctx context.Context, ownerID, id string) (*BudgetProgress, error) {
	budget, err := uc.budgetRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.GetByID(ctx, ownerID, budget.CategoryID)
	if err != nil {
		return nil, err
	}

	from := budget.PeriodStart
	to := from.AddDate(0, 1, 0)

	sums, err := uc.analyticsRepo.SumByCategory(ctx, ownerID, category.Type, from, to)
	if err != nil {
		return nil, err
	}

	spent := decimal.Zero
	for _, s := range sums {
		if s.CategoryID == budget.CategoryID {
			spent = s.Total
			break
		}
	}

	remaining := budget.LimitAmount.Sub(spent)

	if uc.metrics != nil && remaining.IsNegative() {
		uc.metrics.BudgetsExceeded.Inc()
	}

	return &BudgetProgress{
		Budget:    budget,
		Spent:     spent,
		Remaining: remaining,
		Exceeded:  remaining.IsNegative(),
	}, nil
}
