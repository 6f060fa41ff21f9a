package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/infrastructure/metrics"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	accountRepo AccountRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository, idGen IDGenerator) *AccountUseCase {
	return &AccountUseCase{
		accountRepo: accountRepo,
		idGen:       idGen,
	}
}

// WithMetrics enables account lifecycle counters.
func (uc *AccountUseCase) WithMetrics(m *metrics.Metrics) *AccountUseCase {
	uc.metrics = m
	return uc
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	OwnerID  string
	Name     string
	Currency string
}

// CreateAccount creates a new account with a zero balance.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	if err := domain.ValidateAccountName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidateCurrency(input.Currency); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	account := &domain.Account{
		ID:        uc.idGen.Generate(),
		OwnerID:   input.OwnerID,
		Name:      strings.TrimSpace(input.Name),
		Currency:  strings.ToUpper(strings.TrimSpace(input.Currency)),
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, ownerID, id)
}

// RenameAccount changes an account's name.
func (uc *AccountUseCase) RenameAccount(ctx context.Context, ownerID, id, name string) (*domain.Account, error) {
	if err := domain.ValidateAccountName(name); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Rename(ctx, ownerID, id, strings.TrimSpace(name), time.Now().UTC()); err != nil {
		return nil, err
	}

	return uc.accountRepo.GetByID(ctx, ownerID, id)
}

// DeleteAccount deletes an account. Its transactions go with it.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, ownerID, id string) error {
	if err := uc.accountRepo.Delete(ctx, ownerID, id); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsDeleted.Inc()
	}

	return nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	OwnerID string
	Limit   int
	Offset  int
}

// ListAccounts lists the owner's accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.accountRepo.List(ctx, input.OwnerID, limit, offset)
}
