package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/infrastructure/metrics"
)

// TransactionUseCase owns the transaction lifecycle and the balance
// reconciliation that goes with it. Every mutation runs as one database
// transaction spanning the transaction row and the affected account balance
// write(s), so the two can never diverge: if the balance write fails the
// whole operation rolls back.
//
// Reconciliation is driven by an explicitly captured before/after pair read
// under row locks. There is no implicit save hook, which makes exactly one
// adjustment per lifecycle event hold by construction.
type TransactionUseCase struct {
	txManager       TxManager
	accountRepo     AccountRepository
	categoryRepo    CategoryRepository
	transactionRepo TransactionRepository
	idGen           IDGenerator
	auditRepo       AuditRepository
	cache           Cache
	retrier         Retrier
	metrics         *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	categoryRepo CategoryRepository,
	transactionRepo TransactionRepository,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		idGen:           idGen,
	}
}

// WithAudit enables best-effort audit logging of mutations.
func (uc *TransactionUseCase) WithAudit(auditRepo AuditRepository) *TransactionUseCase {
	uc.auditRepo = auditRepo
	return uc
}

// WithCache enables analytics cache invalidation on mutations.
func (uc *TransactionUseCase) WithCache(cache Cache) *TransactionUseCase {
	uc.cache = cache
	return uc
}

// WithRetrier enables retries on transient serialization failures.
func (uc *TransactionUseCase) WithRetrier(retrier Retrier) *TransactionUseCase {
	uc.retrier = retrier
	return uc
}

// WithMetrics enables operation counters for committed mutations.
func (uc *TransactionUseCase) WithMetrics(m *metrics.Metrics) *TransactionUseCase {
	uc.metrics = m
	return uc
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	OwnerID     string
	AccountID   string
	CategoryID  string
	Amount      decimal.Decimal
	Type        domain.EntryType
	Date        time.Time
	Description string
}

// UpdateTransactionInput represents input for updating a transaction.
// AccountID may differ from the current one: the transaction then moves
// between accounts and both balances are adjusted.
type UpdateTransactionInput struct {
	OwnerID     string
	ID          string
	AccountID   string
	CategoryID  string
	Amount      decimal.Decimal
	Type        domain.EntryType
	Date        time.Time
	Description string
}

// CreateTransaction creates a transaction and credits/debits its account.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateEntryType(input.Type); err != nil {
		return nil, err
	}

	var created *domain.Transaction

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.OwnerID, input.AccountID)
		if err != nil {
			return err
		}

		if err := uc.checkCategory(ctx, input.OwnerID, input.CategoryID, input.Type); err != nil {
			return err
		}

		now := time.Now().UTC()

		date := input.Date
		if date.IsZero() {
			date = now
		}

		txn := &domain.Transaction{
			ID:          uc.idGen.Generate(),
			AccountID:   account.ID,
			CategoryID:  input.CategoryID,
			Amount:      input.Amount,
			Type:        input.Type,
			Date:        date,
			Description: input.Description,
			CreatedAt:   now,
		}

		if err := uc.transactionRepo.Create(ctx, tx, txn); err != nil {
			return err
		}

		newBalance := account.ApplyDelta(txn.SignedAmount())
		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		created = txn

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.Inc()
		uc.metrics.TransactionAmount.Observe(created.Amount.InexactFloat64())
	}

	uc.invalidateAnalytics(ctx, input.OwnerID)
	uc.audit(ctx, input.OwnerID, domain.AuditActionTransactionCreate, created.ID, nil, created)

	return created, nil
}

// UpdateTransaction rewrites a transaction and applies exactly one balance
// reconciliation derived from the pre-mutation state, which is read under a
// row lock before the record is overwritten. A changed AccountID moves the
// signed amount from the old account to the new one.
func (uc *TransactionUseCase) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateEntryType(input.Type); err != nil {
		return nil, err
	}

	var (
		before  *domain.Transaction
		updated *domain.Transaction
	)

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// The old amount/type/account are unrecoverable once the row is
		// rewritten, so capture them first.
		before, err = uc.transactionRepo.GetByIDForUpdate(ctx, tx, input.OwnerID, input.ID)
		if err != nil {
			return err
		}

		targetAccountID := input.AccountID
		if targetAccountID == "" {
			targetAccountID = before.AccountID
		}

		// Lock affected accounts in sorted ID order to prevent deadlock
		// with concurrent cross-account moves.
		accountIDs := []string{before.AccountID}
		if targetAccountID != before.AccountID {
			accountIDs = append(accountIDs, targetAccountID)
		}
		sort.Strings(accountIDs)

		accounts := make(map[string]*domain.Account, len(accountIDs))
		for _, id := range accountIDs {
			account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.OwnerID, id)
			if err != nil {
				return err
			}
			accounts[id] = account
		}

		if err := uc.checkCategory(ctx, input.OwnerID, input.CategoryID, input.Type); err != nil {
			return err
		}

		now := time.Now().UTC()

		date := input.Date
		if date.IsZero() {
			date = before.Date
		}

		after := &domain.Transaction{
			ID:          before.ID,
			AccountID:   targetAccountID,
			CategoryID:  input.CategoryID,
			Amount:      input.Amount,
			Type:        input.Type,
			Date:        date,
			Description: input.Description,
			CreatedAt:   before.CreatedAt,
		}

		if err := uc.transactionRepo.Update(ctx, tx, after); err != nil {
			return err
		}

		if err := uc.reconcileUpdate(ctx, tx, accounts, before, after, now); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		updated = after

		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsUpdated.Inc()
	}

	uc.invalidateAnalytics(ctx, input.OwnerID)
	uc.audit(ctx, input.OwnerID, domain.AuditActionTransactionUpdate, updated.ID, before, updated)

	return updated, nil
}

// DeleteTransaction removes a transaction and reverses its balance effect.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	var before *domain.Transaction

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		before, err = uc.transactionRepo.GetByIDForUpdate(ctx, tx, ownerID, id)
		if err != nil {
			return err
		}

		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, ownerID, before.AccountID)
		if err != nil {
			return err
		}

		if err := uc.transactionRepo.Delete(ctx, tx, before.ID); err != nil {
			return err
		}

		now := time.Now().UTC()

		newBalance := account.ApplyDelta(before.SignedAmount().Neg())
		if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, newBalance, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	uc.invalidateAnalytics(ctx, ownerID)
	uc.audit(ctx, ownerID, domain.AuditActionTransactionDelete, id, before, nil)

	return nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, ownerID, id)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	OwnerID   string
	AccountID string
	Limit     int
	Offset    int
}

// ListTransactions lists the owner's transactions, optionally filtered by account.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	if input.AccountID != "" {
		return uc.transactionRepo.ListByAccount(ctx, input.OwnerID, input.AccountID, limit, offset)
	}

	return uc.transactionRepo.ListByOwner(ctx, input.OwnerID, limit, offset)
}

// reconcileUpdate applies the single balance adjustment for an update, based
// on the captured before/after pair.
func (uc *TransactionUseCase) reconcileUpdate(
	ctx context.Context,
	tx Tx,
	accounts map[string]*domain.Account,
	before, after *domain.Transaction,
	now time.Time,
) error {
	if before.AccountID == after.AccountID {
		delta := after.SignedAmount().Sub(before.SignedAmount())
		if delta.IsZero() {
			return nil
		}

		account := accounts[before.AccountID]

		return uc.accountRepo.UpdateBalance(ctx, tx, account.ID, account.ApplyDelta(delta), now)
	}

	oldAccount := accounts[before.AccountID]
	newAccount := accounts[after.AccountID]

	err := uc.accountRepo.UpdateBalance(ctx, tx, oldAccount.ID, oldAccount.ApplyDelta(before.SignedAmount().Neg()), now)
	if err != nil {
		return err
	}

	return uc.accountRepo.UpdateBalance(ctx, tx, newAccount.ID, newAccount.ApplyDelta(after.SignedAmount()), now)
}

// checkCategory verifies the category exists, belongs to the owner and has
// the same type as the transaction. An empty categoryID is fine: the
// transaction is simply uncategorized.
func (uc *TransactionUseCase) checkCategory(ctx context.Context, ownerID, categoryID string, entryType domain.EntryType) error {
	if categoryID == "" {
		return nil
	}

	category, err := uc.categoryRepo.GetByID(ctx, ownerID, categoryID)
	if err != nil {
		return err
	}

	if category.Type != entryType {
		return domain.ErrCategoryTypeMismatch
	}

	return nil
}

func (uc *TransactionUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

func (uc *TransactionUseCase) invalidateAnalytics(ctx context.Context, ownerID string) {
	if uc.cache == nil {
		return
	}

	_, _ = uc.cache.Incr(ctx, analyticsGenKey(ownerID))
}

func (uc *TransactionUseCase) audit(ctx context.Context, ownerID string, action domain.AuditAction, resourceID string, before, after any) {
	if uc.auditRepo == nil {
		return
	}

	err := uc.auditRepo.Create(ctx, &domain.AuditLog{
		ID:           uc.idGen.Generate(),
		OwnerID:      ownerID,
		Action:       string(action),
		ResourceType: "transaction",
		ResourceID:   resourceID,
		BeforeState:  domain.MarshalState(before),
		AfterState:   domain.MarshalState(after),
		Status:       string(domain.AuditStatusSuccess),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return
	}

	if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(string(action), string(domain.AuditStatusSuccess)).Inc()
	}
}
