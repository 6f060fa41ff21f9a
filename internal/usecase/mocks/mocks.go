// Package mocks provides hand-written mock implementations of the usecase
// interfaces. Each mock keeps simple in-memory state and exposes pluggable
// Func fields to override individual methods per test.
package mocks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	Accounts map[string]*domain.Account

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, ownerID, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, ownerID, id string) (*domain.Account, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error
	RenameFunc           func(ctx context.Context, ownerID, id, name string, updatedAt time.Time) error
	DeleteFunc           func(ctx context.Context, ownerID, id string) error
	ListFunc             func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error)

	UpdateBalanceCalls int
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.Accounts[id]; ok && acc.OwnerID == ownerID {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, ownerID, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, ownerID, id)
	}
	return m.GetByID(ctx, ownerID, id)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance decimal.Decimal, updatedAt time.Time) error {
	m.mu.Lock()
	m.UpdateBalanceCalls++
	m.mu.Unlock()
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.Accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) Rename(ctx context.Context, ownerID, id, name string, updatedAt time.Time) error {
	if m.RenameFunc != nil {
		return m.RenameFunc(ctx, ownerID, id, name, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.Accounts[id]
	if !ok || acc.OwnerID != ownerID {
		return domain.ErrAccountNotFound
	}
	acc.Name = name
	acc.UpdatedAt = updatedAt
	return nil
}

func (m *MockAccountRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.Accounts[id]
	if !ok || acc.OwnerID != ownerID {
		return domain.ErrAccountNotFound
	}
	delete(m.Accounts, id)
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.Accounts {
		if acc.OwnerID == ownerID {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

// Balance returns the currently stored balance of an account.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.Accounts[id]; ok {
		return acc.Balance
	}
	return decimal.Zero
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	Categories map[string]*domain.Category

	CreateFunc  func(ctx context.Context, category *domain.Category) error
	UpdateFunc  func(ctx context.Context, category *domain.Category) error
	GetByIDFunc func(ctx context.Context, ownerID, id string) (*domain.Category, error)
	ListFunc    func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Category, error)
	DeleteFunc  func(ctx context.Context, ownerID, id string) error
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[string]*domain.Category),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Categories {
		if c.OwnerID == category.OwnerID && c.Name == category.Name && c.Type == category.Type {
			return domain.ErrCategoryExists
		}
	}
	m.Categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Categories[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	m.Categories[category.ID] = category
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.Categories[id]; ok && c.OwnerID == ownerID {
		copied := *c
		return &copied, nil
	}
	return nil, domain.ErrCategoryNotFound
}

func (m *MockCategoryRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.Category
	for _, c := range m.Categories {
		if c.OwnerID == ownerID {
			copied := *c
			categories = append(categories, &copied)
		}
	}
	return categories, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.Categories[id]
	if !ok || c.OwnerID != ownerID {
		return domain.ErrCategoryNotFound
	}
	delete(m.Categories, id)
	return nil
}

// MockTransactionRepository is a mock implementation of TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	Transactions map[string]*domain.Transaction
	// OwnerOf maps account IDs to owner IDs for scoping checks.
	OwnerOf map[string]string

	CreateFunc             func(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error
	GetByIDFunc            func(ctx context.Context, ownerID, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc   func(ctx context.Context, tx usecase.Tx, ownerID, id string) (*domain.Transaction, error)
	UpdateFunc             func(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error
	DeleteFunc             func(ctx context.Context, tx usecase.Tx, id string) error
	ListByOwnerFunc        func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error)
	ListByAccountFunc      func(ctx context.Context, ownerID, accountID string, limit, offset int) ([]*domain.Transaction, error)
	SumSignedByAccountFunc func(ctx context.Context, accountID string) (decimal.Decimal, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		Transactions: make(map[string]*domain.Transaction),
		OwnerOf:      make(map[string]string),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	txn, ok := m.Transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if owner, tracked := m.OwnerOf[txn.AccountID]; tracked && owner != ownerID {
		return nil, domain.ErrTransactionNotFound
	}
	copied := *txn
	return &copied, nil
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, ownerID, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, ownerID, id)
	}
	return m.GetByID(ctx, ownerID, id)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Transactions[txn.ID]; !ok {
		return domain.ErrTransactionNotFound
	}
	m.Transactions[txn.ID] = txn
	return nil
}

func (m *MockTransactionRepository) Delete(ctx context.Context, tx usecase.Tx, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Transactions[id]; !ok {
		return domain.ErrTransactionNotFound
	}
	delete(m.Transactions, id)
	return nil
}

func (m *MockTransactionRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByOwnerFunc != nil {
		return m.ListByOwnerFunc(ctx, ownerID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, txn := range m.Transactions {
		if owner, tracked := m.OwnerOf[txn.AccountID]; tracked && owner != ownerID {
			continue
		}
		copied := *txn
		txns = append(txns, &copied)
	}
	return txns, nil
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, ownerID, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, ownerID, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var txns []*domain.Transaction
	for _, txn := range m.Transactions {
		if txn.AccountID != accountID {
			continue
		}
		copied := *txn
		txns = append(txns, &copied)
	}
	return txns, nil
}

func (m *MockTransactionRepository) SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if m.SumSignedByAccountFunc != nil {
		return m.SumSignedByAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sum := decimal.Zero
	for _, txn := range m.Transactions {
		if txn.AccountID == accountID {
			sum = sum.Add(txn.SignedAmount())
		}
	}
	return sum, nil
}

// MockBudgetRepository is a mock implementation of BudgetRepository.
type MockBudgetRepository struct {
	mu      sync.RWMutex
	Budgets map[string]*domain.Budget

	CreateFunc  func(ctx context.Context, budget *domain.Budget) error
	UpdateFunc  func(ctx context.Context, budget *domain.Budget) error
	GetByIDFunc func(ctx context.Context, ownerID, id string) (*domain.Budget, error)
	ListFunc    func(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Budget, error)
	DeleteFunc  func(ctx context.Context, ownerID, id string) error
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		Budgets: make(map[string]*domain.Budget),
	}
}

func (m *MockBudgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, budget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.Budgets {
		if b.OwnerID == budget.OwnerID && b.CategoryID == budget.CategoryID && b.PeriodStart.Equal(budget.PeriodStart) {
			return domain.ErrBudgetExists
		}
	}
	m.Budgets[budget.ID] = budget
	return nil
}

func (m *MockBudgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, budget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Budgets[budget.ID]; !ok {
		return domain.ErrBudgetNotFound
	}
	m.Budgets[budget.ID] = budget
	return nil
}

func (m *MockBudgetRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Budget, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ownerID, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.Budgets[id]; ok && b.OwnerID == ownerID {
		copied := *b
		return &copied, nil
	}
	return nil, domain.ErrBudgetNotFound
}

func (m *MockBudgetRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Budget, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, ownerID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var budgets []*domain.Budget
	for _, b := range m.Budgets {
		if b.OwnerID == ownerID {
			copied := *b
			budgets = append(budgets, &copied)
		}
	}
	return budgets, nil
}

func (m *MockBudgetRepository) Delete(ctx context.Context, ownerID, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ownerID, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.Budgets[id]
	if !ok || b.OwnerID != ownerID {
		return domain.ErrBudgetNotFound
	}
	delete(m.Budgets, id)
	return nil
}

// MockAnalyticsRepository is a mock implementation of AnalyticsRepository.
type MockAnalyticsRepository struct {
	TotalsByTypeFunc  func(ctx context.Context, ownerID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error)
	SumByCategoryFunc func(ctx context.Context, ownerID string, entryType domain.EntryType, from, to time.Time) ([]usecase.CategorySum, error)
	MonthlyTotalsFunc func(ctx context.Context, ownerID string, from, to time.Time) ([]usecase.MonthlyTotal, error)
}

func NewMockAnalyticsRepository() *MockAnalyticsRepository {
	return &MockAnalyticsRepository{}
}

func (m *MockAnalyticsRepository) TotalsByType(ctx context.Context, ownerID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	if m.TotalsByTypeFunc != nil {
		return m.TotalsByTypeFunc(ctx, ownerID, from, to)
	}
	return decimal.Zero, decimal.Zero, nil
}

func (m *MockAnalyticsRepository) SumByCategory(ctx context.Context, ownerID string, entryType domain.EntryType, from, to time.Time) ([]usecase.CategorySum, error) {
	if m.SumByCategoryFunc != nil {
		return m.SumByCategoryFunc(ctx, ownerID, entryType, from, to)
	}
	return []usecase.CategorySum{}, nil
}

func (m *MockAnalyticsRepository) MonthlyTotals(ctx context.Context, ownerID string, from, to time.Time) ([]usecase.MonthlyTotal, error) {
	if m.MonthlyTotalsFunc != nil {
		return m.MonthlyTotalsFunc(ctx, ownerID, from, to)
	}
	return []usecase.MonthlyTotal{}, nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	Logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var logs []*domain.AuditLog
	for _, l := range m.Logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// MockTx is a mock database transaction.
type MockTx struct {
	Committed  bool
	RolledBack bool

	CommitFunc func(ctx context.Context) error
}

func (t *MockTx) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTx) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	mu  sync.Mutex
	Txs []*MockTx

	BeginFunc func(ctx context.Context) (usecase.Tx, error)
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTx{}
	m.Txs = append(m.Txs, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%03d", m.counter)
}

// ErrCacheMiss is returned by MockCache.Get for missing keys.
var ErrCacheMiss = errors.New("cache miss")

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu       sync.Mutex
	Values   map[string]string
	Counters map[string]int64
}

func NewMockCache() *MockCache {
	return &MockCache{
		Values:   make(map[string]string),
		Counters: make(map[string]int64),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.Values[key]; ok {
		return v, nil
	}
	if c, ok := m.Counters[key]; ok {
		return strconv.FormatInt(c, 10), nil
	}
	return "", ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Values[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Values, key)
	delete(m.Counters, key)
	return nil
}

func (m *MockCache) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[key]++
	return m.Counters[key], nil
}
