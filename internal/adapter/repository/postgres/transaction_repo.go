package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository. Owner
// scoping goes through the owning account, so a transaction under another
// owner's account behaves as missing.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `t.id, t.account_id, t.category_id, t.amount, t.type, t.date, t.description, t.created_at`

// Create inserts a new transaction inside the caller's database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO transactions (id, account_id, category_id, amount, type, date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.AccountID,
		nullableID(txn.CategoryID),
		decimalToNumeric(txn.Amount),
		string(txn.Type),
		timeToPgTimestamptz(txn.Date),
		txn.Description,
		timeToPgTimestamptz(txn.CreatedAt),
	)

	return err
}

// GetByID retrieves a transaction by ID, scoped to the owner.
func (r *TransactionRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND a.owner_id = $2
	`

	return scanTransaction(r.pool.QueryRow(ctx, query, id, ownerID))
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock on the
// transaction row.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, ownerID, id string) (*domain.Transaction, error) {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE t.id = $1 AND a.owner_id = $2
		FOR UPDATE OF t
	`

	return scanTransaction(pgxTx.QueryRow(ctx, query, id, ownerID))
}

// Update rewrites a transaction row inside the caller's database transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE transactions
		SET account_id = $2, category_id = $3, amount = $4, type = $5, date = $6, description = $7
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query,
		txn.ID,
		txn.AccountID,
		nullableID(txn.CategoryID),
		decimalToNumeric(txn.Amount),
		string(txn.Type),
		timeToPgTimestamptz(txn.Date),
		txn.Description,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction inside the caller's database transaction.
func (r *TransactionRepository) Delete(ctx context.Context, tx usecase.Tx, id string) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// ListByOwner lists the owner's transactions across all accounts, newest
// first.
func (r *TransactionRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.owner_id = $1
		ORDER BY t.date DESC, t.id DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, ownerID, int32(limit), int32(offset))
}

// ListByAccount lists one account's transactions, newest first.
func (r *TransactionRepository) ListByAccount(ctx context.Context, ownerID, accountID string, limit, offset int) ([]*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN accounts a ON a.id = t.account_id
		WHERE a.owner_id = $1 AND t.account_id = $2
		ORDER BY t.date DESC, t.id DESC
		LIMIT $3 OFFSET $4
	`

	return r.list(ctx, query, ownerID, accountID, int32(limit), int32(offset))
}

// SumSignedByAccount recomputes an account's balance from its transaction
// rows. Income counts positive, expense negative.
func (r *TransactionRepository) SumSignedByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		FROM transactions
		WHERE account_id = $1
	`

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

func (r *TransactionRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}

	return txns, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		txn        domain.Transaction
		categoryID *string
		entryType  string
		amount     pgtype.Numeric
		date       pgtype.Timestamptz
		createdAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&txn.ID,
		&txn.AccountID,
		&categoryID,
		&amount,
		&entryType,
		&date,
		&txn.Description,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	if categoryID != nil {
		txn.CategoryID = *categoryID
	}
	txn.Amount = numericToDecimal(amount)
	txn.Type = domain.EntryType(entryType)
	txn.Date = date.Time
	txn.CreatedAt = createdAt.Time

	return &txn, nil
}
