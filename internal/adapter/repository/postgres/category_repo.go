package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack/internal/domain"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, owner_id, name, type, parent_id`

// Create creates a new category. A duplicate (owner, name, type) maps to
// domain.ErrCategoryExists.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query,
		category.ID,
		category.OwnerID,
		category.Name,
		string(category.Type),
		nullableID(category.ParentID),
	)
	return mapUniqueViolation(err, domain.ErrCategoryExists)
}

// Update rewrites a category's name, type and parent.
func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categories
		SET name = $3, type = $4, parent_id = $5
		WHERE id = $1 AND owner_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		category.ID,
		category.OwnerID,
		category.Name,
		string(category.Type),
		nullableID(category.ParentID),
	)
	if err = mapUniqueViolation(err, domain.ErrCategoryExists); err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

// GetByID retrieves a category by ID, scoped to the owner.
func (r *CategoryRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = $1 AND owner_id = $2
	`

	return scanCategory(r.pool.QueryRow(ctx, query, id, ownerID))
}

// List lists the owner's categories with pagination.
func (r *CategoryRepository) List(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE owner_id = $1
		ORDER BY name
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, ownerID, int32(limit), int32(offset))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

// Delete removes a category. Children are detached and transactions become
// uncategorized at the schema level.
func (r *CategoryRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `DELETE FROM categories WHERE id = $1 AND owner_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrCategoryNotFound
	}

	return nil
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var (
		category     domain.Category
		categoryType string
		parentID     *string
	)

	err := row.Scan(
		&category.ID,
		&category.OwnerID,
		&category.Name,
		&categoryType,
		&parentID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCategoryNotFound
		}

		return nil, err
	}

	category.Type = domain.EntryType(categoryType)
	if parentID != nil {
		category.ParentID = *parentID
	}

	return &category, nil
}

// nullableID maps an empty ID string to SQL NULL.
func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
