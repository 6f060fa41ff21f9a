package usecase

import (
	"context"
	"strings"

	"fintrack/internal/domain"
)

// CategoryUseCase handles category business logic, including the
// parent-chain acyclicity invariant.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	idGen        IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, idGen IDGenerator) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		idGen:        idGen,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	OwnerID  string
	Name     string
	Type     domain.EntryType
	ParentID string
}

// CreateCategory creates a category. The (owner, name, type) pair must be
// unique; the repository surfaces a duplicate as domain.ErrCategoryExists.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	if err := domain.ValidateEntryType(input.Type); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:       uc.idGen.Generate(),
		OwnerID:  input.OwnerID,
		Name:     name,
		Type:     input.Type,
		ParentID: input.ParentID,
	}

	if err := uc.checkParentChain(ctx, category); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// UpdateCategoryInput represents input for updating a category.
type UpdateCategoryInput struct {
	OwnerID  string
	ID       string
	Name     string
	Type     domain.EntryType
	ParentID string
}

// UpdateCategory updates a category, re-checking uniqueness and acyclicity.
func (uc *CategoryUseCase) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(input.Name)
	if err := domain.ValidateName(name); err != nil {
		return nil, err
	}

	if err := domain.ValidateEntryType(input.Type); err != nil {
		return nil, err
	}

	if _, err := uc.categoryRepo.GetByID(ctx, input.OwnerID, input.ID); err != nil {
		return nil, err
	}

	category := &domain.Category{
		ID:       input.ID,
		OwnerID:  input.OwnerID,
		Name:     name,
		Type:     input.Type,
		ParentID: input.ParentID,
	}

	if err := uc.checkParentChain(ctx, category); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, ownerID, id string) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, ownerID, id)
}

// DeleteCategory deletes a category. Transactions referencing it are
// detached (category cleared), never deleted; the storage layer enforces
// this with ON DELETE SET NULL.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, ownerID, id string) error {
	return uc.categoryRepo.Delete(ctx, ownerID, id)
}

// ListCategories lists the owner's categories.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Category, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.categoryRepo.List(ctx, ownerID, limit, offset)
}

// ListParentCandidates lists categories that may serve as the parent of the
// given category: same owner, same type, and not the category itself.
func (uc *CategoryUseCase) ListParentCandidates(ctx context.Context, ownerID, id string, entryType domain.EntryType) ([]*domain.Category, error) {
	limit, offset := domain.ValidatePagination(0, 0)

	categories, err := uc.categoryRepo.List(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}

	candidates := make([]*domain.Category, 0, len(categories))
	for _, c := range categories {
		if c.ID == id || c.Type != entryType {
			continue
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}

// maxParentDepth bounds the parent-chain walk. Anything deeper than this is
// treated as a cycle.
const maxParentDepth = 32

// checkParentChain walks the parent chain and rejects a chain that would
// contain the category itself. The UI excludes self-selection too, but the
// invariant does not trust that.
func (uc *CategoryUseCase) checkParentChain(ctx context.Context, category *domain.Category) error {
	if category.ParentID == "" {
		return nil
	}

	if category.ParentID == category.ID {
		return domain.ErrCategoryCycle
	}

	parentID := category.ParentID
	for depth := 0; parentID != ""; depth++ {
		if depth >= maxParentDepth {
			return domain.ErrCategoryCycle
		}

		parent, err := uc.categoryRepo.GetByID(ctx, category.OwnerID, parentID)
		if err != nil {
			return err
		}

		if parent.ID == category.ID {
			return domain.ErrCategoryCycle
		}

		parentID = parent.ParentID
	}

	return nil
}
