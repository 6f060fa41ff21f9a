package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fintrack/internal/adapter/http/dto"
	"fintrack/internal/domain"
	"fintrack/internal/usecase"
)

// CategoryService defines the behavior needed by CategoryHandler.
type CategoryService interface {
	CreateCategory(ctx context.Context, input usecase.CreateCategoryInput) (*domain.Category, error)
	UpdateCategory(ctx context.Context, input usecase.UpdateCategoryInput) (*domain.Category, error)
	GetCategory(ctx context.Context, ownerID, id string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, ownerID, id string) error
	ListCategories(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Category, error)
	ListParentCandidates(ctx context.Context, ownerID, id string, entryType domain.EntryType) ([]*domain.Category, error)
}

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categoryUC CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), req.ToUseCaseInput(ownerID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create category", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// Update rewrites a category's name, type and parent.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.UpdateCategory(r.Context(), req.ToUseCaseInput(ownerID, id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update category", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Get retrieves a category by ID.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	category, err := h.categoryUC.GetCategory(r.Context(), ownerID, id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get category", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Delete removes a category. Its transactions become uncategorized and its
// children are detached.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := h.categoryUC.DeleteCategory(r.Context(), ownerID, id); err != nil {
		writeError(w, mapDomainError(err), "failed to delete category", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// List lists the owner's categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	categories, err := h.categoryUC.ListCategories(r.Context(), ownerID,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// ListParentCandidates lists categories that may legally become the parent of
// the given category.
func (h *CategoryHandler) ListParentCandidates(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := ownerFromRequest(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	entryType := domain.EntryType(r.URL.Query().Get("type"))

	candidates, err := h.categoryUC.ListParentCandidates(r.Context(), ownerID, id, entryType)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list parent candidates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(candidates))
}
