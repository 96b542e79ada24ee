package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paguielng/shopisapp/internal/config"
	"github.com/paguielng/shopisapp/internal/domain/category"
	"github.com/paguielng/shopisapp/internal/http/middlewares"
)

type CategoryStore interface {
	Create(ctx context.Context, ownerID string, req category.CreateCategoryRequest) (category.Category, error)
	ListByOwner(ctx context.Context, ownerID string) ([]category.Category, error)
	Update(ctx context.Context, categoryID, ownerID string, req category.UpdateCategoryRequest) (category.Category, error)
	Delete(ctx context.Context, categoryID, ownerID string) error
}

type CategoriesHandler struct {
	categories CategoryStore
}

func NewCategoriesHandler(categories CategoryStore) *CategoriesHandler {
	return &CategoriesHandler{categories: categories}
}

func (h *CategoriesHandler) CreateCategory(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	var req category.CreateCategoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.categories.Create(cctx, ownerID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create category")
		return
	}

	ctx.JSON(http.StatusCreated, c)
}

func (h *CategoriesHandler) ListCategories(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	categories, err := h.categories.ListByOwner(cctx, ownerID)

	if err != nil {
		RespondInternal(ctx, "Could not list categories")
		return
	}

	ctx.JSON(http.StatusOK, categories)
}

func (h *CategoriesHandler) UpdateCategory(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	categoryID := ctx.Param("id")

	var req category.UpdateCategoryRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	c, err := h.categories.Update(cctx, categoryID, ownerID, req)

	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			RespondNotFound(ctx, "Category not found")
			return
		}
		RespondInternal(ctx, "Could not update category")
		return
	}

	ctx.JSON(http.StatusOK, c)
}

func (h *CategoriesHandler) DeleteCategory(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	categoryID := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.categories.Delete(cctx, categoryID, ownerID)

	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			RespondNotFound(ctx, "Category not found")
			return
		}
		RespondInternal(ctx, "Could not delete category")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
