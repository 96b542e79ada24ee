package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paguielng/shopisapp/internal/config"
	"github.com/paguielng/shopisapp/internal/domain/item"
	"github.com/paguielng/shopisapp/internal/domain/list"
	"github.com/paguielng/shopisapp/internal/http/middlewares"
)

type ListStore interface {
	Create(ctx context.Context, ownerID string, req list.CreateListRequest) (list.List, error)
	ListByOwner(ctx context.Context, ownerID string) ([]list.Summary, error)
	GetByID(ctx context.Context, listID, ownerID string) (list.List, error)
	Update(ctx context.Context, listID, ownerID string, req list.UpdateListRequest) (list.List, error)
	Delete(ctx context.Context, listID, ownerID string) error
}

type ItemLister interface {
	ListByList(ctx context.Context, listID string) ([]item.Item, error)
}

type ListsHandler struct {
	lists ListStore
	items ItemLister
}

func NewListsHandler(lists ListStore, items ItemLister) *ListsHandler {
	return &ListsHandler{lists: lists, items: items}
}

// ListDetailResponse is a list, its items, and the aggregates derived from
// them at read time.
type ListDetailResponse struct {
	list.Summary
	Items             []item.Item `json:"items"`
	BudgetUtilization *float64    `json:"budget_utilization,omitempty"`
}

func (h *ListsHandler) CreateList(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	var req list.CreateListRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	l, err := h.lists.Create(cctx, ownerID, req)

	if err != nil {
		RespondInternal(ctx, "Could not create list")
		return
	}

	ctx.JSON(http.StatusCreated, l)
}

func (h *ListsHandler) ListLists(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	lists, err := h.lists.ListByOwner(cctx, ownerID)

	if err != nil {
		RespondInternal(ctx, "Could not list shopping lists")
		return
	}

	ctx.JSON(http.StatusOK, lists)
}

func (h *ListsHandler) GetList(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	listID := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	l, err := h.lists.GetByID(cctx, listID, ownerID)

	if err != nil {
		if errors.Is(err, list.ErrNotFound) {
			RespondNotFound(ctx, "List not found")
			return
		}
		RespondInternal(ctx, "Could not fetch list")
		return
	}

	items, err := h.items.ListByList(cctx, listID)

	if err != nil {
		RespondInternal(ctx, "Could not fetch list")
		return
	}

	agg := list.Summarize(items)

	resp := ListDetailResponse{
		Summary: list.Summary{
			List:           l,
			TotalSpent:     agg.TotalSpent,
			ItemsCount:     agg.ItemsCount,
			CompletedCount: agg.CompletedCount,
		},
		Items: items,
	}

	if pct, ok := list.BudgetUtilization(agg.TotalSpent, l.TotalBudget); ok {
		resp.BudgetUtilization = &pct
	}

	ctx.JSON(http.StatusOK, resp)
}

func (h *ListsHandler) UpdateList(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	listID := ctx.Param("id")

	var req list.UpdateListRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	l, err := h.lists.Update(cctx, listID, ownerID, req)

	if err != nil {
		if errors.Is(err, list.ErrNotFound) {
			RespondNotFound(ctx, "List not found")
			return
		}
		RespondInternal(ctx, "Could not update list")
		return
	}

	ctx.JSON(http.StatusOK, l)
}

func (h *ListsHandler) DeleteList(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	listID := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.lists.Delete(cctx, listID, ownerID)

	if err != nil {
		if errors.Is(err, list.ErrNotFound) {
			RespondNotFound(ctx, "List not found")
			return
		}
		RespondInternal(ctx, "Could not delete list")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "List deleted successfully"})
}
