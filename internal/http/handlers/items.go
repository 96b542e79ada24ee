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

type ListResolver interface {
	GetByID(ctx context.Context, listID, ownerID string) (list.List, error)
}

type ItemStore interface {
	Create(ctx context.Context, listID string, req item.CreateItemRequest) (item.Item, error)
	Update(ctx context.Context, itemID, ownerID string, req item.UpdateItemRequest) error
	Delete(ctx context.Context, itemID, ownerID string) error
}

type ItemsHandler struct {
	lists ListResolver
	items ItemStore
}

func NewItemsHandler(lists ListResolver, items ItemStore) *ItemsHandler {
	return &ItemsHandler{lists: lists, items: items}
}

func (h *ItemsHandler) AddItem(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	listID := ctx.Param("id")

	var req item.CreateItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	// resolve through the owner so a foreign list 404s before any write
	_, err := h.lists.GetByID(cctx, listID, ownerID)

	if err != nil {
		if errors.Is(err, list.ErrNotFound) {
			RespondNotFound(ctx, "List not found")
			return
		}
		RespondInternal(ctx, "Could not add item")
		return
	}

	it, err := h.items.Create(cctx, listID, req)

	if err != nil {
		RespondInternal(ctx, "Could not add item")
		return
	}

	ctx.JSON(http.StatusCreated, it)
}

func (h *ItemsHandler) UpdateItem(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	itemID := ctx.Param("id")

	var req item.UpdateItemRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.items.Update(cctx, itemID, ownerID, req)

	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			RespondNotFound(ctx, "Item not found")
			return
		}
		RespondInternal(ctx, "Could not update item")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Item updated successfully"})
}

func (h *ItemsHandler) DeleteItem(ctx *gin.Context) {
	ownerID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || ownerID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	itemID := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	err := h.items.Delete(cctx, itemID, ownerID)

	if err != nil {
		if errors.Is(err, item.ErrNotFound) {
			RespondNotFound(ctx, "Item not found")
			return
		}
		RespondInternal(ctx, "Could not delete item")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Item deleted successfully"})
}
