package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/paguielng/shopisapp/internal/config"
	"github.com/paguielng/shopisapp/internal/domain/user"
	"github.com/paguielng/shopisapp/internal/http/middlewares"
)

type ProfileReader interface {
	GetByID(ctx context.Context, id string) (user.User, error)
	StatsForUser(ctx context.Context, userID string) (listsCount, completedItems int, err error)
}

type ProfileHandler struct {
	users ProfileReader
}

func NewProfileHandler(users ProfileReader) *ProfileHandler {
	return &ProfileHandler{users: users}
}

func (h *ProfileHandler) GetProfile(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok || userID == "" {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.users.GetByID(cctx, userID)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not fetch profile")
		return
	}

	listsCount, completedItems, err := h.users.StatsForUser(cctx, userID)

	if err != nil {
		RespondInternal(ctx, "Could not fetch profile")
		return
	}

	ctx.JSON(http.StatusOK, user.Profile{
		User:                u,
		ListsCount:          listsCount,
		CompletedItemsCount: completedItems,
	})
}
