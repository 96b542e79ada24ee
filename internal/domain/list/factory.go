package list

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(ownerID string, req CreateListRequest) List {
	now := time.Now().UTC()

	return List{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        req.Name,
		Description: req.Description,
		TotalBudget: req.Budget,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
