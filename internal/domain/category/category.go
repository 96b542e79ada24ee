package category

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Category is a named budget envelope a user tracks spending against,
// independent of any single shopping list.
type Category struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	BudgetLimit float64   `json:"budget_limit"`
	Spent       float64   `json:"spent"`
	CreatedAt   time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("category not found")

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120"`
	BudgetLimit float64 `json:"budget_limit" binding:"omitempty,gte=0"`
}

type UpdateCategoryRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=120"`
	BudgetLimit *float64 `json:"budget_limit" binding:"omitempty,gte=0"`
	Spent       *float64 `json:"spent" binding:"omitempty,gte=0"`
}

func NewFromCreateRequest(ownerID string, req CreateCategoryRequest) Category {
	return Category{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Name:        req.Name,
		BudgetLimit: req.BudgetLimit,
		CreatedAt:   time.Now().UTC(),
	}
}
