package list

import (
	"errors"
	"time"
)

type List struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalBudget float64   `json:"total_budget"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary is a list plus the derived fields every read recomputes.
// total_spent is never stored; it always comes from the items.
type Summary struct {
	List
	TotalSpent     float64 `json:"total_spent"`
	ItemsCount     int     `json:"items_count"`
	CompletedCount int     `json:"completed_count"`
}

var ErrNotFound = errors.New("list not found")

type CreateListRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120"`
	Description string  `json:"description" binding:"omitempty,max=500"`
	Budget      float64 `json:"budget" binding:"omitempty,gte=0"`
}

type UpdateListRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=120"`
	Description string  `json:"description" binding:"omitempty,max=500"`
	Budget      float64 `json:"budget" binding:"omitempty,gte=0"`
}
