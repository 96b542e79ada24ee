package item

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Category  string    `json:"category"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

var ErrNotFound = errors.New("item not found")

type CreateItemRequest struct {
	Name     string   `json:"name" binding:"required,min=1,max=120"`
	Quantity *int     `json:"quantity" binding:"omitempty,min=1"`
	Price    *float64 `json:"price" binding:"omitempty,gte=0"`
	Category string   `json:"category" binding:"omitempty,max=80"`
}

// UpdateItemRequest is a partial update: nil fields keep their stored value.
type UpdateItemRequest struct {
	Completed *bool    `json:"completed"`
	Quantity  *int     `json:"quantity" binding:"omitempty,min=1"`
	Price     *float64 `json:"price" binding:"omitempty,gte=0"`
}

func NewFromCreateRequest(listID string, req CreateItemRequest) Item {
	it := Item{
		ID:        uuid.NewString(),
		ListID:    listID,
		Name:      req.Name,
		Quantity:  1,
		Category:  req.Category,
		CreatedAt: time.Now().UTC(),
	}

	if req.Quantity != nil {
		it.Quantity = *req.Quantity
	}

	if req.Price != nil {
		it.Price = *req.Price
	}

	return it
}
