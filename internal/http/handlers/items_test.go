package handlers_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/paguielng/shopisapp/internal/domain/item"
	"github.com/paguielng/shopisapp/internal/domain/list"
	"github.com/paguielng/shopisapp/internal/domain/user"
	"github.com/paguielng/shopisapp/internal/http/handlers"
)

func TestAddItem(t *testing.T) {
	ownedList := func(f *fakeListsRepo) {
		f.getFn = func(ctx context.Context, listID, ownerID string) (list.List, error) {
			return list.List{ID: listID, UserID: ownerID}, nil
		}
	}

	tests := []struct {
		name           string
		body           string
		listsSetUp     func(*fakeListsRepo)
		itemsSetUp     func(*fakeItemsRepo)
		wantStatusCode int
	}{
		{
			name:       "success_with_defaults",
			body:       `{"name":"Milk"}`,
			listsSetUp: ownedList,
			itemsSetUp: func(f *fakeItemsRepo) {
				f.createFn = func(ctx context.Context, listID string, req item.CreateItemRequest) (item.Item, error) {
					it := item.NewFromCreateRequest(listID, req)
					if it.Quantity != 1 {
						t.Errorf("default quantity = %d, want 1", it.Quantity)
					}
					if it.Price != 0 {
						t.Errorf("default price = %v, want 0", it.Price)
					}
					return it, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "foreign_or_missing_list_is_404",
			body: `{"name":"Milk"}`,
			// default fakeListsRepo.GetByID answers ErrNotFound
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "missing_name",
			body:           `{"quantity":2}`,
			listsSetUp:     ownedList,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "zero_quantity_rejected",
			body:           `{"name":"Milk","quantity":0}`,
			listsSetUp:     ownedList,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "negative_price_rejected",
			body:           `{"name":"Milk","price":-1}`,
			listsSetUp:     ownedList,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			listsRepo := &fakeListsRepo{}
			itemsRepo := &fakeItemsRepo{}

			if tt.listsSetUp != nil {
				tt.listsSetUp(listsRepo)
			}
			if tt.itemsSetUp != nil {
				tt.itemsSetUp(itemsRepo)
			}

			h := handlers.NewItemsHandler(listsRepo, itemsRepo)
			r := setupAuthedRouter("u-1", http.MethodPost, "/api/lists/:id/items", h.AddItem)

			w := doJSON(t, r, http.MethodPost, "/api/lists/l-1/items", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestUpdateItemPartial(t *testing.T) {
	var captured item.UpdateItemRequest

	itemsRepo := &fakeItemsRepo{
		updateFn: func(ctx context.Context, itemID, ownerID string, req item.UpdateItemRequest) error {
			captured = req
			return nil
		},
	}

	h := handlers.NewItemsHandler(&fakeListsRepo{}, itemsRepo)
	r := setupAuthedRouter("u-1", http.MethodPut, "/api/items/:id", h.UpdateItem)

	w := doJSON(t, r, http.MethodPut, "/api/items/i-1", `{"completed":true}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	if captured.Completed == nil || !*captured.Completed {
		t.Error("completed not carried through")
	}
	if captured.Quantity != nil {
		t.Error("quantity must stay nil when omitted")
	}
	if captured.Price != nil {
		t.Error("price must stay nil when omitted")
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	h := handlers.NewItemsHandler(&fakeListsRepo{}, &fakeItemsRepo{})
	r := setupAuthedRouter("u-1", http.MethodPut, "/api/items/:id", h.UpdateItem)

	w := doJSON(t, r, http.MethodPut, "/api/items/i-404", `{"completed":true}`)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404, body=%s", w.Code, w.Body.String())
	}
}

func TestDeleteItem(t *testing.T) {
	tests := []struct {
		name           string
		itemsSetUp     func(*fakeItemsRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			itemsSetUp: func(f *fakeItemsRepo) {
				f.deleteFn = func(ctx context.Context, itemID, ownerID string) error {
					return nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "not_found_or_foreign",
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			itemsRepo := &fakeItemsRepo{}

			if tt.itemsSetUp != nil {
				tt.itemsSetUp(itemsRepo)
			}

			h := handlers.NewItemsHandler(&fakeListsRepo{}, itemsRepo)
			r := setupAuthedRouter("u-1", http.MethodDelete, "/api/items/:id", h.DeleteItem)

			w := doJSON(t, r, http.MethodDelete, "/api/items/i-1", "")

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestGetProfile(t *testing.T) {
	repo := &fakeUsersRepo{
		getByIDFn: func(ctx context.Context, id string) (user.User, error) {
			return user.User{ID: id, Name: "Ada", Email: "ada@example.com"}, nil
		},
		statsFn: func(ctx context.Context, userID string) (int, int, error) {
			return 3, 7, nil
		},
	}

	h := handlers.NewProfileHandler(repo)
	r := setupAuthedRouter("u-1", http.MethodGet, "/api/user/profile", h.GetProfile)

	w := doJSON(t, r, http.MethodGet, "/api/user/profile", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	body := w.Body.String()

	for _, want := range []string{`"listsCount":3`, `"completedItemsCount":7`, `"email":"ada@example.com"`} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %s: %s", want, body)
		}
	}
}
