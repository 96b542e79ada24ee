package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/paguielng/shopisapp/internal/domain/item"
	"github.com/paguielng/shopisapp/internal/observability"
)

type ItemsRepo struct {
	db      *sql.DB
	metrics *observability.Prom
}

func NewItemsRepo(db *sql.DB, metrics *observability.Prom) *ItemsRepo {
	return &ItemsRepo{db: db, metrics: metrics}
}

// Create inserts an item under a list. The caller has already resolved the
// list through ListsRepo.GetByID, which is where ownership is enforced.
func (r *ItemsRepo) Create(ctx context.Context, listID string, req item.CreateItemRequest) (item.Item, error) {
	it := item.NewFromCreateRequest(listID, req)

	err := r.metrics.ObserveDB("items.create", func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO shopping_items (id, list_id, name, quantity, price, category, completed, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			it.ID, it.ListID, it.Name, it.Quantity, it.Price, it.Category, it.Completed, it.CreatedAt)
		return err
	})

	if err != nil {
		return item.Item{}, err
	}

	return it, nil
}

func (r *ItemsRepo) ListByList(ctx context.Context, listID string) ([]item.Item, error) {
	var out []item.Item

	err := r.metrics.ObserveDB("items.list_by_list", func() error {
		rows, err := r.db.QueryContext(ctx,
			`SELECT id, list_id, name, quantity, price, category, completed, created_at
			   FROM shopping_items
			  WHERE list_id = ?
			  ORDER BY created_at ASC, id`,
			listID)

		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]item.Item, 0, 16)

		for rows.Next() {
			var it item.Item

			err = rows.Scan(&it.ID, &it.ListID, &it.Name, &it.Quantity, &it.Price, &it.Category, &it.Completed, &it.CreatedAt)

			if err != nil {
				return err
			}

			out = append(out, it)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// Update applies the non-nil fields of the request. The mutation is scoped
// through the parent list's owner, so a foreign item fails exactly like a
// missing one.
func (r *ItemsRepo) Update(ctx context.Context, itemID, ownerID string, req item.UpdateItemRequest) error {
	sets := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)

	if req.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, *req.Completed)
	}

	if req.Quantity != nil {
		sets = append(sets, "quantity = ?")
		args = append(args, *req.Quantity)
	}

	if req.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *req.Price)
	}

	if len(sets) == 0 {
		// no fields to change; still report whether the item is visible
		return r.exists(ctx, itemID, ownerID)
	}

	query := fmt.Sprintf(
		`UPDATE shopping_items SET %s
		  WHERE id = ?
		    AND list_id IN (SELECT id FROM shopping_lists WHERE user_id = ?)`,
		strings.Join(sets, ", "))

	args = append(args, itemID, ownerID)

	var affected int64

	err := r.metrics.ObserveDB("items.update", func() error {
		res, err := r.db.ExecContext(ctx, query, args...)

		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return item.ErrNotFound
	}

	return nil
}

func (r *ItemsRepo) Delete(ctx context.Context, itemID, ownerID string) error {
	var affected int64

	err := r.metrics.ObserveDB("items.delete", func() error {
		res, err := r.db.ExecContext(ctx,
			`DELETE FROM shopping_items
			  WHERE id = ?
			    AND list_id IN (SELECT id FROM shopping_lists WHERE user_id = ?)`,
			itemID, ownerID)

		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return err
	}

	if affected == 0 {
		return item.ErrNotFound
	}

	return nil
}

func (r *ItemsRepo) exists(ctx context.Context, itemID, ownerID string) error {
	var one int

	err := r.metrics.ObserveDB("items.exists", func() error {
		return r.db.QueryRowContext(ctx,
			`SELECT 1 FROM shopping_items si
			   JOIN shopping_lists sl ON si.list_id = sl.id
			  WHERE si.id = ? AND sl.user_id = ?`,
			itemID, ownerID,
		).Scan(&one)
	})

	if err != nil {
		if err == sql.ErrNoRows {
			return item.ErrNotFound
		}
		return err
	}

	return nil
}
