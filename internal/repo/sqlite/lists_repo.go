package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/paguielng/shopisapp/internal/domain/list"
	"github.com/paguielng/shopisapp/internal/observability"
)

type ListsRepo struct {
	db      *sql.DB
	metrics *observability.Prom
}

func NewListsRepo(db *sql.DB, metrics *observability.Prom) *ListsRepo {
	return &ListsRepo{db: db, metrics: metrics}
}

func (r *ListsRepo) Create(ctx context.Context, ownerID string, req list.CreateListRequest) (list.List, error) {
	l := list.NewFromCreateRequest(ownerID, req)

	err := r.metrics.ObserveDB("lists.create", func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO shopping_lists (id, user_id, name, description, total_budget, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.UserID, l.Name, l.Description, l.TotalBudget, l.CreatedAt, l.UpdatedAt)
		return err
	})

	if err != nil {
		return list.List{}, err
	}

	return l, nil
}

// ListByOwner returns the caller's lists, most recently updated first, with
// the spend and completion aggregates derived from the items in the same
// query. Nothing here reads a stored total.
func (r *ListsRepo) ListByOwner(ctx context.Context, ownerID string) ([]list.Summary, error) {
	var out []list.Summary

	err := r.metrics.ObserveDB("lists.list_by_owner", func() error {
		rows, err := r.db.QueryContext(ctx,
			`SELECT l.id, l.user_id, l.name, l.description, l.total_budget, l.created_at, l.updated_at,
			        COUNT(i.id),
			        COALESCE(SUM(CASE WHEN i.completed = 1 THEN 1 ELSE 0 END), 0),
			        COALESCE(SUM(i.price * i.quantity), 0)
			   FROM shopping_lists l
			   LEFT JOIN shopping_items i ON i.list_id = l.id
			  WHERE l.user_id = ?
			  GROUP BY l.id
			  ORDER BY l.updated_at DESC, l.id`,
			ownerID)

		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]list.Summary, 0, 8)

		for rows.Next() {
			var s list.Summary

			err = rows.Scan(
				&s.ID, &s.UserID, &s.Name, &s.Description, &s.TotalBudget, &s.CreatedAt, &s.UpdatedAt,
				&s.ItemsCount, &s.CompletedCount, &s.TotalSpent,
			)

			if err != nil {
				return err
			}

			out = append(out, s)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

// GetByID resolves a list only when the caller owns it. A list owned by
// someone else comes back as ErrNotFound, indistinguishable from a missing
// one.
func (r *ListsRepo) GetByID(ctx context.Context, listID, ownerID string) (list.List, error) {
	var l list.List

	err := r.metrics.ObserveDB("lists.get_by_id", func() error {
		return r.db.QueryRowContext(ctx,
			`SELECT id, user_id, name, description, total_budget, created_at, updated_at
			   FROM shopping_lists
			  WHERE id = ? AND user_id = ?`,
			listID, ownerID,
		).Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.TotalBudget, &l.CreatedAt, &l.UpdatedAt)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return list.List{}, list.ErrNotFound
		}
		return list.List{}, err
	}

	return l, nil
}

func (r *ListsRepo) Update(ctx context.Context, listID, ownerID string, req list.UpdateListRequest) (list.List, error) {
	now := time.Now().UTC()

	var affected int64

	err := r.metrics.ObserveDB("lists.update", func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE shopping_lists
			    SET name = ?, description = ?, total_budget = ?, updated_at = ?
			  WHERE id = ? AND user_id = ?`,
			req.Name, req.Description, req.Budget, now, listID, ownerID)

		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return list.List{}, err
	}

	if affected == 0 {
		return list.List{}, list.ErrNotFound
	}

	return r.GetByID(ctx, listID, ownerID)
}

// Delete removes a list and all of its items in one transaction. The item
// sweep is explicit rather than trusting the FK cascade, so no orphan can
// survive even on a connection without foreign keys enabled.
func (r *ListsRepo) Delete(ctx context.Context, listID, ownerID string) error {
	return r.metrics.ObserveDB("lists.delete", func() error {
		tx, err := r.db.BeginTx(ctx, nil)

		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		var id string
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM shopping_lists WHERE id = ? AND user_id = ?`,
			listID, ownerID,
		).Scan(&id)

		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return list.ErrNotFound
			}
			return err
		}

		if _, err = tx.ExecContext(ctx, `DELETE FROM shopping_items WHERE list_id = ?`, listID); err != nil {
			return err
		}

		if _, err = tx.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = ?`, listID); err != nil {
			return err
		}

		return tx.Commit()
	})
}
