package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/paguielng/shopisapp/internal/domain/category"
	"github.com/paguielng/shopisapp/internal/observability"
)

type CategoriesRepo struct {
	db      *sql.DB
	metrics *observability.Prom
}

func NewCategoriesRepo(db *sql.DB, metrics *observability.Prom) *CategoriesRepo {
	return &CategoriesRepo{db: db, metrics: metrics}
}

func (r *CategoriesRepo) Create(ctx context.Context, ownerID string, req category.CreateCategoryRequest) (category.Category, error) {
	c := category.NewFromCreateRequest(ownerID, req)

	err := r.metrics.ObserveDB("categories.create", func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO budget_categories (id, user_id, name, budget_limit, spent, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			c.ID, c.UserID, c.Name, c.BudgetLimit, c.Spent, c.CreatedAt)
		return err
	})

	if err != nil {
		return category.Category{}, err
	}

	return c, nil
}

func (r *CategoriesRepo) ListByOwner(ctx context.Context, ownerID string) ([]category.Category, error) {
	var out []category.Category

	err := r.metrics.ObserveDB("categories.list_by_owner", func() error {
		rows, err := r.db.QueryContext(ctx,
			`SELECT id, user_id, name, budget_limit, spent, created_at
			   FROM budget_categories
			  WHERE user_id = ?
			  ORDER BY created_at ASC, id`,
			ownerID)

		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]category.Category, 0, 8)

		for rows.Next() {
			var c category.Category

			err = rows.Scan(&c.ID, &c.UserID, &c.Name, &c.BudgetLimit, &c.Spent, &c.CreatedAt)

			if err != nil {
				return err
			}

			out = append(out, c)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *CategoriesRepo) GetByID(ctx context.Context, categoryID, ownerID string) (category.Category, error) {
	var c category.Category

	err := r.metrics.ObserveDB("categories.get_by_id", func() error {
		return r.db.QueryRowContext(ctx,
			`SELECT id, user_id, name, budget_limit, spent, created_at
			   FROM budget_categories
			  WHERE id = ? AND user_id = ?`,
			categoryID, ownerID,
		).Scan(&c.ID, &c.UserID, &c.Name, &c.BudgetLimit, &c.Spent, &c.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return category.Category{}, category.ErrNotFound
		}
		return category.Category{}, err
	}

	return c, nil
}

func (r *CategoriesRepo) Update(ctx context.Context, categoryID, ownerID string, req category.UpdateCategoryRequest) (category.Category, error) {
	sets := []string{"name = ?"}
	args := []interface{}{req.Name}

	if req.BudgetLimit != nil {
		sets = append(sets, "budget_limit = ?")
		args = append(args, *req.BudgetLimit)
	}

	if req.Spent != nil {
		sets = append(sets, "spent = ?")
		args = append(args, *req.Spent)
	}

	query := fmt.Sprintf(
		`UPDATE budget_categories SET %s WHERE id = ? AND user_id = ?`,
		strings.Join(sets, ", "))

	args = append(args, categoryID, ownerID)

	var affected int64

	err := r.metrics.ObserveDB("categories.update", func() error {
		res, err := r.db.ExecContext(ctx, query, args...)

		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return category.Category{}, err
	}

	if affected == 0 {
		return category.Category{}, category.ErrNotFound
	}

	return r.GetByID(ctx, categoryID, ownerID)
}

func (r *CategoriesRepo) Delete(ctx context.Context, categoryID, ownerID string) error {
	var affected int64

	err := r.metrics.ObserveDB("categories.delete", func() error {
		res, err := r.db.ExecContext(ctx,
			`DELETE FROM budget_categories WHERE id = ? AND user_id = ?`,
			categoryID, ownerID)

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
		return category.ErrNotFound
	}

	return nil
}
