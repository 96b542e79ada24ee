package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paguielng/shopisapp/internal/domain/user"
	"github.com/paguielng/shopisapp/internal/observability"
)

type UsersRepo struct {
	db      *sql.DB
	metrics *observability.Prom
}

func NewUsersRepo(db *sql.DB, metrics *observability.Prom) *UsersRepo {
	return &UsersRepo{db: db, metrics: metrics}
}

func (r *UsersRepo) Create(ctx context.Context, name, email, passwordHash string) (user.User, error) {
	u := user.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	err := r.metrics.ObserveDB("users.create", func() error {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO users (id, name, email, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt)
		return err
	})

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.metrics.ObserveDB("users.get_by_email", func() error {
		return r.db.QueryRowContext(ctx,
			`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`,
			email,
		).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.metrics.ObserveDB("users.get_by_id", func() error {
		return r.db.QueryRowContext(ctx,
			`SELECT id, name, email, password_hash, created_at FROM users WHERE id = ?`,
			id,
		).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt)
	})

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

// StatsForUser derives the profile counters. They are recomputed on every
// call rather than kept as columns.
func (r *UsersRepo) StatsForUser(ctx context.Context, userID string) (listsCount, completedItems int, err error) {
	err = r.metrics.ObserveDB("users.stats", func() error {
		err := r.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM shopping_lists WHERE user_id = ?`, userID,
		).Scan(&listsCount)

		if err != nil {
			return err
		}

		return r.db.QueryRowContext(ctx,
			`SELECT COUNT(*)
			   FROM shopping_items si
			   JOIN shopping_lists sl ON si.list_id = sl.id
			  WHERE sl.user_id = ? AND si.completed = 1`, userID,
		).Scan(&completedItems)
	})

	return listsCount, completedItems, err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
