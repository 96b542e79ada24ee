package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paguielng/shopisapp/internal/domain/user"
	"github.com/paguielng/shopisapp/internal/http/handlers"
	"github.com/paguielng/shopisapp/internal/security"
)

// Keep gin quiet during tests

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsersRepo struct {
	createFn     func(ctx context.Context, name, email, passwordHash string) (user.User, error)
	getByEmailFn func(ctx context.Context, email string) (user.User, error)
	getByIDFn    func(ctx context.Context, id string) (user.User, error)
	statsFn      func(ctx context.Context, userID string) (int, int, error)
}

func (f *fakeUsersRepo) Create(ctx context.Context, name, email, passwordHash string) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, name, email, passwordHash)
	}
	return user.User{}, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return user.User{}, user.ErrNotFound
}

func (f *fakeUsersRepo) StatsForUser(ctx context.Context, userID string) (int, int, error) {
	if f.statsFn != nil {
		return f.statsFn(ctx, userID)
	}
	return 0, 0, nil
}

type fakeTokenIssuer struct {
	fail bool
}

func (f *fakeTokenIssuer) GenerateToken(userID, email string) (string, error) {
	if f.fail {
		return "", errors.New("boom")
	}
	return "test-token", nil
}

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Handle(method, path, h)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeUsersRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"name":"Ada","email":"ada@example.com","password":"lovelace1"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
					if passwordHash == "lovelace1" {
						t.Error("password stored in plaintext")
					}
					return user.User{ID: uuid.NewString(), Name: name, Email: email}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "duplicate_email",
			body: `{"name":"Ada","email":"ada@example.com","password":"lovelace1"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
					return user.User{}, user.ErrEmailTaken
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing_fields",
			body:           `{"email":"ada@example.com"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "malformed_email",
			body:           `{"name":"Ada","email":"nope","password":"lovelace1"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			body: `{"name":"Ada","email":"ada@example.com","password":"lovelace1"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
					return user.User{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewAuthHandler(repo, repo, &fakeTokenIssuer{})
			r := setupRouter(http.MethodPost, "/api/auth/register", h.Register)

			w := doJSON(t, r, http.MethodPost, "/api/auth/register", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestRegisterResponseShape(t *testing.T) {
	repo := &fakeUsersRepo{
		createFn: func(ctx context.Context, name, email, passwordHash string) (user.User, error) {
			return user.User{ID: "u-1", Name: name, Email: email, PasswordHash: passwordHash}, nil
		},
	}

	h := handlers.NewAuthHandler(repo, repo, &fakeTokenIssuer{})
	r := setupRouter(http.MethodPost, "/api/auth/register", h.Register)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register",
		`{"name":"Ada","email":"ada@example.com","password":"lovelace1"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Token != "test-token" {
		t.Errorf("token = %q", resp.Token)
	}

	if _, leaked := resp.User["password_hash"]; leaked {
		t.Error("password hash leaked in response")
	}

	if resp.User["email"] != "ada@example.com" {
		t.Errorf("user.email = %v", resp.User["email"])
	}
}

func TestLogin(t *testing.T) {
	hash, err := security.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	stored := user.User{ID: "u-1", Name: "Ada", Email: "ada@example.com", PasswordHash: hash}

	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeUsersRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"email":"ada@example.com","password":"correct-horse"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return stored, nil
				}
			},
			wantStatusCode: http.StatusOK,
		},
		{
			name: "wrong_password",
			body: `{"email":"ada@example.com","password":"wrong"}`,
			repoSetUp: func(f *fakeUsersRepo) {
				f.getByEmailFn = func(ctx context.Context, email string) (user.User, error) {
					return stored, nil
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "unknown_email",
			body:           `{"email":"nobody@example.com","password":"whatever"}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing_password",
			body:           `{"email":"ada@example.com"}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUsersRepo{}

			if tt.repoSetUp != nil {
				tt.repoSetUp(repo)
			}

			h := handlers.NewAuthHandler(repo, repo, &fakeTokenIssuer{})
			r := setupRouter(http.MethodPost, "/api/auth/login", h.Login)

			w := doJSON(t, r, http.MethodPost, "/api/auth/login", tt.body)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}
