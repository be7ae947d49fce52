package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napworks/postboard-api/internal/auth"
	dom "github.com/napworks/postboard-api/internal/domain"
)

func doJSON(r http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestSignupHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r, tokens := newTestRouter(&mockUserRepo{}, &mockPostRepo{})

		w := doJSON(r, http.MethodPost, "/api/signup", `{"name":"A","email":"a@x.com","password":"secret1"}`, "")
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Token   string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Signup successful", resp.Message)

		identity, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", identity.Email)
	})

	t.Run("validation errors", func(t *testing.T) {
		r, _ := newTestRouter(&mockUserRepo{}, &mockPostRepo{})

		w := doJSON(r, http.MethodPost, "/api/signup", `{"name":"","email":"bad","password":"123"}`, "")
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Errors  []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "Validation failed. Please check the provided data.", resp.Message)
		require.Len(t, resp.Errors, 3)
		assert.Equal(t, "name", resp.Errors[0].Field)
		assert.Equal(t, "email", resp.Errors[1].Field)
		assert.Equal(t, "password", resp.Errors[2].Field)
	})

	t.Run("duplicate email", func(t *testing.T) {
		userRepo := &mockUserRepo{
			getByEmailFunc: func(ctx context.Context, email string) (dom.User, error) {
				return dom.User{ID: "existing", Email: email}, nil
			},
		}
		r, _ := newTestRouter(userRepo, &mockPostRepo{})

		w := doJSON(r, http.MethodPost, "/api/signup", `{"name":"A","email":"a@x.com","password":"secret1"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Email already in use"}`, w.Body.String())
	})
}

func TestLoginHandler(t *testing.T) {
	hash, err := auth.HashPassword("secret1")
	require.NoError(t, err)
	userRepo := &mockUserRepo{
		getByEmailFunc: func(ctx context.Context, email string) (dom.User, error) {
			if email == "a@x.com" {
				return dom.User{ID: "user-123", Email: email, PasswordHash: hash}, nil
			}
			return dom.User{}, pgx.ErrNoRows
		},
	}

	t.Run("success", func(t *testing.T) {
		r, tokens := newTestRouter(userRepo, &mockPostRepo{})

		w := doJSON(r, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"secret1"}`, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
			Token   string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Login successful", resp.Message)

		identity, err := tokens.Verify(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", identity.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		r, _ := newTestRouter(userRepo, &mockPostRepo{})

		w := doJSON(r, http.MethodPost, "/api/login", `{"email":"a@x.com","password":"wrong"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Invalid email or password"}`, w.Body.String())
	})

	t.Run("unknown email gets the same message", func(t *testing.T) {
		r, _ := newTestRouter(userRepo, &mockPostRepo{})

		w := doJSON(r, http.MethodPost, "/api/login", `{"email":"nobody@x.com","password":"secret1"}`, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"Invalid email or password"}`, w.Body.String())
	})
}

func TestProfileHandler(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	userRepo := &mockUserRepo{
		getByIDFunc: func(ctx context.Context, id string) (dom.User, error) {
			if id == "user-123" {
				return dom.User{
					ID: id, Name: "A", Email: "a@x.com",
					PasswordHash: "$2a$10$secret", CreatedAt: created, UpdatedAt: created,
				}, nil
			}
			return dom.User{}, pgx.ErrNoRows
		},
	}

	t.Run("requires a token", func(t *testing.T) {
		r, _ := newTestRouter(userRepo, &mockPostRepo{})

		w := doJSON(r, http.MethodGet, "/api/profile", "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("success omits the password hash", func(t *testing.T) {
		r, tokens := newTestRouter(userRepo, &mockPostRepo{})
		token, err := tokens.Issue("user-123", "a@x.com")
		require.NoError(t, err)

		w := doJSON(r, http.MethodGet, "/api/profile", "", token)
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "password")
		assert.NotContains(t, w.Body.String(), "$2a$10$secret")

		var resp struct {
			Success bool `json:"success"`
			User    struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "user-123", resp.User.ID)
		assert.Equal(t, "a@x.com", resp.User.Email)
	})

	t.Run("not found", func(t *testing.T) {
		r, tokens := newTestRouter(userRepo, &mockPostRepo{})
		token, err := tokens.Issue("ghost", "g@x.com")
		require.NoError(t, err)

		w := doJSON(r, http.MethodGet, "/api/profile", "", token)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"success":false,"message":"User not found"}`, w.Body.String())
	})
}
