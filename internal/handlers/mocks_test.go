package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/napworks/postboard-api/internal/auth"
	dom "github.com/napworks/postboard-api/internal/domain"
	"github.com/napworks/postboard-api/internal/service"
)

type mockUserRepo struct {
	createFunc     func(ctx context.Context, u dom.User) (dom.User, error)
	getByEmailFunc func(ctx context.Context, email string) (dom.User, error)
	getByIDFunc    func(ctx context.Context, id string) (dom.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u dom.User) (dom.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (dom.User, error) {
	if m.getByEmailFunc != nil {
		return m.getByEmailFunc(ctx, email)
	}
	return dom.User{}, pgx.ErrNoRows
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (dom.User, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return dom.User{}, pgx.ErrNoRows
}

type mockPostRepo struct {
	createFunc func(ctx context.Context, p dom.Post) (dom.Post, error)
	findFunc   func(ctx context.Context, f dom.PostFilter) ([]dom.Post, error)

	created []dom.Post
	filters []dom.PostFilter
}

func (m *mockPostRepo) Create(ctx context.Context, p dom.Post) (dom.Post, error) {
	m.created = append(m.created, p)
	if m.createFunc != nil {
		return m.createFunc(ctx, p)
	}
	return p, nil
}

func (m *mockPostRepo) Find(ctx context.Context, f dom.PostFilter) ([]dom.Post, error) {
	m.filters = append(m.filters, f)
	if m.findFunc != nil {
		return m.findFunc(ctx, f)
	}
	return nil, nil
}

// newTestRouter wires the real services and middleware over mock repos, with
// the same route table the app registers.
func newTestRouter(userRepo *mockUserRepo, postRepo *mockPostRepo) (*gin.Engine, *auth.TokenIssuer) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(io.Discard)

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	r := gin.New()
	api := r.Group("/api")

	authHandler := NewAuthHandler(service.NewUserService(userRepo, tokens), log)
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.GET("/profile", auth.RequireAuth(tokens), authHandler.Profile)

	postHandler := NewPostHandler(service.NewPostService(postRepo), log)
	api.GET("/posts", postHandler.List)
	api.POST("/posts", auth.RequireAuth(tokens), postHandler.Create)

	return r, tokens
}
