package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/napworks/postboard-api/internal/auth"
	dom "github.com/napworks/postboard-api/internal/domain"
	"github.com/napworks/postboard-api/internal/repo"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already in use")
	ErrNotFound           = errors.New("not found")
)

// UserService handles signup, login and profile lookup.
type UserService struct {
	repo   repo.UserRepo
	tokens *auth.TokenIssuer
}

// NewUserService returns a new UserService.
func NewUserService(repo repo.UserRepo, tokens *auth.TokenIssuer) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

// Signup registers a new user and returns a signed token for it. The email
// check is exact-match; a concurrent signup losing the race on the unique
// index also comes back as ErrEmailTaken.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (string, error) {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	u, err := s.repo.Create(ctx, dom.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	return s.tokens.Issue(u.ID, u.Email)
}

// Login checks credentials and returns a signed token. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Issue(u.ID, u.Email)
}

// Profile returns the user for an authenticated identity.
func (s *UserService) Profile(ctx context.Context, userID string) (dom.User, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}
