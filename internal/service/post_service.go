package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	dom "github.com/napworks/postboard-api/internal/domain"
	"github.com/napworks/postboard-api/internal/repo"
)

var ErrOwnershipMismatch = errors.New("post user does not match authenticated user")

const (
	defaultPage  = 1
	defaultLimit = 10
)

// PostService handles post creation and filtered listing.
type PostService struct {
	repo repo.PostRepo
}

// NewPostService returns a new PostService.
func NewPostService(repo repo.PostRepo) *PostService {
	return &PostService{repo: repo}
}

// Create persists a post on behalf of callerID. The claimed owner must equal
// the authenticated caller; UploadTime defaults to now if unset.
func (s *PostService) Create(ctx context.Context, callerID string, p dom.Post) (dom.Post, error) {
	if p.UserID != callerID {
		return dom.Post{}, ErrOwnershipMismatch
	}
	p.ID = uuid.NewString()
	if p.UploadTime.IsZero() {
		p.UploadTime = time.Now()
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return s.repo.Create(ctx, p)
}

// ListQuery carries the raw, un-normalized query parameters of GET /api/posts.
type ListQuery struct {
	SearchText string
	StartDate  string
	EndDate    string
	Tags       string
	Page       string
	Limit      string
}

// List normalizes the query and returns one page of matching posts.
func (s *PostService) List(ctx context.Context, q ListQuery) ([]dom.Post, error) {
	return s.repo.Find(ctx, buildFilter(q))
}

// buildFilter turns raw query parameters into a PostFilter. Page and limit
// fall back to 1 and 10 when absent, non-numeric or below 1; tags are split
// on commas, trimmed, empties dropped; unparseable dates leave that bound
// unconstrained.
func buildFilter(q ListQuery) dom.PostFilter {
	f := dom.PostFilter{
		SearchText: q.SearchText,
		Page:       parsePositive(q.Page, defaultPage),
		Limit:      parsePositive(q.Limit, defaultLimit),
		StartDate:  parseDate(q.StartDate),
		EndDate:    parseDate(q.EndDate),
	}
	if q.Tags != "" {
		for _, tag := range strings.Split(q.Tags, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	return f
}

func parsePositive(raw string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return def
	}
	return n
}

func parseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}
