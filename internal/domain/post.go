package domain

import "time"

// Post is the domain entity for a user-owned post.
// Does not depend on Gin, Postgres or Redis.
type Post struct {
	ID          string
	UserID      string
	PostName    string
	Description string
	UploadTime  time.Time
	Tags        []string
	ImageURL    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PostFilter is the normalized query for listing posts. Zero values mean
// "unconstrained" for SearchText/StartDate/EndDate/Tags.
type PostFilter struct {
	SearchText string
	StartDate  *time.Time
	EndDate    *time.Time
	Tags       []string
	Page       int
	Limit      int
}

// Offset returns the number of matching rows to skip.
func (f PostFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}
