package dto

import "time"

// CreatePostRequest is the JSON body for POST /api/posts.
type CreatePostRequest struct {
	UserID      string   `json:"userId" validate:"required"`
	PostName    string   `json:"postName" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	ImageURL    string   `json:"imageUrl" validate:"omitempty"`
}

type PostResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PostName    string    `json:"postName"`
	Description string    `json:"description"`
	UploadTime  time.Time `json:"uploadTime"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CreatePostResponse struct {
	Message string       `json:"message"`
	Post    PostResponse `json:"post"`
}

// ListPostsResponse mirrors the historical API: Total is the size of the
// returned page, not the count of all matching posts.
type ListPostsResponse struct {
	Total int            `json:"total"`
	Posts []PostResponse `json:"posts"`
}
