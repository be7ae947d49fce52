package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/napworks/postboard-api/internal/auth"
	dom "github.com/napworks/postboard-api/internal/domain"
	"github.com/napworks/postboard-api/internal/dto"
	"github.com/napworks/postboard-api/internal/service"
	"github.com/napworks/postboard-api/internal/validation"
)

// PostHandler handles post creation and listing.
type PostHandler struct {
	posts *service.PostService
	log   *logrus.Logger
}

// NewPostHandler returns a new PostHandler.
func NewPostHandler(posts *service.PostService, log *logrus.Logger) *PostHandler {
	return &PostHandler{posts: posts, log: log}
}

// Create godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreatePostRequest  true  "Post payload"
// @Success      201   {object}  dto.CreatePostResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if errs := validation.Check(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	identity := auth.IdentityFromContext(c)
	post, err := h.posts.Create(c.Request.Context(), identity.UserID, dom.Post{
		UserID:      req.UserID,
		PostName:    req.PostName,
		Description: req.Description,
		Tags:        req.Tags,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrOwnershipMismatch) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized action"})
			return
		}
		h.log.WithError(err).Error("post creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.log.WithField("user_id", post.UserID).Info("new post created")
	c.JSON(http.StatusCreated, dto.CreatePostResponse{
		Message: "Post created successfully",
		Post:    postToResponse(post),
	})
}

// List godoc
// @Summary      List posts with optional filters
// @Tags         posts
// @Produce      json
// @Param        searchText  query  string  false  "Substring match on name or description"
// @Param        startDate   query  string  false  "Inclusive lower bound on uploadTime"
// @Param        endDate     query  string  false  "Inclusive upper bound on uploadTime"
// @Param        tags        query  string  false  "Comma-separated tag list"
// @Param        page        query  int     false  "Page number, defaults to 1"
// @Param        limit       query  int     false  "Page size, defaults to 10"
// @Success      200  {object}  dto.ListPostsResponse
// @Failure      500  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) List(c *gin.Context) {
	list, err := h.posts.List(c.Request.Context(), service.ListQuery{
		SearchText: c.Query("searchText"),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
		Tags:       c.Query("tags"),
		Page:       c.Query("page"),
		Limit:      c.Query("limit"),
	})
	if err != nil {
		h.log.WithError(err).Error("fetch posts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	h.log.Info("posts fetched with filters")
	// total is the size of the returned page, kept for API compatibility.
	c.JSON(http.StatusOK, dto.ListPostsResponse{Total: len(list), Posts: postsToResponses(list)})
}

func postToResponse(p dom.Post) dto.PostResponse {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return dto.PostResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		PostName:    p.PostName,
		Description: p.Description,
		UploadTime:  p.UploadTime,
		Tags:        tags,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func postsToResponses(list []dom.Post) []dto.PostResponse {
	out := make([]dto.PostResponse, len(list))
	for i := range list {
		out[i] = postToResponse(list[i])
	}
	return out
}
