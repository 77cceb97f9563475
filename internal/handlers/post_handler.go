package handlers

import (
	"net/http"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:user_id/posts", h.GetPostsByUser)
}

// CreatePost creates a new post authored by the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := currentUserID(c)

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	post := &models.Post{
		UserID:           userID,
		Content:          req.Content,
		PostType:         req.PostType,
		InterestCategory: req.InterestCategory,
		SubInterest:      req.SubInterest,
	}
	if err := h.postService.CreatePost(c.Request().Context(), post); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, post)
}

// GetFeed lists the newest posts, filtered by the caller's interests when
// provided as repeated interest/sub_interest query params
func (h *PostHandler) GetFeed(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"), 50)
	posts := h.postService.Feed(
		c.Request().Context(),
		c.QueryParams()["interest"],
		c.QueryParams()["sub_interest"],
		limit,
	)
	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a single post
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postService.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes the authenticated user's own post
func (h *PostHandler) DeletePost(c echo.Context) error {
	postID := c.Param("id")

	post, err := h.postService.GetPost(c.Request().Context(), postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if post == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	}
	if post.UserID != currentUserID(c) {
		return echo.NewHTTPError(http.StatusForbidden, "Not the post author")
	}

	if err := h.postService.DeletePost(c.Request().Context(), postID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPostsByUser lists a user's posts, newest first
func (h *PostHandler) GetPostsByUser(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"), 10)
	posts := h.postService.PostsByUser(c.Request().Context(), c.Param("user_id"), limit)
	return c.JSON(http.StatusOK, posts)
}
