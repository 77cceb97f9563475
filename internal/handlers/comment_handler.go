package handlers

import (
	"net/http"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments and replies
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentThread)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.POST("/comments/:id/likes", h.LikeComment)
	g.DELETE("/comments/:id/likes", h.UnlikeComment)
	g.GET("/comments/:id/likes/status", h.GetCommentLikeStatus)
}

// CreateComment creates a comment on a post, or a reply when
// parent_comment_id is set
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment := &models.Comment{
		PostID:          c.Param("post_id"),
		UserID:          currentUserID(c),
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}
	if err := h.commentService.CreateComment(c.Request().Context(), comment); err != nil {
		switch err.Error() {
		case "post not found":
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		case "parent comment not found":
			return echo.NewHTTPError(http.StatusNotFound, "Parent comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, comment)
}

// GetCommentThread retrieves a post's comments assembled into a reply tree
func (h *CommentHandler) GetCommentThread(c echo.Context) error {
	thread := h.commentService.CommentThread(c.Request().Context(), c.Param("post_id"))
	return c.JSON(http.StatusOK, thread)
}

// DeleteComment deletes a comment and its whole reply subtree
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	if err := h.commentService.DeleteComment(c.Request().Context(), c.Param("id")); err != nil {
		if err.Error() == "comment not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// LikeComment handles liking a comment
func (h *CommentHandler) LikeComment(c echo.Context) error {
	err := h.commentService.LikeComment(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		switch err.Error() {
		case "comment not found":
			return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
		case "comment already liked":
			return echo.NewHTTPError(http.StatusConflict, "Comment already liked by this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, echo.Map{"liked": true})
}

// UnlikeComment handles unliking a comment
func (h *CommentHandler) UnlikeComment(c echo.Context) error {
	if err := h.commentService.UnlikeComment(c.Request().Context(), c.Param("id"), currentUserID(c)); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCommentLikeStatus checks if the authenticated user has liked a comment
func (h *CommentHandler) GetCommentLikeStatus(c echo.Context) error {
	commentID := c.Param("id")
	liked, err := h.commentService.HasLiked(c.Request().Context(), commentID, currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"comment_id": commentID, "has_liked": liked})
}
