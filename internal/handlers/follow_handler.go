package handlers

import (
	"net/http"

	"github.com/campuslink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:user_id/follow", h.FollowUser)
	g.DELETE("/users/:user_id/follow", h.UnfollowUser)
	g.GET("/users/:user_id/follow/status", h.GetFollowStatus)
	g.GET("/users/:user_id/follow/counts", h.GetFollowCounts)
	g.GET("/users/:user_id/followers", h.GetFollowers)
	g.GET("/users/:user_id/following", h.GetFollowing)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	err := h.followService.Follow(c.Request().Context(), currentUserID(c), c.Param("user_id"))
	if err != nil {
		switch err.Error() {
		case "cannot follow yourself":
			return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
		case "already following":
			return echo.NewHTTPError(http.StatusConflict, "Already following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	if err := h.followService.Unfollow(c.Request().Context(), currentUserID(c), c.Param("user_id")); err != nil {
		if err.Error() == "follow not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Not following this user")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

// GetFollowStatus reports whether the authenticated user follows user_id
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	following, err := h.followService.IsFollowing(c.Request().Context(), currentUserID(c), c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"following": following})
}

// GetFollowCounts returns follower/following totals for a user
func (h *FollowHandler) GetFollowCounts(c echo.Context) error {
	counts, err := h.followService.Counts(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, counts)
}

// GetFollowers lists the profiles following a user
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.followService.Followers(c.Request().Context(), c.Param("user_id")))
}

// GetFollowing lists the profiles a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	return c.JSON(http.StatusOK, h.followService.Following(c.Request().Context(), c.Param("user_id")))
}
