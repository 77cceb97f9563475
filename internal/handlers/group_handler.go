package handlers

import (
	"net/http"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// GroupHandler handles HTTP requests related to groups and memberships
type GroupHandler struct {
	groupService *services.GroupService
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// RegisterGroupRoutes registers group-related routes
func (h *GroupHandler) RegisterGroupRoutes(g *echo.Group) {
	g.POST("/groups", h.CreateGroup)
	g.GET("/groups", h.ListGroups)
	g.GET("/groups/:id", h.GetGroup)
	g.GET("/groups/mine", h.GetMyGroupIDs)
	g.POST("/groups/:id/join", h.JoinGroup)
	g.POST("/groups/:id/leave", h.LeaveGroup)
	g.GET("/groups/:id/members", h.GetMembers)
	g.POST("/groups/:id/members/:user_id/approve", h.ApproveMember)
	g.POST("/groups/:id/members/:user_id/reject", h.RejectMember)
}

// CreateGroup creates a group with the authenticated user as admin
func (h *GroupHandler) CreateGroup(c echo.Context) error {
	var req models.CreateGroupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	group := &models.Group{
		Name:        req.Name,
		Description: req.Description,
		Interest:    req.Interest,
		SubInterest: req.SubInterest,
		IsOpen:      req.IsOpen,
		CreatorID:   currentUserID(c),
	}
	if err := h.groupService.CreateGroup(c.Request().Context(), group); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, group)
}

// ListGroups lists groups by member count with optional interest filters
func (h *GroupHandler) ListGroups(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"), 50)
	groups := h.groupService.ListGroups(
		c.Request().Context(),
		c.QueryParams()["interest"],
		c.QueryParams()["sub_interest"],
		limit,
	)
	return c.JSON(http.StatusOK, groups)
}

// GetGroup retrieves a single group
func (h *GroupHandler) GetGroup(c echo.Context) error {
	group, err := h.groupService.GetGroup(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if group == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Group not found")
	}
	return c.JSON(http.StatusOK, group)
}

// GetMyGroupIDs lists the ids of the groups the authenticated user is an
// approved member of; clients use these to pick websocket room topics
func (h *GroupHandler) GetMyGroupIDs(c echo.Context) error {
	ids, err := h.groupService.MembershipIDs(c.Request().Context(), currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(http.StatusOK, echo.Map{"group_ids": ids})
}

// JoinGroup joins the authenticated user to a group; open groups approve
// immediately, closed groups create a pending request
func (h *GroupHandler) JoinGroup(c echo.Context) error {
	member, err := h.groupService.Join(c.Request().Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		switch err.Error() {
		case "group not found":
			return echo.NewHTTPError(http.StatusNotFound, "Group not found")
		case "already a member or pending":
			return echo.NewHTTPError(http.StatusConflict, "Already a member or pending")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, member)
}

// LeaveGroup removes the authenticated user from a group
func (h *GroupHandler) LeaveGroup(c echo.Context) error {
	if err := h.groupService.Leave(c.Request().Context(), c.Param("id"), currentUserID(c)); err != nil {
		if err.Error() == "membership not found" {
			return echo.NewHTTPError(http.StatusNotFound, "Not a member of this group")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

// GetMembers lists a group's members; admins may pass status=pending to see
// join requests
func (h *GroupHandler) GetMembers(c echo.Context) error {
	groupID := c.Param("id")
	status := c.QueryParam("status")
	if status == "" {
		status = models.MemberStatusApproved
	}

	if status == models.MemberStatusPending {
		isAdmin, err := h.groupService.IsAdmin(c.Request().Context(), groupID, currentUserID(c))
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if !isAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "Only admins can view pending requests")
		}
	}

	return c.JSON(http.StatusOK, h.groupService.Members(c.Request().Context(), groupID, status))
}

// ApproveMember approves a pending join request (admins only)
func (h *GroupHandler) ApproveMember(c echo.Context) error {
	groupID := c.Param("id")

	isAdmin, err := h.groupService.IsAdmin(c.Request().Context(), groupID, currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Only admins can approve requests")
	}

	if err := h.groupService.Approve(c.Request().Context(), groupID, c.Param("user_id")); err != nil {
		switch err.Error() {
		case "membership not found":
			return echo.NewHTTPError(http.StatusNotFound, "Join request not found")
		case "membership is not pending":
			return echo.NewHTTPError(http.StatusConflict, "Membership is not pending")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"approved": true})
}

// RejectMember rejects a pending join request (admins only)
func (h *GroupHandler) RejectMember(c echo.Context) error {
	groupID := c.Param("id")

	isAdmin, err := h.groupService.IsAdmin(c.Request().Context(), groupID, currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isAdmin {
		return echo.NewHTTPError(http.StatusForbidden, "Only admins can reject requests")
	}

	if err := h.groupService.Reject(c.Request().Context(), groupID, c.Param("user_id")); err != nil {
		switch err.Error() {
		case "membership not found":
			return echo.NewHTTPError(http.StatusNotFound, "Join request not found")
		case "membership is not pending":
			return echo.NewHTTPError(http.StatusConflict, "Membership is not pending")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"rejected": true})
}
