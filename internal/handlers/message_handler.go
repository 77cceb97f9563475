package handlers

import (
	"net/http"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles HTTP requests related to direct and group messaging
type MessageHandler struct {
	messageService      *services.MessageService
	conversationService *services.ConversationService
	groupService        *services.GroupService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(
	messageService *services.MessageService,
	conversationService *services.ConversationService,
	groupService *services.GroupService,
) *MessageHandler {
	return &MessageHandler{
		messageService:      messageService,
		conversationService: conversationService,
		groupService:        groupService,
	}
}

// RegisterMessageRoutes registers messaging-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/conversations", h.GetConversations)
	g.GET("/messages/:user_id", h.GetDirectMessages)
	g.POST("/messages/:user_id", h.SendDirectMessage)
	g.GET("/groups/:id/messages", h.GetGroupMessages)
	g.POST("/groups/:id/messages", h.SendGroupMessage)
}

// GetConversations returns the authenticated user's merged conversation
// list: direct partners and group rooms sorted by last-message time
func (h *MessageHandler) GetConversations(c echo.Context) error {
	conversations := h.conversationService.Conversations(c.Request().Context(), currentUserID(c))
	return c.JSON(http.StatusOK, conversations)
}

// GetDirectMessages returns the thread with another user and marks their
// messages as read
func (h *MessageHandler) GetDirectMessages(c echo.Context) error {
	messages := h.messageService.DirectMessageHistory(c.Request().Context(), currentUserID(c), c.Param("user_id"))
	return c.JSON(http.StatusOK, messages)
}

// SendDirectMessage sends a direct message to another user
func (h *MessageHandler) SendDirectMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg := &models.DirectMessage{
		SenderID:   currentUserID(c),
		ReceiverID: c.Param("user_id"),
		Content:    req.Content,
	}
	if err := h.messageService.SendDirectMessage(c.Request().Context(), msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, msg)
}

// GetGroupMessages returns a group room's history; approved members only
func (h *MessageHandler) GetGroupMessages(c echo.Context) error {
	groupID := c.Param("id")

	isMember, err := h.groupService.IsApprovedMember(c.Request().Context(), groupID, currentUserID(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isMember {
		return echo.NewHTTPError(http.StatusForbidden, "Not a member of this group")
	}

	return c.JSON(http.StatusOK, h.messageService.GroupMessageHistory(c.Request().Context(), groupID))
}

// SendGroupMessage posts a message to a group room; approved members only
func (h *MessageHandler) SendGroupMessage(c echo.Context) error {
	groupID := c.Param("id")
	userID := currentUserID(c)

	isMember, err := h.groupService.IsApprovedMember(c.Request().Context(), groupID, userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !isMember {
		return echo.NewHTTPError(http.StatusForbidden, "Not a member of this group")
	}

	var req models.SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	msg := &models.GroupMessage{
		GroupID: groupID,
		UserID:  userID,
		Content: req.Content,
	}
	if err := h.messageService.SendGroupMessage(c.Request().Context(), msg); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, msg)
}
