package handlers

import (
	"net/http"
	"strconv"

	"github.com/campuslink/backend/internal/models"
	"github.com/campuslink/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler handles HTTP requests related to profiles
type ProfileHandler struct {
	profileService    *services.ProfileService
	suggestionService *services.SuggestionService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *services.ProfileService, suggestionService *services.SuggestionService) *ProfileHandler {
	return &ProfileHandler{
		profileService:    profileService,
		suggestionService: suggestionService,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.POST("/profiles", h.CreateProfile)
	g.GET("/profiles/me", h.GetMyProfile)
	g.PUT("/profiles/me", h.UpdateMyProfile)
	g.GET("/profiles/:user_id", h.GetProfileByUserID)
	g.GET("/profiles", h.DiscoverProfiles)
	g.GET("/users/suggested", h.GetSuggestedUsers)
}

// CreateProfile creates the authenticated user's profile
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	userID := currentUserID(c)

	var req models.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if existing := h.profileService.GetProfile(c.Request().Context(), userID); existing != nil {
		return echo.NewHTTPError(http.StatusConflict, "Profile already exists")
	}

	profile := &models.Profile{
		UserID:           userID,
		Name:             req.Name,
		Bio:              req.Bio,
		Interests:        req.Interests,
		SubInterests:     req.SubInterests,
		SkillLevel:       req.SkillLevel,
		City:             req.City,
		LookingFor:       req.LookingFor,
		StudentType:      req.StudentType,
		Department:       req.Department,
		Year:             req.Year,
		AvatarURL:        req.AvatarURL,
		ProfileCompleted: true,
	}
	if err := h.profileService.CreateProfile(c.Request().Context(), profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, profile)
}

// GetMyProfile retrieves the authenticated user's profile
func (h *ProfileHandler) GetMyProfile(c echo.Context) error {
	profile := h.profileService.GetProfile(c.Request().Context(), currentUserID(c))
	if profile == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}
	return c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile applies a partial update to the authenticated user's profile
func (h *ProfileHandler) UpdateMyProfile(c echo.Context) error {
	userID := currentUserID(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile := h.profileService.GetProfile(c.Request().Context(), userID)
	if profile == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}

	if err := h.profileService.UpdateProfile(c.Request().Context(), profile, &req); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// GetProfileByUserID retrieves any user's profile
func (h *ProfileHandler) GetProfileByUserID(c echo.Context) error {
	profile := h.profileService.GetProfile(c.Request().Context(), c.Param("user_id"))
	if profile == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}
	return c.JSON(http.StatusOK, profile)
}

// DiscoverProfiles lists completed profiles with optional filters
func (h *ProfileHandler) DiscoverProfiles(c echo.Context) error {
	limit := parseLimit(c.QueryParam("limit"), 50)
	profiles := h.profileService.DiscoverProfiles(
		c.Request().Context(),
		currentUserID(c),
		c.QueryParam("skill_level"),
		c.QueryParam("interest"),
		limit,
	)
	return c.JSON(http.StatusOK, profiles)
}

// GetSuggestedUsers returns "people you may like" for the authenticated user
func (h *ProfileHandler) GetSuggestedUsers(c echo.Context) error {
	userID := currentUserID(c)

	profile := h.profileService.GetProfile(c.Request().Context(), userID)
	if profile == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}

	maxResults := int(parseLimit(c.QueryParam("limit"), 10))
	suggested := h.suggestionService.SuggestedUsers(c.Request().Context(), userID, profile.Interests, maxResults)
	return c.JSON(http.StatusOK, suggested)
}

// parseLimit parses a limit query parameter, falling back to def
func parseLimit(raw string, def int64) int64 {
	if raw == "" {
		return def
	}
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}
