package transport

import (
	"net/http"

	"github.com/bookwise/bookwise/internal/service"
	"github.com/bookwise/bookwise/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfile(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Profile retrieved",
		Data:    profile,
	})
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid request body: " + err.Error()})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), middleware.IdentityFromContext(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Profile updated",
		Data:    profile,
	})
}

func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	prefs, err := h.profileService.GetPreferences(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Preferences retrieved",
		Data:    prefs,
	})
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var req service.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid request body: " + err.Error()})
		return
	}

	prefs, err := h.profileService.UpdatePreferences(c.Request.Context(), middleware.IdentityFromContext(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Preferences updated",
		Data:    prefs,
	})
}
