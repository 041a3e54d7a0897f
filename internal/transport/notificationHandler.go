package transport

import (
	"net/http"

	"github.com/bookwise/bookwise/internal/service"
	"github.com/bookwise/bookwise/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// GetUserNotifications returns the caller's dispatch history, newest first.
func (h *NotificationHandler) GetUserNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetUserNotifications(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Notifications retrieved",
		Data:    notifications,
	})
}

// SendPromotionRequest targets one user with a promotional message.
type SendPromotionRequest struct {
	UserID  string `json:"user_id" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// SendPromotion fires a promotional_offer through the preference gate. Users
// with promotions disabled silently receive nothing.
func (h *NotificationHandler) SendPromotion(c *gin.Context) {
	var req SendPromotionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid request body: " + err.Error()})
		return
	}

	if err := h.notificationService.SendPromotion(c.Request.Context(), req.UserID, req.Subject, req.Message); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, SuccessResponse{
		Success: true,
		Message: "Promotion accepted",
	})
}
