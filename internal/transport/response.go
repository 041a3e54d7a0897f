package transport

import (
	"errors"
	"net/http"

	"github.com/bookwise/bookwise/internal/entity"

	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope for successful replies.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for failed replies.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondError maps domain errors to HTTP statuses. Unknown errors become a
// generic 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, entity.ErrValidation):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, entity.ErrAuthenticationRequired):
		status = http.StatusUnauthorized
		message = "authentication required"
	case errors.Is(err, entity.ErrBookingNotFound),
		errors.Is(err, entity.ErrProfileNotFound),
		errors.Is(err, entity.ErrPreferencesNotFound),
		errors.Is(err, entity.ErrNotificationNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, entity.ErrInvalidTransition):
		status = http.StatusConflict
		message = err.Error()
	}

	c.JSON(status, ErrorResponse{Success: false, Error: message})
}
