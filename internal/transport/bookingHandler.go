package transport

import (
	"net/http"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
	"github.com/bookwise/bookwise/internal/service"
	"github.com/bookwise/bookwise/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	bookingService service.BookingService
	paymentService service.PaymentService
}

func NewBookingHandler(bookingService service.BookingService, paymentService service.PaymentService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		paymentService: paymentService,
	}
}

// CreateBookingHTTPRequest is the wire form of booking creation: the client
// picks a catalog entry, the server copies the snapshot.
type CreateBookingHTTPRequest struct {
	ServiceID   int64     `json:"service_id" binding:"required"`
	BookingDate time.Time `json:"booking_date" binding:"required"`
	Notes       string    `json:"notes"`
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req CreateBookingHTTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid request body: " + err.Error()})
		return
	}

	offering := entity.ServiceByID(req.ServiceID)
	if offering == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Unknown service"})
		return
	}

	price := offering.Price
	booking, err := h.bookingService.Create(c.Request.Context(), middleware.IdentityFromContext(c), &service.CreateBookingRequest{
		ServiceName:        offering.Name,
		ServiceDescription: offering.Description,
		BookingDate:        req.BookingDate,
		DurationMinutes:    offering.DurationMinutes,
		TotalAmount:        &price,
		Notes:              req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, SuccessResponse{
		Success: true,
		Message: "Booking created",
		Data:    booking,
	})
}

func (h *BookingHandler) GetUserBookings(c *gin.Context) {
	bookings, err := h.bookingService.GetUserBookings(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Bookings retrieved",
		Data:    bookings,
	})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booking retrieved",
		Data:    booking,
	})
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.bookingService.Cancel(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Booking cancelled",
	})
}

// PayBooking runs the simulated payment and confirms the booking.
func (h *BookingHandler) PayBooking(c *gin.Context) {
	booking, err := h.paymentService.ProcessPayment(c.Request.Context(), middleware.IdentityFromContext(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Payment processed",
		Data:    booking,
	})
}

// GetServices returns the static catalog. Public, no auth.
func (h *BookingHandler) GetServices(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{
		Success: true,
		Message: "Services retrieved",
		Data:    entity.ServiceCatalog(),
	})
}
