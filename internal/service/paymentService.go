package service

import (
	"context"
	"time"

	"github.com/bookwise/bookwise/internal/entity"

	"github.com/sirupsen/logrus"
)

type paymentService struct {
	bookings        BookingService
	processingDelay time.Duration
}

// NewPaymentService creates the simulated payment processor. There is no
// gateway behind it; payments always succeed after the configured delay.
func NewPaymentService(bookings BookingService, processingDelay time.Duration) PaymentService {
	return &paymentService{
		bookings:        bookings,
		processingDelay: processingDelay,
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, actor *entity.Identity, bookingID string) (*entity.Booking, error) {
	if actor == nil || actor.UserID == "" {
		return nil, entity.ErrAuthenticationRequired
	}

	// Ownership check before any work; foreign bookings read as absent.
	booking, err := s.bookings.GetBooking(ctx, actor, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != entity.BookingStatusPending {
		return nil, entity.ErrInvalidTransition
	}

	if s.processingDelay > 0 {
		timer := time.NewTimer(s.processingDelay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if err := s.bookings.Confirm(ctx, bookingID); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"user_id":    actor.UserID,
	}).Info("Payment processed, booking confirmed")

	return s.bookings.GetBooking(ctx, actor, bookingID)
}
