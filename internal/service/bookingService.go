package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/bookwise/bookwise/internal/database/postgres"
	"github.com/bookwise/bookwise/internal/entity"

	"github.com/sirupsen/logrus"
)

type bookingService struct {
	bookingRepo   repository.BookingRepository
	notifications NotificationService
}

// NewBookingService creates a new BookingService instance
func NewBookingService(bookingRepo repository.BookingRepository, notifications NotificationService) BookingService {
	return &bookingService{
		bookingRepo:   bookingRepo,
		notifications: notifications,
	}
}

// Create commits the user to a service at a slot. The booking starts in
// pending; a booking_confirmation intent is enqueued subject to the gate.
func (s *bookingService) Create(ctx context.Context, actor *entity.Identity, req *CreateBookingRequest) (*entity.Booking, error) {
	if actor == nil || actor.UserID == "" {
		return nil, entity.ErrAuthenticationRequired
	}

	if strings.TrimSpace(req.ServiceName) == "" {
		return nil, fmt.Errorf("%w: service name is required", entity.ErrValidation)
	}
	if req.DurationMinutes < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", entity.ErrValidation)
	}
	if req.BookingDate.Before(time.Now()) {
		return nil, fmt.Errorf("%w: booking date cannot be in the past", entity.ErrValidation)
	}
	if req.TotalAmount != nil && *req.TotalAmount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", entity.ErrValidation)
	}

	booking := &entity.Booking{
		UserID:             actor.UserID,
		ServiceName:        req.ServiceName,
		ServiceDescription: req.ServiceDescription,
		BookingDate:        req.BookingDate,
		DurationMinutes:    req.DurationMinutes,
		TotalAmount:        req.TotalAmount,
		Notes:              req.Notes,
		Status:             entity.BookingStatusPending,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
		"service":    booking.ServiceName,
	}).Info("Booking created")

	// Best-effort: a notification problem never fails the booking.
	if err := s.notifications.NotifyBookingEvent(ctx, booking, entity.EventBookingConfirmation); err != nil {
		logrus.Errorf("Failed to enqueue confirmation for booking %s: %v", booking.ID, err)
	}

	return booking, nil
}

// Cancel transitions a pending or confirmed booking to cancelled. Only the
// owner may cancel; a foreign booking id reports not-found rather than
// revealing its existence.
func (s *bookingService) Cancel(ctx context.Context, actor *entity.Identity, bookingID string) error {
	if actor == nil || actor.UserID == "" {
		return entity.ErrAuthenticationRequired
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.UserID != actor.UserID {
		return entity.ErrBookingNotFound
	}

	if err := s.transition(ctx, booking, entity.BookingStatusCancelled); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
	}).Info("Booking cancelled")

	booking.Status = entity.BookingStatusCancelled
	if err := s.notifications.NotifyBookingEvent(ctx, booking, entity.EventBookingCancellation); err != nil {
		logrus.Errorf("Failed to enqueue cancellation notice for booking %s: %v", booking.ID, err)
	}

	return nil
}

// Confirm moves a pending booking to confirmed after payment completes. The
// confirmation notice was already captured at create time, so no further
// intent is enqueued here.
func (s *bookingService) Confirm(ctx context.Context, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != entity.BookingStatusPending {
		return entity.ErrInvalidTransition
	}

	if err := s.transition(ctx, booking, entity.BookingStatusConfirmed); err != nil {
		return err
	}

	logrus.WithField("booking_id", bookingID).Info("Booking confirmed")
	return nil
}

// Complete moves a confirmed booking to completed once its slot has passed.
func (s *bookingService) Complete(ctx context.Context, bookingID string) error {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != entity.BookingStatusConfirmed {
		return entity.ErrInvalidTransition
	}

	if err := s.transition(ctx, booking, entity.BookingStatusCompleted); err != nil {
		return err
	}

	logrus.WithField("booking_id", bookingID).Info("Booking completed")
	return nil
}

// transition performs the guarded status write. When the guard misses the row
// another writer got there first; the booking is re-read so the caller gets
// the error matching the now-visible state.
func (s *bookingService) transition(ctx context.Context, booking *entity.Booking, to entity.BookingStatus) error {
	if !booking.CanTransitionTo(to) {
		return entity.ErrInvalidTransition
	}

	err := s.bookingRepo.UpdateStatusFrom(ctx, booking.ID, booking.Status, to)
	if err == nil {
		return nil
	}
	if err != entity.ErrStaleStatus {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	// Another writer changed the status first. Re-read so a missing row still
	// surfaces as not-found, then report the lost race.
	if _, readErr := s.bookingRepo.GetByID(ctx, booking.ID); readErr != nil {
		return readErr
	}
	return entity.ErrInvalidTransition
}

func (s *bookingService) GetBooking(ctx context.Context, actor *entity.Identity, bookingID string) (*entity.Booking, error) {
	if actor == nil || actor.UserID == "" {
		return nil, entity.ErrAuthenticationRequired
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID {
		return nil, entity.ErrBookingNotFound
	}
	return booking, nil
}

// GetUserBookings returns the actor's bookings, newest slot first.
func (s *bookingService) GetUserBookings(ctx context.Context, actor *entity.Identity) ([]*entity.Booking, error) {
	if actor == nil || actor.UserID == "" {
		return nil, entity.ErrAuthenticationRequired
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user bookings: %w", err)
	}
	return bookings, nil
}
