package worker

import (
	"context"
	"testing"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
	"github.com/bookwise/bookwise/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	upcoming []*entity.Booking
	ended    []*entity.Booking
}

func (r *fakeBookingRepo) Create(context.Context, *entity.Booking) error { return nil }

func (r *fakeBookingRepo) GetByID(context.Context, string) (*entity.Booking, error) {
	return nil, entity.ErrBookingNotFound
}

func (r *fakeBookingRepo) GetByUserID(context.Context, string) ([]*entity.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) UpdateStatusFrom(context.Context, string, entity.BookingStatus, entity.BookingStatus) error {
	return nil
}

func (r *fakeBookingRepo) GetConfirmedStartingBetween(context.Context, time.Time, time.Time) ([]*entity.Booking, error) {
	return r.upcoming, nil
}

func (r *fakeBookingRepo) GetConfirmedEndedBefore(context.Context, time.Time) ([]*entity.Booking, error) {
	return r.ended, nil
}

type fakeNotificationRepo struct {
	remindedBookings map[string]bool
}

func (r *fakeNotificationRepo) Create(context.Context, *entity.Notification) error { return nil }

func (r *fakeNotificationRepo) GetByID(context.Context, string) (*entity.Notification, error) {
	return nil, entity.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) GetByUserID(context.Context, string) ([]*entity.Notification, error) {
	return nil, nil
}

func (r *fakeNotificationRepo) SetDeliveryResult(context.Context, string, bool, string) error {
	return nil
}

func (r *fakeNotificationRepo) ExistsForBookingEvent(_ context.Context, bookingID string, event entity.NotificationEvent) (bool, error) {
	if event != entity.EventBookingReminder {
		return false, nil
	}
	return r.remindedBookings[bookingID], nil
}

type fakeNotificationService struct {
	notified []string
}

func (s *fakeNotificationService) NotifyBookingEvent(_ context.Context, booking *entity.Booking, event entity.NotificationEvent) error {
	if event == entity.EventBookingReminder {
		s.notified = append(s.notified, booking.ID)
	}
	return nil
}

func (s *fakeNotificationService) SendPromotion(context.Context, string, string, string) error {
	return nil
}

func (s *fakeNotificationService) RecordDeliveryResult(context.Context, string, bool, string) error {
	return nil
}

func (s *fakeNotificationService) GetUserNotifications(context.Context, *entity.Identity) ([]*entity.Notification, error) {
	return nil, nil
}

type fakeBookingService struct {
	completed   []string
	completeErr error
}

func (s *fakeBookingService) Create(context.Context, *entity.Identity, *service.CreateBookingRequest) (*entity.Booking, error) {
	return nil, nil
}

func (s *fakeBookingService) Cancel(context.Context, *entity.Identity, string) error { return nil }

func (s *fakeBookingService) Confirm(context.Context, string) error { return nil }

func (s *fakeBookingService) Complete(_ context.Context, bookingID string) error {
	if s.completeErr != nil {
		return s.completeErr
	}
	s.completed = append(s.completed, bookingID)
	return nil
}

func (s *fakeBookingService) GetBooking(context.Context, *entity.Identity, string) (*entity.Booking, error) {
	return nil, entity.ErrBookingNotFound
}

func (s *fakeBookingService) GetUserBookings(context.Context, *entity.Identity) ([]*entity.Booking, error) {
	return nil, nil
}

func confirmedBooking(id string, start time.Time) *entity.Booking {
	return &entity.Booking{
		ID:              id,
		UserID:          "user-1",
		ServiceName:     "Consultation",
		BookingDate:     start,
		DurationMinutes: 60,
		Status:          entity.BookingStatusConfirmed,
	}
}

func TestReminderPassSkipsAlreadyReminded(t *testing.T) {
	now := time.Now()
	bookingRepo := &fakeBookingRepo{
		upcoming: []*entity.Booking{
			confirmedBooking("booking-1", now.Add(2*time.Hour)),
			confirmedBooking("booking-2", now.Add(3*time.Hour)),
		},
	}
	notifRepo := &fakeNotificationRepo{
		remindedBookings: map[string]bool{"booking-1": true},
	}
	notifications := &fakeNotificationService{}

	w := NewBookingMaintenanceWorker(&fakeBookingService{}, notifications, bookingRepo, notifRepo, time.Minute, 24*time.Hour)
	w.runReminderPass(context.Background())

	require.Len(t, notifications.notified, 1)
	assert.Equal(t, "booking-2", notifications.notified[0])
}

func TestCompletionPassCompletesEndedBookings(t *testing.T) {
	now := time.Now()
	bookingRepo := &fakeBookingRepo{
		ended: []*entity.Booking{
			confirmedBooking("booking-1", now.Add(-3*time.Hour)),
			confirmedBooking("booking-2", now.Add(-2*time.Hour)),
		},
	}
	bookings := &fakeBookingService{}

	w := NewBookingMaintenanceWorker(bookings, &fakeNotificationService{}, bookingRepo, &fakeNotificationRepo{}, time.Minute, 24*time.Hour)
	w.runCompletionPass(context.Background())

	assert.Equal(t, []string{"booking-1", "booking-2"}, bookings.completed)
}

func TestCompletionPassToleratesLostRace(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		ended: []*entity.Booking{confirmedBooking("booking-1", time.Now().Add(-2*time.Hour))},
	}
	bookings := &fakeBookingService{completeErr: entity.ErrInvalidTransition}

	w := NewBookingMaintenanceWorker(bookings, &fakeNotificationService{}, bookingRepo, &fakeNotificationRepo{}, time.Minute, 24*time.Hour)
	w.runCompletionPass(context.Background())

	assert.Empty(t, bookings.completed)
}
