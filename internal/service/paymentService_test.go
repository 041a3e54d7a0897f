package service

import (
	"context"
	"testing"
	"time"

	"github.com/bookwise/bookwise/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessPaymentConfirmsBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	bookings := NewBookingService(repo, &fakeNotifier{})
	payments := NewPaymentService(bookings, 10*time.Millisecond)
	actor := &entity.Identity{UserID: "user-1"}

	booking, err := bookings.Create(context.Background(), actor, validCreateRequest())
	require.NoError(t, err)

	paid, err := payments.ProcessPayment(context.Background(), actor, booking.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, paid.Status)
}

func TestProcessPaymentRejectsNonPending(t *testing.T) {
	repo := newFakeBookingRepo()
	bookings := NewBookingService(repo, &fakeNotifier{})
	payments := NewPaymentService(bookings, 0)
	actor := &entity.Identity{UserID: "user-1"}

	booking, err := bookings.Create(context.Background(), actor, validCreateRequest())
	require.NoError(t, err)
	require.NoError(t, bookings.Cancel(context.Background(), actor, booking.ID))

	_, err = payments.ProcessPayment(context.Background(), actor, booking.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidTransition)
}

func TestProcessPaymentChecksOwnership(t *testing.T) {
	repo := newFakeBookingRepo()
	bookings := NewBookingService(repo, &fakeNotifier{})
	payments := NewPaymentService(bookings, 0)

	booking, err := bookings.Create(context.Background(), &entity.Identity{UserID: "user-1"}, validCreateRequest())
	require.NoError(t, err)

	_, err = payments.ProcessPayment(context.Background(), &entity.Identity{UserID: "user-2"}, booking.ID)
	assert.ErrorIs(t, err, entity.ErrBookingNotFound)
}

func TestProcessPaymentHonorsContextCancellation(t *testing.T) {
	repo := newFakeBookingRepo()
	bookings := NewBookingService(repo, &fakeNotifier{})
	payments := NewPaymentService(bookings, time.Minute)
	actor := &entity.Identity{UserID: "user-1"}

	booking, err := bookings.Create(context.Background(), actor, validCreateRequest())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = payments.ProcessPayment(ctx, actor, booking.ID)
	assert.ErrorIs(t, err, context.Canceled)

	stored, err := repo.GetByID(context.Background(), booking.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusPending, stored.Status)
}
