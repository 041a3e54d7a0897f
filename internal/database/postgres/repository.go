package repository

import (
	"context"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
)

type BookingRepository interface {
	// Basic CRUD operations
	Create(ctx context.Context, booking *entity.Booking) error
	GetByID(ctx context.Context, id string) (*entity.Booking, error)
	GetByUserID(ctx context.Context, userID string) ([]*entity.Booking, error)

	// UpdateStatusFrom performs the guarded transition write: the row is
	// updated only if its current status equals from. When no row matches it
	// returns entity.ErrStaleStatus and the caller must re-read to classify
	// the failure.
	UpdateStatusFrom(ctx context.Context, id string, from, to entity.BookingStatus) error

	// Worker queries
	GetConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error)
	GetConfirmedEndedBefore(ctx context.Context, before time.Time) ([]*entity.Booking, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	GetByUserID(ctx context.Context, userID string) ([]*entity.Notification, error)

	// SetDeliveryResult writes the delivery outcome exactly once; a second
	// write for the same record is a no-op returning entity.ErrNotificationNotFound.
	SetDeliveryResult(ctx context.Context, id string, delivered bool, errorMessage string) error

	// ExistsForBookingEvent reports whether any dispatch record exists for the
	// booking and event type. Used to de-duplicate reminders.
	ExistsForBookingEvent(ctx context.Context, bookingID string, event entity.NotificationEvent) (bool, error)
}

type PreferenceRepository interface {
	Create(ctx context.Context, prefs *entity.NotificationPreferences) error
	GetByUserID(ctx context.Context, userID string) (*entity.NotificationPreferences, error)
	Update(ctx context.Context, prefs *entity.NotificationPreferences) error
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
}
