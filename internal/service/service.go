package service

import (
	"context"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
)

// CreateBookingRequest carries the service snapshot and slot the user commits
// to. The snapshot is copied onto the booking; the catalog row itself is
// reference data.
type CreateBookingRequest struct {
	ServiceName        string    `json:"service_name" binding:"required"`
	ServiceDescription string    `json:"service_description"`
	BookingDate        time.Time `json:"booking_date" binding:"required"`
	DurationMinutes    int       `json:"duration_minutes" binding:"required,min=0"`
	TotalAmount        *float64  `json:"total_amount"`
	Notes              string    `json:"notes"`
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type UpdatePreferencesRequest struct {
	EmailEnabled         bool `json:"email_enabled"`
	SMSEnabled           bool `json:"sms_enabled"`
	PushEnabled          bool `json:"push_enabled"`
	BookingConfirmations bool `json:"booking_confirmations"`
	BookingCancellations bool `json:"booking_cancellations"`
	BookingReminders     bool `json:"booking_reminders"`
	PromotionalOffers    bool `json:"promotional_offers"`
}

// BookingService owns the booking lifecycle. Every operation takes the actor
// explicitly; there is no ambient current-user state.
type BookingService interface {
	Create(ctx context.Context, actor *entity.Identity, req *CreateBookingRequest) (*entity.Booking, error)
	Cancel(ctx context.Context, actor *entity.Identity, bookingID string) error

	// Confirm is driven by payment completion, Complete by the maintenance
	// worker once the slot has passed. Neither is exposed to the user directly.
	Confirm(ctx context.Context, bookingID string) error
	Complete(ctx context.Context, bookingID string) error

	GetBooking(ctx context.Context, actor *entity.Identity, bookingID string) (*entity.Booking, error)
	GetUserBookings(ctx context.Context, actor *entity.Identity) ([]*entity.Booking, error)
}

// NotificationService consults the gate and captures dispatch intents.
type NotificationService interface {
	// NotifyBookingEvent runs the gate for the booking's owner and the event
	// type, appends one dispatch record per approved channel and hands each
	// to the queue. An empty channel set is a non-event. Errors here must
	// never fail the lifecycle operation that triggered the event.
	NotifyBookingEvent(ctx context.Context, booking *entity.Booking, event entity.NotificationEvent) error

	// SendPromotion fires a promotional_offer through the same gate.
	SendPromotion(ctx context.Context, userID, subject, message string) error

	RecordDeliveryResult(ctx context.Context, notificationID string, delivered bool, errorMessage string) error
	GetUserNotifications(ctx context.Context, actor *entity.Identity) ([]*entity.Notification, error)
}

// ProfileService manages profiles and notification preferences. A profile and
// default preferences are provisioned the first time an identity is seen.
type ProfileService interface {
	GetProfile(ctx context.Context, actor *entity.Identity) (*entity.Profile, error)
	UpdateProfile(ctx context.Context, actor *entity.Identity, req *UpdateProfileRequest) (*entity.Profile, error)
	GetPreferences(ctx context.Context, actor *entity.Identity) (*entity.NotificationPreferences, error)
	UpdatePreferences(ctx context.Context, actor *entity.Identity, req *UpdatePreferencesRequest) (*entity.NotificationPreferences, error)
}

// PaymentService simulates payment processing and confirms the booking on
// success. No real gateway is involved.
type PaymentService interface {
	ProcessPayment(ctx context.Context, actor *entity.Identity, bookingID string) (*entity.Booking, error)
}

// DispatchTask is the message handed to the delivery queue, one per dispatch
// record.
type DispatchTask struct {
	NotificationID string                     `json:"notification_id"`
	UserID         string                     `json:"user_id"`
	BookingID      string                     `json:"booking_id,omitempty"`
	EventType      entity.NotificationEvent   `json:"event_type"`
	Channel        entity.NotificationChannel `json:"channel"`
	Subject        string                     `json:"subject,omitempty"`
	Message        string                     `json:"message"`
}

// TaskPublisher is the queue-facing side of dispatch capture.
type TaskPublisher interface {
	Publish(ctx context.Context, task *DispatchTask) error
}
