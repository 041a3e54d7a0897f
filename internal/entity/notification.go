package entity

import (
	"time"
)

type NotificationEvent string

const (
	EventBookingConfirmation NotificationEvent = "booking_confirmation"
	EventBookingCancellation NotificationEvent = "booking_cancellation"
	EventBookingReminder     NotificationEvent = "booking_reminder"
	EventPromotionalOffer    NotificationEvent = "promotional_offer"
)

type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
	ChannelPush  NotificationChannel = "push"
)

// Notification is one attempted send on one channel. Rows are append-only:
// after creation only Delivered and ErrorMessage may be written, once, by the
// delivery attempt.
type Notification struct {
	ID           string              `json:"id" db:"id"`
	UserID       string              `json:"user_id" db:"user_id"`
	BookingID    string              `json:"booking_id,omitempty" db:"booking_id"`
	EventType    NotificationEvent   `json:"event_type" db:"event_type"`
	Channel      NotificationChannel `json:"notification_type" db:"notification_type"`
	Subject      string              `json:"subject,omitempty" db:"subject"`
	Message      string              `json:"message" db:"message"`
	Delivered    bool                `json:"delivered" db:"delivered"`
	ErrorMessage string              `json:"error_message,omitempty" db:"error_message"`
	SentAt       time.Time           `json:"sent_at" db:"sent_at"`
}
