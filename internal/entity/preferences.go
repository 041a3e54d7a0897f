package entity

import (
	"time"
)

// NotificationPreferences holds the per-user channel and event flags. Exactly
// one row exists per user; every flag combination is legal.
type NotificationPreferences struct {
	ID                   string    `json:"id" db:"id"`
	UserID               string    `json:"user_id" db:"user_id"`
	EmailEnabled         bool      `json:"email_enabled" db:"email_enabled"`
	SMSEnabled           bool      `json:"sms_enabled" db:"sms_enabled"`
	PushEnabled          bool      `json:"push_enabled" db:"push_enabled"`
	BookingConfirmations bool      `json:"booking_confirmations" db:"booking_confirmations"`
	BookingCancellations bool      `json:"booking_cancellations" db:"booking_cancellations"`
	BookingReminders     bool      `json:"booking_reminders" db:"booking_reminders"`
	PromotionalOffers    bool      `json:"promotional_offers" db:"promotional_offers"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// DefaultPreferences returns the flags a fresh profile starts with.
func DefaultPreferences(userID string) *NotificationPreferences {
	return &NotificationPreferences{
		UserID:               userID,
		EmailEnabled:         true,
		SMSEnabled:           false,
		PushEnabled:          true,
		BookingConfirmations: true,
		BookingCancellations: true,
		BookingReminders:     true,
		PromotionalOffers:    false,
	}
}

// eventEnabled maps an event type to its same-named flag.
func (p *NotificationPreferences) eventEnabled(event NotificationEvent) bool {
	switch event {
	case EventBookingConfirmation:
		return p.BookingConfirmations
	case EventBookingCancellation:
		return p.BookingCancellations
	case EventBookingReminder:
		return p.BookingReminders
	case EventPromotionalOffer:
		return p.PromotionalOffers
	default:
		return false
	}
}

// ApprovedChannels is the notification gate: a channel is included iff its
// channel flag and the event's flag are both set. An empty result means no
// dispatch records are written at all.
func (p *NotificationPreferences) ApprovedChannels(event NotificationEvent) []NotificationChannel {
	if !p.eventEnabled(event) {
		return nil
	}

	var channels []NotificationChannel
	if p.EmailEnabled {
		channels = append(channels, ChannelEmail)
	}
	if p.SMSEnabled {
		channels = append(channels, ChannelSMS)
	}
	if p.PushEnabled {
		channels = append(channels, ChannelPush)
	}
	return channels
}
