package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

type Booking struct {
	ID                 string        `json:"id" db:"id"`
	UserID             string        `json:"user_id" db:"user_id"`
	ServiceName        string        `json:"service_name" db:"service_name"`
	ServiceDescription string        `json:"service_description,omitempty" db:"service_description"`
	BookingDate        time.Time     `json:"booking_date" db:"booking_date"`
	DurationMinutes    int           `json:"duration_minutes" db:"duration_minutes"`
	TotalAmount        *float64      `json:"total_amount,omitempty" db:"total_amount"`
	Notes              string        `json:"notes,omitempty" db:"notes"`
	Status             BookingStatus `json:"status" db:"status"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at" db:"updated_at"`
}

// EndsAt returns the scheduled end of the booked slot.
func (b *Booking) EndsAt() time.Time {
	return b.BookingDate.Add(time.Duration(b.DurationMinutes) * time.Minute)
}

// CanTransitionTo reports whether the status change is allowed by the
// lifecycle: pending -> confirmed -> completed, with cancellation possible
// from pending and confirmed. Cancelled and completed are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case BookingStatusPending:
		return next == BookingStatusConfirmed || next == BookingStatusCancelled
	case BookingStatusConfirmed:
		return next == BookingStatusCompleted || next == BookingStatusCancelled
	default:
		return false
	}
}
