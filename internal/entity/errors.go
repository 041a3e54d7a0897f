package entity

import "errors"

var (
	// Booking errors
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
	ErrValidation        = errors.New("invalid input")

	// Identity errors
	ErrAuthenticationRequired = errors.New("authentication required")

	// Profile and preference errors
	ErrProfileNotFound     = errors.New("profile not found")
	ErrPreferencesNotFound = errors.New("notification preferences not found")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")
	ErrDeliveryFailure      = errors.New("notification delivery failed")

	// General errors
	ErrStaleStatus = errors.New("booking status changed concurrently")
)
