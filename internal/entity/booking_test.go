package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to completed", BookingStatusPending, BookingStatusCompleted, false},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to pending", BookingStatusConfirmed, BookingStatusPending, false},
		{"cancelled is terminal", BookingStatusCancelled, BookingStatusPending, false},
		{"cancelled to confirmed", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"completed is terminal", BookingStatusCompleted, BookingStatusCancelled, false},
		{"no self transition", BookingStatusPending, BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{Status: tt.from}
			assert.Equal(t, tt.allowed, b.CanTransitionTo(tt.to))
		})
	}
}

func TestEndsAt(t *testing.T) {
	start := time.Date(2026, time.March, 10, 14, 0, 0, 0, time.UTC)
	b := &Booking{BookingDate: start, DurationMinutes: 90}

	assert.Equal(t, start.Add(90*time.Minute), b.EndsAt())
}

func TestServiceCatalog(t *testing.T) {
	catalog := ServiceCatalog()
	assert.Len(t, catalog, 3)

	offering := ServiceByID(2)
	assert.NotNil(t, offering)
	assert.Equal(t, "Workshop", offering.Name)

	assert.Nil(t, ServiceByID(99))
}
