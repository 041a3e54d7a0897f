package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
	"github.com/google/uuid"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `
	id, user_id, service_name, service_description, booking_date,
	duration_minutes, total_amount, notes, status, created_at, updated_at
`

func scanBooking(row interface{ Scan(...interface{}) error }) (*entity.Booking, error) {
	var booking entity.Booking
	var description, notes sql.NullString
	var amount sql.NullFloat64

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.ServiceName,
		&description,
		&booking.BookingDate,
		&booking.DurationMinutes,
		&amount,
		&notes,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.ServiceDescription = description.String
	booking.Notes = notes.String
	if amount.Valid {
		booking.TotalAmount = &amount.Float64
	}
	return &booking, nil
}

// Create inserts a new booking row. The id and timestamps are assigned here.
func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now()

	query := `
		INSERT INTO bookings (
			id, user_id, service_name, service_description, booking_date,
			duration_minutes, total_amount, notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	var description, notes sql.NullString
	if booking.ServiceDescription != "" {
		description = sql.NullString{String: booking.ServiceDescription, Valid: true}
	}
	if booking.Notes != "" {
		notes = sql.NullString{String: booking.Notes, Valid: true}
	}
	var amount sql.NullFloat64
	if booking.TotalAmount != nil {
		amount = sql.NullFloat64{Float64: *booking.TotalAmount, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.ServiceName,
		description,
		booking.BookingDate,
		booking.DurationMinutes,
		amount,
		notes,
		booking.Status,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	booking.CreatedAt = now
	booking.UpdatedAt = now
	return nil
}

// GetByID retrieves a booking by its ID
func (r *bookingRepository) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// GetByUserID retrieves a user's bookings ordered by scheduled date descending
func (r *bookingRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 ORDER BY booking_date DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings by user: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// UpdateStatusFrom is the compare-and-swap transition write. Concurrent
// transitions on one booking resolve here: the first writer flips the row,
// the second matches zero rows and gets ErrStaleStatus.
func (r *bookingRepository) UpdateStatusFrom(ctx context.Context, id string, from, to entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`

	result, err := r.db.ExecContext(ctx, query, to, time.Now(), id, from)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrStaleStatus
	}
	return nil
}

// GetConfirmedStartingBetween returns confirmed bookings scheduled inside the
// window, oldest first. Used by the reminder pass.
func (r *bookingRepository) GetConfirmedStartingBetween(ctx context.Context, from, to time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed' AND booking_date BETWEEN $1 AND $2
		ORDER BY booking_date ASC`

	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// GetConfirmedEndedBefore returns confirmed bookings whose slot end has
// passed. Used by the completion pass.
func (r *bookingRepository) GetConfirmedEndedBefore(ctx context.Context, before time.Time) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = 'confirmed'
		  AND booking_date + duration_minutes * INTERVAL '1 minute' < $1
		ORDER BY booking_date ASC`

	rows, err := r.db.QueryContext(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query ended bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func collectBookings(rows *sql.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}
	return bookings, nil
}
