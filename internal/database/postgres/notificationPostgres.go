package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
	"github.com/google/uuid"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create appends a dispatch record. Rows always start with delivered=false;
// the delivery outcome arrives later through SetDeliveryResult.
func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.SentAt.IsZero() {
		n.SentAt = time.Now()
	}

	var bookingID sql.NullString
	if n.BookingID != "" {
		bookingID = sql.NullString{String: n.BookingID, Valid: true}
	}
	var subject sql.NullString
	if n.Subject != "" {
		subject = sql.NullString{String: n.Subject, Valid: true}
	}

	query := `
		INSERT INTO notifications (
			id, user_id, booking_id, event_type, notification_type,
			subject, message, delivered, sent_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		bookingID,
		n.EventType,
		n.Channel,
		subject,
		n.Message,
		n.SentAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification record: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	query := `
		SELECT id, user_id, booking_id, event_type, notification_type,
		       subject, message, delivered, error_message, sent_at
		FROM notifications
		WHERE id = $1
	`

	n, err := scanNotification(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, entity.ErrNotificationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification: %w", err)
	}
	return n, nil
}

func (r *notificationRepository) GetByUserID(ctx context.Context, userID string) ([]*entity.Notification, error) {
	query := `
		SELECT id, user_id, booking_id, event_type, notification_type,
		       subject, message, delivered, error_message, sent_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY sent_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications by user: %w", err)
	}
	defer rows.Close()

	var notifications []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return notifications, nil
}

// SetDeliveryResult writes delivered/error_message for a record that has no
// result yet. The guard keeps the record immutable after the first write.
func (r *notificationRepository) SetDeliveryResult(ctx context.Context, id string, delivered bool, errorMessage string) error {
	var errMsg sql.NullString
	if errorMessage != "" {
		errMsg = sql.NullString{String: errorMessage, Valid: true}
	}

	query := `
		UPDATE notifications
		SET delivered = $1, error_message = $2
		WHERE id = $3 AND delivered = FALSE AND error_message IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, delivered, errMsg, id)
	if err != nil {
		return fmt.Errorf("failed to set delivery result: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) ExistsForBookingEvent(ctx context.Context, bookingID string, event entity.NotificationEvent) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM notifications WHERE booking_id = $1 AND event_type = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, bookingID, event).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check notification existence: %w", err)
	}
	return exists, nil
}

func scanNotification(row interface{ Scan(...interface{}) error }) (*entity.Notification, error) {
	var n entity.Notification
	var bookingID, subject, errMsg sql.NullString

	err := row.Scan(
		&n.ID,
		&n.UserID,
		&bookingID,
		&n.EventType,
		&n.Channel,
		&subject,
		&n.Message,
		&n.Delivered,
		&errMsg,
		&n.SentAt,
	)
	if err != nil {
		return nil, err
	}

	n.BookingID = bookingID.String
	n.Subject = subject.String
	n.ErrorMessage = errMsg.String
	return &n, nil
}
