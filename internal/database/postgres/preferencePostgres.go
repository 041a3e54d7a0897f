package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
	"github.com/google/uuid"
)

type preferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Create(ctx context.Context, prefs *entity.NotificationPreferences) error {
	if prefs.ID == "" {
		prefs.ID = uuid.NewString()
	}
	now := time.Now()

	query := `
		INSERT INTO notification_preferences (
			id, user_id, email_enabled, sms_enabled, push_enabled,
			booking_confirmations, booking_cancellations, booking_reminders,
			promotional_offers, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		prefs.ID,
		prefs.UserID,
		prefs.EmailEnabled,
		prefs.SMSEnabled,
		prefs.PushEnabled,
		prefs.BookingConfirmations,
		prefs.BookingCancellations,
		prefs.BookingReminders,
		prefs.PromotionalOffers,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create notification preferences: %w", err)
	}

	prefs.CreatedAt = now
	prefs.UpdatedAt = now
	return nil
}

func (r *preferenceRepository) GetByUserID(ctx context.Context, userID string) (*entity.NotificationPreferences, error) {
	query := `
		SELECT id, user_id, email_enabled, sms_enabled, push_enabled,
		       booking_confirmations, booking_cancellations, booking_reminders,
		       promotional_offers, created_at, updated_at
		FROM notification_preferences
		WHERE user_id = $1
	`

	var prefs entity.NotificationPreferences
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&prefs.ID,
		&prefs.UserID,
		&prefs.EmailEnabled,
		&prefs.SMSEnabled,
		&prefs.PushEnabled,
		&prefs.BookingConfirmations,
		&prefs.BookingCancellations,
		&prefs.BookingReminders,
		&prefs.PromotionalOffers,
		&prefs.CreatedAt,
		&prefs.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notification preferences: %w", err)
	}
	return &prefs, nil
}

func (r *preferenceRepository) Update(ctx context.Context, prefs *entity.NotificationPreferences) error {
	query := `
		UPDATE notification_preferences
		SET email_enabled = $1, sms_enabled = $2, push_enabled = $3,
		    booking_confirmations = $4, booking_cancellations = $5,
		    booking_reminders = $6, promotional_offers = $7, updated_at = $8
		WHERE user_id = $9
	`

	result, err := r.db.ExecContext(ctx, query,
		prefs.EmailEnabled,
		prefs.SMSEnabled,
		prefs.PushEnabled,
		prefs.BookingConfirmations,
		prefs.BookingCancellations,
		prefs.BookingReminders,
		prefs.PromotionalOffers,
		time.Now(),
		prefs.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update notification preferences: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrPreferencesNotFound
	}
	return nil
}
