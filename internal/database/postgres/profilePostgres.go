package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bookwise/bookwise/internal/entity"
	"github.com/google/uuid"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	now := time.Now()

	query := `
		INSERT INTO profiles (id, user_id, email, full_name, phone, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.ExecContext(ctx, query,
		profile.ID,
		profile.UserID,
		nullable(profile.Email),
		nullable(profile.FullName),
		nullable(profile.Phone),
		nullable(profile.AvatarURL),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	profile.CreatedAt = now
	profile.UpdatedAt = now
	return nil
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	query := `
		SELECT id, user_id, email, full_name, phone, avatar_url, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile entity.Profile
	var email, fullName, phone, avatarURL sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&email,
		&fullName,
		&phone,
		&avatarURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.Email = email.String
	profile.FullName = fullName.String
	profile.Phone = phone.String
	profile.AvatarURL = avatarURL.String
	return &profile, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *entity.Profile) error {
	query := `
		UPDATE profiles
		SET email = $1, full_name = $2, phone = $3, avatar_url = $4, updated_at = $5
		WHERE user_id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		nullable(profile.Email),
		nullable(profile.FullName),
		nullable(profile.Phone),
		nullable(profile.AvatarURL),
		time.Now(),
		profile.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return entity.ErrProfileNotFound
	}
	return nil
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
