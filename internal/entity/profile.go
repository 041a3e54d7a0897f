package entity

import (
	"time"
)

type Profile struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Email     string    `json:"email,omitempty" db:"email"`
	FullName  string    `json:"full_name,omitempty" db:"full_name"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	AvatarURL string    `json:"avatar_url,omitempty" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Identity is the authenticated actor extracted from the access token.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}
