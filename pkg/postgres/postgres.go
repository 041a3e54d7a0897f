package postgres

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/bookwise/bookwise/config"

	_ "github.com/lib/pq"
)

func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Println("Successfully connected to PostgreSQL")
	return db, nil
}

func RunMigrations(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS bookings (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			service_name VARCHAR(255) NOT NULL,
			service_description TEXT,
			booking_date TIMESTAMP NOT NULL,
			duration_minutes INTEGER NOT NULL DEFAULT 60,
			total_amount NUMERIC(10,2),
			notes TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS notification_preferences (
			id UUID PRIMARY KEY,
			user_id UUID UNIQUE NOT NULL,
			email_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			sms_enabled BOOLEAN NOT NULL DEFAULT FALSE,
			push_enabled BOOLEAN NOT NULL DEFAULT TRUE,
			booking_confirmations BOOLEAN NOT NULL DEFAULT TRUE,
			booking_cancellations BOOLEAN NOT NULL DEFAULT TRUE,
			booking_reminders BOOLEAN NOT NULL DEFAULT TRUE,
			promotional_offers BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS notifications (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			booking_id UUID,
			event_type VARCHAR(30) NOT NULL,
			notification_type VARCHAR(10) NOT NULL,
			subject TEXT,
			message TEXT NOT NULL,
			delivered BOOLEAN NOT NULL DEFAULT FALSE,
			error_message TEXT,
			sent_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY,
			user_id UUID UNIQUE NOT NULL,
			email VARCHAR(255),
			full_name VARCHAR(255),
			phone VARCHAR(50),
			avatar_url TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_bookings_user_id ON bookings(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_booking_date ON bookings(booking_date)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id ON notifications(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_notifications_booking_event ON notifications(booking_id, event_type)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration: %v", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}
