package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tables use only types shared by MySQL, Postgres and SQLite: ids are
// generated uuids, money is integer cents and times are unix seconds.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS festival_movies (
		id VARCHAR(64) PRIMARY KEY,
		tmdb_id BIGINT NOT NULL DEFAULT 0,
		title VARCHAR(255) NOT NULL,
		director VARCHAR(255) NOT NULL DEFAULT '',
		release_year INTEGER NOT NULL DEFAULT 0,
		genre VARCHAR(64) NOT NULL DEFAULT '',
		runtime INTEGER NOT NULL DEFAULT 0,
		synopsis TEXT NOT NULL,
		poster_url VARCHAR(512) NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 0,
		price_cents INTEGER NOT NULL DEFAULT 0,
		status VARCHAR(32) NOT NULL,
		festival_category VARCHAR(64) NOT NULL,
		notes TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS showtimes (
		id VARCHAR(64) PRIMARY KEY,
		movie_id VARCHAR(64) NOT NULL DEFAULT '',
		movie_title VARCHAR(255) NOT NULL,
		show_date VARCHAR(10) NOT NULL,
		show_time VARCHAR(5) NOT NULL,
		venue VARCHAR(255) NOT NULL,
		screen VARCHAR(255) NOT NULL,
		capacity INTEGER NOT NULL,
		sold INTEGER NOT NULL DEFAULT 0,
		price_category VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		notes TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS ticket_types (
		id VARCHAR(64) PRIMARY KEY,
		name VARCHAR(128) NOT NULL,
		description TEXT NOT NULL,
		base_price_cents INTEGER NOT NULL,
		discount_percent INTEGER NOT NULL DEFAULT 0,
		final_price_cents INTEGER NOT NULL,
		availability VARCHAR(16) NOT NULL,
		status VARCHAR(16) NOT NULL,
		max_per_order INTEGER NOT NULL,
		requires_id BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS promo_codes (
		id VARCHAR(64) PRIMARY KEY,
		code VARCHAR(64) NOT NULL UNIQUE,
		discount_type VARCHAR(16) NOT NULL,
		discount_value INTEGER NOT NULL,
		usage_limit INTEGER NOT NULL DEFAULT 0,
		usage_count INTEGER NOT NULL DEFAULT 0,
		valid_from VARCHAR(10) NOT NULL DEFAULT '',
		valid_until VARCHAR(10) NOT NULL DEFAULT '',
		status VARCHAR(16) NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id VARCHAR(64) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		category VARCHAR(32) NOT NULL,
		event_date VARCHAR(10) NOT NULL,
		event_time VARCHAR(5) NOT NULL,
		venue VARCHAR(255) NOT NULL,
		status VARCHAR(16) NOT NULL,
		featured BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id VARCHAR(64) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		notif_type VARCHAR(16) NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS broadcasts (
		id VARCHAR(64) PRIMARY KEY,
		title VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		audience_id VARCHAR(64) NOT NULL,
		audience_name VARCHAR(128) NOT NULL,
		delivery VARCHAR(16) NOT NULL,
		recipients INTEGER NOT NULL,
		open_rate INTEGER NOT NULL DEFAULT 0,
		sent_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS activity (
		id VARCHAR(64) PRIMARY KEY,
		action VARCHAR(255) NOT NULL,
		detail VARCHAR(512) NOT NULL,
		activity_type VARCHAR(16) NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(64) PRIMARY KEY,
		client_id VARCHAR(64) NOT NULL,
		state VARCHAR(16) NOT NULL,
		movie_id BIGINT NOT NULL DEFAULT 0,
		movie_title VARCHAR(255) NOT NULL DEFAULT '',
		poster_path VARCHAR(255) NOT NULL DEFAULT '',
		show_date VARCHAR(10) NOT NULL DEFAULT '',
		show_time VARCHAR(16) NOT NULL DEFAULT '',
		venue_id VARCHAR(64) NOT NULL DEFAULT '',
		venue_name VARCHAR(255) NOT NULL DEFAULT '',
		adult INTEGER NOT NULL DEFAULT 0,
		senior INTEGER NOT NULL DEFAULT 0,
		student INTEGER NOT NULL DEFAULT 0,
		child INTEGER NOT NULL DEFAULT 0,
		customer_name VARCHAR(255) NOT NULL DEFAULT '',
		customer_email VARCHAR(255) NOT NULL DEFAULT '',
		customer_phone VARCHAR(64) NOT NULL DEFAULT '',
		promo_code VARCHAR(64) NOT NULL DEFAULT '',
		subtotal_cents INTEGER NOT NULL DEFAULT 0,
		discount_cents INTEGER NOT NULL DEFAULT 0,
		total_cents INTEGER NOT NULL DEFAULT 0,
		confirmation_code VARCHAR(32) NOT NULL DEFAULT '',
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
}

// CreateSchema creates any missing tables.  It is safe to run on every
// start.
func CreateSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
