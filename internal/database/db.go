// Package database wraps *sql.DB the way every teacher service imports
// it (internal/database.DB) without ever shipping it — this package is
// that missing piece, built out against github.com/lib/pq.
package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// DB is a thin wrapper around *sql.DB so callers depend on this
// package's type rather than database/sql directly, matching every
// teacher service's `*database.DB` field.
type DB struct {
	*sql.DB
}

// Open connects to Postgres via lib/pq and verifies the connection with
// a bounded ping.
func Open(databaseURL string) (*DB, error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: sqlDB}, nil
}
