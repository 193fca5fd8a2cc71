package database

import (
	"database/sql"
	"fmt"

	"ower-data/internal/config"

	_ "github.com/lib/pq"
)

// NewPostgresDB opens a PostgreSQL connection and verifies it with a ping.
// Used for both the primary ower database and the remote registry.
func NewPostgresDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdle > 0 {
		db.SetMaxIdleConns(cfg.MaxIdle)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Close closes a database connection if it was opened.
func Close(db *sql.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
