package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrConfiguration marks failures to bring storage up (directory, open,
// schema). Callers treat it as fatal at startup.
var ErrConfiguration = errors.New("storage configuration")

// Setup prepares the database directory, applies migrations and opens the
// database. Every failure wraps ErrConfiguration.
func Setup(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: mkdir db dir: %w", ErrConfiguration, err)
	}
	if err := RunMigrations(path); err != nil {
		return nil, fmt.Errorf("%w: migrate: %w", ErrConfiguration, err)
	}
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %w", ErrConfiguration, err)
	}
	return db, nil
}

// Open opens sqlite with sensible defaults.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// WithTx runs fn in a transaction.
func WithTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Now returns UTC time truncated to seconds (consistent with SQLite default).
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
