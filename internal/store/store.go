// Package store persists analysis history in SQLite, keyed by session so a
// returning user can review recent scores, matches, and roadmaps.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	apperrors "careerpath/internal/errors"
)

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path and runs migrations.
func Open(path string) (*Store, error) {
	// modernc sqlite DSN: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, apperrors.NewStorageError(apperrors.ErrCodeStorageFailed,
			"failed to open history database", err).WithContext("path", path)
	}

	// sqlite wants a single writer
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, apperrors.NewStorageError(apperrors.ErrCodeStorageFailed,
			"history database not reachable", err).WithContext("path", path)
	}

	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, apperrors.NewStorageError(apperrors.ErrCodeStorageFailed,
			"history database migration failed", err).WithContext("path", path)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewSessionID mints a fresh session identifier.
func NewSessionID() string {
	return uuid.NewString()
}
