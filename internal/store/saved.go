package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const savedSchema = `
CREATE TABLE IF NOT EXISTS saved_properties (
	user_id     TEXT NOT NULL,
	property_id TEXT NOT NULL,
	saved_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, property_id)
)`

// SavedStore persists which listings a user has saved. Save and Delete are
// idempotent; saving an already-saved listing only bumps its timestamp.
type SavedStore struct {
	db *sqlx.DB
}

// NewSavedStore connects to PostgreSQL and ensures the schema exists.
func NewSavedStore(dsn string, maxConn, maxIdleConn int) (*SavedStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(maxConn)
	db.SetMaxIdleConns(maxIdleConn)
	db.SetConnMaxLifetime(5 * time.Minute)

	if _, err := db.Exec(savedSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ensure saved_properties schema: %w", err)
	}

	return &SavedStore{db: db}, nil
}

// Close closes the database connection
func (s *SavedStore) Close() error {
	return s.db.Close()
}

// Save upserts a saved listing for the user.
func (s *SavedStore) Save(ctx context.Context, userID, propertyID string) error {
	query := `
		INSERT INTO saved_properties (user_id, property_id, saved_at, updated_at)
		VALUES ($1, $2, now(), now())
		ON CONFLICT (user_id, property_id)
		DO UPDATE SET updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, userID, propertyID); err != nil {
		return fmt.Errorf("failed to save property: %w", err)
	}
	return nil
}

// Delete removes a saved listing. Deleting a listing that was never saved is
// not an error.
func (s *SavedStore) Delete(ctx context.Context, userID, propertyID string) error {
	query := `DELETE FROM saved_properties WHERE user_id = $1 AND property_id = $2`
	if _, err := s.db.ExecContext(ctx, query, userID, propertyID); err != nil {
		return fmt.Errorf("failed to delete saved property: %w", err)
	}
	return nil
}

// List returns the property ids the user has saved, newest first.
func (s *SavedStore) List(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT property_id FROM saved_properties WHERE user_id = $1 ORDER BY saved_at DESC`

	var ids []string
	if err := s.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list saved properties: %w", err)
	}
	return ids, nil
}
