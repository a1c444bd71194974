// Package postgres provides a PostgreSQL-backed favorites store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/traveltrucks/traveltrucks/internal/ports"
)

var (
	// ErrEmptyDSN indicates that no connection string was configured.
	ErrEmptyDSN = errors.New("postgres storage: postgres_dsn is not configured")
	// ErrInvalidFavoriteID indicates an empty favorite id.
	ErrInvalidFavoriteID = errors.New("invalid favorite ID")
)

const (
	pingAttempts = 3
	pingDelay    = 500 * time.Millisecond
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS favorites (
	id         TEXT        PRIMARY KEY,
	position   INTEGER     NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_favorites_position ON favorites(position);
`

// FavoritesStore persists the favorites set in PostgreSQL.
type FavoritesStore struct {
	db *sql.DB
}

var _ ports.FavoritesPersister = (*FavoritesStore)(nil)

// NewFavoritesStore connects to dsn and ensures the schema exists.
func NewFavoritesStore(ctx context.Context, dsn string) (*FavoritesStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, ErrEmptyDSN
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres storage: open: %w", err)
	}

	if err := ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres storage: ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres storage: create schema: %w", err)
	}
	return &FavoritesStore{db: db}, nil
}

func ping(ctx context.Context, db *sql.DB) error {
	var err error
	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pingDelay):
		}
	}
	return err
}

// Close closes the connection pool.
func (s *FavoritesStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load returns the favorite ids ordered by position.
func (s *FavoritesStore) Load(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM favorites ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("postgres storage: load favorites: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres storage: scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Save replaces the stored set with ids in one transaction. Ids that stay
// in the set keep their created_at.
func (s *FavoritesStore) Save(ctx context.Context, ids []string) error {
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return ErrInvalidFavoriteID
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres storage: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if len(ids) == 0 {
		if _, err := tx.ExecContext(ctx, "DELETE FROM favorites"); err != nil {
			return fmt.Errorf("postgres storage: clear favorites: %w", err)
		}
	} else {
		placeholders := make([]string, len(ids))
		args := make([]any, len(ids))
		for i, id := range ids {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = id
		}
		query := "DELETE FROM favorites WHERE id NOT IN (" + strings.Join(placeholders, ", ") + ")"
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres storage: prune favorites: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO favorites (id, position) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position`)
	if err != nil {
		return fmt.Errorf("postgres storage: prepare upsert: %w", err)
	}
	defer stmt.Close()
	for pos, id := range ids {
		if _, err := stmt.ExecContext(ctx, id, pos); err != nil {
			return fmt.Errorf("postgres storage: upsert favorite %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres storage: commit: %w", err)
	}
	return nil
}
