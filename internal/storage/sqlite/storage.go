// Package sqlite provides a SQLite-backed favorites store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/traveltrucks/traveltrucks/internal/ports"
	_ "modernc.org/sqlite"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS favorites (
	id         TEXT PRIMARY KEY,
	position   INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_favorites_position ON favorites(position);
`

// FavoritesStore persists the favorites set in a SQLite database.
type FavoritesStore struct {
	db *sql.DB
}

var _ ports.FavoritesPersister = (*FavoritesStore)(nil)

// NewFavoritesStore opens (creating if needed) the database at dbPath.
func NewFavoritesStore(dbPath string) (*FavoritesStore, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	// favorites are written from one goroutine at a time
	db.SetMaxOpenConns(1)

	store := &FavoritesStore{db: db}
	if err := store.init(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *FavoritesStore) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	return nil
}

// Close closes the underlying SQLite connection.
func (s *FavoritesStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Load returns the favorite ids ordered by position.
func (s *FavoritesStore) Load(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM favorites ORDER BY position ASC")
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: load favorites: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("sqlite storage: scan favorite: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite storage: load favorites: %w", err)
	}
	return ids, nil
}

// Save replaces the stored set with ids, keeping their order. The first
// created_at of an id that stays in the set is preserved.
func (s *FavoritesStore) Save(ctx context.Context, ids []string) error {
	if s.db == nil {
		return ErrClosed
	}
	for _, id := range ids {
		if strings.TrimSpace(id) == "" {
			return ErrInvalidFavoriteID
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite storage: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	created := make(map[string]string, len(ids))
	rows, err := tx.QueryContext(ctx, "SELECT id, created_at FROM favorites")
	if err != nil {
		return fmt.Errorf("sqlite storage: read favorites: %w", err)
	}
	for rows.Next() {
		var id, at string
		if err := rows.Scan(&id, &at); err != nil {
			rows.Close()
			return fmt.Errorf("sqlite storage: scan favorite: %w", err)
		}
		created[id] = at
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx, "DELETE FROM favorites"); err != nil {
		return fmt.Errorf("sqlite storage: clear favorites: %w", err)
	}

	now := utcNow()
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO favorites (id, position, created_at) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("sqlite storage: prepare insert: %w", err)
	}
	defer stmt.Close()
	for pos, id := range ids {
		at, ok := created[id]
		if !ok {
			at = now
		}
		if _, err := stmt.ExecContext(ctx, id, pos, at); err != nil {
			return fmt.Errorf("sqlite storage: insert favorite %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite storage: commit: %w", err)
	}
	return nil
}

func utcNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}
