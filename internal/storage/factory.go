package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/traveltrucks/traveltrucks/internal/colors"
	"github.com/traveltrucks/traveltrucks/internal/config"
	"github.com/traveltrucks/traveltrucks/internal/favorites"
	"github.com/traveltrucks/traveltrucks/internal/ports"
	"github.com/traveltrucks/traveltrucks/internal/storage/postgres"
	"github.com/traveltrucks/traveltrucks/internal/storage/sqlite"
)

const (
	// BackendSQLite selects SQLite-backed storage.
	BackendSQLite = "sqlite"
	// BackendPostgres selects PostgreSQL-backed storage.
	BackendPostgres = "postgres"
	// BackendTOML selects a TOML file.
	BackendTOML = "toml"
	// BackendMemory keeps favorites for the current process only.
	BackendMemory = "memory"

	favoritesDBFileName   = "favorites.db"
	favoritesTOMLFileName = "favorites.toml"
)

var (
	_ ports.FavoritesPersister = (*sqlite.FavoritesStore)(nil)
	_ ports.FavoritesPersister = (*postgres.FavoritesStore)(nil)
)

// NewFromConfig creates the favorites persister named by favorites_backend.
func NewFromConfig(ctx context.Context) (ports.FavoritesPersister, error) {
	return NewForBackend(ctx, config.Get("favorites_backend", BackendSQLite))
}

// NewForBackend creates the persister for backend. A backend that cannot be
// opened falls back to a simpler one with a warning; favorites stay usable.
func NewForBackend(ctx context.Context, backend string) (ports.FavoritesPersister, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		if err := Init(); err != nil {
			return nil, err
		}
		dbPath := favoritesDBPath()
		if err := maybeImportTOML(ctx, favoritesTOMLPath(), dbPath); err != nil {
			colors.Warning(fmt.Sprintf("favorites import failed: %v", err))
		}
		store, err := sqlite.NewFavoritesStore(dbPath)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite backend, falling back to toml: %v", err))
			return NewTOMLPersister(favoritesTOMLPath())
		}
		return store, nil
	case BackendPostgres:
		store, err := postgres.NewFavoritesStore(ctx, config.Get("postgres_dsn", ""))
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize postgres backend, favorites will not persist: %v", err))
			return favorites.NewMemoryPersister(), nil
		}
		return store, nil
	case BackendTOML:
		if err := Init(); err != nil {
			return nil, err
		}
		return NewTOMLPersister(favoritesTOMLPath())
	case BackendMemory:
		return favorites.NewMemoryPersister(), nil
	default:
		colors.Warning(fmt.Sprintf("unknown favorites backend '%s', falling back to sqlite", backend))
		return NewForBackend(ctx, BackendSQLite)
	}
}

func favoritesDBPath() string {
	if p := config.Get("favorites_db_path", ""); p != "" {
		return p
	}
	return filepath.Join(GetStateDir(), favoritesDBFileName)
}

func favoritesTOMLPath() string {
	if p := config.Get("favorites_toml_path", ""); p != "" {
		return p
	}
	return filepath.Join(GetStateDir(), favoritesTOMLFileName)
}

// maybeImportTOML seeds a new SQLite database with the ids of an existing
// TOML favorites file, so switching backends keeps the set.
func maybeImportTOML(ctx context.Context, tomlPath, dbPath string) error {
	dbExists, err := pathExists(dbPath)
	if err != nil {
		return fmt.Errorf("check sqlite database path: %w", err)
	}
	if dbExists {
		return nil
	}
	hasData, err := fileHasContent(tomlPath)
	if err != nil {
		return fmt.Errorf("check toml favorites: %w", err)
	}
	if !hasData {
		return nil
	}

	src, err := NewTOMLPersister(tomlPath)
	if err != nil {
		return err
	}
	ids, err := src.Load(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	dst, err := sqlite.NewFavoritesStore(dbPath)
	if err != nil {
		return err
	}
	defer dst.Close()
	if err := dst.Save(ctx, ids); err != nil {
		_ = os.Remove(dbPath)
		return fmt.Errorf("import favorites into sqlite: %w", err)
	}
	colors.Info(fmt.Sprintf("Imported %d favorites from %s", len(ids), tomlPath))
	return nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func fileHasContent(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("expected file but found directory: %s", path)
	}
	return info.Size() > 0, nil
}
