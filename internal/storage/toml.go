package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/traveltrucks/traveltrucks/internal/ports"
)

type favoritesFile struct {
	IDs []string `toml:"ids"`
}

// TOMLPersister stores favorites in a TOML file as `ids = [...]`.
type TOMLPersister struct {
	path string
}

var _ ports.FavoritesPersister = (*TOMLPersister)(nil)

// NewTOMLPersister returns a persister writing to path.
func NewTOMLPersister(path string) (*TOMLPersister, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("toml storage: path cannot be empty")
	}
	return &TOMLPersister{path: path}, nil
}

// Path returns the file path.
func (p *TOMLPersister) Path() string {
	return p.path
}

func (p *TOMLPersister) lockDir() string {
	return p.path + ".lock"
}

// Load reads the ids. A missing file yields an empty set.
func (p *TOMLPersister) Load(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p.path)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("toml storage: read %s: %w", p.path, err)
	}
	var f favoritesFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("toml storage: parse %s: %w", p.path, err)
	}
	if f.IDs == nil {
		f.IDs = []string{}
	}
	return f.IDs, nil
}

// Save writes ids atomically through a temp file and rename.
func (p *TOMLPersister) Save(ctx context.Context, ids []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ids == nil {
		ids = []string{}
	}
	data, err := toml.Marshal(favoritesFile{IDs: ids})
	if err != nil {
		return fmt.Errorf("toml storage: marshal: %w", err)
	}
	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, FileModeDir); err != nil {
		return fmt.Errorf("toml storage: create directory: %w", err)
	}

	return WithLock(ctx, p.lockDir(), func() error {
		tmp, err := os.CreateTemp(dir, filepath.Base(p.path)+".*.tmp")
		if err != nil {
			return fmt.Errorf("toml storage: create temp file: %w", err)
		}
		tmpName := tmp.Name()
		defer os.Remove(tmpName)

		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			return fmt.Errorf("toml storage: write: %w", err)
		}
		if err := tmp.Close(); err != nil {
			return fmt.Errorf("toml storage: close: %w", err)
		}
		if err := os.Chmod(tmpName, FileModeFile); err != nil {
			return fmt.Errorf("toml storage: chmod: %w", err)
		}
		if err := os.Rename(tmpName, p.path); err != nil {
			return fmt.Errorf("toml storage: rename: %w", err)
		}
		return nil
	})
}

// Close is a no-op.
func (p *TOMLPersister) Close() error { return nil }
