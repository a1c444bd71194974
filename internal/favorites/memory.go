package favorites

import (
	"context"
	"sync"

	"github.com/traveltrucks/traveltrucks/internal/ports"
)

// MemoryPersister keeps the favorites in process memory.
type MemoryPersister struct {
	mu    sync.Mutex
	ids   []string
	saves int

	// SaveErr, when set, is returned by every Save.
	SaveErr error
	// LoadErr, when set, is returned by every Load.
	LoadErr error
}

var _ ports.FavoritesPersister = (*MemoryPersister)(nil)

// NewMemoryPersister returns a persister preloaded with ids.
func NewMemoryPersister(ids ...string) *MemoryPersister {
	return &MemoryPersister{ids: append([]string{}, ids...)}
}

// Load returns the stored ids.
func (m *MemoryPersister) Load(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return append([]string{}, m.ids...), nil
}

// Save replaces the stored ids.
func (m *MemoryPersister) Save(ctx context.Context, ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.ids = append([]string{}, ids...)
	m.saves++
	return nil
}

// Saves returns how many successful saves happened.
func (m *MemoryPersister) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Close is a no-op.
func (m *MemoryPersister) Close() error { return nil }
