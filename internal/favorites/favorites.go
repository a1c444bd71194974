// Package favorites implements the persisted set of favorite camper ids.
package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/logging"
	"github.com/traveltrucks/traveltrucks/internal/ports"
)

const saveTimeout = 10 * time.Second

// Set is an ordered set of listing ids. Ids are kept in insertion order.
// Every mutation is persisted in the background; a failed save leaves the
// in-memory set intact. After a failed load nothing is saved until a later
// Rehydrate succeeds, so the stored ids are never replaced by a partial set.
type Set struct {
	persister ports.FavoritesPersister

	mu    sync.RWMutex
	ids   []string
	index map[string]struct{}
	seq   uint64
	// loadFailed is set while the stored ids could not be read.
	loadFailed bool
	closed     bool

	saveMu   sync.Mutex
	savedSeq uint64
	pending  sync.WaitGroup

	onSaveError func(error)

	ready     chan struct{}
	readyOnce sync.Once
}

// New returns an empty Set. With a nil persister nothing is saved and the
// set is ready immediately.
func New(persister ports.FavoritesPersister) *Set {
	s := &Set{
		persister: persister,
		ids:       []string{},
		index:     make(map[string]struct{}),
		ready:     make(chan struct{}),
	}
	if persister == nil {
		s.markReady()
	}
	return s
}

// OnSaveError registers a callback invoked when a background save fails.
func (s *Set) OnSaveError(fn func(error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onSaveError = fn
}

// Ready is closed once Rehydrate has finished, successfully or not.
func (s *Set) Ready() <-chan struct{} {
	return s.ready
}

func (s *Set) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// Rehydrate replaces the set with the persisted ids. Duplicate and empty ids
// are dropped. A load failure keeps the current set.
func (s *Set) Rehydrate(ctx context.Context) error {
	defer s.markReady()
	if s.persister == nil {
		return nil
	}
	loaded, err := s.persister.Load(ctx)
	if err != nil {
		logging.Warn("failed to load favorites", "error", err.Error())
		s.mu.Lock()
		s.loadFailed = true
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.loadFailed = false
	s.ids = make([]string, 0, len(loaded))
	s.index = make(map[string]struct{}, len(loaded))
	for _, raw := range loaded {
		id := domain.NormalizeID(raw)
		if id == "" {
			continue
		}
		if _, dup := s.index[id]; dup {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	n := len(s.ids)
	s.mu.Unlock()

	logging.Debug("favorites rehydrated", "count", n)
	return nil
}

// Toggle adds id if absent and removes it if present. It reports whether id
// is a favorite afterwards. Empty ids are ignored.
func (s *Set) Toggle(id any) bool {
	key := domain.NormalizeID(id)
	if key == "" {
		return false
	}

	s.mu.Lock()
	var now bool
	if _, ok := s.index[key]; ok {
		delete(s.index, key)
		for i, v := range s.ids {
			if v == key {
				s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
				break
			}
		}
	} else {
		s.index[key] = struct{}{}
		s.ids = append(s.ids, key)
		now = true
	}
	s.scheduleSaveLocked()
	s.mu.Unlock()
	return now
}

// Clear removes every id.
func (s *Set) Clear() {
	s.mu.Lock()
	s.ids = []string{}
	s.index = make(map[string]struct{})
	s.scheduleSaveLocked()
	s.mu.Unlock()
}

// Has reports whether id is a favorite.
func (s *Set) Has(id any) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[domain.NormalizeID(id)]
	return ok
}

// IDs returns a copy of the ids in insertion order.
func (s *Set) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// scheduleSaveLocked starts a background save of the current ids.
// s.mu must be held.
func (s *Set) scheduleSaveLocked() {
	if s.persister == nil || s.closed {
		return
	}
	if s.loadFailed {
		logging.Warn("favorites not saved, stored ids were not loaded", "count", len(s.ids))
		return
	}
	s.seq++
	seq := s.seq
	snapshot := make([]string, len(s.ids))
	copy(snapshot, s.ids)
	onErr := s.onSaveError

	s.pending.Add(1)
	go s.save(seq, snapshot, onErr)
}

func (s *Set) save(seq uint64, ids []string, onErr func(error)) {
	defer s.pending.Done()
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	// a newer snapshot was already written
	if seq <= s.savedSeq {
		return
	}
	s.savedSeq = seq

	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.persister.Save(ctx, ids); err != nil {
		logging.Warn("failed to save favorites", "error", err.Error(), "count", len(ids))
		if onErr != nil {
			onErr(err)
		}
		return
	}
	logging.Debug("favorites saved", "count", len(ids))
}

// Flush blocks until every scheduled save has finished.
func (s *Set) Flush() {
	s.pending.Wait()
}

// Close flushes pending saves and closes the persister. Mutations after
// Close only change the in-memory set.
func (s *Set) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.Flush()
	if s.persister == nil {
		return nil
	}
	return s.persister.Close()
}
