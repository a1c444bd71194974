// Package store holds the status-tracked cache of remote camper listings.
package store

import (
	"context"
	"sync"

	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/logging"
	"github.com/traveltrucks/traveltrucks/internal/ports"
)

const (
	// DefaultListError is stored when a list fetch fails without a message.
	DefaultListError = "Failed to load campers"
	// DefaultDetailError is stored when a detail fetch fails without a message.
	DefaultDetailError = "Failed to load camper"
)

// Snapshot is a consistent view of the list slice.
type Snapshot struct {
	Items   []domain.Listing
	Status  domain.LoadStatus
	Error   string
	Version uint64
}

// Store caches the catalog list and per-id details, each with its own load
// status and error. Fetches settle asynchronously; a settlement is applied
// only if no newer fetch for the same scope was issued meanwhile.
type Store struct {
	source ports.CatalogSource

	mu      sync.RWMutex
	items   []domain.Listing
	status  domain.LoadStatus
	err     string
	listGen uint64
	version uint64

	detail       map[string]domain.Listing
	detailStatus map[string]domain.LoadStatus
	detailErr    map[string]string
	detailGen    map[string]uint64

	listenerMu sync.RWMutex
	listeners  []func()
}

// New creates an empty Store reading from source.
func New(source ports.CatalogSource) *Store {
	return &Store{
		source:       source,
		items:        []domain.Listing{},
		status:       domain.StatusIdle,
		detail:       make(map[string]domain.Listing),
		detailStatus: make(map[string]domain.LoadStatus),
		detailErr:    make(map[string]string),
		detailGen:    make(map[string]uint64),
	}
}

// OnChange registers fn to be called after every state change.
// Listeners run on the goroutine that made the change, outside any lock.
func (s *Store) OnChange(fn func()) {
	if fn == nil {
		return
	}
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.listenerMu.RLock()
	listeners := append([]func(){}, s.listeners...)
	s.listenerMu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// FetchListings starts a list fetch. The returned channel is closed once
// the fetch has settled.
func (s *Store) FetchListings(ctx context.Context) <-chan struct{} {
	s.mu.Lock()
	s.listGen++
	gen := s.listGen
	s.status = domain.StatusLoading
	s.err = ""
	s.items = []domain.Listing{}
	s.version++
	s.mu.Unlock()
	s.notify()

	done := make(chan struct{})
	go func() {
		defer close(done)
		resp, err := s.source.ListCampers(ctx)

		s.mu.Lock()
		if gen != s.listGen {
			s.mu.Unlock()
			logging.Debug("discarding stale list fetch", "generation", gen)
			return
		}
		if err != nil {
			s.status = domain.StatusFailed
			s.err = errorMessage(err, DefaultListError)
			s.items = []domain.Listing{}
			logging.Warn("list fetch failed", "error", s.err)
		} else {
			items := resp.Items
			if items == nil {
				items = []domain.Listing{}
			}
			s.items = items
			s.status = domain.StatusSucceeded
			s.err = ""
			logging.Debug("list fetch succeeded", "items", len(items))
		}
		s.version++
		s.mu.Unlock()
		s.notify()
	}()
	return done
}

// FetchListingDetail starts a detail fetch for id. Only entries keyed by id
// (or by the id the response carries) are mutated.
func (s *Store) FetchListingDetail(ctx context.Context, id any) <-chan struct{} {
	key := domain.NormalizeID(id)

	s.mu.Lock()
	s.detailGen[key]++
	gen := s.detailGen[key]
	prev, ok := s.detailStatus[key]
	if !ok || prev == domain.StatusLoading {
		prev = domain.StatusIdle
	}
	s.detailStatus[key] = domain.StatusLoading
	delete(s.detailErr, key)
	s.mu.Unlock()
	s.notify()

	done := make(chan struct{})
	go func() {
		defer close(done)
		listing, err := s.source.GetCamper(ctx, key)

		s.mu.Lock()
		if gen != s.detailGen[key] {
			s.mu.Unlock()
			logging.Debug("discarding stale detail fetch", "id", key, "generation", gen)
			return
		}
		got := domain.NormalizeID(listing.ID)
		switch {
		case err != nil:
			s.detailStatus[key] = domain.StatusFailed
			s.detailErr[key] = errorMessage(err, DefaultDetailError)
			logging.Warn("detail fetch failed", "id", key, "error", s.detailErr[key])
		case got == "":
			s.detailStatus[key] = prev
			logging.Debug("dropping detail response without id", "id", key)
		case got == key:
			listing.ID = domain.ID(got)
			s.detail[got] = listing
			s.detailStatus[got] = domain.StatusSucceeded
			delete(s.detailErr, got)
		default:
			s.detailStatus[key] = prev
			logging.Warn("detail response id mismatch", "requested", key, "received", got)
			// an in-flight fetch owns the other id until it settles
			if s.detailStatus[got] == domain.StatusLoading {
				break
			}
			listing.ID = domain.ID(got)
			s.detail[got] = listing
			s.detailStatus[got] = domain.StatusSucceeded
			delete(s.detailErr, got)
		}
		s.mu.Unlock()
		s.notify()
	}()
	return done
}

func errorMessage(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// Items returns a copy of the listed items.
func (s *Store) Items() []domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Listing, len(s.items))
	copy(out, s.items)
	return out
}

// Status returns the list load status.
func (s *Store) Status() domain.LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Error returns the list error message, empty when there is none.
func (s *Store) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Version increases every time the item list changes.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns the list slice state read under one lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.Listing, len(s.items))
	copy(items, s.items)
	return Snapshot{Items: items, Status: s.status, Error: s.err, Version: s.version}
}

// Detail returns the cached detail for id.
func (s *Store) Detail(id any) (domain.Listing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.detail[domain.NormalizeID(id)]
	return l, ok
}

// DetailStatus returns the detail load status for id, idle if never fetched.
func (s *Store) DetailStatus(id any) domain.LoadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.detailStatus[domain.NormalizeID(id)]; ok {
		return st
	}
	return domain.StatusIdle
}

// DetailError returns the detail error message for id.
func (s *Store) DetailError(id any) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detailErr[domain.NormalizeID(id)]
}
