// Package app wires the listing store, filter criteria and favorites into one
// state container and implements the command use-cases on top of it.
package app

import (
	"context"
	"sync"

	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/favorites"
	"github.com/traveltrucks/traveltrucks/internal/filters"
	"github.com/traveltrucks/traveltrucks/internal/ports"
	"github.com/traveltrucks/traveltrucks/internal/store"
)

// State owns the three slices of application state. Views read through its
// accessors and change state only through its intents.
type State struct {
	listings  *store.Store
	filters   *filters.State
	favorites *favorites.Set

	memoMu        sync.Mutex
	memoValid     bool
	memoItemsV    uint64
	memoCriteriaV uint64
	memo          []domain.Listing
	computations  int
}

// NewState creates a container reading the catalog from source. A nil favs
// gets an unpersisted set.
func NewState(source ports.CatalogSource, favs *favorites.Set) *State {
	if source == nil {
		panic("NewState: source dependency cannot be nil")
	}
	if favs == nil {
		favs = favorites.New(nil)
	}
	return &State{
		listings:  store.New(source),
		filters:   filters.New(),
		favorites: favs,
	}
}

// OnChange registers fn to run after every listing store change.
func (s *State) OnChange(fn func()) {
	s.listings.OnChange(fn)
}

// FetchListings starts a catalog fetch.
func (s *State) FetchListings(ctx context.Context) <-chan struct{} {
	return s.listings.FetchListings(ctx)
}

// FetchDetail starts a detail fetch for id.
func (s *State) FetchDetail(ctx context.Context, id any) <-chan struct{} {
	return s.listings.FetchListingDetail(ctx, id)
}

// ApplyFilters merges p into the applied criteria.
func (s *State) ApplyFilters(p *filters.Patch) {
	s.filters.ApplyFilters(p)
}

// ResetFilters restores the default criteria.
func (s *State) ResetFilters() {
	s.filters.ResetFilters()
}

// ToggleFavorite flips id in the favorites set and reports whether it is a
// favorite afterwards.
func (s *State) ToggleFavorite(id any) bool {
	return s.favorites.Toggle(id)
}

// ClearFavorites empties the favorites set.
func (s *State) ClearFavorites() {
	s.favorites.Clear()
}

// Listings returns the list slice of the store.
func (s *State) Listings() store.Snapshot {
	return s.listings.Snapshot()
}

// Detail returns the cached detail of id with its status and error.
func (s *State) Detail(id any) (domain.Listing, bool, domain.LoadStatus, string) {
	l, ok := s.listings.Detail(id)
	return l, ok, s.listings.DetailStatus(id), s.listings.DetailError(id)
}

// Criteria returns the applied criteria.
func (s *State) Criteria() domain.Criteria {
	return s.filters.Applied()
}

// Favorites returns the favorites set.
func (s *State) Favorites() *favorites.Set {
	return s.favorites
}

// Visible returns the listings matching the applied criteria. The result is
// recomputed only when the items or the criteria changed; callers must not
// modify it.
func (s *State) Visible() []domain.Listing {
	snap := s.listings.Snapshot()
	criteria, criteriaV := s.filters.Snapshot()

	s.memoMu.Lock()
	defer s.memoMu.Unlock()
	if s.memoValid && s.memoItemsV == snap.Version && s.memoCriteriaV == criteriaV {
		return s.memo
	}
	s.memo = domain.VisibleListings(snap.Items, criteria)
	s.memoItemsV = snap.Version
	s.memoCriteriaV = criteriaV
	s.memoValid = true
	s.computations++
	return s.memo
}

// FavoriteListings returns the loaded listings that are favorites, in
// catalog order.
func (s *State) FavoriteListings() []domain.Listing {
	return domain.FavoriteListings(s.listings.Items(), s.favorites.IDs())
}
