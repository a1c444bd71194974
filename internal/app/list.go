package app

import (
	"context"
	"fmt"
	"io"

	"github.com/traveltrucks/traveltrucks/internal/colors"
	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/filters"
	"github.com/traveltrucks/traveltrucks/internal/format"
)

// ListOptions holds the parameters of a catalog listing.
type ListOptions struct {
	Patch         *filters.Patch
	FavoritesOnly bool
	Pages         int
	PageSize      int
	Format        format.FormatterType
	TableStyle    string
}

// ListUseCase coordinates catalog listing behavior.
type ListUseCase struct {
	state *State
}

// NewListUseCase creates a new list use-case.
func NewListUseCase(state *State) *ListUseCase {
	if state == nil {
		panic("NewListUseCase: state dependency cannot be nil")
	}
	return &ListUseCase{state: state}
}

// Execute loads the catalog and prints the first opts.Pages pages of the
// listings matching opts.
func (u *ListUseCase) Execute(ctx context.Context, opts ListOptions, w io.Writer) error {
	<-u.state.FetchListings(ctx)
	snap := u.state.Listings()
	if snap.Status == domain.StatusFailed {
		return fmt.Errorf("list: %s", snap.Error)
	}

	u.state.ApplyFilters(opts.Patch)
	var items []domain.Listing
	if opts.FavoritesOnly {
		items = u.state.FavoriteListings()
	} else {
		items = u.state.Visible()
	}

	if len(items) == 0 {
		if opts.Format == format.FormatterTypeJSON {
			return format.NewJSONFormatter().FormatListings(nil, w)
		}
		_, _ = fmt.Fprintf(w, "%s%s%s\n", colors.Blue, "No campers found", colors.Reset)
		return nil
	}

	page := domain.Page(items, opts.Pages, opts.PageSize)
	favs := u.state.Favorites()
	formatter := format.NewFormatter(opts.Format, format.Options{
		IsFavorite: func(id string) bool { return favs.Has(id) },
		TableStyle: opts.TableStyle,
	})
	if err := formatter.FormatListings(page, w); err != nil {
		return err
	}
	if opts.Format != format.FormatterTypeJSON && domain.HasMore(items, opts.Pages, opts.PageSize) {
		pages := opts.Pages
		if pages <= 0 {
			pages = 1
		}
		colors.Info(fmt.Sprintf("Showing %d of %d campers; use --page %d to load more", len(page), len(items), pages+1))
	}
	return nil
}
