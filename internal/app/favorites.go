package app

import (
	"context"
	"fmt"
	"io"

	"github.com/traveltrucks/traveltrucks/internal/colors"
	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/format"
)

// FavoritesUseCase coordinates the favorites commands.
type FavoritesUseCase struct {
	state *State
}

// NewFavoritesUseCase creates a favorites use-case.
func NewFavoritesUseCase(state *State) *FavoritesUseCase {
	if state == nil {
		panic("NewFavoritesUseCase: state dependency cannot be nil")
	}
	return &FavoritesUseCase{state: state}
}

// Toggle flips id and reports the new membership on the console.
func (u *FavoritesUseCase) Toggle(id string) bool {
	on := u.state.ToggleFavorite(id)
	if on {
		colors.Success(fmt.Sprintf("Added %s to favorites", id))
	} else {
		colors.Success(fmt.Sprintf("Removed %s from favorites", id))
	}
	return on
}

// Clear empties the favorites set.
func (u *FavoritesUseCase) Clear() {
	n := u.state.Favorites().Len()
	u.state.ClearFavorites()
	colors.Success(fmt.Sprintf("Cleared %d favorites", n))
}

// List prints the favorite campers. If the catalog cannot be loaded only the
// ids are printed.
func (u *FavoritesUseCase) List(ctx context.Context, formatterType format.FormatterType, w io.Writer) error {
	ids := u.state.Favorites().IDs()
	if len(ids) == 0 {
		_, _ = fmt.Fprintf(w, "%s%s%s\n", colors.Blue, "No favorites yet", colors.Reset)
		return nil
	}

	<-u.state.FetchListings(ctx)
	if snap := u.state.Listings(); snap.Status == domain.StatusFailed {
		colors.Warning(fmt.Sprintf("could not load catalog: %s", snap.Error))
		for _, id := range ids {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
		}
		return nil
	}

	items := u.state.FavoriteListings()
	formatter := format.NewFormatter(formatterType, format.Options{
		IsFavorite: func(string) bool { return true },
	})
	return formatter.FormatListings(items, w)
}
