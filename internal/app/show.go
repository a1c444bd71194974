package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/format"
)

// ErrCamperNotFound is returned when a detail fetch yields no camper.
var ErrCamperNotFound = errors.New("camper not found")

// ShowUseCase prints the detail page of one camper.
type ShowUseCase struct {
	state *State
}

// NewShowUseCase creates a new show use-case.
func NewShowUseCase(state *State) *ShowUseCase {
	if state == nil {
		panic("NewShowUseCase: state dependency cannot be nil")
	}
	return &ShowUseCase{state: state}
}

// Load fetches the detail of id and returns it.
func (u *ShowUseCase) Load(ctx context.Context, id string) (domain.Listing, error) {
	<-u.state.FetchDetail(ctx, id)
	l, ok, status, msg := u.state.Detail(id)
	if status == domain.StatusFailed {
		return domain.Listing{}, fmt.Errorf("show: %s", msg)
	}
	if !ok {
		return domain.Listing{}, ErrCamperNotFound
	}
	return l, nil
}

// Execute fetches and prints the detail of id.
func (u *ShowUseCase) Execute(ctx context.Context, id string, formatterType format.FormatterType, w io.Writer) error {
	l, err := u.Load(ctx, id)
	if err != nil {
		return err
	}
	favs := u.state.Favorites()
	formatter := format.NewFormatter(formatterType, format.Options{
		IsFavorite: func(id string) bool { return favs.Has(id) },
	})
	return formatter.FormatListing(l, w)
}
