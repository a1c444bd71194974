package app

import (
	"context"

	"github.com/traveltrucks/traveltrucks/internal/booking"
	"github.com/traveltrucks/traveltrucks/internal/colors"
	"github.com/traveltrucks/traveltrucks/internal/logging"
)

// BookUseCase validates a booking request and confirms it. Nothing is sent.
type BookUseCase struct {
	state *State
}

// NewBookUseCase creates a booking use-case.
func NewBookUseCase(state *State) *BookUseCase {
	if state == nil {
		panic("NewBookUseCase: state dependency cannot be nil")
	}
	return &BookUseCase{state: state}
}

// Execute validates req and returns the confirmation message.
func (u *BookUseCase) Execute(ctx context.Context, req booking.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}

	var name string
	if req.ListingID != "" {
		<-u.state.FetchDetail(ctx, req.ListingID)
		if l, ok, _, _ := u.state.Detail(req.ListingID); ok {
			name = l.Name
		}
	}
	msg := req.Confirmation(name)
	logging.Info("booking request confirmed", "listing_id", req.ListingID, "date", req.Date)
	colors.Success(msg)
	return msg, nil
}
