// Package ports defines application boundary interfaces used by core services.
package ports

import (
	"context"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

// CatalogSource defines the remote catalog operations used by the listing store.
type CatalogSource interface {
	ListCampers(ctx context.Context) (domain.ListResponse, error)
	GetCamper(ctx context.Context, id string) (domain.Listing, error)
}

// FavoritesPersister defines the storage operations used by the favorites set.
// Save replaces the whole persisted set with ids, in order.
type FavoritesPersister interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
	Close() error
}

// Reporter surfaces user-facing errors and warnings.
type Reporter interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}
