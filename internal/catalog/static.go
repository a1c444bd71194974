package catalog

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/ports"
)

// StaticSource serves a fixed set of campers, for tests and offline use.
type StaticSource struct {
	items []domain.Listing
}

var _ ports.CatalogSource = (*StaticSource)(nil)

// NewStaticSource returns a source serving items in order.
func NewStaticSource(items []domain.Listing) *StaticSource {
	cp := make([]domain.Listing, len(items))
	copy(cp, items)
	return &StaticSource{items: cp}
}

// LoadStaticSource reads a JSON fixture in the list endpoint format.
func LoadStaticSource(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog fixture: %w", err)
	}
	resp, err := DecodeList(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog fixture %s: %w", path, err)
	}
	return NewStaticSource(resp.Items), nil
}

// ListCampers returns every camper.
func (s *StaticSource) ListCampers(ctx context.Context) (domain.ListResponse, error) {
	if err := ctx.Err(); err != nil {
		return domain.ListResponse{}, err
	}
	items := make([]domain.Listing, len(s.items))
	copy(items, s.items)
	return domain.ListResponse{Total: len(items), Items: items}, nil
}

// GetCamper returns the camper with the given id or ErrNotFound.
func (s *StaticSource) GetCamper(ctx context.Context, id string) (domain.Listing, error) {
	if err := ctx.Err(); err != nil {
		return domain.Listing{}, err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.Listing{}, ErrInvalidID
	}
	for _, l := range s.items {
		if string(l.ID) == id {
			return l, nil
		}
	}
	return domain.Listing{}, fmt.Errorf("camper %s: %w", id, ErrNotFound)
}
