// Package format renders listings for the command line.
package format

import (
	"io"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

// Formatter writes listings to a writer.
type Formatter interface {
	// FormatListings writes a catalog page.
	FormatListings(items []domain.Listing, writer io.Writer) error

	// FormatListing writes the full detail of one listing.
	FormatListing(listing domain.Listing, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeSimple prints one line per listing.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeTable prints a bordered table.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeJSON prints listings as JSON.
	FormatterTypeJSON FormatterType = "json"
)

// Options tune a formatter.
type Options struct {
	// IsFavorite marks favorite rows. Nil means nothing is marked.
	IsFavorite func(id string) bool
	// TableStyle is "default" (rounded border) or "minimal" (no border).
	TableStyle string
}

func (o Options) favorite(id domain.ID) bool {
	return o.IsFavorite != nil && o.IsFavorite(string(id))
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType, opts Options) Formatter {
	switch formatterType {
	case FormatterTypeTable:
		return NewTableFormatter(opts)
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewSimpleFormatter(opts)
	}
}
