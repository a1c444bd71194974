package format

import (
	"encoding/json"
	"io"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

// JSONFormatter writes listings as indented JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatListings writes {"total": n, "items": [...]}.
func (f *JSONFormatter) FormatListings(items []domain.Listing, writer io.Writer) error {
	if items == nil {
		items = []domain.Listing{}
	}
	return encode(writer, domain.ListResponse{Total: len(items), Items: items})
}

// FormatListing writes one listing object.
func (f *JSONFormatter) FormatListing(l domain.Listing, writer io.Writer) error {
	return encode(writer, l)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
