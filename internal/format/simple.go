package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

const favoriteMark = "♥"

// SimpleFormatter prints one line per listing and a plain-text detail page.
type SimpleFormatter struct {
	opts Options
}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter(opts Options) *SimpleFormatter {
	return &SimpleFormatter{opts: opts}
}

// FormatListings formats listings one per line.
func (f *SimpleFormatter) FormatListings(items []domain.Listing, writer io.Writer) error {
	for _, l := range items {
		mark := " "
		if f.opts.favorite(l.ID) {
			mark = favoriteMark
		}
		_, err := fmt.Fprintf(writer, "%s %-4s %-28s %12s  %-22s %s  [%s]\n",
			mark, l.ID, truncate(l.Name, 28), PriceLabel(l.Price), truncate(l.Location, 22),
			RatingSummary(l), strings.Join(CardTags(l), ", "))
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatListing formats the detail page of one listing.
func (f *SimpleFormatter) FormatListing(l domain.Listing, writer io.Writer) error {
	var b strings.Builder
	title := l.Name
	if f.opts.favorite(l.ID) {
		title = favoriteMark + " " + title
	}
	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "%s  %s\n", RatingSummary(l), l.Location)
	fmt.Fprintf(&b, "%s\n", PriceLabel(l.Price))
	if l.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", l.Description)
	}
	if tags := FeatureTags(l); len(tags) > 0 {
		fmt.Fprintf(&b, "\nFeatures: %s\n", strings.Join(tags, ", "))
	}
	if details := Details(l); len(details) > 0 {
		b.WriteString("\nVehicle details\n")
		for _, d := range details {
			fmt.Fprintf(&b, "  %-12s %s\n", d.Label, d.Value)
		}
	}
	if len(l.Reviews) > 0 {
		b.WriteString("\nReviews\n")
		for _, r := range l.Reviews {
			fmt.Fprintf(&b, "  %s %s\n", stars(r.ReviewerRating), r.ReviewerName)
			if r.Comment != "" {
				fmt.Fprintf(&b, "    %s\n", r.Comment)
			}
		}
	}
	_, err := io.WriteString(writer, b.String())
	return err
}

func stars(rating float64) string {
	n := int(rating + 0.5)
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

// truncate shortens s to width runes, adding "..." if truncated.
func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width < 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
