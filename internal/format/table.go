package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/traveltrucks/traveltrucks/internal/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TableFormatter renders listings with lipgloss tables.
type TableFormatter struct {
	opts Options
}

// NewTableFormatter creates a new TableFormatter.
func NewTableFormatter(opts Options) *TableFormatter {
	return &TableFormatter{opts: opts}
}

func (f *TableFormatter) newTable() *table.Table {
	border := lipgloss.RoundedBorder()
	if f.opts.TableStyle == "minimal" {
		border = lipgloss.HiddenBorder()
	}
	return table.New().
		Border(border).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// FormatListings formats listings as a table.
func (f *TableFormatter) FormatListings(items []domain.Listing, writer io.Writer) error {
	if len(items) == 0 {
		return nil
	}
	t := f.newTable().Headers("", "ID", "Name", "Price", "Location", "Rating", "Tags")
	for _, l := range items {
		mark := ""
		if f.opts.favorite(l.ID) {
			mark = favoriteMark
		}
		t.Row(mark, string(l.ID), truncate(l.Name, 28), PriceLabel(l.Price), l.Location,
			RatingSummary(l), strings.Join(CardTags(l), ", "))
	}
	_, err := fmt.Fprintln(writer, t.Render())
	return err
}

// FormatListing formats one listing as a two-column table.
func (f *TableFormatter) FormatListing(l domain.Listing, writer io.Writer) error {
	name := l.Name
	if f.opts.favorite(l.ID) {
		name = favoriteMark + " " + name
	}
	t := f.newTable().Headers("Field", "Value").
		Row("ID", string(l.ID)).
		Row("Name", name).
		Row("Price", PriceLabel(l.Price)).
		Row("Rating", RatingSummary(l)).
		Row("Location", l.Location).
		Row("Features", strings.Join(FeatureTags(l), ", "))
	for _, d := range Details(l) {
		t.Row(d.Label, d.Value)
	}
	if _, err := fmt.Fprintln(writer, t.Render()); err != nil {
		return err
	}
	if l.Description != "" {
		if _, err := fmt.Fprintf(writer, "\n%s\n", l.Description); err != nil {
			return err
		}
	}
	return nil
}
