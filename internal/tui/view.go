package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/format"
	"github.com/traveltrucks/traveltrucks/internal/notice"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("160")).Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("244"))
	rowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("24")).Bold(true)
	favoriteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	draftStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))

	noticeStyles = map[notice.Kind]lipgloss.Style{
		notice.KindError:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		notice.KindWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		notice.KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		notice.KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

// View renders the active screen.
func (m *Model) View() string {
	var s strings.Builder
	var bindings []key.Binding

	switch m.mode {
	case viewDetail:
		s.WriteString(titleStyle.Render("TravelTrucks · Camper"))
		s.WriteString("\n\n")
		s.WriteString(m.renderDetail())
		bindings = m.keys.detailHelp()
	case viewFavorites:
		s.WriteString(titleStyle.Render("TravelTrucks · Favorites"))
		s.WriteString("\n\n")
		s.WriteString(m.renderFavorites())
		bindings = m.keys.favoritesHelp()
	default:
		s.WriteString(titleStyle.Render("TravelTrucks · Catalog"))
		s.WriteString("\n\n")
		s.WriteString(m.renderFilters())
		s.WriteString("\n\n")
		s.WriteString(m.renderCatalog())
		bindings = m.keys.catalogHelp()
	}

	s.WriteString("\n")
	s.WriteString(m.renderNotice())
	s.WriteString("\n")
	s.WriteString(m.help.ShortHelpView(bindings))
	return s.String()
}

func (m *Model) renderFilters() string {
	if m.editing {
		return m.location.View()
	}
	equipment := strings.Join(m.draft.ActiveEquipment(), ", ")
	line := fmt.Sprintf("Location: %s | Type: %s | Transmission: %s | Equipment: %s",
		orAny(m.draft.Location), orAny(m.draft.VehicleType), orAny(m.draft.Transmission), orAny(equipment))
	if m.draftDirty() {
		return draftStyle.Render(line + "  (press a to search)")
	}
	return headerStyle.Render(line)
}

func (m *Model) renderCatalog() string {
	snap := m.state.Listings()
	switch snap.Status {
	case domain.StatusIdle, domain.StatusLoading:
		if len(snap.Items) == 0 {
			return m.spinner.View() + " Loading campers..."
		}
	case domain.StatusFailed:
		return noticeStyles[notice.KindError].Render(snap.Error)
	}

	visible := m.state.Visible()
	if len(visible) == 0 {
		return mutedStyle.Render("No campers found")
	}
	page := domain.Page(visible, m.pages, m.pageSize)
	var s strings.Builder
	s.WriteString(m.renderRows(page))
	if domain.HasMore(visible, m.pages, m.pageSize) {
		s.WriteString("\n")
		s.WriteString(mutedStyle.Render(fmt.Sprintf("Showing %d of %d campers (n: load more)", len(page), len(visible))))
	}
	return s.String()
}

func (m *Model) renderFavorites() string {
	if !m.favoritesReady {
		return m.spinner.View() + " Loading favorites..."
	}
	items := m.currentItems()
	if len(items) == 0 {
		return mutedStyle.Render("No favorite campers yet")
	}
	return m.renderRows(items)
}

func (m *Model) renderRows(items []domain.Listing) string {
	var s strings.Builder
	for i, l := range items {
		mark := " "
		if m.favoritesReady && m.state.Favorites().Has(string(l.ID)) {
			mark = favoriteStyle.Render("♥")
		}
		row := fmt.Sprintf("%-28s %10s  %-22s %s", l.Name, format.PriceLabel(l.Price), l.Location, format.RatingSummary(l))
		if i == m.cursor {
			row = selectedStyle.Render("> " + row)
		} else {
			row = rowStyle.Render("  " + row)
		}
		s.WriteString(mark + " " + row + "\n")
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func (m *Model) renderDetail() string {
	l, ok, status, errMsg := m.state.Detail(m.detailID)
	if status == domain.StatusFailed {
		if errMsg == "" {
			errMsg = "Failed to load camper"
		}
		return noticeStyles[notice.KindError].Render(errMsg)
	}
	if !ok {
		// a dropped response settles the fetch but leaves the status idle
		if status.IsSettled() || (m.detailSettled && status != domain.StatusLoading) {
			return mutedStyle.Render("Camper not found")
		}
		return m.spinner.View() + " Loading camper..."
	}

	var s strings.Builder
	formatter := format.NewSimpleFormatter(format.Options{IsFavorite: m.isFavorite})
	if err := formatter.FormatListing(l, &s); err != nil {
		return noticeStyles[notice.KindError].Render(err.Error())
	}
	return strings.TrimSuffix(s.String(), "\n")
}

func (m *Model) renderNotice() string {
	msg, ok := m.notices.Latest()
	if !ok {
		return ""
	}
	return noticeStyles[msg.Kind].Render(msg.Text)
}

func (m *Model) isFavorite(id string) bool {
	return m.favoritesReady && m.state.Favorites().Has(id)
}

func orAny(s string) string {
	if s == "" {
		return "any"
	}
	return s
}
