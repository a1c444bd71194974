// Package tui implements the interactive catalog browser.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/traveltrucks/traveltrucks/internal/app"
	"github.com/traveltrucks/traveltrucks/internal/domain"
	"github.com/traveltrucks/traveltrucks/internal/filters"
	"github.com/traveltrucks/traveltrucks/internal/logging"
	"github.com/traveltrucks/traveltrucks/internal/notice"
)

type viewMode int

const (
	viewCatalog viewMode = iota
	viewDetail
	viewFavorites
)

// Options configures a Model.
type Options struct {
	PageSize int
}

// Model is the bubbletea model of the catalog browser. The draft criteria
// are edited locally and only reach the applied criteria on search.
type Model struct {
	ctx      context.Context
	state    *app.State
	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	location textinput.Model
	notices  *notice.Queue
	noticeCh chan notice.Message
	changeCh chan struct{}

	mode           viewMode
	editing        bool
	draft          domain.Criteria
	cursor         int
	pages          int
	pageSize       int
	detailID       string
	detailSettled  bool
	favoritesReady bool
	width          int
	height         int
}

// NewModel creates a model over state.
func NewModel(ctx context.Context, state *app.State, opts Options) *Model {
	if state == nil {
		panic("NewModel: state dependency cannot be nil")
	}
	if opts.PageSize <= 0 {
		opts.PageSize = domain.DefaultPageSize
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	ti := textinput.New()
	ti.Placeholder = "City"
	ti.Prompt = "Location: "
	ti.CharLimit = 64

	m := &Model{
		ctx:      ctx,
		state:    state,
		keys:     defaultKeyMap(),
		help:     help.New(),
		spinner:  sp,
		location: ti,
		noticeCh: make(chan notice.Message, 16),
		changeCh: make(chan struct{}, 1),
		draft:    state.Criteria(),
		pages:    1,
		pageSize: opts.PageSize,
	}
	m.notices = notice.NewQueue(func(msg notice.Message) {
		select {
		case m.noticeCh <- msg:
		default:
		}
	})
	// coalesce bursts of store changes into one pending redraw
	state.OnChange(func() {
		select {
		case m.changeCh <- struct{}{}:
		default:
		}
	})
	state.Favorites().OnSaveError(func(err error) {
		m.notices.Warning("Could not save favorites: " + err.Error())
	})
	return m
}

// Notices returns the queue the model reports to.
func (m *Model) Notices() *notice.Queue {
	return m.notices
}

// Init starts the first catalog fetch and waits for favorites.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchListings(),
		waitFor(m.state.Favorites().Ready(), favoritesReadyMsg{}),
		waitNotice(m.noticeCh),
		waitChange(m.changeCh),
	)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case listingsSettledMsg:
		snap := m.state.Listings()
		if snap.Status == domain.StatusFailed {
			m.notices.Error(snap.Error)
		}
		m.clampCursor()
		return m, nil
	case detailSettledMsg:
		if msg.ID != m.detailID {
			return m, nil
		}
		m.detailSettled = true
		if _, _, status, errMsg := m.state.Detail(msg.ID); status == domain.StatusFailed {
			m.notices.Error(errMsg)
		}
		return m, nil
	case storeChangedMsg:
		m.clampCursor()
		return m, waitChange(m.changeCh)
	case favoritesReadyMsg:
		m.favoritesReady = true
		return m, nil
	case noticeMsg:
		logging.Debug("tui notice", "text", msg.Message.Text)
		return m, waitNotice(m.noticeCh)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editing {
		return m.handleEditingKey(msg)
	}
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}
	switch m.mode {
	case viewDetail:
		return m.handleDetailKey(msg)
	case viewFavorites:
		return m.handleFavoritesKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
}

func (m *Model) handleEditingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.draft.Location = m.location.Value()
		m.stopEditing()
		return m, nil
	case tea.KeyEsc:
		m.location.SetValue(m.draft.Location)
		m.stopEditing()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.location, cmd = m.location.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.location.Blur()
}

func (m *Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.currentItems()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(items))
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(items))
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(items) {
			return m, m.openDetail(string(items[m.cursor].ID))
		}
	case key.Matches(msg, m.keys.Favorite):
		if m.cursor < len(items) {
			m.toggleFavorite(string(items[m.cursor].ID))
		}
	case key.Matches(msg, m.keys.Location):
		m.editing = true
		m.location.SetValue(m.draft.Location)
		return m, m.location.Focus()
	case key.Matches(msg, m.keys.Type):
		m.draft.VehicleType = nextVehicleType(m.draft.VehicleType)
	case key.Matches(msg, m.keys.Automatic):
		if m.draft.Transmission == domain.TransmissionAutomatic {
			m.draft.Transmission = ""
		} else {
			m.draft.Transmission = domain.TransmissionAutomatic
		}
	case key.Matches(msg, m.keys.Equipment):
		idx := int(msg.Runes[0] - '1')
		if idx >= 0 && idx < len(domain.EquipmentFlags) {
			flag := domain.EquipmentFlags[idx]
			m.draft.Equipment[flag] = !m.draft.Equipment[flag]
		}
	case key.Matches(msg, m.keys.Apply):
		m.applyDraft()
	case key.Matches(msg, m.keys.Reset):
		m.state.ResetFilters()
		m.draft = m.state.Criteria()
		m.location.SetValue("")
		m.pages = 1
		m.cursor = 0
	case key.Matches(msg, m.keys.Reload):
		return m, m.fetchListings()
	case key.Matches(msg, m.keys.More):
		if domain.HasMore(m.state.Visible(), m.pages, m.pageSize) {
			m.pages++
		}
	case key.Matches(msg, m.keys.Favorites):
		m.mode = viewFavorites
		m.cursor = 0
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = viewCatalog
		m.detailID = ""
		m.detailSettled = false
		m.clampCursor()
	case key.Matches(msg, m.keys.Favorite):
		m.toggleFavorite(m.detailID)
	case key.Matches(msg, m.keys.Reload):
		return m, m.openDetail(m.detailID)
	}
	return m, nil
}

func (m *Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.currentItems()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, len(items))
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, len(items))
	case key.Matches(msg, m.keys.Open):
		if m.cursor < len(items) {
			return m, m.openDetail(string(items[m.cursor].ID))
		}
	case key.Matches(msg, m.keys.Favorite):
		if m.cursor < len(items) {
			m.toggleFavorite(string(items[m.cursor].ID))
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Favorites):
		m.mode = viewCatalog
		m.cursor = 0
	}
	return m, nil
}

// applyDraft sends the whole draft as one patch and restarts paging.
func (m *Model) applyDraft() {
	equipment := make(map[string]bool, len(m.draft.Equipment))
	for k, v := range m.draft.Equipment {
		equipment[k] = v
	}
	m.state.ApplyFilters(&filters.Patch{
		Location:     filters.String(m.draft.Location),
		VehicleType:  filters.String(m.draft.VehicleType),
		Transmission: filters.String(m.draft.Transmission),
		Equipment:    equipment,
	})
	m.pages = 1
	m.cursor = 0
	logging.Debug("tui applied filters", "location", m.draft.Location, "type", m.draft.VehicleType)
}

func (m *Model) toggleFavorite(id string) {
	if !m.favoritesReady || id == "" {
		return
	}
	if m.state.ToggleFavorite(id) {
		m.notices.Success("Added to favorites")
	} else {
		m.notices.Info("Removed from favorites")
	}
}

func (m *Model) openDetail(id string) tea.Cmd {
	m.mode = viewDetail
	m.detailID = id
	m.detailSettled = false
	return waitFor(m.state.FetchDetail(m.ctx, id), detailSettledMsg{ID: id})
}

func (m *Model) fetchListings() tea.Cmd {
	return waitFor(m.state.FetchListings(m.ctx), listingsSettledMsg{})
}

// currentItems returns the rows the active view shows.
func (m *Model) currentItems() []domain.Listing {
	if m.mode == viewFavorites {
		if !m.favoritesReady {
			return nil
		}
		return m.state.FavoriteListings()
	}
	return domain.Page(m.state.Visible(), m.pages, m.pageSize)
}

func (m *Model) moveCursor(delta, n int) {
	if n == 0 {
		m.cursor = 0
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
}

func (m *Model) clampCursor() {
	m.moveCursor(0, len(m.currentItems()))
}

// draftDirty reports whether the draft differs from the applied criteria.
func (m *Model) draftDirty() bool {
	applied := m.state.Criteria()
	if applied.Location != m.draft.Location ||
		applied.VehicleType != m.draft.VehicleType ||
		applied.Transmission != m.draft.Transmission {
		return true
	}
	for _, f := range domain.EquipmentFlags {
		if applied.Equipment[f] != m.draft.Equipment[f] {
			return true
		}
	}
	return false
}

// nextVehicleType cycles through the known forms and back to none.
func nextVehicleType(current string) string {
	if current == "" {
		return domain.VehicleForms[0]
	}
	for i, f := range domain.VehicleForms {
		if f == current && i+1 < len(domain.VehicleForms) {
			return domain.VehicleForms[i+1]
		}
	}
	return ""
}
