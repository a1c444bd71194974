package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/traveltrucks/traveltrucks/internal/notice"
)

// listingsSettledMsg is sent when a catalog fetch has settled.
type listingsSettledMsg struct{}

// detailSettledMsg is sent when the detail fetch for ID has settled.
type detailSettledMsg struct {
	ID string
}

// storeChangedMsg is sent after the listing store changed.
type storeChangedMsg struct{}

// favoritesReadyMsg is sent once the favorites set has been rehydrated.
type favoritesReadyMsg struct{}

// noticeMsg carries a reported notice to the status line.
type noticeMsg struct {
	Message notice.Message
}

// waitFor returns a command that blocks until ch is closed and then
// delivers msg.
func waitFor(ch <-chan struct{}, msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return msg
	}
}

// waitChange delivers the next store change signal.
func waitChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

// waitNotice delivers the next reported notice.
func waitNotice(ch <-chan notice.Message) tea.Cmd {
	return func() tea.Msg {
		m, ok := <-ch
		if !ok {
			return nil
		}
		return noticeMsg{Message: m}
	}
}
