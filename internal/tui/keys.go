package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Open      key.Binding
	Back      key.Binding
	Favorite  key.Binding
	Location  key.Binding
	Type      key.Binding
	Automatic key.Binding
	Equipment key.Binding
	Apply     key.Binding
	Reset     key.Binding
	Reload    key.Binding
	Favorites key.Binding
	More      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Location:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "location")),
		Type:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "type")),
		Automatic: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "automatic")),
		Equipment: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "equipment")),
		Apply:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "search")),
		Reset:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "reset")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Favorites: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "favorites")),
		More:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "load more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) catalogHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Open, k.Favorite, k.Location, k.Type, k.Automatic, k.Equipment, k.Apply, k.Reset, k.More, k.Favorites, k.Quit}
}

func (k keyMap) detailHelp() []key.Binding {
	return []key.Binding{k.Favorite, k.Reload, k.Back, k.Quit}
}

func (k keyMap) favoritesHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Open, k.Favorite, k.Back, k.Quit}
}
