package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the application-level key bindings. Grid movement lives
// in components.GridKeyMap.
type KeyMap struct {
	Search  key.Binding
	Genre   key.Binding
	Year    key.Binding
	Sort    key.Binding
	Refresh key.Binding
	Reset   key.Binding
	Help    key.Binding
	Escape  key.Binding
	Enter   key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Genre: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "genre"),
		),
		Year: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "year"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "reset"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// footerBindings are listed in the footer help line
func footerBindings() []key.Binding {
	return []key.Binding{Keys.Search, Keys.Genre, Keys.Year, Keys.Sort, Keys.Reset, Keys.Refresh, Keys.Help, Keys.Quit}
}
