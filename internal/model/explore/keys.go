package explore

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/pathbot/internal/nav"
)

type keyMap struct {
	North   key.Binding
	South   key.Binding
	East    key.Binding
	West    key.Binding
	Restart key.Binding
	Next    key.Binding
	Prev    key.Binding
	Dismiss key.Binding
	Clear   key.Binding
	Map     key.Binding
	About   key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		North:   key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑", "north")),
		South:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓", "south")),
		East:    key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("→", "east")),
		West:    key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("←", "west")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next note")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev note")),
		Dismiss: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss")),
		Clear:   key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear")),
		Map:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "map")),
		About:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "about")),
		// Handled by the app, listed here for help only.
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// direction maps a movement binding to its direction.
func (k keyMap) direction(msg tea.KeyMsg) (nav.Direction, bool) {
	switch {
	case key.Matches(msg, k.North):
		return nav.N, true
	case key.Matches(msg, k.South):
		return nav.S, true
	case key.Matches(msg, k.East):
		return nav.E, true
	case key.Matches(msg, k.West):
		return nav.W, true
	}
	return 0, false
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.North, k.South, k.East, k.West, k.Restart, k.Dismiss, k.Map, k.About, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.North, k.South, k.East, k.West},
		{k.Restart, k.Next, k.Prev, k.Dismiss, k.Clear},
		{k.Map, k.About, k.Quit},
	}
}
