// Package explore is the main screen: the current room, its exits, the
// compass and the notification list.
package explore

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/pathbot/internal/nav"
	"github.com/vinser/pathbot/internal/notify"
	"github.com/vinser/pathbot/internal/render"
	"github.com/vinser/pathbot/internal/state"
	"github.com/vinser/pathbot/internal/style"
)

const (
	width  = 64
	height = 24
)

// Source is the read-only view of the exploration the screen draws.
type Source interface {
	State() *state.State
	Notifications() *notify.Queue
	Loading() bool
	InFlight() bool
}

type Model struct {
	src     Source
	keys    keyMap
	help    help.Model
	spinner spinner.Model
	// selected is the notification x dismisses.
	selected notify.ID

	termWidth  int
	termHeight int
}

type MoveMsg struct {
	Direction nav.Direction
}

func moveCmd(d nav.Direction) tea.Cmd {
	return func() tea.Msg {
		return MoveMsg{Direction: d}
	}
}

type RestartMsg struct{}

func restartCmd() tea.Cmd {
	return func() tea.Msg {
		return RestartMsg{}
	}
}

type DismissMsg struct {
	ID notify.ID
}

func dismissCmd(id notify.ID) tea.Cmd {
	return func() tea.Msg {
		return DismissMsg{ID: id}
	}
}

type ClearMsg struct{}

func clearCmd() tea.Cmd {
	return func() tea.Msg {
		return ClearMsg{}
	}
}

type OpenAtlasMsg struct{}

func openAtlasCmd() tea.Cmd {
	return func() tea.Msg {
		return OpenAtlasMsg{}
	}
}

type OpenAboutMsg struct{}

func openAboutCmd() tea.Cmd {
	return func() tea.Msg {
		return OpenAboutMsg{}
	}
}

func New(src Source) Model {
	h := help.New()
	h.Width = width
	return Model{
		src:     src,
		keys:    newKeyMap(),
		help:    h,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(style.Spinner)),
	}
}

func (m *Model) SetSize(termWidth, termHeight int) {
	m.termWidth = termWidth
	m.termHeight = termHeight
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if d, ok := m.keys.direction(msg); ok {
			return m, moveCmd(d)
		}
		switch {
		case key.Matches(msg, m.keys.Restart):
			return m, restartCmd()
		case key.Matches(msg, m.keys.Next):
			m.moveSelection(1)
		case key.Matches(msg, m.keys.Prev):
			m.moveSelection(-1)
		case key.Matches(msg, m.keys.Dismiss):
			shown, _ := shownNotifications(m.src.Notifications())
			if len(shown) == 0 {
				return m, nil
			}
			i := selectedIndex(shown, m.selected)
			// Keep the cursor on the entry that takes the dismissed one's place.
			switch {
			case i+1 < len(shown):
				m.selected = shown[i+1].ID
			case i > 0:
				m.selected = shown[i-1].ID
			}
			return m, dismissCmd(shown[i].ID)
		case key.Matches(msg, m.keys.Clear):
			return m, clearCmd()
		case key.Matches(msg, m.keys.Map):
			return m, openAtlasCmd()
		case key.Matches(msg, m.keys.About):
			return m, openAboutCmd()
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

// moveSelection steps the cursor through the shown notifications, wrapping
// at either end.
func (m *Model) moveSelection(delta int) {
	shown, _ := shownNotifications(m.src.Notifications())
	if len(shown) == 0 {
		return
	}
	i := (selectedIndex(shown, m.selected) + delta + len(shown)) % len(shown)
	m.selected = shown[i].ID
}

// Selected returns the notification the cursor is on.
func (m Model) Selected() (notify.ID, bool) {
	shown, _ := shownNotifications(m.src.Notifications())
	if len(shown) == 0 {
		return 0, false
	}
	return shown[selectedIndex(shown, m.selected)].ID, true
}

func (m Model) View() string {
	return render.Page(m.title(), m.content(), m.help.View(m.keys), width, height, m.termWidth, m.termHeight)
}

func (m Model) title() string {
	t := fmt.Sprintf("Pathbot · %d rooms discovered", m.src.State().Len())
	if m.src.InFlight() {
		t += " " + m.spinner.View()
	}
	return t
}

func (m Model) content() string {
	st := m.src.State()
	var sections []string

	switch status := st.Status().(type) {
	case state.Loading:
		sections = append(sections, m.spinner.View()+" Loading...")
	case state.InRoom:
		room, _ := st.CurrentRoom()
		coord, _ := st.CurrentCoordinate()
		var message string
		if room.Message != "" {
			message = style.RoomMessage.Width(width - 2).Render(room.Message)
		}
		sections = append(sections,
			render.Section("Room "+coord.String(),
				style.Description.Width(width-2).Render(room.Description),
				message),
			render.Section("Exits", exitsLine(st.MovableDirections())),
		)
		if hint, ok := st.CurrentExitHint(); ok {
			sections = append(sections, render.Section("Exit compass", compassLine(hint)))
		}
	case state.Finished:
		sections = append(sections, render.Section("Finished",
			style.Finished.Width(width-2).Render(status.Exit.Description),
			"Press r to explore a new maze."))
	}

	if q := m.src.Notifications(); q.Len() > 0 {
		sections = append(sections, render.Section("Notifications", notificationLines(q, m.selected)...))
	}
	return strings.Join(sections, "\n\n")
}
