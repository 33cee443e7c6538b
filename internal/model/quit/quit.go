package quit

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/pathbot/internal/style"
)

const quitPeriod = 1500 * time.Millisecond

type Model struct {
	quitUntil time.Time
	rooms     int
	finished  bool

	termWidth  int
	termHeight int
}

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type TimedoutMsg struct{}

func timedoutCmd() tea.Cmd {
	return func() tea.Msg {
		return TimedoutMsg{}
	}
}

// New shows a goodbye for a session that discovered rooms rooms.
func New(rooms int, finished bool) Model {
	return Model{
		quitUntil: time.Now().Add(quitPeriod),
		rooms:     rooms,
		finished:  finished,
	}
}

func (m *Model) SetSize(termWidth, termHeight int) {
	m.termWidth = termWidth
	m.termHeight = termHeight
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if time.Now().After(m.quitUntil) {
		return m, timedoutCmd()
	}
	return m, tick()
}

func (m Model) View() string {
	var text string
	switch {
	case m.finished:
		text = fmt.Sprintf("You escaped after discovering %d rooms.\nBye!", m.rooms)
	case m.rooms > 0:
		text = fmt.Sprintf("Still lost after %d rooms.\nThe maze will wait for you. Bye!", m.rooms)
	default:
		text = "Bye!"
	}
	view := style.Title.Render(text)
	if m.termWidth > 0 && m.termHeight > 0 {
		return lipgloss.Place(m.termWidth, m.termHeight, lipgloss.Center, lipgloss.Center, view)
	}
	return "\n" + view + "\n"
}
