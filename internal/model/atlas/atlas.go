// Package atlas shows a map of the discovered rooms.
package atlas

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/pathbot/internal/nav"
	"github.com/vinser/pathbot/internal/render"
	"github.com/vinser/pathbot/internal/state"
	"github.com/vinser/pathbot/internal/style"
)

const (
	width  = 64
	height = 24
	// top pattern, title, legend and footer
	chromeHeight = 5
)

type Model struct {
	viewport   viewport.Model
	rooms      int
	termWidth  int
	termHeight int
}

type CloseAtlasMsg struct{}

func closeAtlasCmd() tea.Cmd {
	return func() tea.Msg {
		return CloseAtlasMsg{}
	}
}

func New() Model {
	vp := viewport.New(width, height-chromeHeight)
	vp.Style = lipgloss.NewStyle()
	return Model{viewport: vp}
}

func (m *Model) SetSize(termWidth, termHeight int) {
	m.termWidth = termWidth
	m.termHeight = termHeight
	m.viewport.Height = max(min(height, termHeight)-chromeHeight, 1)
}

// Refresh redraws the map from st and scrolls the current room into view.
func (m *Model) Refresh(st *state.State) {
	entries := st.Rooms()
	m.rooms = len(entries)
	var current *nav.Coordinate
	if c, ok := st.CurrentCoordinate(); ok {
		current = &c
	}
	grid := Grid(entries, current)
	if grid == nil {
		m.viewport.SetContent("Nothing explored yet.")
		return
	}

	var b strings.Builder
	currentRow := 0
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, r := range row {
			if r == glyphCurrent {
				currentRow = y
			}
			b.WriteString(styled(r))
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.SetYOffset(currentRow - m.viewport.Height/2)
}

func styled(r rune) string {
	s := string(r)
	switch r {
	case glyphRoom:
		return style.MapRoom.Render(s)
	case glyphStart:
		return style.MapStart.Render(s)
	case glyphExit:
		return style.MapExit.Render(s)
	case glyphCurrent:
		return style.MapCurrent.Render(s)
	case glyphHPass, glyphVPass:
		return style.MapPassage.Render(s)
	}
	return s
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "m":
			return m, closeAtlasCmd()
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

const footer = "↑ ↓ scroll, m/esc back, q quit"

func (m Model) View() string {
	legend := style.Label.Render(fmt.Sprintf("%c you  %c start  %c exit  %c room", glyphCurrent, glyphStart, glyphExit, glyphRoom))
	content := lipgloss.JoinVertical(lipgloss.Left, legend, m.viewport.View())
	title := fmt.Sprintf("Map · %d rooms", m.rooms)
	return render.Page(title, content, footer, width, height, m.termWidth, m.termHeight)
}
