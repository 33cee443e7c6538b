package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/pathbot/internal/coordinator"
	"github.com/vinser/pathbot/internal/model/about"
	"github.com/vinser/pathbot/internal/model/atlas"
	"github.com/vinser/pathbot/internal/model/explore"
	"github.com/vinser/pathbot/internal/model/quit"
)

type status uint

const (
	statusExplore status = iota
	statusAtlas
	statusAbout
	statusQuitting
)

type Model struct {
	status status
	coord  *coordinator.Coordinator
	// models
	explore explore.Model
	atlas   atlas.Model
	about   about.Model
	quit    quit.Model
	// terminal size cache
	termWidth  int
	termHeight int
}

func New(coord *coordinator.Coordinator, version string) Model {
	return Model{
		status:  statusExplore,
		coord:   coord,
		explore: explore.New(coord),
		atlas:   atlas.New(),
		about:   about.New(version),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.coord.FetchStart(), m.explore.Init())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Request completions apply whatever screen is showing.
	if next, ok := m.coord.Handle(msg); ok {
		m.atlas.Refresh(m.coord.State())
		return m, next
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.status == statusQuitting {
				return m, tea.Quit
			}
			m.status = statusQuitting
			m.quit = quit.New(m.coord.State().Len(), m.coord.State().IsFinished())
			m.quit.SetSize(m.termWidth, m.termHeight)
			return m, m.quit.Init()
		}
	case tea.WindowSizeMsg:
		// Always remember the latest terminal size
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.explore.SetSize(msg.Width, msg.Height)
		m.atlas.SetSize(msg.Width, msg.Height)
		m.about.SetSize(msg.Width, msg.Height)
		m.quit.SetSize(msg.Width, msg.Height)
		return m, tea.ClearScreen
	}

	switch m.status {
	case statusExplore:
		switch msg := msg.(type) {
		case explore.MoveMsg:
			cmd = m.coord.FetchMove(msg.Direction)
			m.atlas.Refresh(m.coord.State())
		case explore.RestartMsg:
			cmd = m.coord.Restart()
			m.atlas.Refresh(m.coord.State())
		case explore.DismissMsg:
			m.coord.Dismiss(msg.ID)
		case explore.ClearMsg:
			m.coord.ClearNotifications()
		case explore.OpenAtlasMsg:
			m.status = statusAtlas
			m.atlas.Refresh(m.coord.State())
		case explore.OpenAboutMsg:
			m.status = statusAbout
		default:
			m.explore, cmd = m.explore.Update(msg)
		}
	case statusAtlas:
		switch msg := msg.(type) {
		case atlas.CloseAtlasMsg:
			m.status = statusExplore
		default:
			m.atlas, cmd = m.atlas.Update(msg)
		}
	case statusAbout:
		switch msg := msg.(type) {
		case about.CloseAboutMsg:
			m.status = statusExplore
		default:
			m.about, cmd = m.about.Update(msg)
		}
	case statusQuitting:
		switch msg := msg.(type) {
		case quit.TimedoutMsg:
			return m, tea.Quit
		case quit.TickMsg:
			m.quit, cmd = m.quit.Update(msg)
		}
	}

	// The spinner keeps ticking behind other screens.
	if _, ok := msg.(spinner.TickMsg); ok && m.status != statusExplore && m.status != statusQuitting {
		var tickCmd tea.Cmd
		m.explore, tickCmd = m.explore.Update(msg)
		cmd = tea.Batch(cmd, tickCmd)
	}
	return m, cmd
}

func (m Model) View() string {
	switch m.status {
	case statusExplore:
		return m.explore.View()
	case statusAtlas:
		return m.atlas.View()
	case statusAbout:
		return m.about.View()
	case statusQuitting:
		return m.quit.View()
	}
	return ""
}
