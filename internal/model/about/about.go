package about

import (
	"log"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vinser/pathbot/internal/embeddata"
	"github.com/vinser/pathbot/internal/render"
)

const (
	width  = 64
	height = 24
	// top pattern, title and footer
	chromeHeight = 3
)

type Model struct {
	version    string
	width      int
	height     int
	termWidth  int
	termHeight int

	viewport viewport.Model
}

type CloseAboutMsg struct{}

func closeAboutCmd() tea.Cmd {
	return func() tea.Msg {
		return CloseAboutMsg{}
	}
}

func New(version string) Model {
	w := max(width, lipgloss.Width(footer))
	bytes, err := embeddata.ReadAboutMD()
	if err != nil {
		log.Fatal(err)
	}

	vp := viewport.New(w, height-chromeHeight)
	vp.Style = lipgloss.NewStyle()
	const glamourGutter = 2
	vp.SetContent(glamContent(string(bytes), w, vp.Style.GetHorizontalFrameSize(), glamourGutter))

	return Model{
		version:  version,
		width:    w,
		height:   height,
		viewport: vp,
	}
}

func (m *Model) SetSize(termWidth, termHeight int) {
	m.termWidth = termWidth
	m.termHeight = termHeight
	m.height = min(height, termHeight)
	m.viewport.Height = max(m.height-chromeHeight, 1)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?":
			return m, closeAboutCmd()
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

const footer = "↑ ↓ scroll, ?/esc back, q quit"

func (m Model) View() string {
	return render.Page("About · "+m.version, m.viewport.View(), footer, m.width, m.height, m.termWidth, m.termHeight)
}

func glamContent(content string, width, frame, gutter int) string {
	renderWidth := width - frame - gutter
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(renderWidth),
	)
	if err != nil {
		return content //noop
	}
	str, err := r.Render(content)
	if err != nil {
		return content //noop
	}
	return str
}
