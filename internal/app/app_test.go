package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vinser/pathbot/internal/coordinator"
	"github.com/vinser/pathbot/internal/model/about"
	"github.com/vinser/pathbot/internal/model/atlas"
	"github.com/vinser/pathbot/internal/model/explore"
	"github.com/vinser/pathbot/internal/model/quit"
	"github.com/vinser/pathbot/internal/nav"
	"github.com/vinser/pathbot/internal/notify"
	"github.com/vinser/pathbot/internal/pathbot"
	mockpathbot "github.com/vinser/pathbot/internal/pathbot/mock"
	"github.com/vinser/pathbot/internal/state"
)

func room(path string, exits ...nav.Direction) pathbot.Room {
	return pathbot.Room{
		Status:       pathbot.InProgress,
		Exits:        exits,
		Description:  "room " + path,
		MazeExitHint: pathbot.MazeExitHint{Direction: nav.CompassE, Distance: 2},
		LocationPath: path,
	}
}

func newModel(t *testing.T) (Model, *mockpathbot.MockClient) {
	ctrl := gomock.NewController(t)
	client := mockpathbot.NewMockClient(ctrl)
	coord := coordinator.New(client, state.New(), notify.New(), coordinator.Options{CoordinateCache: true})
	return New(coord, "test"), client
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// started runs the start request the way the runtime would after Init.
func started(t *testing.T, client *mockpathbot.MockClient, m Model, start pathbot.Room) Model {
	t.Helper()
	client.EXPECT().Start(gomock.Any()).Return(start, nil)
	cmd := m.coord.FetchStart()
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	return m
}

func TestUpdate_StartAndMove(t *testing.T) {
	m, client := newModel(t)
	m = started(t, client, m, room("/a", nav.E))
	assert.Equal(t, state.InRoom{ID: "/a"}, m.coord.State().Status())
	assert.Contains(t, m.View(), "room /a")

	client.EXPECT().Move(gomock.Any(), "/a", nav.E).Return(room("/b", nav.W), nil)
	m, cmd := update(t, m, explore.MoveMsg{Direction: nav.E})
	require.NotNil(t, cmd)
	assert.True(t, m.coord.InFlight())

	m, _ = update(t, m, cmd())
	assert.Equal(t, state.InRoom{ID: "/b"}, m.coord.State().Status())
	assert.Contains(t, m.View(), "room /b")
}

func TestUpdate_MoveWithoutExitIsDropped(t *testing.T) {
	m, client := newModel(t)
	m = started(t, client, m, room("/a", nav.E))

	_, cmd := update(t, m, explore.MoveMsg{Direction: nav.N})
	assert.Nil(t, cmd)
}

func TestUpdate_Restart(t *testing.T) {
	m, client := newModel(t)
	m = started(t, client, m, room("/a", nav.E))

	client.EXPECT().Start(gomock.Any()).Return(room("/z", nav.S), nil)
	m, cmd := update(t, m, explore.RestartMsg{})
	require.NotNil(t, cmd)
	assert.True(t, m.coord.State().IsLoading())

	m, _ = update(t, m, cmd())
	assert.Equal(t, state.InRoom{ID: "/z"}, m.coord.State().Status())
}

func TestUpdate_RestartWhileMoving(t *testing.T) {
	m, client := newModel(t)
	m = started(t, client, m, room("/a", nav.E))

	client.EXPECT().Move(gomock.Any(), "/a", nav.E).Return(room("/b", nav.W), nil)
	m, move := update(t, m, explore.MoveMsg{Direction: nav.E})
	require.NotNil(t, move)

	m, cmd := update(t, m, explore.RestartMsg{})
	assert.Nil(t, cmd)

	client.EXPECT().Start(gomock.Any()).Return(room("/z", nav.S), nil)
	m, cmd = update(t, m, move())
	require.NotNil(t, cmd)
	assert.True(t, m.coord.State().IsLoading())

	m, _ = update(t, m, cmd())
	assert.Equal(t, state.InRoom{ID: "/z"}, m.coord.State().Status())
}

func TestUpdate_Notifications(t *testing.T) {
	m, _ := newModel(t)
	notes := m.coord.Notifications()
	first := notes.Push(notify.Notification{Message: "one"})
	notes.Push(notify.Notification{Message: "two"})

	m, _ = update(t, m, explore.DismissMsg{ID: first})
	assert.Equal(t, 1, notes.Len())

	_, _ = update(t, m, explore.ClearMsg{})
	assert.Equal(t, 0, notes.Len())
}

func TestUpdate_Screens(t *testing.T) {
	m, client := newModel(t)
	m = started(t, client, m, room("/a", nav.E))

	m, _ = update(t, m, explore.OpenAtlasMsg{})
	assert.Equal(t, statusAtlas, m.status)
	assert.Contains(t, m.View(), "Map · 1 rooms")

	m, _ = update(t, m, atlas.CloseAtlasMsg{})
	assert.Equal(t, statusExplore, m.status)

	m, _ = update(t, m, explore.OpenAboutMsg{})
	assert.Equal(t, statusAbout, m.status)
	assert.Contains(t, m.View(), "About · test")

	m, _ = update(t, m, about.CloseAboutMsg{})
	assert.Equal(t, statusExplore, m.status)
}

func TestUpdate_CompletionWhileOnMap(t *testing.T) {
	m, client := newModel(t)
	m = started(t, client, m, room("/a", nav.E))

	client.EXPECT().Move(gomock.Any(), "/a", nav.E).Return(room("/b", nav.W), nil)
	m, cmd := update(t, m, explore.MoveMsg{Direction: nav.E})
	require.NotNil(t, cmd)
	m, _ = update(t, m, explore.OpenAtlasMsg{})

	m, _ = update(t, m, cmd())
	assert.Equal(t, statusAtlas, m.status)
	assert.Contains(t, m.View(), "Map · 2 rooms")
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.Equal(t, statusQuitting, m.status)
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Bye!")

	_, cmd = update(t, m, quit.TimedoutMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_CtrlC(t *testing.T) {
	m, _ := newModel(t)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestUpdate_WindowSize(t *testing.T) {
	m, _ := newModel(t)
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.NotNil(t, cmd)
	assert.Equal(t, 100, m.termWidth)
	assert.Equal(t, 40, m.termHeight)
}
