package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

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
		MazeExitHint: pathbot.MazeExitHint{Direction: nav.CompassN, Distance: 3},
		LocationPath: path,
	}
}

func newCoordinator(t *testing.T, cache bool) (*Coordinator, *mockpathbot.MockClient) {
	ctrl := gomock.NewController(t)
	client := mockpathbot.NewMockClient(ctrl)
	return New(client, state.New(), notify.New(), Options{CoordinateCache: cache}), client
}

// run executes cmd the way the bubbletea runtime would and hands the result
// back to the coordinator. It returns the follow-up command from Handle.
func run(t *testing.T, c *Coordinator, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	require.NotNil(t, cmd)
	next, ok := c.Handle(cmd())
	assert.True(t, ok)
	return next
}

func started(t *testing.T, cache bool, start pathbot.Room) (*Coordinator, *mockpathbot.MockClient) {
	t.Helper()
	c, client := newCoordinator(t, cache)
	client.EXPECT().Start(gomock.Any()).Return(start, nil)
	run(t, c, c.FetchStart())
	return c, client
}

func lastNote(t *testing.T, c *Coordinator) notify.Notification {
	t.Helper()
	list := c.Notifications().List()
	require.NotEmpty(t, list)
	return list[len(list)-1].Notification
}

func TestFetchStart(t *testing.T) {
	c, client := newCoordinator(t, true)
	assert.True(t, c.Loading())

	client.EXPECT().Start(gomock.Any()).Return(room("/a", nav.N, nav.E), nil)
	cmd := c.FetchStart()
	assert.True(t, c.InFlight())
	assert.True(t, c.Loading())

	run(t, c, cmd)
	assert.False(t, c.InFlight())
	assert.False(t, c.Loading())
	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())

	coord, ok := c.State().CurrentCoordinate()
	require.True(t, ok)
	assert.Equal(t, nav.Origin, coord)
	assert.Equal(t, notify.Info, lastNote(t, c).Level)
}

func TestFetchStart_RoomMessageIsNotified(t *testing.T) {
	start := room("/a", nav.N)
	start.Message = "Welcome"
	c, _ := started(t, true, start)

	assert.Equal(t, notify.Notification{Message: "Welcome", Level: notify.Info}, lastNote(t, c))
}

func TestFetch_DroppedWhileInFlight(t *testing.T) {
	c, client := newCoordinator(t, true)
	client.EXPECT().Start(gomock.Any()).Return(room("/a", nav.N), nil).Times(1)

	first := c.FetchStart()
	require.NotNil(t, first)
	assert.Nil(t, c.FetchStart())
	assert.Nil(t, c.FetchMove(nav.N))
	assert.Equal(t, 0, c.Notifications().Len())

	run(t, c, first)
	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())
}

func TestFetchMove_DroppedWhileInFlight(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N, nav.E))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).Return(room("/b", nav.S), nil).Times(1)

	first := c.FetchMove(nav.N)
	require.NotNil(t, first)
	before := c.Notifications().Len()
	assert.Nil(t, c.FetchMove(nav.E))
	assert.Equal(t, before, c.Notifications().Len())
	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())

	run(t, c, first)
	assert.Equal(t, state.InRoom{ID: "/b"}, c.State().Status())
}

func TestFetchMove_UnknownExitDropped(t *testing.T) {
	c, _ := started(t, true, room("/a", nav.N))

	assert.Nil(t, c.FetchMove(nav.W))
	assert.False(t, c.InFlight())
	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())
}

func TestFetchMove_DroppedWhileLoading(t *testing.T) {
	c, _ := newCoordinator(t, true)
	assert.Nil(t, c.FetchMove(nav.N))
	assert.False(t, c.InFlight())
}

func TestFetchMove_NewRoom(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).Return(room("/b", nav.S), nil)

	run(t, c, c.FetchMove(nav.N))
	assert.Equal(t, state.InRoom{ID: "/b"}, c.State().Status())
	coord, _ := c.State().CurrentCoordinate()
	assert.Equal(t, nav.Coordinate{X: 0, Y: -1}, coord)
	assert.Equal(t, notify.Notification{Message: "Moved North.", Level: notify.Info}, lastNote(t, c))
}

func TestFetchMove_CacheHit(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).Return(room("/b", nav.S), nil)
	run(t, c, c.FetchMove(nav.N))

	// No Move expectation for the way back: the mock fails on a call.
	assert.Nil(t, c.FetchMove(nav.S))
	assert.False(t, c.InFlight())
	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())
	coord, _ := c.State().CurrentCoordinate()
	assert.Equal(t, nav.Origin, coord)
	assert.Equal(t, 2, c.State().Len())

	note := lastNote(t, c)
	assert.Equal(t, notify.Info, note.Level)
	assert.Contains(t, note.Message, "known room")
}

func TestFetchMove_CacheDisabled(t *testing.T) {
	c, client := started(t, false, room("/a", nav.N))
	gomock.InOrder(
		client.EXPECT().Move(gomock.Any(), "/a", nav.N).Return(room("/b", nav.S), nil),
		client.EXPECT().Move(gomock.Any(), "/b", nav.S).Return(room("/a", nav.N), nil),
	)
	run(t, c, c.FetchMove(nav.N))
	run(t, c, c.FetchMove(nav.S))

	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())
	coord, _ := c.State().CurrentCoordinate()
	assert.Equal(t, nav.Origin, coord)
	assert.Equal(t, 2, c.State().Len())
}

func TestFetchMove_Message(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).
		Return(pathbot.Message{Message: "You can't go that way"}, nil)

	run(t, c, c.FetchMove(nav.N))
	assert.False(t, c.InFlight())
	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())
	assert.Equal(t, 1, c.State().Len())
	assert.Equal(t,
		notify.Notification{Message: "You can't go that way", Level: notify.Warning},
		lastNote(t, c))
}

func TestFetchMove_Exit(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).
		Return(pathbot.Exit{Status: pathbot.Finished, Description: "Out!"}, nil)

	run(t, c, c.FetchMove(nav.N))
	assert.False(t, c.InFlight())
	assert.False(t, c.Loading())
	assert.Equal(t, state.Finished{Exit: pathbot.Exit{Status: pathbot.Finished, Description: "Out!"}}, c.State().Status())
	assert.Equal(t, notify.Notification{Message: "Out!", Level: notify.Success}, lastNote(t, c))

	id, ok := c.State().RoomAt(nav.Coordinate{X: 0, Y: -1})
	require.True(t, ok)
	assert.True(t, state.IsSynthetic(id))
	entry, _ := c.State().Room(id)
	assert.Equal(t, []nav.Direction{nav.S}, entry.Room.Exits)

	for _, d := range nav.Directions {
		assert.Nil(t, c.FetchMove(d))
	}
}

func TestFetchMove_Failure(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).
		Return(nil, &pathbot.TransportError{Err: errors.New("connection refused")})

	run(t, c, c.FetchMove(nav.N))
	assert.False(t, c.InFlight())
	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())

	note := lastNote(t, c)
	assert.Equal(t, notify.Warning, note.Level)
	assert.Contains(t, note.Message, "Could not reach the maze")
	assert.Contains(t, note.Message, "connection refused")
}

func TestFetchMove_DecodeFailure(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).
		Return(nil, pathbot.NewUnknownEnumValueError("exits", "Q"))

	run(t, c, c.FetchMove(nav.N))
	note := lastNote(t, c)
	assert.Equal(t, notify.Warning, note.Level)
	assert.Contains(t, note.Message, "Unexpected answer")
}

func TestFetchStart_FailureKeepsLoading(t *testing.T) {
	c, client := newCoordinator(t, true)
	client.EXPECT().Start(gomock.Any()).Return(nil, &pathbot.TransportError{Status: 503})

	run(t, c, c.FetchStart())
	assert.False(t, c.InFlight())
	assert.True(t, c.Loading())
	assert.Equal(t, state.Loading{}, c.State().Status())
}

func TestRestart_DiscardsStaleAnswer(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).Return(room("/b", nav.S), nil)

	stale := c.FetchMove(nav.N)
	require.NotNil(t, stale)

	assert.Nil(t, c.Restart())
	assert.Equal(t, state.Loading{}, c.State().Status())
	assert.Equal(t, 0, c.State().Len())
	assert.Equal(t, 0, c.Notifications().Len())
	assert.True(t, c.InFlight())
	assert.Nil(t, c.FetchStart())

	// Start goes out only once the pending move has answered.
	client.EXPECT().Start(gomock.Any()).Return(room("/z", nav.E), nil)
	fresh := run(t, c, stale)
	require.NotNil(t, fresh)
	assert.Equal(t, state.Loading{}, c.State().Status())
	assert.Equal(t, 0, c.Notifications().Len())
	assert.True(t, c.InFlight())

	assert.Nil(t, run(t, c, fresh))
	assert.Equal(t, state.InRoom{ID: "/z"}, c.State().Status())
	assert.Equal(t, 1, c.State().Len())
	assert.False(t, c.InFlight())
}

func TestRestart_TwiceWhilePending(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).Return(nil, errors.New("boom"))

	stale := c.FetchMove(nav.N)
	assert.Nil(t, c.Restart())
	assert.Nil(t, c.Restart())

	client.EXPECT().Start(gomock.Any()).Return(room("/z", nav.E), nil).Times(1)
	fresh := run(t, c, stale)
	assert.Equal(t, 0, c.Notifications().Len())
	assert.Nil(t, run(t, c, fresh))
	assert.Equal(t, state.InRoom{ID: "/z"}, c.State().Status())
}

// blockingClient answers only when released and records how many calls
// were outstanding at once.
type blockingClient struct {
	release chan struct{}
	mu      sync.Mutex
	active  int
	peak    int
	starts  int
}

func (b *blockingClient) enter() {
	b.mu.Lock()
	b.active++
	if b.active > b.peak {
		b.peak = b.active
	}
	b.mu.Unlock()
}

func (b *blockingClient) leave() {
	b.mu.Lock()
	b.active--
	b.mu.Unlock()
}

func (b *blockingClient) Start(context.Context) (pathbot.Payload, error) {
	b.enter()
	defer b.leave()
	b.mu.Lock()
	b.starts++
	b.mu.Unlock()
	<-b.release
	return room("/z", nav.E), nil
}

func (b *blockingClient) Move(_ context.Context, path pathbot.LocationPath, _ nav.Direction) (pathbot.Payload, error) {
	b.enter()
	defer b.leave()
	<-b.release
	return room(path+"/n", nav.S), nil
}

func TestRestart_NeverOverlapsRequests(t *testing.T) {
	client := &blockingClient{release: make(chan struct{})}
	c := New(client, state.New(), notify.New(), Options{CoordinateCache: true})

	first := c.FetchStart()
	require.NotNil(t, first)
	go func() { client.release <- struct{}{} }()
	_, ok := c.Handle(first())
	require.True(t, ok)

	move := c.FetchMove(nav.N)
	require.NotNil(t, move)
	answers := make(chan tea.Msg, 1)
	go func() { answers <- move() }()

	assert.Nil(t, c.Restart())
	client.mu.Lock()
	assert.Equal(t, 1, client.starts)
	client.mu.Unlock()

	client.release <- struct{}{}
	fresh, ok := c.Handle(<-answers)
	require.True(t, ok)
	require.NotNil(t, fresh)

	go func() { client.release <- struct{}{} }()
	_, ok = c.Handle(fresh())
	require.True(t, ok)

	assert.Equal(t, state.InRoom{ID: "/z"}, c.State().Status())
	assert.Equal(t, 2, client.starts)
	assert.LessOrEqual(t, client.peak, 1)
}

func TestRestart_AfterFinish(t *testing.T) {
	c, client := started(t, true, room("/a", nav.N))
	client.EXPECT().Move(gomock.Any(), "/a", nav.N).
		Return(pathbot.Exit{Status: pathbot.Finished, Description: "Out!"}, nil)
	run(t, c, c.FetchMove(nav.N))
	require.True(t, c.State().IsFinished())

	client.EXPECT().Start(gomock.Any()).Return(room("/a", nav.N), nil)
	run(t, c, c.Restart())
	assert.Equal(t, state.InRoom{ID: "/a"}, c.State().Status())
}

func TestDismissAndClear(t *testing.T) {
	c, _ := newCoordinator(t, true)
	first := c.Notifications().Push(notify.Notification{Message: "one"})
	c.Notifications().Push(notify.Notification{Message: "two"})

	c.Dismiss(first)
	require.Equal(t, 1, c.Notifications().Len())
	assert.Equal(t, "two", c.Notifications().List()[0].Message)

	c.ClearNotifications()
	assert.Equal(t, 0, c.Notifications().Len())
}

func TestHandle_IgnoresForeignMessages(t *testing.T) {
	c, _ := newCoordinator(t, true)
	cmd, ok := c.Handle(tea.KeyMsg{})
	assert.False(t, ok)
	assert.Nil(t, cmd)
	_, ok = c.Handle(nil)
	assert.False(t, ok)
}
