// Package coordinator issues Pathbot requests and feeds the answers back
// into the exploration state.
//
// Requests run as tea.Cmd values. Their results come back as messages that
// must be passed to Handle from the bubbletea Update loop, so all state
// changes happen on that one goroutine.
package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vinser/pathbot/internal/nav"
	"github.com/vinser/pathbot/internal/notify"
	"github.com/vinser/pathbot/internal/pathbot"
	"github.com/vinser/pathbot/internal/state"
)

// RoomReceivedMsg carries a room answer. LastMove is nil for the start room.
type RoomReceivedMsg struct {
	Room     pathbot.Room
	LastMove *nav.Direction
	gen      uint64
}

// MessageReceivedMsg carries a notice that replaced the expected room.
type MessageReceivedMsg struct {
	Message pathbot.Message
	gen     uint64
}

// ExitReceivedMsg means the move reached the maze exit.
type ExitReceivedMsg struct {
	Exit     pathbot.Exit
	LastMove *nav.Direction
	gen      uint64
}

// RequestFailedMsg carries a transport or decode failure.
type RequestFailedMsg struct {
	Err error
	gen uint64
}

type Options struct {
	// CoordinateCache enters an already discovered room without asking the
	// server when a move lands on its coordinate.
	CoordinateCache bool
}

// Coordinator allows at most one request in flight. Further requests are
// dropped, not queued.
type Coordinator struct {
	client pathbot.Client
	state  *state.State
	notes  *notify.Queue
	opts   Options

	inFlight bool
	// gen changes on restart so answers to older requests are ignored.
	gen uint64
	// restartPending holds a start request back until the request that was
	// outstanding at restart has answered.
	restartPending bool
}

func New(client pathbot.Client, st *state.State, notes *notify.Queue, opts Options) *Coordinator {
	return &Coordinator{
		client: client,
		state:  st,
		notes:  notes,
		opts:   opts,
	}
}

func (c *Coordinator) State() *state.State {
	return c.state
}

func (c *Coordinator) Notifications() *notify.Queue {
	return c.notes
}

// InFlight reports whether a request is outstanding.
func (c *Coordinator) InFlight() bool {
	return c.inFlight
}

// Loading is true while a request is outstanding or no room is known yet.
func (c *Coordinator) Loading() bool {
	return c.inFlight || c.state.IsLoading()
}

// FetchStart requests the start room.
func (c *Coordinator) FetchStart() tea.Cmd {
	if c.inFlight {
		log.Println("Not sending start request, ongoing request.")
		return nil
	}
	c.inFlight = true
	client, gen := c.client, c.gen
	return func() tea.Msg {
		p, err := client.Start(context.Background())
		return response(gen, p, err, nil)
	}
}

// FetchMove leaves the current room in direction d. A move the current room
// does not offer is dropped.
func (c *Coordinator) FetchMove(d nav.Direction) tea.Cmd {
	if c.inFlight {
		log.Printf("Not sending move %s, ongoing request.", d)
		return nil
	}
	id, ok := c.state.CurrentRoomID()
	if !ok {
		log.Printf("Not sending move %s, no current room.", d)
		return nil
	}
	if !c.state.CanMove(d) {
		log.Printf("Not sending move %s, no such exit from %s.", d, id)
		return nil
	}

	if c.opts.CoordinateCache {
		coord, _ := c.state.CurrentCoordinate()
		if known, ok := c.state.RoomAt(coord.Step(d)); ok {
			log.Printf("Move %s from %s lands on known room %s.", d, id, known)
			c.state.EnterKnown(known)
			c.notes.Push(notify.Notification{
				Message: fmt.Sprintf("Back in a known room to the %s.", d.LongName()),
				Level:   notify.Info,
			})
			return nil
		}
	}

	c.inFlight = true
	client, gen := c.client, c.gen
	return func() tea.Msg {
		p, err := client.Move(context.Background(), id, d)
		return response(gen, p, err, &d)
	}
}

// Restart forgets the maze and requests a new start room. Answers to
// requests sent before the restart are ignored. While such a request is
// outstanding the start request waits for it, and Handle returns it once the
// stale answer arrives.
func (c *Coordinator) Restart() tea.Cmd {
	c.gen++
	c.state.Restart()
	c.notes.Clear()
	if c.inFlight {
		log.Println("Restart waits for the ongoing request.")
		c.restartPending = true
		return nil
	}
	return c.FetchStart()
}

func (c *Coordinator) Dismiss(id notify.ID) {
	c.notes.Remove(id)
}

func (c *Coordinator) ClearNotifications() {
	c.notes.Clear()
}

func response(gen uint64, p pathbot.Payload, err error, lastMove *nav.Direction) tea.Msg {
	if err != nil {
		return RequestFailedMsg{Err: err, gen: gen}
	}
	switch p := p.(type) {
	case pathbot.Room:
		return RoomReceivedMsg{Room: p, LastMove: lastMove, gen: gen}
	case pathbot.Exit:
		return ExitReceivedMsg{Exit: p, LastMove: lastMove, gen: gen}
	case pathbot.Message:
		return MessageReceivedMsg{Message: p, gen: gen}
	}
	return RequestFailedMsg{Err: fmt.Errorf("unexpected payload %T", p), gen: gen}
}

// Handle applies a completion message. It reports whether msg was one of
// this package's messages. The returned command, if any, is a start request
// that was held back by Restart.
func (c *Coordinator) Handle(msg tea.Msg) (tea.Cmd, bool) {
	var gen uint64
	switch msg := msg.(type) {
	case RoomReceivedMsg:
		gen = msg.gen
	case ExitReceivedMsg:
		gen = msg.gen
	case MessageReceivedMsg:
		gen = msg.gen
	case RequestFailedMsg:
		gen = msg.gen
	default:
		return nil, false
	}

	c.inFlight = false
	if gen != c.gen {
		log.Println("Dropping answer to a request sent before restart.")
		if c.restartPending {
			c.restartPending = false
			return c.FetchStart(), true
		}
		return nil, true
	}

	switch msg := msg.(type) {
	case RoomReceivedMsg:
		c.roomReceived(msg.Room, msg.LastMove)
	case ExitReceivedMsg:
		c.exitReceived(msg.Exit, msg.LastMove)
	case MessageReceivedMsg:
		log.Printf("Received message instead of a room: %q", msg.Message.Message)
		c.notes.Push(notify.Notification{Message: msg.Message.Message, Level: notify.Warning})
	case RequestFailedMsg:
		log.Printf("Request failed: %v", msg.Err)
		c.notes.Push(notify.Notification{Message: failureText(msg.Err), Level: notify.Warning})
	}
	return nil, true
}

func (c *Coordinator) roomReceived(room pathbot.Room, lastMove *nav.Direction) {
	c.state.InsertRoom(room, lastMove)

	text := room.Message
	if text == "" {
		if lastMove == nil {
			text = "Entered the maze."
		} else {
			text = fmt.Sprintf("Moved %s.", lastMove.LongName())
		}
	}
	level := notify.Info
	if room.Status == pathbot.Finished {
		level = notify.Success
	}
	c.notes.Push(notify.Notification{Message: text, Level: level})
}

func (c *Coordinator) exitReceived(exit pathbot.Exit, lastMove *nav.Direction) {
	c.state.ReachedExit(exit, lastMove)

	text := exit.Description
	if text == "" {
		text = "You found the way out!"
	}
	c.notes.Push(notify.Notification{Message: text, Level: notify.Success})
}

func failureText(err error) string {
	switch {
	case errors.Is(err, pathbot.ErrDecode):
		return "Unexpected answer from the maze: " + err.Error()
	case errors.Is(err, pathbot.ErrTransport):
		return "Could not reach the maze: " + err.Error()
	}
	return "Request failed: " + err.Error()
}
