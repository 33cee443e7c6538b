// Package state tracks what has been explored of the maze so far.
package state

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"

	"github.com/vinser/pathbot/internal/nav"
	"github.com/vinser/pathbot/internal/pathbot"
)

// LogicError is raised with panic when the state machine is driven out of
// order. It means the caller and the state have desynchronized.
type LogicError string

func (e LogicError) Error() string {
	return "logic error: " + string(e)
}

func logicErrorf(format string, args ...any) {
	panic(LogicError(fmt.Sprintf(format, args...)))
}

// Status is one of Loading, InRoom or Finished.
type Status interface {
	status()
}

// Loading is the initial status, before the start room arrives.
type Loading struct{}

// InRoom means the explorer stands in the room with the given path.
type InRoom struct {
	ID pathbot.LocationPath
}

// Finished means the maze exit was reached. No further moves are allowed.
type Finished struct {
	Exit pathbot.Exit
}

func (Loading) status()  {}
func (InRoom) status()   {}
func (Finished) status() {}

// syntheticPrefix marks paths made up locally. API paths start with "/".
const syntheticPrefix = "exit:"

// Entry is a discovered room and where it sits on the grid.
type Entry struct {
	Room      pathbot.Room
	Coord     nav.Coordinate
	Synthetic bool // fabricated locally to mark the exit on the map
}

// State holds the discovered rooms and the current status.
// It is owned by a single goroutine and is not safe for concurrent use.
type State struct {
	rooms     map[pathbot.LocationPath]Entry
	order     []pathbot.LocationPath
	coordToID map[nav.Coordinate]pathbot.LocationPath
	status    Status
}

func New() *State {
	return &State{
		rooms:     make(map[pathbot.LocationPath]Entry),
		coordToID: make(map[nav.Coordinate]pathbot.LocationPath),
		status:    Loading{},
	}
}

// Restart forgets every room and goes back to Loading.
func (s *State) Restart() {
	s.rooms = make(map[pathbot.LocationPath]Entry)
	s.order = nil
	s.coordToID = make(map[nav.Coordinate]pathbot.LocationPath)
	s.status = Loading{}
}

func (s *State) Status() Status {
	return s.status
}

func (s *State) IsLoading() bool {
	_, ok := s.status.(Loading)
	return ok
}

func (s *State) IsFinished() bool {
	_, ok := s.status.(Finished)
	return ok
}

// InsertRoom records room and makes it current. Its coordinate is the
// current coordinate stepped by lastMove, or the origin when lastMove is nil.
//
// A nil lastMove is only valid while Loading and a non-nil one only while
// InRoom; anything else panics with a LogicError.
//
// A path that is already known keeps its stored room and coordinate.
func (s *State) InsertRoom(room pathbot.Room, lastMove *nav.Direction) {
	coord := s.nextCoordinate("insert room", lastMove)

	if _, known := s.rooms[room.LocationPath]; !known {
		room.Exits = slices.Clone(room.Exits)
		s.add(Entry{Room: room, Coord: coord})
	}
	s.status = InRoom{ID: room.LocationPath}
}

// EnterKnown moves into an already discovered room without inserting it.
func (s *State) EnterKnown(id pathbot.LocationPath) {
	if _, ok := s.status.(InRoom); !ok {
		logicErrorf("enter known room %q while %T", id, s.status)
	}
	if _, ok := s.rooms[id]; !ok {
		logicErrorf("enter unknown room %q", id)
	}
	s.status = InRoom{ID: id}
}

// ReachedExit moves to Finished. A made-up terminal room is recorded at the
// exit's coordinate so the map can draw it; its only exit leads back the way
// the explorer came.
func (s *State) ReachedExit(exit pathbot.Exit, lastMove *nav.Direction) {
	coord := s.nextCoordinate("reach exit", lastMove)
	s.add(syntheticExitRoom(exit, coord, lastMove))
	s.status = Finished{Exit: exit}
}

func syntheticExitRoom(exit pathbot.Exit, coord nav.Coordinate, lastMove *nav.Direction) Entry {
	room := pathbot.Room{
		Status:       pathbot.Finished,
		Description:  exit.Description,
		LocationPath: syntheticPrefix + uuid.NewString(),
	}
	if lastMove != nil {
		room.Exits = []nav.Direction{lastMove.Opposite()}
	}
	return Entry{Room: room, Coord: coord, Synthetic: true}
}

// IsSynthetic reports whether id was made up locally rather than issued
// by the API.
func IsSynthetic(id pathbot.LocationPath) bool {
	return strings.HasPrefix(id, syntheticPrefix)
}

func (s *State) nextCoordinate(op string, lastMove *nav.Direction) nav.Coordinate {
	switch st := s.status.(type) {
	case Loading:
		if lastMove != nil {
			logicErrorf("%s with last move %s but no current room", op, *lastMove)
		}
		return nav.Origin
	case InRoom:
		if lastMove == nil {
			logicErrorf("%s without last move while in room %q", op, st.ID)
		}
		return s.rooms[st.ID].Coord.Step(*lastMove)
	default:
		logicErrorf("%s after the maze was finished", op)
	}
	return nav.Origin
}

func (s *State) add(e Entry) {
	id := e.Room.LocationPath
	s.rooms[id] = e
	s.order = append(s.order, id)
	s.coordToID[e.Coord] = id
}

// CanMove reports whether d is an exit of the current room.
func (s *State) CanMove(d nav.Direction) bool {
	room, ok := s.CurrentRoom()
	return ok && room.HasExit(d)
}

// MovableDirections returns the exits of the current room as a set.
// The set is empty unless the status is InRoom.
func (s *State) MovableDirections() mapset.Set[nav.Direction] {
	set := mapset.New[nav.Direction]()
	if room, ok := s.CurrentRoom(); ok {
		for _, d := range room.Exits {
			set.Put(d)
		}
	}
	return set
}

func (s *State) CurrentRoomID() (pathbot.LocationPath, bool) {
	if st, ok := s.status.(InRoom); ok {
		return st.ID, true
	}
	return "", false
}

func (s *State) CurrentRoom() (pathbot.Room, bool) {
	e, ok := s.current()
	return e.Room, ok
}

func (s *State) CurrentCoordinate() (nav.Coordinate, bool) {
	e, ok := s.current()
	return e.Coord, ok
}

func (s *State) CurrentExitHint() (pathbot.MazeExitHint, bool) {
	e, ok := s.current()
	return e.Room.MazeExitHint, ok
}

func (s *State) current() (Entry, bool) {
	id, ok := s.CurrentRoomID()
	if !ok {
		return Entry{}, false
	}
	e, ok := s.rooms[id]
	return e, ok
}

// RoomAt returns the path of the latest room recorded at c.
func (s *State) RoomAt(c nav.Coordinate) (pathbot.LocationPath, bool) {
	id, ok := s.coordToID[c]
	return id, ok
}

// Room returns the entry stored for id.
func (s *State) Room(id pathbot.LocationPath) (Entry, bool) {
	e, ok := s.rooms[id]
	return e, ok
}

// Rooms returns all entries in discovery order. Callers must not modify
// the rooms' exit slices.
func (s *State) Rooms() []Entry {
	entries := make([]Entry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, s.rooms[id])
	}
	return entries
}

// Len returns the number of discovered rooms, including a made-up exit room.
func (s *State) Len() int {
	return len(s.rooms)
}
