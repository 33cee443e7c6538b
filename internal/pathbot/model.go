// Package pathbot holds the canonical Pathbot payloads and their wire encoding.
package pathbot

import "github.com/vinser/pathbot/internal/nav"

// LocationPath identifies a room and is the endpoint for the next move.
type LocationPath = string

// RoomStatus tells whether the maze is still being explored.
type RoomStatus int

const (
	InProgress RoomStatus = iota
	Finished
)

const (
	statusInProgress = "in-progress"
	statusFinished   = "finished"
)

// WireName returns the literal used by the API.
func (s RoomStatus) WireName() string {
	if s == Finished {
		return statusFinished
	}
	return statusInProgress
}

func (s RoomStatus) String() string {
	if s == Finished {
		return "Finished"
	}
	return "In progress"
}

func parseRoomStatus(s string) (RoomStatus, bool) {
	switch s {
	case statusInProgress:
		return InProgress, true
	case statusFinished:
		return Finished, true
	}
	return 0, false
}

// MazeExitHint points from a room towards the maze exit.
type MazeExitHint struct {
	Direction nav.CompassDirection
	Distance  uint32
}

// Payload is one of Room, Exit or Message.
type Payload interface {
	payload()
}

// Room is a navigable maze room.
type Room struct {
	Status       RoomStatus
	Message      string
	Exits        []nav.Direction
	Description  string
	MazeExitHint MazeExitHint
	LocationPath LocationPath
}

// HasExit reports whether d is listed in the room's exits.
func (r Room) HasExit(d nav.Direction) bool {
	for _, e := range r.Exits {
		if e == d {
			return true
		}
	}
	return false
}

// Exit is sent instead of a room once the maze is solved.
type Exit struct {
	Status      RoomStatus
	Description string
}

// Message is a side-channel notice that carries no room.
type Message struct {
	Message string
}

func (Room) payload()    {}
func (Exit) payload()    {}
func (Message) payload() {}
