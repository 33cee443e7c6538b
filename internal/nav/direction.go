// Package nav holds the value types used to move around the maze grid.
package nav

import "fmt"

// Direction is a move direction accepted by the maze API.
type Direction int

const (
	N Direction = iota
	S
	E
	W
)

// Directions lists all move directions in wire order.
var Directions = []Direction{N, S, E, W}

// ParseDirection converts a wire short code into a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "N":
		return N, true
	case "S":
		return S, true
	case "E":
		return E, true
	case "W":
		return W, true
	}
	return 0, false
}

// ShortName returns the single-letter wire code.
func (d Direction) ShortName() string {
	switch d {
	case N:
		return "N"
	case S:
		return "S"
	case E:
		return "E"
	case W:
		return "W"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// LongName returns the human readable name.
func (d Direction) LongName() string {
	switch d {
	case N:
		return "North"
	case S:
		return "South"
	case E:
		return "East"
	case W:
		return "West"
	}
	return "Unknown"
}

func (d Direction) String() string {
	return d.ShortName()
}

// AngleDeg returns the clockwise angle from north.
func (d Direction) AngleDeg() float64 {
	switch d {
	case E:
		return 90
	case S:
		return 180
	case W:
		return 270
	}
	return 0
}

// Delta returns the unit move on the grid. Y grows southwards.
func (d Direction) Delta() Coordinate {
	switch d {
	case N:
		return Coordinate{X: 0, Y: -1}
	case S:
		return Coordinate{X: 0, Y: 1}
	case W:
		return Coordinate{X: -1, Y: 0}
	case E:
		return Coordinate{X: 1, Y: 0}
	}
	return Coordinate{}
}

// Opposite returns the direction that undoes d.
func (d Direction) Opposite() Direction {
	switch d {
	case N:
		return S
	case S:
		return N
	case E:
		return W
	case W:
		return E
	}
	return d
}

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= N && d <= W
}
