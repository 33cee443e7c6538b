package nav

import "fmt"

// Coordinate is a cell on the exploration grid. The start room is the origin.
type Coordinate struct {
	X, Y int
}

// Origin is the coordinate of the first room.
var Origin = Coordinate{}

// Add returns the componentwise sum of c and o.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return Coordinate{X: c.X + o.X, Y: c.Y + o.Y}
}

// Step returns the coordinate reached by moving once in d.
func (c Coordinate) Step(d Direction) Coordinate {
	return c.Add(d.Delta())
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}
