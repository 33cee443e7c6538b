package nav

import (
	"fmt"
	"math"
)

// CompassDirection is an 8-way heading, used for the maze exit hint.
type CompassDirection int

const (
	CompassN CompassDirection = iota
	CompassNE
	CompassE
	CompassSE
	CompassS
	CompassSW
	CompassW
	CompassNW
)

// CompassDirections lists all headings clockwise from north.
var CompassDirections = []CompassDirection{
	CompassN, CompassNE, CompassE, CompassSE, CompassS, CompassSW, CompassW, CompassNW,
}

var compassShort = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

var compassLong = [...]string{
	"North", "North-East", "East", "South-East", "South", "South-West", "West", "North-West",
}

// ParseCompassDirection converts a wire short code into a CompassDirection.
func ParseCompassDirection(s string) (CompassDirection, bool) {
	for i, name := range compassShort {
		if name == s {
			return CompassDirection(i), true
		}
	}
	return 0, false
}

// ShortName returns the wire code, e.g. "NE".
func (c CompassDirection) ShortName() string {
	if !c.Valid() {
		return fmt.Sprintf("CompassDirection(%d)", int(c))
	}
	return compassShort[c]
}

// LongName returns a name such as "North-East".
func (c CompassDirection) LongName() string {
	if !c.Valid() {
		return "Unknown"
	}
	return compassLong[c]
}

func (c CompassDirection) String() string {
	return c.ShortName()
}

// AngleDeg returns the clockwise angle from north in 45 degree steps.
func (c CompassDirection) AngleDeg() float64 {
	if !c.Valid() {
		return 0
	}
	return float64(c) * 45
}

// Valid reports whether c is a known heading.
func (c CompassDirection) Valid() bool {
	return c >= CompassN && c <= CompassNW
}

// CompassFromDelta returns the heading closest to the vector (dx, dy),
// where dy grows southwards. The zero vector maps to north.
func CompassFromDelta(dx, dy int) CompassDirection {
	if dx == 0 && dy == 0 {
		return CompassN
	}
	angle := math.Atan2(float64(dx), float64(-dy)) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return CompassDirection(int(math.Round(angle/45)) % len(CompassDirections))
}
