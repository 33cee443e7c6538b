package atlas

import (
	"github.com/vinser/pathbot/internal/nav"
	"github.com/vinser/pathbot/internal/state"
)

const (
	glyphEmpty   = ' '
	glyphRoom    = 'o'
	glyphStart   = 'S'
	glyphExit    = 'X'
	glyphCurrent = '@'
	glyphHPass   = '─'
	glyphVPass   = '│'
)

// Grid lays the discovered rooms out as text. Rooms sit on even cells of a
// doubled grid with their open exits drawn in between, so an exit leading
// into unexplored space is still visible. The grid has a one cell margin.
//
// When several rooms share a coordinate the one discovered last wins.
func Grid(entries []state.Entry, current *nav.Coordinate) [][]rune {
	if len(entries) == 0 {
		return nil
	}
	minX, minY := entries[0].Coord.X, entries[0].Coord.Y
	maxX, maxY := minX, minY
	for _, e := range entries[1:] {
		minX, maxX = min(minX, e.Coord.X), max(maxX, e.Coord.X)
		minY, maxY = min(minY, e.Coord.Y), max(maxY, e.Coord.Y)
	}

	cols, rows := (maxX-minX)*2+3, (maxY-minY)*2+3
	grid := make([][]rune, rows)
	for y := range grid {
		grid[y] = make([]rune, cols)
		for x := range grid[y] {
			grid[y][x] = glyphEmpty
		}
	}

	place := func(c nav.Coordinate) (int, int) {
		return (c.X-minX)*2 + 1, (c.Y-minY)*2 + 1
	}
	for _, e := range entries {
		x, y := place(e.Coord)
		switch {
		case e.Synthetic:
			grid[y][x] = glyphExit
		case e.Coord == nav.Origin:
			grid[y][x] = glyphStart
		default:
			grid[y][x] = glyphRoom
		}
		for _, d := range e.Room.Exits {
			delta := d.Delta()
			if delta.X != 0 {
				grid[y][x+delta.X] = glyphHPass
			} else {
				grid[y+delta.Y][x] = glyphVPass
			}
		}
	}
	if current != nil {
		x, y := place(*current)
		grid[y][x] = glyphCurrent
	}
	return grid
}

// Lines converts a grid to plain strings.
func Lines(grid [][]rune) []string {
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = string(row)
	}
	return lines
}
