package types

import "github.com/joonazan/vec2"

// Grid sizing. Cells are UnitSize wide and the board spans [-Range, Range)
// cells on each axis, so coordinates run from -Bound to Bound-UnitSize.
const (
	UnitSize = 5.0
	Range    = 20
	Bound    = UnitSize * Range
)

// Grid represents the board dimensions in cells
type Grid struct {
	Width  int
	Height int
}

// Board is the playing field every session uses.
var Board = Grid{Width: 2 * Range, Height: 2 * Range}

// Cells returns the number of cells on the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Unit is the centre of one grid cell. All arithmetic stays on the
// UnitSize grid so plain == comparison is exact.
type Unit struct {
	X, Y float64
}

// CellUnit converts integer cell coordinates into a Unit.
func CellUnit(cx, cy int) Unit {
	return Unit{X: float64(cx) * UnitSize, Y: float64(cy) * UnitSize}
}

// Step moves u one cell along d, wrapping around the board edges.
// Only the axis matching d changes.
func (u Unit) Step(d Direction) Unit {
	v := d.Vector()
	return Unit{
		X: wrap(u.X + v.X*UnitSize),
		Y: wrap(u.Y + v.Y*UnitSize),
	}
}

func wrap(c float64) float64 {
	switch {
	case c > Bound-UnitSize:
		return -Bound
	case c < -Bound:
		return Bound - UnitSize
	}
	return c
}

// InBounds reports whether u lies on a board cell.
func (u Unit) InBounds() bool {
	return u.X >= -Bound && u.X <= Bound-UnitSize &&
		u.Y >= -Bound && u.Y <= Bound-UnitSize
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
	Stopped
)

var headings = map[Direction]vec2.Vector{
	Up:    {X: 0, Y: 1},
	Down:  {X: 0, Y: -1},
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
}

// Vector returns the unit heading for d. Stopped has a zero heading.
func (d Direction) Vector() vec2.Vector {
	return headings[d]
}

// Opposite returns the reverse heading. Stopped is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return Stopped
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}
