// Package grid implements the fixed cell layout a 2048 board is played on.
package grid

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrInvalidSize is returned when a grid would have no cells.
var ErrInvalidSize = errors.New("grid: invalid size")

// Direction is a unit step on the grid in screen coordinates (y grows down).
type Direction struct {
	DX, DY int
}

// The four move directions.
var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// Directions lists every move direction in a stable order.
var Directions = []Direction{Up, Down, Left, Right}

// String returns the lowercase direction name.
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
	default:
		return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
	}
}

// ParseDirection parses a direction name (up, down, left, right).
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return Direction{}, fmt.Errorf("grid: unknown direction %q", s)
}

// Cell is a single grid position holding at most one tile.
type Cell[T any] struct {
	X, Y int
	Tile *T
}

// Occupied reports whether a tile sits on the cell.
func (c *Cell[T]) Occupied() bool {
	return c.Tile != nil
}

// Grid is a fixed set of rows of cells.
type Grid[T any] struct {
	rows  [][]*Cell[T]
	cells []*Cell[T] // row-major
}

// New builds a grid of height rows with width cells each.
func New[T any](width, height int) (*Grid[T], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	g := &Grid[T]{
		rows:  make([][]*Cell[T], height),
		cells: make([]*Cell[T], 0, width*height),
	}
	for y := range height {
		g.rows[y] = make([]*Cell[T], width)
		for x := range width {
			c := &Cell[T]{X: x, Y: y}
			g.rows[y][x] = c
			g.cells = append(g.cells, c)
		}
	}
	return g, nil
}

// Size returns the total number of cells.
func (g *Grid[T]) Size() int {
	return len(g.cells)
}

// Height returns the number of rows.
func (g *Grid[T]) Height() int {
	return len(g.rows)
}

// Width returns the number of cells per row.
func (g *Grid[T]) Width() int {
	return g.Size() / g.Height()
}

// Cells returns every cell in row-major order.
func (g *Grid[T]) Cells() []*Cell[T] {
	return g.cells
}

// Rows returns the cells grouped by row.
func (g *Grid[T]) Rows() [][]*Cell[T] {
	return g.rows
}

// Cell returns the cell at (x, y), or nil when the position is off the grid.
func (g *Grid[T]) Cell(x, y int) *Cell[T] {
	if x < 0 || x >= g.Width() || y < 0 || y >= g.Height() {
		return nil
	}
	return g.rows[y][x]
}

// Adjacent returns the neighbour of c one step in dir, or nil at an edge.
func (g *Grid[T]) Adjacent(c *Cell[T], dir Direction) *Cell[T] {
	return g.Cell(c.X+dir.DX, c.Y+dir.DY)
}

// RandomEmptyCell picks a random start index and scans forward, wrapping
// around once, until it finds an unoccupied cell. Returns nil if the grid is full.
func (g *Grid[T]) RandomEmptyCell(rng *rand.Rand) *Cell[T] {
	n := len(g.cells)
	start := rng.Intn(n)
	for i := range n {
		c := g.cells[(start+i)%n]
		if !c.Occupied() {
			return c
		}
	}
	return nil
}

// EmptyCells returns all unoccupied cells in row-major order.
func (g *Grid[T]) EmptyCells() []*Cell[T] {
	var empty []*Cell[T]
	for _, c := range g.cells {
		if !c.Occupied() {
			empty = append(empty, c)
		}
	}
	return empty
}

// Full reports whether every cell is occupied.
func (g *Grid[T]) Full() bool {
	for _, c := range g.cells {
		if !c.Occupied() {
			return false
		}
	}
	return true
}

// Clear removes every occupant.
func (g *Grid[T]) Clear() {
	for _, c := range g.cells {
		c.Tile = nil
	}
}
