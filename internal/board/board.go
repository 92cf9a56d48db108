// Package board holds the tiles of a 2048 game and resolves moves, merges,
// spawns and game-over detection on top of a grid.
package board

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-2048/internal/grid"
)

// DefaultSpawnValue is the value of a freshly spawned tile.
const DefaultSpawnValue = 2

// Options tune tile spawning.
type Options struct {
	SpawnValue        int     // Value of a spawned tile (power of two, default 2)
	DoubleSpawnChance float64 // Probability a spawned tile gets twice SpawnValue
}

// TileMove records one tile's movement during a move.
type TileMove struct {
	FromX, FromY int
	ToX, ToY     int
	Value        int  // Value before the move
	Merged       bool // The tile was absorbed by the tile at (ToX, ToY)
}

// MoveResult describes the outcome of Board.Move.
type MoveResult struct {
	Changed bool
	Score   int // Sum of the values created by merges
	Merges  int
	Moves   []TileMove
}

// SettleResult describes the outcome of Board.Settle.
type SettleResult struct {
	Spawned  *Tile // nil when the board was full
	GameOver bool
}

// Board owns the tiles placed on a grid.
type Board struct {
	grid  *grid.Grid[Tile]
	tiles []*Tile
	rng   *rand.Rand
	opts  Options
}

// New creates an empty board on g. The rng drives spawn positions and values.
func New(g *grid.Grid[Tile], rng *rand.Rand, opts Options) *Board {
	if opts.SpawnValue <= 0 {
		opts.SpawnValue = DefaultSpawnValue
	}
	return &Board{
		grid:  g,
		tiles: make([]*Tile, 0, g.Size()),
		rng:   rng,
		opts:  opts,
	}
}

// NewSized is a convenience constructor building the grid as well.
func NewSized(width, height int, rng *rand.Rand, opts Options) (*Board, error) {
	g, err := grid.New[Tile](width, height)
	if err != nil {
		return nil, err
	}
	return New(g, rng, opts), nil
}

// Grid returns the underlying grid.
func (b *Board) Grid() *grid.Grid[Tile] {
	return b.grid
}

// Width returns the number of columns.
func (b *Board) Width() int { return b.grid.Width() }

// Height returns the number of rows.
func (b *Board) Height() int { return b.grid.Height() }

// Tiles returns the tiles currently on the board.
func (b *Board) Tiles() []*Tile {
	out := make([]*Tile, len(b.tiles))
	copy(out, b.tiles)
	return out
}

// TileCount returns the number of tiles on the board.
func (b *Board) TileCount() int {
	return len(b.tiles)
}

// Full reports whether every cell holds a tile.
func (b *Board) Full() bool {
	return len(b.tiles) == b.grid.Size()
}

// Clear removes every tile.
func (b *Board) Clear() {
	b.grid.Clear()
	for _, t := range b.tiles {
		t.cell = nil
	}
	b.tiles = b.tiles[:0]
}

// CreateTile spawns a tile in a random empty cell.
// Returns nil if the board is full.
func (b *Board) CreateTile() *Tile {
	c := b.grid.RandomEmptyCell(b.rng)
	if c == nil {
		return nil
	}

	value := b.opts.SpawnValue
	if b.opts.DoubleSpawnChance > 0 && b.rng.Float64() < b.opts.DoubleSpawnChance {
		value *= 2
	}

	return b.place(c, value)
}

func (b *Board) place(c *grid.Cell[Tile], value int) *Tile {
	t := &Tile{Value: value}
	t.moveTo(c)
	b.tiles = append(b.tiles, t)
	return t
}

// sweep returns the loop bounds for a move: the cell next to the destination
// wall is visited first so tiles in front are settled before those behind them.
func sweep(dir grid.Direction, w, h int) (startX, incX, startY, incY int) {
	switch dir {
	case grid.Up:
		return 0, 1, 1, 1
	case grid.Down:
		return 0, 1, h - 2, -1
	case grid.Left:
		return 1, 1, 0, 1
	case grid.Right:
		return w - 2, -1, 0, 1
	}
	return 0, 0, 0, 0
}

// Move slides every tile toward dir, merging equal pairs once per move.
func (b *Board) Move(dir grid.Direction) MoveResult {
	var res MoveResult

	w, h := b.grid.Width(), b.grid.Height()
	startX, incX, startY, incY := sweep(dir, w, h)
	if incX == 0 {
		return res
	}

	for x := startX; x >= 0 && x < w; x += incX {
		for y := startY; y >= 0 && y < h; y += incY {
			c := b.grid.Cell(x, y)
			if c.Occupied() {
				if b.moveTile(c.Tile, dir, &res) {
					res.Changed = true
				}
			}
		}
	}

	return res
}

// moveTile walks t through empty cells toward dir. It merges into the first
// occupied cell when allowed, otherwise stops at the last empty cell.
func (b *Board) moveTile(t *Tile, dir grid.Direction, res *MoveResult) bool {
	var dest *grid.Cell[Tile]
	adjacent := b.grid.Adjacent(t.cell, dir)

	for adjacent != nil {
		if adjacent.Occupied() {
			if canMerge(t, adjacent.Tile) {
				b.merge(t, adjacent.Tile, res)
				return true
			}
			break
		}
		dest = adjacent
		adjacent = b.grid.Adjacent(adjacent, dir)
	}

	if dest == nil {
		return false
	}

	fromX, fromY := t.Pos()
	t.moveTo(dest)
	res.Moves = append(res.Moves, TileMove{
		FromX: fromX, FromY: fromY,
		ToX: dest.X, ToY: dest.Y,
		Value: t.Value,
	})
	return true
}

// merge absorbs a into target: a leaves the board, target doubles and locks.
func (b *Board) merge(a, target *Tile, res *MoveResult) {
	fromX, fromY := a.Pos()
	b.remove(a)

	target.Value *= 2
	target.Locked = true

	res.Score += target.Value
	res.Merges++
	res.Moves = append(res.Moves, TileMove{
		FromX: fromX, FromY: fromY,
		ToX: target.cell.X, ToY: target.cell.Y,
		Value:  a.Value,
		Merged: true,
	})
}

func (b *Board) remove(t *Tile) {
	if t.cell != nil {
		t.cell.Tile = nil
		t.cell = nil
	}
	for i, other := range b.tiles {
		if other == t {
			b.tiles = append(b.tiles[:i], b.tiles[i+1:]...)
			return
		}
	}
}

// Settle finishes a turn after a changed move: tiles are unlocked, a new
// tile is spawned if there is room, and game over is evaluated.
func (b *Board) Settle() SettleResult {
	b.Unlock()

	var res SettleResult
	if !b.Full() {
		res.Spawned = b.CreateTile()
	}
	res.GameOver = b.IsGameOver()
	return res
}

// Unlock clears the per-move merge lock on every tile.
func (b *Board) Unlock() {
	for _, t := range b.tiles {
		t.Locked = false
	}
}

// IsGameOver reports whether the board is full and no tile can merge with
// any of its neighbours.
func (b *Board) IsGameOver() bool {
	if !b.Full() {
		return false
	}

	for _, t := range b.tiles {
		for _, dir := range grid.Directions {
			n := b.grid.Adjacent(t.cell, dir)
			if n != nil && canMerge(t, n.Tile) {
				return false
			}
		}
	}
	return true
}

// MaxTile returns the highest tile value, or 0 on an empty board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, t := range b.tiles {
		maxVal = max(maxVal, t.Value)
	}
	return maxVal
}

// Values returns the tile values row by row; empty cells are 0.
func (b *Board) Values() [][]int {
	rows := b.grid.Rows()
	out := make([][]int, len(rows))
	for y, row := range rows {
		out[y] = make([]int, len(row))
		for x, c := range row {
			if c.Tile != nil {
				out[y][x] = c.Tile.Value
			}
		}
	}
	return out
}

// Load replaces the board contents with values (rows of columns, 0 = empty).
func (b *Board) Load(values [][]int) error {
	if len(values) != b.grid.Height() {
		return fmt.Errorf("board: expected %d rows, got %d", b.grid.Height(), len(values))
	}
	for y, row := range values {
		if len(row) != b.grid.Width() {
			return fmt.Errorf("board: row %d has %d cells, expected %d", y, len(row), b.grid.Width())
		}
		for x, v := range row {
			if v != 0 && !isPowerOfTwo(v) {
				return fmt.Errorf("board: value %d at (%d, %d) is not a power of two", v, x, y)
			}
		}
	}

	b.Clear()
	for y, row := range values {
		for x, v := range row {
			if v != 0 {
				b.place(b.grid.Cell(x, y), v)
			}
		}
	}
	return nil
}
