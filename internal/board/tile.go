package board

import "github.com/vovakirdan/tui-2048/internal/grid"

// Tile is a numbered piece on the board. Its position changes only through
// Board operations.
type Tile struct {
	Value  int
	Locked bool // merged during the current move

	cell *grid.Cell[Tile]
}

// Cell returns the cell the tile occupies, or nil once it has been merged away.
func (t *Tile) Cell() *grid.Cell[Tile] {
	return t.cell
}

// Pos returns the tile's grid coordinates.
func (t *Tile) Pos() (x, y int) {
	if t.cell == nil {
		return -1, -1
	}
	return t.cell.X, t.cell.Y
}

func (t *Tile) moveTo(c *grid.Cell[Tile]) {
	if t.cell != nil {
		t.cell.Tile = nil
	}
	t.cell = c
	c.Tile = t
}

// canMerge reports whether a may merge into b. Only the target's lock matters:
// the sweep order never revisits a tile that has already merged.
func canMerge(a, b *Tile) bool {
	return b != nil && a.Value == b.Value && !b.Locked
}

// isPowerOfTwo reports whether v is a positive power of two.
func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}
