package grid

import (
	"errors"
	"math/rand"
	"testing"
)

func TestNewDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"square", 4, 4},
		{"small", 3, 3},
		{"wide", 5, 3},
		{"tall", 2, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New[int](tt.width, tt.height)
			if err != nil {
				t.Fatalf("New(%d, %d) failed: %v", tt.width, tt.height, err)
			}
			if g.Width() != tt.width || g.Height() != tt.height {
				t.Errorf("dimensions = %dx%d, want %dx%d", g.Width(), g.Height(), tt.width, tt.height)
			}
			if g.Size() != tt.width*tt.height {
				t.Errorf("Size() = %d, want %d", g.Size(), tt.width*tt.height)
			}
			for y, row := range g.Rows() {
				for x, c := range row {
					if c.X != x || c.Y != y {
						t.Errorf("cell at row %d col %d has coordinates (%d, %d)", y, x, c.X, c.Y)
					}
				}
			}
		})
	}
}

func TestNewInvalid(t *testing.T) {
	for _, dims := range [][2]int{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := New[int](dims[0], dims[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("New(%d, %d) error = %v, want ErrInvalidSize", dims[0], dims[1], err)
		}
	}
}

func TestCellBounds(t *testing.T) {
	g, _ := New[int](4, 4)

	if g.Cell(0, 0) == nil || g.Cell(3, 3) == nil {
		t.Fatal("corner cells should exist")
	}
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if g.Cell(p[0], p[1]) != nil {
			t.Errorf("Cell(%d, %d) should be nil", p[0], p[1])
		}
	}
}

func TestAdjacent(t *testing.T) {
	g, _ := New[int](4, 4)
	c := g.Cell(1, 1)

	tests := []struct {
		dir  Direction
		x, y int
	}{
		{Up, 1, 0},
		{Down, 1, 2},
		{Left, 0, 1},
		{Right, 2, 1},
	}

	for _, tt := range tests {
		n := g.Adjacent(c, tt.dir)
		if n == nil || n.X != tt.x || n.Y != tt.y {
			t.Errorf("Adjacent(%s) = %+v, want (%d, %d)", tt.dir, n, tt.x, tt.y)
		}
	}

	if g.Adjacent(g.Cell(0, 0), Up) != nil || g.Adjacent(g.Cell(0, 0), Left) != nil {
		t.Error("Adjacent past the edge should be nil")
	}
}

func TestRandomEmptyCell(t *testing.T) {
	g, _ := New[int](3, 3)
	rng := rand.New(rand.NewSource(7))

	// Fill everything except one cell
	for _, c := range g.Cells() {
		c.Tile = new(int)
	}
	target := g.Cell(2, 1)
	target.Tile = nil

	for range 20 {
		if got := g.RandomEmptyCell(rng); got != target {
			t.Fatalf("RandomEmptyCell = %+v, want the only empty cell", got)
		}
	}

	target.Tile = new(int)
	if g.RandomEmptyCell(rng) != nil {
		t.Error("RandomEmptyCell on a full grid should return nil")
	}
	if !g.Full() {
		t.Error("Full() should be true")
	}

	g.Clear()
	if len(g.EmptyCells()) != 9 {
		t.Errorf("EmptyCells after Clear = %d, want 9", len(g.EmptyCells()))
	}
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("ParseDirection should reject unknown names")
	}
}
