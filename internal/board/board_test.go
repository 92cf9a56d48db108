package board

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/grid"
)

func newBoard(t *testing.T, values [][]int) *Board {
	t.Helper()
	b, err := NewSized(len(values[0]), len(values), rand.New(rand.NewSource(1)), Options{})
	if err != nil {
		t.Fatalf("NewSized failed: %v", err)
	}
	if err := b.Load(values); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return b
}

// checkInvariants verifies that tiles and cells reference each other exactly once.
func checkInvariants(t *testing.T, b *Board) {
	t.Helper()
	seen := make(map[*Tile]bool)
	for _, c := range b.grid.Cells() {
		if c.Tile == nil {
			continue
		}
		if c.Tile.cell != c {
			t.Fatalf("tile at (%d, %d) points at another cell", c.X, c.Y)
		}
		if seen[c.Tile] {
			t.Fatalf("tile occupies more than one cell")
		}
		seen[c.Tile] = true
	}
	if len(seen) != len(b.tiles) {
		t.Fatalf("cells hold %d tiles, board lists %d", len(seen), len(b.tiles))
	}
	for _, tile := range b.tiles {
		if !seen[tile] {
			t.Fatalf("listed tile %d is not on any cell", tile.Value)
		}
	}
}

func TestMoveRowLeft(t *testing.T) {
	tests := []struct {
		name     string
		input    []int
		expected []int
		score    int
		changed  bool
	}{
		{"simple merge", []int{2, 2, 0, 0}, []int{4, 0, 0, 0}, 4, true},
		{"merge with trailing tile", []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4, true},
		{"double merge", []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8, true},
		{"merged tile is locked", []int{4, 4, 8, 0}, []int{8, 8, 0, 0}, 8, true},
		{"merge behind a blocker", []int{8, 4, 4, 0}, []int{8, 8, 0, 0}, 8, true},
		{"no merge possible", []int{2, 4, 8, 16}, []int{2, 4, 8, 16}, 0, false},
		{"slide with gap", []int{0, 0, 2, 2}, []int{4, 0, 0, 0}, 4, true},
		{"merge across gaps", []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4, true},
		{"already packed", []int{4, 2, 0, 0}, []int{4, 2, 0, 0}, 0, false},
		{"empty row", []int{0, 0, 0, 0}, []int{0, 0, 0, 0}, 0, false},
		{"single tile", []int{0, 4, 0, 0}, []int{4, 0, 0, 0}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, [][]int{tt.input})
			res := b.Move(grid.Left)

			if got := b.Values()[0]; !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Move(left) on %v = %v, want %v", tt.input, got, tt.expected)
			}
			if res.Score != tt.score {
				t.Errorf("score = %d, want %d", res.Score, tt.score)
			}
			if res.Changed != tt.changed {
				t.Errorf("changed = %v, want %v", res.Changed, tt.changed)
			}
			checkInvariants(t, b)
		})
	}
}

func TestMoveRowRight(t *testing.T) {
	b := newBoard(t, [][]int{{2, 2, 2, 0}})
	res := b.Move(grid.Right)

	if got, want := b.Values()[0], []int{0, 0, 2, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Move(right) = %v, want %v", got, want)
	}
	if res.Merges != 1 || res.Score != 4 {
		t.Errorf("merges/score = %d/%d, want 1/4", res.Merges, res.Score)
	}
}

func TestMoveLeftBoard(t *testing.T) {
	b := newBoard(t, [][]int{
		{2, 2, 0, 0},
		{4, 0, 4, 0},
		{2, 2, 2, 2},
		{0, 0, 0, 2},
	})

	res := b.Move(grid.Left)

	expected := [][]int{
		{4, 0, 0, 0},
		{8, 0, 0, 0},
		{4, 4, 0, 0},
		{2, 0, 0, 0},
	}
	if got := b.Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Move(left): got\n%v\nwant\n%v", got, expected)
	}
	if res.Score != 4+8+8 {
		t.Errorf("score = %d, want 20", res.Score)
	}
	if res.Merges != 4 {
		t.Errorf("merges = %d, want 4", res.Merges)
	}
}

func TestMoveUpBoard(t *testing.T) {
	b := newBoard(t, [][]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})

	res := b.Move(grid.Up)

	expected := [][]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if got := b.Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Move(up): got\n%v\nwant\n%v", got, expected)
	}
	if !res.Changed {
		t.Error("Move(up) should change the board")
	}
	checkInvariants(t, b)
}

func TestMoveDownBoard(t *testing.T) {
	b := newBoard(t, [][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})

	b.Move(grid.Down)

	expected := [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}
	if got := b.Values(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Move(down): got\n%v\nwant\n%v", got, expected)
	}
	checkInvariants(t, b)
}

func TestMoveRecordsTileMoves(t *testing.T) {
	b := newBoard(t, [][]int{{0, 2, 0, 2}})
	res := b.Move(grid.Left)

	expected := []TileMove{
		{FromX: 1, FromY: 0, ToX: 0, ToY: 0, Value: 2},
		{FromX: 3, FromY: 0, ToX: 0, ToY: 0, Value: 2, Merged: true},
	}
	if !reflect.DeepEqual(res.Moves, expected) {
		t.Errorf("Moves = %+v, want %+v", res.Moves, expected)
	}
}

func TestMergeLocksUntilSettle(t *testing.T) {
	b := newBoard(t, [][]int{{2, 2, 0}})
	b.Move(grid.Left)

	tile := b.grid.Cell(0, 0).Tile
	if tile == nil || tile.Value != 4 || !tile.Locked {
		t.Fatalf("merged tile = %+v, want locked 4", tile)
	}

	res := b.Settle()
	if tile.Locked {
		t.Error("Settle should unlock merged tiles")
	}
	if res.Spawned == nil {
		t.Fatal("Settle should spawn a tile when there is room")
	}
	if b.TileCount() != 2 {
		t.Errorf("TileCount = %d, want 2", b.TileCount())
	}
	checkInvariants(t, b)
}

func TestSettleOnFullBoard(t *testing.T) {
	b := newBoard(t, [][]int{
		{2, 4},
		{4, 2},
	})

	res := b.Settle()
	if res.Spawned != nil {
		t.Error("Settle should not spawn on a full board")
	}
	if !res.GameOver {
		t.Error("full board without merges should be game over")
	}
}

func TestIsGameOver(t *testing.T) {
	tests := []struct {
		name     string
		values   [][]int
		expected bool
	}{
		{
			name: "full with no merges",
			values: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			expected: true,
		},
		{
			name: "full with horizontal merge",
			values: [][]int{
				{2, 2, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 65536},
			},
			expected: false,
		},
		{
			name: "full with vertical merge",
			values: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 2048, 4096},
				{8192, 16384, 32768, 4096},
			},
			expected: false,
		},
		{
			name: "empty cell",
			values: [][]int{
				{2, 4, 8, 16},
				{32, 64, 128, 256},
				{512, 1024, 0, 4096},
				{8192, 16384, 32768, 65536},
			},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBoard(t, tt.values)
			if got := b.IsGameOver(); got != tt.expected {
				t.Errorf("IsGameOver() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCreateTile(t *testing.T) {
	b, _ := NewSized(2, 2, rand.New(rand.NewSource(3)), Options{})

	for i := range 4 {
		tile := b.CreateTile()
		if tile == nil {
			t.Fatalf("CreateTile %d returned nil on a board with room", i)
		}
		if tile.Value != DefaultSpawnValue {
			t.Errorf("spawned value = %d, want %d", tile.Value, DefaultSpawnValue)
		}
	}
	if b.CreateTile() != nil {
		t.Error("CreateTile on a full board should return nil")
	}
	checkInvariants(t, b)
}

func TestCreateTileDoubleChance(t *testing.T) {
	b, _ := NewSized(4, 4, rand.New(rand.NewSource(3)), Options{SpawnValue: 2, DoubleSpawnChance: 1})

	if tile := b.CreateTile(); tile.Value != 4 {
		t.Errorf("spawned value = %d, want 4", tile.Value)
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	b, _ := NewSized(2, 2, rand.New(rand.NewSource(1)), Options{})

	bad := [][][]int{
		{{2, 2}},
		{{2, 2}, {2}},
		{{3, 0}, {0, 0}},
		{{-2, 0}, {0, 0}},
	}
	for _, v := range bad {
		if err := b.Load(v); err == nil {
			t.Errorf("Load(%v) should fail", v)
		}
	}
}

func TestClear(t *testing.T) {
	b := newBoard(t, [][]int{{2, 4}, {8, 16}})
	b.Clear()

	if b.TileCount() != 0 || b.MaxTile() != 0 {
		t.Errorf("after Clear: count=%d max=%d", b.TileCount(), b.MaxTile())
	}
	if len(b.grid.EmptyCells()) != 4 {
		t.Error("Clear should empty every cell")
	}
}

func TestRandomPlayKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	b, _ := NewSized(4, 4, rng, Options{DoubleSpawnChance: 0.1})
	b.CreateTile()
	b.CreateTile()

	for i := 0; i < 500 && !b.IsGameOver(); i++ {
		before := b.TileCount()
		res := b.Move(grid.Directions[rng.Intn(len(grid.Directions))])
		if b.TileCount() != before-res.Merges {
			t.Fatalf("step %d: tile count %d, want %d", i, b.TileCount(), before-res.Merges)
		}
		checkInvariants(t, b)
		if res.Changed {
			b.Settle()
		}
		for _, tile := range b.tiles {
			if tile.Locked {
				t.Fatalf("step %d: tile still locked after settle", i)
			}
			if !isPowerOfTwo(tile.Value) {
				t.Fatalf("step %d: tile value %d is not a power of two", i, tile.Value)
			}
		}
	}
}
