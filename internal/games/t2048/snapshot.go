package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateSettling    GameStateType = "settling"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick    uint64
	Variant string
	Score   int
	Best    int
	Board   [][]int // Board[y][x], 0 for an empty cell
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.mgr.Over():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.mgr.Pending():
		state = StateSettling
	}

	b := g.mgr.Board()
	return Snapshot{
		Tick:    g.tick,
		Variant: g.variant.ID,
		Score:   g.mgr.Score(),
		Best:    g.mgr.Best(),
		Board:   b.Values(),
		MaxTile: b.MaxTile(),
		State:   state,
	}
}
