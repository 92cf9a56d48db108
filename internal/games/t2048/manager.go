package t2048

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

// DefaultInitialTiles is the number of tiles placed by NewGame.
const DefaultInitialTiles = 2

// Manager owns the score, best score and lifecycle of one board.
// It is not safe for concurrent use.
type Manager struct {
	gameID       string
	board        *board.Board
	store        core.BestScoreStore
	logger       *log.Logger
	initialTiles int

	score   int
	best    int // Last stored best score read, without the running score
	enabled bool
	pending bool
	over    bool

	lastMove   board.MoveResult
	lastSettle board.SettleResult
}

// NewManager creates a manager for b. Best scores are kept under gameID.
// The manager starts disabled; call NewGame to begin.
func NewManager(gameID string, b *board.Board, initialTiles int) *Manager {
	if initialTiles < 0 {
		initialTiles = 0
	}
	return &Manager{
		gameID:       gameID,
		board:        b,
		store:        NewMemoryBestScores(),
		logger:       log.New(io.Discard),
		initialTiles: initialTiles,
	}
}

// SetStore replaces the best score store. A nil store keeps best scores in memory.
func (m *Manager) SetStore(store core.BestScoreStore) {
	if store == nil {
		store = NewMemoryBestScores()
	}
	m.store = store
}

// SetLogger sets the logger for lifecycle events.
func (m *Manager) SetLogger(logger *log.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// NewGame resets the score, reloads the best score, clears the board and
// places the initial tiles.
func (m *Manager) NewGame() {
	m.over = false
	m.pending = false
	m.lastMove = board.MoveResult{}
	m.lastSettle = board.SettleResult{}
	m.score = 0
	m.best = m.loadBest()

	m.board.Clear()
	for range m.initialTiles {
		m.board.CreateTile()
	}
	m.enabled = true

	m.logger.Debug("new game", "game", m.gameID, "best", m.best, "tiles", m.board.TileCount())
}

// Move slides the tiles toward dir. It is ignored while the manager is
// disabled or a previous move has not been settled yet. It reports whether
// the board changed, in which case the turn is pending until Settle.
func (m *Manager) Move(dir grid.Direction) bool {
	if !m.enabled || m.pending {
		return false
	}

	res := m.board.Move(dir)
	m.lastMove = res
	if !res.Changed {
		return false
	}

	m.pending = true
	if res.Score > 0 {
		m.IncreaseScore(res.Score)
	}
	return true
}

// Settle completes a pending turn: tiles are unlocked, a tile is spawned and
// the game-over condition is checked. It is a no-op without a pending move.
func (m *Manager) Settle() board.SettleResult {
	if !m.pending {
		return board.SettleResult{}
	}
	m.pending = false

	res := m.board.Settle()
	m.lastSettle = res
	if res.GameOver {
		m.GameOver()
	}
	return res
}

// Play performs a move and settles it immediately.
func (m *Manager) Play(dir grid.Direction) bool {
	if !m.Move(dir) {
		return false
	}
	m.Settle()
	return true
}

// IncreaseScore adds points to the current score.
func (m *Manager) IncreaseScore(points int) {
	m.setScore(m.score + points)
}

// setScore updates the score and persists a new best as soon as it is exceeded.
// The stored best is reloaded first since other games may share the store.
func (m *Manager) setScore(score int) {
	m.score = score
	m.best = m.loadBest()
	if score <= m.best {
		return
	}

	m.best = score
	if err := m.store.SetBestScore(m.gameID, score); err != nil {
		m.logger.Warn("failed to save best score", "game", m.gameID, "err", err)
		return
	}
	m.logger.Debug("new best score", "game", m.gameID, "best", score)
}

// GameOver disables the board. Further moves are ignored until NewGame.
func (m *Manager) GameOver() {
	if m.over {
		return
	}
	m.enabled = false
	m.pending = false
	m.over = true
	m.logger.Info("game over", "game", m.gameID, "score", m.score, "max_tile", m.board.MaxTile())
}

// loadBest reads the stored best, keeping the cached value when the store fails.
func (m *Manager) loadBest() int {
	best, err := m.store.BestScore(m.gameID)
	if err != nil {
		m.logger.Warn("failed to load best score", "game", m.gameID, "err", err)
		return m.best
	}
	return best
}

// Score returns the current score.
func (m *Manager) Score() int { return m.score }

// Best returns the best score, including the running game.
func (m *Manager) Best() int { return max(m.score, m.best) }

// Over reports whether the game has ended.
func (m *Manager) Over() bool { return m.over }

// Enabled reports whether moves are accepted.
func (m *Manager) Enabled() bool { return m.enabled && !m.pending }

// Pending reports whether a move is waiting for Settle.
func (m *Manager) Pending() bool { return m.pending }

// Board returns the managed board.
func (m *Manager) Board() *board.Board { return m.board }

// GameID returns the key used for best scores.
func (m *Manager) GameID() string { return m.gameID }

// LastMove returns the result of the latest Move call.
func (m *Manager) LastMove() board.MoveResult { return m.lastMove }

// LastSettle returns the result of the latest Settle call.
func (m *Manager) LastSettle() board.SettleResult { return m.lastSettle }
