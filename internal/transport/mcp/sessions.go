package mcp

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownVariant  = errors.New("unknown variant")
)

// ScoreRecorder stores finished games.
type ScoreRecorder interface {
	SaveScore(gameID string, score, maxTile int) (int64, error)
}

// Session is one agent game.
type Session struct {
	ID        string
	Variant   t2048.Variant
	Seed      int64
	CreatedAt time.Time

	mu       sync.Mutex
	manager  *t2048.Manager
	moves    int
	recorded bool
}

// Snapshot is a consistent view of a session.
type Snapshot struct {
	ID       string
	Variant  string
	Score    int
	Best     int
	MaxTile  int
	Moves    int
	GameOver bool
	Board    [][]int
}

// MoveOutcome describes one played move.
type MoveOutcome struct {
	Changed bool
	Gained  int
	Merges  int
	State   Snapshot
}

func (s *Session) snapshotLocked() Snapshot {
	b := s.manager.Board()
	return Snapshot{
		ID:       s.ID,
		Variant:  s.Variant.ID,
		Score:    s.manager.Score(),
		Best:     s.manager.Best(),
		MaxTile:  b.MaxTile(),
		Moves:    s.moves,
		GameOver: s.manager.Over(),
		Board:    b.Values(),
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Sessions manages concurrent agent games.
type Sessions struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      config.GameConfig
	store    core.BestScoreStore
	recorder ScoreRecorder
	logger   *log.Logger
}

// NewSessions creates a session manager. store may be nil to keep best
// scores in memory. If store also implements ScoreRecorder, finished
// games are recorded.
func NewSessions(cfg config.GameConfig, store core.BestScoreStore, logger *log.Logger) *Sessions {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if store == nil {
		store = t2048.NewMemoryBestScores()
	}
	s := &Sessions{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		store:    store,
		logger:   logger,
	}
	if r, ok := store.(ScoreRecorder); ok {
		s.recorder = r
	}
	return s
}

// Create starts a new game on the given variant. A zero seed picks one
// from the clock.
func (s *Sessions) Create(variantID string, seed int64) (*Session, error) {
	if variantID == "" {
		variantID = t2048.DefaultVariantID
	}
	v, ok := t2048.LookupVariant(variantID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variantID)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b, err := board.NewSized(v.Width, v.Height, rand.New(rand.NewSource(seed)), board.Options{
		SpawnValue:        s.cfg.Board.SpawnValue,
		DoubleSpawnChance: s.cfg.Board.SpawnDoubleChance,
	})
	if err != nil {
		return nil, fmt.Errorf("mcp: create board: %w", err)
	}

	m := t2048.NewManager(v.ID, b, s.cfg.Board.InitialTiles)
	m.SetStore(s.store)
	m.SetLogger(s.logger)
	m.NewGame()

	sess := &Session{
		ID:        uuid.NewString(),
		Variant:   v,
		Seed:      seed,
		CreatedAt: time.Now(),
		manager:   m,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Info("session created", "session", sess.ID, "variant", v.ID, "seed", seed)
	return sess, nil
}

// Get returns the session with the given ID.
func (s *Sessions) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}

// List returns all sessions, oldest first.
func (s *Sessions) List() []*Session {
	s.mu.RLock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Delete removes a session.
func (s *Sessions) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// Move plays one move and settles it. A finished game is recorded once.
func (s *Sessions) Move(id string, dir grid.Direction) (MoveOutcome, error) {
	sess, err := s.Get(id)
	if err != nil {
		return MoveOutcome{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	before := sess.manager.Score()
	changed := sess.manager.Play(dir)
	if changed {
		sess.moves++
	}
	last := sess.manager.LastMove()

	out := MoveOutcome{
		Changed: changed,
		Gained:  sess.manager.Score() - before,
		Merges:  last.Merges,
	}
	if !changed {
		out.Merges = 0
	}

	if sess.manager.Over() && !sess.recorded {
		sess.recorded = true
		s.record(sess)
	}

	out.State = sess.snapshotLocked()
	return out, nil
}

// record saves a finished game. Failures are logged only.
func (s *Sessions) record(sess *Session) {
	score := sess.manager.Score()
	if s.recorder == nil || score <= 0 {
		return
	}
	if _, err := s.recorder.SaveScore(sess.Variant.ID, score, sess.manager.Board().MaxTile()); err != nil {
		s.logger.Warn("failed to record game", "session", sess.ID, "err", err)
	}
}
