// Package t2048 implements the 2048 sliding tile puzzle on top of the
// board package.
package t2048

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/board"
	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/grid"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant describes a registered board size.
type Variant struct {
	ID     string
	Title  string
	Width  int
	Height int
}

// DefaultVariantID is the classic 4x4 game.
const DefaultVariantID = "2048"

var variants = []Variant{
	{ID: "2048_3x3", Title: "2048 (3x3)", Width: 3, Height: 3},
	{ID: DefaultVariantID, Title: "2048", Width: 4, Height: 4},
	{ID: "2048_5x5", Title: "2048 (5x5)", Width: 5, Height: 5},
	{ID: "2048_6x6", Title: "2048 (6x6)", Width: 6, Height: 6},
}

// Variants returns the registered board sizes, smallest first.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// LookupVariant finds a variant by ID.
func LookupVariant(id string) (Variant, bool) {
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}

func init() {
	for _, v := range variants {
		registry.Register(v.ID, func() registry.Game {
			return New(v)
		})
	}
}

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// packageLogger is handed to every new game
var packageLogger = log.New(io.Discard)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names are kept and
// reported by Reset, which then plays with the configured spawn chance.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.DifficultyPreset(preset)
}

// SetLogger sets the logger used by games created afterwards.
func SetLogger(logger *log.Logger) {
	if logger != nil {
		packageLogger = logger
	}
}

// Game adapts a Manager to the platform's tick loop.
type Game struct {
	variant Variant
	cfg     config.GameConfig
	cfgSet  bool
	store   core.BestScoreStore
	logger  *log.Logger

	mgr  *Manager
	tick uint64

	screenW int
	screenH int

	paused    bool
	tooSmall  bool
	moveDelay int // Ticks between a move and its settle
	waitTicks int // Remaining ticks of the current move delay
	overDelay int // Ticks before the game-over overlay is shown
	overTicks int
}

// New creates a game for the given variant.
func New(v Variant) *Game {
	return &Game{
		variant: v,
		store:   NewMemoryBestScores(),
		logger:  packageLogger,
	}
}

// SetConfig overrides the configuration file lookup.
func (g *Game) SetConfig(cfg config.GameConfig) {
	g.cfg = cfg
	g.cfgSet = true
}

// UseBestScores sets the store for best scores. A nil store is ignored.
func (g *Game) UseBestScores(store core.BestScoreStore) {
	if store == nil {
		return
	}
	g.store = store
	if g.mgr != nil {
		g.mgr.SetStore(store)
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return g.variant.ID }

// Title returns the display name.
func (g *Game) Title() string { return g.variant.Title }

// Reset starts a new game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if !g.cfgSet {
		cfg, err := config.Load2048(configPath)
		if err != nil {
			g.logger.Warn("using default config", "err", err)
			cfg = config.DefaultGameConfig()
		}
		if err := config.ApplyPreset(&cfg, difficultyPreset); err != nil {
			g.logger.Warn("ignoring difficulty preset", "err", err)
		}
		g.cfg = cfg
	}

	rng := rand.New(rand.NewSource(runtime.Seed))
	b, err := board.NewSized(g.variant.Width, g.variant.Height, rng, board.Options{
		SpawnValue:        g.cfg.Board.SpawnValue,
		DoubleSpawnChance: g.cfg.Board.SpawnDoubleChance,
	})
	if err != nil {
		// Variants are static, so this only happens for a hand-built Variant
		g.logger.Error("invalid board size", "variant", g.variant.ID, "err", err)
		b, _ = board.NewSized(4, 4, rng, board.Options{})
	}

	g.mgr = NewManager(g.variant.ID, b, g.cfg.Board.InitialTiles)
	g.mgr.SetLogger(g.logger)
	g.mgr.SetStore(g.store)
	g.mgr.NewGame()

	g.tick = 0
	g.paused = false
	g.waitTicks = 0
	g.overTicks = 0
	g.moveDelay = runtime.TicksFor(g.cfg.Timing.MoveDelayMS)
	g.overDelay = runtime.TicksFor(g.cfg.Timing.GameOverDelayMS)
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.checkScreenSize()
}

// checkScreenSize checks if the screen fits the board and HUD.
func (g *Game) checkScreenSize() {
	boardW, boardH := boardSize(g.variant.Width, g.variant.Height)
	minW := boardW + 2
	minH := boardH + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.mgr.Over() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if g.mgr.Over() {
		if g.overTicks < g.overDelay {
			g.overTicks++
		}
		return core.StepResult{State: g.State()}
	}

	if g.mgr.Pending() {
		g.countdown()
		return core.StepResult{State: g.State()}
	}

	dir, ok := directionFor(in)
	if !ok || !g.mgr.Move(dir) {
		return core.StepResult{State: g.State()}
	}

	g.waitTicks = g.moveDelay
	if g.waitTicks == 0 {
		g.mgr.Settle()
	}
	return core.StepResult{State: g.State(), Moved: true}
}

// countdown advances the move delay and settles the turn once it runs out.
func (g *Game) countdown() {
	if g.waitTicks > 0 {
		g.waitTicks--
	}
	if g.waitTicks == 0 {
		g.mgr.Settle()
	}
}

// directionFor maps the first direction action in the frame.
func directionFor(in core.InputFrame) (grid.Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return grid.Up, true
	case in.Has(core.ActionDown):
		return grid.Down, true
	case in.Has(core.ActionLeft):
		return grid.Left, true
	case in.Has(core.ActionRight):
		return grid.Right, true
	}
	return grid.Direction{}, false
}

// overlayVisible reports whether the game-over overlay should be drawn.
func (g *Game) overlayVisible() bool {
	return g.mgr.Over() && g.overTicks >= g.overDelay
}

// Manager returns the underlying manager.
func (g *Game) Manager() *Manager { return g.mgr }

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.mgr == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:     g.mgr.Score(),
		BestScore: g.mgr.Best(),
		MaxTile:   g.mgr.Board().MaxTile(),
		GameOver:  g.mgr.Over(),
		Paused:    g.paused || g.tooSmall,
	}
}

// Resize adapts to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}
