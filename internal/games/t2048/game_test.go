package t2048

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

func newTestGame(t *testing.T, v Variant, cfg config.GameConfig, seed int64) *Game {
	t.Helper()
	g := New(v)
	g.SetConfig(cfg)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestVariantsRegistered(t *testing.T) {
	for _, v := range Variants() {
		if !registry.Exists(v.ID) {
			t.Errorf("variant %q not registered", v.ID)
			continue
		}
		g, err := registry.Create(v.ID)
		if err != nil {
			t.Fatalf("Create(%q): %v", v.ID, err)
		}
		if g.ID() != v.ID || g.Title() != v.Title {
			t.Errorf("Create(%q) = %q/%q", v.ID, g.ID(), g.Title())
		}
	}

	if v, ok := LookupVariant(DefaultVariantID); !ok || v.Width != 4 || v.Height != 4 {
		t.Errorf("default variant = %+v, %v", v, ok)
	}
	if _, ok := LookupVariant("2048_9x9"); ok {
		t.Error("LookupVariant should fail for unknown IDs")
	}
}

func TestResetStartsWithInitialTiles(t *testing.T) {
	v, _ := LookupVariant(DefaultVariantID)
	g := newTestGame(t, v, config.DefaultGameConfig(), 42)

	snap := g.Snapshot()
	tiles := 0
	for _, row := range snap.Board {
		for _, val := range row {
			if val != 0 {
				tiles++
			}
		}
	}
	if tiles != 2 {
		t.Errorf("tiles = %d, want 2", tiles)
	}
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want %s", snap.State, StatePlaying)
	}
	if len(snap.Board) != 4 || len(snap.Board[0]) != 4 {
		t.Errorf("board is %dx%d, want 4x4", len(snap.Board[0]), len(snap.Board))
	}
}

func TestMoveDelayBeforeSpawn(t *testing.T) {
	v, _ := LookupVariant(DefaultVariantID)
	g := newTestGame(t, v, config.DefaultGameConfig(), 1)
	if err := g.Manager().Board().Load([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}); err != nil {
		t.Fatal(err)
	}

	res := g.Step(frame(core.ActionLeft))
	if !res.Moved {
		t.Fatal("Step should report the move")
	}
	if res.State.Score != 4 {
		t.Errorf("Score = %d, want 4", res.State.Score)
	}

	// 100ms at 60 ticks per second is 6 ticks
	for i := range 5 {
		g.Step(frame(core.ActionRight))
		if g.Snapshot().State != StateSettling {
			t.Fatalf("tick %d: state = %s, want %s", i+1, g.Snapshot().State, StateSettling)
		}
		if got := g.Manager().Board().TileCount(); got != 1 {
			t.Fatalf("tick %d: TileCount = %d, want 1", i+1, got)
		}
	}

	g.Step(frame())
	if g.Snapshot().State != StatePlaying {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StatePlaying)
	}
	if got := g.Manager().Board().TileCount(); got != 2 {
		t.Errorf("TileCount after delay = %d, want 2", got)
	}
	// Input during the delay was dropped
	if row := g.Snapshot().Board[0]; row[0] != 4 {
		t.Errorf("row 0 = %v, merged tile should stay at x=0", row)
	}
}

func TestZeroMoveDelaySettlesSameTick(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Timing.MoveDelayMS = 0
	v, _ := LookupVariant(DefaultVariantID)
	g := newTestGame(t, v, cfg, 1)

	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionUp, core.ActionDown} {
		if res := g.Step(frame(a)); res.Moved && g.Manager().Pending() {
			t.Fatalf("%s: move should settle in the same tick", a)
		}
	}
}

func TestDeterminism(t *testing.T) {
	v, _ := LookupVariant("2048_5x5")
	inputs := []core.Action{
		core.ActionLeft, core.ActionUp, core.ActionRight, core.ActionDown,
		core.ActionLeft, core.ActionLeft, core.ActionUp, core.ActionRight,
	}

	play := func() Snapshot {
		g := newTestGame(t, v, config.DefaultGameConfig(), 12345)
		for _, a := range inputs {
			g.Step(frame(a))
			for range 10 {
				g.Step(frame())
			}
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("snapshots differ:\n%+v\n%+v", a, b)
	}
}

func TestPauseToggle(t *testing.T) {
	v, _ := LookupVariant(DefaultVariantID)
	g := newTestGame(t, v, config.DefaultGameConfig(), 1)
	before := g.Snapshot().Board

	if res := g.Step(frame(core.ActionPause)); !res.State.Paused {
		t.Fatal("expected paused")
	}
	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionUp))
	if !reflect.DeepEqual(before, g.Snapshot().Board) {
		t.Error("board changed while paused")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StatePaused)
	}

	if res := g.Step(frame(core.ActionPause)); res.State.Paused {
		t.Error("expected unpaused")
	}
}

func TestWindowTooSmall(t *testing.T) {
	v, _ := LookupVariant("2048_6x6")
	g := New(v)
	g.SetConfig(config.DefaultGameConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, TickRate: 60, Seed: 1})

	if !g.State().Paused {
		t.Error("small window should pause the game")
	}
	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("state = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	if res := g.Step(frame(core.ActionLeft)); res.Moved {
		t.Error("moves should be ignored in a small window")
	}

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected the too small message")
	}
}

func TestGameOverOverlayDelay(t *testing.T) {
	cfg := config.DefaultGameConfig()
	cfg.Timing.MoveDelayMS = 0
	cfg.Timing.GameOverDelayMS = 500 // 30 ticks
	g := newTestGame(t, Variant{ID: "2048_2x2", Title: "2048 (2x2)", Width: 2, Height: 2}, cfg, 1)
	if err := g.Manager().Board().Load([][]int{
		{2, 2},
		{8, 4},
	}); err != nil {
		t.Fatal(err)
	}

	res := g.Step(frame(core.ActionLeft))
	if !res.State.GameOver {
		t.Fatalf("expected game over, board = %v", g.Snapshot().Board)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if strings.Contains(screen.String(), "GAME OVER") {
		t.Error("overlay shown before the delay")
	}

	for range 30 {
		g.Step(frame())
	}
	g.Render(screen)
	if !strings.Contains(screen.String(), "GAME OVER") {
		t.Error("overlay missing after the delay")
	}

	// Pause is ignored once the game is over
	if res := g.Step(frame(core.ActionPause)); res.State.Paused {
		t.Error("pause should be ignored after game over")
	}
}

func TestBestScoreFromStore(t *testing.T) {
	store := NewMemoryBestScores()
	_ = store.SetBestScore(DefaultVariantID, 512)

	v, _ := LookupVariant(DefaultVariantID)
	g := New(v)
	g.SetConfig(config.DefaultGameConfig())
	g.UseBestScores(store)
	g.Reset(core.DefaultConfig())

	if got := g.State().BestScore; got != 512 {
		t.Errorf("BestScore = %d, want 512", got)
	}
}

func TestBestScoreSurvivesRestartWithoutStore(t *testing.T) {
	v, _ := LookupVariant(DefaultVariantID)
	g := newTestGame(t, v, config.DefaultGameConfig(), 3)
	g.Manager().IncreaseScore(64)

	g.Reset(core.DefaultConfig())

	if got := g.State(); got.Score != 0 || got.BestScore != 64 {
		t.Errorf("after restart score/best = %d/%d, want 0/64", got.Score, got.BestScore)
	}
}

func TestDifficultyPresetOnReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2048.yaml")
	if err := os.WriteFile(path, []byte("board:\n  spawn_double_chance: 0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	oldPath, oldPreset, oldLogger := configPath, difficultyPreset, packageLogger
	t.Cleanup(func() {
		configPath, difficultyPreset, packageLogger = oldPath, oldPreset, oldLogger
	})

	var logs bytes.Buffer
	SetConfigPath(path)
	SetLogger(log.New(&logs))
	v, _ := LookupVariant(DefaultVariantID)

	SetDifficultyPreset("nightmare")
	g := New(v)
	g.Reset(core.DefaultConfig())
	if !strings.Contains(logs.String(), "nightmare") {
		t.Errorf("unknown preset not reported, logs: %q", logs.String())
	}
	if got := g.cfg.Board.SpawnDoubleChance; got != 0.5 {
		t.Errorf("chance = %.2f, want the configured 0.5", got)
	}

	SetDifficultyPreset("hard")
	g = New(v)
	g.Reset(core.DefaultConfig())
	if got := g.cfg.Board.SpawnDoubleChance; got != 0.25 {
		t.Errorf("hard chance = %.2f, want 0.25", got)
	}
}

func TestRenderShowsHUDAndTiles(t *testing.T) {
	v, _ := LookupVariant(DefaultVariantID)
	g := newTestGame(t, v, config.DefaultGameConfig(), 1)
	if err := g.Manager().Board().Load([][]int{
		{2048, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 4},
	}); err != nil {
		t.Fatal(err)
	}

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Score: 0", "Best: 0", "2048", "Max: 2048", "┌", "┘"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}
