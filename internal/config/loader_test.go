package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(defaultGameYAML)
	if err != nil {
		t.Fatalf("embedded default does not parse: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Errorf("embedded default = %+v, want %+v", cfg, DefaultGameConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("board:\n  spawn_value: 4\ntiming:\n  move_delay_ms: 0\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load2048(path)
	if err != nil {
		t.Fatalf("Load2048 failed: %v", err)
	}
	if cfg.Board.SpawnValue != 4 {
		t.Errorf("SpawnValue = %d, want 4", cfg.Board.SpawnValue)
	}
	if cfg.Timing.MoveDelayMS != 0 {
		t.Errorf("MoveDelayMS = %d, want 0", cfg.Timing.MoveDelayMS)
	}
	// Omitted keys keep their defaults
	if cfg.Board.InitialTiles != 2 || cfg.Timing.GameOverDelayMS != 1000 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load2048(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load2048 should fail for a missing explicit path")
	}
}

func TestLoadInvalidCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board:\n  spawn_value: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load2048(path); err == nil {
		t.Error("Load2048 should reject a non power of two spawn value")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*GameConfig)
		ok     bool
	}{
		{"default", func(*GameConfig) {}, true},
		{"zero spawn", func(c *GameConfig) { c.Board.SpawnValue = 0 }, false},
		{"odd spawn", func(c *GameConfig) { c.Board.SpawnValue = 6 }, false},
		{"chance too high", func(c *GameConfig) { c.Board.SpawnDoubleChance = 1.5 }, false},
		{"negative chance", func(c *GameConfig) { c.Board.SpawnDoubleChance = -0.1 }, false},
		{"negative tiles", func(c *GameConfig) { c.Board.InitialTiles = -1 }, false},
		{"negative delay", func(c *GameConfig) { c.Timing.MoveDelayMS = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); (err == nil) != tt.ok {
				t.Errorf("Validate() error = %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultGameConfig()

	if err := ApplyPreset(&cfg, DifficultyHard); err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}
	if cfg.Board.SpawnDoubleChance != 0.25 {
		t.Errorf("hard chance = %.2f, want 0.25", cfg.Board.SpawnDoubleChance)
	}

	if err := ApplyPreset(&cfg, ""); err != nil {
		t.Errorf("empty preset should be a no-op, got %v", err)
	}
	if err := ApplyPreset(&cfg, "nightmare"); err == nil {
		t.Error("unknown preset should fail")
	}
	if cfg.Board.SpawnDoubleChance != 0.25 {
		t.Error("failed preset should not modify config")
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		name    string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", "", false},
		{"easy", DifficultyEasy, false},
		{"normal", DifficultyNormal, false},
		{"hard", DifficultyHard, false},
		{"fixed", "", true},
		{"HARD", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
