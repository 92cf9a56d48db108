// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import "fmt"

// GameConfig contains all configuration for the 2048 game.
type GameConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Timing TimingConfig `yaml:"timing"`
}

// BoardConfig defines spawning parameters.
type BoardConfig struct {
	InitialTiles      int     `yaml:"initial_tiles"`
	SpawnValue        int     `yaml:"spawn_value"`
	SpawnDoubleChance float64 `yaml:"spawn_double_chance"` // 0.0-1.0
}

// TimingConfig defines the delays of turn sequencing, in milliseconds.
type TimingConfig struct {
	MoveDelayMS     int `yaml:"move_delay_ms"`
	GameOverDelayMS int `yaml:"game_over_delay_ms"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// DoubleChanceForPreset returns the spawn_double_chance for a preset.
// The second result is false for unknown or empty presets.
func DoubleChanceForPreset(preset DifficultyPreset) (float64, bool) {
	switch preset {
	case DifficultyEasy:
		return 0.0, true
	case DifficultyNormal:
		return 0.1, true
	case DifficultyHard:
		return 0.25, true
	default:
		return 0, false
	}
}

// ParseDifficulty validates a preset name. The empty name means no preset.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	preset := DifficultyPreset(name)
	if preset == "" {
		return "", nil
	}
	if _, ok := DoubleChanceForPreset(preset); !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
	return preset, nil
}
