package config

import (
	_ "embed"
)

//go:embed defaults/2048.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in 2048 configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			InitialTiles:      2,
			SpawnValue:        2,
			SpawnDoubleChance: 0.0,
		},
		Timing: TimingConfig{
			MoveDelayMS:     100,
			GameOverDelayMS: 1000,
		},
	}
}
