package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load2048 loads the 2048 configuration.
// Search order: customPath -> ~/.t2048/configs/2048.yaml -> ./configs/2048.yaml -> embedded default
func Load2048(customPath string) (GameConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return GameConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("2048.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/2048.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parse(defaultGameYAML)
	if err != nil {
		return DefaultGameConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults, so omitted keys keep their
// default values, and validates the result.
func parse(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GameConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return GameConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".t2048", "configs", filename)
}

// Validate checks that the configuration describes a playable game.
func (c GameConfig) Validate() error {
	v := c.Board.SpawnValue
	if v <= 0 || v&(v-1) != 0 {
		return fmt.Errorf("config: spawn_value %d is not a power of two", v)
	}
	if c.Board.SpawnDoubleChance < 0 || c.Board.SpawnDoubleChance > 1 {
		return fmt.Errorf("config: spawn_double_chance %.2f outside [0, 1]", c.Board.SpawnDoubleChance)
	}
	if c.Board.InitialTiles < 0 {
		return fmt.Errorf("config: initial_tiles %d is negative", c.Board.InitialTiles)
	}
	if c.Timing.MoveDelayMS < 0 || c.Timing.GameOverDelayMS < 0 {
		return fmt.Errorf("config: delays must not be negative")
	}
	return nil
}

// ApplyPreset modifies the config based on a difficulty preset.
// Unknown presets leave the config untouched and return an error.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) error {
	if preset == "" {
		return nil
	}
	if _, err := ParseDifficulty(string(preset)); err != nil {
		return err
	}
	chance, _ := DoubleChanceForPreset(preset)
	cfg.Board.SpawnDoubleChance = chance
	return nil
}
