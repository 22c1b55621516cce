package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDir is the per-user directory holding configs, scores and logs.
const AppDir = ".kraken"

// LoadOverworld loads the overworld configuration.
// Search order: customPath -> ~/.kraken/configs/overworld.yaml -> ./configs/overworld.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it changes.
func LoadOverworld(customPath string) (OverworldConfig, error) {
	// Try custom path first
	if customPath != "" {
		return LoadFile(customPath)
	}

	// Try user config directory
	if userCfgPath := UserConfigPath("overworld.yaml"); userCfgPath != "" {
		if cfg, err := LoadFile(userCfgPath); err == nil {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, err := LoadFile(filepath.Join("configs", "overworld.yaml")); err == nil {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultOverworldYAML)
	if err != nil {
		return DefaultOverworldConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads and validates a single YAML config file.
func LoadFile(path string) (OverworldConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return OverworldConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := parse(data)
	if err != nil {
		return OverworldConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// parse decodes data over the built-in defaults and validates the result.
func parse(data []byte) (OverworldConfig, error) {
	cfg := DefaultOverworldConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return OverworldConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return OverworldConfig{}, err
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot work with.
func (c OverworldConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	positive("world.cell_width", c.World.CellWidth)
	positive("world.cell_height", c.World.CellHeight)
	positive("player.speed", c.Player.Speed)
	positive("player.size", c.Player.Size)
	positive("player.health", c.Player.Health)
	positive("octopus.size", c.Octopus.Size)
	positive("octopus.levels.easy.health", c.Octopus.Levels.Easy.Health)
	positive("octopus.levels.medium.health", c.Octopus.Levels.Medium.Health)
	positive("octopus.levels.hard.health", c.Octopus.Levels.Hard.Health)
	positive("spawner.interval", c.Spawner.Interval)

	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}
	unit("player.knockback_resistance", c.Player.KnockbackResistance)
	unit("octopus.levels.easy.knockback_resistance", c.Octopus.Levels.Easy.KnockbackResistance)
	unit("octopus.levels.medium.knockback_resistance", c.Octopus.Levels.Medium.KnockbackResistance)
	unit("octopus.levels.hard.knockback_resistance", c.Octopus.Levels.Hard.KnockbackResistance)

	if c.Physics.LookAhead < 0 {
		errs = append(errs, fmt.Errorf("physics.look_ahead must not be negative, got %v", c.Physics.LookAhead))
	}
	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		errs = append(errs, fmt.Errorf("difficulty.progression.type %q is not one of score, time, none", c.Difficulty.Progression.Type))
	}

	return errors.Join(errs...)
}

// UserConfigPath returns the path to a user config file, or empty if home is unavailable.
func UserConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDir, "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *OverworldConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust survivability based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Health = 8
		cfg.Spawner.MaxAlive = cfg.Spawner.MaxAlive * 2 / 3
	case DifficultyHard:
		cfg.Player.Health = 3
		cfg.Octopus.Levels.Easy.Health++
		cfg.Octopus.Levels.Medium.Health++
		cfg.Octopus.Levels.Hard.Health++
	}
}
