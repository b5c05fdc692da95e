package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Board size limits for the built-in engine.
const (
	MinBoardWidth  = 12
	MinBoardHeight = 10
	MaxBoardWidth  = 200
	MaxBoardHeight = 120
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Load loads the driver configuration.
// Search order: customPath -> ~/.breakout/config.yaml -> ./configs/breakout.yaml -> embedded default
//
// Files are decoded on top of the defaults, so partial files only override what they name.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/breakout.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultDriverYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over the embedded defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values the driver cannot run without.
func (c Config) Validate() error {
	if c.Engine == "" {
		return fmt.Errorf("%w: engine must be set", ErrInvalid)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalid, c.TickRate)
	}
	if c.CellEdge <= 0 {
		return fmt.Errorf("%w: cell_edge must be positive, got %d", ErrInvalid, c.CellEdge)
	}
	if c.KeyRelease < 0 {
		return fmt.Errorf("%w: key_release must not be negative", ErrInvalid)
	}

	b := c.Breakout.Board
	if b.Width < MinBoardWidth || b.Width > MaxBoardWidth {
		return fmt.Errorf("%w: breakout.board.width must be in [%d, %d], got %d",
			ErrInvalid, MinBoardWidth, MaxBoardWidth, b.Width)
	}
	if b.Height < MinBoardHeight || b.Height > MaxBoardHeight {
		return fmt.Errorf("%w: breakout.board.height must be in [%d, %d], got %d",
			ErrInvalid, MinBoardHeight, MaxBoardHeight, b.Height)
	}
	if c.Breakout.Paddle.Width <= 0 || c.Breakout.Paddle.Width >= b.Width-2 {
		return fmt.Errorf("%w: breakout.paddle.width must fit inside the walls, got %d",
			ErrInvalid, c.Breakout.Paddle.Width)
	}
	if c.Breakout.Gameplay.Lives <= 0 {
		return fmt.Errorf("%w: breakout.gameplay.lives must be positive", ErrInvalid)
	}
	if b.Mode != "" && b.Mode != "campaign" && b.Mode != "endless" {
		return fmt.Errorf("%w: breakout.board.mode must be campaign or endless, got %q", ErrInvalid, b.Mode)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".breakout", filename)
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 8
		cfg.Physics.BallSpeed = 450
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 4
		cfg.Physics.BallSpeed = 800
	}
}
