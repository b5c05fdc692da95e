// Package config provides YAML-based configuration loading and difficulty
// management for the breakout driver.
package config

import "time"

// Config is the complete driver configuration.
type Config struct {
	Engine     string         `yaml:"engine"`      // Registered engine ID
	Seed       int64          `yaml:"seed"`        // RNG seed for engines that use one (0 = pick at startup)
	TickRate   int            `yaml:"tick_rate"`   // Steps per second while running
	CellEdge   int            `yaml:"cell_edge"`   // Raster tile edge in pixels
	KeyRelease time.Duration  `yaml:"key_release"` // Synthesized key-up delay (0 = off)
	Palette    PaletteConfig  `yaml:"palette"`
	Breakout   BreakoutConfig `yaml:"breakout"`
	Intcode    IntcodeConfig  `yaml:"intcode"`
}

// PaletteConfig holds "#rrggbb" colors keyed by tile kind.
type PaletteConfig struct {
	Grid   string `yaml:"grid"`
	Empty  string `yaml:"empty"`
	Wall   string `yaml:"wall"`
	Block  string `yaml:"block"`
	Paddle string `yaml:"paddle"`
	Ball   string `yaml:"ball"`
}

// BreakoutConfig contains all configuration for the built-in Breakout engine.
type BreakoutConfig struct {
	Board      BreakoutBoard    `yaml:"board"`
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutBoard defines the tile board.
type BreakoutBoard struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Level  string `yaml:"level"` // Starting level ID (empty = first)
	Mode   string `yaml:"mode"`  // "campaign" or "endless"
}

// BreakoutPhysics defines physics parameters, in thousandths of a tile per step.
type BreakoutPhysics struct {
	BallSpeed    int `yaml:"ball_speed"`
	PaddleSpeed  int `yaml:"paddle_speed"`
	MaxBallSpeed int `yaml:"max_ball_speed"`
}

// BreakoutPaddle defines paddle parameters.
type BreakoutPaddle struct {
	Width int `yaml:"width"`
}

// BreakoutGameplay defines rules.
type BreakoutGameplay struct {
	Lives int `yaml:"lives"`
}

// IntcodeConfig configures the Intcode arcade engine.
type IntcodeConfig struct {
	Program  string `yaml:"program"`   // Path to the comma-separated program
	FreePlay bool   `yaml:"free_play"` // Patch address 0 to 2 before running
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
