package config

import (
	_ "embed"
)

//go:embed defaults/driver.yaml
var defaultDriverYAML []byte

// Default returns the hardcoded default configuration.
// It mirrors defaults/driver.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Engine:   "breakout",
		TickRate: 20,
		CellEdge: 8,
		Palette: PaletteConfig{
			Grid:   "#cccccc",
			Empty:  "#ffffff",
			Wall:   "#202020",
			Block:  "#3366cc",
			Paddle: "#22aa44",
			Ball:   "#dd3322",
		},
		Breakout: DefaultBreakoutConfig(),
		Intcode: IntcodeConfig{
			FreePlay: true,
		},
	}
}

// DefaultBreakoutConfig returns the default Breakout engine configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Board: BreakoutBoard{
			Width:  38,
			Height: 24,
			Mode:   "campaign",
		},
		Physics: BreakoutPhysics{
			BallSpeed:    600,  // 0.6 tiles per step
			PaddleSpeed:  1000, // 1 tile per step
			MaxBallSpeed: 1000, // Faster than a tile per step would tunnel through bricks
		},
		Paddle: BreakoutPaddle{
			Width: 6,
		},
		Gameplay: BreakoutGameplay{
			Lives: 3,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML (for `config` dumps and docs).
func DefaultYAML() []byte {
	return defaultDriverYAML
}
