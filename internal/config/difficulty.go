package config

// DifficultyManager ramps engine speed from the initial level towards the
// maximum as score or elapsed steps grow.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64
}

// NewDifficultyManager creates a difficulty manager. initial_level is
// clamped to [0, 1].
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: unit(cfg.InitialLevel)}
}

// IsEnabled reports whether the level moves at all.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty in [initial_level, 1] for the given score
// and step count.
func (d *DifficultyManager) Level(score, steps int) float64 {
	if !d.IsEnabled() {
		return d.floor
	}
	return d.floor + d.cfg.Progression.progress(score, steps)*(1-d.floor)
}

// Speed scales a base speed by up to 1 + speed_multiplier at full difficulty.
func (d *DifficultyManager) Speed(base float64, score, steps int) float64 {
	return base * (1 + d.Level(score, steps)*d.cfg.Scaling.SpeedMultiplier)
}

// progress is how far along the ramp the game is, in [0, 1].
func (p ProgressionConfig) progress(score, steps int) float64 {
	var at int
	switch p.Type {
	case "score":
		at = score
	case "time":
		at = steps
	default:
		return 0
	}
	return unit(float64(at) / float64(max(p.MaxAt, 1)))
}

func unit(v float64) float64 {
	return max(0, min(1, v))
}
