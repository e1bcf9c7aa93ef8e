package config

import (
	"math"

	"github.com/vovakirdan/tui-worms/internal/core"
)

// Pace calculates the worm timer interval as the simulation progresses.
type Pace struct {
	cfg          RampConfig
	initialLevel float64
}

// NewPace creates a pace calculator.
func NewPace(cfg RampConfig) *Pace {
	return &Pace{
		cfg:          cfg,
		initialLevel: core.ClampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// Level returns the current level (0.0 to 1.0) after the given number of
// simulation steps.
func (p *Pace) Level(steps int) float64 {
	if !p.cfg.Enabled {
		return p.initialLevel
	}

	maxAt := float64(p.cfg.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := core.ClampF(float64(steps)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return p.initialLevel + progress*(1.0-p.initialLevel)
}

// Interval returns the timer interval in seconds for the given base.
// The interval shrinks from base to base / (1 + speedMultiplier).
func (p *Pace) Interval(base float64, steps int) float64 {
	level := p.Level(steps)
	return base / (1.0 + level*math.Max(0, p.cfg.SpeedMultiplier))
}
