// Package config provides YAML-based simulation configuration with schema
// validation and the tick pacing derived from it.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// Config contains everything needed to build a simulation world.
type Config struct {
	Seed     int64       `yaml:"seed"`     // 0 = derive from the clock
	Scenario string      `yaml:"scenario"` // registered layout name
	Grid     GridConfig  `yaml:"grid"`
	Pools    PoolConfig  `yaml:"pools"`
	Worm     WormConfig  `yaml:"worm"`
	Fruit    FruitConfig `yaml:"fruit"`
	Tick     TickConfig  `yaml:"tick"`
}

// GridConfig defines the occupancy grid geometry.
type GridConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	CellSize   int `yaml:"cell_size"`
	LeftBorder int `yaml:"left_border"`
	TopBorder  int `yaml:"top_border"`
}

// PoolConfig defines the fixed capacity of every entity pool.
type PoolConfig struct {
	Worms    int `yaml:"worms"`
	Segments int `yaml:"segments"`
	Clusters int `yaml:"clusters"`
	Fruits   int `yaml:"fruits"`
}

// WormConfig defines worm parameters.
type WormConfig struct {
	MaxLength    int     `yaml:"max_length"`
	SpawnLength  int     `yaml:"spawn_length"`
	Blockify     bool    `yaml:"blockify"`      // stuck worms become clusters instead of vanishing
	PossessRange float64 `yaml:"possess_range"` // in cells
}

// FruitConfig defines fruit parameters.
type FruitConfig struct {
	Initial int `yaml:"initial"`
}

// TickConfig defines the simulation timers in seconds.
type TickConfig struct {
	Worm    float64    `yaml:"worm"`
	Gravity float64    `yaml:"gravity"` // 0 disables cluster gravity
	Ramp    RampConfig `yaml:"ramp"`
}

// RampConfig defines how the worm timer speeds up as steps accumulate.
type RampConfig struct {
	Enabled         bool    `yaml:"enabled"`
	InitialLevel    float64 `yaml:"initial_level"`    // 0.0 = base pace, 1.0 = full speed
	MaxAt           int     `yaml:"max_at"`           // steps at which full speed is reached
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // extra speed at full level
}

// ValidationError reports a semantically invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// Validate checks the constraints the schema cannot express.
func (c Config) Validate() error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(c.Scenario) == "" {
		fail("scenario", "must not be empty")
	}
	if c.Grid.Width < 1 || c.Grid.Height < 1 {
		fail("grid", "size %dx%d must be positive", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.CellSize < 1 {
		fail("grid.cell_size", "must be positive, got %d", c.Grid.CellSize)
	}
	if c.Pools.Worms < 1 || c.Pools.Segments < 1 || c.Pools.Clusters < 1 || c.Pools.Fruits < 1 {
		fail("pools", "every pool needs at least one slot")
	}
	if c.Pools.Segments < c.Pools.Worms {
		fail("pools.segments", "%d segments cannot hold the heads of %d worms", c.Pools.Segments, c.Pools.Worms)
	}
	if c.Worm.MaxLength < 1 {
		fail("worm.max_length", "must be positive, got %d", c.Worm.MaxLength)
	}
	if c.Worm.SpawnLength < 1 || c.Worm.SpawnLength > c.Worm.MaxLength {
		fail("worm.spawn_length", "must be within [1, %d], got %d", c.Worm.MaxLength, c.Worm.SpawnLength)
	}
	if c.Worm.PossessRange <= 0 {
		fail("worm.possess_range", "must be positive")
	}
	if c.Fruit.Initial < 0 || c.Fruit.Initial > c.Pools.Fruits {
		fail("fruit.initial", "must be within [0, %d], got %d", c.Pools.Fruits, c.Fruit.Initial)
	}
	if c.Tick.Worm <= 0 {
		fail("tick.worm", "must be positive")
	}
	if c.Tick.Gravity < 0 {
		fail("tick.gravity", "must not be negative")
	}
	if c.Tick.Ramp.InitialLevel < 0 || c.Tick.Ramp.InitialLevel > 1 {
		fail("tick.ramp.initial_level", "must be within [0, 1]")
	}
	return errors.Join(errs...)
}

// SpeedPreset represents a named pace.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedFixed  SpeedPreset = "fixed"
)

// ParseSpeedPreset converts a flag value to a preset.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	switch p := SpeedPreset(strings.ToLower(s)); p {
	case SpeedSlow, SpeedNormal, SpeedFast, SpeedFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown speed %q (slow, normal, fast, fixed)", s)
	}
}

// InitialLevelForPreset returns the ramp initial_level for a preset.
func InitialLevelForPreset(preset SpeedPreset) float64 {
	switch preset {
	case SpeedNormal:
		return 0.3
	case SpeedFast:
		return 0.7
	default:
		return 0.0
	}
}

// ApplySpeedPreset modifies the ramp settings for a preset.
func ApplySpeedPreset(cfg *Config, preset SpeedPreset) {
	if preset == SpeedFixed {
		cfg.Tick.Ramp.Enabled = false
		return
	}
	cfg.Tick.Ramp.Enabled = true
	cfg.Tick.Ramp.InitialLevel = InitialLevelForPreset(preset)
}
