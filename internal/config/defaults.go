package config

import (
	_ "embed"
)

//go:embed defaults/worms.yaml
var defaultWormsYAML []byte

//go:embed defaults/worms.schema.json
var wormsSchemaJSON []byte

// DefaultConfig returns the hardcoded configuration. It matches the embedded
// defaults/worms.yaml and is used when even that cannot be decoded.
func DefaultConfig() Config {
	return Config{
		Seed:     0,
		Scenario: "classic",
		Grid: GridConfig{
			Width:      48,
			Height:     20,
			CellSize:   16,
			LeftBorder: -384,
			TopBorder:  160,
		},
		Pools: PoolConfig{
			Worms:    64,
			Segments: 320,
			Clusters: 128,
			Fruits:   16,
		},
		Worm: WormConfig{
			MaxLength:    5,
			SpawnLength:  5,
			Blockify:     true,
			PossessRange: 6,
		},
		Fruit: FruitConfig{
			Initial: 8,
		},
		Tick: TickConfig{
			Worm:    0.3,
			Gravity: 0,
			Ramp: RampConfig{
				Enabled:         false,
				InitialLevel:    0.0,
				MaxAt:           2000,
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultWormsYAML
}

// Schema returns the embedded JSON schema.
func Schema() []byte {
	return wormsSchemaJSON
}
