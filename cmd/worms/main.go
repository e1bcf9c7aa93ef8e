// worms runs a grid of autonomous worms that wander, eat fruit, grow and
// freeze into falling block clusters when they get stuck.
//
// Usage:
//
//	worms list               - List available scenarios
//	worms run [scenario]     - Run headless for a number of steps
//	worms play [scenario]    - Watch and steer in the terminal
//	worms config             - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--seed <value>      - RNG seed for reproducible runs
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-worms/internal/config"
	"github.com/vovakirdan/tui-worms/internal/registry"
	"github.com/vovakirdan/tui-worms/internal/sim"

	// Import scenarios to register them
	_ "github.com/vovakirdan/tui-worms/internal/scenarios"
)

var (
	flagConfig   string
	flagSeed     int64
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "worms",
	Short: "Worms - a grid of wandering worms in your terminal",
	Long: `Worms simulates a grid of autonomous worms. Worms wander, eat fruit
and grow. A worm with nowhere to go freezes into a block cluster.

Available commands:
  list     - Show all scenarios
  run      - Run a scenario headless and print the grid
  play     - Watch a scenario and take over worms
  config   - Print the effective configuration

Examples:
  worms list
  worms run pocket --steps 200 --seed 42
  worms play arena --speed fast
  worms config --config ./my-worms.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed, or time based)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "worms",
		Level:           level,
	}), nil
}

// loadConfig resolves the configuration and applies the global flags.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("config loaded", "source", source)
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	return cfg, nil
}

// newWorld builds a world for the scenario named in args, or the configured
// one when args is empty.
func newWorld(cfg config.Config, args []string, logger *log.Logger) (*sim.World, registry.Scenario, error) {
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	scenario, err := registry.Create(cfg.Scenario)
	if err != nil {
		return nil, nil, fmt.Errorf("%w (run 'worms list' to see available scenarios)", err)
	}
	world, err := sim.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return world, scenario, nil
}
