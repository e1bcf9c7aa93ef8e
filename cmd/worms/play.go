package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-worms/internal/config"
	"github.com/vovakirdan/tui-worms/internal/core"
	"github.com/vovakirdan/tui-worms/internal/platform/tui"
)

var (
	flagSpeed   string
	flagFPS     int
	flagLogFile string
	flagMenu    bool
)

var playCmd = &cobra.Command{
	Use:   "play [scenario]",
	Short: "Watch a scenario in the terminal",
	Long: `Runs the scenario in a terminal view. You can take over the worm
nearest to the centre and steer it. Freezing it hands you the block
cluster it becomes.

Controls:
  E          - Possess the nearest worm
  X          - Release it
  Arrows/WASD- Steer the worm; shift, soft drop and rotate a cluster
  Space      - Freeze the worm; hard drop a cluster
  P/Esc      - Pause        N - Single step while paused
  R          - Restart      ? - Toggle help
  Q/Ctrl+C   - Quit

Speed options:
  slow   - Start at the base worm interval, speeds up over time
  normal - Start at 30% of the ramp
  fast   - Start at 70% of the ramp
  fixed  - No ramp, the configured interval throughout

Examples:
  worms play
  worms play arena --speed fast
  worms play --menu
  worms play pocket --log-file worms.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, fixed")
	playCmd.Flags().IntVar(&flagFPS, "fps", core.DefaultFrameRate, "Frames per second")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (discarded otherwise)")
	playCmd.Flags().BoolVar(&flagMenu, "menu", false, "Pick the scenario from a menu")
}

func runPlay(cmd *cobra.Command, args []string) error {
	// The terminal belongs to the viewer, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger, err := newLogger(logOut)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if flagSpeed != "" {
		preset, err := config.ParseSpeedPreset(flagSpeed)
		if err != nil {
			return err
		}
		config.ApplySpeedPreset(&cfg, preset)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	if flagMenu {
		current := cfg.Scenario
		if len(args) > 0 {
			current = args[0]
		}
		id, err := tui.RunMenu(current, width, height)
		if err != nil {
			return err
		}
		if id == "" {
			return nil
		}
		args = []string{id}
	}

	world, scenario, err := newWorld(cfg, args, logger)
	if err != nil {
		return err
	}
	if need := cfg.Grid.Width + 2; need > width {
		logger.Warn("terminal narrower than the grid", "need", need, "have", width)
	}
	if need := cfg.Grid.Height + 4; need > height {
		logger.Warn("terminal shorter than the grid", "need", need, "have", height)
	}

	return tui.Run(world, scenario, tui.Options{
		FrameRate: flagFPS,
		Logger:    logger,
	})
}
