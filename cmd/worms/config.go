package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-worms/internal/config"
)

var flagSchema bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration worms would run with, as YAML, after the
search order is applied:

  --config path -> ~/.worms/configs/worms.yaml -> ./configs/worms.yaml -> embedded default

The output is a valid config file and can be saved and edited.

Examples:
  worms config > ~/.worms/configs/worms.yaml
  worms config --schema`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagSchema, "schema", false, "Print the JSON schema instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	if flagSchema {
		_, err := out.Write(config.Schema())
		return err
	}

	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	data, err := config.Encode(cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "# source: %s\n", source)
	_, err = out.Write(data)
	return err
}
