package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/greedysnake/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration greedysnake would run with, as YAML.

The source is resolved in this order:
  --config <path>
  ~/.greedysnake/config.yaml
  ./configs/greedysnake.yaml
  built-in defaults

Examples:
  greedysnake config
  greedysnake config --fps 120
  greedysnake config --defaults > ~/.greedysnake/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in default file instead")
}

func runConfig(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	if flagDefaults {
		fmt.Fprint(out, string(config.DefaultYAML()))
		return
	}

	cfg, src, err := loadConfig()
	exitOnError("loading config", err)

	data, err := config.Marshal(cfg)
	exitOnError("encoding config", err)

	fmt.Fprintf(out, "# source: %s\n", src)
	fmt.Fprint(out, string(data))
}
