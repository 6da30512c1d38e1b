// greedysnake is a free-moving snake for the terminal, playable locally or
// over SSH.
//
// Usage:
//
//	greedysnake play         - Play in this terminal
//	greedysnake serve        - Start SSH server for remote play
//	greedysnake config       - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Custom config YAML
//	--fps <rate>        - Override logic tick rate (0 = from config)
//	--log-level <name>  - Override log level (debug, info, warn, error)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/greedysnake/internal/config"
)

var (
	// Global flags
	flagConfig   string
	flagFPS      int
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "greedysnake",
	Short: "Greedy Snake - a free-moving snake in your terminal",
	Long: `Greedy Snake steers a snake that moves continuously in eight directions.
Every turn leaves a corner behind that the tail follows.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  greedysnake play
  greedysnake play --fps 120 --speed 20
  greedysnake serve --ssh :2222 --metrics :9090
  greedysnake config --config ./configs/greedysnake.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Logic tick rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level override")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration and applies the global overrides.
func loadConfig() (config.Config, string, error) {
	cfg, src, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}
	if flagFPS != 0 {
		cfg.Screen.FPS = flagFPS
	}
	if flagLogLevel != "" {
		cfg.Logger.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, src, nil
}

func exitOnError(prefix string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", prefix, err)
	os.Exit(1)
}
