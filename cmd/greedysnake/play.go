package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/greedysnake/internal/logging"
	"github.com/vovakirdan/greedysnake/internal/platform/tui"
)

var (
	flagSpeed   float64
	flagHeading string
	flagLogFile string
	flagNoMenu  bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a snake session in the current terminal.

Controls:
  Arrows/WASD  - Up, down, left, right
  Y/U/B/N      - Up-left, up-right, down-left, down-right
  P/Space      - Pause (toggle)
  Q/Esc/Ctrl+C - Quit

A pace menu is shown first unless --speed or --no-menu is given.
The arena takes the size of the terminal. Logs go to a file so they do
not disturb the game (default ~/.greedysnake/greedysnake.log).

Examples:
  greedysnake play
  greedysnake play --speed 20 --heading up
  greedysnake play --log-file /tmp/snake.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().Float64Var(&flagSpeed, "speed", 0, "Snake speed in cells per second (0 = from config)")
	playCmd.Flags().StringVar(&flagHeading, "heading", "", "Initial heading, e.g. right or up-left")
	playCmd.Flags().BoolVar(&flagNoMenu, "no-menu", false, "Skip the pace menu and start right away")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Log file (default from config, else "+logging.DefaultFilePath+")")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, _, err := loadConfig()
	exitOnError("loading config", err)

	if flagSpeed > 0 {
		cfg.Snake.Speed = flagSpeed
	}
	if flagHeading != "" {
		cfg.Snake.Heading = flagHeading
	}

	// Use the terminal size as the arena
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil && w >= 4 && h >= 4 {
		cfg.Screen.Width = w
		cfg.Screen.Height = h
	}
	exitOnError("in configuration", cfg.Validate())

	// Pick a pace unless the speed was given explicitly
	if !flagNoMenu && flagSpeed <= 0 {
		var start bool
		cfg, start, err = tui.RunMenu(cfg)
		exitOnError("running menu", err)
		if !start {
			return
		}
	}

	switch {
	case flagLogFile != "":
		cfg.Logger.Path = flagLogFile
	case cfg.Logger.Path == "":
		cfg.Logger.Path = logging.DefaultFilePath
	}
	logger, closer, err := logging.New(cfg.Logger, "greedysnake", os.Stderr)
	exitOnError("opening log", err)
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := tui.Run(ctx, cfg, logger); err != nil {
		closer.Close()
		exitOnError("running game", err)
	}
}
