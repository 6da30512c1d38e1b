package config

import (
	_ "embed"
)

//go:embed defaults/greedysnake.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
// It mirrors defaults/greedysnake.yaml and is used when the embedded file
// cannot be parsed.
func Default() Config {
	return Config{
		Game: GameConfig{
			Name:    "Greedy Snake",
			Version: "v1.0",
		},
		Screen: ScreenConfig{
			Width:     80,
			Height:    24,
			FPS:       60,
			RenderFPS: 30,
		},
		Snake: SnakeConfig{
			Head:    PointConfig{X: 30, Y: 11},
			Tail:    PointConfig{X: 10, Y: 11},
			Speed:   12,
			Heading: "right",
		},
		Logger: LoggerConfig{
			Level:      "info",
			TimeFormat: "2006/01/02 15:04:05",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
