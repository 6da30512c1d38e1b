// Package config provides YAML-based configuration loading for greedysnake.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/greedysnake/internal/core"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config contains all settings of a session.
type Config struct {
	Game   GameConfig   `yaml:"game"`
	Screen ScreenConfig `yaml:"screen"`
	Snake  SnakeConfig  `yaml:"snake"`
	Logger LoggerConfig `yaml:"logger"`
}

// GameConfig holds the title shown in the HUD.
type GameConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// ScreenConfig defines the arena size and the two loop rates.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	FPS       int `yaml:"fps"`        // Logic updates per second
	RenderFPS int `yaml:"render_fps"` // Presentations per second
}

// PointConfig is a coordinate in arena cells.
type PointConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Point converts to a core.Point.
func (p PointConfig) Point() core.Point {
	return core.Pt(p.X, p.Y)
}

// SnakeConfig defines the initial placement and speed of the snake.
type SnakeConfig struct {
	Head    PointConfig `yaml:"head"`
	Tail    PointConfig `yaml:"tail"`
	Speed   float64     `yaml:"speed"`   // Cells per second
	Heading string      `yaml:"heading"` // Direction name, see core.ParseDirection
}

// Direction parses the configured heading.
func (s SnakeConfig) Direction() (core.Direction, error) {
	d, ok := core.ParseDirection(s.Heading)
	if !ok {
		return core.DirNone, fmt.Errorf("%w: unknown snake heading %q", ErrInvalid, s.Heading)
	}
	return d, nil
}

// LoggerConfig defines where and how verbosely to log.
type LoggerConfig struct {
	Level      string `yaml:"level"`
	Path       string `yaml:"path"`
	TimeFormat string `yaml:"time_format"`
}

// ParseLevel returns the configured log level, info when unset.
func (l LoggerConfig) ParseLevel() (log.Level, error) {
	if l.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(l.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("%w: logger level %q", ErrInvalid, l.Level)
	}
	return lvl, nil
}

// Runtime returns the terminal-facing subset of the configuration.
func (c Config) Runtime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:   c.Screen.Width,
		ScreenH:   c.Screen.Height,
		TickRate:  c.Screen.FPS,
		RenderFPS: c.Screen.RenderFPS,
	}
}

// FitSnake returns c with the snake moved inside arena when either end
// lies outside it. The moved snake is centred in the arena with its
// orientation kept, and ends that still overhang are clamped to the edge.
// It reports whether the placement changed.
func (c Config) FitSnake(arena core.Rect) (Config, bool) {
	head, tail := c.Snake.Head.Point(), c.Snake.Tail.Point()
	if inside(arena, head) && inside(arena, tail) {
		return c, false
	}

	mid := core.Pt(float64(arena.X)+float64(arena.W-1)/2, float64(arena.Y)+float64(arena.H-1)/2)
	half := core.Scale(head.Minus(tail), 0.5)
	c.Snake.Head = clampTo(arena, core.Add(mid, half))
	c.Snake.Tail = clampTo(arena, mid.Minus(half))
	return c, true
}

func inside(r core.Rect, p core.Point) bool {
	return r.Contains(int(math.Round(p.X)), int(math.Round(p.Y)))
}

func clampTo(r core.Rect, p core.Point) PointConfig {
	return PointConfig{
		X: float64(core.Clamp(int(math.Round(p.X)), r.X, r.Right()-1)),
		Y: float64(core.Clamp(int(math.Round(p.Y)), r.Y, r.Bottom()-1)),
	}
}

// Title returns "name version", or just the name when no version is set.
func (c Config) Title() string {
	if c.Game.Version == "" {
		return c.Game.Name
	}
	return c.Game.Name + " " + c.Game.Version
}

// Validate checks that the configuration describes a runnable session.
func (c Config) Validate() error {
	if c.Screen.Width < 4 || c.Screen.Height < 4 {
		return fmt.Errorf("%w: screen must be at least 4x4, got %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.FPS < 1 || c.Screen.FPS > 1000 {
		return fmt.Errorf("%w: screen fps must be within 1..1000, got %d", ErrInvalid, c.Screen.FPS)
	}
	if c.Screen.RenderFPS < 0 || c.Screen.RenderFPS > 1000 {
		return fmt.Errorf("%w: screen render_fps must be within 0..1000, got %d", ErrInvalid, c.Screen.RenderFPS)
	}
	if !core.IsFinite(c.Snake.Head.Point()) || !core.IsFinite(c.Snake.Tail.Point()) {
		return fmt.Errorf("%w: snake head and tail must be finite", ErrInvalid)
	}
	if math.IsNaN(c.Snake.Speed) || math.IsInf(c.Snake.Speed, 0) || c.Snake.Speed < 0 {
		return fmt.Errorf("%w: snake speed must be a non-negative number, got %v", ErrInvalid, c.Snake.Speed)
	}
	if _, err := c.Snake.Direction(); err != nil {
		return err
	}
	if _, err := c.Logger.ParseLevel(); err != nil {
		return err
	}
	return nil
}
