package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/greedysnake/internal/core"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("screen:\n  fps: 30\nsnake:\n  speed: 4.5\n  heading: up-left\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := LoadWithSource(path)
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if src != path {
		t.Errorf("source = %q, expected %q", src, path)
	}
	if cfg.Screen.FPS != 30 {
		t.Errorf("FPS = %d, expected 30", cfg.Screen.FPS)
	}
	if cfg.Snake.Speed != 4.5 {
		t.Errorf("Speed = %v, expected 4.5", cfg.Snake.Speed)
	}
	// Keys not present in the file keep their defaults.
	if cfg.Screen.Width != Default().Screen.Width {
		t.Errorf("Width = %d, expected default %d", cfg.Screen.Width, Default().Screen.Width)
	}
	dir2, err := cfg.Snake.Direction()
	if err != nil || dir2 != core.DirUpLeft {
		t.Errorf("Direction() = %v, %v; expected up-left", dir2, err)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("screen: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); err == nil {
		t.Error("expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("screen:\n  fps: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(invalid)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	// Nothing on disk: embedded default.
	cfg, src, err := LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if src != "embedded" || cfg != Default() {
		t.Errorf("expected embedded default, got %q %+v", src, cfg)
	}

	// Local configs directory.
	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	local := filepath.Join("configs", FileName)
	if err := os.WriteFile(local, []byte("screen:\n  fps: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, src, err = LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if src != local || cfg.Screen.FPS != 20 {
		t.Errorf("expected local config, got %q fps=%d", src, cfg.Screen.FPS)
	}

	// User config wins over the local one.
	userDir := filepath.Join(home, ".greedysnake")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	user := filepath.Join(userDir, "config.yaml")
	if err := os.WriteFile(user, []byte("screen:\n  fps: 25\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, src, err = LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if src != user || cfg.Screen.FPS != 25 {
		t.Errorf("expected user config, got %q fps=%d", src, cfg.Screen.FPS)
	}

	// A broken user config is skipped.
	if err := os.WriteFile(user, []byte("screen: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	_, src, err = LoadWithSource("")
	if err != nil {
		t.Fatalf("LoadWithSource() failed: %v", err)
	}
	if src != local {
		t.Errorf("expected fallback to local config, got %q", src)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"tiny screen", func(c *Config) { c.Screen.Width = 2 }},
		{"zero fps", func(c *Config) { c.Screen.FPS = 0 }},
		{"huge fps", func(c *Config) { c.Screen.FPS = 5000 }},
		{"negative render fps", func(c *Config) { c.Screen.RenderFPS = -1 }},
		{"negative speed", func(c *Config) { c.Snake.Speed = -2 }},
		{"unknown heading", func(c *Config) { c.Snake.Heading = "sideways" }},
		{"unknown level", func(c *Config) { c.Logger.Level = "loud" }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestRuntimeAndTitle(t *testing.T) {
	cfg := Default()
	rt := cfg.Runtime()
	if rt.ScreenW != 80 || rt.ScreenH != 24 || rt.TickRate != 60 || rt.RenderFPS != 30 {
		t.Errorf("Runtime() = %+v", rt)
	}
	if cfg.Title() != "Greedy Snake v1.0" {
		t.Errorf("Title() = %q", cfg.Title())
	}
	cfg.Game.Version = ""
	if cfg.Title() != "Greedy Snake" {
		t.Errorf("Title() without version = %q", cfg.Title())
	}
}

func TestFitSnake(t *testing.T) {
	arena := core.NewRect(1, 1, 18, 8)

	tests := []struct {
		name       string
		head, tail PointConfig
		moved      bool
		wantHead   PointConfig
		wantTail   PointConfig
	}{
		{"inside stays", PointConfig{X: 10, Y: 4}, PointConfig{X: 2, Y: 4}, false, PointConfig{X: 10, Y: 4}, PointConfig{X: 2, Y: 4}},
		{"beyond right edge", PointConfig{X: 30, Y: 11}, PointConfig{X: 24, Y: 11}, true, PointConfig{X: 13, Y: 5}, PointConfig{X: 7, Y: 5}},
		{"longer than arena", PointConfig{X: 60, Y: 3}, PointConfig{X: 0, Y: 3}, true, PointConfig{X: 18, Y: 5}, PointConfig{X: 1, Y: 5}},
		{"vertical", PointConfig{X: 5, Y: 0}, PointConfig{X: 5, Y: 4}, true, PointConfig{X: 10, Y: 3}, PointConfig{X: 10, Y: 7}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Snake.Head, cfg.Snake.Tail = tc.head, tc.tail

			got, moved := cfg.FitSnake(arena)
			if moved != tc.moved {
				t.Errorf("FitSnake() moved = %v, expected %v", moved, tc.moved)
			}
			if got.Snake.Head != tc.wantHead || got.Snake.Tail != tc.wantTail {
				t.Errorf("FitSnake() = head %+v tail %+v, expected head %+v tail %+v",
					got.Snake.Head, got.Snake.Tail, tc.wantHead, tc.wantTail)
			}
			if got.Snake.Speed != cfg.Snake.Speed || got.Screen != cfg.Screen {
				t.Error("FitSnake() should only change the placement")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := LoggerConfig{}.ParseLevel()
	if err != nil || lvl != log.InfoLevel {
		t.Errorf("empty level = %v, %v; expected info", lvl, err)
	}
	lvl, err = LoggerConfig{Level: "debug"}.ParseLevel()
	if err != nil || lvl != log.DebugLevel {
		t.Errorf("debug level = %v, %v", lvl, err)
	}
}

func TestMarshalRoundTripKeepsValues(t *testing.T) {
	cfg := Default()
	cfg.Snake.Speed = 7.25

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if back != cfg {
		t.Errorf("round trip = %+v, expected %+v", back, cfg)
	}
}
