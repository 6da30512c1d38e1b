package core

import "time"

// RuntimeConfig contains the terminal-facing parameters of a session.
type RuntimeConfig struct {
	ScreenW   int // Screen width in characters
	ScreenH   int // Screen height in characters
	TickRate  int // Logic updates per second
	RenderFPS int // Render presentations per second; 0 means the loop default
}

// TickDuration returns the fixed logic step for the configured tick rate.
func (c RuntimeConfig) TickDuration() time.Duration {
	return TickForFPS(c.TickRate)
}

// TickForFPS converts a frames-per-second value into a fixed tick of
// 1000/fps milliseconds. Non-positive rates fall back to 60.
func TickForFPS(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
