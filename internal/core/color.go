package core

// Color is a semantic foreground color for a screen cell.
// The platform layer maps each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorBody          // snake links
	ColorHead          // leading point
	ColorCorner        // breakpoints left by turns
	ColorBorder        // arena frame
	ColorHUD           // status line text
	ColorPaused        // pause banner
)
