package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/greedysnake/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorBody:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorHead:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorCorner:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHUD:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorPaused:  lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Glyphs used to rasterize the snake.
const (
	glyphBody   = '█'
	glyphCorner = '▓'
	glyphHead   = '@'
)

// HUD is the status shown on the arena's top border.
type HUD struct {
	Title   string
	Elapsed time.Duration
	Paused  bool
}

// ArenaRect returns the cells inside the arena border for a terminal of
// the given size. The last row belongs to the help line.
func ArenaRect(width, height int) core.Rect {
	return core.NewRect(1, 1, width-2, height-3)
}

// DrawArena renders the arena border, the snake and the HUD into dst.
// Snake coordinates are screen cells; links are rasterized as lines.
func DrawArena(dst *core.Screen, points []core.Point, hud HUD) {
	dst.Clear()
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return
	}
	dst.DrawBox(core.NewRect(0, 0, w, h), core.ColorBorder)

	for i := 1; i < len(points); i++ {
		dst.DrawLine(points[i-1], points[i], glyphBody, core.ColorBody)
	}
	for i := 1; i < len(points)-1; i++ {
		x, y := cellOf(points[i])
		dst.SetColored(x, y, glyphCorner, core.ColorCorner)
	}
	if len(points) > 0 {
		x, y := cellOf(points[0])
		dst.SetColored(x, y, glyphHead, core.ColorHead)
	}

	if hud.Title != "" {
		dst.DrawTextColored(2, 0, " "+hud.Title+" ", core.ColorHUD)
	}
	clock := " " + formatElapsed(hud.Elapsed) + " "
	dst.DrawTextColored(w-2-len(clock), 0, clock, core.ColorHUD)

	if hud.Paused {
		dst.DrawTextCentered(h/2, " PAUSED ", core.ColorPaused)
	}
}

func cellOf(p core.Point) (int, int) {
	return int(math.Round(p.X)), int(math.Round(p.Y))
}

// formatElapsed renders a duration as mm:ss.
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
