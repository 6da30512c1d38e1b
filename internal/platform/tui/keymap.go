package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/greedysnake/internal/core"
)

// KeyMap defines the key bindings for steering the snake.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	UpLeft    key.Binding
	UpRight   key.Binding
	DownLeft  key.Binding
	DownRight key.Binding
	Pause     key.Binding
	Quit      key.Binding
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pause, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.UpLeft, k.UpRight, k.DownLeft, k.DownRight},
		{k.Pause, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings: arrows or WASD for the four
// axes, y/u/b/n for diagonals.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		UpLeft: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "up-left"),
		),
		UpRight: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "up-right"),
		),
		DownLeft: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "down-left"),
		),
		DownRight: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "down-right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/space", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Direction maps a key message to a heading. It reports false for keys
// that are not steering keys.
func (k KeyMap) Direction(msg tea.KeyMsg) (core.Direction, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return core.DirUp, true
	case key.Matches(msg, k.Down):
		return core.DirDown, true
	case key.Matches(msg, k.Left):
		return core.DirLeft, true
	case key.Matches(msg, k.Right):
		return core.DirRight, true
	case key.Matches(msg, k.UpLeft):
		return core.DirUpLeft, true
	case key.Matches(msg, k.UpRight):
		return core.DirUpRight, true
	case key.Matches(msg, k.DownLeft):
		return core.DirDownLeft, true
	case key.Matches(msg, k.DownRight):
		return core.DirDownRight, true
	}
	return core.DirNone, false
}
