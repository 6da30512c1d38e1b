// Package tui hosts a session in a terminal: Bubble Tea reads keys into an
// InputQueue and draws the frames the render loop hands to a ChannelRenderer.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/greedysnake/internal/core"
	"github.com/vovakirdan/greedysnake/internal/loop"
)

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// FrameMsg carries a frame from the render loop into the program.
type FrameMsg loop.Frame

// SessionEndedMsg is sent when the session's loop has finished.
type SessionEndedMsg struct{}

// waitForFrame blocks until the next frame or the end of the session.
func waitForFrame(frames <-chan loop.Frame, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-frames:
			return FrameMsg(f)
		case <-done:
			return SessionEndedMsg{}
		}
	}
}

// ModelOptions configures a Model.
type ModelOptions struct {
	Title    string
	Width    int // Initial terminal size
	Height   int
	Input    *InputQueue
	Renderer *ChannelRenderer
	Done     <-chan struct{} // Closed when the session finishes
	Stop     func()          // Ends the session; called on quit
}

// Model is the Bubble Tea model for one running session.
type Model struct {
	title    string
	keys     KeyMap
	help     help.Model
	input    *InputQueue
	renderer *ChannelRenderer
	done     <-chan struct{}
	stop     func()
	screen   *core.Screen

	frame    loop.Frame // Latest frame received
	paused   bool
	quitting bool
}

// NewModel creates a model. The screen keeps one row for the help line.
func NewModel(opts ModelOptions) Model {
	h := help.New()
	h.ShowAll = false
	h.Width = opts.Width

	stop := opts.Stop
	if stop == nil {
		stop = func() {}
	}

	return Model{
		title:    opts.Title,
		keys:     DefaultKeyMap(),
		help:     h,
		input:    opts.Input,
		renderer: opts.Renderer,
		done:     opts.Done,
		stop:     stop,
		screen:   core.NewScreen(opts.Width, max(opts.Height-1, 0)),
	}
}

// Init starts waiting for frames.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.renderer.Frames(), m.done)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		m.frame = loop.Frame(msg)
		return m, waitForFrame(m.renderer.Frames(), m.done)

	case SessionEndedMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = m.input.TogglePause()
		return m, nil
	}

	if dir, ok := m.keys.Direction(msg); ok {
		m.input.Turn(dir)
	}
	return m, nil
}

// Paused reports whether the model shows the game as paused.
func (m Model) Paused() bool {
	return m.paused
}

// Frame returns the latest frame received from the render loop.
func (m Model) Frame() loop.Frame {
	return m.frame
}

// View renders the latest frame with the help line below it.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	DrawArena(m.screen, m.frame.Points, HUD{
		Title:   m.title,
		Elapsed: m.frame.Elapsed,
		Paused:  m.paused,
	})
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}
