package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/greedysnake/internal/config"
)

// Pace is a speed preset offered before a local game starts.
type Pace struct {
	Name  string
	Speed float64 // Cells per second; 0 keeps the configured speed
}

// DefaultPaces lists the presets shown by the start menu.
func DefaultPaces() []Pace {
	return []Pace{
		{Name: "Configured", Speed: 0},
		{Name: "Slow", Speed: 6},
		{Name: "Normal", Speed: 12},
		{Name: "Fast", Speed: 20},
		{Name: "Frantic", Speed: 32},
	}
}

// Apply returns cfg with the pace's speed, if it sets one.
func (p Pace) Apply(cfg config.Config) config.Config {
	if p.Speed > 0 {
		cfg.Snake.Speed = p.Speed
	}
	return cfg
}

// menuKeys are the bindings of the start menu.
type menuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultMenuKeys() menuKeys {
	return menuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j")),
		Select: key.NewBinding(key.WithKeys("enter", " ")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc")),
	}
}

// MenuModel lets the player pick a pace before the game starts.
type MenuModel struct {
	title    string
	base     config.Config
	paces    []Pace
	cursor   int
	width    int
	height   int
	keys     menuKeys
	chosen   bool
	quitting bool
}

// NewMenuModel creates a start menu for the given configuration.
func NewMenuModel(cfg config.Config, width, height int) MenuModel {
	return MenuModel{
		title:  cfg.Title(),
		base:   cfg,
		paces:  DefaultPaces(),
		width:  width,
		height: height,
		keys:   defaultMenuKeys(),
	}
}

// Init initializes the model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.paces)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		m.chosen = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the pace selection.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select pace:", m.width))
	b.WriteString("\n\n")

	for i, p := range m.paces {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		speed := p.Speed
		if speed == 0 {
			speed = m.base.Snake.Speed
		}
		line := fmt.Sprintf("%s%-10s %5.1f cells/s", cursor, p.Name, speed)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Start  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen pace, or false if the player quit.
func (m MenuModel) Selected() (Pace, bool) {
	if !m.chosen {
		return Pace{}, false
	}
	return m.paces[m.cursor], true
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	padding := (width - n) / 2
	return strings.Repeat(" ", padding) + text
}

// RunMenu shows the start menu and returns cfg with the chosen pace applied.
// It reports false when the player quits instead of starting.
func RunMenu(cfg config.Config) (config.Config, bool, error) {
	model := NewMenuModel(cfg, cfg.Screen.Width, cfg.Screen.Height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return cfg, false, fmt.Errorf("tui: menu: %w", err)
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return cfg, false, nil
	}
	pace, ok := m.Selected()
	if !ok {
		return cfg, false, nil
	}
	return pace.Apply(cfg), true, nil
}
