package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/greedysnake/internal/config"
	"github.com/vovakirdan/greedysnake/internal/metrics"
	"github.com/vovakirdan/greedysnake/internal/session"
)

// Attach builds a session wired to a fresh InputQueue and ChannelRenderer,
// and the model that drives them. The caller runs both and closes the
// renderer once the session has returned.
func Attach(cfg config.Config, logger *log.Logger, rec *metrics.Recorder) (*session.Session, Model, *ChannelRenderer, error) {
	cfg, moved := cfg.FitSnake(ArenaRect(cfg.Screen.Width, cfg.Screen.Height))
	if moved && logger != nil {
		logger.Warn("snake placed outside the arena, re-centred",
			"head", cfg.Snake.Head, "tail", cfg.Snake.Tail)
	}

	input := NewInputQueue()
	renderer := NewChannelRenderer()

	sess, err := session.New(session.Options{
		Config:   cfg,
		Input:    input,
		Renderer: renderer,
		Logger:   logger,
		Metrics:  rec,
	})
	if err != nil {
		return nil, Model{}, nil, err
	}

	rt := cfg.Runtime()
	model := NewModel(ModelOptions{
		Title:    cfg.Title(),
		Width:    rt.ScreenW,
		Height:   rt.ScreenH,
		Input:    input,
		Renderer: renderer,
		Done:     sess.Loop().Done(),
		Stop:     sess.Stop,
	})
	return sess, model, renderer, nil
}

// Run plays one session in the current terminal until the player quits,
// the session fails or ctx is cancelled.
func Run(ctx context.Context, cfg config.Config, logger *log.Logger) error {
	sess, model, renderer, err := Attach(cfg, logger, nil)
	if err != nil {
		return err
	}
	defer renderer.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- sess.Run(ctx) }()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)
	_, uiErr := p.Run()

	sess.Stop()
	runErr := <-errCh

	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", uiErr)
	}
	return runErr
}
