// Package session wires one game: a snake body, its clock and scheduler,
// and the loop that drives them. A Session is created by its owner (the
// CLI or the SSH server), run once, and discarded.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/greedysnake/internal/config"
	"github.com/vovakirdan/greedysnake/internal/core"
	"github.com/vovakirdan/greedysnake/internal/loop"
	"github.com/vovakirdan/greedysnake/internal/metrics"
	"github.com/vovakirdan/greedysnake/internal/snake"
)

// Options configures a Session. Input and Renderer are required.
type Options struct {
	Config   config.Config
	Input    loop.Input
	Renderer loop.Renderer
	Logger   *log.Logger
	Metrics  *metrics.Recorder // May be nil
	Time     core.TimeSource   // Nil means the system clock
}

// Session owns the state of one running game.
type Session struct {
	id      string
	cfg     config.Config
	body    *snake.Body
	clock   *core.Clock
	loop    *loop.Loop
	logger  *log.Logger
	metrics *metrics.Recorder
}

// New builds a session from the configuration. Nothing runs until Run.
func New(opts Options) (*Session, error) {
	if opts.Input == nil || opts.Renderer == nil {
		return nil, errors.New("session: input and renderer are required")
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	dir, err := cfg.Snake.Direction()
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}
	body, err := snake.NewBody(cfg.Snake.Head.Point(), cfg.Snake.Tail.Point(), cfg.Snake.Speed, dir.Vector())
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	rt := cfg.Runtime()
	sched, err := loop.NewScheduler(rt.TickDuration())
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("session", id)

	clock := core.NewClock(opts.Time)
	lp, err := loop.New(loop.Options{
		Body:      body,
		Clock:     clock,
		Scheduler: sched,
		Input:     opts.Input,
		Renderer:  opts.Renderer,
		RenderFPS: rt.RenderFPS,
		Logger:    logger,
		Observer:  opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	return &Session{
		id:      id,
		cfg:     cfg,
		body:    body,
		clock:   clock,
		loop:    lp,
		logger:  logger,
		metrics: opts.Metrics,
	}, nil
}

// Run blocks until the session is stopped, ctx is cancelled or the renderer
// fails. A session can be run only once.
func (s *Session) Run(ctx context.Context) error {
	end := s.metrics.SessionStarted()
	defer end()

	s.logger.Info("session started",
		"fps", s.cfg.Screen.FPS,
		"render_fps", s.cfg.Screen.RenderFPS,
		"speed", s.cfg.Snake.Speed,
		"heading", s.cfg.Snake.Heading,
	)
	err := s.loop.Run(ctx)
	stats := s.loop.Stats()
	if err != nil {
		s.logger.Error("session failed", "error", err, "elapsed", s.Elapsed())
		return fmt.Errorf("session %s: %w", s.id, err)
	}
	s.logger.Info("session stopped",
		"elapsed", s.Elapsed().Round(time.Millisecond),
		"walks", stats.Walks,
		"frames", stats.Frames,
	)
	return nil
}

// Stop ends the session. Safe to call from any goroutine, any number of times.
func (s *Session) Stop() {
	s.loop.Stop()
}

// ID returns the unique session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the configuration the session was built with.
func (s *Session) Config() config.Config { return s.cfg }

// Body returns the snake driven by this session.
func (s *Session) Body() *snake.Body { return s.body }

// Loop returns the session's loop, e.g. to inspect State or Stats.
func (s *Session) Loop() *loop.Loop { return s.loop }

// Elapsed returns the session time since Run started.
func (s *Session) Elapsed() time.Duration { return s.clock.TotalElapsed() }
