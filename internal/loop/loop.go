package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/greedysnake/internal/core"
)

// DefaultRenderFPS caps presentations when no render rate is configured.
const DefaultRenderFPS = 30

// ErrNotStartable is returned by Run on a loop that already ran.
var ErrNotStartable = errors.New("loop: already started or finished")

// Options configures a Loop. Body, Clock, Scheduler, Input and Renderer are required.
type Options struct {
	Body      Body
	Clock     *core.Clock
	Scheduler *Scheduler
	Input     Input
	Renderer  Renderer
	RenderFPS int // Presentations per second; 0 means DefaultRenderFPS
	Logger    *log.Logger
	Observer  Observer
}

// Loop coordinates the logic and render loops of one session.
type Loop struct {
	body     Body
	clock    *core.Clock
	sched    *Scheduler
	input    Input
	renderer Renderer
	limiter  *rate.Limiter
	logger   *log.Logger
	observer Observer

	state    atomic.Int32
	done     chan struct{}
	stopOnce sync.Once

	walks     atomic.Uint64
	discarded atomic.Uint64
	frames    atomic.Uint64
}

// New validates the options and builds a loop in the NotStarted state.
func New(opts Options) (*Loop, error) {
	switch {
	case opts.Body == nil:
		return nil, errors.New("loop: body is required")
	case opts.Clock == nil:
		return nil, errors.New("loop: clock is required")
	case opts.Scheduler == nil:
		return nil, errors.New("loop: scheduler is required")
	case opts.Input == nil:
		return nil, errors.New("loop: input is required")
	case opts.Renderer == nil:
		return nil, errors.New("loop: renderer is required")
	case opts.RenderFPS < 0:
		return nil, fmt.Errorf("loop: render fps must not be negative, got %d", opts.RenderFPS)
	}

	fps := opts.RenderFPS
	if fps == 0 {
		fps = DefaultRenderFPS
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Loop{
		body:     opts.Body,
		clock:    opts.Clock,
		sched:    opts.Scheduler,
		input:    opts.Input,
		renderer: opts.Renderer,
		limiter:  rate.NewLimiter(rate.Limit(fps), 1),
		logger:   logger,
		observer: observer,
		done:     make(chan struct{}),
	}, nil
}

// State returns the current lifecycle state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Stats returns counters accumulated since Run started.
func (l *Loop) Stats() Stats {
	return Stats{
		Walks:          l.walks.Load(),
		DiscardedTicks: l.discarded.Load(),
		Frames:         l.frames.Load(),
	}
}

// Done returns a channel closed once the loop is Finished.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Stop moves the loop to Finished. Both loops observe it within one
// iteration and exit without touching the body or renderer again.
// Stop is idempotent and safe to call from any goroutine.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.state.Store(int32(StateFinished))
		close(l.done)
	})
}

// Run starts both loops and blocks until the loop is Finished, either via
// Stop, cancellation of ctx, or a renderer failure (which is returned).
func (l *Loop) Run(ctx context.Context) error {
	if !l.state.CompareAndSwap(int32(StateNotStarted), int32(StateRunning)) {
		return ErrNotStartable
	}

	l.clock.Init()
	l.sched.Reset()
	l.logger.Debug("loop started", "tick", l.sched.Tick(), "render_rate", float64(l.limiter.Limit()))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		select {
		case <-l.done:
			cancel()
		case <-gctx.Done():
			l.Stop()
		}
		return nil
	})
	g.Go(func() error { return l.runLogic(gctx) })
	g.Go(func() error { return l.runRender(gctx) })

	err := g.Wait()
	l.Stop()

	stats := l.Stats()
	l.logger.Debug("loop finished",
		"walks", stats.Walks,
		"discarded", stats.DiscardedTicks,
		"frames", stats.Frames,
		"elapsed", l.clock.TotalElapsed(),
	)
	return err
}

func (l *Loop) finished() bool {
	return l.State() == StateFinished
}

// setPaused applies the input's pause flag. Finished is terminal.
func (l *Loop) setPaused(paused bool) {
	from, to := StateRunning, StatePaused
	if !paused {
		from, to = StatePaused, StateRunning
	}
	if l.state.CompareAndSwap(int32(from), int32(to)) {
		l.logger.Info("pause toggled", "paused", paused)
	}
}

func (l *Loop) runLogic(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for !l.finished() {
		l.logicStep()

		wait := l.sched.UntilNext()
		if wait <= 0 {
			continue
		}
		timer.Reset(wait)
		select {
		case <-l.done:
			return nil
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
	return nil
}

// logicStep runs one iteration of the logic loop: poll input, drain the
// scheduler and walk once per due tick. Ticks due while paused are drained
// and discarded so resuming causes no burst of movement.
func (l *Loop) logicStep() {
	cmd := l.input.Poll()
	l.setPaused(cmd.Paused)

	due := l.sched.Advance(l.clock.Tick())

	switch l.State() {
	case StateRunning:
	case StatePaused:
		if due > 0 {
			l.discarded.Add(uint64(due))
			l.observer.ObserveDiscarded(due)
		}
		return
	default:
		return
	}

	if cmd.Heading != nil {
		l.body.SetHeading(*cmd.Heading)
	}

	tick := l.sched.Tick()
	walked := 0
	for range due {
		if l.finished() {
			break
		}
		l.body.Walk(tick)
		walked++
	}
	if walked > 0 {
		l.walks.Add(uint64(walked))
		l.observer.ObserveWalks(walked)
	}
}

// runRender paces presentations with a limiter reservation rather than
// Wait, which fails early when ctx carries a deadline.
func (l *Loop) runRender(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for !l.finished() {
		r := l.limiter.Reserve()
		if delay := r.Delay(); delay > 0 {
			timer.Reset(delay)
			select {
			case <-l.done:
				r.Cancel()
				return nil
			case <-ctx.Done():
				r.Cancel()
				return nil
			case <-timer.C:
			}
		}
		if err := l.renderStep(); err != nil {
			l.logger.Error("render failed", "error", err)
			return err
		}
	}
	return nil
}

// renderStep presents one snapshot unless the loop is paused or finished.
func (l *Loop) renderStep() error {
	if l.State() != StateRunning {
		return nil
	}

	points, heading := l.body.View()
	frame := Frame{
		Seq:     l.frames.Load() + 1,
		Points:  points,
		Heading: heading,
		Elapsed: l.clock.TotalElapsed(),
	}
	if err := l.renderer.Present(frame); err != nil {
		return fmt.Errorf("loop: present frame %d: %w", frame.Seq, err)
	}
	l.frames.Add(1)
	l.observer.ObserveFrame()
	return nil
}
