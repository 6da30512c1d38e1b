package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/greedysnake/internal/config"
	"github.com/vovakirdan/greedysnake/internal/loop"
	"github.com/vovakirdan/greedysnake/internal/metrics"
	"github.com/vovakirdan/greedysnake/internal/snake"
)

type idleInput struct{}

func (idleInput) Poll() loop.Command { return loop.Command{} }

type countingRenderer struct {
	mu     sync.Mutex
	frames int
	err    error
}

func (r *countingRenderer) Present(loop.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.frames++
	return nil
}

func (r *countingRenderer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Screen.FPS = 200
	cfg.Screen.RenderFPS = 100
	cfg.Snake.Speed = 20
	return cfg
}

func TestNewBuildsFromConfig(t *testing.T) {
	cfg := testConfig()
	s, err := New(Options{Config: cfg, Input: idleInput{}, Renderer: &countingRenderer{}})
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, cfg, s.Config())
	assert.Equal(t, loop.StateNotStarted, s.Loop().State())

	pts := s.Body().Snapshot()
	require.Len(t, pts, snake.MinPoints)
	assert.Equal(t, cfg.Snake.Head.Point(), pts[0])
	assert.Equal(t, cfg.Snake.Tail.Point(), pts[1])
	assert.Equal(t, cfg.Snake.Speed, s.Body().Speed())
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a, err := New(Options{Config: testConfig(), Input: idleInput{}, Renderer: &countingRenderer{}})
	require.NoError(t, err)
	b, err := New(Options{Config: testConfig(), Input: idleInput{}, Renderer: &countingRenderer{}})
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(Options{Config: testConfig(), Renderer: &countingRenderer{}})
	assert.Error(t, err)

	cfg := testConfig()
	cfg.Snake.Speed = -1
	_, err = New(Options{Config: cfg, Input: idleInput{}, Renderer: &countingRenderer{}})
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunMovesSnakeAndRecordsMetrics(t *testing.T) {
	rec := metrics.New()
	renderer := &countingRenderer{}
	s, err := New(Options{Config: testConfig(), Input: idleInput{}, Renderer: renderer, Metrics: rec})
	require.NoError(t, err)

	start := s.Body().Head()
	length := s.Body().PathLength()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Run(context.Background()) }()

	require.Eventually(t, func() bool {
		return renderer.Count() >= 3 && s.Body().Head() != start
	}, 2*time.Second, 5*time.Millisecond)

	s.Stop()
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	assert.Equal(t, loop.StateFinished, s.Loop().State())
	assert.Greater(t, s.Body().Head().X, start.X)
	assert.InDelta(t, length, s.Body().PathLength(), 1e-6)
	assert.Greater(t, s.Elapsed(), time.Duration(0))

	expected := fmt.Sprintf(`
# HELP greedysnake_loop_walks_total Fixed logic updates applied to snakes.
# TYPE greedysnake_loop_walks_total counter
greedysnake_loop_walks_total %d
# HELP greedysnake_session_active Sessions currently running.
# TYPE greedysnake_session_active gauge
greedysnake_session_active 0
`, s.Loop().Stats().Walks)
	require.NoError(t, testutil.GatherAndCompare(rec.Registry(), strings.NewReader(expected),
		"greedysnake_loop_walks_total", "greedysnake_session_active"))
}

func TestRunReturnsRendererError(t *testing.T) {
	boom := errors.New("terminal gone")
	s, err := New(Options{Config: testConfig(), Input: idleInput{}, Renderer: &countingRenderer{err: boom}})
	require.NoError(t, err)

	err = s.Run(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), s.ID())
	assert.Equal(t, loop.StateFinished, s.Loop().State())
}

func TestRunStopsWithContext(t *testing.T) {
	s, err := New(Options{Config: testConfig(), Input: idleInput{}, Renderer: &countingRenderer{}})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, s.Run(ctx))
	assert.Equal(t, loop.StateFinished, s.Loop().State())
}
