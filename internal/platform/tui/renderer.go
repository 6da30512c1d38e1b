package tui

import (
	"errors"
	"sync"

	"github.com/vovakirdan/greedysnake/internal/loop"
)

// ErrRendererClosed is returned by Present once the renderer is closed.
var ErrRendererClosed = errors.New("tui: renderer closed")

// ChannelRenderer implements loop.Renderer by handing frames to the Bubble
// Tea program over a channel. Present never blocks: a frame the UI has not
// picked up yet is replaced by the newer one.
type ChannelRenderer struct {
	frames    chan loop.Frame
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.Mutex // Serializes Present's drop-and-replace
}

// NewChannelRenderer creates a renderer holding at most one pending frame.
func NewChannelRenderer() *ChannelRenderer {
	return &ChannelRenderer{
		frames: make(chan loop.Frame, 1),
		done:   make(chan struct{}),
	}
}

// Present queues f, dropping any frame still waiting.
func (r *ChannelRenderer) Present(f loop.Frame) error {
	select {
	case <-r.done:
		return ErrRendererClosed
	default:
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	select {
	case r.frames <- f:
		return nil
	default:
	}

	// Buffer full, drop the stale frame and retry
	select {
	case <-r.frames:
	default:
	}
	select {
	case r.frames <- f:
	default:
	}
	return nil
}

// Frames returns the channel the UI reads frames from.
func (r *ChannelRenderer) Frames() <-chan loop.Frame {
	return r.frames
}

// Done returns a channel closed by Close.
func (r *ChannelRenderer) Done() <-chan struct{} {
	return r.done
}

// Close stops accepting frames. It is safe to call multiple times.
func (r *ChannelRenderer) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
	})
}
