// Package metrics exports loop and session activity to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	namespace = "greedysnake"
	subsystem = "loop"
)

// Recorder collects counters for every session of a process on its own
// registry. A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	walks     prometheus.Counter
	discarded prometheus.Counter
	frames    prometheus.Counter
	active    prometheus.Gauge
	sessions  prometheus.Counter
	duration  prometheus.Histogram
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		walks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "walks_total",
			Help:      "Fixed logic updates applied to snakes.",
		}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "discarded_ticks_total",
			Help:      "Fixed logic updates dropped while paused.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_total",
			Help:      "Frames handed to renderers.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "active",
			Help:      "Sessions currently running.",
		}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "started_total",
			Help:      "Sessions started since the process began.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "duration_seconds",
			Help:      "Wall time of finished sessions.",
			Buckets:   []float64{1, 10, 30, 60, 300, 900, 3600},
		}),
	}
	r.registry.MustRegister(r.walks, r.discarded, r.frames, r.active, r.sessions, r.duration)
	return r
}

// ObserveWalks counts n applied logic updates.
func (r *Recorder) ObserveWalks(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.walks.Add(float64(n))
}

// ObserveDiscarded counts n logic updates dropped while paused.
func (r *Recorder) ObserveDiscarded(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.discarded.Add(float64(n))
}

// ObserveFrame counts one presented frame.
func (r *Recorder) ObserveFrame() {
	if r == nil {
		return
	}
	r.frames.Inc()
}

// SessionStarted marks a session as running. The returned func marks it
// ended and records its duration; call it exactly once.
func (r *Recorder) SessionStarted() func() {
	if r == nil {
		return func() {}
	}
	r.sessions.Inc()
	r.active.Inc()
	t := prometheus.NewTimer(r.duration)
	return func() {
		t.ObserveDuration()
		r.active.Dec()
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
