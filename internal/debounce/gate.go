// Package debounce coalesces bursts of value changes so that only the last
// value of a burst is propagated.
//
// A Gate owns at most one pending timer. Every new candidate cancels the
// pending timer and schedules a fresh one, so values arriving faster than
// the delay never propagate individually.
package debounce

import (
	"log/slog"
	"sync"
	"time"
)

// Delay tiers used by the preview
const (
	GeometryDelay  = 100 * time.Millisecond
	SecondaryDelay = 150 * time.Millisecond
)

type options struct {
	name   string
	logger *slog.Logger
}

// Option configures a Gate
type Option func(*options)

// WithName labels the gate in log output
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger sets the logger for debug traces
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Gate delays propagation of a value until it has been stable for the
// configured delay. It is safe for concurrent use.
type Gate[T any] struct {
	mu        sync.Mutex
	delay     time.Duration
	scheduler Scheduler
	opts      options

	value      T
	candidate  T
	pending    Timer
	generation uint64
	stopped    bool
	listeners  []func(T)
}

// New creates a gate whose propagated value starts at initial
func New[T any](initial T, delay time.Duration, scheduler Scheduler, opts ...Option) *Gate[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}
	return &Gate[T]{
		delay:     delay,
		scheduler: scheduler,
		opts:      o,
		value:     initial,
		candidate: initial,
	}
}

// OnChange registers a listener called with every propagated value
func (g *Gate[T]) OnChange(fn func(T)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// Stabilize records v as the newest candidate, restarts the delay and
// returns the value propagated so far.
func (g *Gate[T]) Stabilize(v T) T {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return g.value
	}

	g.candidate = v
	if g.pending != nil {
		g.pending.Stop()
	}
	g.generation++
	gen := g.generation
	g.pending = g.scheduler.AfterFunc(g.delay, func() {
		g.fire(gen)
	})
	return g.value
}

// Value returns the last propagated value
func (g *Gate[T]) Value() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Pending reports whether a propagation is scheduled
func (g *Gate[T]) Pending() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pending != nil
}

// Flush propagates the pending candidate immediately
func (g *Gate[T]) Flush() {
	g.mu.Lock()
	if g.stopped || g.pending == nil {
		g.mu.Unlock()
		return
	}
	g.pending.Stop()
	g.generation++
	g.propagateLocked()
}

// Stop cancels any pending propagation. Later calls to Stabilize only
// return the last propagated value. Stop is idempotent.
func (g *Gate[T]) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending != nil {
		g.pending.Stop()
		g.pending = nil
	}
	g.generation++
	g.stopped = true
}

func (g *Gate[T]) fire(gen uint64) {
	g.mu.Lock()
	// A timer that lost the race against Stabilize, Flush or Stop is stale.
	if g.stopped || gen != g.generation {
		g.mu.Unlock()
		return
	}
	g.propagateLocked()
}

// propagateLocked publishes the candidate and releases the lock before
// calling listeners.
func (g *Gate[T]) propagateLocked() {
	g.value = g.candidate
	g.pending = nil
	value := g.value
	listeners := append(([]func(T))(nil), g.listeners...)
	g.mu.Unlock()

	if g.opts.name != "" {
		g.opts.logger.Debug("debounced value propagated", "gate", g.opts.name)
	}
	for _, fn := range listeners {
		fn(value)
	}
}
