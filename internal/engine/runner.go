package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Clock supplies frame timestamps to a Runner.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to. Tests drive the Runner with it.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock stopped at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Runner is the host loop. It derives elapsed time from its clock and is
// the single caller of the engine: frames and commands share one mutex.
type Runner struct {
	Interval time.Duration // frame interval, default 100ms

	mu     sync.Mutex
	engine *Engine
	clock  Clock
	last   time.Time
}

// NewRunner wraps e. A nil clock uses SystemClock.
func NewRunner(e *Engine, clock Clock) *Runner {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Runner{
		Interval: 100 * time.Millisecond,
		engine:   e,
		clock:    clock,
	}
}

// Frame ticks the engine by the time since the previous frame. The first
// frame only records the start time.
func (r *Runner) Frame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if r.last.IsZero() {
		r.last = now
		return
	}
	elapsed := now.Sub(r.last).Seconds()
	r.last = now
	r.engine.Tick(elapsed)
}

// Do runs fn with exclusive access to the engine.
func (r *Runner) Do(fn func(e *Engine)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(r.engine)
}

// Run drives frames until ctx is cancelled or the game ends.
func (r *Runner) Run(ctx context.Context) {
	slog.Info("simulation runner started", "interval", r.Interval)
	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("simulation runner stopped", "reason", ctx.Err())
			return
		case <-ticker.C:
			r.Frame()
			var done bool
			r.Do(func(e *Engine) { _, done = e.Outcome() })
			if done {
				slog.Info("simulation runner stopped", "reason", "game over")
				return
			}
		}
	}
}
