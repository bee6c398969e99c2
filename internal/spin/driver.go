// Package spin drives the idle rotation: a timer that turns the scene a
// little on every tick and asks for a redraw.
package spin

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"fortio.org/log"

	"floorspin/internal/rotation"
)

// Options configures a Driver.
type Options struct {
	InitialDelay time.Duration
	Period       time.Duration
	// Step is added to each angle per tick, in degrees.
	Step float32
}

// DefaultOptions waits one second, then ticks at 10 Hz turning one degree
// about every axis.
func DefaultOptions() Options {
	return Options{
		InitialDelay: time.Second,
		Period:       100 * time.Millisecond,
		Step:         1,
	}
}

// Advance adds step to angle, going back to 0 once the result reaches 360.
func Advance(angle, step float32) float32 {
	angle += step
	if angle >= 360 {
		return 0
	}
	return angle
}

// Driver is the only writer of its rotation.State while it runs.
type Driver struct {
	opts   Options
	state  *rotation.State
	redraw func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	ticks  atomic.Uint64
}

// New returns a stopped driver that writes to state and calls redraw after
// every tick. redraw may be nil. A non-positive Period or Step and a negative
// InitialDelay fall back to DefaultOptions.
func New(state *rotation.State, redraw func(), opts Options) *Driver {
	if redraw == nil {
		redraw = func() {}
	}
	def := DefaultOptions()
	if opts.InitialDelay < 0 {
		opts.InitialDelay = def.InitialDelay
	}
	if opts.Period <= 0 {
		opts.Period = def.Period
	}
	if opts.Step <= 0 {
		opts.Step = def.Step
	}
	return &Driver{opts: opts, state: state, redraw: redraw}
}

// Step performs one tick synchronously.
func (d *Driver) Step() {
	a := d.state.Load()
	a.X = Advance(a.X, d.opts.Step)
	a.Y = Advance(a.Y, d.opts.Step)
	a.Z = Advance(a.Z, d.opts.Step)
	d.state.Store(a)
	d.ticks.Add(1)
	d.redraw()
}

// Ticks returns how many ticks have run since the driver was created.
func (d *Driver) Ticks() uint64 { return d.ticks.Load() }

// Running reports whether the timer goroutine is active.
func (d *Driver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancel != nil
}

// Resume starts the timer. The first tick comes after InitialDelay, later
// ones every Period. Resuming a running driver does nothing.
func (d *Driver) Resume(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		return
	}
	ctx, d.cancel = context.WithCancel(ctx)
	d.done = make(chan struct{})
	go d.run(ctx, d.done)
	log.Debugf("spin: resumed (delay=%v, period=%v, step=%v)", d.opts.InitialDelay, d.opts.Period, d.opts.Step)
}

// Pause stops the timer and waits for an in-flight tick to finish. Pausing a
// stopped driver does nothing.
func (d *Driver) Pause() {
	d.mu.Lock()
	cancel, done := d.cancel, d.done
	d.cancel, d.done = nil, nil
	d.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Debugf("spin: paused after %d ticks", d.Ticks())
}

func (d *Driver) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	delay := time.NewTimer(d.opts.InitialDelay)
	defer delay.Stop()
	select {
	case <-ctx.Done():
		return
	case <-delay.C:
	}
	d.Step()

	ticker := time.NewTicker(d.opts.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Step()
		}
	}
}
