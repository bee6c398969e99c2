package sensor

import (
	"context"
	"sync"
	"sync/atomic"

	"fortio.org/log"

	"floorspin/internal/orientation"
	"floorspin/internal/rotation"
)

// Feed pumps samples from a Source through an orientation tracker and writes
// the result into the render angles: pitch turns about X, yaw about Y and
// roll about Z.
type Feed struct {
	src     Source
	tracker *orientation.Tracker
	state   *rotation.State
	display func() orientation.DisplayRotation
	redraw  func()

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	applied atomic.Uint64
	skipped atomic.Uint64
}

// NewFeed wires src to tracker and state. display is queried once per sample
// for the current display rotation; redraw is called after every applied
// sample and may be nil.
func NewFeed(src Source, tracker *orientation.Tracker, state *rotation.State, display func() orientation.DisplayRotation, redraw func()) *Feed {
	if redraw == nil {
		redraw = func() {}
	}
	return &Feed{src: src, tracker: tracker, state: state, display: display, redraw: redraw}
}

// Handle processes one sample synchronously and reports whether it changed
// the render angles.
func (f *Feed) Handle(s Sample) bool {
	a, ok := f.tracker.OnSample(s.Values, f.display())
	if !ok {
		f.skipped.Add(1)
		log.Debugf("sensor: skipped sample with %d values", len(s.Values))
		return false
	}
	f.state.Store(rotation.Angles{X: a.Pitch, Y: a.Yaw, Z: a.Roll})
	f.applied.Add(1)
	f.redraw()
	return true
}

// Stats returns how many samples were applied and skipped.
func (f *Feed) Stats() (applied, skipped uint64) {
	return f.applied.Load(), f.skipped.Load()
}

// Running reports whether the feed goroutine is active.
func (f *Feed) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

// Resume starts the source and the consuming goroutine. Resuming a running
// feed does nothing.
func (f *Feed) Resume(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		return
	}
	ctx, f.cancel = context.WithCancel(ctx)
	f.done = make(chan struct{})
	samples := f.src.Start(ctx)
	go f.run(samples, f.done)
}

// Pause stops the source and waits for the consumer to drain.
func (f *Feed) Pause() {
	f.mu.Lock()
	cancel, done := f.cancel, f.done
	f.cancel, f.done = nil, nil
	f.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	applied, skipped := f.Stats()
	log.Debugf("sensor: feed paused (applied=%d, skipped=%d)", applied, skipped)
}

func (f *Feed) run(samples <-chan Sample, done chan struct{}) {
	defer close(done)
	for s := range samples {
		f.Handle(s)
	}
}
