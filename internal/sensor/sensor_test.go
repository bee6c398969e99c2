package sensor

import (
	"context"
	"testing"
	"time"

	"github.com/chewxy/math32"

	"floorspin/internal/orientation"
	"floorspin/internal/rotation"
)

// listSource emits a fixed list of samples and then waits for cancellation.
type listSource struct {
	samples []Sample
}

func (l *listSource) Start(ctx context.Context) <-chan Sample {
	out := make(chan Sample)
	go func() {
		defer close(out)
		for _, s := range l.samples {
			select {
			case out <- s:
			case <-ctx.Done():
				return
			}
		}
		<-ctx.Done()
	}()
	return out
}

func fixedRotation(r orientation.DisplayRotation) func() orientation.DisplayRotation {
	return func() orientation.DisplayRotation { return r }
}

func TestSimulatedVectorIsUnit(t *testing.T) {
	for _, tm := range []float32{0, 0.5, 3, 12.25} {
		v := SimulatedVector(tm)
		if len(v) != 4 {
			t.Fatalf("SimulatedVector: len\nhave %d\nwant 4", len(v))
		}
		var n float32
		for _, x := range v {
			n += x * x
		}
		if math32.Abs(n-1) > 1e-5 {
			t.Fatalf("SimulatedVector(%v): |q|² = %v, want 1", tm, n)
		}
	}
}

func TestFeedHandle(t *testing.T) {
	var state rotation.State
	tr := orientation.NewTracker()
	redraws := 0
	f := NewFeed(nil, tr, &state, fixedRotation(orientation.Rotation0), func() { redraws++ })

	if f.Handle(Sample{}) {
		t.Fatal("Feed.Handle(empty): want skip")
	}
	if a := state.Load(); a != (rotation.Angles{}) {
		t.Fatalf("state after skipped sample\nhave %v\nwant zero", a)
	}

	v := []float32{0.1, 0.2, 0.3}
	if !f.Handle(Sample{Values: v}) {
		t.Fatal("Feed.Handle: want applied")
	}
	want, _ := tr.Last()
	if a := state.Load(); a != (rotation.Angles{X: want.Pitch, Y: want.Yaw, Z: want.Roll}) {
		t.Fatalf("state\nhave %v\nwant pitch/yaw/roll of %v", a, want)
	}
	if applied, skipped := f.Stats(); applied != 1 || skipped != 1 || redraws != 1 {
		t.Fatalf("Feed.Stats\nhave applied=%d skipped=%d redraws=%d\nwant 1 1 1", applied, skipped, redraws)
	}
}

func TestFeedResumePause(t *testing.T) {
	var state rotation.State
	applied := make(chan struct{}, 4)
	src := &listSource{samples: []Sample{
		{Values: []float32{0, 0, 0.2}},
		{Values: nil},
		{Values: []float32{0.1, 0, 0, 0.99}},
	}}
	f := NewFeed(src, orientation.NewTracker(), &state, fixedRotation(orientation.Rotation90), func() {
		applied <- struct{}{}
	})
	f.Resume(context.Background())
	f.Resume(context.Background())
	for i := 0; i < 2; i++ {
		select {
		case <-applied:
		case <-time.After(2 * time.Second):
			t.Fatalf("sample %d never applied", i)
		}
	}
	f.Pause()
	if f.Running() {
		t.Fatal("Feed.Running: want false after Pause")
	}
	if a, s := f.Stats(); a != 2 || s != 1 {
		t.Fatalf("Feed.Stats\nhave %d, %d\nwant 2, 1", a, s)
	}
}

func TestSimulatorStopsOnCancel(t *testing.T) {
	sim := NewSimulator(SimulatorOptions{SampleRateHz: 1000, ChannelBuffer: 1})
	ctx, cancel := context.WithCancel(context.Background())
	ch := sim.Start(ctx)
	select {
	case s := <-ch:
		if len(s.Values) != 4 {
			t.Fatalf("Sample.Values: len\nhave %d\nwant 4", len(s.Values))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no sample from simulator")
	}
	cancel()
	for range ch {
	}
	if p, _ := sim.Stats(); p == 0 {
		t.Fatal("Simulator.Stats: want produced > 0")
	}
}
