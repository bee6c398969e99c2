package spin

import (
	"context"
	"testing"
	"time"

	"floorspin/internal/rotation"
)

func TestAdvance(t *testing.T) {
	cases := []struct {
		angle, step, want float32
	}{
		{0, 1, 1},
		{358, 1, 359},
		{359, 1, 0},
		{359.5, 1, 0},
		{10, 2.5, 12.5},
	}
	for _, c := range cases {
		if a := Advance(c.angle, c.step); a != c.want {
			t.Fatalf("Advance(%v, %v)\nhave %v\nwant %v", c.angle, c.step, a, c.want)
		}
	}
}

func TestStepWraps(t *testing.T) {
	var s rotation.State
	s.Store(rotation.Angles{X: 359, Y: 100, Z: 358.5})
	redraws := 0
	d := New(&s, func() { redraws++ }, DefaultOptions())
	d.Step()

	want := rotation.Angles{X: 0, Y: 101, Z: 359.5}
	if a := s.Load(); a != want {
		t.Fatalf("Driver.Step\nhave %v\nwant %v", a, want)
	}
	if redraws != 1 {
		t.Fatalf("redraw calls\nhave %d\nwant 1", redraws)
	}
	if d.Ticks() != 1 {
		t.Fatalf("Driver.Ticks\nhave %d\nwant 1", d.Ticks())
	}
}

func TestStepStaysInRange(t *testing.T) {
	var s rotation.State
	d := New(&s, nil, DefaultOptions())
	for i := 0; i < 1000; i++ {
		d.Step()
		a := s.Load()
		for _, x := range []float32{a.X, a.Y, a.Z} {
			if x < 0 || x >= 360 {
				t.Fatalf("tick %d: angle %v outside [0, 360)", i, x)
			}
		}
	}
	// 1000 ticks of one degree wrap twice: 1000 - 2*360.
	if a := s.Load(); a.X != 280 {
		t.Fatalf("X after 1000 ticks\nhave %v\nwant 280", a.X)
	}
}

func TestResumePause(t *testing.T) {
	var s rotation.State
	ticked := make(chan struct{}, 16)
	d := New(&s, func() {
		select {
		case ticked <- struct{}{}:
		default:
		}
	}, Options{InitialDelay: time.Millisecond, Period: time.Millisecond, Step: 1})

	d.Resume(context.Background())
	d.Resume(context.Background())
	if !d.Running() {
		t.Fatal("Driver.Running: want true after Resume")
	}
	for i := 0; i < 3; i++ {
		select {
		case <-ticked:
		case <-time.After(2 * time.Second):
			t.Fatalf("tick %d never arrived", i)
		}
	}
	d.Pause()
	d.Pause()
	if d.Running() {
		t.Fatal("Driver.Running: want false after Pause")
	}

	n := d.Ticks()
	time.Sleep(20 * time.Millisecond)
	if d.Ticks() != n {
		t.Fatalf("ticks after Pause\nhave %d\nwant %d", d.Ticks(), n)
	}
}

func TestInitialDelay(t *testing.T) {
	var s rotation.State
	d := New(&s, nil, Options{InitialDelay: time.Hour, Period: time.Millisecond, Step: 1})
	d.Resume(context.Background())
	time.Sleep(10 * time.Millisecond)
	d.Pause()
	if d.Ticks() != 0 {
		t.Fatalf("ticks before initial delay\nhave %d\nwant 0", d.Ticks())
	}
}

func TestParentContextStops(t *testing.T) {
	var s rotation.State
	ctx, cancel := context.WithCancel(context.Background())
	d := New(&s, nil, Options{InitialDelay: time.Millisecond, Period: time.Millisecond, Step: 1})
	d.Resume(ctx)
	cancel()
	// Pause must still return once the goroutine has exited on its own.
	d.Pause()
}

func TestNewFillsInvalidOptions(t *testing.T) {
	var s rotation.State
	d := New(&s, nil, Options{InitialDelay: -time.Second})
	if d.opts != DefaultOptions() {
		t.Fatalf("options\nhave %+v\nwant %+v", d.opts, DefaultOptions())
	}
	d = New(&s, nil, Options{Period: -time.Millisecond, Step: 2})
	if d.opts.InitialDelay != 0 || d.opts.Period != DefaultOptions().Period || d.opts.Step != 2 {
		t.Fatalf("options\nhave %+v\nwant no delay, default period, step 2", d.opts)
	}
}

func TestZeroPeriodRuns(t *testing.T) {
	var s rotation.State
	ticked := make(chan struct{}, 1)
	d := New(&s, func() {
		select {
		case ticked <- struct{}{}:
		default:
		}
	}, Options{InitialDelay: time.Millisecond})
	d.Resume(context.Background())
	defer d.Pause()
	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("driver with zero period never ticked")
	}
}
