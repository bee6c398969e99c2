package rotation

import (
	"sync"
	"testing"
)

func TestStateZero(t *testing.T) {
	var s State
	if a := s.Load(); a != (Angles{}) {
		t.Fatalf("State.Load\nhave %v\nwant zero angles", a)
	}
}

func TestStateStoreLoad(t *testing.T) {
	var s State
	want := Angles{X: 10, Y: -20.5, Z: 359}
	s.Store(want)
	if a := s.Load(); a != want {
		t.Fatalf("State.Load\nhave %v\nwant %v", a, want)
	}
}

func TestStateConcurrent(t *testing.T) {
	var s State
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.Store(Angles{X: float32(i), Y: float32(i), Z: float32(i)})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			a := s.Load()
			if a.X < 0 || a.X > 999 {
				t.Errorf("State.Load: X = %v out of range", a.X)
				return
			}
		}
	}()
	wg.Wait()
	if a := s.Load(); a != (Angles{999, 999, 999}) {
		t.Fatalf("State.Load after writes\nhave %v\nwant [999 999 999]", a)
	}
}
