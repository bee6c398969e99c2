package orientation

import "sync"

// Tracker converts sensor samples into Angles and remembers the latest
// result. OnSample and Last may be called from different goroutines.
type Tracker struct {
	mu    sync.Mutex
	last  Angles
	valid bool
}

// NewTracker returns a tracker with no sample yet.
func NewTracker() *Tracker {
	return &Tracker{}
}

// OnSample processes one rotation-vector sample taken while the display was
// at rotation r. Samples with fewer than three values are skipped and ok is
// false; otherwise the angles are stored and returned.
func (t *Tracker) OnSample(values []float32, r DisplayRotation) (a Angles, ok bool) {
	if len(values) < 3 {
		return Angles{}, false
	}
	m := MatrixFromVector(values)
	adjusted, err := Remap(&m, RemapFor(r))
	if err != nil {
		// RemapFor only yields valid pairs.
		panic(err)
	}
	a = AnglesOf(&adjusted)

	t.mu.Lock()
	t.last, t.valid = a, true
	t.mu.Unlock()
	return a, true
}

// Last returns the angles from the latest valid sample. ok is false until
// the first one arrives.
func (t *Tracker) Last() (a Angles, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.valid
}
