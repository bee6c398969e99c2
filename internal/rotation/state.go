// Package rotation holds the angle state shared between the angle producers
// (idle spin driver or sensor feed) and the render thread.
package rotation

import (
	"math"
	"sync/atomic"
)

// Angles are rotations about the X, Y and Z axes in degrees.
type Angles struct {
	X, Y, Z float32
}

// State stores three angles, each in its own atomic word. Every field has a
// single writer and a single reader; a reader may observe x from one update
// and y from the next, which is acceptable for display.
type State struct {
	x, y, z atomic.Uint32
}

// Load returns the current angles.
func (s *State) Load() Angles {
	return Angles{
		X: math.Float32frombits(s.x.Load()),
		Y: math.Float32frombits(s.y.Load()),
		Z: math.Float32frombits(s.z.Load()),
	}
}

// Store replaces all three angles.
func (s *State) Store(a Angles) {
	s.x.Store(math.Float32bits(a.X))
	s.y.Store(math.Float32bits(a.Y))
	s.z.Store(math.Float32bits(a.Z))
}
