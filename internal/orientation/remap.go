package orientation

import (
	"errors"
	"fmt"
)

// ErrInvalidRemap is returned by Remap for an axis pair that repeats an axis
// or uses an unknown axis value.
var ErrInvalidRemap = errors.New("orientation: invalid axis remap")

// Axis is a signed device axis. The low two bits select X, Y or Z; the
// negative bit flips the sign.
type Axis int

const (
	AxisX Axis = 1
	AxisY Axis = 2
	AxisZ Axis = 3

	negative Axis = 0x80

	AxisMinusX = AxisX | negative
	AxisMinusY = AxisY | negative
	AxisMinusZ = AxisZ | negative
)

func (a Axis) String() string {
	sign := "+"
	if a&negative != 0 {
		sign = "-"
	}
	switch a &^ negative {
	case AxisX:
		return sign + "X"
	case AxisY:
		return sign + "Y"
	case AxisZ:
		return sign + "Z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// DisplayRotation is the on-screen rotation of the UI relative to the
// device's natural orientation, in degrees.
type DisplayRotation int

const (
	Rotation0   DisplayRotation = 0
	Rotation90  DisplayRotation = 90
	Rotation180 DisplayRotation = 180
	Rotation270 DisplayRotation = 270
)

// Valid reports whether r is one of the four supported rotations.
func (r DisplayRotation) Valid() bool {
	switch r {
	case Rotation0, Rotation90, Rotation180, Rotation270:
		return true
	}
	return false
}

// AxisRemap says which device axes become the screen's X and Y axes.
type AxisRemap struct {
	X, Y Axis
}

// RemapFor returns the axis remap that keeps the scene upright for display
// rotation r. Unknown rotations get the 0° remap.
func RemapFor(r DisplayRotation) AxisRemap {
	switch r {
	case Rotation90:
		return AxisRemap{AxisZ, AxisMinusX}
	case Rotation180:
		return AxisRemap{AxisMinusX, AxisMinusZ}
	case Rotation270:
		return AxisRemap{AxisMinusZ, AxisX}
	default:
		return AxisRemap{AxisX, AxisZ}
	}
}

// Remap rotates the coordinate system of in so that device axis ar.X becomes
// the new X axis and ar.Y the new Y axis. The new Z axis is the cross product
// of the two, with its sign chosen to keep the frame right-handed.
func Remap(in *Matrix, ar AxisRemap) (Matrix, error) {
	X, Y := ar.X, ar.Y
	if X&0x7c != 0 || Y&0x7c != 0 || X&3 == 0 || Y&3 == 0 {
		return Matrix{}, fmt.Errorf("%w: %v, %v", ErrInvalidRemap, X, Y)
	}
	if X&3 == Y&3 {
		return Matrix{}, fmt.Errorf("%w: %v and %v share an axis", ErrInvalidRemap, X, Y)
	}

	Z := X ^ Y
	x := int(X&3) - 1
	y := int(Y&3) - 1
	z := int(Z&3) - 1

	// Flip Z when (x, y, z) is not a cyclic permutation of (0, 1, 2).
	axisY := (z + 1) % 3
	axisZ := (z + 2) % 3
	if (x^axisY)|(y^axisZ) != 0 {
		Z ^= negative
	}

	sx := X >= negative
	sy := Y >= negative
	sz := Z >= negative

	var out Matrix
	for j := 0; j < 3; j++ {
		row := j * 3
		for i := 0; i < 3; i++ {
			switch i {
			case x:
				out[row+i] = signed(in[row+0], sx)
			case y:
				out[row+i] = signed(in[row+1], sy)
			case z:
				out[row+i] = signed(in[row+2], sz)
			}
		}
	}
	return out, nil
}

func signed(v float32, neg bool) float32 {
	if neg {
		return -v
	}
	return v
}
