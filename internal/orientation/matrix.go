// Package orientation turns rotation-vector sensor samples into yaw, pitch
// and roll angles relative to the current on-screen orientation.
package orientation

import "github.com/chewxy/math32"

// Matrix is a 3x3 rotation matrix stored row-major.
type Matrix [9]float32

// IdentityMatrix is the rotation of a device lying flat, top edge north.
var IdentityMatrix = Matrix{1, 0, 0, 0, 1, 0, 0, 0, 1}

// MatrixFromVector converts a rotation vector (x, y, z[, w]) to a rotation
// matrix. When w is missing it is recovered from the unit-length constraint.
// It panics if v has fewer than three components.
func MatrixFromVector(v []float32) Matrix {
	q1, q2, q3 := v[0], v[1], v[2]
	var q0 float32
	if len(v) >= 4 {
		q0 = v[3]
	} else {
		q0 = 1 - q1*q1 - q2*q2 - q3*q3
		if q0 > 0 {
			q0 = math32.Sqrt(q0)
		} else {
			q0 = 0
		}
	}

	sqQ1 := 2 * q1 * q1
	sqQ2 := 2 * q2 * q2
	sqQ3 := 2 * q3 * q3
	q1q2 := 2 * q1 * q2
	q3q0 := 2 * q3 * q0
	q1q3 := 2 * q1 * q3
	q2q0 := 2 * q2 * q0
	q2q3 := 2 * q2 * q3
	q1q0 := 2 * q1 * q0

	return Matrix{
		1 - sqQ2 - sqQ3, q1q2 - q3q0, q1q3 + q2q0,
		q1q2 + q3q0, 1 - sqQ1 - sqQ3, q2q3 - q1q0,
		q1q3 - q2q0, q2q3 + q1q0, 1 - sqQ1 - sqQ2,
	}
}

// Angles is an orientation in degrees: yaw (azimuth about -Z), pitch (about
// X) and roll (about Y).
type Angles struct {
	Yaw, Pitch, Roll float32
}

const radToDeg = 180 / math32.Pi

// AnglesOf extracts yaw, pitch and roll from a rotation matrix.
func AnglesOf(m *Matrix) Angles {
	return Angles{
		Yaw:   math32.Atan2(m[1], m[4]) * radToDeg,
		Pitch: math32.Asin(-m[7]) * radToDeg,
		Roll:  math32.Atan2(-m[6], m[8]) * radToDeg,
	}
}
