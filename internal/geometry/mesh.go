// Package geometry holds the static floor-plan mesh drawn by the viewer.
package geometry

// Components per vertex in the flat buffers returned by Mesh.
const (
	PositionSize = 3
	ColorSize    = 4
)

// Mesh is an immutable triangle list. Positions and Colors are flat slices,
// PositionSize and ColorSize floats per vertex respectively; Indices has a
// length that is a multiple of three.
type Mesh struct {
	Positions []float32
	Colors    []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices in m.
func (m *Mesh) VertexCount() int { return len(m.Positions) / PositionSize }

// Placement is the fixed initial transform applied to a mesh before the
// per-frame spin. Rotation is in degrees.
type Placement struct {
	Rotation    [3]float32
	Translation [3]float32
	Scale       [3]float32
}

// Identity returns a placement that leaves the mesh untouched.
func Identity() Placement {
	return Placement{Scale: [3]float32{1, 1, 1}}
}

// FloorPlanPlacement tilts the plan back so the walls read as 3D at rest.
var FloorPlanPlacement = Placement{
	Rotation: [3]float32{-35, 0, 0},
	Scale:    [3]float32{1, 1, 1},
}

var floorPlan = buildFloorPlan()

// FloorPlan returns the floor-plan mesh. The returned slices are shared and
// must not be modified.
func FloorPlan() *Mesh { return floorPlan }

func buildFloorPlan() *Mesh {
	n := len(floorPlanPositions)
	m := &Mesh{
		Positions: make([]float32, 0, n*PositionSize),
		Colors:    make([]float32, 0, n*ColorSize),
		Indices:   make([]uint32, 0, quadCount*6),
	}
	for i, p := range floorPlanPositions {
		m.Positions = append(m.Positions, p[:]...)
		c := ColorFor(i, n)
		m.Colors = append(m.Colors, c[:]...)
	}
	for q := 0; q < quadCount; q++ {
		b := uint32(q * 4)
		m.Indices = append(m.Indices, b, b+1, b+2, b, b+2, b+3)
	}
	return m
}
