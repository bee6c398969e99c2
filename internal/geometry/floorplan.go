package geometry

// Floor-plan extents in model units. The plan lies on the XY plane with walls
// extruded along +Z so that the default camera sees it top-down.
const (
	halfWidth  = 2.0
	halfDepth  = 1.5
	wallHeight = 0.5
)

// floorPlanPositions is the fixed vertex table. Every wall is one vertical quad
// (bottom-left, bottom-right, top-right, top-left); the floor quad comes last.
// Order matters: ColorFor classifies vertices by index.
var floorPlanPositions = [...][3]float32{
	// Outer walls, south and east.
	{-halfWidth, -halfDepth, 0}, {halfWidth, -halfDepth, 0}, {halfWidth, -halfDepth, wallHeight}, {-halfWidth, -halfDepth, wallHeight},
	{halfWidth, -halfDepth, 0}, {halfWidth, halfDepth, 0}, {halfWidth, halfDepth, wallHeight}, {halfWidth, -halfDepth, wallHeight},

	// Inner walls.
	{-0.5, -halfDepth, 0}, {-0.5, 0.3, 0}, {-0.5, 0.3, wallHeight}, {-0.5, -halfDepth, wallHeight},
	{-halfWidth, 0.3, 0}, {-1.0, 0.3, 0}, {-1.0, 0.3, wallHeight}, {-halfWidth, 0.3, wallHeight},
	{0.2, 0.3, 0}, {halfWidth, 0.3, 0}, {halfWidth, 0.3, wallHeight}, {0.2, 0.3, wallHeight},
	{0.8, -halfDepth, 0}, {0.8, -0.4, 0}, {0.8, -0.4, wallHeight}, {0.8, -halfDepth, wallHeight},
	{-0.5, 0.9, 0}, {-0.5, halfDepth, 0}, {-0.5, halfDepth, wallHeight}, {-0.5, 0.9, wallHeight},

	// Outer walls, north and west.
	{halfWidth, halfDepth, 0}, {-halfWidth, halfDepth, 0}, {-halfWidth, halfDepth, wallHeight}, {halfWidth, halfDepth, wallHeight},
	{-halfWidth, halfDepth, 0}, {-halfWidth, -halfDepth, 0}, {-halfWidth, -halfDepth, wallHeight}, {-halfWidth, halfDepth, wallHeight},

	// Closets and partitions.
	{1.2, 0.3, 0}, {1.2, halfDepth, 0}, {1.2, halfDepth, wallHeight}, {1.2, 0.3, wallHeight},
	{0.8, -0.4, 0}, {halfWidth, -0.4, 0}, {halfWidth, -0.4, wallHeight}, {0.8, -0.4, wallHeight},
	{-1.3, 0.3, 0}, {-1.3, 0.8, 0}, {-1.3, 0.8, wallHeight}, {-1.3, 0.3, wallHeight},
	{-halfWidth, 0.9, 0}, {-1.3, 0.9, 0}, {-1.3, 0.9, wallHeight}, {-halfWidth, 0.9, wallHeight},
	{-halfWidth, -0.6, 0}, {-1.2, -0.6, 0}, {-1.2, -0.6, wallHeight}, {-halfWidth, -0.6, wallHeight},

	// Floor.
	{-halfWidth, -halfDepth, 0}, {halfWidth, -halfDepth, 0}, {halfWidth, halfDepth, 0}, {-halfWidth, halfDepth, 0},
}

// quadCount is the number of quads in floorPlanPositions.
const quadCount = len(floorPlanPositions) / 4

// Wall and floor shades. Alpha is always opaque.
var (
	OuterWallColor = [4]float32{0.4, 0.4, 0.4, 1.0}
	FloorColor     = [4]float32{0.2, 0.2, 0.2, 1.0}
	InnerWallColor = [4]float32{0.6, 0.6, 0.6, 1.0}
)

// Vertex bands. The first outer band starts the table; the second starts
// secondBandFromEnd vertices before the end. The floor quad is last.
const (
	outerBandLen      = 8
	secondBandFromEnd = 32
	floorVertexLen    = 4
)

// ColorFor returns the color of vertex i in a table of n vertices.
// Vertices [0, 8) and [n-32, n-25] are outer walls, the last four are the
// floor, and everything else is an inner wall. For the 60-vertex plan the
// second band is 28-35 and the floor is 56-59.
func ColorFor(i, n int) [4]float32 {
	second := n - secondBandFromEnd
	switch {
	case i < outerBandLen, i >= second && i < second+outerBandLen:
		return OuterWallColor
	case i >= n-floorVertexLen:
		return FloorColor
	default:
		return InnerWallColor
	}
}
