// Package gpu defines the immediate-mode graphics capability the renderer
// needs. Bindings live in sub-packages: rlgpu (raylib, desktop) and mobilegl
// (golang.org/x/mobile/gl, Android).
package gpu

import "errors"

var (
	ErrCompile = errors.New("gpu: shader compile failed")
	ErrLink    = errors.New("gpu: program link failed")
	ErrUpload  = errors.New("gpu: mesh upload failed")
)

// Dialect selects which shader source a Device accepts.
type Dialect int

const (
	// GLSLES100 is OpenGL ES 2.0 shading language (attribute/varying).
	GLSLES100 Dialect = iota
	// GLSL330 is desktop core-profile GLSL (in/out). raylib binds the
	// vertexPosition and vertexColor attributes by name.
	GLSL330
)

func (d Dialect) String() string {
	switch d {
	case GLSLES100:
		return "glsl-es-100"
	case GLSL330:
		return "glsl-330"
	}
	return "unknown"
}

// Program is a linked shader program handle. The zero value is never valid.
type Program uint32

// Mesh is an uploaded vertex/index buffer set. The zero value is never valid.
type Mesh uint32

// Color is an RGBA color with components in [0,1].
type Color [4]float32

// Black is the clear color the scene renders on.
var Black = Color{0, 0, 0, 1}

// ShaderSource is a vertex/fragment source pair.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// MeshData is the geometry handed to UploadMesh. Positions has three floats
// per vertex and Colors four; PositionStride and ColorStride are in bytes.
type MeshData struct {
	Positions      []float32
	Colors         []float32
	Indices        []uint32
	PositionStride int
	ColorStride    int
}

// Device is a GPU context bound to one rendering surface. All methods must be
// called from the thread that owns the surface.
type Device interface {
	Dialect() Dialect

	// SetClearColor sets the color used by Clear.
	SetClearColor(c Color)
	// EnableDepthTest turns depth testing on with a less-or-equal comparison.
	EnableDepthTest()
	Viewport(width, height int)
	// Clear clears color and depth.
	Clear()

	// CompileProgram compiles and links a program. Errors wrap ErrCompile
	// or ErrLink.
	CompileProgram(src ShaderSource) (Program, error)
	// UploadMesh copies data into GPU buffers laid out for p's position
	// and color attributes. Errors wrap ErrUpload.
	UploadMesh(p Program, data MeshData) (Mesh, error)

	UseProgram(p Program)
	// SetMVP uploads a column-major 4x4 matrix to the program's MVP uniform.
	SetMVP(p Program, mvp *[16]float32)
	// BindAttributes points the position and color attributes at m's buffers.
	BindAttributes(p Program, m Mesh)
	// DrawIndexed draws m's whole index buffer as a triangle list.
	DrawIndexed(m Mesh)

	DeleteMesh(m Mesh)
	DeleteProgram(p Program)
}
