// Package rlgpu implements gpu.Device on top of raylib. It needs an open
// raylib window and must be used from the thread that opened it.
package rlgpu

import (
	"fmt"
	"runtime"

	rl "github.com/gen2brain/raylib-go/raylib"

	"floorspin/internal/gpu"
)

// mvpUniform must match the uniform name in the scene shaders.
const mvpUniform = "uMVPMatrix"

type program struct {
	shader rl.Shader
	mvpLoc int32
	mtl    rl.Material
}

type mesh struct {
	prog gpu.Program
	mesh rl.Mesh
	// raylib keeps pointers into these; they stay pinned until DeleteMesh.
	positions []float32
	colors    []uint8
	indices   []uint16
	pin       runtime.Pinner
}

// Device is a raylib-backed gpu.Device. raylib binds vertex attributes by
// name inside DrawMesh, so BindAttributes has nothing to do.
type Device struct {
	clear    rl.Color
	programs map[gpu.Program]*program
	meshes   map[gpu.Mesh]*mesh
	nextID   uint32
}

// New returns a device for the current raylib window.
func New() *Device {
	return &Device{
		clear:    rl.Black,
		programs: make(map[gpu.Program]*program),
		meshes:   make(map[gpu.Mesh]*mesh),
	}
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) Dialect() gpu.Dialect { return gpu.GLSL330 }

func (d *Device) SetClearColor(c gpu.Color) {
	d.clear = rl.NewColor(toByte(c[0]), toByte(c[1]), toByte(c[2]), toByte(c[3]))
}

// EnableDepthTest turns depth testing on. raylib's default depth function is
// already less-or-equal.
func (d *Device) EnableDepthTest() { rl.EnableDepthTest() }

// Viewport is handled by raylib when the window resizes.
func (d *Device) Viewport(width, height int) {}

func (d *Device) Clear() { rl.ClearBackground(d.clear) }

func (d *Device) CompileProgram(src gpu.ShaderSource) (gpu.Program, error) {
	shader := rl.LoadShaderFromMemory(src.Vertex, src.Fragment)
	if !rl.IsShaderValid(shader) {
		// raylib logs the info log itself and falls back to its default shader.
		return 0, fmt.Errorf("%w: raylib rejected the shader pair", gpu.ErrLink)
	}
	loc := rl.GetShaderLocation(shader, mvpUniform)
	if loc < 0 {
		rl.UnloadShader(shader)
		return 0, fmt.Errorf("%w: uniform %s not found", gpu.ErrLink, mvpUniform)
	}
	mtl := rl.LoadMaterialDefault()
	mtl.Shader = shader

	d.nextID++
	id := gpu.Program(d.nextID)
	d.programs[id] = &program{shader: shader, mvpLoc: loc, mtl: mtl}
	return id, nil
}

func (d *Device) UploadMesh(p gpu.Program, data gpu.MeshData) (gpu.Mesh, error) {
	if _, ok := d.programs[p]; !ok {
		return 0, fmt.Errorf("%w: unknown program %d", gpu.ErrUpload, p)
	}
	n := len(data.Positions) / 3
	if n == 0 || len(data.Colors) != n*4 || len(data.Indices) == 0 || len(data.Indices)%3 != 0 {
		return 0, fmt.Errorf("%w: %d positions, %d colors, %d indices", gpu.ErrUpload, len(data.Positions), len(data.Colors), len(data.Indices))
	}
	if n > 0xffff {
		return 0, fmt.Errorf("%w: %d vertices exceed 16-bit indices", gpu.ErrUpload, n)
	}

	m := &mesh{
		prog:      p,
		positions: append([]float32(nil), data.Positions...),
		colors:    make([]uint8, len(data.Colors)),
		indices:   make([]uint16, len(data.Indices)),
	}
	for i, c := range data.Colors {
		m.colors[i] = toByte(c)
	}
	for i, x := range data.Indices {
		m.indices[i] = uint16(x)
	}
	m.pin.Pin(&m.positions[0])
	m.pin.Pin(&m.colors[0])
	m.pin.Pin(&m.indices[0])
	m.mesh = rl.Mesh{
		VertexCount:   int32(n),
		TriangleCount: int32(len(m.indices) / 3),
		Vertices:      &m.positions[0],
		Colors:        &m.colors[0],
		Indices:       &m.indices[0],
	}
	rl.UploadMesh(&m.mesh, false)

	d.nextID++
	id := gpu.Mesh(d.nextID)
	d.meshes[id] = m
	return id, nil
}

// UseProgram is implied by DrawMesh, which binds the material's shader.
func (d *Device) UseProgram(p gpu.Program) {}

func (d *Device) SetMVP(p gpu.Program, mvp *[16]float32) {
	prog, ok := d.programs[p]
	if !ok {
		return
	}
	rl.SetShaderValueMatrix(prog.shader, prog.mvpLoc, toMatrix(mvp))
}

func (d *Device) BindAttributes(p gpu.Program, m gpu.Mesh) {}

func (d *Device) DrawIndexed(m gpu.Mesh) {
	msh, ok := d.meshes[m]
	if !ok {
		return
	}
	prog, ok := d.programs[msh.prog]
	if !ok {
		return
	}
	// The transform only feeds raylib's own mvp uniform, which the scene
	// shaders ignore.
	rl.DrawMesh(msh.mesh, prog.mtl, rl.MatrixIdentity())
}

func (d *Device) DeleteMesh(m gpu.Mesh) {
	msh, ok := d.meshes[m]
	if !ok {
		return
	}
	// UnloadMesh would free the Go-owned vertex slices; the GPU buffers go
	// away with the window's GL context.
	msh.pin.Unpin()
	delete(d.meshes, m)
}

func (d *Device) DeleteProgram(p gpu.Program) {
	prog, ok := d.programs[p]
	if !ok {
		return
	}
	rl.UnloadShader(prog.shader)
	delete(d.programs, p)
}

func toByte(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return uint8(f*255 + 0.5)
}

// toMatrix converts a column-major array to raylib's matrix, whose Mi field
// is element i in column-major order.
func toMatrix(m *[16]float32) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
