// Package mobilegl implements gpu.Device with golang.org/x/mobile/gl for
// OpenGL ES 2.0 surfaces.
package mobilegl

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/mobile/exp/f32"
	"golang.org/x/mobile/gl"

	"floorspin/internal/gpu"
)

// maxVertices is the most a mesh can address with GLES 2.0 core
// UNSIGNED_SHORT element indices.
const maxVertices = 0xffff + 1

// Names shared with the GLSL ES shaders in package scene.
const (
	mvpUniform     = "uMVPMatrix"
	positionAttrib = "vPosition"
	colorAttrib    = "vColor"
)

type program struct {
	prog  gl.Program
	mvp   gl.Uniform
	pos   gl.Attrib
	color gl.Attrib
}

type mesh struct {
	positions      gl.Buffer
	colors         gl.Buffer
	indices        gl.Buffer
	count          int
	positionStride int
	colorStride    int
}

// Device wraps a gl.Context. It is only valid while the context is.
type Device struct {
	ctx      gl.Context
	programs map[gpu.Program]*program
	meshes   map[gpu.Mesh]*mesh
	nextID   uint32
	current  *program
}

// New returns a device drawing with ctx.
func New(ctx gl.Context) *Device {
	return &Device{
		ctx:      ctx,
		programs: make(map[gpu.Program]*program),
		meshes:   make(map[gpu.Mesh]*mesh),
	}
}

var _ gpu.Device = (*Device)(nil)

func (d *Device) Dialect() gpu.Dialect { return gpu.GLSLES100 }

func (d *Device) SetClearColor(c gpu.Color) { d.ctx.ClearColor(c[0], c[1], c[2], c[3]) }

func (d *Device) EnableDepthTest() {
	d.ctx.Enable(gl.DEPTH_TEST)
	d.ctx.DepthFunc(gl.LEQUAL)
}

func (d *Device) Viewport(width, height int) { d.ctx.Viewport(0, 0, width, height) }

func (d *Device) Clear() { d.ctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT) }

func (d *Device) compile(kind gl.Enum, src string) (gl.Shader, error) {
	sh := d.ctx.CreateShader(kind)
	d.ctx.ShaderSource(sh, src)
	d.ctx.CompileShader(sh)
	if d.ctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		info := d.ctx.GetShaderInfoLog(sh)
		d.ctx.DeleteShader(sh)
		return gl.Shader{}, fmt.Errorf("%w: %s", gpu.ErrCompile, info)
	}
	return sh, nil
}

func (d *Device) CompileProgram(src gpu.ShaderSource) (gpu.Program, error) {
	vs, err := d.compile(gl.VERTEX_SHADER, src.Vertex)
	if err != nil {
		return 0, err
	}
	fs, err := d.compile(gl.FRAGMENT_SHADER, src.Fragment)
	if err != nil {
		d.ctx.DeleteShader(vs)
		return 0, err
	}
	prog := d.ctx.CreateProgram()
	d.ctx.AttachShader(prog, vs)
	d.ctx.AttachShader(prog, fs)
	d.ctx.LinkProgram(prog)
	d.ctx.DeleteShader(vs)
	d.ctx.DeleteShader(fs)
	if d.ctx.GetProgrami(prog, gl.LINK_STATUS) == 0 {
		info := d.ctx.GetProgramInfoLog(prog)
		d.ctx.DeleteProgram(prog)
		return 0, fmt.Errorf("%w: %s", gpu.ErrLink, info)
	}

	d.nextID++
	id := gpu.Program(d.nextID)
	d.programs[id] = &program{
		prog:  prog,
		mvp:   d.ctx.GetUniformLocation(prog, mvpUniform),
		pos:   d.ctx.GetAttribLocation(prog, positionAttrib),
		color: d.ctx.GetAttribLocation(prog, colorAttrib),
	}
	return id, nil
}

func (d *Device) UploadMesh(p gpu.Program, data gpu.MeshData) (gpu.Mesh, error) {
	if _, ok := d.programs[p]; !ok {
		return 0, fmt.Errorf("%w: unknown program %d", gpu.ErrUpload, p)
	}
	if len(data.Indices) == 0 || len(data.Indices)%3 != 0 {
		return 0, fmt.Errorf("%w: %d indices", gpu.ErrUpload, len(data.Indices))
	}
	if n := len(data.Positions) / 3; n > maxVertices {
		return 0, fmt.Errorf("%w: %d vertices exceed 16-bit indices", gpu.ErrUpload, n)
	}
	m := &mesh{
		positions:      d.buffer(gl.ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, data.Positions...)),
		colors:         d.buffer(gl.ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, data.Colors...)),
		indices:        d.buffer(gl.ELEMENT_ARRAY_BUFFER, indexBytes(data.Indices)),
		count:          len(data.Indices),
		positionStride: data.PositionStride,
		colorStride:    data.ColorStride,
	}
	d.nextID++
	id := gpu.Mesh(d.nextID)
	d.meshes[id] = m
	return id, nil
}

func (d *Device) buffer(target gl.Enum, b []byte) gl.Buffer {
	buf := d.ctx.CreateBuffer()
	d.ctx.BindBuffer(target, buf)
	d.ctx.BufferData(target, b, gl.STATIC_DRAW)
	return buf
}

func (d *Device) UseProgram(p gpu.Program) {
	prog, ok := d.programs[p]
	if !ok {
		return
	}
	d.ctx.UseProgram(prog.prog)
	d.current = prog
}

func (d *Device) SetMVP(p gpu.Program, mvp *[16]float32) {
	prog, ok := d.programs[p]
	if !ok {
		return
	}
	d.ctx.UniformMatrix4fv(prog.mvp, mvp[:])
}

func (d *Device) BindAttributes(p gpu.Program, m gpu.Mesh) {
	prog, ok := d.programs[p]
	if !ok {
		return
	}
	msh, ok := d.meshes[m]
	if !ok {
		return
	}
	d.ctx.BindBuffer(gl.ARRAY_BUFFER, msh.positions)
	d.ctx.EnableVertexAttribArray(prog.pos)
	d.ctx.VertexAttribPointer(prog.pos, 3, gl.FLOAT, false, msh.positionStride, 0)

	d.ctx.BindBuffer(gl.ARRAY_BUFFER, msh.colors)
	d.ctx.EnableVertexAttribArray(prog.color)
	d.ctx.VertexAttribPointer(prog.color, 4, gl.FLOAT, false, msh.colorStride, 0)
}

func (d *Device) DrawIndexed(m gpu.Mesh) {
	msh, ok := d.meshes[m]
	if !ok {
		return
	}
	d.ctx.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, msh.indices)
	d.ctx.DrawElements(gl.TRIANGLES, msh.count, gl.UNSIGNED_SHORT, 0)
	if d.current != nil {
		d.ctx.DisableVertexAttribArray(d.current.pos)
		d.ctx.DisableVertexAttribArray(d.current.color)
	}
}

func (d *Device) DeleteMesh(m gpu.Mesh) {
	msh, ok := d.meshes[m]
	if !ok {
		return
	}
	d.ctx.DeleteBuffer(msh.positions)
	d.ctx.DeleteBuffer(msh.colors)
	d.ctx.DeleteBuffer(msh.indices)
	delete(d.meshes, m)
}

func (d *Device) DeleteProgram(p gpu.Program) {
	prog, ok := d.programs[p]
	if !ok {
		return
	}
	d.ctx.DeleteProgram(prog.prog)
	if d.current == prog {
		d.current = nil
	}
	delete(d.programs, p)
}

// indexBytes encodes indices as little-endian uint16 for an element buffer.
// Callers must have checked that every index fits.
func indexBytes(idx []uint32) []byte {
	b := make([]byte, len(idx)*2)
	for i, x := range idx {
		binary.LittleEndian.PutUint16(b[i*2:], uint16(x))
	}
	return b
}
