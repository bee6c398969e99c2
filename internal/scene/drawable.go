package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"floorspin/internal/geometry"
	"floorspin/internal/gpu"
)

// ErrUnusable is returned by Draw on a drawable whose GPU setup failed.
var ErrUnusable = errors.New("scene: drawable is unusable")

// Per-vertex strides in bytes.
const (
	positionStride = geometry.PositionSize * 4
	colorStride    = geometry.ColorSize * 4
)

// Drawable is a mesh uploaded together with the program that draws it. The
// geometry and placement never change after construction.
type Drawable struct {
	Name string

	placement geometry.Placement
	dev       gpu.Device
	program   gpu.Program
	mesh      gpu.Mesh
	err       error
}

// NewDrawable compiles src and uploads m. On failure the returned drawable
// is still non-nil but unusable: Err reports the cause and Draw refuses.
func NewDrawable(dev gpu.Device, name string, m *geometry.Mesh, src gpu.ShaderSource, p geometry.Placement) (*Drawable, error) {
	d := &Drawable{Name: name, placement: p, dev: dev}
	prog, err := dev.CompileProgram(src)
	if err != nil {
		d.err = fmt.Errorf("drawable %q: %w", name, err)
		return d, d.err
	}
	mesh, err := dev.UploadMesh(prog, gpu.MeshData{
		Positions:      m.Positions,
		Colors:         m.Colors,
		Indices:        m.Indices,
		PositionStride: positionStride,
		ColorStride:    colorStride,
	})
	if err != nil {
		dev.DeleteProgram(prog)
		d.err = fmt.Errorf("drawable %q: %w", name, err)
		return d, d.err
	}
	d.program, d.mesh = prog, mesh
	return d, nil
}

// Placement returns the initial rotation, translation and scale fixed at
// construction.
func (d *Drawable) Placement() geometry.Placement { return d.placement }

// Err returns the setup error, if any.
func (d *Drawable) Err() error { return d.err }

// Draw binds the program, uploads mvp and draws every triangle.
func (d *Drawable) Draw(mvp mgl32.Mat4) error {
	if d.err != nil {
		return ErrUnusable
	}
	m := [16]float32(mvp)
	d.dev.UseProgram(d.program)
	d.dev.SetMVP(d.program, &m)
	d.dev.BindAttributes(d.program, d.mesh)
	d.dev.DrawIndexed(d.mesh)
	return nil
}

// Release frees the GPU objects. The drawable is unusable afterwards.
func (d *Drawable) Release() {
	if d.err != nil {
		return
	}
	d.dev.DeleteMesh(d.mesh)
	d.dev.DeleteProgram(d.program)
	d.err = ErrUnusable
}
