// Package scene composes the per-frame camera and model transforms and draws
// the floor plan through a gpu.Device.
package scene

import (
	"errors"

	"fortio.org/log"
	"github.com/go-gl/mathgl/mgl32"

	"floorspin/internal/geometry"
	"floorspin/internal/gpu"
	"floorspin/internal/rotation"
)

// Camera: eye one unit in front of the origin looking down -Z, Y up. Models
// are pushed five units into the scene before rotating.
var (
	eye         = mgl32.Vec3{0, 0, 1}
	center      = mgl32.Vec3{0, 0, 0}
	up          = mgl32.Vec3{0, 1, 0}
	sceneOffset = mgl32.Vec3{0, 0, -5}
)

// Frustum depth range and vertical half-extent.
const (
	frustumNear = 1
	frustumFar  = 16
	frustumHalf = 1
)

// Frustum holds the clip planes of a perspective projection.
type Frustum struct {
	Left, Right, Bottom, Top, Near, Far float32
}

// FrustumFor returns the frustum for a width x height surface: vertical
// extent ±1, horizontal extent ±aspect ratio, depth 1 to 16.
func FrustumFor(width, height int) Frustum {
	if height <= 0 {
		height = 1
	}
	ratio := float32(width) / float32(height)
	return Frustum{
		Left:   -ratio,
		Right:  ratio,
		Bottom: -frustumHalf,
		Top:    frustumHalf,
		Near:   frustumNear,
		Far:    frustumFar,
	}
}

// Matrix returns the projection matrix for f.
func (f Frustum) Matrix() mgl32.Mat4 {
	return mgl32.Frustum(f.Left, f.Right, f.Bottom, f.Top, f.Near, f.Far)
}

// ViewMatrix returns the fixed look-at camera.
func ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(eye, center, up)
}

// ModelMatrix builds the model matrix for an object at placement p when the
// scene is turned by a: translate into the scene, rotate about Y, then X,
// then Z, then apply the object's own translation and scale.
func ModelMatrix(a rotation.Angles, p geometry.Placement) mgl32.Mat4 {
	m := mgl32.Translate3D(sceneOffset[0], sceneOffset[1], sceneOffset[2])
	m = m.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(a.Y + p.Rotation[1])))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(a.X + p.Rotation[0])))
	m = m.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(a.Z + p.Rotation[2])))
	m = m.Mul4(mgl32.Translate3D(p.Translation[0], p.Translation[1], p.Translation[2]))
	return m.Mul4(mgl32.Scale3D(p.Scale[0], p.Scale[1], p.Scale[2]))
}

// Transform is the set of matrices computed for one object in one frame.
type Transform struct {
	Model     mgl32.Mat4
	View      mgl32.Mat4
	ModelView mgl32.Mat4
	MVP       mgl32.Mat4
}

// AngleSource provides the scene rotation read once per frame.
type AngleSource interface {
	Load() rotation.Angles
}

// Model describes an object the renderer uploads when the surface appears.
type Model struct {
	Name      string
	Mesh      *geometry.Mesh
	Placement geometry.Placement
}

// FloorPlanModel is the floor-plan mesh at its default placement.
func FloorPlanModel() Model {
	return Model{Name: "floorplan", Mesh: geometry.FloorPlan(), Placement: geometry.FloorPlanPlacement}
}

// Renderer draws a flat list of objects. Its methods must be called from the
// thread that owns the device.
type Renderer struct {
	dev     gpu.Device
	angles  AngleSource
	models  []Model
	objects []*Drawable

	frustum    Frustum
	projection mgl32.Mat4
	last       []Transform
}

// NewRenderer returns a renderer that will draw models on dev, turned by the
// angles read from angles. Nothing touches the device until SurfaceCreated.
func NewRenderer(dev gpu.Device, angles AngleSource, models ...Model) *Renderer {
	return &Renderer{
		dev:        dev,
		angles:     angles,
		models:     models,
		projection: mgl32.Ident4(),
	}
}

// SurfaceCreated sets up depth testing and the clear color, then compiles
// and uploads every model. An object that fails setup is logged and kept in
// the list as unusable; the joined errors are returned.
func (r *Renderer) SurfaceCreated() error {
	r.dev.SetClearColor(gpu.Black)
	r.dev.EnableDepthTest()

	src := FlatShader(r.dev.Dialect())
	var errs []error
	r.objects = r.objects[:0]
	for _, m := range r.models {
		d, err := NewDrawable(r.dev, m.Name, m.Mesh, src, m.Placement)
		if err != nil {
			log.Errf("scene: %v", err)
			errs = append(errs, err)
		}
		r.objects = append(r.objects, d)
	}
	log.Infof("scene: surface created (%d objects, %s)", len(r.objects), r.dev.Dialect())
	return errors.Join(errs...)
}

// SurfaceResized recomputes the projection for the new surface size.
func (r *Renderer) SurfaceResized(width, height int) {
	r.dev.Viewport(width, height)
	r.frustum = FrustumFor(width, height)
	r.projection = r.frustum.Matrix()
	log.Infof("scene: surface resized to %dx%d", width, height)
}

// Frustum returns the frustum set by the last SurfaceResized.
func (r *Renderer) Frustum() Frustum { return r.frustum }

// DrawFrame clears the surface and draws every object in list order. All
// matrices are rebuilt from the current angles; nothing carries over from
// the previous frame.
func (r *Renderer) DrawFrame() {
	r.dev.Clear()
	a := r.angles.Load()
	view := ViewMatrix()

	r.last = r.last[:0]
	for _, d := range r.objects {
		var t Transform
		t.Model = ModelMatrix(a, d.Placement())
		t.View = view
		t.ModelView = t.View.Mul4(t.Model)
		t.MVP = r.projection.Mul4(t.ModelView)
		r.last = append(r.last, t)
		// Unusable objects were logged at setup.
		_ = d.Draw(t.MVP)
	}
}

// Transforms returns the matrices used in the last DrawFrame, one per
// object.
func (r *Renderer) Transforms() []Transform {
	out := make([]Transform, len(r.last))
	copy(out, r.last)
	return out
}

// Objects returns the drawables created by SurfaceCreated.
func (r *Renderer) Objects() []*Drawable { return r.objects }

// Release frees every object's GPU resources.
func (r *Renderer) Release() {
	for _, d := range r.objects {
		d.Release()
	}
	r.objects = nil
}
