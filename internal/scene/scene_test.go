package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"floorspin/internal/geometry"
	"floorspin/internal/gpu"
	"floorspin/internal/gpu/gputest"
	"floorspin/internal/rotation"
)

// rm is a row-major 4x4 matrix used to check mgl32 results independently.
type rm [4][4]float64

func rmIdent() (m rm) {
	for i := range m {
		m[i][i] = 1
	}
	return
}

func rmMul(a, b rm) (m rm) {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				m[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return
}

func rmTranslate(x, y, z float64) rm {
	m := rmIdent()
	m[0][3], m[1][3], m[2][3] = x, y, z
	return m
}

func rmRotX(deg float64) rm {
	s, c := math.Sincos(deg * math.Pi / 180)
	return rm{{1, 0, 0, 0}, {0, c, -s, 0}, {0, s, c, 0}, {0, 0, 0, 1}}
}

func rmRotY(deg float64) rm {
	s, c := math.Sincos(deg * math.Pi / 180)
	return rm{{c, 0, s, 0}, {0, 1, 0, 0}, {-s, 0, c, 0}, {0, 0, 0, 1}}
}

func rmRotZ(deg float64) rm {
	s, c := math.Sincos(deg * math.Pi / 180)
	return rm{{c, -s, 0, 0}, {s, c, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
}

func checkMat(t *testing.T, what string, have mgl32.Mat4, want rm) {
	t.Helper()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if d := math.Abs(float64(have.At(i, j)) - want[i][j]); d > 1e-5 {
				t.Fatalf("%s[%d][%d]\nhave %v\nwant %v", what, i, j, have.At(i, j), want[i][j])
			}
		}
	}
}

func TestModelMatrixOrder(t *testing.T) {
	a := rotation.Angles{X: 10, Y: 20, Z: 30}
	have := ModelMatrix(a, geometry.Identity())
	want := rmMul(rmMul(rmMul(rmTranslate(0, 0, -5), rmRotY(20)), rmRotX(10)), rmRotZ(30))
	checkMat(t, "ModelMatrix", have, want)

	// Any other order gives a different matrix.
	other := rmMul(rmMul(rmMul(rmTranslate(0, 0, -5), rmRotX(10)), rmRotY(20)), rmRotZ(30))
	if math.Abs(float64(have.At(0, 1))-other[0][1]) < 1e-3 {
		t.Fatal("ModelMatrix: X-then-Y order should not match")
	}
}

func TestModelMatrixPlacement(t *testing.T) {
	a := rotation.Angles{X: 5, Y: 15, Z: 25}
	p := geometry.Placement{
		Rotation:    [3]float32{-35, 10, 0},
		Translation: [3]float32{1, 2, 3},
		Scale:       [3]float32{2, 2, 0.5},
	}
	have := ModelMatrix(a, p)
	scale := rmIdent()
	scale[0][0], scale[1][1], scale[2][2] = 2, 2, 0.5
	want := rmTranslate(0, 0, -5)
	want = rmMul(want, rmRotY(25))
	want = rmMul(want, rmRotX(-30))
	want = rmMul(want, rmRotZ(25))
	want = rmMul(want, rmTranslate(1, 2, 3))
	want = rmMul(want, scale)
	checkMat(t, "ModelMatrix", have, want)
}

func TestViewMatrix(t *testing.T) {
	checkMat(t, "ViewMatrix", ViewMatrix(), rmTranslate(0, 0, -1))
}

func TestFrustumFor(t *testing.T) {
	f := FrustumFor(1000, 500)
	want := Frustum{Left: -2, Right: 2, Bottom: -1, Top: 1, Near: 1, Far: 16}
	if f != want {
		t.Fatalf("FrustumFor(1000, 500)\nhave %+v\nwant %+v", f, want)
	}
	p := f.Matrix()
	checkMat(t, "Frustum.Matrix", p, rm{
		{0.5, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, -17.0 / 15, -32.0 / 15},
		{0, 0, -1, 0},
	})

	if f := FrustumFor(640, 0); f.Right != 640 {
		t.Fatalf("FrustumFor(640, 0).Right\nhave %v\nwant 640", f.Right)
	}
}

func newTestRenderer(t *testing.T, state *rotation.State, models ...Model) (*Renderer, *gputest.Recorder) {
	t.Helper()
	rec := gputest.New()
	r := NewRenderer(rec, state, models...)
	if err := r.SurfaceCreated(); err != nil {
		t.Fatalf("SurfaceCreated: %v", err)
	}
	r.SurfaceResized(1000, 500)
	return r, rec
}

func TestSurfaceCreated(t *testing.T) {
	var state rotation.State
	r, rec := newTestRenderer(t, &state, FloorPlanModel())
	clear, depth, w, h := rec.State()
	if clear != gpu.Black || !depth {
		t.Fatalf("GPU state\nhave clear=%v depth=%t\nwant clear=%v depth=true", clear, depth, gpu.Black)
	}
	if w != 1000 || h != 500 {
		t.Fatalf("viewport\nhave %dx%d\nwant 1000x500", w, h)
	}
	if n := len(r.Objects()); n != 1 {
		t.Fatalf("objects\nhave %d\nwant 1", n)
	}
	if r.Frustum().Right != 2 {
		t.Fatalf("Renderer.Frustum().Right\nhave %v\nwant 2", r.Frustum().Right)
	}
}

func TestDrawFrame(t *testing.T) {
	var state rotation.State
	state.Store(rotation.Angles{X: 10, Y: 20, Z: 30})
	m := Model{Name: "plain", Mesh: geometry.FloorPlan(), Placement: geometry.Identity()}
	r, rec := newTestRenderer(t, &state, m)

	r.DrawFrame()
	draws := rec.Draws()
	if len(draws) != 1 {
		t.Fatalf("draw calls\nhave %d\nwant 1", len(draws))
	}
	if draws[0].Indices != len(geometry.FloorPlan().Indices) {
		t.Fatalf("indices drawn\nhave %d\nwant %d", draws[0].Indices, len(geometry.FloorPlan().Indices))
	}
	if rec.Bound(draws[0].Program) != draws[0].Mesh {
		t.Fatal("attributes not bound to the drawn mesh")
	}

	proj := FrustumFor(1000, 500).Matrix()
	model := ModelMatrix(state.Load(), geometry.Identity())
	want := proj.Mul4(ViewMatrix().Mul4(model))
	if mgl32.Mat4(draws[0].MVP) != want {
		t.Fatalf("MVP\nhave %v\nwant %v", draws[0].MVP, want)
	}

	tr := r.Transforms()
	if len(tr) != 1 || tr[0].MVP != want || tr[0].Model != model {
		t.Fatalf("Transforms\nhave %v\nwant MVP %v", tr, want)
	}
}

func TestDrawFrameIdempotent(t *testing.T) {
	var state rotation.State
	state.Store(rotation.Angles{X: 45, Y: 90, Z: 135})
	r, rec := newTestRenderer(t, &state, FloorPlanModel(), FloorPlanModel())

	r.DrawFrame()
	r.DrawFrame()
	draws := rec.Draws()
	if len(draws) != 4 {
		t.Fatalf("draw calls\nhave %d\nwant 4", len(draws))
	}
	for i := 0; i < 2; i++ {
		if draws[i].MVP != draws[i+2].MVP {
			t.Fatalf("object %d MVP changed between frames\nhave %v\nwant %v", i, draws[i+2].MVP, draws[i].MVP)
		}
	}
	if rec.Clears() != 2 {
		t.Fatalf("Clear calls\nhave %d\nwant 2", rec.Clears())
	}
}

func TestDrawFrameFollowsAngles(t *testing.T) {
	var state rotation.State
	r, rec := newTestRenderer(t, &state, FloorPlanModel())
	r.DrawFrame()
	state.Store(rotation.Angles{X: 1, Y: 1, Z: 1})
	r.DrawFrame()
	draws := rec.Draws()
	if draws[0].MVP == draws[1].MVP {
		t.Fatal("MVP did not change with the angles")
	}
}

func TestShaderFailure(t *testing.T) {
	for _, c := range []struct {
		name   string
		setup  func(*gputest.Recorder)
		target error
	}{
		{"compile", func(r *gputest.Recorder) { r.FailCompile = true }, gpu.ErrCompile},
		{"link", func(r *gputest.Recorder) { r.FailLink = true }, gpu.ErrLink},
	} {
		var state rotation.State
		rec := gputest.New()
		c.setup(rec)
		r := NewRenderer(rec, &state, FloorPlanModel())
		err := r.SurfaceCreated()
		if !errors.Is(err, c.target) {
			t.Fatalf("%s: SurfaceCreated\nhave %v\nwant %v", c.name, err, c.target)
		}
		objs := r.Objects()
		if len(objs) != 1 || objs[0].Err() == nil {
			t.Fatalf("%s: want one unusable object", c.name)
		}
		if err := objs[0].Draw(mgl32.Ident4()); !errors.Is(err, ErrUnusable) {
			t.Fatalf("%s: Draw\nhave %v\nwant %v", c.name, err, ErrUnusable)
		}
		r.SurfaceResized(100, 100)
		r.DrawFrame()
		if n := len(rec.Draws()); n != 0 {
			t.Fatalf("%s: draw calls\nhave %d\nwant 0", c.name, n)
		}
		if rec.CompileCalls() != 1 {
			t.Fatalf("%s: compile attempts\nhave %d\nwant 1", c.name, rec.CompileCalls())
		}
	}
}

func TestRelease(t *testing.T) {
	var state rotation.State
	r, rec := newTestRenderer(t, &state, FloorPlanModel())
	if p, m := rec.Live(); p != 1 || m != 1 {
		t.Fatalf("live objects\nhave %d programs, %d meshes\nwant 1, 1", p, m)
	}
	r.Release()
	if p, m := rec.Live(); p != 0 || m != 0 {
		t.Fatalf("live objects after Release\nhave %d programs, %d meshes\nwant 0, 0", p, m)
	}
	r.DrawFrame()
	if n := len(rec.Draws()); n != 0 {
		t.Fatalf("draw calls after Release\nhave %d\nwant 0", n)
	}
}

func TestFlatShader(t *testing.T) {
	if s := FlatShader(gpu.GLSL330); s.Vertex != coreVS || s.Fragment != coreFS {
		t.Fatal("FlatShader(GLSL330): want core-profile sources")
	}
	if s := FlatShader(gpu.GLSLES100); s.Vertex != esVS || s.Fragment != esFS {
		t.Fatal("FlatShader(GLSLES100): want ES sources")
	}
}

func TestDrawablePlacementIsFixed(t *testing.T) {
	p := geometry.Placement{
		Rotation:    [3]float32{10, 20, 30},
		Translation: [3]float32{1, 2, 3},
		Scale:       [3]float32{2, 2, 2},
	}
	d, err := NewDrawable(gputest.New(), "plan", geometry.FloorPlan(), FlatShader(gpu.GLSLES100), p)
	if err != nil {
		t.Fatalf("NewDrawable: %v", err)
	}
	got := d.Placement()
	got.Rotation[0] = 99
	got.Scale = [3]float32{}
	if have := d.Placement(); have != p {
		t.Fatalf("Placement after editing a copy\nhave %+v\nwant %+v", have, p)
	}
}
