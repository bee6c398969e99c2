// Package gputest provides a gpu.Device that records calls instead of
// talking to a GPU.
package gputest

import (
	"fmt"
	"sync"

	"floorspin/internal/gpu"
)

// Draw is one DrawIndexed call together with the state bound at the time.
type Draw struct {
	Program gpu.Program
	Mesh    gpu.Mesh
	MVP     [16]float32
	Indices int
}

// Recorder implements gpu.Device. Set FailCompile or FailLink before use to
// simulate broken shaders.
type Recorder struct {
	FailCompile bool
	FailLink    bool
	Lang        gpu.Dialect

	mu          sync.Mutex
	clear       gpu.Color
	depthTest   bool
	width       int
	height      int
	clears      int
	nextID      uint32
	programs    map[gpu.Program]gpu.ShaderSource
	meshes      map[gpu.Mesh]gpu.MeshData
	current     gpu.Program
	mvp         map[gpu.Program][16]float32
	bound       map[gpu.Program]gpu.Mesh
	draws       []Draw
	compileCall int
}

// New returns an empty recorder speaking GLSL ES 1.00.
func New() *Recorder {
	return &Recorder{
		Lang:     gpu.GLSLES100,
		programs: make(map[gpu.Program]gpu.ShaderSource),
		meshes:   make(map[gpu.Mesh]gpu.MeshData),
		mvp:      make(map[gpu.Program][16]float32),
		bound:    make(map[gpu.Program]gpu.Mesh),
	}
}

var _ gpu.Device = (*Recorder)(nil)

func (r *Recorder) Dialect() gpu.Dialect { return r.Lang }

func (r *Recorder) SetClearColor(c gpu.Color) {
	r.mu.Lock()
	r.clear = c
	r.mu.Unlock()
}

func (r *Recorder) EnableDepthTest() {
	r.mu.Lock()
	r.depthTest = true
	r.mu.Unlock()
}

func (r *Recorder) Viewport(width, height int) {
	r.mu.Lock()
	r.width, r.height = width, height
	r.mu.Unlock()
}

func (r *Recorder) Clear() {
	r.mu.Lock()
	r.clears++
	r.mu.Unlock()
}

func (r *Recorder) CompileProgram(src gpu.ShaderSource) (gpu.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compileCall++
	if r.FailCompile {
		return 0, fmt.Errorf("%w: recorder told to fail", gpu.ErrCompile)
	}
	if r.FailLink {
		return 0, fmt.Errorf("%w: recorder told to fail", gpu.ErrLink)
	}
	r.nextID++
	p := gpu.Program(r.nextID)
	r.programs[p] = src
	return p, nil
}

func (r *Recorder) UploadMesh(p gpu.Program, data gpu.MeshData) (gpu.Mesh, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.programs[p]; !ok {
		return 0, fmt.Errorf("%w: unknown program %d", gpu.ErrUpload, p)
	}
	r.nextID++
	m := gpu.Mesh(r.nextID)
	r.meshes[m] = data
	return m, nil
}

func (r *Recorder) UseProgram(p gpu.Program) {
	r.mu.Lock()
	r.current = p
	r.mu.Unlock()
}

func (r *Recorder) SetMVP(p gpu.Program, mvp *[16]float32) {
	r.mu.Lock()
	r.mvp[p] = *mvp
	r.mu.Unlock()
}

func (r *Recorder) BindAttributes(p gpu.Program, m gpu.Mesh) {
	r.mu.Lock()
	r.bound[p] = m
	r.mu.Unlock()
}

func (r *Recorder) DrawIndexed(m gpu.Mesh) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.current
	r.draws = append(r.draws, Draw{
		Program: p,
		Mesh:    m,
		MVP:     r.mvp[p],
		Indices: len(r.meshes[m].Indices),
	})
}

func (r *Recorder) DeleteMesh(m gpu.Mesh) {
	r.mu.Lock()
	delete(r.meshes, m)
	r.mu.Unlock()
}

func (r *Recorder) DeleteProgram(p gpu.Program) {
	r.mu.Lock()
	delete(r.programs, p)
	r.mu.Unlock()
}

// Draws returns a copy of every recorded draw call, oldest first.
func (r *Recorder) Draws() []Draw {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Draw, len(r.draws))
	copy(out, r.draws)
	return out
}

// Bound returns the mesh last bound to p's attributes.
func (r *Recorder) Bound(p gpu.Program) gpu.Mesh {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bound[p]
}

// State reports the clear color, depth-test flag and viewport size.
func (r *Recorder) State() (clear gpu.Color, depthTest bool, width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clear, r.depthTest, r.width, r.height
}

// Clears returns how many times Clear was called.
func (r *Recorder) Clears() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.clears
}

// Live returns the number of programs and meshes not yet deleted.
func (r *Recorder) Live() (programs, meshes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.programs), len(r.meshes)
}

// CompileCalls returns how many times CompileProgram was called.
func (r *Recorder) CompileCalls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.compileCall
}
