// Package viewer ties the renderer to its rotation sources and exposes the
// lifecycle a host drives: surface created/resized, draw, pause, resume.
package viewer

import (
	"context"
	"sync/atomic"

	"fortio.org/log"

	"floorspin/internal/config"
	"floorspin/internal/gpu"
	"floorspin/internal/orientation"
	"floorspin/internal/rotation"
	"floorspin/internal/scene"
	"floorspin/internal/sensor"
	"floorspin/internal/spin"
)

// Options selects the rotation source and its timing.
type Options struct {
	Spin spin.Options
	// Orientation makes sensor samples drive the scene instead of the idle
	// spin. The sensor is not started at all when false.
	Orientation     bool
	DisplayRotation orientation.DisplayRotation
}

// DefaultOptions spins with the default timing and leaves the sensor off.
func DefaultOptions() Options {
	return Options{Spin: spin.DefaultOptions()}
}

// OptionsFrom builds viewer options from a loaded config.
func OptionsFrom(cfg *config.Config) Options {
	return Options{
		Spin:            cfg.SpinOptions(),
		Orientation:     cfg.Orientation.Enabled,
		DisplayRotation: cfg.DisplayRotation(),
	}
}

// Viewer owns the shared angles and whichever producer writes them. Render
// methods (SurfaceCreated, SurfaceResized, DrawFrame, Release) belong to the
// host's render thread; the rest may be called from anywhere.
type Viewer struct {
	opts    Options
	models  []scene.Model
	state   rotation.State
	tracker *orientation.Tracker
	spin    *spin.Driver
	feed    *sensor.Feed

	renderer *scene.Renderer
	dirty    chan struct{}
	paused   atomic.Bool
	display  atomic.Int32
}

// New returns a paused viewer. src is only used when opts.Orientation is set
// and may be nil otherwise. With no models the floor plan is drawn.
func New(opts Options, src sensor.Source, models ...scene.Model) *Viewer {
	if len(models) == 0 {
		models = []scene.Model{scene.FloorPlanModel()}
	}
	v := &Viewer{
		opts:    opts,
		models:  models,
		tracker: orientation.NewTracker(),
		dirty:   make(chan struct{}, 1),
	}
	v.paused.Store(true)
	v.display.Store(int32(opts.DisplayRotation))
	v.spin = spin.New(&v.state, v.RequestRender, opts.Spin)
	if opts.Orientation && src != nil {
		v.feed = sensor.NewFeed(src, v.tracker, &v.state, v.DisplayRotation, v.RequestRender)
	}
	return v
}

// RequestRender marks the scene dirty. Requests made before the host gets to
// draw collapse into one.
func (v *Viewer) RequestRender() {
	select {
	case v.dirty <- struct{}{}:
	default:
	}
}

// Redraw delivers one value per pending render request.
func (v *Viewer) Redraw() <-chan struct{} { return v.dirty }

// SurfaceCreated builds a renderer on dev and uploads the models. Failed
// objects are skipped at draw time; their errors are returned joined.
func (v *Viewer) SurfaceCreated(dev gpu.Device) error {
	if v.renderer != nil {
		v.renderer.Release()
	}
	v.renderer = scene.NewRenderer(dev, &v.state, v.models...)
	err := v.renderer.SurfaceCreated()
	v.RequestRender()
	return err
}

// SurfaceResized updates the projection and asks for a redraw.
func (v *Viewer) SurfaceResized(width, height int) {
	if v.renderer == nil {
		return
	}
	v.renderer.SurfaceResized(width, height)
	v.RequestRender()
}

// DrawFrame renders the current angles. It does nothing while paused or
// before a surface exists, and reports whether a frame was drawn.
func (v *Viewer) DrawFrame() bool {
	if v.renderer == nil || v.paused.Load() {
		return false
	}
	v.renderer.DrawFrame()
	return true
}

// Pause stops the active rotation source. Paused viewers draw nothing.
func (v *Viewer) Pause() {
	if v.paused.Swap(true) {
		return
	}
	if v.feed != nil {
		v.feed.Pause()
	} else {
		v.spin.Pause()
	}
	log.Infof("viewer: paused")
}

// Resume restarts the rotation source and asks for one redraw. The spin
// driver waits its initial delay again before the first tick.
func (v *Viewer) Resume(ctx context.Context) {
	if !v.paused.Swap(false) {
		return
	}
	if v.feed != nil {
		v.feed.Resume(ctx)
	} else {
		v.spin.Resume(ctx)
	}
	log.Infof("viewer: resumed (orientation=%v)", v.feed != nil)
	v.RequestRender()
}

// Paused reports whether the viewer is paused.
func (v *Viewer) Paused() bool { return v.paused.Load() }

// SetDisplayRotation records the current screen rotation for the tracker.
func (v *Viewer) SetDisplayRotation(r orientation.DisplayRotation) {
	if int32(r) == v.display.Swap(int32(r)) {
		return
	}
	log.Infof("viewer: display rotation %d", r)
}

// DisplayRotation returns the rotation set by the host.
func (v *Viewer) DisplayRotation() orientation.DisplayRotation {
	return orientation.DisplayRotation(v.display.Load())
}

// Angles returns the rotation the next frame will use.
func (v *Viewer) Angles() rotation.Angles { return v.state.Load() }

// OrientationAngles returns the last angles computed from a sensor sample.
func (v *Viewer) OrientationAngles() (orientation.Angles, bool) { return v.tracker.Last() }

// Renderer returns the renderer built by the last SurfaceCreated, or nil.
func (v *Viewer) Renderer() *scene.Renderer { return v.renderer }

// Release pauses the viewer and frees GPU resources. A later SurfaceCreated
// starts over.
func (v *Viewer) Release() {
	v.Pause()
	if v.renderer != nil {
		v.renderer.Release()
		v.renderer = nil
	}
}
