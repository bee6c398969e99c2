// Package debug draws optional text overlays on the desktop window. All
// overlays are off by default.
package debug

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"floorspin/internal/rotation"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh the FPS text every N frames to reduce allocations.
	updateInterval = 30
)

// Options selects which overlays are drawn.
type Options struct {
	ShowFPS    bool
	ShowAngles bool
}

// Overlay draws FPS and the current rotation in the top-right corner.
type Overlay struct {
	opts       Options
	frameCount uint32
	fpsText    string
	angleText  string
	lastAngles rotation.Angles
}

// New returns an overlay drawing what opts enables.
func New(opts Options) *Overlay {
	return &Overlay{opts: opts}
}

// Active reports whether any overlay is enabled.
func (o *Overlay) Active() bool {
	return o != nil && (o.opts.ShowFPS || o.opts.ShowAngles)
}

// Draw renders the enabled overlays. Call between BeginDrawing and
// EndDrawing, after the scene.
func (o *Overlay) Draw(a rotation.Angles) {
	if !o.Active() {
		return
	}
	o.frameCount++
	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)

	if o.opts.ShowFPS {
		if o.fpsText == "" || o.frameCount%updateInterval == 0 {
			o.fpsText = fmt.Sprintf("FPS: %d", rl.GetFPS())
		}
		drawRight(o.fpsText, screenW, y)
		y += lineHeight
	}
	if o.opts.ShowAngles {
		if o.angleText == "" || a != o.lastAngles {
			o.angleText = FormatAngles(a)
			o.lastAngles = a
		}
		drawRight(o.angleText, screenW, y)
	}
}

func drawRight(text string, screenW, y int32) {
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, screenW-w-padding, y, fontSize, rl.Green)
}

// FormatAngles renders a rotation as the overlay shows it.
func FormatAngles(a rotation.Angles) string {
	return fmt.Sprintf("X %6.1f  Y %6.1f  Z %6.1f", a.X, a.Y, a.Z)
}
