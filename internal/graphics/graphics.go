// Package graphics hosts the viewer in a raylib window on desktop platforms.
package graphics

import (
	"context"
	"fmt"

	"fortio.org/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jinzhu/copier"

	"floorspin/internal/config"
	"floorspin/internal/debug"
	"floorspin/internal/gpu/rlgpu"
	"floorspin/internal/viewer"
)

// WindowOptions configures the desktop window.
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	TargetFPS  int
}

// OptionsFrom copies the window and overlay settings out of cfg.
func OptionsFrom(cfg *config.Config) (WindowOptions, debug.Options, error) {
	var w WindowOptions
	var d debug.Options
	if err := copier.Copy(&w, &cfg.Window); err != nil {
		return w, d, fmt.Errorf("window options: %w", err)
	}
	if err := copier.Copy(&d, &cfg.Debug); err != nil {
		return w, d, fmt.Errorf("debug options: %w", err)
	}
	return w, d, nil
}

// configFlags returns the raylib window flags for opts.
func configFlags(opts WindowOptions) uint32 {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	return flags
}

// idleWait is how long the loop sleeps between event polls when nothing
// needs drawing.
func idleWait(opts WindowOptions) float64 {
	if opts.TargetFPS <= 0 {
		return 1.0 / 60
	}
	return 1.0 / float64(opts.TargetFPS)
}

// Run opens the window and drives v until the window closes or ctx ends.
// A frame is only drawn when the viewer asked for one or the window changed
// size. Space pauses and resumes; a minimized window is paused.
func Run(ctx context.Context, opts WindowOptions, v *viewer.Viewer, overlay *debug.Overlay) {
	rl.SetConfigFlags(configFlags(opts))
	width, height := int32(opts.Width), int32(opts.Height)
	if opts.Fullscreen {
		width, height = int32(rl.GetMonitorWidth(0)), int32(rl.GetMonitorHeight(0))
	}
	rl.InitWindow(width, height, opts.Title)
	defer rl.CloseWindow()
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}

	if err := v.SurfaceCreated(rlgpu.New()); err != nil {
		log.Errf("graphics: some objects will not be drawn: %v", err)
	}
	v.SurfaceResized(rl.GetScreenWidth(), rl.GetScreenHeight())
	v.Resume(ctx)
	defer v.Release()

	userPaused, minimized := false, false
	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if rl.IsWindowResized() {
			v.SurfaceResized(rl.GetScreenWidth(), rl.GetScreenHeight())
		}
		if m := rl.IsWindowMinimized(); m != minimized {
			minimized = m
			setPaused(ctx, v, userPaused || minimized)
		}
		if rl.IsKeyPressed(rl.KeySpace) {
			userPaused = !userPaused
			setPaused(ctx, v, userPaused || minimized)
		}

		select {
		case <-v.Redraw():
		default:
			rl.PollInputEvents()
			rl.WaitTime(idleWait(opts))
			continue
		}
		if v.Paused() {
			continue
		}
		rl.BeginDrawing()
		v.DrawFrame()
		overlay.Draw(v.Angles())
		rl.EndDrawing()
	}
	log.Infof("graphics: window closed")
}

func setPaused(ctx context.Context, v *viewer.Viewer, paused bool) {
	if paused {
		v.Pause()
	} else {
		v.Resume(ctx)
	}
}
