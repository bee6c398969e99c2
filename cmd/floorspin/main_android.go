//go:build android

package main

import (
	"context"

	"fortio.org/log"
	"golang.org/x/mobile/app"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/gl"

	"floorspin/internal/config"
	"floorspin/internal/gpu/mobilegl"
	"floorspin/internal/orientation"
	"floorspin/internal/viewer"
)

func main() {
	cfg, closer, err := setup(".env", config.DefaultPath)
	if err != nil {
		log.Fatalf("setup: %v", err)
	}
	defer closer.Close()
	v, err := newViewer(&cfg)
	if err != nil {
		log.Fatalf("viewer: %v", err)
	}

	app.Main(func(a app.App) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go forwardRedraws(ctx, a, v)

		var glctx gl.Context
		var sz size.Event
		for e := range a.Events() {
			switch e := a.Filter(e).(type) {
			case lifecycle.Event:
				switch e.Crosses(lifecycle.StageVisible) {
				case lifecycle.CrossOn:
					c, ok := e.DrawContext.(gl.Context)
					if !ok {
						continue
					}
					glctx = c
					if err := v.SurfaceCreated(mobilegl.New(glctx)); err != nil {
						log.Errf("floorspin: some objects will not be drawn: %v", err)
					}
					if sz.WidthPx > 0 {
						v.SurfaceResized(sz.WidthPx, sz.HeightPx)
					}
					v.Resume(ctx)
				case lifecycle.CrossOff:
					v.Release()
					glctx = nil
				}
				if e.To == lifecycle.StageDead {
					return
				}

			case size.Event:
				sz = e
				v.SetDisplayRotation(displayRotation(e.Orientation))
				if glctx != nil {
					v.SurfaceResized(e.WidthPx, e.HeightPx)
				}

			case paint.Event:
				if glctx == nil || sz.WidthPx <= 0 || sz.HeightPx <= 0 {
					continue
				}
				if v.DrawFrame() {
					a.Publish()
				}
			}
		}
	})
}

// forwardRedraws turns viewer render requests into paint events.
func forwardRedraws(ctx context.Context, a app.App, v *viewer.Viewer) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-v.Redraw():
			a.Send(paint.Event{})
		}
	}
}

// displayRotation maps the window orientation to a display rotation. x/mobile
// only reports portrait or landscape, so landscape is taken as 90°.
func displayRotation(o size.Orientation) orientation.DisplayRotation {
	if o == size.OrientationLandscape {
		return orientation.Rotation90
	}
	return orientation.Rotation0
}
