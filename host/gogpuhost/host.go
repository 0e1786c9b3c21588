// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gogpuhost runs a laserflow animation in a gogpu window.
//
// The controller draws into a ggcanvas.Canvas, which is uploaded to the GPU
// and composited onto the window surface every frame:
//
//	laserflow.Controller → gg.Context → ggcanvas.Canvas → gogpu.Context → Window
//
// Rendering is event-driven. The host holds a gogpu animation token only
// while the controller runs or a window resize is still to be applied, so
// a paused or hidden animation costs no CPU. Space toggles pause.
package gogpuhost

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/laserflow"
)

// Options configures the window.
type Options struct {
	// Title is the window title. Default: "LaserFlow".
	Title string
	// Width and Height are the initial window size. Default: 1024x640.
	Width, Height int
	// Controller holds extra options for the animation controller, such
	// as laserflow.WithConfig. A FrameQueue scheduler is always installed.
	Controller []laserflow.Option
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "LaserFlow"
	}
	if o.Width <= 0 {
		o.Width = 1024
	}
	if o.Height <= 0 {
		o.Height = 640
	}
	return o
}

// Run opens the window and blocks until it is closed or ctx is done.
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(opts.Title).
		WithSize(opts.Width, opts.Height).
		WithContinuousRender(false))

	h := &host{
		app:   app,
		opts:  opts,
		queue: laserflow.NewFrameQueue(),
		start: time.Now(),
	}
	app.OnDraw(h.draw)
	app.EventSource().OnKeyPress(h.keyPress)
	app.OnClose(h.close)

	stop := context.AfterFunc(ctx, func() { app.Quit() })
	defer stop()

	laserflow.Logger().Info("gogpuhost: starting", "width", opts.Width, "height", opts.Height)
	if err := app.Run(); err != nil {
		return fmt.Errorf("gogpuhost: %w", err)
	}
	laserflow.Logger().Info("gogpuhost: stopped")
	return h.err
}

type host struct {
	app   *gogpu.App
	opts  Options
	queue *laserflow.FrameQueue
	start time.Time

	canvas *ggcanvas.Canvas
	ctrl   *laserflow.Controller
	token  *gogpu.AnimationToken
	err    error

	width, height int
}

func (h *host) draw(dc *gogpu.Context) {
	w, ht := dc.Width(), dc.Height()
	if w <= 0 || ht <= 0 {
		// Minimised.
		if h.ctrl != nil {
			h.ctrl.SetHidden(true)
			h.syncAnimation()
		}
		return
	}
	if h.ctrl == nil && !h.init(w, ht) {
		return
	}
	h.ctrl.SetHidden(false)

	if sw, _ := dc.SurfaceSize(); sw > 0 {
		h.ctrl.SetDevicePixelRatio(float64(sw) / float64(w))
	}
	if w != h.width || ht != h.height {
		h.width, h.height = w, ht
		h.ctrl.RequestResize(float64(w), float64(ht))
	}

	rev := h.ctrl.Revision()
	h.queue.Fire(time.Since(h.start))
	if h.ctrl.Revision() != rev {
		h.canvas.MarkDirty()
	}
	opts := ggcanvas.DefaultRenderOptions()
	opts.ScaleX, opts.ScaleY = renderScale(w, ht, h.canvas.Width(), h.canvas.Height())
	if err := h.canvas.RenderToEx(dc.AsTextureDrawer(), opts); err != nil {
		laserflow.Logger().Debug("gogpuhost: render failed", "err", err)
	}
	h.syncAnimation()
}

// init creates the canvas and controller once the GPU device is available.
func (h *host) init(w, ht int) bool {
	provider := h.app.GPUContextProvider()
	if provider == nil {
		return false
	}
	canvas, err := ggcanvas.New(provider, w, ht)
	if err != nil {
		h.err = fmt.Errorf("gogpuhost: create canvas: %w", err)
		h.app.Quit()
		return false
	}
	h.canvas = canvas

	opts := append([]laserflow.Option{laserflow.WithScheduler(h.queue)}, h.opts.Controller...)
	h.ctrl = laserflow.New(canvas, opts...)
	h.width, h.height = w, ht
	h.ctrl.Resize(float64(w), float64(ht))
	h.ctrl.Start()
	laserflow.Logger().Debug("gogpuhost: canvas created", "width", w, "height", ht)
	return true
}

// syncAnimation holds the animation token while a frame is scheduled or
// a debounced resize waits for the next draw, so VSync redraws stop with
// the controller and a resize while paused still lands.
func (h *host) syncAnimation() {
	busy := h.ctrl != nil && (h.ctrl.Running() || h.ctrl.ResizePending())
	switch {
	case busy && h.token == nil:
		h.token = h.app.StartAnimation()
	case !busy && h.token != nil:
		h.token.Stop()
		h.token = nil
	}
}

func (h *host) keyPress(key gpucontext.Key, _ gpucontext.Modifiers) {
	if key != gpucontext.KeySpace || h.ctrl == nil {
		return
	}
	h.ctrl.SetPaused(!h.ctrl.Paused())
	laserflow.Logger().Debug("gogpuhost: pause toggled", "paused", h.ctrl.Paused())
	h.syncAnimation()
}

func (h *host) close() {
	if h.token != nil {
		h.token.Stop()
		h.token = nil
	}
	if h.ctrl != nil {
		h.ctrl.Dispose()
	}
	// Canvas is released by the app's resource tracker.
	gg.CloseAccelerator()
}

// renderScale maps the canvas backing store onto a window of w x h.
func renderScale(w, h, canvasW, canvasH int) (sx, sy float32) {
	if canvasW <= 0 || canvasH <= 0 {
		return 1, 1
	}
	return float32(w) / float32(canvasW), float32(h) / float32(canvasH)
}
