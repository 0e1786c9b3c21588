// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenhost runs a laserflow animation in an Ebitengine window.
//
// Beams are drawn by gg in software. Every tick the controller is advanced
// from Update, and Draw uploads the gg pixmap into an offscreen
// ebiten.Image with WritePixels and scales it onto the screen. Both sides
// use premultiplied RGBA, so no conversion is needed.
//
// Space toggles pause, Escape quits. A minimised window counts as hidden.
package ebitenhost

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/laserflow"
)

// Options configures the window.
type Options struct {
	// Title is the window title. Default: "LaserFlow".
	Title string
	// Width and Height are the initial window size. Default: 1024x640.
	Width, Height int
	// Controller holds extra options for the animation controller.
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

// Run opens the window and blocks until it is closed, Escape is pressed
// or ctx is done.
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := newGame(ctx, opts)
	defer g.close()

	laserflow.Logger().Info("ebitenhost: starting", "width", opts.Width, "height", opts.Height)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	laserflow.Logger().Info("ebitenhost: stopped", "frames", g.ctrl.Frames())
	return nil
}

type game struct {
	ctx     context.Context
	queue   *laserflow.FrameQueue
	surface *laserflow.ImageSurface
	ctrl    *laserflow.Controller
	start   time.Time

	offscreen     *ebiten.Image
	width, height int
}

var _ ebiten.Game = (*game)(nil)

func newGame(ctx context.Context, opts Options) *game {
	g := &game{
		ctx:     ctx,
		queue:   laserflow.NewFrameQueue(),
		surface: laserflow.NewImageSurface(),
		start:   time.Now(),
	}
	copts := append([]laserflow.Option{laserflow.WithScheduler(g.queue)}, opts.Controller...)
	g.ctrl = laserflow.New(g.surface, copts...)
	return g
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.ctrl.SetPaused(!g.ctrl.Paused())
		laserflow.Logger().Debug("ebitenhost: pause toggled", "paused", g.ctrl.Paused())
	}
	g.ctrl.SetHidden(ebiten.IsWindowMinimized())
	g.ctrl.SetDevicePixelRatio(ebiten.Monitor().DeviceScaleFactor())

	g.queue.Fire(time.Since(g.start))
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	pix, w, h := g.surface.Pixels()
	if pix == nil {
		return
	}
	if g.offscreen == nil || g.offscreen.Bounds().Dx() != w || g.offscreen.Bounds().Dy() != h {
		if g.offscreen != nil {
			g.offscreen.Deallocate()
		}
		g.offscreen = ebiten.NewImage(w, h)
	}
	g.offscreen.WritePixels(pix)

	sb := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sb.Dx())/float64(w), float64(sb.Dy())/float64(h))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(g.offscreen, op)
}

// Layout implements ebiten.Game. The controller works in logical pixels
// while the screen is laid out in device pixels, so a backing store at the
// full device ratio is drawn 1:1.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		first := g.width == 0 && g.height == 0
		g.width, g.height = outsideWidth, outsideHeight
		if first {
			g.ctrl.Resize(float64(outsideWidth), float64(outsideHeight))
			g.ctrl.Start()
		} else {
			g.ctrl.RequestResize(float64(outsideWidth), float64(outsideHeight))
		}
	}
	scale := ebiten.Monitor().DeviceScaleFactor()
	return int(math.Ceil(float64(outsideWidth) * scale)), int(math.Ceil(float64(outsideHeight) * scale))
}

func (g *game) close() {
	g.ctrl.Dispose()
	if g.offscreen != nil {
		g.offscreen.Deallocate()
	}
	_ = g.surface.Close()
}
