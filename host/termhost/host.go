// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termhost runs a laserflow animation in a truecolor terminal.
//
// Each terminal cell shows two vertically stacked pixels using the upper
// half block "▀": the foreground is the top pixel, the background the
// bottom one. The controller renders a larger backing store in logical
// pixels which is downsampled to the cell grid every frame.
//
// Space toggles pause; q, Escape and Ctrl-C quit. Losing terminal focus
// counts as hidden.
package termhost

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/image/draw"

	"github.com/gogpu/laserflow"
)

// Defaults for Options.
const (
	DefaultCellWidth = 8
	DefaultFPS       = 60
)

// Options configures the terminal host.
type Options struct {
	// Screen is the terminal to draw on. If nil, tcell.NewScreen is used.
	// Run initializes and finalizes it.
	Screen tcell.Screen
	// CellWidth is the number of logical pixels per cell column. A cell is
	// twice as tall as it is wide. Default: DefaultCellWidth.
	CellWidth int
	// FPS is the frame pulse rate. Default: DefaultFPS.
	FPS int
	// Controller holds extra options for the animation controller.
	Controller []laserflow.Option
}

func (o Options) withDefaults() Options {
	if o.CellWidth <= 0 {
		o.CellWidth = DefaultCellWidth
	}
	if o.FPS <= 0 {
		o.FPS = DefaultFPS
	}
	return o
}

// Run draws the animation until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	opts = opts.withDefaults()

	screen := opts.Screen
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return fmt.Errorf("termhost: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("termhost: init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableFocus()
	screen.HideCursor()
	screen.Clear()

	t := newTerm(screen, opts)
	defer t.ctrl.Dispose()
	defer t.surface.Close()

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()

	laserflow.Logger().Info("termhost: starting", "cols", t.cols, "rows", t.rows)
	for {
		select {
		case <-ctx.Done():
			laserflow.Logger().Info("termhost: stopped", "frames", t.ctrl.Frames())
			return nil
		case ev := <-events:
			if !t.handle(ev) {
				laserflow.Logger().Info("termhost: quit", "frames", t.ctrl.Frames())
				return nil
			}
		case <-ticker.C:
			t.tick()
		}
	}
}

type term struct {
	screen    tcell.Screen
	cellWidth int
	queue     *laserflow.FrameQueue
	surface   *laserflow.ImageSurface
	ctrl      *laserflow.Controller
	start     time.Time

	cols, rows int
	cells      *image.RGBA
	regrid     bool // grid changed since the last paint
}

func newTerm(screen tcell.Screen, opts Options) *term {
	t := &term{
		screen:    screen,
		cellWidth: opts.CellWidth,
		queue:     laserflow.NewFrameQueue(),
		surface:   laserflow.NewImageSurface(),
		start:     time.Now(),
	}
	// Terminal cells have no device pixel ratio of their own.
	copts := append([]laserflow.Option{
		laserflow.WithScheduler(t.queue),
		laserflow.WithMaxPixelRatio(1),
	}, opts.Controller...)
	t.ctrl = laserflow.New(t.surface, copts...)

	t.cols, t.rows = screen.Size()
	t.ctrl.Resize(t.logicalSize(t.cols, t.rows))
	t.ctrl.Start()
	return t
}

// logicalSize returns the logical pixel size of a cols x rows grid.
func (t *term) logicalSize(cols, rows int) (w, h float64) {
	return float64(cols * t.cellWidth), float64(rows * 2 * t.cellWidth)
}

// handle reacts to one terminal event. It returns false to quit.
func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			t.ctrl.SetPaused(!t.ctrl.Paused())
		}
	case *tcell.EventResize:
		t.cols, t.rows = ev.Size()
		t.regrid = true
		t.screen.Sync()
		t.ctrl.RequestResize(t.logicalSize(t.cols, t.rows))
	case *tcell.EventFocus:
		t.ctrl.SetHidden(!ev.Focused)
	}
	return true
}

// tick fires the frame pulse and repaints the cells if the surface
// changed or the grid was resized. A resized grid shows the last surface
// until the debounced resize redraws it.
func (t *term) tick() {
	rev := t.ctrl.Revision()
	t.queue.Fire(time.Since(t.start))
	if t.ctrl.Revision() == rev && !t.regrid {
		return
	}
	pix, w, h := t.surface.Pixels()
	if pix == nil {
		return
	}
	t.regrid = false
	t.cells = downsample(t.cells, pix, w, h, t.cols, t.rows*2)
	paint(t.screen, t.cells)
	t.screen.Show()
}

// downsample scales a w x h premultiplied RGBA buffer to cols x rows,
// reusing dst when it already has that size.
func downsample(dst *image.RGBA, pix []byte, w, h, cols, rows int) *image.RGBA {
	if cols <= 0 || rows <= 0 {
		return dst
	}
	if dst == nil || dst.Rect.Dx() != cols || dst.Rect.Dy() != rows {
		dst = image.NewRGBA(image.Rect(0, 0, cols, rows))
	}
	src := &image.RGBA{Pix: pix, Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	draw.ApproxBiLinear.Scale(dst, dst.Rect, src, src.Rect, draw.Src, nil)
	return dst
}

// paint writes img onto the screen, two image rows per cell row. Colors
// are premultiplied, which is the same as compositing over black.
func paint(screen tcell.Screen, img *image.RGBA) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for y := 0; y+1 < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			style := tcell.StyleDefault.
				Foreground(cellColor(img, x, y)).
				Background(cellColor(img, x, y+1))
			screen.SetContent(x, y/2, '▀', nil, style)
		}
	}
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
