package laserflow

import (
	"math"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/laserflow/anim"
)

// State is the lifecycle state of a Controller.
type State int

const (
	// StateUninitialized means no size has been set yet.
	StateUninitialized State = iota
	// StateSized means the surface is sized and the loop was never
	// started, or was stopped with Stop.
	StateSized
	// StateRunning means a frame callback is scheduled.
	StateRunning
	// StatePaused means the loop is held by the pause flag, by the
	// surface being hidden, or by a missing drawing context. A loop held
	// by a missing context restarts on the next Resize that yields one.
	StatePaused
	// StateDisposed means Dispose was called. It is terminal.
	StateDisposed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateSized:
		return "Sized"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateDisposed:
		return "Disposed"
	default:
		return "State(unknown)"
	}
}

type logicalSize struct {
	width, height float64
}

// Controller owns a Surface, the beam population and the frame loop.
// Each frame it clears the surface, advances every beam by the elapsed
// time and draws them back to front, then schedules the next frame.
//
// Controller is NOT safe for concurrent use. All methods must be called
// from the goroutine that runs the scheduler's callbacks (for a
// FrameQueue, the goroutine calling Fire). RequestResize and
// ResizePending are the exceptions; see their documentation.
//
// No method reports an error. Missing contexts, invalid sizes and odd
// configurations degrade the picture, never the host.
type Controller struct {
	surface   Surface
	scheduler Scheduler
	queue     *FrameQueue
	src       anim.Source
	device    anim.DeviceInfo
	maxRatio  float64
	ratio     float64

	config Config
	beams  []Beam
	width  float64
	height float64
	sized  bool

	running    bool
	handle     FrameHandle
	generation uint64
	last       time.Duration
	hasLast    bool
	frames     uint64
	revision   uint64

	stopped  bool
	starved  bool // halted by a tick without a drawing context
	paused   bool
	hidden   bool
	disposed bool

	resize *anim.Debouncer[logicalSize]

	// Size delivered by the debouncer, waiting for the frame goroutine.
	pendingMu sync.Mutex
	pending   *logicalSize
}

// New creates a Controller drawing on surface. The loop does not run
// until Resize and Start are called.
func New(surface Surface, opts ...Option) *Controller {
	o := defaultControllerOptions()
	for _, opt := range opts {
		opt(&o)
	}

	c := &Controller{
		surface:   surface,
		scheduler: o.scheduler,
		src:       o.source,
		maxRatio:  o.maxPixelRatio,
		paused:    o.paused,
		stopped:   true,
	}
	if c.scheduler == nil {
		c.queue = NewFrameQueue()
		c.scheduler = c.queue
	} else if q, ok := o.scheduler.(*FrameQueue); ok {
		c.queue = q
	}
	if o.device != nil {
		c.device = *o.device
	} else {
		c.device = anim.ProbeDevice()
	}
	c.ratio = anim.OptimalPixelRatio(c.device.PixelRatio, c.maxRatio)
	c.config = c.resolve(o.config)

	c.resize = anim.Debounce(func(s logicalSize) {
		c.pendingMu.Lock()
		c.pending = &s
		c.pendingMu.Unlock()
		if d, ok := c.scheduler.(Dispatcher); ok {
			d.Dispatch(func() { c.FlushResize() })
		}
	}, o.resizeDebounce)
	return c
}

func (c *Controller) resolve(cfg Config) Config {
	if err := cfg.Validate(); err != nil {
		Logger().Warn("laserflow: invalid configuration", "err", err)
	}
	resolved := sanitize(ResolveConfig(cfg, c.device))
	if resolved.BeamCount != cfg.BeamCount || resolved.GlowEnabled != cfg.GlowEnabled {
		Logger().Debug("laserflow: reduced quality for low-end device",
			"beams", resolved.BeamCount, "glow", resolved.GlowEnabled)
	}
	return resolved
}

// Resize sets the logical size, resizes the surface's backing store to
// size times the pixel ratio, installs the pixel ratio as the drawing
// transform and rebuilds the beam population from scratch. A size still
// waiting from RequestResize is discarded.
//
// While the loop is held, the new population is drawn once without
// advancing, so a paused animation does not go blank.
func (c *Controller) Resize(width, height float64) {
	if c.disposed {
		return
	}
	c.resize.Cancel()
	c.takePending()
	c.resizeTo(width, height)
}

func (c *Controller) resizeTo(width, height float64) {
	c.width, c.height = math.Max(width, 0), math.Max(height, 0)
	c.sized = true
	c.applyBacking()
	c.beams = InitialBeams(c.width, c.height, c.config, c.src)
	Logger().Debug("laserflow: resized",
		"width", c.width, "height", c.height, "ratio", c.ratio, "beams", len(c.beams))

	if c.running {
		return
	}
	if c.starved && c.context() != nil {
		c.starved = false
		c.resume()
		if c.running {
			return
		}
	}
	c.drawStill()
}

// drawStill renders the population where it stands.
func (c *Controller) drawStill() {
	dc := c.context()
	if dc == nil {
		return
	}
	dc.Clear()
	RenderBeams(dc, c.beams, c.config)
	c.revision++
}

func (c *Controller) applyBacking() {
	if c.surface == nil {
		return
	}
	bw := int(math.Ceil(c.width * c.ratio))
	bh := int(math.Ceil(c.height * c.ratio))
	if bw <= 0 || bh <= 0 {
		Logger().Debug("laserflow: empty surface, backing store unchanged", "width", bw, "height", bh)
		return
	}
	if err := c.surface.Resize(bw, bh); err != nil {
		Logger().Debug("laserflow: surface resize failed", "err", err)
		return
	}
	if dc := c.surface.Context(); dc != nil {
		dc.Identity()
		dc.Scale(c.ratio, c.ratio)
	}
}

// RequestResize is Resize behind a trailing debounce (200ms unless set
// with WithResizeDebounce), for hosts that report every intermediate
// size of a drag-resize. It may be called from any goroutine.
//
// The resize itself always happens on the frame goroutine: in the next
// frame callback, in FlushResize, or, when the scheduler is a
// Dispatcher, in a dispatched task.
func (c *Controller) RequestResize(width, height float64) {
	c.resize.Call(logicalSize{width, height})
}

// FlushResize applies the size delivered by RequestResize's debounce, if
// any, and reports whether it did. Hosts with a plain Scheduler call it
// from the frame goroutine while the loop is held.
func (c *Controller) FlushResize() bool {
	if c.disposed {
		return false
	}
	s, ok := c.takePending()
	if !ok {
		return false
	}
	c.resizeTo(s.width, s.height)
	return true
}

// ResizePending reports whether a RequestResize has not been applied
// yet, either still debouncing or waiting for FlushResize. It may be
// called from any goroutine.
func (c *Controller) ResizePending() bool {
	if c.resize.Pending() {
		return true
	}
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	return c.pending != nil
}

func (c *Controller) takePending() (logicalSize, bool) {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()
	if c.pending == nil {
		return logicalSize{}, false
	}
	s := *c.pending
	c.pending = nil
	return s, true
}

// SetDevicePixelRatio reports a new device pixel ratio, for example after
// the window moved to another monitor. The surface is resized if the
// effective ratio changed.
func (c *Controller) SetDevicePixelRatio(dpr float64) {
	if c.disposed {
		return
	}
	c.device.PixelRatio = dpr
	ratio := anim.OptimalPixelRatio(dpr, c.maxRatio)
	if ratio == c.ratio {
		return
	}
	c.ratio = ratio
	if c.sized {
		c.resizeTo(c.width, c.height)
	}
}

// Start runs the frame loop. It has no effect while paused or hidden;
// the loop then starts as soon as both are cleared. Calling Start on a
// running Controller does nothing.
func (c *Controller) Start() {
	if c.disposed {
		return
	}
	c.stopped = false
	c.resume()
}

// Stop halts the frame loop until the next Start. A pending frame is
// cancelled and no partial frame is drawn.
func (c *Controller) Stop() {
	if c.disposed {
		return
	}
	c.stopped = true
	c.halt()
}

// SetPaused sets the external pause flag.
func (c *Controller) SetPaused(paused bool) {
	if c.disposed || c.paused == paused {
		return
	}
	c.paused = paused
	if paused {
		c.halt()
		return
	}
	c.resume()
}

// SetHidden reports whether the surface is visible to the user. It only
// has an effect when the configuration has PauseOnHidden set.
func (c *Controller) SetHidden(hidden bool) {
	if c.disposed || !c.config.PauseOnHidden || c.hidden == hidden {
		return
	}
	c.hidden = hidden
	if hidden {
		c.halt()
		return
	}
	c.resume()
}

// SetConfig replaces the configuration. The adaptive performance policy
// is applied again and, if the surface is sized, the population is
// rebuilt. Whether the loop runs is unchanged.
func (c *Controller) SetConfig(cfg Config) {
	if c.disposed {
		return
	}
	c.config = c.resolve(cfg)
	if !c.config.PauseOnHidden && c.hidden {
		c.hidden = false
		c.resume()
	}
	if c.sized {
		c.beams = InitialBeams(c.width, c.height, c.config, c.src)
	}
}

// Dispose cancels any pending frame and detaches the resize debouncer.
// Every later call on the Controller is a no-op.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.halt()
	c.resize.Stop()
	c.takePending()
	c.disposed = true
	hits, misses := colors.Stats()
	Logger().Debug("laserflow: disposed", "frames", c.frames,
		"colors_cached", colors.Len(), "color_cache_hits", hits, "color_cache_misses", misses)
}

func (c *Controller) resume() {
	if c.disposed || c.running || c.stopped || c.paused || c.hidden {
		return
	}
	c.running = true
	c.starved = false
	c.hasLast = false
	c.generation++
	c.handle = c.scheduler.Schedule(c.frame(c.generation))
	Logger().Debug("laserflow: running")
}

func (c *Controller) halt() {
	if c.handle != 0 {
		c.scheduler.Cancel(c.handle)
		c.handle = 0
	}
	if c.running {
		c.running = false
		Logger().Debug("laserflow: halted", "paused", c.paused, "hidden", c.hidden, "stopped", c.stopped)
	}
}

// frame returns the callback for one run of the loop. Callbacks from an
// earlier run carry a stale generation and do nothing, even if the
// scheduler failed to cancel them.
func (c *Controller) frame(generation uint64) FrameFunc {
	return func(now time.Duration) {
		if !c.running || generation != c.generation {
			return
		}
		c.handle = 0
		c.FlushResize()

		dc := c.context()
		if dc == nil {
			c.running = false
			c.starved = true
			Logger().Debug("laserflow: no drawing context, loop held until the next resize")
			return
		}

		delta := NominalFrameMs
		if c.hasLast {
			delta = math.Max(float64(now-c.last)/float64(time.Millisecond), 0)
		}
		c.last, c.hasLast = now, true

		dc.Clear()
		for i := range c.beams {
			c.beams[i] = UpdateBeam(c.beams[i], c.width, c.height, c.config, delta, c.src)
		}
		RenderBeams(dc, c.beams, c.config)
		c.frames++
		c.revision++

		c.handle = c.scheduler.Schedule(c.frame(generation))
	}
}

func (c *Controller) context() *gg.Context {
	if c.surface == nil {
		return nil
	}
	return c.surface.Context()
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	switch {
	case c.disposed:
		return StateDisposed
	case c.running:
		return StateRunning
	case !c.sized:
		return StateUninitialized
	case c.stopped:
		return StateSized
	default:
		return StatePaused
	}
}

// Running reports whether a frame is scheduled.
func (c *Controller) Running() bool { return c.running }

// Paused reports the external pause flag.
func (c *Controller) Paused() bool { return c.paused }

// Hidden reports whether the surface was last reported hidden.
func (c *Controller) Hidden() bool { return c.hidden }

// Config returns the effective configuration, after the adaptive
// performance policy.
func (c *Controller) Config() Config {
	cfg := c.config
	cfg.Colors = slices.Clone(cfg.Colors)
	return cfg
}

// Beams returns a copy of the population in render order.
func (c *Controller) Beams() []Beam { return slices.Clone(c.beams) }

// Size returns the logical size.
func (c *Controller) Size() (width, height float64) { return c.width, c.height }

// PixelRatio returns the effective device pixel ratio.
func (c *Controller) PixelRatio() float64 { return c.ratio }

// Frames returns the number of frames drawn so far.
func (c *Controller) Frames() uint64 { return c.frames }

// Revision changes whenever the surface content changes, including the
// still frame drawn by a resize while the loop is held. Hosts that
// upload the surface compare it before and after a pulse.
func (c *Controller) Revision() uint64 { return c.revision }

// Queue returns the FrameQueue driving the Controller, or nil if the
// scheduler passed to WithScheduler is something else.
func (c *Controller) Queue() *FrameQueue { return c.queue }

// Surface returns the surface the Controller draws on.
func (c *Controller) Surface() Surface { return c.surface }
