package laserflow

import (
	"time"

	"github.com/gogpu/laserflow/anim"
)

// DefaultResizeDebounce is the quiet period RequestResize waits for
// before rebuilding the beam population.
const DefaultResizeDebounce = 200 * time.Millisecond

// Option configures a Controller during creation.
//
// Example:
//
//	queue := laserflow.NewFrameQueue()
//	c := laserflow.New(surface,
//	    laserflow.WithConfig(laserflow.NewConfig(laserflow.WithBeamCount(30))),
//	    laserflow.WithScheduler(queue),
//	)
type Option func(*controllerOptions)

type controllerOptions struct {
	config         Config
	scheduler      Scheduler
	device         *anim.DeviceInfo
	source         anim.Source
	maxPixelRatio  float64
	resizeDebounce time.Duration
	paused         bool
}

func defaultControllerOptions() controllerOptions {
	return controllerOptions{
		config:         DefaultConfig(),
		scheduler:      nil, // a private FrameQueue
		device:         nil, // probed with anim.ProbeDevice
		source:         anim.GlobalSource(),
		maxPixelRatio:  anim.DefaultMaxPixelRatio,
		resizeDebounce: DefaultResizeDebounce,
	}
}

// WithConfig sets the caller's configuration. The adaptive performance
// policy is applied on top of it.
func WithConfig(cfg Config) Option {
	return func(o *controllerOptions) {
		o.config = cfg
	}
}

// WithScheduler sets the frame scheduler. Without it the Controller
// creates its own FrameQueue, available from Controller.Queue.
func WithScheduler(s Scheduler) Option {
	return func(o *controllerOptions) {
		o.scheduler = s
	}
}

// WithDevice replaces the probed device capabilities. Hosts use it to
// report the display's pixel ratio; tests use it to simulate low-end
// hardware.
func WithDevice(d anim.DeviceInfo) Option {
	return func(o *controllerOptions) {
		o.device = &d
	}
}

// WithSource sets the random source beams are drawn from.
func WithSource(src anim.Source) Option {
	return func(o *controllerOptions) {
		if src != nil {
			o.source = src
		}
	}
}

// WithMaxPixelRatio caps the backing store density.
func WithMaxPixelRatio(ratio float64) Option {
	return func(o *controllerOptions) {
		o.maxPixelRatio = ratio
	}
}

// WithResizeDebounce sets the RequestResize quiet period.
func WithResizeDebounce(d time.Duration) Option {
	return func(o *controllerOptions) {
		o.resizeDebounce = d
	}
}

// WithPaused creates the Controller with the external pause flag set.
func WithPaused(paused bool) Option {
	return func(o *controllerOptions) {
		o.paused = paused
	}
}
