package laserflow

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/laserflow/anim"
)

// Config describes one LaserFlow instance. Build it with [NewConfig] and
// adjust it for the running device with [ResolveConfig]. A Config is
// treated as immutable once handed to a [Controller].
type Config struct {
	// BeamCount is the number of beams alive at any time.
	BeamCount int
	// Speed multiplies the per-beam speed roll of [2, 6] px per nominal frame.
	Speed float64
	// Colors is the palette beams draw from, with replacement.
	// Six-digit hex colors ("#rrggbb") get the alpha fade; see BeamGradient.
	Colors []string

	MinLineWidth, MaxLineWidth float64
	MinLength, MaxLength       float64
	MinOpacity, MaxOpacity     float64

	// GlowEnabled draws a soft halo under every beam, GlowBlur px wide.
	GlowEnabled bool
	GlowBlur    float64

	// PauseOnHidden stops the frame loop while the host reports the
	// surface as hidden.
	PauseOnHidden bool
	// AdaptivePerformance halves BeamCount and disables glow on devices
	// classified as low-end by anim.IsLowEndDevice.
	AdaptivePerformance bool
}

// DefaultColors is the default beam palette: cyan, blue, purple,
// magenta, green and pink.
var DefaultColors = []string{
	"#00ffff",
	"#00a8ff",
	"#a855f7",
	"#ff00ff",
	"#00ff88",
	"#ff6bd6",
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BeamCount:           20,
		Speed:               1,
		Colors:              slices.Clone(DefaultColors),
		MinLineWidth:        1,
		MaxLineWidth:        4,
		MinLength:           80,
		MaxLength:           350,
		MinOpacity:          0.2,
		MaxOpacity:          0.7,
		GlowEnabled:         true,
		GlowBlur:            15,
		PauseOnHidden:       true,
		AdaptivePerformance: true,
	}
}

// ConfigOption overrides one part of the default configuration.
//
// Example:
//
//	cfg := laserflow.NewConfig(
//	    laserflow.WithBeamCount(40),
//	    laserflow.WithColors("#ff0000", "#00ff00"),
//	)
type ConfigOption func(*Config)

// NewConfig returns DefaultConfig with opts applied in order.
func NewConfig(opts ...ConfigOption) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithBeamCount sets the number of beams.
func WithBeamCount(n int) ConfigOption {
	return func(c *Config) { c.BeamCount = n }
}

// WithSpeed sets the speed multiplier.
func WithSpeed(speed float64) ConfigOption {
	return func(c *Config) { c.Speed = speed }
}

// WithColors replaces the palette. The slice is copied.
func WithColors(colors ...string) ConfigOption {
	return func(c *Config) { c.Colors = slices.Clone(colors) }
}

// WithLineWidth sets the stroke width range.
func WithLineWidth(min, max float64) ConfigOption {
	return func(c *Config) { c.MinLineWidth, c.MaxLineWidth = min, max }
}

// WithLength sets the beam length range.
func WithLength(min, max float64) ConfigOption {
	return func(c *Config) { c.MinLength, c.MaxLength = min, max }
}

// WithOpacity sets the peak opacity range.
func WithOpacity(min, max float64) ConfigOption {
	return func(c *Config) { c.MinOpacity, c.MaxOpacity = min, max }
}

// WithGlow enables or disables the glow and sets its blur radius.
func WithGlow(enabled bool, blur float64) ConfigOption {
	return func(c *Config) { c.GlowEnabled, c.GlowBlur = enabled, blur }
}

// WithPauseOnHidden sets whether hiding the surface pauses the loop.
func WithPauseOnHidden(pause bool) ConfigOption {
	return func(c *Config) { c.PauseOnHidden = pause }
}

// WithAdaptivePerformance sets whether low-end devices get a reduced
// configuration.
func WithAdaptivePerformance(adaptive bool) ConfigOption {
	return func(c *Config) { c.AdaptivePerformance = adaptive }
}

// ResolveConfig applies the adaptive performance policy for dev and
// returns the result; cfg is not modified.
func ResolveConfig(cfg Config, dev anim.DeviceInfo) Config {
	cfg.Colors = slices.Clone(cfg.Colors)
	if cfg.AdaptivePerformance && anim.IsLowEndDevice(dev) {
		cfg.BeamCount = int(math.Floor(float64(cfg.BeamCount) * 0.5))
		cfg.GlowEnabled = false
	}
	return cfg
}

// Configuration errors reported by Validate.
var (
	ErrBeamCount      = errors.New("laserflow: beam count must be positive")
	ErrSpeed          = errors.New("laserflow: speed must be positive")
	ErrNoColors       = errors.New("laserflow: palette must not be empty")
	ErrLineWidthRange = errors.New("laserflow: line width range must be positive and ordered")
	ErrLengthRange    = errors.New("laserflow: length range must be positive and ordered")
	ErrOpacityRange   = errors.New("laserflow: opacity range must be ordered within [0, 1]")
	ErrGlowBlur       = errors.New("laserflow: glow blur must not be negative")
)

// Validate reports every constraint cfg violates, joined with errors.Join.
// The animation still runs with an invalid Config; the output merely
// looks odd.
func (c Config) Validate() error {
	var errs []error
	if c.BeamCount <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrBeamCount, c.BeamCount))
	}
	if c.Speed <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrSpeed, c.Speed))
	}
	if len(c.Colors) == 0 {
		errs = append(errs, ErrNoColors)
	}
	if c.MinLineWidth <= 0 || c.MinLineWidth > c.MaxLineWidth {
		errs = append(errs, fmt.Errorf("%w: got [%v, %v]", ErrLineWidthRange, c.MinLineWidth, c.MaxLineWidth))
	}
	if c.MinLength <= 0 || c.MinLength > c.MaxLength {
		errs = append(errs, fmt.Errorf("%w: got [%v, %v]", ErrLengthRange, c.MinLength, c.MaxLength))
	}
	if c.MinOpacity < 0 || c.MaxOpacity > 1 || c.MinOpacity > c.MaxOpacity {
		errs = append(errs, fmt.Errorf("%w: got [%v, %v]", ErrOpacityRange, c.MinOpacity, c.MaxOpacity))
	}
	if c.GlowBlur < 0 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrGlowBlur, c.GlowBlur))
	}
	return errors.Join(errs...)
}

// sanitize returns cfg with an empty palette replaced by DefaultColors so
// color selection always has something to pick from.
func sanitize(cfg Config) Config {
	if len(cfg.Colors) == 0 {
		Logger().Warn("laserflow: empty palette, using default colors")
		cfg.Colors = slices.Clone(DefaultColors)
	}
	return cfg
}
