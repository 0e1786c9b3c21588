package laserflow

import (
	"log/slog"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/laserflow/anim"
)

// NominalFrameMs is the frame duration, in milliseconds, that beam speeds
// are expressed against (60 Hz).
const NominalFrameMs = 16.67

// respawnMargin is added to a beam's length to form the padded viewport.
const respawnMargin = 100

// Beam is one animated line segment. X and Y are in logical pixels and
// mark the tail of the segment; the head lies Length pixels along Angle.
//
// Only X and Y change while a beam is alive. When it leaves the padded
// viewport it is replaced by a fresh beam carrying the same ID.
type Beam struct {
	ID        int
	X, Y      float64
	Length    float64
	Angle     float64 // radians, direction of travel
	Speed     float64 // px per nominal frame
	Color     string
	Opacity   float64 // peak alpha at the segment midpoint
	LineWidth float64
}

// End returns the head of the segment.
func (b Beam) End() gg.Point {
	return gg.Pt(
		b.X+math.Cos(b.Angle)*b.Length,
		b.Y+math.Sin(b.Angle)*b.Length,
	)
}

// LogValue implements slog.LogValuer.
func (b Beam) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("id", b.ID),
		slog.Float64("x", b.X),
		slog.Float64("y", b.Y),
		slog.Float64("angle", b.Angle),
		slog.Float64("length", b.Length),
		slog.String("color", b.Color),
	)
}

// NewBeam creates a beam that starts outside the [0, width] x [0, height]
// area and travels into it. The base direction is left-to-right or
// right-to-left with equal probability, tilted by up to 30 degrees either
// way. Rightward beams start 50 to MaxLength px left of the area,
// leftward beams the same distance right of it.
//
// Values are drawn from src in a fixed order: tilt, direction, x offset,
// y, length, speed, color, opacity, line width. An empty palette draws
// from DefaultColors.
func NewBeam(id int, width, height float64, cfg Config, src anim.Source) Beam {
	tilt := anim.RandomRange(src, -30, 30)
	base := 180.0
	if anim.RandomInt(src, 0, 1) == 0 {
		base = 0
	}

	offset := anim.RandomRange(src, 50, cfg.MaxLength)
	x := width + offset
	if base == 0 {
		x = -offset
	}
	y := anim.RandomRange(src, -50, height+50)

	palette := cfg.Colors
	if len(palette) == 0 {
		palette = DefaultColors
	}

	return Beam{
		ID:        id,
		X:         x,
		Y:         y,
		Angle:     anim.DegToRad(base + tilt),
		Length:    anim.RandomRange(src, cfg.MinLength, cfg.MaxLength),
		Speed:     anim.RandomRange(src, 2, 6) * cfg.Speed,
		Color:     palette[anim.RandomInt(src, 0, len(palette)-1)],
		Opacity:   anim.RandomRange(src, cfg.MinOpacity, cfg.MaxOpacity),
		LineWidth: anim.RandomRange(src, cfg.MinLineWidth, cfg.MaxLineWidth),
	}
}

// InitialBeams creates the starting population of cfg.BeamCount beams
// with IDs 0..n-1. Unlike NewBeam, X is spread over
// [-MaxLength, width+MaxLength] so the area is populated from the first
// frame.
func InitialBeams(width, height float64, cfg Config, src anim.Source) []Beam {
	n := max(cfg.BeamCount, 0)
	beams := make([]Beam, n)
	for i := range beams {
		b := NewBeam(i, width, height, cfg, src)
		b.X = anim.RandomRange(src, -cfg.MaxLength, width+cfg.MaxLength)
		beams[i] = b
	}
	return beams
}

// UpdateBeam advances b by deltaMs milliseconds of travel. Speed is
// scaled by deltaMs/NominalFrameMs, so motion does not depend on the
// frame rate. If the new position lies outside the viewport padded by
// Length+100 px on every side, a new beam with the same ID is returned
// instead.
func UpdateBeam(b Beam, width, height float64, cfg Config, deltaMs float64, src anim.Source) Beam {
	next, _ := advance(b, width, height, cfg, deltaMs, src)
	return next
}

// advance is UpdateBeam that also reports whether a respawn happened.
func advance(b Beam, width, height float64, cfg Config, deltaMs float64, src anim.Source) (Beam, bool) {
	velocity := b.Speed * (deltaMs / NominalFrameMs)
	x := b.X + math.Cos(b.Angle)*velocity
	y := b.Y + math.Sin(b.Angle)*velocity

	padding := b.Length + respawnMargin
	if x < -padding || x > width+padding || y < -padding || y > height+padding {
		return NewBeam(b.ID, width, height, cfg, src), true
	}

	b.X, b.Y = x, y
	return b, false
}
