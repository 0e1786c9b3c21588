package laserflow

import "github.com/gogpu/gg"

// glowPasses is the number of halo strokes drawn under a glowing beam.
const glowPasses = 3

// Fade profile along a beam, as (offset, fraction of peak opacity).
var fadeStops = [...]struct{ offset, alpha float64 }{
	{0, 0},
	{0.1, 0.5},
	{0.5, 1},
	{0.9, 0.5},
	{1, 0},
}

// BeamGradient returns the stroke brush for b.
//
// For six-digit hex colors this is a linear gradient from the tail to the
// head of the segment that fades in over the first tenth, peaks at
// b.Opacity in the middle and fades out over the last tenth. Any other
// color is returned as a solid brush at its own alpha, without the fade.
func BeamGradient(b Beam) gg.Brush {
	rgb, ok := ParseColor(b.Color)
	if !ok {
		return gg.Solid(rgb)
	}
	end := b.End()
	g := gg.NewLinearGradientBrush(b.X, b.Y, end.X, end.Y)
	for _, s := range fadeStops {
		g.AddColorStop(s.offset, withAlpha(rgb, b.Opacity*s.alpha))
	}
	return g
}

// paintState is the part of the gg drawing state a beam changes and that
// Context.Push does not save.
type paintState struct {
	brush  gg.Brush
	stroke gg.Stroke
}

func savePaint(dc *gg.Context) paintState {
	return paintState{brush: dc.StrokeBrush(), stroke: dc.GetStroke()}
}

func (s paintState) restore(dc *gg.Context) {
	dc.SetStrokeBrush(s.brush)
	dc.SetStroke(s.stroke)
}

// RenderBeam strokes b onto dc with round caps. Drawing state is restored
// afterwards, so beams never inherit each other's brush or width. A nil
// dc is ignored.
func RenderBeam(dc *gg.Context, b Beam, cfg Config) {
	if dc == nil {
		return
	}
	saved := savePaint(dc)
	dc.Push()
	defer func() {
		dc.Pop()
		saved.restore(dc)
	}()

	end := b.End()
	if cfg.GlowEnabled && cfg.GlowBlur > 0 {
		drawGlow(dc, b, end, cfg.GlowBlur)
	}

	dc.SetStrokeBrush(BeamGradient(b))
	dc.SetStroke(roundStroke(b.LineWidth))
	dc.MoveTo(b.X, b.Y)
	dc.LineTo(end.X, end.Y)
	if err := dc.Stroke(); err != nil {
		Logger().Debug("laserflow: beam stroke failed", "beam", b, "err", err)
	}
}

// drawGlow approximates a shadow blur in the beam's color with a few
// wide, faint strokes, widest first.
func drawGlow(dc *gg.Context, b Beam, end gg.Point, blur float64) {
	rgb, _ := ParseColor(b.Color)
	for i := glowPasses; i >= 1; i-- {
		dc.SetStrokeBrush(gg.Solid(withAlpha(rgb, rgb.A*0.35*b.Opacity/float64(i))))
		dc.SetStroke(roundStroke(b.LineWidth + blur*float64(i)/glowPasses))
		dc.MoveTo(b.X, b.Y)
		dc.LineTo(end.X, end.Y)
		if err := dc.Stroke(); err != nil {
			Logger().Debug("laserflow: glow stroke failed", "beam", b, "err", err)
			return
		}
	}
}

func roundStroke(width float64) gg.Stroke {
	return gg.DefaultStroke().WithWidth(width).WithCap(gg.LineCapRound)
}

// RenderBeams draws beams in slice order, so later beams end up on top.
func RenderBeams(dc *gg.Context, beams []Beam, cfg Config) {
	for _, b := range beams {
		RenderBeam(dc, b, cfg)
	}
}
