package laserflow

import (
	"math"
	"math/rand/v2"
	"slices"
	"testing"
)

func TestNewBeam_SpawnsOutside(t *testing.T) {
	cfg := DefaultConfig()
	r := rand.New(rand.NewPCG(7, 11))
	const w, h = 800.0, 600.0

	for i := 0; i < 2000; i++ {
		b := NewBeam(i, w, h, cfg, r)
		if !(b.X < 0 || b.X > w) {
			t.Fatalf("beam %d spawned inside: x=%v", i, b.X)
		}
		if b.Y < -50 || b.Y > h+50 {
			t.Fatalf("beam %d y=%v outside [-50, %v]", i, b.Y, h+50)
		}
		rightward := math.Cos(b.Angle) > 0
		if rightward != (b.X < 0) {
			t.Fatalf("beam %d travels away from the area: x=%v angle=%v", i, b.X, b.Angle)
		}
		if tilt := math.Abs(math.Atan2(math.Sin(b.Angle), math.Abs(math.Cos(b.Angle)))); tilt > math.Pi/6+1e-9 {
			t.Fatalf("beam %d tilt %v exceeds 30 degrees", i, tilt)
		}
	}
}

func TestNewBeam_AttributeBounds(t *testing.T) {
	cfg := NewConfig(
		WithColors("#ff0000", "#00ff00", "#0000ff"),
		WithLineWidth(0.5, 2),
		WithLength(40, 90),
		WithOpacity(0.1, 0.4),
		WithSpeed(1.5),
	)
	r := rand.New(rand.NewPCG(3, 5))
	seen := map[string]bool{}

	for i := 0; i < 2000; i++ {
		b := NewBeam(i, 640, 480, cfg, r)
		if b.ID != i {
			t.Fatalf("ID = %d, want %d", b.ID, i)
		}
		if b.Length < cfg.MinLength || b.Length > cfg.MaxLength {
			t.Fatalf("Length = %v out of range", b.Length)
		}
		if b.Opacity < cfg.MinOpacity || b.Opacity > cfg.MaxOpacity {
			t.Fatalf("Opacity = %v out of range", b.Opacity)
		}
		if b.LineWidth < cfg.MinLineWidth || b.LineWidth > cfg.MaxLineWidth {
			t.Fatalf("LineWidth = %v out of range", b.LineWidth)
		}
		if b.Speed < 2*cfg.Speed || b.Speed > 6*cfg.Speed {
			t.Fatalf("Speed = %v out of range", b.Speed)
		}
		if !slices.Contains(cfg.Colors, b.Color) {
			t.Fatalf("Color = %q not in palette", b.Color)
		}
		seen[b.Color] = true
	}
	if len(seen) != len(cfg.Colors) {
		t.Errorf("palette coverage = %v, want all colors", seen)
	}
}

// Scenario: one beam, forced rightward with no tilt and the minimum
// speed roll, moves exactly 2 px in one nominal frame.
func TestNewBeam_ForcedRightward(t *testing.T) {
	cfg := NewConfig(
		WithBeamCount(1),
		WithSpeed(1),
		WithLength(100, 100),
		WithColors("#ff0000"),
	)
	// tilt, direction, x offset, y, length, speed, color, opacity, width
	src := newSeq(0.5, 0, 0.5, 0.5, 0.5, 0, 0, 0.5, 0.5)
	b := NewBeam(0, 800, 600, cfg, src)

	if b.Angle != 0 {
		t.Errorf("Angle = %v, want 0", b.Angle)
	}
	if b.X < -100 || b.X > -50 {
		t.Errorf("X = %v, want in [-100, -50]", b.X)
	}
	if b.Length != 100 || b.Color != "#ff0000" || b.Speed != 2 {
		t.Errorf("Length, Color, Speed = %v, %q, %v; want 100, #ff0000, 2", b.Length, b.Color, b.Speed)
	}

	moved := UpdateBeam(b, 800, 600, cfg, NominalFrameMs, src)
	if dx := moved.X - b.X; dx != 2 {
		t.Errorf("moved by %v, want exactly 2", dx)
	}
	if moved.Y != b.Y {
		t.Errorf("Y changed from %v to %v", b.Y, moved.Y)
	}
}

func TestNewBeam_ForcedLeftward(t *testing.T) {
	cfg := NewConfig(WithLength(100, 200))
	// Direction 0.5 selects RandomInt(0, 1) == 1, the leftward branch.
	b := NewBeam(3, 800, 600, cfg, newSeq(0.5, 0.5, 0, 0.5))
	if !near(b.Angle, math.Pi, 1e-12) {
		t.Errorf("Angle = %v, want pi", b.Angle)
	}
	if b.X != 850 {
		t.Errorf("X = %v, want width+50", b.X)
	}
}

func TestInitialBeams(t *testing.T) {
	cfg := NewConfig(WithBeamCount(50))
	r := rand.New(rand.NewPCG(1, 1))
	beams := InitialBeams(300, 200, cfg, r)

	if len(beams) != 50 {
		t.Fatalf("len = %d, want 50", len(beams))
	}
	inside := 0
	for i, b := range beams {
		if b.ID != i {
			t.Errorf("beams[%d].ID = %d", i, b.ID)
		}
		if b.X < -cfg.MaxLength || b.X > 300+cfg.MaxLength {
			t.Errorf("beams[%d].X = %v outside the spread band", i, b.X)
		}
		if b.X >= 0 && b.X <= 300 {
			inside++
		}
	}
	if inside == 0 {
		t.Error("no beam starts over the visible area")
	}

	if got := InitialBeams(300, 200, NewConfig(WithBeamCount(-1)), r); len(got) != 0 {
		t.Errorf("negative count produced %d beams", len(got))
	}
}

func TestUpdateBeam_TimeScaling(t *testing.T) {
	cfg := DefaultConfig()
	b := Beam{ID: 1, X: 400, Y: 300, Length: 100, Angle: 0.3, Speed: 3, Color: "#00ffff"}

	one := UpdateBeam(b, 800, 600, cfg, NominalFrameMs, constSource(0))
	two := UpdateBeam(b, 800, 600, cfg, 2*NominalFrameMs, constSource(0))

	d1 := math.Hypot(one.X-b.X, one.Y-b.Y)
	d2 := math.Hypot(two.X-b.X, two.Y-b.Y)
	if !near(d1, 3, 1e-9) {
		t.Errorf("distance at nominal delta = %v, want 3", d1)
	}
	if !near(d2, 2*d1, 1e-9) {
		t.Errorf("distance at double delta = %v, want %v", d2, 2*d1)
	}
	if one.Length != b.Length || one.Angle != b.Angle || one.Color != b.Color || one.ID != b.ID {
		t.Errorf("non-position attributes changed: %+v", one)
	}
}

func TestUpdateBeam_RespawnBoundary(t *testing.T) {
	cfg := DefaultConfig()
	const w, h = 800.0, 600.0
	base := Beam{ID: 9, Y: 300, Length: 120, Angle: 0, Speed: 4, Color: "#ff00ff", Opacity: 0.5, LineWidth: 2}

	tests := []struct {
		name    string
		x       float64
		respawn bool
	}{
		{"just past right padding", w + base.Length + 100 + 1e-6, true},
		{"inside right padding", w + base.Length + 99, false},
		{"exactly on padding", w + base.Length + 100, false},
		{"just past left padding", -(base.Length + 100) - 1e-6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := base
			b.X = tt.x
			// Zero elapsed time isolates the bounds test from motion.
			// All-zero draws respawn rightward at x = -50.
			next, respawned := advance(b, w, h, cfg, 0, constSource(0))
			if respawned != tt.respawn {
				t.Fatalf("respawned = %v, want %v", respawned, tt.respawn)
			}
			if next.ID != b.ID {
				t.Errorf("ID = %d, want %d", next.ID, b.ID)
			}
			if tt.respawn {
				if next.X != -50 || next.Length != cfg.MinLength {
					t.Errorf("attributes not re-rolled: %+v", next)
				}
			} else if next != b {
				t.Errorf("beam changed without motion: %+v", next)
			}
		})
	}

	// Vertical bounds count too.
	b := base
	b.X, b.Y = 400, h+base.Length+100.5
	if _, respawned := advance(b, w, h, cfg, 0, constSource(0)); !respawned {
		t.Error("beam below the padded area was not respawned")
	}
}

func TestUpdateBeam_IdentitySurvivesRespawn(t *testing.T) {
	cfg := DefaultConfig()
	r := rand.New(rand.NewPCG(42, 42))
	b := NewBeam(17, 800, 600, cfg, r)
	first := b

	respawns := 0
	for i := 0; i < 10000 && respawns < 3; i++ {
		var again bool
		b, again = advance(b, 800, 600, cfg, 100, r)
		if again {
			respawns++
		}
		if b.ID != 17 {
			t.Fatalf("ID = %d after %d updates, want 17", b.ID, i)
		}
	}
	if respawns < 3 {
		t.Fatalf("only %d respawns, beam never left the area", respawns)
	}
	if b == first {
		t.Error("respawned beam is identical to the first one")
	}
}

func TestBeam_End(t *testing.T) {
	b := Beam{X: 10, Y: 20, Length: 5, Angle: math.Pi / 2}
	end := b.End()
	if !near(end.X, 10, 1e-12) || !near(end.Y, 25, 1e-12) {
		t.Errorf("End() = %v, want (10, 25)", end)
	}
}

func TestNewBeam_EmptyPalette(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Colors = nil

	b := NewBeam(3, 800, 600, cfg, constSource(0.5))
	if !slices.Contains(DefaultColors, b.Color) {
		t.Errorf("Color = %q, want one of DefaultColors", b.Color)
	}
	b.X = 5000
	if next := UpdateBeam(b, 800, 600, cfg, NominalFrameMs, constSource(0)); next.Color != DefaultColors[0] {
		t.Errorf("respawned Color = %q, want %q", next.Color, DefaultColors[0])
	}
}
