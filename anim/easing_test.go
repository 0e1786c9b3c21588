package anim

import "testing"

func TestEasingEndpoints(t *testing.T) {
	curves := map[string]EasingFunc{
		"EaseInQuad":     EaseInQuad,
		"EaseOutQuad":    EaseOutQuad,
		"EaseInOutQuad":  EaseInOutQuad,
		"EaseInCubic":    EaseInCubic,
		"EaseOutCubic":   EaseOutCubic,
		"EaseInOutCubic": EaseInOutCubic,
		"EaseInSine":     EaseInSine,
		"EaseOutSine":    EaseOutSine,
		"EaseInOutSine":  EaseInOutSine,
		"EaseInExpo":     EaseInExpo,
		"EaseOutExpo":    EaseOutExpo,
	}
	for name, fn := range curves {
		t.Run(name, func(t *testing.T) {
			if got := fn(0); !approx(got, 0) {
				t.Errorf("%s(0) = %v, want 0", name, got)
			}
			if got := fn(1); !approx(got, 1) {
				t.Errorf("%s(1) = %v, want 1", name, got)
			}
			prev := fn(0)
			for i := 1; i <= 20; i++ {
				v := fn(float64(i) / 20)
				if v < prev-1e-12 {
					t.Errorf("%s not monotonic at t=%v: %v < %v", name, float64(i)/20, v, prev)
				}
				prev = v
			}
		})
	}
}

func TestEaseInOutMidpoints(t *testing.T) {
	for name, fn := range map[string]EasingFunc{
		"EaseInOutQuad":  EaseInOutQuad,
		"EaseInOutCubic": EaseInOutCubic,
		"EaseInOutSine":  EaseInOutSine,
	} {
		if got := fn(0.5); !approx(got, 0.5) {
			t.Errorf("%s(0.5) = %v, want 0.5", name, got)
		}
	}
}
