package anim

import "math"

// EasingFunc maps normalized time t in [0, 1] to progress.
type EasingFunc func(t float64) float64

// EaseInQuad is quadratic ease-in.
func EaseInQuad(t float64) float64 { return t * t }

// EaseOutQuad is quadratic ease-out.
func EaseOutQuad(t float64) float64 { return t * (2 - t) }

// EaseInOutQuad is quadratic ease-in-out.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// EaseInCubic is cubic ease-in.
func EaseInCubic(t float64) float64 { return t * t * t }

// EaseOutCubic is cubic ease-out.
func EaseOutCubic(t float64) float64 { return 1 - math.Pow(1-t, 3) }

// EaseInOutCubic is cubic ease-in-out.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInSine is sinusoidal ease-in.
func EaseInSine(t float64) float64 { return 1 - math.Cos(t*math.Pi/2) }

// EaseOutSine is sinusoidal ease-out.
func EaseOutSine(t float64) float64 { return math.Sin(t * math.Pi / 2) }

// EaseInOutSine is sinusoidal ease-in-out.
func EaseInOutSine(t float64) float64 { return -(math.Cos(math.Pi*t) - 1) / 2 }

// EaseInExpo is exponential ease-in. It is exactly 0 at t = 0.
func EaseInExpo(t float64) float64 {
	if t == 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

// EaseOutExpo is exponential ease-out. It is exactly 1 at t = 1.
func EaseOutExpo(t float64) float64 {
	if t == 1 {
		return 1
	}
	return 1 - math.Pow(2, -10*t)
}
