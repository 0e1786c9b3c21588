package anim

import (
	"math"
	"math/rand/v2"
)

// Source is a source of uniformly distributed values in [0, 1).
// *rand.Rand from math/rand/v2 implements Source.
type Source interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// GlobalSource returns a Source backed by the process-wide generator
// of math/rand/v2. It is safe for concurrent use.
func GlobalSource() Source { return globalSource{} }

// RandomRange returns a value in [min, max) drawn from src.
// An inverted range (min > max) yields a value in (max, min].
func RandomRange(src Source, min, max float64) float64 {
	return src.Float64()*(max-min) + min
}

// RandomInt returns an integer in [min, max], both ends inclusive.
func RandomInt(src Source, min, max int) int {
	return int(math.Floor(src.Float64()*float64(max-min+1))) + min
}

// Lerp linearly interpolates between start and end.
func Lerp(start, end, t float64) float64 {
	return start + (end-start)*t
}

// Clamp limits value to [min, max].
func Clamp(value, min, max float64) float64 {
	return math.Min(math.Max(value, min), max)
}

// MapRange maps value from [inMin, inMax] onto [outMin, outMax].
// The result is not clamped.
func MapRange(value, inMin, inMax, outMin, outMax float64) float64 {
	return (value-inMin)*(outMax-outMin)/(inMax-inMin) + outMin
}

// DegToRad converts degrees to radians.
func DegToRad(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float64) float64 {
	return radians * (180 / math.Pi)
}

// Distance returns the euclidean distance between (x1, y1) and (x2, y2).
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// AngleBetween returns the angle in radians of the vector from
// (x1, y1) to (x2, y2).
func AngleBetween(x1, y1, x2, y2 float64) float64 {
	return math.Atan2(y2-y1, x2-x1)
}

// Normalize maps value from [min, max] onto [0, 1] without clamping.
func Normalize(value, min, max float64) float64 {
	return (value - min) / (max - min)
}
