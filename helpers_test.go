package laserflow

import "math"

// seqSource replays vals in order, wrapping around.
type seqSource struct {
	vals []float64
	i    int
}

func newSeq(vals ...float64) *seqSource { return &seqSource{vals: vals} }

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

// constSource always returns the same value.
type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func near(a, b, eps float64) bool { return math.Abs(a-b) <= eps }
