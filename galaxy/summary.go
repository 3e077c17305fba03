package galaxy

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes a generated buffer.
type Summary struct {
	Particles  int
	MeanRadius float64 // mean distance from the y axis
	MaxRadius  float64
	MaxHeight  float64 // largest |y|
	Finite     bool    // no NaN or Inf in any attribute
}

// Summarize computes a Summary over b.
func Summarize(b *Buffer) Summary {
	n := b.Len()
	s := Summary{Particles: n, Finite: true}
	if n == 0 {
		return s
	}

	radii := make([]float64, n)
	heights := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(b.Positions[i*3])
		y := float64(b.Positions[i*3+1])
		z := float64(b.Positions[i*3+2])
		radii[i] = math.Hypot(x, z)
		heights[i] = math.Abs(y)
	}

	s.Finite = allFinite(radii) && allFinite(heights) && allFinite32(b.Colors)
	if !s.Finite {
		return s
	}
	s.MeanRadius = stat.Mean(radii, nil)
	s.MaxRadius = floats.Max(radii)
	s.MaxHeight = floats.Max(heights)
	return s
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("particles", s.Particles),
		slog.Float64("mean_radius", s.MeanRadius),
		slog.Float64("max_radius", s.MaxRadius),
		slog.Float64("max_height", s.MaxHeight),
		slog.Bool("finite", s.Finite),
	)
}

func allFinite(v []float64) bool {
	if floats.HasNaN(v) {
		return false
	}
	for _, x := range v {
		if math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

func allFinite32(v []float32) bool {
	for _, x := range v {
		f := float64(x)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
