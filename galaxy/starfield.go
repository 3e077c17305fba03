package galaxy

import "math/rand"

// Starfield defaults.
const (
	StarCount  = 10000
	StarSpread = 45.0
)

// GenerateStarfield scatters count points uniformly in a cube of half-width
// spread centered on the origin. The result carries no colors.
func GenerateStarfield(count int, spread float64, rng *rand.Rand) *Buffer {
	if count < 0 {
		count = 0
	}
	buf := &Buffer{Positions: make([]float32, count*3)}
	for i := range buf.Positions {
		buf.Positions[i] = float32((rng.Float64() - 0.5) * 2 * spread)
	}
	return buf
}
