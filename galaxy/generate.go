package galaxy

import (
	"math"
	"math/rand"
)

// Generator constants.
const (
	SpinScale       = 1.17 // spin angle = spin / r * SpinScale
	MinRadius       = 1e-4 // lower bound on r in the spin division
	RandomnessScale = 0.2  // scatter amplitude per unit of randomness
	PlanarDivisor   = 1.1  // scatter divisor for x and z
	HeightDivisor   = 1.5  // scatter divisor for y
	ColorFalloff    = 0.8  // fraction of radius where the outside color is reached
)

// Buffer holds flat per-particle attributes, 3 floats per particle.
type Buffer struct {
	Positions []float32 // x, y, z
	Colors    []float32 // r, g, b; nil for uncolored point fields
}

// Len returns the number of particles in the buffer.
func (b *Buffer) Len() int {
	return len(b.Positions) / 3
}

// Generate builds the spiral galaxy point cloud.
func Generate(p Params, rng *rand.Rand) (*Buffer, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	buf := &Buffer{
		Positions: make([]float32, p.Count*3),
		Colors:    make([]float32, p.Count*3),
	}

	falloff := p.Radius * ColorFalloff
	for i := 0; i < p.Count; i++ {
		v := i * 3

		// Uniform in r, not in area: particles bunch toward the core.
		r := rng.Float64() * p.Radius
		branchAngle := BranchAngle(i, p.Branches)
		spinAngle := SpinAngle(r, p.Spin)

		ox := scatter(rng, p.Randomness, r, PlanarDivisor)
		oy := scatter(rng, p.Randomness, r, HeightDivisor)
		oz := scatter(rng, p.Randomness, r, PlanarDivisor)

		angle := branchAngle + spinAngle
		buf.Positions[v] = float32((math.Cos(angle) + ox) * r)
		buf.Positions[v+1] = float32(oy)
		buf.Positions[v+2] = float32((math.Sin(angle) + oz) * r)

		t := 0.0
		if falloff > 0 {
			t = r / falloff
		}
		c := p.colorAt(t)
		buf.Colors[v] = float32(c.R)
		buf.Colors[v+1] = float32(c.G)
		buf.Colors[v+2] = float32(c.B)
	}

	return buf, nil
}

// BranchAngle returns the base angle of the arm particle i belongs to.
func BranchAngle(i, branches int) float64 {
	b := i % branches
	return float64(b) / float64(branches) * 2 * math.Pi
}

// SpinAngle returns the spiral offset for a particle at radius r.
func SpinAngle(r, spin float64) float64 {
	return spin / math.Max(r, MinRadius) * SpinScale
}

// scatter returns a random offset in (-a, a) where a grows with r.
func scatter(rng *rand.Rand, randomness, r, divisor float64) float64 {
	return (rng.Float64() - 0.5) * RandomnessScale * (randomness * (r / divisor))
}

// colorAt blends the gradient at t. t beyond 1 extrapolates past the
// outside color and is left unclamped.
func (p Params) colorAt(t float64) Color {
	if p.Gradient == GradientThreeStop {
		if t < 0.5 {
			return p.InsideColor.BlendRgb(p.MidColor, t*2)
		}
		return p.MidColor.BlendRgb(p.OutsideColor, t*2-1)
	}
	return p.MidColor.BlendRgb(p.OutsideColor, t)
}
