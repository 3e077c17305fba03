// Package galaxy generates the particle buffers for the spiral galaxy and the
// background starfield. Generation is a pure function of the parameters and
// the random source passed in.
package galaxy

import (
	"errors"
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidParams is returned when params violate the generator precondition.
var ErrInvalidParams = errors.New("galaxy: invalid params")

// Color is an RGB triple with channels in [0, 1].
type Color = colorful.Color

// Gradient selects how particle colors are blended across the radius.
type Gradient int

const (
	// GradientObserved blends mid -> outside; the inside color is not used.
	GradientObserved Gradient = iota
	// GradientThreeStop blends inside -> mid over the first half of the
	// falloff distance and mid -> outside over the second half.
	GradientThreeStop
)

// String returns the config name of the gradient.
func (g Gradient) String() string {
	switch g {
	case GradientThreeStop:
		return "three_stop"
	default:
		return "observed"
	}
}

// ParseGradient converts a config name into a Gradient.
func ParseGradient(s string) (Gradient, error) {
	switch s {
	case "", "observed":
		return GradientObserved, nil
	case "three_stop":
		return GradientThreeStop, nil
	}
	return GradientObserved, fmt.Errorf("unknown gradient %q", s)
}

// Params describes one galaxy.
type Params struct {
	Count      int     // number of particles
	Size       float64 // particle sprite size in world units
	Radius     float64 // outer radius
	Branches   int     // number of spiral arms
	Spin       float64 // spiral curvature
	Randomness float64 // scatter around the arms

	InsideColor  Color
	MidColor     Color
	OutsideColor Color
	Gradient     Gradient
}

// DefaultParams returns the stock galaxy.
func DefaultParams() Params {
	return Params{
		Count:        200000,
		Size:         0.01,
		Radius:       2,
		Branches:     8,
		Spin:         2,
		Randomness:   1.63,
		InsideColor:  MustParseColor("#d9b59c"),
		MidColor:     MustParseColor("#ff8700"),
		OutsideColor: MustParseColor("#5f00a2"),
	}
}

// Validate checks the generator precondition.
// Radius may be zero; spin and randomness may be any finite value (randomness >= 0).
func (p Params) Validate() error {
	switch {
	case p.Count <= 0:
		return fmt.Errorf("%w: count %d must be positive", ErrInvalidParams, p.Count)
	case p.Branches < 1:
		return fmt.Errorf("%w: branches %d must be at least 1", ErrInvalidParams, p.Branches)
	case !finite(p.Radius) || p.Radius < 0:
		return fmt.Errorf("%w: radius %v must be finite and non-negative", ErrInvalidParams, p.Radius)
	case !finite(p.Size) || p.Size <= 0:
		return fmt.Errorf("%w: size %v must be finite and positive", ErrInvalidParams, p.Size)
	case !finite(p.Spin):
		return fmt.Errorf("%w: spin %v must be finite", ErrInvalidParams, p.Spin)
	case !finite(p.Randomness) || p.Randomness < 0:
		return fmt.Errorf("%w: randomness %v must be finite and non-negative", ErrInvalidParams, p.Randomness)
	}
	for _, c := range []Color{p.InsideColor, p.MidColor, p.OutsideColor} {
		if !finite(c.R) || !finite(c.G) || !finite(c.B) {
			return fmt.Errorf("%w: color %v is not finite", ErrInvalidParams, c)
		}
	}
	return nil
}

// ParseColor parses a "#rrggbb" hex string.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", hex, err)
	}
	return c, nil
}

// MustParseColor is like ParseColor but panics on error.
func MustParseColor(hex string) Color {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
