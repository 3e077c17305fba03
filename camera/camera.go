// Package camera provides an orbit camera for viewing the galaxy.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// minPolar keeps the camera off the poles where the up vector degenerates.
const minPolar = 1e-4

// Camera orbits a target point. Its position is held in spherical
// coordinates around the target: Radius, Phi (polar angle from +Y) and
// Theta (azimuth around Y, 0 = +Z).
type Camera struct {
	Target r3.Vec

	Radius float64
	Phi    float64
	Theta  float64

	// Projection
	FovY   float64 // degrees
	Near   float64
	Far    float64
	Aspect float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Distance constraints
	MinRadius, MaxRadius float64

	// Damping is the fraction of a pending motion applied per Update.
	// 0 disables damping: motion is applied immediately.
	Damping float64

	// Pending motion
	dTheta, dPhi float64
	panOffset    r3.Vec

	home, homeTarget r3.Vec
}

// New creates a camera at position looking at target.
func New(position, target r3.Vec, viewportW, viewportH float64) *Camera {
	c := &Camera{
		Target:     target,
		FovY:       45,
		Near:       0.1,
		Far:        50,
		MinRadius:  0.5,
		MaxRadius:  40,
		Damping:    0.05,
		home:       position,
		homeTarget: target,
	}
	c.Resize(viewportW, viewportH)
	c.setPosition(position)
	return c
}

// Position returns the camera position in world coordinates.
func (c *Camera) Position() r3.Vec {
	sinPhi := math.Sin(c.Phi)
	offset := r3.Vec{
		X: c.Radius * sinPhi * math.Sin(c.Theta),
		Y: c.Radius * math.Cos(c.Phi),
		Z: c.Radius * sinPhi * math.Cos(c.Theta),
	}
	return r3.Add(c.Target, offset)
}

// Forward returns the unit view direction.
func (c *Camera) Forward() r3.Vec {
	return r3.Unit(r3.Sub(c.Target, c.Position()))
}

// Right returns the unit vector pointing to the right of the view.
func (c *Camera) Right() r3.Vec {
	return r3.Unit(r3.Cross(c.Forward(), r3.Vec{Y: 1}))
}

// Up returns the unit vector pointing up in the view.
func (c *Camera) Up() r3.Vec {
	return r3.Cross(c.Right(), c.Forward())
}

// Rotate queues an orbit by the given screen-space drag in pixels.
// A drag across the full viewport height turns the camera by 2π.
func (c *Camera) Rotate(dx, dy float64) {
	if c.ViewportH <= 0 {
		return
	}
	c.dTheta -= 2 * math.Pi * dx / c.ViewportH
	c.dPhi -= 2 * math.Pi * dy / c.ViewportH
}

// Zoom multiplies the orbit radius by factor (<1 moves closer), clamped to
// [MinRadius, MaxRadius]. Zoom is not damped.
func (c *Camera) Zoom(factor float64) {
	if factor <= 0 {
		return
	}
	c.Radius = clamp(c.Radius*factor, c.MinRadius, c.MaxRadius)
}

// Pan queues a move of the target by a screen-space drag in pixels.
// The move is scaled so the point under the cursor follows it.
func (c *Camera) Pan(dx, dy float64) {
	if c.ViewportH <= 0 {
		return
	}
	// World units per pixel at the target distance.
	halfFov := c.FovY / 2 * math.Pi / 180
	unit := 2 * c.Radius * math.Tan(halfFov) / c.ViewportH

	move := r3.Add(r3.Scale(-dx*unit, c.Right()), r3.Scale(dy*unit, c.Up()))
	c.panOffset = r3.Add(c.panOffset, move)
}

// Update applies queued motion. With damping, only a fraction is applied and
// the rest decays over subsequent frames.
func (c *Camera) Update() {
	f := c.Damping
	if f <= 0 || f > 1 {
		f = 1
	}

	c.Theta += c.dTheta * f
	c.Phi = clamp(c.Phi+c.dPhi*f, minPolar, math.Pi-minPolar)
	c.Target = r3.Add(c.Target, r3.Scale(f, c.panOffset))

	if f == 1 {
		c.dTheta, c.dPhi = 0, 0
		c.panOffset = r3.Vec{}
		return
	}
	c.dTheta *= 1 - f
	c.dPhi *= 1 - f
	c.panOffset = r3.Scale(1-f, c.panOffset)
}

// Settled reports whether no queued motion remains.
func (c *Camera) Settled() bool {
	const eps = 1e-6
	return math.Abs(c.dTheta) < eps && math.Abs(c.dPhi) < eps && r3.Norm(c.panOffset) < eps
}

// Resize updates viewport dimensions and aspect ratio. Repeating the same
// size is a no-op.
func (c *Camera) Resize(viewportW, viewportH float64) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	if viewportH > 0 {
		c.Aspect = viewportW / viewportH
	}
}

// Reset returns the camera to its starting position and drops queued motion.
func (c *Camera) Reset() {
	c.Target = c.homeTarget
	c.dTheta, c.dPhi = 0, 0
	c.panOffset = r3.Vec{}
	c.setPosition(c.home)
}

// setPosition converts a world position to spherical coordinates around Target.
func (c *Camera) setPosition(p r3.Vec) {
	offset := r3.Sub(p, c.Target)
	c.Radius = r3.Norm(offset)
	if c.Radius == 0 {
		c.Radius = c.MinRadius
		c.Phi = math.Pi / 2
		c.Theta = 0
		return
	}
	c.Phi = clamp(math.Acos(clamp(offset.Y/c.Radius, -1, 1)), minPolar, math.Pi-minPolar)
	c.Theta = math.Atan2(offset.X, offset.Z)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
