package renderer

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/galaxy/camera"
	"github.com/pthm-cable/galaxy/galaxy"
)

// View is the per-frame camera state the point renderer needs.
type View struct {
	Position rl.Vector3
	Forward  rl.Vector3
	Right    rl.Vector3
	Up       rl.Vector3
	Near     float32
	Far      float32

	// SizeScale converts an attenuated point size to a world-space quad
	// width: a point of size s covers s*H/2 pixels at unit depth.
	SizeScale float32
}

// NewView captures the camera basis for one frame.
func NewView(cam *camera.Camera) View {
	return View{
		Position:  vec3(cam.Position()),
		Forward:   vec3(cam.Forward()),
		Right:     vec3(cam.Right()),
		Up:        vec3(cam.Up()),
		Near:      float32(cam.Near),
		Far:       float32(cam.Far),
		SizeScale: float32(math.Tan(cam.FovY * math.Pi / 360)),
	}
}

// Camera3D converts the orbit camera for rl.BeginMode3D.
func Camera3D(cam *camera.Camera) rl.Camera3D {
	return rl.NewCamera3D(vec3(cam.Position()), vec3(cam.Target), vec3(cam.Up()), float32(cam.FovY), rl.CameraPerspective)
}

// Depth returns the distance of p along the view direction.
func (v View) Depth(p rl.Vector3) float32 {
	return (p.X-v.Position.X)*v.Forward.X + (p.Y-v.Position.Y)*v.Forward.Y + (p.Z-v.Position.Z)*v.Forward.Z
}

// Visible reports whether p lies between the near and far planes.
func (v View) Visible(p rl.Vector3) bool {
	d := v.Depth(p)
	return d >= v.Near && d <= v.Far
}

// HalfExtents returns the billboard half axes for a sprite of the given size.
func (v View) HalfExtents(size float32, attenuate bool) (right, up rl.Vector3) {
	h := size / 2
	if attenuate {
		h *= v.SizeScale
	}
	return rl.Vector3Scale(v.Right, h), rl.Vector3Scale(v.Up, h)
}

// RotateY rotates (x, z) about the Y axis by the angle with the given sine and cosine.
func RotateY(x, z, sin, cos float32) (float32, float32) {
	return x*cos + z*sin, -x*sin + z*cos
}

// ToRGBA converts a linear [0,1] color to 8-bit, clamping out-of-range channels.
func ToRGBA(c galaxy.Color, opacity float32) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	a := opacity
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{R: r, G: g, B: b, A: uint8(a*255 + 0.5)}
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}
