package game

import (
	"time"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/galaxy/camera"
	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/scene"
)

// Texture store keys.
const (
	TextureGalaxy    = "galaxy"
	TextureStarfield = "starfield"
)

// headlessDT is the simulated frame time in headless mode.
const headlessDT = 1.0 / 60.0

// newCamera builds the orbit camera from config.
func newCamera(cfg *config.Config, width, height int32) *camera.Camera {
	cc := cfg.Camera
	cam := camera.New(vec(cc.Position), vec(cc.Target), float64(width), float64(height))
	cam.FovY = cc.FOV
	cam.Near = cc.Near
	cam.Far = cc.Far
	cam.Damping = cc.Damping
	cam.MinRadius = cc.MinDistance
	cam.MaxRadius = cc.MaxDistance
	return cam
}

// starfieldMaterial describes the backdrop sprites.
func starfieldMaterial(cfg *config.Config) *scene.Material {
	return &scene.Material{
		Size:            float32(cfg.Starfield.Size),
		Tint:            cfg.Derived.StarfieldColor,
		Opacity:         float32(cfg.Starfield.Opacity),
		Texture:         TextureStarfield,
		Blend:           scene.BlendAlpha,
		SizeAttenuation: true,
		DepthTest:       false,
		DepthWrite:      true,
	}
}

// resizeInterval returns the minimum time between applied resizes.
func resizeInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Screen.ResizeInterval * float64(time.Second))
}

// logInterval returns the minimum time between perf log lines.
func logInterval(cfg *config.Config) time.Duration {
	return time.Duration(cfg.Telemetry.LogInterval * float64(time.Second))
}

func vec(v [3]float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}

// galaxyBuffer views a geometry as a generator buffer for export.
func galaxyBuffer(g *scene.Geometry) *galaxy.Buffer {
	return &galaxy.Buffer{Positions: g.Positions, Colors: g.Colors}
}
