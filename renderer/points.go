package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/scene"
)

// batchQuads is the number of sprites submitted per rlgl batch check.
const batchQuads = 4096

// PointRenderer draws point clouds as camera-facing textured quads.
type PointRenderer struct {
	textures *TextureStore
	drawn    int // sprites submitted last frame
}

// NewPointRenderer creates a renderer that resolves material textures from textures.
func NewPointRenderer(textures *TextureStore) *PointRenderer {
	return &PointRenderer{textures: textures}
}

// Drawn returns the number of sprites submitted since the last Reset.
func (r *PointRenderer) Drawn() int {
	return r.drawn
}

// Reset clears the per-frame sprite counter.
func (r *PointRenderer) Reset() {
	r.drawn = 0
}

// DrawScene draws every point cloud of the given kinds, in order. Must be
// called between rl.BeginMode3D and rl.EndMode3D.
func (r *PointRenderer) DrawScene(sc *scene.Scene, view View, kinds ...scene.Kind) {
	for _, kind := range kinds {
		sc.Each(kind, func(_ ecs.Entity, cloud *scene.PointCloud, xform *scene.Transform) {
			r.Draw(cloud, xform, view)
		})
	}
}

// Draw submits one point cloud.
func (r *PointRenderer) Draw(cloud *scene.PointCloud, xform *scene.Transform, view View) {
	geom, mat := cloud.Geometry, cloud.Material
	if geom == nil || mat == nil || mat.Disposed() {
		return
	}
	n := geom.Len()
	if n == 0 {
		return
	}

	tex := r.textures.Get(mat.Texture)
	right, up := view.HalfExtents(mat.Size, mat.SizeAttenuation)
	tint := ToRGBA(mat.Tint, mat.Opacity)
	vertexColors := mat.VertexColors && len(geom.Colors) >= n*3

	var sin, cos float32 = 0, 1
	if xform != nil && xform.RotationY != 0 {
		s, c := math.Sincos(float64(xform.RotationY))
		sin, cos = float32(s), float32(c)
	}

	if mat.Blend == scene.BlendAdditive {
		rl.BeginBlendMode(rl.BlendAdditive)
	} else {
		rl.BeginBlendMode(rl.BlendAlpha)
	}
	if !mat.DepthTest {
		rl.DisableDepthTest()
	}
	if !mat.DepthWrite {
		rl.DisableDepthMask()
	}

	pos := geom.Positions
	for start := 0; start < n; start += batchQuads {
		end := min(start+batchQuads, n)
		rl.CheckRenderBatchLimit(int32(4 * (end - start)))
		rl.SetTexture(tex.ID)
		rl.Begin(rl.Quads)
		for i := start; i < end; i++ {
			j := i * 3
			x, z := RotateY(pos[j], pos[j+2], sin, cos)
			p := rl.NewVector3(x, pos[j+1], z)
			if !view.Visible(p) {
				continue
			}
			c := tint
			if vertexColors {
				c = ToRGBA(galaxy.Color{R: float64(geom.Colors[j]), G: float64(geom.Colors[j+1]), B: float64(geom.Colors[j+2])}, mat.Opacity)
			}
			rl.Color4ub(c.R, c.G, c.B, c.A)
			quad(p, right, up)
			r.drawn++
		}
		rl.End()
		rl.SetTexture(0)
	}

	// Flush before restoring state so the batch is drawn with it.
	rl.DrawRenderBatchActive()
	if !mat.DepthWrite {
		rl.EnableDepthMask()
	}
	if !mat.DepthTest {
		rl.EnableDepthTest()
	}
	rl.EndBlendMode()
}

// quad emits one billboard, counter-clockwise from the top left.
func quad(p, right, up rl.Vector3) {
	rl.TexCoord2f(0, 0)
	rl.Vertex3f(p.X-right.X+up.X, p.Y-right.Y+up.Y, p.Z-right.Z+up.Z)
	rl.TexCoord2f(0, 1)
	rl.Vertex3f(p.X-right.X-up.X, p.Y-right.Y-up.Y, p.Z-right.Z-up.Z)
	rl.TexCoord2f(1, 1)
	rl.Vertex3f(p.X+right.X-up.X, p.Y+right.Y-up.Y, p.Z+right.Z-up.Z)
	rl.TexCoord2f(1, 0)
	rl.Vertex3f(p.X+right.X+up.X, p.Y+right.Y+up.Y, p.Z+right.Z+up.Z)
}
