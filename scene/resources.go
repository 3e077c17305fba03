package scene

import "github.com/pthm-cable/galaxy/galaxy"

// Geometry is the vertex data of a point cloud.
// Positions and Colors are released on Dispose.
type Geometry struct {
	Positions []float32
	Colors    []float32
	count     int
	disposed  bool
}

// NewGeometry wraps a generated buffer. The buffer is owned by the geometry afterwards.
func NewGeometry(buf *galaxy.Buffer) *Geometry {
	return &Geometry{
		Positions: buf.Positions,
		Colors:    buf.Colors,
		count:     buf.Len(),
	}
}

// Len returns the number of points.
func (g *Geometry) Len() int {
	if g.disposed {
		return 0
	}
	return g.count
}

// Dispose releases the vertex data. Safe to call more than once.
func (g *Geometry) Dispose() {
	g.Positions = nil
	g.Colors = nil
	g.disposed = true
}

// Disposed reports whether Dispose was called.
func (g *Geometry) Disposed() bool {
	return g.disposed
}

// Blend selects how sprites combine with what is already drawn.
type Blend int

const (
	BlendAlpha Blend = iota
	BlendAdditive
)

// Material describes how a point cloud is drawn.
type Material struct {
	Size            float32      // sprite size in world units
	Tint            galaxy.Color // used when VertexColors is false
	Opacity         float32
	Texture         string // texture store key; empty draws untextured
	Blend           Blend
	VertexColors    bool
	SizeAttenuation bool // scale sprites with distance
	DepthTest       bool
	DepthWrite      bool

	disposed bool
}

// Dispose marks the material released. Textures are owned by the texture
// store and outlive materials.
func (m *Material) Dispose() {
	m.disposed = true
}

// Disposed reports whether Dispose was called.
func (m *Material) Disposed() bool {
	return m.disposed
}
