// Package scene holds the renderable point clouds in an ECS world.
// Each renderable is one entity with a PointCloud, a Transform and a Tag.
package scene

import (
	"github.com/mlange-42/ark/ecs"
)

// Kind distinguishes the point clouds in the scene.
type Kind uint8

const (
	KindGalaxy Kind = iota
	KindStarfield
)

// String returns a readable kind name.
func (k Kind) String() string {
	switch k {
	case KindGalaxy:
		return "galaxy"
	case KindStarfield:
		return "starfield"
	default:
		return "unknown"
	}
}

// PointCloud pairs a geometry with its material.
type PointCloud struct {
	Geometry *Geometry
	Material *Material
}

// Transform holds the per-object rotation around the vertical axis.
type Transform struct {
	RotationY float32 // radians
}

// Tag records the kind of a renderable.
type Tag struct {
	Kind Kind
}

// Scene is the set of renderables drawn each frame.
type Scene struct {
	world *ecs.World

	mapper   *ecs.Map3[PointCloud, Transform, Tag]
	filter   *ecs.Filter3[PointCloud, Transform, Tag]
	cloudMap *ecs.Map[PointCloud]
	xformMap *ecs.Map[Transform]
	tagMap   *ecs.Map[Tag]
}

// New creates an empty scene.
func New() *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:    world,
		mapper:   ecs.NewMap3[PointCloud, Transform, Tag](world),
		filter:   ecs.NewFilter3[PointCloud, Transform, Tag](world),
		cloudMap: ecs.NewMap[PointCloud](world),
		xformMap: ecs.NewMap[Transform](world),
		tagMap:   ecs.NewMap[Tag](world),
	}
}

// Attach adds a renderable and returns its entity.
func (s *Scene) Attach(kind Kind, geom *Geometry, mat *Material) ecs.Entity {
	cloud := PointCloud{Geometry: geom, Material: mat}
	xform := Transform{}
	tag := Tag{Kind: kind}
	return s.mapper.NewEntity(&cloud, &xform, &tag)
}

// Detach removes a renderable from the scene. Its resources are not disposed.
// Detaching an entity that is not in the scene is a no-op.
func (s *Scene) Detach(e ecs.Entity) {
	if !s.world.Alive(e) {
		return
	}
	s.world.RemoveEntity(e)
}

// Contains reports whether e is attached.
func (s *Scene) Contains(e ecs.Entity) bool {
	return s.world.Alive(e) && s.cloudMap.Has(e)
}

// PointCloud returns the point cloud of e, or nil if e is not attached.
func (s *Scene) PointCloud(e ecs.Entity) *PointCloud {
	if !s.Contains(e) {
		return nil
	}
	return s.cloudMap.Get(e)
}

// Transform returns the transform of e, or nil if e is not attached.
func (s *Scene) Transform(e ecs.Entity) *Transform {
	if !s.Contains(e) {
		return nil
	}
	return s.xformMap.Get(e)
}

// Kind returns the kind of e.
func (s *Scene) Kind(e ecs.Entity) (Kind, bool) {
	if !s.Contains(e) {
		return 0, false
	}
	return s.tagMap.Get(e).Kind, true
}

// Count returns the number of attached renderables of the given kind.
func (s *Scene) Count(kind Kind) int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		_, _, tag := query.Get()
		if tag.Kind == kind {
			n++
		}
	}
	return n
}

// Len returns the number of attached renderables.
func (s *Scene) Len() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Each calls fn for every renderable of the given kind.
// fn must not attach or detach entities.
func (s *Scene) Each(kind Kind, fn func(e ecs.Entity, cloud *PointCloud, xform *Transform)) {
	query := s.filter.Query()
	for query.Next() {
		cloud, xform, tag := query.Get()
		if tag.Kind == kind {
			fn(query.Entity(), cloud, xform)
		}
	}
}

// Close disposes and detaches every renderable.
func (s *Scene) Close() {
	// Collect first: the world is locked while a query is open.
	var all []ecs.Entity
	query := s.filter.Query()
	for query.Next() {
		cloud, _, _ := query.Get()
		if cloud.Geometry != nil {
			cloud.Geometry.Dispose()
		}
		if cloud.Material != nil {
			cloud.Material.Dispose()
		}
		all = append(all, query.Entity())
	}
	for _, e := range all {
		s.world.RemoveEntity(e)
	}
}
