// Package controls owns the live galaxy parameters and rebuilds the galaxy
// renderable when an edit is committed.
package controls

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/scene"
)

// ErrReentrant is returned when Regenerate is called while a regeneration is running.
var ErrReentrant = errors.New("controls: regeneration already in progress")

// RegenEvent describes a completed regeneration.
type RegenEvent struct {
	Generation int // 1-based regeneration number
	Params     galaxy.Params
	Duration   time.Duration // generate + attach
	Summary    galaxy.Summary
	Entity     ecs.Entity
}

// Option configures a Controller.
type Option func(*Controller)

// WithFields overrides the editable fields (ranges).
func WithFields(fields []Field) Option {
	return func(c *Controller) { c.fields = fields }
}

// WithRand sets the random source used for generation.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithTexture sets the texture key for the galaxy material.
func WithTexture(key string) Option {
	return func(c *Controller) { c.texture = key }
}

// WithOnRegenerate registers a callback run after every successful regeneration.
func WithOnRegenerate(fn func(RegenEvent)) Option {
	return func(c *Controller) { c.onRegen = fn }
}

// Controller holds the live galaxy parameters and the galaxy renderable built from them.
// It is not safe for concurrent use; calls are serialized by the frame loop.
type Controller struct {
	scene    *scene.Scene
	params   galaxy.Params
	defaults galaxy.Params
	fields   []Field
	rng      *rand.Rand
	logger   *slog.Logger
	texture  string
	onRegen  func(RegenEvent)

	current    ecs.Entity
	hasCurrent bool

	dirty         bool
	regenerating  bool
	regenerations int
}

// New creates a controller over sc. Initial params are clamped to the field ranges.
// No galaxy is built until Regenerate is called.
func New(sc *scene.Scene, params galaxy.Params, opts ...Option) *Controller {
	c := &Controller{
		scene:  sc,
		fields: DefaultFields(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	c.logger = c.logger.With("component", "controls")

	c.params = c.clampAll(params)
	c.defaults = c.params
	return c
}

// Fields returns the editable fields in panel order.
func (c *Controller) Fields() []Field {
	return c.fields
}

// Params returns a copy of the live parameters.
func (c *Controller) Params() galaxy.Params {
	return c.params
}

// Value returns the live value of a field.
func (c *Controller) Value(id FieldID) float64 {
	return get(&c.params, id)
}

// Set applies an intermediate edit: the value is clamped to the field's range
// and snapped to its step, then stored. The galaxy is not rebuilt until Commit.
// Returns the stored value.
func (c *Controller) Set(id FieldID, v float64) (float64, error) {
	f, ok := c.field(id)
	if !ok {
		return 0, fmt.Errorf("%w: id %d", ErrUnknownField, id)
	}
	v = f.Range.Clamp(v)
	if get(&c.params, id) != v {
		set(&c.params, id, v)
		c.dirty = true
	}
	return get(&c.params, id), nil
}

// Dirty reports whether there are uncommitted edits.
func (c *Controller) Dirty() bool {
	return c.dirty
}

// Commit finishes an edit. If anything changed since the last build, the
// galaxy is regenerated. Reports whether a regeneration ran.
func (c *Controller) Commit() (bool, error) {
	if !c.dirty {
		return false, nil
	}
	if err := c.Regenerate(); err != nil {
		return false, err
	}
	return true, nil
}

// Reset restores the initial parameters and regenerates.
func (c *Controller) Reset() error {
	c.params = c.defaults
	return c.Regenerate()
}

// Regenerate replaces the galaxy renderable with one built from the live params.
// The previous renderable's geometry and material are disposed and it is
// detached before the new buffer is generated, so at most one galaxy is ever
// attached.
func (c *Controller) Regenerate() error {
	if c.regenerating {
		return ErrReentrant
	}
	c.regenerating = true
	defer func() { c.regenerating = false }()

	c.release()

	params := c.params
	start := time.Now()
	buf, err := galaxy.Generate(params, c.rng)
	if err != nil {
		c.logger.Error("galaxy generation failed", "error", err)
		return fmt.Errorf("regenerating galaxy: %w", err)
	}
	summary := galaxy.Summarize(buf)

	geom := scene.NewGeometry(buf)
	mat := &scene.Material{
		Size:            float32(params.Size),
		Opacity:         1,
		Texture:         c.texture,
		Blend:           scene.BlendAdditive,
		VertexColors:    true,
		SizeAttenuation: true,
		DepthTest:       true,
		DepthWrite:      false,
	}
	c.current = c.scene.Attach(scene.KindGalaxy, geom, mat)
	c.hasCurrent = true
	c.dirty = false
	c.regenerations++
	elapsed := time.Since(start)

	c.logger.Debug("galaxy regenerated",
		"generation", c.regenerations,
		"count", params.Count,
		"branches", params.Branches,
		"radius", params.Radius,
		"spin", params.Spin,
		"randomness", params.Randomness,
		"duration_ms", elapsed.Milliseconds(),
		"summary", summary,
	)

	if c.onRegen != nil {
		c.onRegen(RegenEvent{
			Generation: c.regenerations,
			Params:     params,
			Duration:   elapsed,
			Summary:    summary,
			Entity:     c.current,
		})
	}
	return nil
}

// Current returns the attached galaxy entity, if any.
func (c *Controller) Current() (ecs.Entity, bool) {
	return c.current, c.hasCurrent
}

// Regenerations returns the number of successful regenerations.
func (c *Controller) Regenerations() int {
	return c.regenerations
}

// Close releases the current galaxy.
func (c *Controller) Close() {
	c.release()
}

// release disposes and detaches the current galaxy.
func (c *Controller) release() {
	if !c.hasCurrent {
		return
	}
	if pc := c.scene.PointCloud(c.current); pc != nil {
		pc.Geometry.Dispose()
		pc.Material.Dispose()
	}
	c.scene.Detach(c.current)
	c.hasCurrent = false
}

func (c *Controller) field(id FieldID) (Field, bool) {
	for _, f := range c.fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

func (c *Controller) clampAll(p galaxy.Params) galaxy.Params {
	for _, f := range c.fields {
		set(&p, f.ID, f.Range.Clamp(get(&p, f.ID)))
	}
	return p
}
