package controls

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/scene"
)

func smallParams() galaxy.Params {
	p := galaxy.DefaultParams()
	p.Count = 500
	return p
}

func newTestController(t *testing.T, opts ...Option) (*Controller, *scene.Scene) {
	t.Helper()
	sc := scene.New()
	opts = append([]Option{WithRand(rand.New(rand.NewSource(1)))}, opts...)
	return New(sc, smallParams(), opts...), sc
}

func TestRangeClamp(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		in   float64
		want float64
	}{
		{"below min", Range{300, 500000, 1}, 10, 300},
		{"above max", Range{300, 500000, 1}, 1e9, 500000},
		{"snap int", Range{300, 500000, 1}, 1234.6, 1235},
		{"snap step", Range{1, 5, 0.01}, 1.234, 1.23},
		{"negative ok", Range{-1, 5, 0.001}, -0.5, -0.5},
		{"nan", Range{1, 7, 1}, math.NaN(), 1},
		{"inf", Range{1, 7, 1}, math.Inf(1), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.Clamp(tt.in)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewClampsInitialParams(t *testing.T) {
	p := smallParams()
	p.Count = 0
	p.Branches = 0
	p.Radius = -3
	c := New(scene.New(), p)

	got := c.Params()
	if got.Count != 300 || got.Branches != 3 || got.Radius != 1 {
		t.Errorf("expected clamped params, got count=%d branches=%d radius=%v",
			got.Count, got.Branches, got.Radius)
	}
}

func TestSetDoesNotRegenerate(t *testing.T) {
	c, sc := newTestController(t)

	v, err := c.Set(FieldBranches, 12.4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 12 || c.Params().Branches != 12 {
		t.Errorf("Set stored %v / %d, want 12", v, c.Params().Branches)
	}
	if !c.Dirty() {
		t.Error("expected controller to be dirty after Set")
	}
	if sc.Count(scene.KindGalaxy) != 0 || c.Regenerations() != 0 {
		t.Error("Set must not rebuild the galaxy")
	}

	if _, err := c.Set(FieldID(99), 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestCommitRegeneratesOnlyWhenDirty(t *testing.T) {
	c, sc := newTestController(t)

	if ran, err := c.Commit(); err != nil || ran {
		t.Fatalf("clean commit: ran=%v err=%v", ran, err)
	}

	if _, err := c.Set(FieldCount, 800); err != nil {
		t.Fatal(err)
	}
	ran, err := c.Commit()
	if err != nil || !ran {
		t.Fatalf("dirty commit: ran=%v err=%v", ran, err)
	}

	e, ok := c.Current()
	if !ok {
		t.Fatal("expected a current galaxy")
	}
	pc := sc.PointCloud(e)
	if pc == nil || pc.Geometry.Len() != 800 {
		t.Fatalf("expected 800 particles, got %+v", pc)
	}
	if c.Dirty() {
		t.Error("expected clean state after commit")
	}

	// Setting the same value again is not an edit.
	if _, err := c.Set(FieldCount, 800); err != nil {
		t.Fatal(err)
	}
	if ran, _ := c.Commit(); ran {
		t.Error("unchanged value must not regenerate")
	}
}

func TestRegenerateKeepsSingleGalaxy(t *testing.T) {
	c, sc := newTestController(t)

	var prev []*scene.PointCloud
	for i := 0; i < 5; i++ {
		if err := c.Regenerate(); err != nil {
			t.Fatal(err)
		}
		if got := sc.Count(scene.KindGalaxy); got != 1 {
			t.Fatalf("after regeneration %d: %d galaxies attached", i+1, got)
		}
		e, _ := c.Current()
		pc := *sc.PointCloud(e)
		prev = append(prev, &pc)
	}

	// Every replaced renderable was disposed; only the last is live.
	for i, pc := range prev[:len(prev)-1] {
		if !pc.Geometry.Disposed() || !pc.Material.Disposed() {
			t.Errorf("renderable %d leaked: geometry=%v material=%v",
				i, pc.Geometry.Disposed(), pc.Material.Disposed())
		}
	}
	last := prev[len(prev)-1]
	if last.Geometry.Disposed() || last.Material.Disposed() {
		t.Error("current renderable must stay live")
	}
	if c.Regenerations() != 5 {
		t.Errorf("regenerations = %d, want 5", c.Regenerations())
	}
}

func TestRegenerateSameParamsSameLength(t *testing.T) {
	c, sc := newTestController(t)

	if err := c.Regenerate(); err != nil {
		t.Fatal(err)
	}
	e1, _ := c.Current()
	first := append([]float32(nil), sc.PointCloud(e1).Geometry.Positions...)

	if err := c.Regenerate(); err != nil {
		t.Fatal(err)
	}
	e2, _ := c.Current()
	second := sc.PointCloud(e2).Geometry.Positions

	if len(first) != len(second) {
		t.Errorf("buffer lengths differ: %d vs %d", len(first), len(second))
	}
	if sc.Contains(e1) && e1 != e2 {
		t.Error("previous galaxy still attached")
	}
	if sc.Count(scene.KindGalaxy) != 1 {
		t.Errorf("galaxy count = %d, want 1", sc.Count(scene.KindGalaxy))
	}
}

func TestRegenerateLeavesStarfieldAlone(t *testing.T) {
	c, sc := newTestController(t)

	stars := galaxy.GenerateStarfield(100, galaxy.StarSpread, rand.New(rand.NewSource(2)))
	starGeom := scene.NewGeometry(stars)
	starMat := &scene.Material{Size: 0.1}
	starEntity := sc.Attach(scene.KindStarfield, starGeom, starMat)

	for i := 0; i < 3; i++ {
		if err := c.Regenerate(); err != nil {
			t.Fatal(err)
		}
	}

	if !sc.Contains(starEntity) || starGeom.Disposed() || starMat.Disposed() {
		t.Error("starfield must survive galaxy regeneration")
	}
	if sc.Len() != 2 {
		t.Errorf("scene len = %d, want 2", sc.Len())
	}
}

func TestOnRegenerateAndMaterial(t *testing.T) {
	var events []RegenEvent
	c, sc := newTestController(t,
		WithTexture("particle"),
		WithOnRegenerate(func(ev RegenEvent) { events = append(events, ev) }),
	)

	if _, err := c.Set(FieldSize, 0.05); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Commit(); err != nil {
		t.Fatal(err)
	}

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Generation != 1 || ev.Params.Count != 500 || !ev.Summary.Finite {
		t.Errorf("unexpected event %+v", ev)
	}

	pc := sc.PointCloud(ev.Entity)
	if pc == nil {
		t.Fatal("event entity not attached")
	}
	m := pc.Material
	if m.Texture != "particle" || m.Blend != scene.BlendAdditive || !m.VertexColors || m.DepthWrite {
		t.Errorf("unexpected galaxy material %+v", m)
	}
	if math.Abs(float64(m.Size)-0.05) > 1e-6 {
		t.Errorf("material size = %v, want 0.05", m.Size)
	}
}

func TestReentrantRegenerateRejected(t *testing.T) {
	var c *Controller
	var inner error
	c, _ = newTestController(t, WithOnRegenerate(func(RegenEvent) {
		inner = c.Regenerate()
	}))

	if err := c.Regenerate(); err != nil {
		t.Fatal(err)
	}
	if !errors.Is(inner, ErrReentrant) {
		t.Errorf("expected ErrReentrant from nested call, got %v", inner)
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	c, _ := newTestController(t)

	if _, err := c.Set(FieldSpin, 4); err != nil {
		t.Fatal(err)
	}
	if err := c.Reset(); err != nil {
		t.Fatal(err)
	}
	if c.Params().Spin != smallParams().Spin {
		t.Errorf("spin = %v after reset, want %v", c.Params().Spin, smallParams().Spin)
	}
	if c.Dirty() {
		t.Error("reset should leave a clean state")
	}
}

func TestCloseReleasesGalaxy(t *testing.T) {
	c, sc := newTestController(t)
	if err := c.Regenerate(); err != nil {
		t.Fatal(err)
	}
	e, _ := c.Current()
	pc := *sc.PointCloud(e)

	c.Close()

	if sc.Count(scene.KindGalaxy) != 0 {
		t.Error("galaxy still attached after Close")
	}
	if !pc.Geometry.Disposed() || !pc.Material.Disposed() {
		t.Error("galaxy resources not disposed on Close")
	}
	if _, ok := c.Current(); ok {
		t.Error("expected no current galaxy after Close")
	}
}

func TestFieldByName(t *testing.T) {
	id, err := FieldByName("randomness")
	if err != nil || id != FieldRandomness {
		t.Errorf("FieldByName(randomness) = %v, %v", id, err)
	}
	if _, err := FieldByName("color"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
}

func TestValidateRange(t *testing.T) {
	tests := []struct {
		name string
		id   FieldID
		r    Range
		ok   bool
	}{
		{"count from 1", FieldCount, Range{1, 10, 1}, true},
		{"count from 0", FieldCount, Range{0, 10, 1}, false},
		{"branches from 0", FieldBranches, Range{0, 20, 1}, false},
		{"size from 0", FieldSize, Range{0, 0.1, 0.001}, false},
		{"radius from 0", FieldRadius, Range{0, 7, 1}, false},
		{"randomness from 0", FieldRandomness, Range{0, 5, 0.01}, true},
		{"randomness negative", FieldRandomness, Range{-1, 5, 0.01}, false},
		{"spin negative", FieldSpin, Range{-5, 5, 0.001}, true},
		{"inverted", FieldSpin, Range{5, -1, 0.001}, false},
		{"negative step", FieldSpin, Range{-1, 5, -1}, false},
		{"infinite max", FieldSpin, Range{-1, math.Inf(1), 0.001}, false},
		{"nan min", FieldSpin, Range{math.NaN(), 5, 0.001}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRange(tt.id, tt.r)
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidRange) {
				t.Errorf("err = %v, want ErrInvalidRange", err)
			}
		})
	}

	if err := ValidateRange(FieldID(99), Range{0, 1, 0}); !errors.Is(err, ErrUnknownField) {
		t.Errorf("unknown id: err = %v, want ErrUnknownField", err)
	}
}

func TestRangeMinimumsCommit(t *testing.T) {
	for _, f := range DefaultFields() {
		if err := ValidateRange(f.ID, f.Range); err != nil {
			t.Errorf("default %s range rejected: %v", f.Name, err)
		}
	}

	// The lowest value each validated range allows still builds a galaxy.
	fields := DefaultFields()
	fields[FieldCount].Range = Range{1, 1000, 1}
	fields[FieldBranches].Range = Range{1, 20, 1}
	fields[FieldRadius].Range = Range{0.001, 7, 0}
	fields[FieldRandomness].Range = Range{0, 5, 0.01}
	for i, f := range fields {
		if err := ValidateRange(f.ID, f.Range); err != nil {
			t.Fatalf("field %d: %v", i, err)
		}
	}

	c, sc := newTestController(t, WithFields(fields))
	for _, f := range fields {
		if _, err := c.Set(f.ID, math.Inf(-1)); err != nil {
			t.Fatalf("Set(%s): %v", f.Name, err)
		}
	}
	if _, err := c.Commit(); err != nil {
		t.Fatalf("Commit at range minimums: %v", err)
	}
	if sc.Count(scene.KindGalaxy) != 1 {
		t.Errorf("galaxies attached = %d, want 1", sc.Count(scene.KindGalaxy))
	}
}
