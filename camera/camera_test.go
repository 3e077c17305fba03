package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

func TestNew(t *testing.T) {
	cam := New(r3.Vec{X: 0, Y: 4, Z: 5}, r3.Vec{}, 1280, 720)

	// Spherical round trip should reproduce the start position
	if p := cam.Position(); !near(p, r3.Vec{Y: 4, Z: 5}, 1e-9) {
		t.Errorf("expected camera at (0, 4, 5), got %v", p)
	}
	if math.Abs(cam.Radius-math.Sqrt(41)) > 1e-9 {
		t.Errorf("expected radius sqrt(41), got %f", cam.Radius)
	}
	if math.Abs(cam.Aspect-1280.0/720.0) > 1e-9 {
		t.Errorf("expected aspect 16:9, got %f", cam.Aspect)
	}
}

func TestBasisOrthonormal(t *testing.T) {
	cam := New(r3.Vec{X: 3, Y: 2, Z: -4}, r3.Vec{X: 1}, 800, 600)

	f, r, u := cam.Forward(), cam.Right(), cam.Up()
	for name, v := range map[string]r3.Vec{"forward": f, "right": r, "up": u} {
		if math.Abs(r3.Norm(v)-1) > 1e-9 {
			t.Errorf("%s not unit length: %v", name, r3.Norm(v))
		}
	}
	if math.Abs(r3.Dot(f, r)) > 1e-9 || math.Abs(r3.Dot(f, u)) > 1e-9 || math.Abs(r3.Dot(r, u)) > 1e-9 {
		t.Error("camera basis is not orthogonal")
	}
	if u.Y <= 0 {
		t.Errorf("expected up vector to point upward, got %v", u)
	}
}

func TestRotateWithoutDamping(t *testing.T) {
	cam := New(r3.Vec{Z: 5}, r3.Vec{}, 720, 720)
	cam.Damping = 0

	// A quarter of the viewport height is a quarter turn
	cam.Rotate(-180, 0)
	cam.Update()

	if math.Abs(cam.Theta-math.Pi/2) > 1e-9 {
		t.Errorf("expected theta pi/2, got %f", cam.Theta)
	}
	if p := cam.Position(); !near(p, r3.Vec{X: 5}, 1e-9) {
		t.Errorf("expected camera at (5, 0, 0), got %v", p)
	}
	if !cam.Settled() {
		t.Error("expected no pending motion without damping")
	}
}

func TestRotateWithDampingConverges(t *testing.T) {
	cam := New(r3.Vec{Z: 5}, r3.Vec{}, 720, 720)
	cam.Damping = 0.05

	cam.Rotate(-180, 0)
	cam.Update()
	if cam.Theta >= math.Pi/2 {
		t.Errorf("expected partial rotation after one damped update, got %f", cam.Theta)
	}

	for i := 0; i < 1000; i++ {
		cam.Update()
	}
	if math.Abs(cam.Theta-math.Pi/2) > 1e-6 {
		t.Errorf("expected damped rotation to converge on pi/2, got %f", cam.Theta)
	}
	if !cam.Settled() {
		t.Error("expected camera to settle")
	}
}

func TestPhiClamp(t *testing.T) {
	cam := New(r3.Vec{Y: 4, Z: 5}, r3.Vec{}, 720, 720)
	cam.Damping = 0

	// Drag far past the pole
	cam.Rotate(0, 5000)
	cam.Update()
	if cam.Phi < minPolar || cam.Phi > math.Pi-minPolar {
		t.Errorf("phi %f escaped its bounds", cam.Phi)
	}
	if p := cam.Position(); math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		t.Errorf("position became NaN: %v", p)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(r3.Vec{Z: 5}, r3.Vec{}, 1280, 720)

	cam.Zoom(0.5)
	if math.Abs(cam.Radius-2.5) > 1e-9 {
		t.Errorf("expected radius 2.5, got %f", cam.Radius)
	}

	cam.Zoom(0.0001)
	if cam.Radius != cam.MinRadius {
		t.Errorf("expected radius clamped to %f, got %f", cam.MinRadius, cam.Radius)
	}

	cam.Zoom(1e6)
	if cam.Radius != cam.MaxRadius {
		t.Errorf("expected radius clamped to %f, got %f", cam.MaxRadius, cam.Radius)
	}

	// Non-positive factors are ignored
	cam.Zoom(0)
	if cam.Radius != cam.MaxRadius {
		t.Errorf("zero factor changed radius to %f", cam.Radius)
	}
}

func TestPanMovesTarget(t *testing.T) {
	cam := New(r3.Vec{Z: 5}, r3.Vec{}, 720, 720)
	cam.Damping = 0

	// Drag right: the scene follows the cursor, so the target moves left
	cam.Pan(100, 0)
	cam.Update()

	if cam.Target.X >= 0 {
		t.Errorf("expected target to move toward -X, got %v", cam.Target)
	}
	if math.Abs(cam.Target.Y) > 1e-9 || math.Abs(cam.Target.Z) > 1e-9 {
		t.Errorf("expected horizontal pan only, got %v", cam.Target)
	}

	// Orbit radius is preserved by panning
	if math.Abs(r3.Norm(r3.Sub(cam.Position(), cam.Target))-5) > 1e-9 {
		t.Error("pan changed the orbit radius")
	}
}

func TestResizeIdempotent(t *testing.T) {
	cam := New(r3.Vec{Z: 5}, r3.Vec{}, 1280, 720)

	cam.Resize(1920, 1080)
	aspect := cam.Aspect
	cam.Resize(1920, 1080)
	if cam.Aspect != aspect || cam.ViewportW != 1920 || cam.ViewportH != 1080 {
		t.Errorf("unexpected state after repeated resize: %+v", cam)
	}

	// A zero-height viewport keeps the previous aspect
	cam.Resize(100, 0)
	if cam.Aspect != aspect {
		t.Errorf("zero height changed aspect to %f", cam.Aspect)
	}
}

func TestReset(t *testing.T) {
	start := r3.Vec{Y: 4, Z: 5}
	cam := New(start, r3.Vec{}, 1280, 720)
	cam.Damping = 0

	cam.Rotate(300, 100)
	cam.Pan(50, 50)
	cam.Zoom(2)
	cam.Update()
	cam.Reset()

	if p := cam.Position(); !near(p, start, 1e-9) {
		t.Errorf("expected camera back at %v, got %v", start, p)
	}
	if !near(cam.Target, r3.Vec{}, 1e-12) {
		t.Errorf("expected target at origin, got %v", cam.Target)
	}
}
