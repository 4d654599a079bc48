package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vec3Near(t *testing.T, got, want mgl32.Vec3, epsilon float32) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if diff := float32(math.Abs(float64(got[i] - want[i]))); diff > epsilon {
			t.Fatalf("component %d: got %v, want %v", i, got, want)
		}
	}
}

func TestNewCameraDefaults(t *testing.T) {
	c := NewCamera()
	if c.Radius() != 5 {
		t.Fatalf("Radius() = %v, want 5", c.Radius())
	}
	vec3Near(t, c.Target(), mgl32.Vec3{0, 0, 0}, 0)
	// Zero azimuth and elevation puts the camera on the +Z axis.
	vec3Near(t, c.Position(), mgl32.Vec3{0, 0, 5}, 1e-5)
}

func TestOrbitRightQuarterTurn(t *testing.T) {
	c := NewCamera(WithRadius(2), WithOrbitSpeed(float32(math.Pi/8)))
	for i := 0; i < 4; i++ {
		c.OrbitRight()
	}
	vec3Near(t, c.Position(), mgl32.Vec3{2, 0, 0}, 1e-5)
}

func TestOrbitUpClampsBelowPole(t *testing.T) {
	c := NewCamera(WithRadius(1), WithOrbitSpeed(1))
	for i := 0; i < 10; i++ {
		c.OrbitUp()
	}
	pos := c.Position()
	if pos.Y() >= 1 {
		t.Fatalf("camera reached the pole: %v", pos)
	}
	if pos.Y() < 0.99 {
		t.Fatalf("camera not clamped near the pole: %v", pos)
	}
}

func TestZoomClampsToBounds(t *testing.T) {
	c := NewCamera(WithRadius(5), WithRadiusBounds(1, 10), WithZoomSpeed(1))
	c.Zoom(100)
	if c.Radius() != 1 {
		t.Fatalf("zoom in: Radius() = %v, want 1", c.Radius())
	}
	c.Zoom(-100)
	if c.Radius() != 10 {
		t.Fatalf("zoom out: Radius() = %v, want 10", c.Radius())
	}
}

func TestSetTargetTranslatesCamera(t *testing.T) {
	c := NewCamera(WithRadius(3))
	c.SetTarget(mgl32.Vec3{1, 2, 3})
	vec3Near(t, c.Position(), mgl32.Vec3{1, 2, 6}, 1e-5)
}

func TestViewMatrixMatchesLookAt(t *testing.T) {
	c := NewCamera(WithRadius(4), WithTarget(mgl32.Vec3{0, 1, 0}))
	want := mgl32.LookAtV(mgl32.Vec3{0, 1, 4}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 1, 0})
	got := c.ViewMatrix()
	for i := 0; i < 16; i++ {
		if diff := math.Abs(float64(got[i] - want[i])); diff > 1e-5 {
			t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
