package camera

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// elevationLimit keeps the camera off the poles so the up vector never
// becomes parallel to the view direction.
const elevationLimit = float32(math.Pi/2) - 0.01

type cameraImpl struct {
	mu *sync.Mutex

	target mgl32.Vec3
	up     mgl32.Vec3

	radius    float32
	azimuth   float32
	elevation float32

	minRadius float32
	maxRadius float32

	orbitSpeed float32
	zoomSpeed  float32
}

var _ Camera = &cameraImpl{}

// Camera is an orbit camera. It holds spherical coordinates (radius, azimuth,
// elevation) around a target point and produces the view matrix for the
// render system. All methods are safe for concurrent use.
type Camera interface {
	// Position returns the camera's world-space position, derived from the
	// current spherical coordinates around the target.
	//
	// Returns:
	//   - mgl32.Vec3: world-space camera position
	Position() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// SetTarget moves the look-at point. The camera keeps its spherical
	// coordinates, so it translates along with the target.
	//
	// Parameters:
	//   - target: new world-space look-at point
	SetTarget(target mgl32.Vec3)

	// Radius returns the current distance from the target.
	//
	// Returns:
	//   - float32: orbit radius
	Radius() float32

	// SetRadius sets the distance from the target, clamped to the
	// configured min/max bounds.
	//
	// Parameters:
	//   - radius: new distance from target
	SetRadius(radius float32)

	// OrbitLeft rotates the camera left around the target by one orbit step.
	OrbitLeft()

	// OrbitRight rotates the camera right around the target by one orbit step.
	OrbitRight()

	// OrbitUp tilts the camera upward by one orbit step, clamped short of
	// the pole.
	OrbitUp()

	// OrbitDown tilts the camera downward by one orbit step, clamped short
	// of the pole.
	OrbitDown()

	// Zoom adjusts the orbit radius. Positive delta moves the camera closer
	// to the target. The result is clamped to the min/max radius bounds.
	//
	// Parameters:
	//   - delta: zoom amount, scaled by the configured zoom speed
	Zoom(delta float32)

	// ViewMatrix computes the view matrix for the current camera state.
	// Feed the result to the render system's SetView each time the camera
	// moves.
	//
	// Returns:
	//   - mgl32.Mat4: column-major view matrix
	ViewMatrix() mgl32.Mat4
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position()
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) SetTarget(target mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = target
}

func (c *cameraImpl) Radius() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.radius
}

func (c *cameraImpl) SetRadius(radius float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radius = clamp(radius, c.minRadius, c.maxRadius)
}

func (c *cameraImpl) OrbitLeft() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.azimuth -= c.orbitSpeed
}

func (c *cameraImpl) OrbitRight() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.azimuth += c.orbitSpeed
}

func (c *cameraImpl) OrbitUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elevation = clamp(c.elevation+c.orbitSpeed, -elevationLimit, elevationLimit)
}

func (c *cameraImpl) OrbitDown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.elevation = clamp(c.elevation-c.orbitSpeed, -elevationLimit, elevationLimit)
}

func (c *cameraImpl) Zoom(delta float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.radius = clamp(c.radius-delta*c.zoomSpeed, c.minRadius, c.maxRadius)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.LookAtV(c.position(), c.target, c.up)
}

// position derives the world-space position from the spherical coordinates.
// Caller must hold c.mu.
func (c *cameraImpl) position() mgl32.Vec3 {
	cosEl := float32(math.Cos(float64(c.elevation)))
	offset := mgl32.Vec3{
		c.radius * cosEl * float32(math.Sin(float64(c.azimuth))),
		c.radius * float32(math.Sin(float64(c.elevation))),
		c.radius * cosEl * float32(math.Cos(float64(c.azimuth))),
	}
	return c.target.Add(offset)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
