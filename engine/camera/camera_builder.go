package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithTarget sets the look-at point.
//
// Parameters:
//   - target: world-space look-at point
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's target
func WithTarget(target mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = target
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithRadius sets the initial distance from the target.
//
// Parameters:
//   - radius: distance from target
//
// Returns:
//   - CameraBuilderOption: a function that sets the orbit radius
func WithRadius(radius float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.radius = radius
	}
}

// WithRadiusBounds sets the min/max zoom distance.
//
// Parameters:
//   - min: minimum distance from target
//   - max: maximum distance from target
//
// Returns:
//   - CameraBuilderOption: a function that sets the radius bounds
func WithRadiusBounds(min, max float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.minRadius = min
		c.maxRadius = max
	}
}

// WithOrbitSpeed sets the angle in radians applied by each orbit step.
//
// Parameters:
//   - speed: orbit step in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the orbit speed
func WithOrbitSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.orbitSpeed = speed
	}
}

// WithZoomSpeed sets the distance applied per unit of zoom delta.
//
// Parameters:
//   - speed: zoom scale factor
//
// Returns:
//   - CameraBuilderOption: a function that sets the zoom speed
func WithZoomSpeed(speed float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.zoomSpeed = speed
	}
}

// NewCamera creates an orbit camera with sensible defaults: target at the
// origin, Y-up, radius 5 bounded to [0.5, 100], orbit step 0.05 radians and
// zoom speed 0.5.
//
// Parameters:
//   - options: optional camera configuration
//
// Returns:
//   - Camera: the configured camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		target:     mgl32.Vec3{0, 0, 0},
		up:         mgl32.Vec3{0, 1, 0},
		radius:     5,
		minRadius:  0.5,
		maxRadius:  100,
		orbitSpeed: 0.05,
		zoomSpeed:  0.5,
	}
	for _, opt := range options {
		opt(c)
	}
	c.radius = clamp(c.radius, c.minRadius, c.maxRadius)
	return c
}
