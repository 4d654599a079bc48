package rendersystem

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hhllhhyyds/learn-vulkano/engine/light"
	"github.com/hhllhhyyds/learn-vulkano/engine/window"
)

// RenderSystemBuilderOption is a functional option for configuring a
// RenderSystem during creation.
type RenderSystemBuilderOption func(*renderSystem)

// WithBackend replaces the default WebGPU backend. Intended for tests and for
// embedding the render system behind a custom device layer; when set, the
// window argument to NewRenderSystem may be nil.
//
// Parameters:
//   - b: the backend to drive
func WithBackend(b Backend) RenderSystemBuilderOption {
	return func(r *renderSystem) {
		r.backend = b
	}
}

// WithAmbient sets the scene's initial ambient light.
//
// Parameters:
//   - l: the ambient light to start with
func WithAmbient(l light.AmbientLight) RenderSystemBuilderOption {
	return func(r *renderSystem) {
		r.ambient = l
	}
}

// NewRenderSystem creates a render system presenting to the given window.
// GPU initialization failures are fatal and panic; a process that cannot
// create its device has nothing useful to do.
//
// Parameters:
//   - win: the window to present to; may be nil when WithBackend is used
//   - options: a variadic list of RenderSystemBuilderOption functions
//
// Returns:
//   - RenderSystem: the configured render system, stopped and ready for the
//     first StartFrame
func NewRenderSystem(win window.Window, options ...RenderSystemBuilderOption) RenderSystem {
	r := &renderSystem{
		stage:      StageStopped,
		view:       mgl32.Ident4(),
		projection: mgl32.Ident4(),
		ambient:    light.DefaultAmbient(),
	}
	for _, opt := range options {
		opt(r)
	}
	if r.backend == nil {
		r.backend = newWGPUBackend(win)
	}

	width, height := r.backend.Extent()
	if height != 0 {
		aspect := float32(width) / float32(height)
		r.projection = mgl32.Perspective(fieldOfView, aspect, nearPlane, farPlane)
	}
	r.pushViewProjection()
	r.SetAmbient(r.ambient)

	return r
}
