package rendersystem

import (
	"errors"

	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSurfaceOutdated reports that the presentable surface no longer matches
// the window (typically after a resize) and the swapchain must be rebuilt
// before another frame can be produced.
var ErrSurfaceOutdated = errors.New("rendersystem: surface outdated")

// Backend is the device boundary the render system drives. It owns the
// swapchain, the per-image frame targets (final color, color and normal
// accumulation, depth), the four render pipelines and their bind groups, and
// the command recording for one frame at a time.
//
// The render system guarantees call ordering: AcquireFrame, BeginFrame, zero
// or more DrawModel calls, NextSubpass, DrawAmbient, DrawDirectional and
// DrawLightObject calls, then exactly one of SubmitFrame or AbortFrame. A
// backend may assume that ordering and does not re-validate it.
type Backend interface {
	// RecreateSwapchain rebuilds the swapchain and every per-image frame
	// target as a single unit, sized to the current window extent. Must not
	// be called while a frame is being recorded.
	//
	// Returns:
	//   - error: an error if the swapchain or its attachments could not be rebuilt
	RecreateSwapchain() error

	// ImageCount returns the number of swapchain images. The backend keeps
	// one set of frame targets per image.
	ImageCount() int

	// Extent returns the current swapchain extent in pixels.
	//
	// Returns:
	//   - width: the swapchain width in pixels
	//   - height: the swapchain height in pixels
	Extent() (width, height uint32)

	// SetViewProjection replaces the camera uniform read by the geometry and
	// light marker pipelines. The data is a marshaled GPUViewProjection.
	SetViewProjection(data []byte)

	// SetAmbient replaces the ambient light uniform read by the ambient
	// pipeline. The data is a marshaled GPUAmbientLight.
	SetAmbient(data []byte)

	// AcquireFrame blocks until the next swapchain image is available.
	//
	// Returns:
	//   - imageIndex: the index of the acquired image
	//   - suboptimal: true when the image is usable but the swapchain no
	//     longer matches the surface exactly
	//   - err: ErrSurfaceOutdated when the swapchain must be rebuilt, or any
	//     other acquisition failure
	AcquireFrame() (imageIndex int, suboptimal bool, err error)

	// BeginFrame starts recording a frame against the given image: it opens
	// the command encoder and begins the geometry pass with all attachments
	// cleared (color to black, depth to 1.0).
	//
	// Parameters:
	//   - imageIndex: the image returned by AcquireFrame
	//
	// Returns:
	//   - error: an error if recording could not begin
	BeginFrame(imageIndex int) error

	// DrawModel records one geometry draw. The vertex data is a packed
	// NormalVertex stream and modelData a marshaled GPUModelData for this
	// draw only.
	//
	// Parameters:
	//   - modelData: the marshaled per-draw transform uniform
	//   - vertices: the packed vertex bytes
	//   - vertexCount: the number of vertices in the stream
	DrawModel(modelData []byte, vertices []byte, vertexCount int)

	// NextSubpass advances recording from the geometry pass to the lighting
	// pass. After this call the color and normal targets are readable by the
	// lighting pipelines and only lighting draws may be recorded.
	NextSubpass()

	// DrawAmbient records the single full-screen ambient pass using the
	// uniform last installed by SetAmbient.
	DrawAmbient()

	// DrawDirectional records one additive full-screen pass for a
	// directional light. lightData is a marshaled GPUDirectionalLight.
	DrawDirectional(lightData []byte)

	// DrawLightObject records one depth-tested marker draw in the lighting
	// pass. The vertex data is a packed ColoredVertex stream.
	//
	// Parameters:
	//   - modelData: the marshaled per-draw transform uniform
	//   - vertices: the packed vertex bytes
	//   - vertexCount: the number of vertices in the stream
	DrawLightObject(modelData []byte, vertices []byte, vertexCount int)

	// AbortFrame drops the current recording and any acquired image without
	// submitting. Safe to call whether or not recording reached the lighting
	// pass.
	AbortFrame()

	// SubmitFrame finishes recording, submits the commands after the given
	// future's work has completed, presents the image, and returns a future
	// for this frame's work.
	//
	// Parameters:
	//   - imageIndex: the image returned by AcquireFrame
	//   - after: the previous frame's future to gate the submission on
	//
	// Returns:
	//   - FrameFuture: the completion handle for this frame's work
	//   - error: ErrSurfaceOutdated when presentation found the swapchain
	//     stale, or any other submission failure
	SubmitFrame(imageIndex int, after FrameFuture) (FrameFuture, error)

	// Device exposes the underlying GPU device for callers that allocate
	// their own resources. Test backends may return nil.
	Device() *wgpu.Device
}
