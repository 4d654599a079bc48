// Package rendersystem drives a deferred lighting pipeline through an ordered
// per-frame protocol: StartFrame, geometry draws, one ambient pass, any
// number of directional passes, optional light markers, FinishFrame. A stage
// machine tracks the protocol; calls made out of order abort the frame
// instead of corrupting the command stream, so a misbehaving driver loop
// skips a frame rather than crashing.
package rendersystem

import (
	"errors"
	"log"
	"math"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hhllhhyyds/learn-vulkano/common"
	"github.com/hhllhhyyds/learn-vulkano/engine/light"
	"github.com/hhllhhyyds/learn-vulkano/engine/model"
)

const (
	// fieldOfView is the vertical field of view of the projection matrix.
	fieldOfView = float32(math.Pi / 2)
	// nearPlane and farPlane bound the projection depth range.
	nearPlane = 0.01
	farPlane  = 100.0

	// lightMarkerScale is the uniform scale applied to light marker spheres.
	lightMarkerScale = 0.2
)

// renderSystem is the implementation of the RenderSystem interface.
type renderSystem struct {
	backend Backend

	stage      RenderStage
	recording  bool
	imageIndex int

	view       mgl32.Mat4
	projection mgl32.Mat4
	ambient    light.AmbientLight
}

// RenderSystem renders deferred-lit frames. One frame is produced per
// StartFrame/FinishFrame pair; all other methods only record work between
// those two calls.
type RenderSystem interface {
	// StartFrame acquires the next swapchain image and begins recording the
	// geometry pass. If the surface is stale the swapchain is rebuilt and the
	// frame silently skipped; the following StartFrame proceeds normally.
	StartFrame()

	// RenderModel records one model into the geometry pass using the model's
	// current transform. Must be called between StartFrame and RenderAmbient.
	//
	// Parameters:
	//   - m: the model to draw this frame
	RenderModel(m model.Model)

	// RenderAmbient advances to the lighting pass and records the single
	// full-screen ambient pass. Calling it again in the same frame is a
	// no-op.
	RenderAmbient()

	// RenderDirectional records one additive full-screen pass for a
	// directional light. Must be called after RenderAmbient; may be called
	// once per light.
	//
	// Parameters:
	//   - l: the directional light to accumulate
	RenderDirectional(l light.DirectionalLight)

	// RenderLightObject draws a small sphere marker at a light's position,
	// depth-tested against the frame's geometry. Must be called after at
	// least one RenderDirectional call.
	//
	// Parameters:
	//   - l: the light whose position and color the marker shows
	RenderLightObject(l light.DirectionalLight)

	// FinishFrame submits the recorded frame gated on the previous frame's
	// future and presents it.
	//
	// Parameters:
	//   - previous: the future returned by the last FinishFrame, or
	//     NowFuture() for the first frame
	//
	// Returns:
	//   - FrameFuture: the completion handle for this frame, or an
	//     already-signaled future when the frame was dropped or failed
	FinishFrame(previous FrameFuture) FrameFuture

	// SetView replaces the camera view matrix for subsequent frames.
	//
	// Parameters:
	//   - view: the new view matrix
	SetView(view mgl32.Mat4)

	// SetAmbient replaces the scene's ambient light for subsequent frames.
	//
	// Parameters:
	//   - l: the new ambient light
	SetAmbient(l light.AmbientLight)

	// RecreateSwapchain rebuilds the swapchain, frame targets and projection
	// for the current window size. Called mid-frame it defers the rebuild to
	// the next operation, which aborts the frame and rebuilds then.
	RecreateSwapchain()

	// Stage returns the current position in the frame protocol.
	Stage() RenderStage

	// Device exposes the underlying GPU device. Nil when the backend has no
	// real device.
	Device() *wgpu.Device
}

var _ RenderSystem = &renderSystem{}

func (r *renderSystem) StartFrame() {
	switch r.stage {
	case StageStopped:
		// proceed
	case StageNeedsRedraw:
		r.abort()
		r.rebuild()
		return
	default:
		r.abort()
		return
	}

	imageIndex, suboptimal, err := r.backend.AcquireFrame()
	if err != nil {
		if errors.Is(err, ErrSurfaceOutdated) {
			r.rebuild()
			return
		}
		log.Printf("rendersystem: failed to acquire next image: %v", err)
		return
	}
	if suboptimal {
		r.backend.AbortFrame()
		r.rebuild()
		return
	}

	if err := r.backend.BeginFrame(imageIndex); err != nil {
		log.Printf("rendersystem: failed to begin frame: %v", err)
		r.backend.AbortFrame()
		return
	}

	r.imageIndex = imageIndex
	r.recording = true
	r.stage = StageDeferred
}

func (r *renderSystem) RenderModel(m model.Model) {
	switch r.stage {
	case StageDeferred:
		// proceed
	case StageNeedsRedraw:
		r.abort()
		r.rebuild()
		return
	default:
		r.abort()
		return
	}

	mesh := m.Mesh()
	data := NewGPUModelData(m.ModelMatrix(), m.NormalMatrix()).Marshal()
	r.backend.DrawModel(data, common.SliceToBytes(mesh), len(mesh))
}

func (r *renderSystem) RenderAmbient() {
	switch r.stage {
	case StageDeferred:
		r.stage = StageAmbient
	case StageAmbient:
		// ambient is applied at most once per frame
		return
	case StageNeedsRedraw:
		r.abort()
		r.rebuild()
		return
	default:
		r.abort()
		return
	}

	r.backend.NextSubpass()
	r.backend.DrawAmbient()
}

func (r *renderSystem) RenderDirectional(l light.DirectionalLight) {
	switch r.stage {
	case StageAmbient:
		r.stage = StageDirectional
	case StageDirectional:
		// proceed, one additive pass per light
	case StageNeedsRedraw:
		r.abort()
		r.rebuild()
		return
	default:
		r.abort()
		return
	}

	g := light.NewGPUDirectionalLight(l)
	r.backend.DrawDirectional(g.Marshal())
}

func (r *renderSystem) RenderLightObject(l light.DirectionalLight) {
	switch r.stage {
	case StageDirectional:
		r.stage = StageLightObject
	case StageLightObject:
		// proceed, one marker per light
	case StageNeedsRedraw:
		r.abort()
		r.rebuild()
		return
	default:
		r.abort()
		return
	}

	marker := model.NewModel(
		model.WithMesh(model.Sphere(l.Color)),
		model.WithUniformScale(lightMarkerScale),
	)
	marker.Translate(mgl32.Vec3{l.Position[0], l.Position[1], l.Position[2]})

	verts := marker.ColorMesh()
	data := NewGPUModelData(marker.ModelMatrix(), marker.NormalMatrix()).Marshal()
	r.backend.DrawLightObject(data, common.SliceToBytes(verts), len(verts))
}

func (r *renderSystem) FinishFrame(previous FrameFuture) FrameFuture {
	switch r.stage {
	case StageDirectional, StageLightObject:
		// proceed
	case StageNeedsRedraw:
		r.abort()
		r.rebuild()
		return previous
	default:
		r.abort()
		return previous
	}

	future, err := r.backend.SubmitFrame(r.imageIndex, previous)
	r.recording = false
	r.stage = StageStopped
	if err != nil {
		if errors.Is(err, ErrSurfaceOutdated) {
			r.rebuild()
		} else {
			log.Printf("rendersystem: failed to flush frame: %v", err)
		}
		return NowFuture()
	}
	return future
}

func (r *renderSystem) SetView(view mgl32.Mat4) {
	r.view = view
	r.pushViewProjection()
}

func (r *renderSystem) SetAmbient(l light.AmbientLight) {
	r.ambient = l
	g := light.NewGPUAmbientLight(l)
	r.backend.SetAmbient(g.Marshal())
}

func (r *renderSystem) RecreateSwapchain() {
	if r.recording {
		r.stage = StageNeedsRedraw
		return
	}
	r.rebuild()
}

func (r *renderSystem) Stage() RenderStage {
	return r.stage
}

func (r *renderSystem) Device() *wgpu.Device {
	return r.backend.Device()
}

// abort drops the in-flight recording, if any, and returns the stage machine
// to Stopped. The frame is skipped without side effects.
func (r *renderSystem) abort() {
	if r.recording {
		r.backend.AbortFrame()
		r.recording = false
	}
	r.stage = StageStopped
}

// rebuild recreates the swapchain and everything derived from its extent: the
// frame targets live in the backend, the projection matrix and camera uniform
// here. Must not run while a frame is being recorded.
func (r *renderSystem) rebuild() {
	if err := r.backend.RecreateSwapchain(); err != nil {
		log.Printf("rendersystem: failed to rebuild swapchain: %v", err)
		return
	}
	width, height := r.backend.Extent()
	if height != 0 {
		aspect := float32(width) / float32(height)
		r.projection = mgl32.Perspective(fieldOfView, aspect, nearPlane, farPlane)
	}
	r.pushViewProjection()
}

func (r *renderSystem) pushViewProjection() {
	data := NewGPUViewProjection(r.view, r.projection).Marshal()
	r.backend.SetViewProjection(data)
}
