package rendersystem

// RenderStage tracks where the frame protocol currently is. Every public
// operation on the render system checks the stage before recording anything,
// so calls made out of order degrade into a skipped frame instead of
// corrupting the command stream.
type RenderStage int

const (
	// StageStopped means no frame is in flight.
	StageStopped RenderStage = iota
	// StageDeferred means a frame is recording geometry draws into the
	// G-buffer subpass.
	StageDeferred
	// StageAmbient means the lighting subpass has begun and the single
	// ambient pass has been recorded.
	StageAmbient
	// StageDirectional means one or more directional light passes have been
	// recorded.
	StageDirectional
	// StageLightObject means at least one light marker has been drawn after
	// the directional passes.
	StageLightObject
	// StageNeedsRedraw means the swapchain is stale and must be rebuilt
	// before another frame can start.
	StageNeedsRedraw
)

func (s RenderStage) String() string {
	switch s {
	case StageStopped:
		return "Stopped"
	case StageDeferred:
		return "Deferred"
	case StageAmbient:
		return "Ambient"
	case StageDirectional:
		return "Directional"
	case StageLightObject:
		return "LightObject"
	case StageNeedsRedraw:
		return "NeedsRedraw"
	default:
		return "Unknown"
	}
}
