package rendersystem

import "github.com/cogentcore/webgpu/wgpu"

// FrameFuture is a handle to the GPU work submitted for one frame. The driver
// loop threads it from one FinishFrame call into the next so per-frame
// uniform writes never race the previous frame's reads.
type FrameFuture interface {
	// Wait blocks until the submitted work has completed. Waiting on an
	// already-signaled future returns immediately.
	Wait()

	// IsSignaled reports whether the submitted work has already completed,
	// without blocking.
	IsSignaled() bool
}

// nowFuture is a future whose work already finished, used as the seed for the
// first frame and as the replacement after a dropped or failed submission.
type nowFuture struct{}

var _ FrameFuture = nowFuture{}

func (nowFuture) Wait()            {}
func (nowFuture) IsSignaled() bool { return true }

// NowFuture returns an already-signaled future. Drivers pass it as the
// previous-frame future for the very first FinishFrame call.
func NowFuture() FrameFuture { return nowFuture{} }

// deviceFuture completes when the device drains the queue submission it was
// created after. wgpu-native exposes no per-submission fence through this
// binding, so Wait polls the device until all outstanding work is done. That
// is a stronger guarantee than the single frame needs but is safe.
type deviceFuture struct {
	device   *wgpu.Device
	signaled bool
}

var _ FrameFuture = &deviceFuture{}

func (f *deviceFuture) Wait() {
	if f.signaled {
		return
	}
	f.device.Poll(true, nil)
	f.signaled = true
}

func (f *deviceFuture) IsSignaled() bool {
	if f.signaled {
		return true
	}
	if f.device.Poll(false, nil) {
		f.signaled = true
	}
	return f.signaled
}
