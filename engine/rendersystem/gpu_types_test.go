package rendersystem

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func float32At(t *testing.T, buf []byte, offset int) float32 {
	t.Helper()
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
}

// TestGPUViewProjectionMarshalLayout checks the two matrices land at their
// documented offsets in column-major order.
func TestGPUViewProjectionMarshalLayout(t *testing.T) {
	view := mgl32.Translate3D(1, 2, 3)
	projection := mgl32.Perspective(fieldOfView, 16.0/9.0, nearPlane, farPlane)

	buf := NewGPUViewProjection(view, projection).Marshal()
	if len(buf) != 128 {
		t.Fatalf("marshaled size = %d, want 128", len(buf))
	}

	// Column-major translation lives in elements 12..14 of the view matrix.
	if got := float32At(t, buf, 12*4); got != 1 {
		t.Errorf("view translation x = %v, want 1", got)
	}
	if got := float32At(t, buf, 13*4); got != 2 {
		t.Errorf("view translation y = %v, want 2", got)
	}
	if got := float32At(t, buf, 14*4); got != 3 {
		t.Errorf("view translation z = %v, want 3", got)
	}

	// The projection matrix starts at offset 64.
	if got := float32At(t, buf, 64); got != projection[0] {
		t.Errorf("projection[0] = %v, want %v", got, projection[0])
	}
	if got := float32At(t, buf, 64+15*4); got != projection[15] {
		t.Errorf("projection[15] = %v, want %v", got, projection[15])
	}
}

// TestGPUModelDataMarshalLayout checks the model and normal matrices land at
// offsets 0 and 64.
func TestGPUModelDataMarshalLayout(t *testing.T) {
	modelMat := mgl32.Scale3D(2, 2, 2)
	normals := modelMat.Inv().Transpose()

	buf := NewGPUModelData(modelMat, normals).Marshal()
	if len(buf) != 128 {
		t.Fatalf("marshaled size = %d, want 128", len(buf))
	}

	if got := float32At(t, buf, 0); got != 2 {
		t.Errorf("model[0] = %v, want 2", got)
	}
	if got := float32At(t, buf, 64); got != 0.5 {
		t.Errorf("normals[0] = %v, want 0.5", got)
	}
}

func TestNowFutureIsSignaled(t *testing.T) {
	f := NowFuture()
	if !f.IsSignaled() {
		t.Error("NowFuture should start signaled")
	}
	// Wait must return immediately on a signaled future.
	f.Wait()
	if !f.IsSignaled() {
		t.Error("NowFuture should stay signaled after Wait")
	}
}
