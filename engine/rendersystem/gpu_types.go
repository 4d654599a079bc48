package rendersystem

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GPUViewProjection is the camera uniform shared by the geometry and light
// marker pipelines. Both matrices are column-major, matching WGSL mat4x4<f32>
// layout.
//
// Layout (std140/WGSL uniform, 128 bytes):
//
//	offset 0:  view (mat4x4<f32>, 64 bytes)
//	offset 64: projection (mat4x4<f32>, 64 bytes)
type GPUViewProjection struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// NewGPUViewProjection builds the camera uniform from view and projection
// matrices.
func NewGPUViewProjection(view, projection mgl32.Mat4) GPUViewProjection {
	return GPUViewProjection{View: view, Projection: projection}
}

// Size returns the byte size of the GPU representation.
func (GPUViewProjection) Size() int { return 128 }

// Marshal serializes the uniform into little-endian bytes matching the
// documented layout.
func (vp GPUViewProjection) Marshal() []byte {
	buf := make([]byte, vp.Size())
	putMat4(buf[0:64], vp.View)
	putMat4(buf[64:128], vp.Projection)
	return buf
}

// GPUModelData is the per-draw uniform carrying a model's transform and the
// matching normal matrix. The normal matrix is the inverse transpose of the
// model matrix, uploaded as a full mat4 so both members share one layout.
//
// Layout (std140/WGSL uniform, 128 bytes):
//
//	offset 0:  model (mat4x4<f32>, 64 bytes)
//	offset 64: normals (mat4x4<f32>, 64 bytes)
type GPUModelData struct {
	Model   mgl32.Mat4
	Normals mgl32.Mat4
}

// NewGPUModelData builds the per-draw uniform from a model matrix and its
// normal matrix.
func NewGPUModelData(model, normals mgl32.Mat4) GPUModelData {
	return GPUModelData{Model: model, Normals: normals}
}

// Size returns the byte size of the GPU representation.
func (GPUModelData) Size() int { return 128 }

// Marshal serializes the uniform into little-endian bytes matching the
// documented layout.
func (md GPUModelData) Marshal() []byte {
	buf := make([]byte, md.Size())
	putMat4(buf[0:64], md.Model)
	putMat4(buf[64:128], md.Normals)
	return buf
}

// putMat4 writes a column-major mat4 into dst as 16 little-endian floats.
func putMat4(dst []byte, m mgl32.Mat4) {
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(m[i]))
	}
}
