package light

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// GPUAmbientLight is the GPU-aligned representation of the ambient light
// uniform buffer. Size: 16 bytes (std140 / WGSL aligned).
type GPUAmbientLight struct {
	Color     [3]float32 // offset  0: light color (vec3<f32>)
	Intensity float32    // offset 12: intensity scalar (f32)
}

// NewGPUAmbientLight builds the uniform representation of an AmbientLight.
//
// Parameters:
//   - l: the ambient light value to marshal
//
// Returns:
//   - GPUAmbientLight: the GPU-aligned uniform struct
func NewGPUAmbientLight(l AmbientLight) GPUAmbientLight {
	return GPUAmbientLight{
		Color:     l.Color,
		Intensity: l.Intensity,
	}
}

// Size returns the size of the GPUAmbientLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (16)
func (g *GPUAmbientLight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUAmbientLight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUAmbientLight) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(g.Intensity))
	return buf
}

// GPUDirectionalLight is the GPU-aligned representation of the per-draw
// directional light uniform buffer. The light position is broadcast into a
// vec4 as (x, y, z, z); the fragment shader only consumes xyz, the fourth
// component is a duplicate of z to fill the vector. Size: 32 bytes.
type GPUDirectionalLight struct {
	Position [4]float32 // offset  0: world-space position as (x, y, z, z) (vec4<f32>)
	Color    [3]float32 // offset 16: light color (vec3<f32>)
	_pad     float32    // offset 28: padding to 32 bytes
}

// NewGPUDirectionalLight builds the uniform representation of a DirectionalLight,
// expanding the 3-component position into the (x, y, z, z) vec4 the shader expects.
//
// Parameters:
//   - l: the directional light value to marshal
//
// Returns:
//   - GPUDirectionalLight: the GPU-aligned uniform struct
func NewGPUDirectionalLight(l DirectionalLight) GPUDirectionalLight {
	return GPUDirectionalLight{
		Position: [4]float32{l.Position[0], l.Position[1], l.Position[2], l.Position[2]},
		Color:    l.Color,
	}
}

// Size returns the size of the GPUDirectionalLight struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (32)
func (g *GPUDirectionalLight) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUDirectionalLight struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUDirectionalLight) Marshal() []byte {
	buf := make([]byte, g.Size())
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.Color[i]))
	}
	binary.LittleEndian.PutUint32(buf[28:], 0) // _pad
	return buf
}
