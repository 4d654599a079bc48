package model

// Byte strides of the packed vertex formats, used when describing GPU vertex
// buffer layouts.
const (
	NormalVertexSize  = 36
	ColoredVertexSize = 24
	DummyVertexSize   = 8
)

// NormalVertex is the vertex format consumed by the deferred geometry
// pipeline: a model-space position, a normal for lighting, and an RGB color.
// Fields are tightly packed float32s (36 bytes) matching the pipeline's
// vertex buffer layout.
type NormalVertex struct {
	Position [3]float32 // offset  0: vertex position in model space
	Normal   [3]float32 // offset 12: vertex normal
	Color    [3]float32 // offset 24: per-vertex RGB color
}

// ColoredVertex is the reduced vertex format used by the light-marker
// pipeline: position and color only (24 bytes, tightly packed).
type ColoredVertex struct {
	Position [3]float32 // offset  0: vertex position in model space
	Color    [3]float32 // offset 12: per-vertex RGB color
}

// DummyVertex carries only a 2D position in normalized device coordinates.
// Lighting passes have no real geometry, but every draw still needs a vertex
// stream; a list of these covering the whole viewport makes the fragment
// shader run once per pixel.
type DummyVertex struct {
	Position [2]float32 // offset 0: NDC position
}

// DummyVertexList returns the fixed full-screen quad: two triangles covering
// normalized device coordinates -1..1 (6 vertices).
//
// Returns:
//   - [6]DummyVertex: the full-screen quad vertices
func DummyVertexList() [6]DummyVertex {
	return [6]DummyVertex{
		{Position: [2]float32{-1.0, -1.0}},
		{Position: [2]float32{-1.0, 1.0}},
		{Position: [2]float32{1.0, 1.0}},
		{Position: [2]float32{-1.0, -1.0}},
		{Position: [2]float32{1.0, 1.0}},
		{Position: [2]float32{1.0, -1.0}},
	}
}
