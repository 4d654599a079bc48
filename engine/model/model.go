// package model holds the CPU-side representation of renderable geometry: a
// triangle mesh plus an accumulated translation/rotation/uniform-scale
// transform, with memoized model and normal matrices.
package model

import (
	"github.com/go-gl/mathgl/mgl32"
)

// matrixCache memoizes the derived model and normal matrices between
// transform mutations. Both matrices are always computed and stored together;
// a mutation invalidates both at once.
type matrixCache struct {
	valid  bool
	model  mgl32.Mat4
	normal mgl32.Mat4
}

// model is the implementation of the Model interface.
type model struct {
	mesh         []NormalVertex
	translation  mgl32.Mat4
	rotation     mgl32.Mat4
	uniformScale float32

	cache matrixCache
}

// Model defines the interface for a renderable geometry object.
//
// A Model owns its vertex data and an accumulated transform. Successive
// Translate and Rotate calls compose by post-multiplication, matching the
// order the calls were made in. The derived model matrix
// (translation * rotation * scale) and normal matrix
// (inverse(transpose(model))) are computed lazily and cached together until
// the next mutation.
//
// Models are not safe for concurrent use; the render loop owns them.
type Model interface {
	// Mesh retrieves the model's vertices in the deferred-geometry format.
	// The returned slice is the model's backing data, not a copy.
	//
	// Returns:
	//   - []NormalVertex: the mesh vertices
	Mesh() []NormalVertex

	// ColorMesh retrieves the model's vertices reduced to position and color,
	// the format consumed by the light-marker pipeline.
	//
	// Returns:
	//   - []ColoredVertex: the mesh vertices without normals
	ColorMesh() []ColoredVertex

	// ModelMatrix returns translation * rotation * scale(uniformScale),
	// recomputing and caching both the model and normal matrix if a mutation
	// occurred since the last access.
	//
	// Returns:
	//   - mgl32.Mat4: the model matrix
	ModelMatrix() mgl32.Mat4

	// NormalMatrix returns inverse(transpose(ModelMatrix())), recomputing and
	// caching both matrices if a mutation occurred since the last access.
	//
	// Returns:
	//   - mgl32.Mat4: the normal matrix
	NormalMatrix() mgl32.Mat4

	// Rotate post-multiplies a rotation about the given axis onto the model's
	// accumulated rotation and invalidates the matrix cache.
	//
	// Parameters:
	//   - radians: rotation angle in radians
	//   - axis: rotation axis (need not be normalized, must be non-zero)
	Rotate(radians float32, axis mgl32.Vec3)

	// Translate post-multiplies a translation onto the model's accumulated
	// translation and invalidates the matrix cache.
	//
	// Parameters:
	//   - v: translation vector in world units
	Translate(v mgl32.Vec3)

	// ZeroRotation resets the accumulated rotation to identity and
	// invalidates the matrix cache.
	ZeroRotation()
}

var _ Model = &model{}

// NewModel creates a new Model with the specified options applied. A mesh is
// normally supplied via WithMesh; a model without one renders nothing.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new Model with identity transform
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		translation:  mgl32.Ident4(),
		rotation:     mgl32.Ident4(),
		uniformScale: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Mesh() []NormalVertex {
	return m.mesh
}

func (m *model) ColorMesh() []ColoredVertex {
	colored := make([]ColoredVertex, len(m.mesh))
	for i, v := range m.mesh {
		colored[i] = ColoredVertex{
			Position: v.Position,
			Color:    v.Color,
		}
	}
	return colored
}

func (m *model) ModelMatrix() mgl32.Mat4 {
	m.refreshCache()
	return m.cache.model
}

func (m *model) NormalMatrix() mgl32.Mat4 {
	m.refreshCache()
	return m.cache.normal
}

func (m *model) Rotate(radians float32, axis mgl32.Vec3) {
	m.rotation = m.rotation.Mul4(mgl32.HomogRotate3D(radians, axis.Normalize()))
	m.cache.valid = false
}

func (m *model) Translate(v mgl32.Vec3) {
	m.translation = m.translation.Mul4(mgl32.Translate3D(v.X(), v.Y(), v.Z()))
	m.cache.valid = false
}

func (m *model) ZeroRotation() {
	m.rotation = mgl32.Ident4()
	m.cache.valid = false
}

// refreshCache recomputes both derived matrices when the cache is stale.
// The two are always refreshed together so NormalMatrix never observes a
// model matrix from a different transform state.
func (m *model) refreshCache() {
	if m.cache.valid {
		return
	}
	s := m.uniformScale
	modelMat := m.translation.Mul4(m.rotation).Mul4(mgl32.Scale3D(s, s, s))
	m.cache = matrixCache{
		valid:  true,
		model:  modelMat,
		normal: modelMat.Inv().Transpose(),
	}
}
