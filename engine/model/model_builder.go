package model

// ModelBuilderOption is a functional option for configuring a Model via NewModel.
type ModelBuilderOption func(*model)

// WithMesh is an option builder that sets the vertex data of the Model.
// The Model takes ownership of the slice.
//
// Parameters:
//   - mesh: the vertices in deferred-geometry format
//
// Returns:
//   - ModelBuilderOption: a function that applies the mesh option to a model
func WithMesh(mesh []NormalVertex) ModelBuilderOption {
	return func(m *model) {
		m.mesh = mesh
	}
}

// WithUniformScale is an option builder that sets the uniform scale factor of
// the Model. The default is 1.0.
//
// Parameters:
//   - scale: the scale factor applied equally on all three axes
//
// Returns:
//   - ModelBuilderOption: a function that applies the scale option to a model
func WithUniformScale(scale float32) ModelBuilderOption {
	return func(m *model) {
		m.uniformScale = scale
	}
}
