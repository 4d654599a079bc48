// package light contains the plain value descriptors for the light sources
// consumed by the render system. They are not interface-wrapped structs;
// callers replace them wholesale to animate or reconfigure a light.
package light

// AmbientLight describes a scene-wide base illumination level applied once
// per frame during the lighting pass.
type AmbientLight struct {
	// Color is the RGB color of the ambient term.
	Color [3]float32
	// Intensity scales the ambient contribution. Typical values are well
	// below 1; the default scene ambient is 0.1.
	Intensity float32
}

// DirectionalLight describes a distant light source. Position is a point in
// world space that the fragment shader normalizes against per fragment, so
// only its direction from the origin matters; there is no distance falloff.
type DirectionalLight struct {
	// Position is the world-space point defining the light direction.
	Position [3]float32
	// Color is the RGB color of the light.
	Color [3]float32
}

// DefaultAmbient returns the ambient light the render system starts with:
// white at intensity 0.1.
//
// Returns:
//   - AmbientLight: the default ambient light
func DefaultAmbient() AmbientLight {
	return AmbientLight{
		Color:     [3]float32{1.0, 1.0, 1.0},
		Intensity: 0.1,
	}
}
