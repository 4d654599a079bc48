package rendersystem

import _ "embed"

// deferredShaderSource is the geometry pass shader. It transforms NormalVertex
// streams by the camera and per-draw model uniforms and writes albedo and
// world-space normals to the two G-buffer targets.
//
//go:embed shaders/deferred.wgsl
var deferredShaderSource string

// ambientShaderSource is the full-screen ambient shader. It reads the
// G-buffer color target and scales it by the ambient light uniform.
//
//go:embed shaders/ambient.wgsl
var ambientShaderSource string

// directionalShaderSource is the full-screen directional light shader. It
// reads the G-buffer color and normal targets and accumulates one light's
// diffuse contribution additively.
//
//go:embed shaders/directional.wgsl
var directionalShaderSource string

// lightObjectShaderSource is the light marker shader. It draws ColoredVertex
// streams depth-tested against the geometry pass depth buffer.
//
//go:embed shaders/light_object.wgsl
var lightObjectShaderSource string
