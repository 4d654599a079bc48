// package loader parses Wavefront OBJ files into the vertex format consumed
// by the deferred geometry pipeline. Only the subset of the format needed for
// lit, untextured models is handled: positions, normals, texture coordinates
// (parsed and discarded) and triangular faces.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/hhllhhyyds/learn-vulkano/engine/model"
)

// defaultColor is the vertex color applied when no WithColor option is given,
// a warm orange that makes untextured models readable under white light.
var defaultColor = [3]float32{1.0, 0.35, 0.137}

// loadConfig collects the options applied to a single load.
type loadConfig struct {
	color [3]float32
	// invertWinding flips the second and third index of every face. OBJ
	// exports from clockwise-winding tools (Blender is the common case) need
	// this to come out counter-clockwise for back-face culling.
	invertWinding bool
}

// LoadOption is a functional option for configuring an OBJ load.
type LoadOption func(*loadConfig)

// WithColor is an option builder that sets the RGB color applied to every
// loaded vertex. The default is (1.0, 0.35, 0.137).
//
// Parameters:
//   - color: the per-vertex RGB color
//
// Returns:
//   - LoadOption: a function that applies the color option to a load
func WithColor(color [3]float32) LoadOption {
	return func(c *loadConfig) {
		c.color = color
	}
}

// WithInvertWindingOrder is an option builder that sets whether face indices
// are flipped to convert clockwise-wound input to counter-clockwise output.
// The default is true, matching the common Blender export convention.
//
// Parameters:
//   - invert: true to flip the winding order of every face
//
// Returns:
//   - LoadOption: a function that applies the winding option to a load
func WithInvertWindingOrder(invert bool) LoadOption {
	return func(c *loadConfig) {
		c.invertWinding = invert
	}
}

// rawTriple holds one parsed vec-like line ("v", "vn" or "vt"). Two-component
// lines are padded with a zero z.
type rawTriple [3]float32

// rawFace holds the 0-based index triples of one triangular face. Normal and
// texture indices are optional in the format.
type rawFace struct {
	verts    [3]int
	norms    [3]int
	hasNorms bool
}

// Load reads an OBJ file from disk and expands its faces into a non-indexed
// triangle list.
//
// Parameters:
//   - path: filesystem path of the .obj file
//   - options: functional options (color, winding order)
//
// Returns:
//   - []model.NormalVertex: the expanded triangle list
//   - error: an error if the file cannot be opened or parsed
func Load(path string, options ...LoadOption) ([]model.NormalVertex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open %s: %w", path, err)
	}
	defer f.Close()

	mesh, err := LoadReader(f, options...)
	if err != nil {
		return nil, fmt.Errorf("loader: parse %s: %w", path, err)
	}
	return mesh, nil
}

// LoadReader parses OBJ data from a reader and expands its faces into a
// non-indexed triangle list. Every face must carry normal indices; models
// exported without normals cannot be lit by the deferred pipeline.
//
// Parameters:
//   - r: the OBJ source
//   - options: functional options (color, winding order)
//
// Returns:
//   - []model.NormalVertex: the expanded triangle list
//   - error: an error if a line cannot be parsed or a face lacks normals
func LoadReader(r io.Reader, options ...LoadOption) ([]model.NormalVertex, error) {
	cfg := loadConfig{
		color:         defaultColor,
		invertWinding: true,
	}
	for _, opt := range options {
		opt(&cfg)
	}

	var (
		verts []rawTriple
		norms []rawTriple
		faces []rawFace
	)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if len(line) <= 2 {
			continue
		}
		prefix, rest := line[:2], line[2:]
		switch prefix {
		case "v ":
			t, err := parseTriple(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			verts = append(verts, t)
		case "vn":
			t, err := parseTriple(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			norms = append(norms, t)
		case "vt":
			// Texture coordinates are validated but not kept; the deferred
			// vertex format has no UV channel.
			if _, err := parseTriple(rest); err != nil {
				return nil, fmt.Errorf("line %d: texcoord: %w", lineNo, err)
			}
		case "f ":
			face, err := parseFace(rest, cfg.invertWinding)
			if err != nil {
				return nil, fmt.Errorf("line %d: face: %w", lineNo, err)
			}
			faces = append(faces, face)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	mesh := make([]model.NormalVertex, 0, len(faces)*3)
	for i, face := range faces {
		if !face.hasNorms {
			return nil, fmt.Errorf("face %d has no normal indices", i)
		}
		for corner := 0; corner < 3; corner++ {
			vi, ni := face.verts[corner], face.norms[corner]
			if vi >= len(verts) {
				return nil, fmt.Errorf("face %d references vertex %d of %d", i, vi+1, len(verts))
			}
			if ni >= len(norms) {
				return nil, fmt.Errorf("face %d references normal %d of %d", i, ni+1, len(norms))
			}
			mesh = append(mesh, model.NormalVertex{
				Position: verts[vi],
				Normal:   norms[ni],
				Color:    cfg.color,
			})
		}
	}
	return mesh, nil
}

// parseTriple parses two or three whitespace-separated floats; a missing
// third component is padded with zero.
func parseTriple(s string) (rawTriple, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 && len(fields) != 3 {
		return rawTriple{}, fmt.Errorf("expected 2 or 3 components, got %d", len(fields))
	}
	var t rawTriple
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return rawTriple{}, fmt.Errorf("component %d: %w", i, err)
		}
		t[i] = float32(v)
	}
	return t, nil
}

// parseFace parses a triangular face of "v", "v/vt", "v//vn" or "v/vt/vn"
// corners. OBJ indices are 1-based; the returned indices are 0-based. When
// invert is set the second and third corner are swapped.
func parseFace(s string, invert bool) (rawFace, error) {
	corners := strings.Fields(s)
	if len(corners) != 3 {
		return rawFace{}, fmt.Errorf("expected 3 corners, got %d (triangulate the mesh on export)", len(corners))
	}
	if invert {
		corners[1], corners[2] = corners[2], corners[1]
	}

	var face rawFace
	face.hasNorms = true
	for i, corner := range corners {
		parts := strings.Split(corner, "/")
		vi, err := strconv.Atoi(parts[0])
		if err != nil {
			return rawFace{}, fmt.Errorf("corner %d: vertex index: %w", i, err)
		}
		face.verts[i] = vi - 1

		if len(parts) < 3 || parts[2] == "" {
			face.hasNorms = false
			continue
		}
		ni, err := strconv.Atoi(parts[2])
		if err != nil {
			return rawFace{}, fmt.Errorf("corner %d: normal index: %w", i, err)
		}
		face.norms[i] = ni - 1
	}
	return face, nil
}
