package model

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	sphereStacks  = 12
	sphereSectors = 24
)

// Sphere generates a unit UV sphere mesh tinted with the given color, as a
// non-indexed triangle list in the deferred-geometry vertex format. Normals
// point outward. Used by the render system to draw light-marker objects
// without loading a mesh from disk.
//
// Parameters:
//   - color: the RGB color applied to every vertex
//
// Returns:
//   - []NormalVertex: the sphere triangles (counter-clockwise winding)
func Sphere(color [3]float32) []NormalVertex {
	// Vertex grid: (stacks+1) rings of (sectors+1) points on the unit sphere.
	grid := make([][3]float32, 0, (sphereStacks+1)*(sphereSectors+1))
	for i := 0; i <= sphereStacks; i++ {
		phi := math.Pi/2 - math.Pi*float64(i)/sphereStacks
		y := float32(math.Sin(phi))
		r := float32(math.Cos(phi))
		for j := 0; j <= sphereSectors; j++ {
			theta := 2 * math.Pi * float64(j) / sphereSectors
			grid = append(grid, [3]float32{
				r * float32(math.Cos(theta)),
				y,
				r * float32(math.Sin(theta)),
			})
		}
	}

	at := func(i, j int) [3]float32 {
		return grid[i*(sphereSectors+1)+j]
	}
	vertex := func(p [3]float32) NormalVertex {
		n := mgl32.Vec3{p[0], p[1], p[2]}.Normalize()
		return NormalVertex{
			Position: p,
			Normal:   [3]float32{n.X(), n.Y(), n.Z()},
			Color:    color,
		}
	}

	verts := make([]NormalVertex, 0, sphereStacks*sphereSectors*6)
	for i := 0; i < sphereStacks; i++ {
		for j := 0; j < sphereSectors; j++ {
			// Two triangles per quad; the top and bottom rings each degenerate
			// into a single triangle per sector.
			if i != 0 {
				verts = append(verts, vertex(at(i, j)), vertex(at(i, j+1)), vertex(at(i+1, j)))
			}
			if i != sphereStacks-1 {
				verts = append(verts, vertex(at(i, j+1)), vertex(at(i+1, j+1)), vertex(at(i+1, j)))
			}
		}
	}
	return verts
}
