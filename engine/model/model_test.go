package model

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const matrixEpsilon = 1e-5

func mat4Near(a, b mgl32.Mat4, epsilon float32) bool {
	for i := 0; i < 16; i++ {
		if float32(math.Abs(float64(a[i]-b[i]))) > epsilon {
			return false
		}
	}
	return true
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()

	if got := m.ModelMatrix(); !mat4Near(got, mgl32.Ident4(), 0) {
		t.Errorf("default model matrix = %v, want identity", got)
	}
	if got := m.NormalMatrix(); !mat4Near(got, mgl32.Ident4(), 0) {
		t.Errorf("default normal matrix = %v, want identity", got)
	}
	if mesh := m.Mesh(); len(mesh) != 0 {
		t.Errorf("default mesh length = %d, want 0", len(mesh))
	}
}

// TestModelMatrixComposition checks the transform is translation, then
// rotation, then uniform scale.
func TestModelMatrixComposition(t *testing.T) {
	m := NewModel(WithUniformScale(2))
	m.Translate(mgl32.Vec3{1, -2, 3})
	m.Rotate(float32(math.Pi/3), mgl32.Vec3{0, 1, 0})

	want := mgl32.Translate3D(1, -2, 3).
		Mul4(mgl32.HomogRotate3D(float32(math.Pi/3), mgl32.Vec3{0, 1, 0})).
		Mul4(mgl32.Scale3D(2, 2, 2))
	if got := m.ModelMatrix(); !mat4Near(got, want, matrixEpsilon) {
		t.Errorf("model matrix = %v, want %v", got, want)
	}
}

// TestRotationsComposeInLocalFrame checks later rotations post-multiply, so
// they act in the model's current local frame.
func TestRotationsComposeInLocalFrame(t *testing.T) {
	m := NewModel()
	m.Rotate(float32(math.Pi/2), mgl32.Vec3{0, 1, 0})
	m.Rotate(float32(math.Pi/4), mgl32.Vec3{1, 0, 0})

	want := mgl32.HomogRotate3D(float32(math.Pi/2), mgl32.Vec3{0, 1, 0}).
		Mul4(mgl32.HomogRotate3D(float32(math.Pi/4), mgl32.Vec3{1, 0, 0}))
	if got := m.ModelMatrix(); !mat4Near(got, want, matrixEpsilon) {
		t.Errorf("model matrix = %v, want %v", got, want)
	}
}

func TestRotateNormalizesAxis(t *testing.T) {
	a := NewModel()
	a.Rotate(float32(math.Pi/5), mgl32.Vec3{0, 10, 0})
	b := NewModel()
	b.Rotate(float32(math.Pi/5), mgl32.Vec3{0, 1, 0})

	if !mat4Near(a.ModelMatrix(), b.ModelMatrix(), matrixEpsilon) {
		t.Error("rotation about a non-unit axis should match the normalized axis")
	}
}

func TestTranslateAccumulates(t *testing.T) {
	m := NewModel()
	m.Translate(mgl32.Vec3{1, 0, 0})
	m.Translate(mgl32.Vec3{0, 2, 0})

	got := m.ModelMatrix()
	if got[12] != 1 || got[13] != 2 || got[14] != 0 {
		t.Errorf("translation column = (%v, %v, %v), want (1, 2, 0)", got[12], got[13], got[14])
	}
}

// TestNormalMatrixIsInverseTranspose checks the lighting matrix invariant for
// a transform with rotation and non-unit scale.
func TestNormalMatrixIsInverseTranspose(t *testing.T) {
	m := NewModel(WithUniformScale(0.5))
	m.Translate(mgl32.Vec3{4, 5, 6})
	m.Rotate(1.1, mgl32.Vec3{1, 2, 3})

	want := m.ModelMatrix().Inv().Transpose()
	if got := m.NormalMatrix(); !mat4Near(got, want, matrixEpsilon) {
		t.Errorf("normal matrix = %v, want inverse transpose %v", got, want)
	}
}

// TestMatrixReadsAreStable checks repeated reads with no intervening mutation
// return bit-identical matrices, i.e. the cache is not recomputed per read.
func TestMatrixReadsAreStable(t *testing.T) {
	m := NewModel()
	m.Rotate(0.7, mgl32.Vec3{0, 0, 1})
	m.Translate(mgl32.Vec3{1, 1, 1})

	first := m.ModelMatrix()
	firstNormal := m.NormalMatrix()
	for i := 0; i < 3; i++ {
		if got := m.ModelMatrix(); got != first {
			t.Fatalf("read %d returned a different model matrix", i)
		}
		if got := m.NormalMatrix(); got != firstNormal {
			t.Fatalf("read %d returned a different normal matrix", i)
		}
	}
}

func TestZeroRotationInvalidatesCache(t *testing.T) {
	m := NewModel()
	m.Translate(mgl32.Vec3{1, 2, 3})
	m.Rotate(float32(math.Pi/2), mgl32.Vec3{0, 1, 0})
	rotated := m.ModelMatrix()

	m.ZeroRotation()

	want := mgl32.Translate3D(1, 2, 3)
	got := m.ModelMatrix()
	if !mat4Near(got, want, matrixEpsilon) {
		t.Errorf("model matrix after ZeroRotation = %v, want translation only %v", got, want)
	}
	if mat4Near(got, rotated, matrixEpsilon) {
		t.Error("ZeroRotation did not refresh the cached matrix")
	}
	if normal := m.NormalMatrix(); !mat4Near(normal, got.Inv().Transpose(), matrixEpsilon) {
		t.Error("normal matrix is stale after ZeroRotation")
	}
}

func TestColorMeshKeepsPositionAndColor(t *testing.T) {
	mesh := []NormalVertex{
		{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, Color: [3]float32{0.1, 0.2, 0.3}},
		{Position: [3]float32{4, 5, 6}, Normal: [3]float32{1, 0, 0}, Color: [3]float32{0.4, 0.5, 0.6}},
	}
	m := NewModel(WithMesh(mesh))

	colored := m.ColorMesh()
	if len(colored) != len(mesh) {
		t.Fatalf("color mesh length = %d, want %d", len(colored), len(mesh))
	}
	for i := range mesh {
		if colored[i].Position != mesh[i].Position {
			t.Errorf("vertex %d position = %v, want %v", i, colored[i].Position, mesh[i].Position)
		}
		if colored[i].Color != mesh[i].Color {
			t.Errorf("vertex %d color = %v, want %v", i, colored[i].Color, mesh[i].Color)
		}
	}
}

func TestSphereMesh(t *testing.T) {
	color := [3]float32{0.9, 0.1, 0.2}
	verts := Sphere(color)

	if len(verts) == 0 {
		t.Fatal("sphere mesh is empty")
	}
	if len(verts)%3 != 0 {
		t.Fatalf("sphere vertex count %d is not a whole number of triangles", len(verts))
	}
	// Two triangles per quad except the single-triangle cap rings.
	wantLen := (sphereStacks*sphereSectors*2 - 2*sphereSectors) * 3
	if len(verts) != wantLen {
		t.Errorf("sphere vertex count = %d, want %d", len(verts), wantLen)
	}

	for i, v := range verts {
		p := mgl32.Vec3{v.Position[0], v.Position[1], v.Position[2]}
		if math.Abs(float64(p.Len()-1)) > 1e-4 {
			t.Fatalf("vertex %d is at radius %v, want 1 (unit sphere)", i, p.Len())
		}
		n := mgl32.Vec3{v.Normal[0], v.Normal[1], v.Normal[2]}
		// Outward normals on a unit sphere equal the position direction.
		if n.Sub(p.Normalize()).Len() > 1e-4 {
			t.Fatalf("vertex %d normal %v does not point outward", i, v.Normal)
		}
		if v.Color != color {
			t.Fatalf("vertex %d color = %v, want %v", i, v.Color, color)
		}
	}
}

func TestDummyVertexListCoversClipSpace(t *testing.T) {
	quad := DummyVertexList()

	var minX, minY, maxX, maxY float32 = 1, 1, -1, -1
	for _, v := range quad {
		minX = min(minX, v.Position[0])
		minY = min(minY, v.Position[1])
		maxX = max(maxX, v.Position[0])
		maxY = max(maxY, v.Position[1])
	}
	if minX != -1 || minY != -1 || maxX != 1 || maxY != 1 {
		t.Errorf("quad bounds = (%v,%v)..(%v,%v), want (-1,-1)..(1,1)", minX, minY, maxX, maxY)
	}
}
