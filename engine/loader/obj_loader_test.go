package loader

import (
	"strings"
	"testing"
)

// triangleOBJ is a single triangle with one shared normal, wound clockwise
// the way common exporters emit it.
const triangleOBJ = `# exported triangle
v 0.0 0.0 0.0
v 1.0 0.0 0.0
v 0.0 1.0 0.0
vn 0.0 0.0 1.0
f 1//1 2//1 3//1
`

func TestLoadReaderTriangle(t *testing.T) {
	mesh, err := LoadReader(strings.NewReader(triangleOBJ))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if len(mesh) != 3 {
		t.Fatalf("vertex count = %d, want 3", len(mesh))
	}

	// Default winding inversion swaps the second and third corner.
	wantPositions := [3][3]float32{
		{0, 0, 0},
		{0, 1, 0},
		{1, 0, 0},
	}
	for i, want := range wantPositions {
		if mesh[i].Position != want {
			t.Errorf("vertex %d position = %v, want %v", i, mesh[i].Position, want)
		}
		if mesh[i].Normal != [3]float32{0, 0, 1} {
			t.Errorf("vertex %d normal = %v, want (0, 0, 1)", i, mesh[i].Normal)
		}
		if mesh[i].Color != defaultColor {
			t.Errorf("vertex %d color = %v, want default %v", i, mesh[i].Color, defaultColor)
		}
	}
}

func TestLoadReaderKeepsWindingWhenDisabled(t *testing.T) {
	mesh, err := LoadReader(strings.NewReader(triangleOBJ), WithInvertWindingOrder(false))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}

	wantPositions := [3][3]float32{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
	}
	for i, want := range wantPositions {
		if mesh[i].Position != want {
			t.Errorf("vertex %d position = %v, want %v", i, mesh[i].Position, want)
		}
	}
}

func TestLoadReaderAppliesColor(t *testing.T) {
	color := [3]float32{0.2, 0.4, 0.6}
	mesh, err := LoadReader(strings.NewReader(triangleOBJ), WithColor(color))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	for i, v := range mesh {
		if v.Color != color {
			t.Errorf("vertex %d color = %v, want %v", i, v.Color, color)
		}
	}
}

func TestLoadReaderTexcoordFaces(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 1 0
vt 0.5 0.5
vn 0 0 1
f 1/1/1 2/1/1 3/1/1
`
	mesh, err := LoadReader(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if len(mesh) != 3 {
		t.Errorf("vertex count = %d, want 3", len(mesh))
	}
}

func TestLoadReaderPadsTwoComponentLines(t *testing.T) {
	src := `v 1 2
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`
	mesh, err := LoadReader(strings.NewReader(src), WithInvertWindingOrder(false))
	if err != nil {
		t.Fatalf("LoadReader() error = %v", err)
	}
	if mesh[0].Position != [3]float32{1, 2, 0} {
		t.Errorf("padded vertex = %v, want (1, 2, 0)", mesh[0].Position)
	}
}

func TestLoadReaderErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantSub string
	}{
		{
			name: "face without normals",
			src: `v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`,
			wantSub: "no normal indices",
		},
		{
			name: "quad face",
			src: `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1 4//1
`,
			wantSub: "triangulate",
		},
		{
			name: "vertex index out of range",
			src: `v 0 0 0
vn 0 0 1
f 1//1 2//1 3//1
`,
			wantSub: "references vertex",
		},
		{
			name: "normal index out of range",
			src: `v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//2 3//1
`,
			wantSub: "references normal",
		},
		{
			name:    "malformed vertex line",
			src:     "v one two three\n",
			wantSub: "vertex",
		},
		{
			name:    "wrong component count",
			src:     "v 1 2 3 4\n",
			wantSub: "components",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadReader(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("testdata/does-not-exist.obj"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
