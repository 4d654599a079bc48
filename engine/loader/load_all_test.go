package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeOBJ(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()
	a := writeOBJ(t, dir, "a.obj", triangleOBJ)
	b := writeOBJ(t, dir, "b.obj", triangleOBJ+"f 1//1 2//1 3//1\n")

	meshes, err := LoadAll([]string{a, b})
	if err != nil {
		t.Fatalf("LoadAll() error = %v", err)
	}
	if len(meshes) != 2 {
		t.Fatalf("loaded %d meshes, want 2", len(meshes))
	}
	if len(meshes[a]) != 3 {
		t.Errorf("mesh %s has %d vertices, want 3", a, len(meshes[a]))
	}
	if len(meshes[b]) != 6 {
		t.Errorf("mesh %s has %d vertices, want 6", b, len(meshes[b]))
	}
}

func TestLoadAllEmpty(t *testing.T) {
	meshes, err := LoadAll(nil)
	if err != nil {
		t.Fatalf("LoadAll(nil) error = %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("loaded %d meshes, want 0", len(meshes))
	}
}

func TestLoadAllPropagatesFirstError(t *testing.T) {
	dir := t.TempDir()
	good := writeOBJ(t, dir, "good.obj", triangleOBJ)
	bad := writeOBJ(t, dir, "bad.obj", "v 0 0 0\nf 1 1 1\n")

	meshes, err := LoadAll([]string{good, bad})
	if err == nil {
		t.Fatal("expected an error from the malformed file")
	}
	if meshes != nil {
		t.Errorf("meshes = %v, want nil on error", meshes)
	}

	// Same options apply to every file, including the failing one.
	if _, err := LoadAll([]string{good}, WithColor([3]float32{1, 1, 1})); err != nil {
		t.Errorf("LoadAll() with options error = %v", err)
	}
}
