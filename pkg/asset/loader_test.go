package asset

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoaderLoadModels(t *testing.T) {
	dir := t.TempDir()
	mtl := "newmtl skin\nmap_Kd shared.png\nmap_Ks broken.png\n"
	tri := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nusemtl skin\nf 1/1 2/1 3/1\n"
	writeFile(t, filepath.Join(dir, "a.mtl"), mtl)
	writeFile(t, filepath.Join(dir, "a.obj"), "mtllib a.mtl\n"+tri)
	writeFile(t, filepath.Join(dir, "b.obj"), "mtllib a.mtl\n"+tri)
	writeFile(t, filepath.Join(dir, "broken.png"), "garbage")
	if err := os.WriteFile(filepath.Join(dir, "shared.png"), twoRowPNG(t), 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(2, 0, quietLogger())
	paths := []string{
		filepath.Join(dir, "a.obj"),
		filepath.Join(dir, "missing.obj"),
		filepath.Join(dir, "b.obj"),
	}
	models, err := loader.LoadModels(paths...)

	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadModels() error = %v, want the missing model reported", err)
	}
	if len(models) != 3 {
		t.Fatalf("len(models) = %d, want 3", len(models))
	}
	if models[1] != nil {
		t.Errorf("models[1] = %+v, want nil for the missing file", models[1])
	}

	shared := filepath.Join(dir, "shared.png")
	for _, i := range []int{0, 2} {
		m := models[i]
		if m == nil {
			t.Fatalf("models[%d] = nil", i)
		}
		if m.Path != paths[i] {
			t.Errorf("models[%d].Path = %q, want %q", i, m.Path, paths[i])
		}
		if m.Texture(shared) == nil {
			t.Errorf("models[%d] is missing %s", i, shared)
		}
		if m.Texture(filepath.Join(dir, "broken.png")) != nil {
			t.Errorf("models[%d] has a texture for the broken file", i)
		}
	}

	// Both models reference the same decoded image
	if models[0].Texture(shared) != models[2].Texture(shared) {
		t.Error("shared texture decoded twice")
	}
	if !bytes.Equal(models[0].Texture(shared).Pix[:4], []byte{0, 0, 255, 255}) {
		t.Errorf("first texel = %v, want flipped blue", models[0].Texture(shared).Pix[:4])
	}
}

func TestLoaderNoPaths(t *testing.T) {
	models, err := NewLoader(0, 0, nil).LoadModels()
	if err != nil || len(models) != 0 {
		t.Errorf("LoadModels() = %v, %v, want empty and nil", models, err)
	}
}
