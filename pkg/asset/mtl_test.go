package asset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const houseMTL = `# exported
Ka 1 1 1
newmtl wall
Ns 32
Kd 0.8 0.7 0.6
Ks 0.5 0.5 0.5
d 0.5
map_Kd textures\brick.png
map_Ks -s 1 1 1 textures/brick_spec.png

newmtl glass
Tr 0.75
`

func TestParseMTL(t *testing.T) {
	materials, err := ParseMTL(strings.NewReader(houseMTL), "house.mtl")
	if err != nil {
		t.Fatalf("ParseMTL() error = %v", err)
	}
	if len(materials) != 2 {
		t.Fatalf("len(materials) = %d, want 2", len(materials))
	}

	wall := materials["wall"]
	want := Material{
		Name:        "wall",
		Diffuse:     mgl32.Vec3{0.8, 0.7, 0.6},
		Specular:    mgl32.Vec3{0.5, 0.5, 0.5},
		Shininess:   32,
		Opacity:     0.5,
		DiffuseMap:  "textures/brick.png",
		SpecularMap: "textures/brick_spec.png",
	}
	if wall != want {
		t.Errorf("wall = %+v, want %+v", wall, want)
	}

	glass := materials["glass"]
	if glass.Shininess != DefaultShininess {
		t.Errorf("glass.Shininess = %v, want default %v", glass.Shininess, DefaultShininess)
	}
	if glass.Opacity < 0.2499 || glass.Opacity > 0.2501 {
		t.Errorf("glass.Opacity = %v, want 0.25", glass.Opacity)
	}
	if glass.Diffuse != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("glass.Diffuse = %v, want white", glass.Diffuse)
	}
}

func TestParseMTLErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unnamed material", "newmtl"},
		{"short color", "newmtl a\nKd 1 1"},
		{"bad shininess", "newmtl a\nNs shiny"},
		{"missing opacity", "newmtl a\nd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseMTL(strings.NewReader(tt.data), "bad.mtl"); !errors.Is(err, ErrMalformed) {
				t.Errorf("ParseMTL() error = %v, want ErrMalformed", err)
			}
		})
	}
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadOBJResolvesMaterials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "models", "house.obj"),
		"mtllib house.mtl\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl wall\nf 1 2 3\n")
	writeFile(t, filepath.Join(dir, "models", "house.mtl"), houseMTL)

	model, err := LoadOBJ(filepath.Join(dir, "models", "house.obj"))
	if err != nil {
		t.Fatalf("LoadOBJ() error = %v", err)
	}

	wall, ok := model.Materials["wall"]
	if !ok {
		t.Fatalf("Materials = %v, want wall", model.Materials)
	}
	wantMap := filepath.Join(dir, "models", "textures", "brick.png")
	if wall.DiffuseMap != wantMap {
		t.Errorf("DiffuseMap = %q, want %q", wall.DiffuseMap, wantMap)
	}

	paths := model.TexturePaths()
	if len(paths) != 2 || paths[0] != wantMap {
		t.Errorf("TexturePaths() = %v, want diffuse then specular map", paths)
	}
}

func TestLoadOBJMissingLibrary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lonely.obj")
	writeFile(t, path, "mtllib nowhere.mtl\nv 0 0 0\n")

	if _, err := LoadOBJ(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadOBJ() error = %v, want os.ErrNotExist", err)
	}
}
