package asset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultShininess is used when a material has no Ns statement
const DefaultShininess = 16

// Material is one newmtl block of an MTL library. Map paths are resolved
// relative to the library by LoadOBJ.
type Material struct {
	Name        string
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	Shininess   float32
	Opacity     float32
	DiffuseMap  string
	SpecularMap string
}

func newMaterial(name string) Material {
	return Material{
		Name:      name,
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Shininess: DefaultShininess,
		Opacity:   1,
	}
}

// ParseMTL parses a material library. name is used in error messages.
func ParseMTL(r io.Reader, name string) (map[string]Material, error) {
	materials := make(map[string]Material)
	var current *Material
	flush := func() {
		if current != nil {
			materials[current.Name] = *current
		}
	}

	scanner := bufio.NewScanner(r)
	line := 0
	errorf := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s:%d: %s", ErrMalformed, name, line, fmt.Sprintf(format, args...))
	}

	for scanner.Scan() {
		line++
		fields := splitLine(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return nil, errorf("newmtl without a name")
			}
			flush()
			m := newMaterial(strings.Join(fields[1:], " "))
			current = &m
			continue
		}
		if current == nil {
			// statements before the first newmtl have nothing to apply to
			continue
		}

		switch fields[0] {
		case "Kd", "Ks":
			if len(fields) < 4 {
				return nil, errorf("%s needs 3 values", fields[0])
			}
			var c mgl32.Vec3
			for i := range c {
				f, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, errorf("bad number %q", fields[i+1])
				}
				c[i] = float32(f)
			}
			if fields[0] == "Kd" {
				current.Diffuse = c
			} else {
				current.Specular = c
			}
		case "Ns", "d", "Tr":
			if len(fields) < 2 {
				return nil, errorf("%s needs a value", fields[0])
			}
			f, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, errorf("bad number %q", fields[1])
			}
			switch fields[0] {
			case "Ns":
				current.Shininess = float32(f)
			case "d":
				current.Opacity = float32(f)
			case "Tr":
				current.Opacity = 1 - float32(f)
			}
		case "map_Kd":
			current.DiffuseMap = mapPath(fields)
		case "map_Ks":
			current.SpecularMap = mapPath(fields)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	flush()
	return materials, nil
}

// mapPath takes the file name from a map_ statement, skipping any options
// in front of it. Windows separators are normalized.
func mapPath(fields []string) string {
	if len(fields) < 2 {
		return ""
	}
	return strings.ReplaceAll(fields[len(fields)-1], `\`, "/")
}

// LoadOBJ parses the OBJ file at path together with its material libraries.
// Texture paths in the returned materials are joined with the directory of
// the model. A missing material library is an error.
func LoadOBJ(path string) (*ModelData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model: %w", err)
	}
	defer f.Close()

	model, err := ParseOBJ(f, path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for _, lib := range model.MaterialLibs {
		materials, err := loadMTL(filepath.Join(dir, filepath.FromSlash(lib)))
		if err != nil {
			return nil, err
		}
		for name, m := range materials {
			if m.DiffuseMap != "" {
				m.DiffuseMap = filepath.Join(dir, filepath.FromSlash(m.DiffuseMap))
			}
			if m.SpecularMap != "" {
				m.SpecularMap = filepath.Join(dir, filepath.FromSlash(m.SpecularMap))
			}
			model.Materials[name] = m
		}
	}
	return model, nil
}

func loadMTL(path string) (map[string]Material, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open material library: %w", err)
	}
	defer f.Close()
	return ParseMTL(f, path)
}

// TexturePaths returns the distinct texture files referenced by the model's
// materials, in a stable order.
func (m *ModelData) TexturePaths() []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	for _, mesh := range m.Meshes {
		mat, ok := m.Materials[mesh.Material]
		if !ok {
			continue
		}
		add(mat.DiffuseMap)
		add(mat.SpecularMap)
	}
	return paths
}
