// Package asset parses Wavefront OBJ models, their MTL material libraries
// and the textures they reference. Parsing and decoding are pure CPU work;
// uploading to the GPU is left to the caller.
package asset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrMalformed is wrapped by every parse error
var ErrMalformed = errors.New("malformed asset")

// FloatsPerVertex is the stride of MeshData.Vertices: position (3),
// normal (3), texture coordinates (2).
const FloatsPerVertex = 8

// MeshData is one draw call worth of geometry sharing a material
type MeshData struct {
	Material string
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of unique vertices
func (m *MeshData) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// ModelData is a parsed OBJ file
type ModelData struct {
	Name         string
	Meshes       []*MeshData
	MaterialLibs []string
	Materials    map[string]Material
}

// vertexKey identifies a unique v/vt/vn combination. face is set only for
// vertices that get a generated flat normal, so they are never shared.
type vertexKey struct {
	v, vt, vn int
	face      int
}

// meshBuilder accumulates de-duplicated vertices for one material
type meshBuilder struct {
	mesh  *MeshData
	index map[vertexKey]uint32
}

// objParser holds the state of a single ParseOBJ call
type objParser struct {
	name string
	line int

	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	texCoords []mgl32.Vec2

	model    *ModelData
	builders map[string]*meshBuilder
	current  *meshBuilder
	faces    int
}

// ParseOBJ parses OBJ geometry from r. name is used in error messages.
// Material libraries are recorded but not opened; see LoadOBJ.
func ParseOBJ(r io.Reader, name string) (*ModelData, error) {
	p := &objParser{
		name:     name,
		model:    &ModelData{Name: name, Materials: make(map[string]Material)},
		builders: make(map[string]*meshBuilder),
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		p.line++
		fields := splitLine(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := p.parseLine(fields); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	// Drop materials that were selected but never received a face
	meshes := p.model.Meshes[:0]
	for _, m := range p.model.Meshes {
		if len(m.Indices) > 0 {
			meshes = append(meshes, m)
		}
	}
	p.model.Meshes = meshes

	return p.model, nil
}

// splitLine strips comments and splits a line into fields
func splitLine(line string) []string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return strings.Fields(line)
}

func (p *objParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s:%d: %s", ErrMalformed, p.name, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) parseLine(fields []string) error {
	switch fields[0] {
	case "v":
		v, err := p.parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		p.positions = append(p.positions, mgl32.Vec3{v[0], v[1], v[2]})
	case "vn":
		v, err := p.parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		n := mgl32.Vec3{v[0], v[1], v[2]}
		if n.Len() > 0 {
			n = n.Normalize()
		}
		p.normals = append(p.normals, n)
	case "vt":
		v, err := p.parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		p.texCoords = append(p.texCoords, mgl32.Vec2{v[0], v[1]})
	case "f":
		return p.parseFace(fields[1:])
	case "usemtl":
		name := ""
		if len(fields) > 1 {
			name = strings.Join(fields[1:], " ")
		}
		p.useMaterial(name)
	case "mtllib":
		if len(fields) < 2 {
			return p.errorf("mtllib without a file name")
		}
		p.model.MaterialLibs = append(p.model.MaterialLibs, strings.Join(fields[1:], " "))
	case "o", "g", "s", "l", "p":
		// Grouping, smoothing groups and non-triangle primitives are ignored
	default:
		// Unknown statements are ignored as the format allows vendor extensions
	}
	return nil
}

// parseFloats parses the first n fields; extra components (w, vt w) are dropped
func (p *objParser) parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, p.errorf("expected %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return nil, p.errorf("bad number %q", fields[i])
		}
		out[i] = float32(f)
	}
	return out, nil
}

func (p *objParser) useMaterial(name string) {
	b, ok := p.builders[name]
	if !ok {
		b = &meshBuilder{
			mesh:  &MeshData{Material: name},
			index: make(map[vertexKey]uint32),
		}
		p.builders[name] = b
		p.model.Meshes = append(p.model.Meshes, b.mesh)
	}
	p.current = b
}

// resolveIndex converts a 1-based or negative OBJ index into a slice index
func (p *objParser) resolveIndex(token string, count int, kind string) (int, error) {
	i, err := strconv.Atoi(token)
	if err != nil {
		return 0, p.errorf("bad %s index %q", kind, token)
	}
	switch {
	case i > 0 && i <= count:
		return i - 1, nil
	case i < 0 && -i <= count:
		return count + i, nil
	default:
		return 0, p.errorf("%s index %d out of range (have %d)", kind, i, count)
	}
}

// parseCorner parses one face corner: v, v/vt, v//vn or v/vt/vn
func (p *objParser) parseCorner(token string) (vertexKey, error) {
	key := vertexKey{vt: -1, vn: -1, face: -1}
	parts := strings.Split(token, "/")
	if len(parts) > 3 {
		return key, p.errorf("bad face corner %q", token)
	}

	var err error
	if key.v, err = p.resolveIndex(parts[0], len(p.positions), "vertex"); err != nil {
		return key, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if key.vt, err = p.resolveIndex(parts[1], len(p.texCoords), "texture"); err != nil {
			return key, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if key.vn, err = p.resolveIndex(parts[2], len(p.normals), "normal"); err != nil {
			return key, err
		}
	}
	return key, nil
}

// parseFace triangulates a polygon as a fan around its first corner
func (p *objParser) parseFace(tokens []string) error {
	if len(tokens) < 3 {
		return p.errorf("face needs at least 3 corners, got %d", len(tokens))
	}
	if p.current == nil {
		p.useMaterial("")
	}

	corners := make([]vertexKey, len(tokens))
	for i, tok := range tokens {
		key, err := p.parseCorner(tok)
		if err != nil {
			return err
		}
		corners[i] = key
	}

	// Faces without normals get a flat normal of their own
	var flat mgl32.Vec3
	needsFlat := false
	for i := range corners {
		if corners[i].vn < 0 {
			needsFlat = true
			corners[i].face = p.faces
		}
	}
	if needsFlat {
		flat = faceNormal(p.positions[corners[0].v], p.positions[corners[1].v], p.positions[corners[2].v])
	}
	p.faces++

	indices := make([]uint32, len(corners))
	for i, key := range corners {
		indices[i] = p.current.vertex(key, p, flat)
	}

	mesh := p.current.mesh
	for i := 1; i+1 < len(indices); i++ {
		mesh.Indices = append(mesh.Indices, indices[0], indices[i], indices[i+1])
	}
	return nil
}

// vertex returns the index of key in the mesh, appending it if new
func (b *meshBuilder) vertex(key vertexKey, p *objParser, flat mgl32.Vec3) uint32 {
	if idx, ok := b.index[key]; ok {
		return idx
	}

	pos := p.positions[key.v]
	normal := flat
	if key.vn >= 0 {
		normal = p.normals[key.vn]
	}
	var uv mgl32.Vec2
	if key.vt >= 0 {
		uv = p.texCoords[key.vt]
	}

	idx := uint32(b.mesh.VertexCount())
	b.mesh.Vertices = append(b.mesh.Vertices,
		pos[0], pos[1], pos[2],
		normal[0], normal[1], normal[2],
		uv[0], uv[1],
	)
	b.index[key] = idx
	return idx
}

// faceNormal returns the unit normal of a counter-clockwise triangle, or +Y
// for a degenerate one.
func faceNormal(a, b, c mgl32.Vec3) mgl32.Vec3 {
	n := b.Sub(a).Cross(c.Sub(a))
	if n.Len() < 1e-12 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}
