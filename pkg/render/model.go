package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/lightscene/internal/openglhelper"
	"github.com/leterax/lightscene/pkg/asset"
)

// modelPart is one material's worth of geometry
type modelPart struct {
	mesh     *openglhelper.Mesh
	diffuse  *openglhelper.Texture
	specular *openglhelper.Texture
	opacity  float32
}

// Model is a loaded model uploaded to the GPU
type Model struct {
	path  string
	parts []modelPart
}

// textureCache shares GPU textures between models. Image textures are keyed
// by file path, solid fallbacks by color.
type textureCache struct {
	files  map[string]*openglhelper.Texture
	solids map[color.NRGBA]*openglhelper.Texture
}

func newTextureCache() *textureCache {
	return &textureCache{
		files:  make(map[string]*openglhelper.Texture),
		solids: make(map[color.NRGBA]*openglhelper.Texture),
	}
}

// texture returns the uploaded image for path, or a solid texture of
// fallback when the model has no decoded image for it
func (c *textureCache) texture(m *asset.Model, path string, fallback mgl32.Vec3) *openglhelper.Texture {
	if img := m.Texture(path); img != nil {
		if tex, ok := c.files[path]; ok {
			return tex
		}
		tex := openglhelper.NewTexture(img)
		c.files[path] = tex
		return tex
	}

	key := color.NRGBA{R: toByte(fallback[0]), G: toByte(fallback[1]), B: toByte(fallback[2]), A: 255}
	if tex, ok := c.solids[key]; ok {
		return tex
	}
	tex := openglhelper.NewSolidTexture(key)
	c.solids[key] = tex
	return tex
}

func (c *textureCache) delete() {
	for _, t := range c.files {
		t.Delete()
	}
	for _, t := range c.solids {
		t.Delete()
	}
	clear(c.files)
	clear(c.solids)
}

func toByte(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}

// uploadModel creates GPU meshes and textures for a decoded model. Meshes
// whose material is not defined use a plain white material.
func uploadModel(m *asset.Model, textures *textureCache) *Model {
	model := &Model{path: m.Path}
	for _, mesh := range m.Data.Meshes {
		mat, ok := m.Data.Materials[mesh.Material]
		if !ok {
			mat = asset.Material{
				Diffuse:   mgl32.Vec3{1, 1, 1},
				Shininess: asset.DefaultShininess,
				Opacity:   1,
			}
		}

		model.parts = append(model.parts, modelPart{
			mesh:     openglhelper.NewMesh(mesh.Vertices, mesh.Indices),
			diffuse:  textures.texture(m, mat.DiffuseMap, mat.Diffuse),
			specular: textures.texture(m, mat.SpecularMap, mat.Specular),
			opacity:  mat.Opacity,
		})
	}
	return model
}

// Draw binds each part's material and draws it with the active program
func (m *Model) Draw(shader *openglhelper.Shader) {
	for _, p := range m.parts {
		p.diffuse.Bind(DiffuseUnit)
		p.specular.Bind(SpecularUnit)
		shader.SetFloat("material.opacity", p.opacity)
		p.mesh.Draw()
	}
}

// Delete releases the meshes. Textures belong to the cache.
func (m *Model) Delete() {
	for _, p := range m.parts {
		p.mesh.Delete()
	}
	m.parts = nil
}
