package render

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/leterax/lightscene/pkg/scene"
)

// Texture units of the lighting shader's material samplers
const (
	DiffuseUnit  = 0
	SpecularUnit = 1
)

// Shader file names inside the configured shader directory
const (
	LightingVertex   = "lighting.vert"
	LightingFragment = "lighting.frag"
	LampVertex       = "lamp.vert"
	LampFragment     = "lamp.frag"
)

// ClearColor is the background color
var ClearColor = mgl32.Vec4{0.1, 0.1, 0.1, 1.0}

// LampColor is used for lamp cubes other than the pulsing one
var LampColor = mgl32.Vec3{1, 1, 1}

// sceneKey converts a GLFW key. The scene uses GLFW's key codes, so this is
// a plain conversion; glfw.KeyUnknown maps to a negative code the key table
// ignores.
func sceneKey(key glfw.Key) scene.Key {
	return scene.Key(key)
}

func sceneAction(action glfw.Action) scene.Action {
	switch action {
	case glfw.Press:
		return scene.Press
	case glfw.Repeat:
		return scene.Repeat
	default:
		return scene.Release
	}
}
