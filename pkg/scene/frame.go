package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Frame is everything the draw step needs for one frame
type Frame struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Lighting   Lighting

	House     mgl32.Mat4
	Character mgl32.Mat4
	Lamps     [NumPointLights]mgl32.Mat4
}

// Perspective returns the projection matrix for a framebuffer of the given
// size. A zero-height framebuffer (minimized window) is treated as square.
func Perspective(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return mgl32.Perspective(mgl32.DegToRad(DefaultFOV), aspect, NearPlane, FarPlane)
}

// HouseTransform returns the model matrix of the house, which sits at the origin
func HouseTransform() mgl32.Mat4 {
	return mgl32.Ident4()
}

// CharacterTransform returns the model matrix of the character at position
func CharacterTransform(position mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(mgl32.Scale3D(CharacterScale, CharacterScale, CharacterScale))
}

// LampTransform returns the model matrix of a lamp cube at position
func LampTransform(position mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position.X(), position.Y(), position.Z()).
		Mul4(mgl32.Scale3D(LampScale, LampScale, LampScale))
}

// Frame snapshots the state for drawing at elapsed time t seconds
func (s *State) Frame(t float64, projection mgl32.Mat4) Frame {
	f := Frame{
		View:       s.Camera.ViewMatrix(s.Player),
		Projection: projection,
		Lighting:   s.Lighting(t),
		House:      HouseTransform(),
		Character:  CharacterTransform(s.Player),
	}
	for i, pos := range s.PointLights {
		f.Lamps[i] = LampTransform(pos)
	}
	return f
}
