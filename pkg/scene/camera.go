package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera is a third-person camera orbiting the player on a sphere of
// fixed radius. Cursor motion drives yaw and pitch; the resulting offset is
// added to the player position to place the eye.
type OrbitCamera struct {
	// Euler angles in degrees
	yaw   float32
	pitch float32

	radius      float32
	sensitivity float32
	worldUp     mgl32.Vec3

	// Offset from the player to the eye
	offset mgl32.Vec3

	// Mouse state
	lastX      float64
	lastY      float64
	firstMouse bool
}

// NewOrbitCamera creates an orbit camera with the default angles, its offset
// already resolved for a player standing at height playerY.
func NewOrbitCamera(playerY float32) *OrbitCamera {
	camera := &OrbitCamera{
		yaw:         DefaultYaw,
		pitch:       DefaultPitch,
		radius:      OrbitRadius,
		sensitivity: DefaultSensitivity,
		worldUp:     mgl32.Vec3{0, 1, 0},
		firstMouse:  true,
	}

	camera.updateOffset(playerY)

	return camera
}

// updateOffset recalculates the eye offset from the Euler angles and keeps the
// eye at or above GroundHeight.
func (c *OrbitCamera) updateOffset(playerY float32) {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	radius := float64(c.radius)

	x := float32(radius * math.Cos(pitch) * math.Cos(yaw))
	y := float32(radius * math.Sin(pitch))
	z := float32(radius * math.Cos(pitch) * math.Sin(yaw))

	if playerY+y < GroundHeight {
		y = GroundHeight - playerY
	}

	c.offset = mgl32.Vec3{x, y, z}
}

// HandleCursor updates the orbit from an absolute cursor position. The first
// sample after construction or ResetMouse only records the baseline.
func (c *OrbitCamera) HandleCursor(xpos, ypos float64, playerY float32) {
	if c.firstMouse {
		c.lastX = xpos
		c.lastY = ypos
		c.firstMouse = false
		return
	}

	// Calculate offset
	xoffset := float32(xpos - c.lastX)
	yoffset := float32(c.lastY - ypos) // Reversed: moving the cursor up raises the eye

	c.lastX = xpos
	c.lastY = ypos

	// Apply sensitivity
	xoffset *= c.sensitivity
	yoffset *= c.sensitivity

	c.yaw += xoffset
	c.pitch = clampPitch(c.pitch + yoffset)

	c.updateOffset(playerY)
}

func clampPitch(pitch float32) float32 {
	if pitch > MaxPitch {
		return MaxPitch
	}
	if pitch < MinPitch || math.IsNaN(float64(pitch)) {
		return MinPitch
	}
	return pitch
}

// ResetMouse re-arms the first-mouse latch so the next cursor sample does not
// cause a jump, e.g. after the cursor is recaptured.
func (c *OrbitCamera) ResetMouse() {
	c.firstMouse = true
}

// SetSensitivity sets the degrees of rotation per pixel of cursor motion
func (c *OrbitCamera) SetSensitivity(sensitivity float32) {
	c.sensitivity = sensitivity
}

// SetRotation sets yaw and pitch directly, clamping pitch, and recomputes the
// offset for a player at height playerY.
func (c *OrbitCamera) SetRotation(yaw, pitch, playerY float32) {
	c.yaw = yaw
	c.pitch = clampPitch(pitch)
	c.updateOffset(playerY)
}

// Angles returns the current yaw and pitch in degrees
func (c *OrbitCamera) Angles() (yaw, pitch float32) {
	return c.yaw, c.pitch
}

// Offset returns the vector from the player to the eye
func (c *OrbitCamera) Offset() mgl32.Vec3 {
	return c.offset
}

// Eye returns the eye position for a player at the given position
func (c *OrbitCamera) Eye(player mgl32.Vec3) mgl32.Vec3 {
	return player.Add(c.offset)
}

// Front returns the unit vector from the eye towards the player
func (c *OrbitCamera) Front() mgl32.Vec3 {
	return c.offset.Mul(-1).Normalize()
}

// ViewMatrix returns the view matrix looking from the eye at the player
func (c *OrbitCamera) ViewMatrix(player mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(player), player, c.worldUp)
}
