// Package scene holds the simulation state of the chase-camera scene: the
// orbit camera, the player, the point lights and the lamp toggle. Nothing in
// this package talks to the GPU; the renderer reads a Frame snapshot.
package scene

// Key is a keyboard key code. Values match GLFW key codes so the renderer can
// convert glfw.Key values directly.
type Key int

// Key constants used by the scene
const (
	KeySpace  Key = 32
	KeyA      Key = 65
	KeyC      Key = 67
	KeyD      Key = 68
	KeyF      Key = 70
	KeyG      Key = 71
	KeyH      Key = 72
	KeyJ      Key = 74
	KeyS      Key = 83
	KeyT      Key = 84
	KeyU      Key = 85
	KeyW      Key = 87
	KeyEscape Key = 256
	KeyRight  Key = 262
	KeyLeft   Key = 263
	KeyDown   Key = 264
	KeyUp     Key = 265
)

// Action mirrors the GLFW key action values.
type Action int

// Action constants for key states
const (
	Release Action = 0
	Press   Action = 1
	Repeat  Action = 2
)

// Key bindings
const (
	KeyToggleLight  = KeySpace
	KeyCaptureMouse = KeyC
	KeyQuit         = KeyEscape
)

// Camera constants
const (
	DefaultSensitivity = 0.1
	DefaultYaw         = -90.0
	DefaultPitch       = 10.0
	OrbitRadius        = 6.0

	// Constraints
	MinPitch     = 5.0
	MaxPitch     = 89.0
	GroundHeight = 1.0
)

// Projection constants
const (
	DefaultFOV = 45.0
	NearPlane  = 0.1
	FarPlane   = 100.0
)

// Movement constants
const (
	DefaultMoveSpeed = 20.0

	// Per-frame nudges applied to the first point light in legacy mode.
	LegacyNudgeStep   = 0.01
	LegacyNudgeStepUp = 0.1 // U key, ten times the other axes

	// Units per second when nudges are scaled by frame time.
	DefaultNudgeSpeed = 0.6
)

// Model scales
const (
	CharacterScale = 0.7
	LampScale      = 0.2
)

// NumPointLights is the number of point light slots in the lighting shader.
const NumPointLights = 4
