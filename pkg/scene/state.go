package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Settings tunes the simulation. The zero value is not usable; start from
// DefaultSettings.
type Settings struct {
	MoveSpeed   float32 // player units per second
	Sensitivity float32 // degrees per pixel of cursor motion
	NudgePolicy NudgePolicy
	NudgeSpeed  float32 // light units per second with NudgeScaled

	PlayerStart mgl32.Vec3
	LampStart   mgl32.Vec3 // initial position of the first point light
}

// DefaultSettings returns the settings the scene was authored with
func DefaultSettings() Settings {
	return Settings{
		MoveSpeed:   DefaultMoveSpeed,
		Sensitivity: DefaultSensitivity,
		NudgePolicy: NudgeLegacy,
		NudgeSpeed:  DefaultNudgeSpeed,
		PlayerStart: mgl32.Vec3{0, 0.8, 0},
		LampStart:   mgl32.Vec3{0, 5, 0},
	}
}

// State is the complete per-frame simulation state. It is owned by the
// render loop; callbacks and the draw step receive it by pointer.
type State struct {
	Keys        KeyTable
	Camera      *OrbitCamera
	Toggle      LightToggle
	Player      mgl32.Vec3
	PointLights [NumPointLights]mgl32.Vec3

	settings Settings
}

// NewState creates the initial scene state
func NewState(settings Settings) *State {
	s := &State{
		Player:   settings.PlayerStart,
		settings: settings,
	}
	s.PointLights[0] = settings.LampStart

	s.Camera = NewOrbitCamera(s.Player.Y())
	s.Camera.SetSensitivity(settings.Sensitivity)

	return s
}

// Settings returns the settings the state was created with
func (s *State) Settings() Settings {
	return s.settings
}

// SetNudgePolicy switches the nudge policy at runtime
func (s *State) SetNudgePolicy(policy NudgePolicy, speed float32) {
	s.settings.NudgePolicy = policy
	s.settings.NudgeSpeed = speed
}

// HandleKey applies a key event to the key table and the light toggle. It
// reports whether the light changed state.
func (s *State) HandleKey(key Key, action Action) bool {
	s.Keys.Set(key, action)
	return s.Toggle.Update(s.Keys.Held(KeyToggleLight))
}

// HandleCursor forwards a cursor position to the orbit camera
func (s *State) HandleCursor(xpos, ypos float64) {
	s.Camera.HandleCursor(xpos, ypos, s.Player.Y())
}

// Eye returns the current camera position in world space
func (s *State) Eye() mgl32.Vec3 {
	return s.Camera.Eye(s.Player)
}
