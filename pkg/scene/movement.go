package scene

import (
	"fmt"
	"strings"
)

// NudgePolicy selects how the point light nudge keys move the light
type NudgePolicy int

const (
	// NudgeLegacy moves the light a fixed amount every frame a key is held,
	// 0.01 units on every axis except U, which moves 0.1.
	NudgeLegacy NudgePolicy = iota
	// NudgeScaled moves the light NudgeSpeed units per second on every axis.
	NudgeScaled
)

// String returns the configuration name of the policy
func (p NudgePolicy) String() string {
	switch p {
	case NudgeLegacy:
		return "legacy"
	case NudgeScaled:
		return "scaled"
	default:
		return fmt.Sprintf("NudgePolicy(%d)", int(p))
	}
}

// ParseNudgePolicy parses a policy name as used in configuration files
func ParseNudgePolicy(name string) (NudgePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "legacy":
		return NudgeLegacy, nil
	case "scaled":
		return NudgeScaled, nil
	default:
		return NudgeLegacy, fmt.Errorf("unknown nudge policy %q", name)
	}
}

// playerBinding moves the player along one axis while any of its keys is held
type playerBinding struct {
	keys []Key
	axis int
	sign float32
}

// The key-to-direction mapping is intentionally swapped: S and Up move
// towards -Z, D and Left towards -X.
var playerBindings = []playerBinding{
	{keys: []Key{KeyS, KeyUp}, axis: 2, sign: -1},
	{keys: []Key{KeyW, KeyDown}, axis: 2, sign: 1},
	{keys: []Key{KeyD, KeyLeft}, axis: 0, sign: -1},
	{keys: []Key{KeyA, KeyRight}, axis: 0, sign: 1},
}

// lightBinding nudges the first point light along one axis
type lightBinding struct {
	key        Key
	axis       int
	sign       float32
	legacyStep float32
}

var lightBindings = []lightBinding{
	{key: KeyT, axis: 0, sign: 1, legacyStep: LegacyNudgeStep},
	{key: KeyG, axis: 0, sign: -1, legacyStep: LegacyNudgeStep},
	{key: KeyF, axis: 1, sign: 1, legacyStep: LegacyNudgeStep},
	{key: KeyH, axis: 1, sign: -1, legacyStep: LegacyNudgeStep},
	{key: KeyU, axis: 2, sign: -1, legacyStep: LegacyNudgeStepUp},
	{key: KeyJ, axis: 2, sign: 1, legacyStep: LegacyNudgeStep},
}

// ApplyMovement advances the player and the first point light by one frame
// of deltaTime seconds using the currently held keys.
func (s *State) ApplyMovement(deltaTime float32) {
	speed := s.settings.MoveSpeed * deltaTime

	for _, b := range playerBindings {
		if s.Keys.Any(b.keys...) {
			s.Player[b.axis] += b.sign * speed
		}
	}

	for _, b := range lightBindings {
		if !s.Keys.Held(b.key) {
			continue
		}
		step := b.legacyStep
		if s.settings.NudgePolicy == NudgeScaled {
			step = s.settings.NudgeSpeed * deltaTime
		}
		s.PointLights[0][b.axis] += b.sign * step
	}
}
