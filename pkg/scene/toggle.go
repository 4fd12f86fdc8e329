package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LampOnColor is the base color of the first point light while it is on
var LampOnColor = mgl32.Vec3{1, 1, 0}

// LightToggle switches the first point light between off and on. It only
// changes state when the toggle key goes from released to held, so key repeat
// and other keys' events while it is held have no effect.
type LightToggle struct {
	active bool
	held   bool
}

// Update feeds the current held state of the toggle key and reports whether
// the light changed state.
func (t *LightToggle) Update(held bool) bool {
	changed := held && !t.held
	if changed {
		t.active = !t.active
	}
	t.held = held
	return changed
}

// Active reports whether the light is on
func (t *LightToggle) Active() bool {
	return t.active
}

// Color returns LampOnColor while on and black while off
func (t *LightToggle) Color() mgl32.Vec3 {
	if t.active {
		return LampOnColor
	}
	return mgl32.Vec3{}
}

// Pulse returns the animated color of the first point light at time t seconds
// for the given base color. X and Y are folded into [0,1]; Z keeps its sign.
func Pulse(t float64, base mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Abs(math.Sin(t * float64(base.X())))),
		float32(math.Abs(math.Sin(t * float64(base.Y())))),
		float32(math.Sin(t * float64(base.Z()))),
	}
}
