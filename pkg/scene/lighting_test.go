package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// recordingSink captures uniforms in maps keyed by name
type recordingSink struct {
	vec3s  map[string]mgl32.Vec3
	floats map[string]float32
	writes map[string]int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{
		vec3s:  make(map[string]mgl32.Vec3),
		floats: make(map[string]float32),
		writes: make(map[string]int),
	}
}

func (r *recordingSink) SetVec3(name string, vec mgl32.Vec3) {
	r.vec3s[name] = vec
	r.writes[name]++
}

func (r *recordingSink) SetFloat(name string, value float32) {
	r.floats[name] = value
	r.writes[name]++
}

func TestLightingApplyUniforms(t *testing.T) {
	s := NewState(DefaultSettings())
	sink := newRecordingSink()
	s.Lighting(1.5).Apply(sink)

	vecTests := []struct {
		name string
		want mgl32.Vec3
	}{
		{"dirLight.direction", mgl32.Vec3{-0.2, -1, -0.3}},
		{"dirLight.ambient", mgl32.Vec3{0.3, 0.3, 0.3}},
		{"dirLight.diffuse", mgl32.Vec3{0.6, 0.6, 0.6}},
		{"dirLight.specular", mgl32.Vec3{1, 1, 1}},
		{"pointLights[0].position", mgl32.Vec3{0, 5, 0}},
		{"pointLights[0].specular", mgl32.Vec3{1, 0.2, 0.2}},
		{"pointLights[1].ambient", mgl32.Vec3{0.05, 0.05, 0.05}},
		{"pointLights[1].diffuse", mgl32.Vec3{}},
		{"pointLights[3].ambient", mgl32.Vec3{}},
		{"spotLight.ambient", mgl32.Vec3{0.2, 0.2, 0.8}},
		{"spotLight.diffuse", mgl32.Vec3{0.2, 0.2, 0.8}},
		{"spotLight.specular", mgl32.Vec3{}},
		{"viewPos", s.Eye()},
		{"spotLight.position", s.Eye()},
	}
	for _, tt := range vecTests {
		got, ok := sink.vec3s[tt.name]
		if !ok {
			t.Errorf("%s not written", tt.name)
			continue
		}
		if !approxVec(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	floatTests := []struct {
		name string
		want float32
	}{
		{"material.shininess", 16},
		{"pointLights[0].constant", 1},
		{"pointLights[0].linear", 0.045},
		{"pointLights[0].quadratic", 0.075},
		{"pointLights[2].constant", 1},
		{"pointLights[2].linear", 0},
		{"spotLight.linear", 0.3},
		{"spotLight.quadratic", 0.7},
		{"spotLight.cutOff", float32(math.Cos(12 * math.Pi / 180))},
		{"spotLight.outerCutOff", float32(math.Cos(18 * math.Pi / 180))},
	}
	for _, tt := range floatTests {
		got, ok := sink.floats[tt.name]
		if !ok {
			t.Errorf("%s not written", tt.name)
			continue
		}
		if !approx(got, tt.want) {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLightingApplyWritesEachUniformOnce(t *testing.T) {
	sink := newRecordingSink()
	NewState(DefaultSettings()).Lighting(0).Apply(sink)

	for name, n := range sink.writes {
		if n != 1 {
			t.Errorf("%s written %d times, want 1", name, n)
		}
	}

	// viewPos, shininess, 4 directional, 7 per point light, 10 spot
	if want := 2 + 4 + 7*NumPointLights + 10; len(sink.writes) != want {
		t.Errorf("wrote %d uniforms, want %d", len(sink.writes), want)
	}
}

func TestLightingPulseFollowsToggle(t *testing.T) {
	s := NewState(DefaultSettings())

	off := s.Lighting(1.2)
	if off.Points[0].Ambient != (mgl32.Vec3{}) || off.Points[0].Diffuse != (mgl32.Vec3{}) {
		t.Errorf("light off: ambient %v diffuse %v, want black", off.Points[0].Ambient, off.Points[0].Diffuse)
	}

	s.HandleKey(KeyToggleLight, Press)
	on := s.Lighting(1.2)
	want := Pulse(1.2, LampOnColor)
	if on.Points[0].Ambient != want || on.Points[0].Diffuse != want {
		t.Errorf("light on: ambient %v diffuse %v, want %v", on.Points[0].Ambient, on.Points[0].Diffuse, want)
	}
	if want.X() == 0 {
		t.Fatalf("pulse at t=1.2 unexpectedly black")
	}
}

func TestLightingSpotFollowsCamera(t *testing.T) {
	s := NewState(DefaultSettings())
	s.HandleCursor(0, 0)
	s.HandleCursor(300, -150)
	s.Player = mgl32.Vec3{4, 0.8, 9}

	l := s.Lighting(0)
	if !approxVec(l.Spot.Position, s.Eye()) {
		t.Errorf("spot position = %v, want %v", l.Spot.Position, s.Eye())
	}

	toPlayer := s.Player.Sub(s.Eye()).Normalize()
	if !approxVec(l.Spot.Direction, toPlayer) {
		t.Errorf("spot direction = %v, want %v", l.Spot.Direction, toPlayer)
	}
}

func TestLightingTracksNudgedLight(t *testing.T) {
	s := NewState(DefaultSettings())
	s.HandleKey(KeyU, Press)
	s.ApplyMovement(0.016)

	if got := s.Lighting(0).Points[0].Position; !approxVec(got, mgl32.Vec3{0, 5, -0.1}) {
		t.Errorf("pointLights[0].position = %v, want (0, 5, -0.1)", got)
	}
}
