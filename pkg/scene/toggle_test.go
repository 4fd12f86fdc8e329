package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLightToggleStartsOff(t *testing.T) {
	s := NewState(DefaultSettings())

	if s.Toggle.Active() {
		t.Errorf("Active() = true, want false")
	}
	if got := s.Toggle.Color(); got != (mgl32.Vec3{}) {
		t.Errorf("Color() = %v, want black", got)
	}
}

func TestLightTogglePressReleaseCycles(t *testing.T) {
	s := NewState(DefaultSettings())

	s.HandleKey(KeySpace, Press)
	s.HandleKey(KeySpace, Release)
	if !s.Toggle.Active() || s.Toggle.Color() != (mgl32.Vec3{1, 1, 0}) {
		t.Fatalf("after one cycle: active=%v color=%v, want on (1,1,0)", s.Toggle.Active(), s.Toggle.Color())
	}

	s.HandleKey(KeySpace, Press)
	s.HandleKey(KeySpace, Release)
	if s.Toggle.Active() || s.Toggle.Color() != (mgl32.Vec3{}) {
		t.Errorf("after two cycles: active=%v color=%v, want off (0,0,0)", s.Toggle.Active(), s.Toggle.Color())
	}
}

type keyEvent struct {
	key    Key
	action Action
}

func TestLightToggleIgnoresHeldKey(t *testing.T) {
	tests := []struct {
		name       string
		events     []keyEvent
		wantActive bool
	}{
		{
			name: "key repeat while held",
			events: []keyEvent{
				{KeySpace, Press}, {KeySpace, Repeat}, {KeySpace, Repeat}, {KeySpace, Repeat},
			},
			wantActive: true,
		},
		{
			name: "other keys while held",
			events: []keyEvent{
				{KeySpace, Press}, {KeyW, Press}, {KeyW, Release}, {KeyA, Press}, {KeySpace, Release}, {KeyA, Release},
			},
			wantActive: true,
		},
		{
			name: "release without press",
			events: []keyEvent{
				{KeySpace, Release}, {KeyW, Press},
			},
			wantActive: false,
		},
		{
			name: "three presses",
			events: []keyEvent{
				{KeySpace, Press}, {KeySpace, Release},
				{KeySpace, Press}, {KeySpace, Release},
				{KeySpace, Press}, {KeySpace, Release},
			},
			wantActive: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(DefaultSettings())
			for _, e := range tt.events {
				s.HandleKey(e.key, e.action)
			}
			if got := s.Toggle.Active(); got != tt.wantActive {
				t.Errorf("Active() = %v, want %v", got, tt.wantActive)
			}
		})
	}
}

func TestLightToggleUpdateReportsChange(t *testing.T) {
	var toggle LightToggle

	if !toggle.Update(true) {
		t.Errorf("Update(true) from released = false, want true")
	}
	if toggle.Update(true) {
		t.Errorf("Update(true) while held = true, want false")
	}
	if toggle.Update(false) {
		t.Errorf("Update(false) = true, want false")
	}
}

func TestPulseAtTimeZero(t *testing.T) {
	if got := Pulse(0, LampOnColor); got != (mgl32.Vec3{}) {
		t.Errorf("Pulse(0, on) = %v, want (0,0,0)", got)
	}
}

func TestPulseOffIsBlack(t *testing.T) {
	for _, tm := range []float64{0, 0.5, 1, 3.3, 100, 12345.678} {
		if got := Pulse(tm, mgl32.Vec3{}); got != (mgl32.Vec3{}) {
			t.Errorf("Pulse(%v, off) = %v, want (0,0,0)", tm, got)
		}
	}
}

func TestPulseRange(t *testing.T) {
	bases := []mgl32.Vec3{LampOnColor, {1, 1, 1}, {0.3, 2.5, 1}}

	for _, base := range bases {
		for i := 0; i < 5000; i++ {
			tm := float64(i) * 0.037
			c := Pulse(tm, base)
			if c.X() < 0 || c.X() > 1 || c.Y() < 0 || c.Y() > 1 {
				t.Fatalf("Pulse(%v, %v) = %v, want x,y in [0,1]", tm, base, c)
			}
			if c.Z() < -1 || c.Z() > 1 {
				t.Fatalf("Pulse(%v, %v) = %v, want z in [-1,1]", tm, base, c)
			}
		}
	}
}

func TestPulseValue(t *testing.T) {
	tm := 2.0
	got := Pulse(tm, mgl32.Vec3{1, 1, 1})
	want := mgl32.Vec3{
		float32(math.Abs(math.Sin(tm))),
		float32(math.Abs(math.Sin(tm))),
		float32(math.Sin(tm)),
	}
	if got != want {
		t.Errorf("Pulse(%v) = %v, want %v", tm, got, want)
	}
}
