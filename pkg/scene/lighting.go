package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformSink receives named shader parameters. *openglhelper.Shader
// implements it.
type UniformSink interface {
	SetVec3(name string, vec mgl32.Vec3)
	SetFloat(name string, value float32)
}

// Attenuation holds the constant, linear and quadratic falloff terms
type Attenuation struct {
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DirLight is a light at infinity shining along Direction
type DirLight struct {
	Direction mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
}

// PointLight radiates from Position with quadratic falloff
type PointLight struct {
	Position mgl32.Vec3
	Ambient  mgl32.Vec3
	Diffuse  mgl32.Vec3
	Specular mgl32.Vec3
	Attenuation
}

// SpotLight is a point light restricted to a cone. CutOff and OuterCutOff
// are cosines of the inner and outer cone angles.
type SpotLight struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Ambient     mgl32.Vec3
	Diffuse     mgl32.Vec3
	Specular    mgl32.Vec3
	CutOff      float32
	OuterCutOff float32
	Attenuation
}

// Lighting is the full set of lighting parameters for one frame
type Lighting struct {
	ViewPos   mgl32.Vec3
	Dir       DirLight
	Points    [NumPointLights]PointLight
	Spot      SpotLight
	Shininess float32
}

// Spot cone angles in degrees
const (
	spotInnerAngle = 12.0
	spotOuterAngle = 18.0
)

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

// Lighting builds the lighting rig for elapsed time t seconds. The first
// point light pulses with the toggle color; the spotlight follows the camera.
func (s *State) Lighting(t float64) Lighting {
	eye := s.Eye()
	pulse := Pulse(t, s.Toggle.Color())

	var l Lighting
	l.ViewPos = eye
	l.Shininess = 16

	l.Dir = DirLight{
		Direction: mgl32.Vec3{-0.2, -1.0, -0.3},
		Ambient:   mgl32.Vec3{0.3, 0.3, 0.3},
		Diffuse:   mgl32.Vec3{0.6, 0.6, 0.6},
		Specular:  mgl32.Vec3{1, 1, 1},
	}

	l.Points[0] = PointLight{
		Position:    s.PointLights[0],
		Ambient:     pulse,
		Diffuse:     pulse,
		Specular:    mgl32.Vec3{1.0, 0.2, 0.2},
		Attenuation: Attenuation{Constant: 1.0, Linear: 0.045, Quadratic: 0.075},
	}
	l.Points[1] = PointLight{
		Position:    s.PointLights[1],
		Ambient:     mgl32.Vec3{0.05, 0.05, 0.05},
		Attenuation: Attenuation{Constant: 1.0},
	}
	for i := 2; i < NumPointLights; i++ {
		l.Points[i] = PointLight{
			Position:    s.PointLights[i],
			Attenuation: Attenuation{Constant: 1.0},
		}
	}

	l.Spot = SpotLight{
		Position:    eye,
		Direction:   s.Camera.Front(),
		Ambient:     mgl32.Vec3{0.2, 0.2, 0.8},
		Diffuse:     mgl32.Vec3{0.2, 0.2, 0.8},
		CutOff:      cosDeg(spotInnerAngle),
		OuterCutOff: cosDeg(spotOuterAngle),
		Attenuation: Attenuation{Constant: 1.0, Linear: 0.3, Quadratic: 0.7},
	}

	return l
}

// Apply uploads every lighting parameter to u using the uniform names of the
// lighting shader.
func (l Lighting) Apply(u UniformSink) {
	u.SetVec3("viewPos", l.ViewPos)
	u.SetFloat("material.shininess", l.Shininess)

	u.SetVec3("dirLight.direction", l.Dir.Direction)
	u.SetVec3("dirLight.ambient", l.Dir.Ambient)
	u.SetVec3("dirLight.diffuse", l.Dir.Diffuse)
	u.SetVec3("dirLight.specular", l.Dir.Specular)

	for i, p := range l.Points {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		u.SetVec3(prefix+"position", p.Position)
		u.SetVec3(prefix+"ambient", p.Ambient)
		u.SetVec3(prefix+"diffuse", p.Diffuse)
		u.SetVec3(prefix+"specular", p.Specular)
		applyAttenuation(u, prefix, p.Attenuation)
	}

	u.SetVec3("spotLight.position", l.Spot.Position)
	u.SetVec3("spotLight.direction", l.Spot.Direction)
	u.SetVec3("spotLight.ambient", l.Spot.Ambient)
	u.SetVec3("spotLight.diffuse", l.Spot.Diffuse)
	u.SetVec3("spotLight.specular", l.Spot.Specular)
	u.SetFloat("spotLight.cutOff", l.Spot.CutOff)
	u.SetFloat("spotLight.outerCutOff", l.Spot.OuterCutOff)
	applyAttenuation(u, "spotLight.", l.Spot.Attenuation)
}

func applyAttenuation(u UniformSink, prefix string, a Attenuation) {
	u.SetFloat(prefix+"constant", a.Constant)
	u.SetFloat(prefix+"linear", a.Linear)
	u.SetFloat(prefix+"quadratic", a.Quadratic)
}
