// Package lighting implements the Phong light rig and shading model for the
// kinetic sculpture: one directional light, four orbiting point lights, and a
// viewer-attached spotlight.
package lighting

import (
	"fmt"

	"github.com/lumen3d/kinetic/pkg/math3d"
)

// NumPointLights is the fixed size of the point-light array.
const NumPointLights = 4

// minAttenuationConstant keeps the attenuation denominator away from zero at
// the light source.
const minAttenuationConstant = 1e-4

// Attenuation holds the distance-falloff coefficients of a positional light:
// factor = 1 / (Constant + Linear·d + Quadratic·d²).
type Attenuation struct {
	Constant  float64
	Linear    float64
	Quadratic float64
}

// Factor returns the attenuation factor at the given distance.
func (a Attenuation) Factor(dist float64) float64 {
	return 1.0 / (a.Constant + a.Linear*dist + a.Quadratic*dist*dist)
}

// Validate checks that the coefficients cannot blow up the falloff division.
func (a Attenuation) Validate() error {
	if a.Constant < minAttenuationConstant {
		return fmt.Errorf("attenuation constant %v below minimum %v", a.Constant, minAttenuationConstant)
	}
	if a.Linear < 0 || a.Quadratic < 0 {
		return fmt.Errorf("attenuation linear/quadratic coefficients must be non-negative, got %v/%v", a.Linear, a.Quadratic)
	}
	return nil
}

// DirLight is a directional light. Direction points from the light toward the
// scene.
type DirLight struct {
	Direction math3d.Vec3
	Ambient   math3d.Vec3
	Diffuse   math3d.Vec3
	Specular  math3d.Vec3
}

// Validate checks the light direction is usable.
func (l DirLight) Validate() error {
	if l.Direction.Len() == 0 {
		return fmt.Errorf("directional light has zero direction")
	}
	return nil
}

// PointLight is an omnidirectional light with distance falloff. Position is
// recomputed every frame by the animation field.
type PointLight struct {
	Position    math3d.Vec3
	Attenuation Attenuation
	Ambient     math3d.Vec3
	Diffuse     math3d.Vec3
	Specular    math3d.Vec3
}

// Validate checks the falloff coefficients.
func (l PointLight) Validate() error {
	return l.Attenuation.Validate()
}

// SpotLight is a cone light rigidly attached to the viewer: every frame its
// position is set to the camera position and its direction to the camera
// forward vector. InnerCutOff and OuterCutOff are cosines of the half-angles.
type SpotLight struct {
	Position    math3d.Vec3
	Direction   math3d.Vec3
	InnerCutOff float64
	OuterCutOff float64
	Attenuation Attenuation
	Ambient     math3d.Vec3
	Diffuse     math3d.Vec3
	Specular    math3d.Vec3
}

// Validate checks the cone configuration. The inner cutoff must be strictly
// greater than the outer one so the cone-edge ramp has a non-zero width.
func (l SpotLight) Validate() error {
	if err := l.Attenuation.Validate(); err != nil {
		return err
	}
	if l.InnerCutOff <= 0 || l.InnerCutOff >= 1 {
		return fmt.Errorf("spot inner cutoff %v outside (0,1)", l.InnerCutOff)
	}
	if l.OuterCutOff <= 0 || l.OuterCutOff >= 1 {
		return fmt.Errorf("spot outer cutoff %v outside (0,1)", l.OuterCutOff)
	}
	if l.InnerCutOff <= l.OuterCutOff {
		return fmt.Errorf("spot inner cutoff %v must exceed outer cutoff %v", l.InnerCutOff, l.OuterCutOff)
	}
	return nil
}

// Material is the single global surface description shared by all cubes.
type Material struct {
	Diffuse   math3d.Vec3
	Specular  math3d.Vec3
	Shininess float64
}

// Validate checks the specular exponent. pow with a non-positive exponent is
// undefined for a zero base.
func (m Material) Validate() error {
	if m.Shininess <= 0 {
		return fmt.Errorf("material shininess %v must be positive", m.Shininess)
	}
	return nil
}

// Rig is the complete light set of the scene.
type Rig struct {
	Dir    DirLight
	Points [NumPointLights]PointLight
	Spot   SpotLight
}

// Validate checks every light in the rig.
func (r *Rig) Validate() error {
	if err := r.Dir.Validate(); err != nil {
		return fmt.Errorf("directional light: %w", err)
	}
	for i := range r.Points {
		if err := r.Points[i].Validate(); err != nil {
			return fmt.Errorf("point light %d: %w", i, err)
		}
	}
	if err := r.Spot.Validate(); err != nil {
		return fmt.Errorf("spot light: %w", err)
	}
	return nil
}
