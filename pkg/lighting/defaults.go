package lighting

import (
	"math"

	"github.com/lumen3d/kinetic/pkg/math3d"
)

// PointColors are the diffuse colors of the four orbiting lights. The marker
// pass reuses them for the unlit light cubes.
var PointColors = [NumPointLights]math3d.Vec3{
	{X: 1, Y: 0.25, Z: 0.25},
	{X: 0.25, Y: 1, Z: 0.25},
	{X: 0.25, Y: 0.25, Z: 1},
	{X: 1, Y: 0.8, Z: 0.2},
}

// DefaultRig returns the sculpture's light set: a cool dim directional light,
// four saturated point lights, and a white viewer spotlight. Positions and
// the spot pose are placeholders until the first frame update.
func DefaultRig() *Rig {
	r := &Rig{
		Dir: DirLight{
			Direction: math3d.V3(-0.3, -1, -0.4),
			Ambient:   math3d.V3(0.04, 0.04, 0.06),
			Diffuse:   math3d.V3(0.2, 0.2, 0.3),
			Specular:  math3d.V3(0.5, 0.5, 0.5),
		},
		Spot: SpotLight{
			Direction:   math3d.V3(0, 0, -1),
			InnerCutOff: math.Cos(math3d.Radians(12.5)),
			OuterCutOff: math.Cos(math3d.Radians(17.5)),
			Attenuation: Attenuation{Constant: 1, Linear: 0.05, Quadratic: 0.012},
			Ambient:     math3d.Zero3(),
			Diffuse:     math3d.V3(1, 1, 1),
			Specular:    math3d.V3(1, 1, 1),
		},
	}
	for i := range r.Points {
		r.Points[i] = PointLight{
			Attenuation: Attenuation{Constant: 1, Linear: 0.07, Quadratic: 0.017},
			Ambient:     PointColors[i].Scale(0.05),
			Diffuse:     PointColors[i],
			Specular:    PointColors[i],
		}
	}
	return r
}

// DefaultMaterial returns the shared cube surface: a muted blue diffuse with
// a tight bluish-white highlight.
func DefaultMaterial() Material {
	return Material{
		Diffuse:   math3d.V3(0.2, 0.45, 0.7),
		Specular:  math3d.V3(0.8, 0.85, 0.9),
		Shininess: 96,
	}
}
