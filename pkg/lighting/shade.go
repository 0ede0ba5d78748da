package lighting

import (
	"math"

	"github.com/lumen3d/kinetic/pkg/math3d"
)

// Shade evaluates the full lighting model at one surface point: directional
// contribution plus all point lights plus the spotlight, each an additive
// ambient + diffuse + specular Phong term.
//
// normal and viewDir must be unit length; viewDir points from the surface
// toward the viewer. The result is linear RGB and may exceed 1 per channel;
// clamping happens only at the display boundary.
func Shade(normal, viewDir, fragPos math3d.Vec3, mat Material, rig *Rig) math3d.Vec3 {
	c := rig.Dir.contribution(normal, viewDir, mat)
	for i := range rig.Points {
		c = c.Add(rig.Points[i].contribution(normal, viewDir, fragPos, mat))
	}
	return c.Add(rig.Spot.contribution(normal, viewDir, fragPos, mat))
}

// phongTerms returns the diffuse and specular factors for a surface lit from
// lightDir (surface toward light, unit length).
func phongTerms(lightDir, normal, viewDir math3d.Vec3, shininess float64) (diff, spec float64) {
	diff = math.Max(lightDir.Dot(normal), 0)
	reflected := lightDir.Negate().Reflect(normal)
	spec = math.Pow(math.Max(viewDir.Dot(reflected), 0), shininess)
	return diff, spec
}

func (l DirLight) contribution(normal, viewDir math3d.Vec3, mat Material) math3d.Vec3 {
	lightDir := l.Direction.Negate().Normalize()
	diff, spec := phongTerms(lightDir, normal, viewDir, mat.Shininess)
	return l.Ambient.Mul(mat.Diffuse).
		Add(l.Diffuse.Scale(diff).Mul(mat.Diffuse)).
		Add(l.Specular.Scale(spec).Mul(mat.Specular))
}

func (l *PointLight) contribution(normal, viewDir, fragPos math3d.Vec3, mat Material) math3d.Vec3 {
	lightDir := l.Position.Sub(fragPos).Normalize()
	diff, spec := phongTerms(lightDir, normal, viewDir, mat.Shininess)
	att := l.Attenuation.Factor(l.Position.Distance(fragPos))
	return l.Ambient.Mul(mat.Diffuse).
		Add(l.Diffuse.Scale(diff).Mul(mat.Diffuse)).
		Add(l.Specular.Scale(spec).Mul(mat.Specular)).
		Scale(att)
}

func (l *SpotLight) contribution(normal, viewDir, fragPos math3d.Vec3, mat Material) math3d.Vec3 {
	lightDir := l.Position.Sub(fragPos).Normalize()
	diff, spec := phongTerms(lightDir, normal, viewDir, mat.Shininess)
	att := l.Attenuation.Factor(l.Position.Distance(fragPos))
	return l.Ambient.Mul(mat.Diffuse).
		Add(l.Diffuse.Scale(diff).Mul(mat.Diffuse)).
		Add(l.Specular.Scale(spec).Mul(mat.Specular)).
		Scale(att * l.coneIntensity(lightDir))
}

// coneIntensity returns 1 inside the inner cone, 0 outside the outer cone,
// and a linear ramp between. lightDir points from the surface toward the
// light. Validated rigs guarantee inner > outer; the denominator floor covers
// hand-built configs.
func (l *SpotLight) coneIntensity(lightDir math3d.Vec3) float64 {
	theta := lightDir.Dot(l.Direction.Negate().Normalize())
	width := l.InnerCutOff - l.OuterCutOff
	if width < 1e-9 {
		width = 1e-9
	}
	return math3d.Clamp((theta-l.OuterCutOff)/width, 0, 1)
}
