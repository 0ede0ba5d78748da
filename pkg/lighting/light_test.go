package lighting

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen3d/kinetic/pkg/math3d"
)

func TestDefaultRigValidates(t *testing.T) {
	require.NoError(t, DefaultRig().Validate())
	require.NoError(t, DefaultMaterial().Validate())
}

func TestValidationRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rig)
	}{
		{"zero attenuation constant", func(r *Rig) { r.Points[0].Attenuation.Constant = 0 }},
		{"negative attenuation constant", func(r *Rig) { r.Points[2].Attenuation.Constant = -1 }},
		{"negative linear coefficient", func(r *Rig) { r.Points[1].Attenuation.Linear = -0.1 }},
		{"spot inner equals outer", func(r *Rig) { r.Spot.InnerCutOff = r.Spot.OuterCutOff }},
		{"spot inner below outer", func(r *Rig) { r.Spot.InnerCutOff, r.Spot.OuterCutOff = r.Spot.OuterCutOff, r.Spot.InnerCutOff }},
		{"spot outer at one", func(r *Rig) { r.Spot.OuterCutOff = 1 }},
		{"zero light direction", func(r *Rig) { r.Dir.Direction = math3d.Zero3() }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := DefaultRig()
			tc.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestMaterialValidation(t *testing.T) {
	m := DefaultMaterial()
	m.Shininess = 0
	assert.Error(t, m.Validate())
	m.Shininess = -3
	assert.Error(t, m.Validate())
}

func TestAttenuationFactor(t *testing.T) {
	a := Attenuation{Constant: 1, Linear: 0.07, Quadratic: 0.017}
	assert.InDelta(t, 1.0, a.Factor(0), 1e-12, "no falloff at the source")
	assert.Less(t, a.Factor(10), a.Factor(5), "falloff must decrease with distance")
	assert.Greater(t, a.Factor(100), 0.0, "smooth falloff, no hard cutoff")
}

// Shading with every light color zeroed must return pure black: there is no
// implicit ambient term in the model.
func TestShadeZeroLightsIsBlack(t *testing.T) {
	rig := DefaultRig()
	rig.Dir.Ambient = math3d.Zero3()
	rig.Dir.Diffuse = math3d.Zero3()
	rig.Dir.Specular = math3d.Zero3()
	for i := range rig.Points {
		rig.Points[i].Ambient = math3d.Zero3()
		rig.Points[i].Diffuse = math3d.Zero3()
		rig.Points[i].Specular = math3d.Zero3()
	}
	rig.Spot.Ambient = math3d.Zero3()
	rig.Spot.Diffuse = math3d.Zero3()
	rig.Spot.Specular = math3d.Zero3()

	c := Shade(math3d.Up(), math3d.V3(0, 0, 1), math3d.Zero3(), DefaultMaterial(), rig)
	assert.Equal(t, math3d.Zero3(), c)
}

func TestDirectionalContribution(t *testing.T) {
	light := DirLight{
		Direction: math3d.V3(0, -1, 0), // straight down
		Ambient:   math3d.V3(0.1, 0.1, 0.1),
		Diffuse:   math3d.V3(0.5, 0.5, 0.5),
		Specular:  math3d.V3(1, 1, 1),
	}
	mat := Material{
		Diffuse:   math3d.V3(1, 1, 1),
		Specular:  math3d.V3(1, 1, 1),
		Shininess: 32,
	}

	// Upward normal, viewer directly above: full diffuse and full specular
	// (the reflection of straight-down light points straight up at the eye).
	c := light.contribution(math3d.Up(), math3d.Up(), mat)
	assert.InDelta(t, 0.1+0.5+1.0, c.X, 1e-9)

	// Grazing view direction kills the specular term but not the diffuse.
	c = light.contribution(math3d.Up(), math3d.V3(1, 0, 0), mat)
	assert.InDelta(t, 0.1+0.5, c.X, 1e-9)

	// Normal facing away from the light: ambient only.
	c = light.contribution(math3d.Up().Negate(), math3d.Up(), mat)
	assert.InDelta(t, 0.1, c.X, 1e-9)
}

func TestPointContributionAttenuates(t *testing.T) {
	rig := DefaultRig()
	mat := DefaultMaterial()
	l := rig.Points[0]
	l.Position = math3d.V3(0, 5, 0)

	near := l.contribution(math3d.Up(), math3d.Up(), math3d.Zero3(), mat)
	l.Position = math3d.V3(0, 20, 0)
	far := l.contribution(math3d.Up(), math3d.Up(), math3d.Zero3(), mat)

	assert.Greater(t, near.X, far.X, "closer light must contribute more")
	assert.Greater(t, far.X, 0.0)
}

func TestSpotConeIntensity(t *testing.T) {
	spot := DefaultRig().Spot
	spot.Position = math3d.V3(0, 0, 10)
	spot.Direction = math3d.V3(0, 0, -1)

	// lightDir is surface→light, so on-axis means lightDir = -spot.Direction.
	axis := spot.Direction.Negate()

	// On-axis: theta = 1 ≥ inner cutoff, full intensity.
	assert.Equal(t, 1.0, spot.coneIntensity(axis))

	// Exactly at the inner half-angle: still full intensity.
	inner := math.Acos(spot.InnerCutOff)
	dirInner := math3d.V3(math.Sin(inner), 0, math.Cos(inner))
	assert.InDelta(t, 1.0, spot.coneIntensity(dirInner), 1e-9)

	// Exactly at the outer half-angle: zero.
	outer := math.Acos(spot.OuterCutOff)
	dirOuter := math3d.V3(math.Sin(outer), 0, math.Cos(outer))
	assert.InDelta(t, 0.0, spot.coneIntensity(dirOuter), 1e-9)

	// Well outside the cone: exactly zero.
	assert.Equal(t, 0.0, spot.coneIntensity(math3d.V3(1, 0, 0)))

	// Monotonically non-increasing across the ramp.
	prev := math.Inf(1)
	for angle := inner; angle <= outer; angle += (outer - inner) / 32 {
		dir := math3d.V3(math.Sin(angle), 0, math.Cos(angle))
		cur := spot.coneIntensity(dir)
		assert.LessOrEqual(t, cur, prev, "intensity must not increase toward the cone edge")
		prev = cur
	}
}

func TestShadeAccumulatesAllLights(t *testing.T) {
	rig := DefaultRig()
	mat := DefaultMaterial()
	for i := range rig.Points {
		rig.Points[i].Position = math3d.V3(float64(i*3), 5, 0)
	}
	rig.Spot.Position = math3d.V3(0, 8, 20)
	rig.Spot.Direction = math3d.V3(0, -0.4, -1).Normalize()

	normal := math3d.Up()
	fragPos := math3d.Zero3()
	viewDir := rig.Spot.Position.Sub(fragPos).Normalize()

	total := Shade(normal, viewDir, fragPos, mat, rig)

	sum := rig.Dir.contribution(normal, viewDir, mat)
	for i := range rig.Points {
		sum = sum.Add(rig.Points[i].contribution(normal, viewDir, fragPos, mat))
	}
	sum = sum.Add(rig.Spot.contribution(normal, viewDir, fragPos, mat))

	assert.InDelta(t, sum.X, total.X, 1e-12)
	assert.InDelta(t, sum.Y, total.Y, 1e-12)
	assert.InDelta(t, sum.Z, total.Z, 1e-12)
}
