package anim

import (
	"math"

	"github.com/lumen3d/kinetic/pkg/lighting"
	"github.com/lumen3d/kinetic/pkg/math3d"
)

// Vertical bob shared by all orbits: same frequency, per-light phase offset.
const (
	bobFrequency = 0.7
	bobAmplitude = 1.5
)

// Orbit holds the per-light constants of a point light's circular path
// around the sculpture.
type Orbit struct {
	Radius       float64 // orbit radius in the XZ plane
	Height       float64 // base height of the orbit
	AngularSpeed float64 // radians per second; negative orbits clockwise
}

// DefaultOrbits are the four light paths: mixed radii and heights, two lights
// running counter to the others.
var DefaultOrbits = [lighting.NumPointLights]Orbit{
	{Radius: 8, Height: 3, AngularSpeed: 0.7},
	{Radius: 11, Height: 1.5, AngularSpeed: -0.5},
	{Radius: 9, Height: 5, AngularSpeed: 1.1},
	{Radius: 6.5, Height: 2.5, AngularSpeed: -0.9},
}

// PositionAt returns the world position of orbiting light i at time t.
// Lights start phase-offset by a quarter turn each so they spread evenly.
func (o Orbit) PositionAt(i int, t float64) math3d.Vec3 {
	angle := o.AngularSpeed*t + float64(i)*(2*math.Pi/lighting.NumPointLights)
	return math3d.V3(
		o.Radius*math.Cos(angle),
		o.Height+bobAmplitude*math.Sin(bobFrequency*t+float64(i)),
		o.Radius*math.Sin(angle),
	)
}

// Grid describes the fixed N×N cube lattice, centered at the world origin.
type Grid struct {
	N       int     // cells per side
	Spacing float64 // world units between cell centers
}

// DefaultGrid returns the 10×10 sculpture lattice.
func DefaultGrid() Grid {
	return Grid{N: 10, Spacing: 2.2}
}

// Cell is the decomposed transform of one grid cube at a point in time.
type Cell struct {
	Translation math3d.Vec3
	SpinDeg     float64 // rotation about the vertical axis, degrees
	Scale       float64 // isotropic pulse
}

// Transform composes the cell's matrix: scale in local space, then spin, then
// placement in the world. The order matters.
func (c Cell) Transform() math3d.Mat4 {
	return math3d.Translate(c.Translation).
		Mul(math3d.RotateY(math3d.Radians(c.SpinDeg))).
		Mul(math3d.ScaleUniform(c.Scale))
}

// CellAt evaluates the procedural field for cell (row, col) at time t.
//
// The height superposes a radially propagating wave with two axis-aligned
// traveling waves, so no two cells share a phase and the surface never
// repeats. Spin grows with distance from the center, swirling the lattice
// rather than rotating it rigidly.
func (g Grid) CellAt(row, col int, t float64) Cell {
	off := float64(g.N-1) * g.Spacing / 2
	gx := float64(col)*g.Spacing - off
	gz := float64(row)*g.Spacing - off
	d := math.Sqrt(gx*gx + gz*gz)

	gy := 2.0*math.Sin(0.55*d-2.0*t) +
		0.8*math.Sin(0.5*gx+1.3*t) +
		0.8*math.Cos(0.5*gz-1.1*t)

	return Cell{
		Translation: math3d.V3(gx, gy, gz),
		SpinDeg:     50*t + 12*d,
		Scale:       0.88 + 0.12*math.Sin(3*t+d),
	}
}

// Pose is a position plus facing direction, used for the viewer-attached
// spotlight.
type Pose struct {
	Position  math3d.Vec3
	Direction math3d.Vec3
}

// FrameState is everything the render passes need for one frame, computed
// purely from configuration, camera pose, and elapsed time.
type FrameState struct {
	LightPositions [lighting.NumPointLights]math3d.Vec3
	CubeTransforms []math3d.Mat4 // row-major over the grid, len N²
	Spot           Pose
}

// ComputeFrameState evaluates the whole procedural field at time t. The
// spotlight is rigidly attached to the viewer: its pose is the camera pose.
func ComputeFrameState(g Grid, orbits [lighting.NumPointLights]Orbit, camera Pose, t float64) FrameState {
	fs := FrameState{
		CubeTransforms: make([]math3d.Mat4, 0, g.N*g.N),
		Spot:           camera,
	}
	for i, o := range orbits {
		fs.LightPositions[i] = o.PositionAt(i, t)
	}
	for row := 0; row < g.N; row++ {
		for col := 0; col < g.N; col++ {
			fs.CubeTransforms = append(fs.CubeTransforms, g.CellAt(row, col, t).Transform())
		}
	}
	return fs
}
