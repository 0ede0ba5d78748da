// Package scene owns the frame loop state of the kinetic sculpture: the
// animation clock, the light rig, the camera, and the per-frame update that
// binds them together before the render passes run.
package scene

import (
	"fmt"

	"github.com/lumen3d/kinetic/pkg/anim"
	"github.com/lumen3d/kinetic/pkg/lighting"
	"github.com/lumen3d/kinetic/pkg/math3d"
	"github.com/lumen3d/kinetic/pkg/render"
)

// maxFrameDelta caps the wall-clock delta fed into the animation clock, so a
// suspended process resumes smoothly instead of jumping.
const maxFrameDelta = 0.1

// markerScale is the edge length of the unlit cubes marking the point lights.
const markerScale = 0.25

// Config holds the tunable scene parameters.
type Config struct {
	GridSize   int         // cells per lattice side
	Spacing    float64     // world units between cell centers
	Background math3d.Vec3 // linear-space clear color
}

// DefaultConfig returns the standard 10×10 sculpture.
func DefaultConfig() Config {
	g := anim.DefaultGrid()
	return Config{
		GridSize:   g.N,
		Spacing:    g.Spacing,
		Background: math3d.V3(0.04, 0.04, 0.08),
	}
}

// Validate checks the lattice parameters.
func (c Config) Validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("grid size %d must be at least 1", c.GridSize)
	}
	if c.Spacing <= 0 {
		return fmt.Errorf("grid spacing %v must be positive", c.Spacing)
	}
	return nil
}

// Scene is the frame driver. Each frame: Advance with the wall-clock delta,
// then Render into a rasterizer.
type Scene struct {
	Camera *render.Camera

	clock  anim.Clock
	grid   anim.Grid
	orbits [lighting.NumPointLights]anim.Orbit
	rig    *lighting.Rig
	mat    lighting.Material
	bg     math3d.Vec3

	state anim.FrameState
}

// New builds a scene from the config, validating it and the default light
// rig before the first frame.
func New(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene config: %w", err)
	}
	rig := lighting.DefaultRig()
	if err := rig.Validate(); err != nil {
		return nil, fmt.Errorf("light rig: %w", err)
	}

	s := &Scene{
		Camera: render.NewCamera(),
		grid:   anim.Grid{N: cfg.GridSize, Spacing: cfg.Spacing},
		orbits: anim.DefaultOrbits,
		rig:    rig,
		mat:    lighting.DefaultMaterial(),
		bg:     cfg.Background,
	}
	s.refresh()
	return s, nil
}

// Advance feeds dt seconds of wall-clock time to the animation clock and
// recomputes the frame state. The delta is capped so long stalls do not
// teleport the animation. While paused the clock holds still, but the frame
// state is still refreshed: the camera stays live, and the spotlight rides
// with it.
func (s *Scene) Advance(dt float64) {
	if dt > maxFrameDelta {
		dt = maxFrameDelta
	}
	s.clock.Advance(dt)
	s.refresh()
}

// refresh re-evaluates the procedural field at the clock's current time and
// writes the animated positions back into the light rig.
func (s *Scene) refresh() {
	pose := anim.Pose{
		Position:  s.Camera.Position,
		Direction: s.Camera.Forward(),
	}
	s.state = anim.ComputeFrameState(s.grid, s.orbits, pose, s.clock.Elapsed())

	for i := range s.rig.Points {
		s.rig.Points[i].Position = s.state.LightPositions[i]
	}
	s.rig.Spot.Position = s.state.Spot.Position
	s.rig.Spot.Direction = s.state.Spot.Direction
}

// TogglePause flips the animation clock; rendering and camera input continue
// regardless.
func (s *Scene) TogglePause() {
	s.clock.TogglePause()
}

// Paused reports whether the animation clock is frozen.
func (s *Scene) Paused() bool {
	return s.clock.Paused()
}

// Elapsed returns accumulated animation time in seconds.
func (s *Scene) Elapsed() float64 {
	return s.clock.Elapsed()
}

// Rig exposes the light rig for inspection.
func (s *Scene) Rig() *lighting.Rig {
	return s.rig
}

// State returns the most recently computed frame state.
func (s *Scene) State() anim.FrameState {
	return s.state
}

// Background returns the clear color as a display color.
func (s *Scene) Background() math3d.Vec3 {
	return s.bg
}

// Render draws the current frame: the shaded cube lattice, then the unlit
// light markers. The caller owns clearing the framebuffer.
func (s *Scene) Render(r *render.Rasterizer) {
	viewPos := s.Camera.Position
	frag := func(fragPos, normal math3d.Vec3) math3d.Vec3 {
		viewDir := viewPos.Sub(fragPos).Normalize()
		return lighting.Shade(normal, viewDir, fragPos, s.mat, s.rig)
	}

	for _, transform := range s.state.CubeTransforms {
		r.DrawCube(transform, frag)
	}

	for i, pos := range s.state.LightPositions {
		marker := math3d.Translate(pos).Mul(math3d.ScaleUniform(markerScale))
		r.DrawCubeFlat(marker, lighting.PointColors[i])
	}
}
