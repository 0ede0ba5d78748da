// Package render provides the software rasterization pipeline for the
// kinetic sculpture: camera, framebuffer, z-buffered triangle rasterizer with
// a per-fragment shading stage, and the terminal presenter.
package render

import (
	"math"

	"github.com/lumen3d/kinetic/pkg/math3d"
)

// Camera input tuning.
const (
	lookSensitivity = 0.1 // degrees per pointer-delta unit
	moveSpeed       = 5.0 // world units per second

	minPitch = -89.0
	maxPitch = 89.0
	minZoom  = 1.0
	maxZoom  = 90.0
)

// MoveDirection selects a camera translation axis.
type MoveDirection int

const (
	MoveForward MoveDirection = iota
	MoveBackward
	MoveLeft
	MoveRight
)

// Camera is a first-person camera. Yaw and pitch are in degrees; the forward
// vector is always derived from them, never set directly, so it stays unit
// length and consistent with the angles. Zoom doubles as the vertical field
// of view in degrees.
type Camera struct {
	Position math3d.Vec3

	yaw     float64
	pitch   float64
	zoom    float64
	forward math3d.Vec3
	up      math3d.Vec3

	AspectRatio float64
	Near        float64
	Far         float64
}

// NewCamera creates the camera at the sculpture's default vantage point,
// looking down the -Z axis.
func NewCamera() *Camera {
	c := &Camera{
		Position:    math3d.V3(0, 8, 20),
		yaw:         -90,
		pitch:       0,
		zoom:        45,
		up:          math3d.Up(),
		AspectRatio: 16.0 / 9.0,
		Near:        0.1,
		Far:         120,
	}
	c.updateForward()
	return c
}

// updateForward recomputes the forward vector from yaw/pitch via
// spherical-to-Cartesian conversion.
func (c *Camera) updateForward() {
	yaw := math3d.Radians(c.yaw)
	pitch := math3d.Radians(c.pitch)
	c.forward = math3d.V3(
		math.Cos(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Sin(yaw)*math.Cos(pitch),
	).Normalize()
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.forward
}

// Yaw returns the yaw angle in degrees.
func (c *Camera) Yaw() float64 {
	return c.yaw
}

// Pitch returns the pitch angle in degrees, always within [-89, 89].
func (c *Camera) Pitch() float64 {
	return c.pitch
}

// Zoom returns the vertical field of view in degrees.
func (c *Camera) Zoom() float64 {
	return c.zoom
}

// SetZoom sets the field of view, clamped to [1, 90].
func (c *Camera) SetZoom(z float64) {
	c.zoom = math3d.Clamp(z, minZoom, maxZoom)
}

// ApplyLookDelta turns the camera by raw pointer deltas. dx yaws, dy
// pitches; pitch is clamped short of the poles to avoid gimbal flip.
func (c *Camera) ApplyLookDelta(dx, dy float64) {
	c.yaw += dx * lookSensitivity
	c.pitch = math3d.Clamp(c.pitch+dy*lookSensitivity, minPitch, maxPitch)
	c.updateForward()
}

// AdjustZoom narrows the field of view by the scroll delta.
func (c *Camera) AdjustZoom(scrollDelta float64) {
	c.SetZoom(c.zoom - scrollDelta)
}

// Move translates the camera along the view axes at the fixed movement
// speed. The strafe axis is recomputed from forward × up on every call so it
// never drifts out of sync with the current orientation.
func (c *Camera) Move(dir MoveDirection, dt float64) {
	step := moveSpeed * dt
	switch dir {
	case MoveForward:
		c.Position = c.Position.Add(c.forward.Scale(step))
	case MoveBackward:
		c.Position = c.Position.Sub(c.forward.Scale(step))
	case MoveLeft:
		c.Position = c.Position.Sub(c.forward.Cross(c.up).Normalize().Scale(step))
	case MoveRight:
		c.Position = c.Position.Add(c.forward.Cross(c.up).Normalize().Scale(step))
	}
}

// ViewMatrix returns the look-at transform for the current pose. Pure; no
// cached state.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	return math3d.LookAt(c.Position, c.Position.Add(c.forward), c.up)
}

// ProjectionMatrix returns the perspective projection for the current zoom.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	return math3d.Perspective(math3d.Radians(c.zoom), c.AspectRatio, c.Near, c.Far)
}

// ViewProjectionMatrix returns projection · view.
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}
