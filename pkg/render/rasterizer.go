package render

import (
	"math"

	"github.com/lumen3d/kinetic/pkg/math3d"
)

// FragmentFn computes the linear-space color of one fragment from its
// interpolated world position and surface normal. It is called once per
// covered pixel that survives the depth test.
type FragmentFn func(fragPos, normal math3d.Vec3) math3d.Vec3

// Rasterizer handles z-buffered software triangle rasterization with a
// per-fragment shading stage.
type Rasterizer struct {
	camera       *Camera
	fb           *Framebuffer
	zbuffer      []float64 // Depth buffer (1D array, row-major)
	viewProj     math3d.Mat4
	frustum      Frustum
	CullingStats CullingStats
}

// CullingStats tracks frustum culling per frame.
type CullingStats struct {
	Tested int
	Culled int
	Drawn  int
}

// NewRasterizer creates a new rasterizer bound to a camera and framebuffer.
func NewRasterizer(camera *Camera, fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{
		camera: camera,
		fb:     fb,
	}
	r.Resize()
	r.BeginFrame()
	return r
}

// Resize resizes the rasterizer's depth buffer to match the framebuffer.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// BeginFrame clears the depth buffer, snapshots the camera's view-projection
// matrix for the frame, and rebuilds the culling frustum from it. Call once
// per frame before any draw calls.
func (r *Rasterizer) BeginFrame() {
	r.clearDepth()
	r.viewProj = r.camera.ViewProjectionMatrix()
	r.frustum = ExtractFrustum(r.viewProj)
	r.CullingStats = CullingStats{}
}

// clearDepth resets the Z-buffer using copy-doubling.
func (r *Rasterizer) clearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.MaxFloat64
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// getDepth returns the depth at (x, y).
func (r *Rasterizer) getDepth(x, y int) float64 {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return math.MaxFloat64
	}
	return r.zbuffer[y*r.Width()+x]
}

// setDepth sets the depth at (x, y).
func (r *Rasterizer) setDepth(x, y int, z float64) {
	if x < 0 || x >= r.Width() || y < 0 || y >= r.Height() {
		return
	}
	r.zbuffer[y*r.Width()+x] = z
}

// Unit cube geometry shared by all cube draws. Vertices span [-0.5, 0.5] on
// each axis so the transform's scale column is the cube's edge length.
var (
	cubeVertices = [8]math3d.Vec3{
		{X: -0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: -0.5, Z: -0.5},
		{X: 0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: 0.5, Z: -0.5},
		{X: -0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: -0.5, Z: 0.5},
		{X: 0.5, Y: 0.5, Z: 0.5},
		{X: -0.5, Y: 0.5, Z: 0.5},
	}

	// 6 faces (2 triangles each), wound so outward faces survive the
	// screen-space backface cull.
	cubeFaces = [6][4]int{
		{0, 1, 2, 3}, // Back  (-Z)
		{5, 4, 7, 6}, // Front (+Z)
		{4, 0, 3, 7}, // Left  (-X)
		{1, 5, 6, 2}, // Right (+X)
		{3, 2, 6, 7}, // Top   (+Y)
		{4, 5, 1, 0}, // Bottom(-Y)
	}

	// Outward face normals (local space), indexed like cubeFaces.
	cubeNormals = [6]math3d.Vec3{
		{X: 0, Y: 0, Z: -1},
		{X: 0, Y: 0, Z: 1},
		{X: -1, Y: 0, Z: 0},
		{X: 1, Y: 0, Z: 0},
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: -1, Z: 0},
	}
)

// boundingRadius returns the radius of the sphere enclosing the transformed
// unit cube. Assumes uniform scale, which holds for every transform the
// sculpture produces.
func boundingRadius(transform math3d.Mat4) float64 {
	edge := transform.MulVec3Dir(math3d.V3(1, 0, 0)).Len()
	return edge * 0.5 * math.Sqrt(3)
}

// DrawCube rasterizes a transformed unit cube, invoking frag for every
// visible fragment with the interpolated world position and the face normal.
// The cube is frustum-culled as a bounding sphere before any triangle work.
func (r *Rasterizer) DrawCube(transform math3d.Mat4, frag FragmentFn) {
	r.CullingStats.Tested++
	if !r.frustum.IntersectsSphere(transform.Translation(), boundingRadius(transform)) {
		r.CullingStats.Culled++
		return
	}
	r.CullingStats.Drawn++

	var world [8]math3d.Vec3
	for i, v := range cubeVertices {
		world[i] = transform.MulVec3(v)
	}

	for fi, f := range cubeFaces {
		normal := transform.MulVec3Dir(cubeNormals[fi]).Normalize()
		r.drawTriangle(world[f[0]], world[f[1]], world[f[2]], normal, frag)
		r.drawTriangle(world[f[0]], world[f[2]], world[f[3]], normal, frag)
	}
}

// DrawCubeFlat rasterizes a cube in a single unlit color. Used for the
// emissive light markers, which ignore the lighting model entirely.
func (r *Rasterizer) DrawCubeFlat(transform math3d.Mat4, c math3d.Vec3) {
	r.DrawCube(transform, func(_, _ math3d.Vec3) math3d.Vec3 {
		return c
	})
}

// screenVertex holds a vertex transformed to screen space.
type screenVertex struct {
	X, Y  float64 // Screen coordinates
	Z     float64 // Depth (for Z-buffer)
	W     float64 // Clip-space W (for perspective-correct interpolation)
	World math3d.Vec3
}

// drawTriangle rasterizes one world-space triangle, interpolating the world
// position perspective-correctly and shading each fragment through frag.
func (r *Rasterizer) drawTriangle(p0, p1, p2 math3d.Vec3, normal math3d.Vec3, frag FragmentFn) {
	var sv [3]screenVertex
	allBehind := true

	for i, p := range [3]math3d.Vec3{p0, p1, p2} {
		clipPos := r.viewProj.MulVec4(math3d.V4FromV3(p, 1))

		if clipPos.W > 0 {
			allBehind = false
		}

		if clipPos.W != 0 {
			sv[i].X = clipPos.X / clipPos.W
			sv[i].Y = clipPos.Y / clipPos.W
			sv[i].Z = clipPos.Z / clipPos.W
		}
		sv[i].W = clipPos.W

		// NDC to screen coordinates
		sv[i].X = (sv[i].X + 1) * 0.5 * float64(r.Width())
		sv[i].Y = (1 - sv[i].Y) * 0.5 * float64(r.Height()) // Y flipped

		sv[i].World = p
	}

	if allBehind {
		return
	}

	// Backface culling using screen-space winding. Zero-area triangles are
	// dropped too, since their barycentric denominators are singular.
	cross := (sv[1].X-sv[0].X)*(sv[2].Y-sv[0].Y) - (sv[1].Y-sv[0].Y)*(sv[2].X-sv[0].X)
	if cross <= 0 {
		return
	}

	minX := int(math.Max(0, math.Floor(min3(sv[0].X, sv[1].X, sv[2].X))))
	maxX := int(math.Min(float64(r.Width()-1), math.Ceil(max3(sv[0].X, sv[1].X, sv[2].X))))
	minY := int(math.Max(0, math.Floor(min3(sv[0].Y, sv[1].Y, sv[2].Y))))
	maxY := int(math.Min(float64(r.Height()-1), math.Ceil(max3(sv[0].Y, sv[1].Y, sv[2].Y))))

	// Precompute 1/w per vertex for perspective-correct interpolation
	var invW [3]float64
	for i := range 3 {
		if sv[i].W != 0 {
			invW[i] = 1.0 / sv[i].W
		}
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5

			bc := barycentric(
				sv[0].X, sv[0].Y,
				sv[1].X, sv[1].Y,
				sv[2].X, sv[2].Y,
				px, py,
			)

			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			z := bc.X*sv[0].Z + bc.Y*sv[1].Z + bc.Z*sv[2].Z

			if z >= r.getDepth(x, y) {
				continue
			}

			// Perspective-correct world position:
			// interpolate P/w and 1/w, then divide.
			w0, w1, w2 := bc.X*invW[0], bc.Y*invW[1], bc.Z*invW[2]
			oneOverW := w0 + w1 + w2
			if oneOverW == 0 {
				continue
			}
			fragPos := sv[0].World.Scale(w0).
				Add(sv[1].World.Scale(w1)).
				Add(sv[2].World.Scale(w2)).
				Scale(1 / oneOverW)

			r.setDepth(x, y, z)
			r.fb.SetPixel(x, y, ToRGBA(frag(fragPos, normal)))
		}
	}
}

// barycentric calculates barycentric coordinates for point (px, py) in triangle.
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
