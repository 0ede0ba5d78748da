package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/lumen3d/kinetic/pkg/math3d"
)

// createTestRasterizer creates a rasterizer looking at the origin from z=10.
func createTestRasterizer(width, height int) (*Rasterizer, *Framebuffer) {
	fb := NewFramebuffer(width, height)
	camera := NewCamera()
	camera.Position = math3d.V3(0, 0, 10)
	camera.AspectRatio = float64(width) / float64(height)
	rasterizer := NewRasterizer(camera, fb)
	rasterizer.BeginFrame()
	return rasterizer, fb
}

// countPixels returns how many pixels differ from the background color.
func countPixels(fb *Framebuffer, bg color.RGBA) int {
	n := 0
	for _, p := range fb.Pixels {
		if p != bg {
			n++
		}
	}
	return n
}

func TestBarycentric(t *testing.T) {
	tests := []struct {
		name     string
		px, py   float64
		expected math3d.Vec3
	}{
		{"vertex 0", 0, 0, math3d.V3(1, 0, 0)},
		{"vertex 1", 1, 0, math3d.V3(0, 1, 0)},
		{"vertex 2", 0, 1, math3d.V3(0, 0, 1)},
		{"centroid", 1.0 / 3, 1.0 / 3, math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Triangle: (0,0), (1,0), (0,1)
			bc := barycentric(0, 0, 1, 0, 0, 1, tc.px, tc.py)

			if math.Abs(bc.X-tc.expected.X) > 0.001 ||
				math.Abs(bc.Y-tc.expected.Y) > 0.001 ||
				math.Abs(bc.Z-tc.expected.Z) > 0.001 {
				t.Errorf("barycentric(%v, %v) = %v, want %v", tc.px, tc.py, bc, tc.expected)
			}
		})
	}

	t.Run("outside triangle", func(t *testing.T) {
		bc := barycentric(0, 0, 1, 0, 0, 1, -1, -1)
		if bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0 {
			t.Error("point outside triangle should have negative barycentric coordinate")
		}
	})
}

func TestDrawCubeFlatCoversCenter(t *testing.T) {
	r, fb := createTestRasterizer(100, 100)
	bg := RGB(0, 0, 0)
	fb.Clear(bg)

	r.DrawCubeFlat(math3d.ScaleUniform(2), math3d.V3(1, 0, 0))

	if n := countPixels(fb, bg); n == 0 {
		t.Fatal("expected cube to produce pixels")
	}

	center := fb.GetPixel(50, 50)
	if center != RGB(255, 0, 0) {
		t.Errorf("expected pure red at center, got %v", center)
	}

	// Flat shading: every covered pixel is the same color.
	for i, p := range fb.Pixels {
		if p != bg && p != RGB(255, 0, 0) {
			t.Fatalf("pixel %d has unexpected color %v", i, p)
		}
	}
}

func TestDrawCubeInvokesFragmentShader(t *testing.T) {
	r, fb := createTestRasterizer(80, 80)
	fb.Clear(RGB(0, 0, 0))

	calls := 0
	r.DrawCube(math3d.ScaleUniform(2), func(fragPos, normal math3d.Vec3) math3d.Vec3 {
		calls++
		if l := normal.Len(); math.Abs(l-1) > 1e-9 {
			t.Fatalf("fragment normal not unit length: %f", l)
		}
		// Facing the camera at +Z, only the front face should survive
		// backface culling, so every fragment sits at z = +1.
		if math.Abs(fragPos.Z-1) > 0.01 {
			t.Fatalf("fragment world z = %f, want 1", fragPos.Z)
		}
		return math3d.V3(1, 1, 1)
	})

	if calls == 0 {
		t.Fatal("fragment shader never invoked")
	}
}

func TestDepthOrdering(t *testing.T) {
	r, fb := createTestRasterizer(100, 100)
	bg := RGB(0, 0, 0)

	far := math3d.ScaleUniform(4)
	near := math3d.Translate(math3d.V3(0, 0, 5)).Mul(math3d.ScaleUniform(2))

	// Near-last and near-first must both resolve to the near cube.
	orders := []struct {
		name  string
		draws func()
	}{
		{"near drawn last", func() {
			r.DrawCubeFlat(far, math3d.V3(1, 0, 0))
			r.DrawCubeFlat(near, math3d.V3(0, 1, 0))
		}},
		{"near drawn first", func() {
			r.DrawCubeFlat(near, math3d.V3(0, 1, 0))
			r.DrawCubeFlat(far, math3d.V3(1, 0, 0))
		}},
	}

	for _, tc := range orders {
		t.Run(tc.name, func(t *testing.T) {
			fb.Clear(bg)
			r.BeginFrame()
			tc.draws()

			if center := fb.GetPixel(50, 50); center != RGB(0, 255, 0) {
				t.Errorf("expected near cube (green) at center, got %v", center)
			}
		})
	}
}

func TestFrustumCullsOffscreenCube(t *testing.T) {
	r, fb := createTestRasterizer(60, 60)
	bg := RGB(0, 0, 0)
	fb.Clear(bg)

	r.DrawCubeFlat(math3d.Translate(math3d.V3(1000, 0, 0)), math3d.V3(1, 1, 1))

	if r.CullingStats.Culled != 1 {
		t.Errorf("expected 1 culled cube, got %+v", r.CullingStats)
	}
	if n := countPixels(fb, bg); n != 0 {
		t.Errorf("culled cube produced %d pixels", n)
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	cam := NewCamera()
	cam.Position = math3d.V3(0, 0, 10)
	f := ExtractFrustum(cam.ViewProjectionMatrix())

	if !f.ContainsPoint(math3d.Zero3()) {
		t.Error("origin should be inside the frustum")
	}
	if f.ContainsPoint(math3d.V3(0, 0, 20)) {
		t.Error("point behind the camera should be outside the frustum")
	}
}

func TestToRGBAClampsHDR(t *testing.T) {
	tests := []struct {
		name     string
		in       math3d.Vec3
		expected color.RGBA
	}{
		{"black", math3d.Zero3(), RGB(0, 0, 0)},
		{"white", math3d.V3(1, 1, 1), RGB(255, 255, 255)},
		{"over-bright saturates", math3d.V3(3.2, 1.5, 0.5), color.RGBA{255, 255, 127, 255}},
		{"negative clamps to zero", math3d.V3(-1, 0.5, 2), color.RGBA{0, 127, 255, 255}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ToRGBA(tc.in); got != tc.expected {
				t.Errorf("ToRGBA(%v) = %v, want %v", tc.in, got, tc.expected)
			}
		})
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 4)

	// Out-of-bounds writes are silently dropped.
	fb.SetPixel(-1, 0, RGB(255, 0, 0))
	fb.SetPixel(4, 0, RGB(255, 0, 0))
	fb.SetPixel(0, 4, RGB(255, 0, 0))

	if n := countPixels(fb, color.RGBA{}); n != 0 {
		t.Errorf("out-of-bounds writes landed: %d pixels set", n)
	}

	if got := fb.GetPixel(99, 99); got != (color.RGBA{}) {
		t.Errorf("out-of-bounds read = %v, want zero value", got)
	}
}
