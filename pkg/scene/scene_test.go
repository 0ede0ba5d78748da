package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumen3d/kinetic/pkg/math3d"
	"github.com/lumen3d/kinetic/pkg/render"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(*Config) {}, false},
		{"zero grid", func(c *Config) { c.GridSize = 0 }, true},
		{"negative spacing", func(c *Config) { c.Spacing = -1 }, true},
		{"single cell", func(c *Config) { c.GridSize = 1 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(Config{GridSize: 0, Spacing: 2.2})
	require.Error(t, err)
}

func TestAdvanceAccumulates(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	s.Advance(0.05)
	s.Advance(0.05)
	assert.InDelta(t, 0.1, s.Elapsed(), 1e-12)
}

func TestAdvanceCapsLongStalls(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	s.Advance(5.0) // process was suspended
	assert.InDelta(t, 0.1, s.Elapsed(), 1e-12)
}

func TestPauseFreezesAnimationButNotSpot(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	s.Advance(0.5) // may still be capped per-frame
	s.Advance(0.5)
	frozen := s.State()
	elapsed := s.Elapsed()

	s.TogglePause()
	require.True(t, s.Paused())

	// Animation-derived state is identical no matter how much wall time
	// passes while paused.
	for range 10 {
		s.Advance(0.05)
	}
	assert.Equal(t, elapsed, s.Elapsed())
	assert.Equal(t, frozen.LightPositions, s.State().LightPositions)
	assert.Equal(t, frozen.CubeTransforms, s.State().CubeTransforms)

	// The spotlight still tracks the camera while paused.
	s.Camera.Position = math3d.V3(4, 9, 12)
	s.Camera.ApplyLookDelta(300, -100)
	s.Advance(0.05)
	assert.Equal(t, s.Camera.Position, s.Rig().Spot.Position)
	assert.Equal(t, s.Camera.Forward(), s.Rig().Spot.Direction)

	s.TogglePause()
	s.Advance(0.05)
	assert.Greater(t, s.Elapsed(), elapsed)
}

func TestRigTracksOrbitPositions(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	s.Advance(0.07)
	for i, p := range s.State().LightPositions {
		assert.Equal(t, p, s.Rig().Points[i].Position, "point light %d", i)
	}
}

func TestRenderDrawsLatticeAndMarkers(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	fb := render.NewFramebuffer(120, 80)
	s.Camera.AspectRatio = 120.0 / 80.0
	r := render.NewRasterizer(s.Camera, fb)

	fb.Clear(render.ToRGBA(s.Background()))
	r.BeginFrame()
	s.Render(r)

	// 100 lattice cubes + 4 markers submitted.
	assert.Equal(t, 104, r.CullingStats.Tested)
	assert.Positive(t, r.CullingStats.Drawn)

	// The default vantage point sees the sculpture: some pixels must differ
	// from the background.
	bg := render.ToRGBA(s.Background())
	lit := 0
	for _, p := range fb.Pixels {
		if p != bg {
			lit++
		}
	}
	assert.Positive(t, lit)
}
