// Package anim drives all per-frame motion in the sculpture: a pausable
// animation clock and the procedural field mapping (grid cell, time) to cube
// transforms and (light index, time) to orbit positions. Everything downstream
// of the clock is a pure function of elapsed time, so playback is
// deterministic and seekable.
package anim

// Clock is a monotonic, pausable time accumulator. It advances only while
// unpaused; the frame driver feeds it wall-clock deltas once per frame.
type Clock struct {
	elapsed float64
	paused  bool
}

// Advance adds dt seconds of wall-clock time. Paused clocks ignore it, and
// negative deltas (clock skew) are dropped so elapsed time stays monotonic.
func (c *Clock) Advance(dt float64) {
	if c.paused || dt <= 0 {
		return
	}
	c.elapsed += dt
}

// Elapsed returns accumulated animation time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Paused reports whether the clock is frozen.
func (c *Clock) Paused() bool {
	return c.paused
}

// TogglePause flips the paused state.
func (c *Clock) TogglePause() {
	c.paused = !c.paused
}
