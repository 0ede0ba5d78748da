package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// TerminalRenderer presents framebuffers on a terminal using half-block
// characters, giving each terminal cell two vertically stacked pixels.
type TerminalRenderer struct {
	term   *uv.Terminal
	width  int
	height int
}

// NewTerminalRenderer creates a presenter for a terminal of the given size
// (in cells).
func NewTerminalRenderer(term *uv.Terminal, width, height int) *TerminalRenderer {
	return &TerminalRenderer{
		term:   term,
		width:  width,
		height: height,
	}
}

// FramebufferSize returns the pixel dimensions a framebuffer should have to
// fill this terminal: one pixel per column, two per row.
func (r *TerminalRenderer) FramebufferSize() (int, int) {
	return r.width, r.height * 2
}

// Render converts the framebuffer to terminal cells. Each cell is a ▀ (upper
// half block) with fg=top pixel and bg=bottom pixel.
func (r *TerminalRenderer) Render(fb *Framebuffer) {
	for row := 0; row < r.height; row++ {
		topY := row * 2
		botY := topY + 1

		for col := 0; col < r.width && col < fb.Width; col++ {
			topColor := fb.GetPixel(col, topY)
			botColor := fb.GetPixel(col, botY)

			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: rgbaToColor(topColor),
					Bg: rgbaToColor(botColor),
				},
			}
			r.term.SetCell(col, row, cell)
		}
	}
}

// Flush pushes the prepared cells to the terminal.
func (r *TerminalRenderer) Flush() error {
	return r.term.Display()
}

// rgbaToColor converts color.RGBA to Go's color.Color interface.
func rgbaToColor(c color.RGBA) color.Color {
	if c.A == 0 {
		return nil // Transparent = no color
	}
	return c
}
