// kinetic - animated cube-lattice light sculpture for the terminal
//
// A 10×10 grid of cubes rides a procedural wave while four colored point
// lights orbit the lattice and a spotlight rides with the camera. Rendered
// with half-block characters; optionally in a window with --window.
//
// Controls:
//
//	W/A/S/D     - Move camera (forward/left/back/right)
//	Mouse drag  - Look around (yaw/pitch)
//	Scroll      - Zoom (narrows/widens field of view)
//	Space       - Pause/resume the animation
//	P           - Save a screenshot (PNG)
//	Esc, Ctrl+C - Quit
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fortio.org/log"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/lumen3d/kinetic/pkg/math3d"
	"github.com/lumen3d/kinetic/pkg/render"
	"github.com/lumen3d/kinetic/pkg/scene"
)

var (
	flagFPS     int
	flagGrid    int
	flagSpacing float64
	flagBG      string
	flagWindow  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "kinetic",
		Short:        "Animated cube-lattice light sculpture for the terminal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig()
			if err != nil {
				return err
			}
			if flagWindow {
				return runWindow(cfg, flagFPS)
			}
			return runTerminal(cfg, flagFPS)
		},
	}

	rootCmd.Flags().IntVar(&flagFPS, "fps", 60, "target frames per second")
	rootCmd.Flags().IntVar(&flagGrid, "grid", 10, "cubes per lattice side")
	rootCmd.Flags().Float64Var(&flagSpacing, "spacing", 2.2, "world units between cube centers")
	rootCmd.Flags().StringVar(&flagBG, "bg", "", "background color as R,G,B floats in [0,1]")
	rootCmd.Flags().BoolVar(&flagWindow, "window", false, "render into a window instead of the terminal")

	if err := fang.Execute(context.Background(), rootCmd); err != nil {
		os.Exit(1)
	}
}

// buildConfig assembles the scene config from flags.
func buildConfig() (scene.Config, error) {
	cfg := scene.DefaultConfig()
	cfg.GridSize = flagGrid
	cfg.Spacing = flagSpacing

	if flagBG != "" {
		var r, g, b float64
		if _, err := fmt.Sscanf(flagBG, "%f,%f,%f", &r, &g, &b); err != nil {
			return cfg, fmt.Errorf("parse --bg %q: %w", flagBG, err)
		}
		cfg.Background = math3d.V3(r, g, b)
	}

	return cfg, cfg.Validate()
}

// moveState tracks which movement keys are currently held.
type moveState struct {
	forward, back, left, right bool
}

func (m moveState) apply(cam *render.Camera, dt float64) {
	if m.forward {
		cam.Move(render.MoveForward, dt)
	}
	if m.back {
		cam.Move(render.MoveBackward, dt)
	}
	if m.left {
		cam.Move(render.MoveLeft, dt)
	}
	if m.right {
		cam.Move(render.MoveRight, dt)
	}
}

// Terminal cells are roughly twice as tall as wide; scale mouse-cell deltas
// to comparable look units, inverting Y so dragging up looks up.
const (
	lookCellX = 8.0
	lookCellY = -16.0
)

func runTerminal(cfg scene.Config, targetFPS int) error {
	sc, err := scene.New(cfg)
	if err != nil {
		return err
	}

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // SGR extended mouse mode

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)
	sc.Camera.AspectRatio = float64(fbWidth) / float64(fbHeight)
	rasterizer := render.NewRasterizer(sc.Camera, fb)

	log.Infof("kinetic: %dx%d cells, %dx%d pixels, %d cubes", width, height, fbWidth, fbHeight, cfg.GridSize*cfg.GridSize)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Zoom is spring-smoothed toward the wheel target instead of stepping.
	zoomSpring := harmonica.NewSpring(harmonica.FPS(targetFPS), 8.0, 1.0)
	zoomTarget := sc.Camera.Zoom()
	zoomVel := 0.0

	var moves moveState
	var mouseDown bool
	var lastMouseX, lastMouseY int
	var wantScreenshot bool

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)
				sc.Camera.AspectRatio = float64(fbWidth) / float64(fbHeight)
				rasterizer = render.NewRasterizer(sc.Camera, fb)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("w", "up"):
					moves.forward = true
				case ev.MatchString("s", "down"):
					moves.back = true
				case ev.MatchString("a", "left"):
					moves.left = true
				case ev.MatchString("d", "right"):
					moves.right = true
				case ev.MatchString("space"):
					sc.TogglePause()
				case ev.MatchString("p"):
					wantScreenshot = true
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"):
					moves.forward = false
				case ev.MatchString("s"), ev.MatchString("down"):
					moves.back = false
				case ev.MatchString("a"), ev.MatchString("left"):
					moves.left = false
				case ev.MatchString("d"), ev.MatchString("right"):
					moves.right = false
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					sc.Camera.ApplyLookDelta(float64(dx)*lookCellX, float64(dy)*lookCellY)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					zoomTarget = math3d.Clamp(zoomTarget-3, 1, 90)
				case uv.MouseWheelDown:
					zoomTarget = math3d.Clamp(zoomTarget+3, 1, 90)
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(targetFPS)
	lastFrame := time.Now()

	hud := newHUD()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
		log.Infof("kinetic: shutting down after %.1fs of animation", sc.Elapsed())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now
		if dt > 0.1 {
			dt = 0.1
		}

		moves.apply(sc.Camera, dt)

		var zoom float64
		zoom, zoomVel = zoomSpring.Update(sc.Camera.Zoom(), zoomVel, zoomTarget)
		sc.Camera.SetZoom(zoom)

		sc.Advance(dt)

		fb.Clear(render.ToRGBA(sc.Background()))
		rasterizer.BeginFrame()
		sc.Render(rasterizer)

		termRenderer.Render(fb)
		if err := termRenderer.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		hud.update()
		hud.render(width, height, sc.Paused())

		if wantScreenshot {
			wantScreenshot = false
			path := fmt.Sprintf("kinetic-%d.png", time.Now().Unix())
			if err := fb.SavePNG(path); err != nil {
				log.Errf("screenshot: %v", err)
			} else {
				log.Infof("saved %s", path)
			}
		}

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// hud is a minimal overlay: FPS in the top-left, pause state bottom-left.
type hud struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD() *hud {
	return &hud{fpsTime: time.Now()}
}

func (h *hud) update() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

func (h *hud) render(width, height int, paused bool) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		bgBlack   = "\x1b[40m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Printf("%s%s %.0f FPS %s", bgBlack, fgGreen, h.fps, reset)

	fmt.Print(moveTo(height, 1) + clearLine)
	if paused {
		fmt.Printf("%s%s%s ⏸ PAUSED — space to resume %s", bgBlack, bold, fgYellow, reset)
	}
}
