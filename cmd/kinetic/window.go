package main

import (
	"errors"
	"fmt"
	"time"

	"fortio.org/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lumen3d/kinetic/pkg/render"
	"github.com/lumen3d/kinetic/pkg/scene"
)

// Window frontend resolution (framebuffer pixels, upscaled 2x by the window).
const (
	windowFBWidth  = 640
	windowFBHeight = 360
)

// runWindow starts a desktop window that renders the sculpture and forwards
// keyboard and mouse input. It blocks until the window closes.
func runWindow(cfg scene.Config, targetFPS int) error {
	sc, err := scene.New(cfg)
	if err != nil {
		return err
	}

	fb := render.NewFramebuffer(windowFBWidth, windowFBHeight)
	sc.Camera.AspectRatio = float64(windowFBWidth) / float64(windowFBHeight)

	g := &windowGame{
		sc:        sc,
		fb:        fb,
		ras:       render.NewRasterizer(sc.Camera, fb),
		lastFrame: time.Now(),
	}

	log.Infof("kinetic: window frontend, %dx%d pixels, %d cubes", windowFBWidth, windowFBHeight, cfg.GridSize*cfg.GridSize)

	ebiten.SetWindowTitle("kinetic")
	ebiten.SetWindowSize(windowFBWidth*2, windowFBHeight*2)
	ebiten.SetTPS(targetFPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

type windowGame struct {
	sc    *scene.Scene
	fb    *render.Framebuffer
	ras   *render.Rasterizer
	fbImg *ebiten.Image

	lastFrame time.Time
	dragging  bool
	lastX     int
	lastY     int
}

func (g *windowGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.sc.TogglePause()
	}

	now := time.Now()
	dt := now.Sub(g.lastFrame).Seconds()
	g.lastFrame = now
	if dt > 0.1 {
		dt = 0.1
	}

	cam := g.sc.Camera
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		cam.Move(render.MoveForward, dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		cam.Move(render.MoveBackward, dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft) {
		cam.Move(render.MoveLeft, dt)
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight) {
		cam.Move(render.MoveRight, dt)
	}

	// Look around while the left button is held. Window Y grows downward,
	// so invert it for pitch.
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if g.dragging {
			cam.ApplyLookDelta(float64(x-g.lastX), float64(g.lastY-y))
		}
		g.dragging = true
	} else {
		g.dragging = false
	}
	g.lastX, g.lastY = x, y

	if _, wy := ebiten.Wheel(); wy != 0 {
		cam.AdjustZoom(wy * 3)
	}

	g.sc.Advance(dt)
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(g.fb.Width, g.fb.Height)
	}

	g.fb.Clear(render.ToRGBA(g.sc.Background()))
	g.ras.BeginFrame()
	g.sc.Render(g.ras)

	g.fbImg.ReplacePixels(g.fb.ToImage().Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.fb.Width, g.fb.Height
}
