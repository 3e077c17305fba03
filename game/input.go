package game

import (
	"fmt"
	"math"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/ui"
)

// controlsLegend lists the fixed bindings; overlay toggles are appended.
const controlsLegend = "Drag: orbit | Right-drag: pan | Wheel: zoom | R: reset params | Home: camera | P: dump points | F11: fullscreen"

// frameTime returns the duration of the last frame in seconds.
func frameTime() float32 {
	return rl.GetFrameTime()
}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	for _, key := range g.overlays.Keys() {
		if !rl.IsKeyPressed(key) {
			continue
		}
		if id, enabled, ok := g.overlays.HandleKeyPress(key); ok {
			g.syncOverlays()
			g.logger.Debug("overlay toggled", "overlay", id, "enabled", enabled)
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.panelEvents.Reset = true
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.dumpPoints(fmt.Sprintf("galaxy_%04d.csv", g.ctrl.Regenerations()))
	}

	g.handleCameraInput()
}

// syncOverlays pushes overlay state into the panels.
func (g *Game) syncOverlays() {
	if g.panel != nil {
		g.panel.SetVisible(g.overlays.IsEnabled(ui.OverlayPanel))
	}
	if g.perfPanel != nil {
		g.perfPanel.SetVisible(g.overlays.IsEnabled(ui.OverlayPerf))
	}
}

// handleResize coalesces window resize events before they reach the camera.
func (g *Game) handleResize() {
	if rl.IsWindowResized() {
		g.resize.Observe(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	w, h, ok := g.resize.Take(time.Now())
	if !ok {
		return
	}
	if int32(w) == g.screenWidth && int32(h) == g.screenHeight {
		return
	}
	g.screenWidth = int32(w)
	g.screenHeight = int32(h)
	g.camera.Resize(float64(w), float64(h))
	g.logger.Debug("viewport resized", "width", w, "height", h)
}

// handleCameraInput maps mouse drags and the wheel to orbit controls.
// Input over the parameter panel belongs to the panel.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	overPanel := g.panel.Contains(mouse)

	leftPressed := rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	rightPressed := rl.IsMouseButtonPressed(rl.MouseButtonRight)
	if leftPressed || rightPressed {
		g.dragging = !overPanel
	}
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) && !rl.IsMouseButtonDown(rl.MouseButtonRight) {
		g.dragging = false
	}

	if g.dragging {
		delta := rl.GetMouseDelta()
		switch {
		case rl.IsMouseButtonDown(rl.MouseButtonLeft):
			g.camera.Rotate(float64(delta.X), float64(delta.Y))
		case rl.IsMouseButtonDown(rl.MouseButtonRight):
			g.camera.Pan(float64(delta.X), float64(delta.Y))
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		g.camera.Zoom(math.Pow(g.cfg.Camera.ZoomStep, float64(wheel)))
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
