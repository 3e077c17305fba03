package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/controls"
	"github.com/pthm-cable/galaxy/renderer"
	"github.com/pthm-cable/galaxy/scene"
	"github.com/pthm-cable/galaxy/telemetry"
	"github.com/pthm-cable/galaxy/ui"
)

// Draw renders the frame and finishes the perf sample started in Update.
func (g *Game) Draw() {
	g.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	rl.BeginMode3D(renderer.Camera3D(g.camera))
	g.points.Reset()
	g.points.DrawScene(g.scene, renderer.NewView(g.camera), g.sceneKinds()...)
	rl.EndMode3D()

	g.perf.StartPhase(telemetry.PhaseUI)
	g.drawUI()

	rl.EndDrawing()

	g.perf.EndFrame()
	g.perf.RecordPresent()
	g.afterFrame()
}

// sceneKinds returns the point cloud kinds drawn this frame.
func (g *Game) sceneKinds() []scene.Kind {
	if g.overlays.IsEnabled(ui.OverlayStarfield) {
		return []scene.Kind{scene.KindStarfield, scene.KindGalaxy}
	}
	return []scene.Kind{scene.KindGalaxy}
}

// drawUI draws the HUD and the parameter panel. Panel events are applied
// on the next Update.
func (g *Game) drawUI() {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.drawHUD()
	}
	g.perfPanel.Draw(g.perf.Stats(), telemetry.Phases())

	released := rl.IsMouseButtonReleased(rl.MouseButtonLeft)
	ev := g.panel.Draw(g.ctrl, g.screenWidth, released)
	g.panelEvents.Changed = g.panelEvents.Changed || ev.Changed
	g.panelEvents.Commit = g.panelEvents.Commit || ev.Commit
	g.panelEvents.Reset = g.panelEvents.Reset || ev.Reset
}

// drawHUD draws the stats block and the controls legend.
func (g *Game) drawHUD() {
	g.hud.Draw(ui.HUDData{
		Title:        "Galaxy",
		FPS:          rl.GetFPS(),
		Particles:    g.particles(),
		Stars:        g.scene.PointCloud(g.starfield).Geometry.Len(),
		Sprites:      g.points.Drawn(),
		Generation:   g.ctrl.Regenerations(),
		LastGenTime:  g.lastRegen,
		ScreenWidth:  g.screenWidth,
		ScreenHeight: g.screenHeight,
	})
	g.hud.DrawControls(g.screenHeight, g.legend)
}

var _ ui.ParamSource = (*controls.Controller)(nil)
