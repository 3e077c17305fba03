package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxy/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	FPS          int32
	Particles    int
	Stars        int
	Sprites      int // sprites submitted last frame
	Generation   int
	LastGenTime  time.Duration
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	y := int32(38)
	y = r.DrawLabelValue(10, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(10, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(10, y, "Stars", fmt.Sprintf("%d", data.Stars))
	y = r.DrawLabelValue(10, y, "Drawn", fmt.Sprintf("%d", data.Sprites))
	y = r.DrawLabelValue(10, y, "Generation", fmt.Sprintf("%d", data.Generation))
	r.DrawLabelValue(10, y, "Build", data.LastGenTime.Round(time.Microsecond).String())
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, legend string) {
	rl.DrawText(legend, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the frame phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	visible  bool
}

// NewPerfPanel creates a hidden performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Toggle switches panel visibility.
func (p *PerfPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// SetVisible shows or hides the panel.
func (p *PerfPanel) SetVisible(visible bool) {
	p.visible = visible
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []string) {
	if !p.visible {
		return
	}
	x, y := p.x, p.y

	rl.DrawText("Frame Performance", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("avg %s  p95 %s  max %s",
		stats.AvgFrame.Round(time.Microsecond),
		stats.P95Frame.Round(time.Microsecond),
		stats.MaxFrame.Round(time.Microsecond)),
		x, y, 14, rl.Yellow)
	y += 16

	for _, name := range phases {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
