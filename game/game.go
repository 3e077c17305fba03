// Package game wires the galaxy controller, scene, camera and UI into the
// frame loop.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"
	"golang.org/x/time/rate"

	"github.com/pthm-cable/galaxy/camera"
	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/controls"
	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/renderer"
	"github.com/pthm-cable/galaxy/scene"
	"github.com/pthm-cable/galaxy/telemetry"
	"github.com/pthm-cable/galaxy/ui"
)

// Options configures a Game.
type Options struct {
	Seed      int64  // RNG seed (0 = time-based)
	OutputDir string // CSV output directory (empty = disabled)
	Headless  bool   // no window, textures or UI
	Width     int32  // initial viewport (0 = config)
	Height    int32
}

// Game holds the viewer state.
type Game struct {
	cfg    *config.Config
	rng    *rand.Rand
	logger *slog.Logger

	scene     *scene.Scene
	ctrl      *controls.Controller
	camera    *camera.Camera
	starfield ecs.Entity

	// Rendering (nil when headless)
	textures  *renderer.TextureStore
	points    *renderer.PointRenderer
	panel     *ui.ParamPanel
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	overlays  *ui.OverlayRegistry
	legend    string

	// Telemetry
	perf      *telemetry.PerfCollector
	regens    *telemetry.RegenTracker
	output    *telemetry.OutputManager
	perfLog   rate.Sometimes
	lastRegen time.Duration

	resize      *resizeCoalescer
	panelEvents ui.PanelEvents
	dragging    bool // a camera drag started outside the panel

	headless     bool
	frame        int64
	elapsed      float64 // seconds of animation time
	screenWidth  int32
	screenHeight int32
}

// NewGameWithOptions creates a game. In graphical mode the window must
// already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	width, height := opts.Width, opts.Height
	if width <= 0 || height <= 0 {
		width, height = int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	}

	g := &Game{
		cfg:          cfg,
		rng:          rand.New(rand.NewSource(seed)),
		logger:       slog.With("component", "game"),
		scene:        scene.New(),
		perf:         telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		regens:       telemetry.NewRegenTracker(),
		perfLog:      rate.Sometimes{Interval: logInterval(cfg)},
		resize:       newResizeCoalescer(resizeInterval(cfg)),
		overlays:     ui.NewOverlayRegistry(),
		headless:     opts.Headless,
		screenWidth:  width,
		screenHeight: height,
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	g.output = output
	if err := g.output.WriteConfig(cfg); err != nil {
		g.logger.Warn("failed to write config snapshot", "error", err)
	}

	g.camera = newCamera(cfg, width, height)

	if !g.headless {
		g.textures = renderer.NewTextureStore(cfg.Textures.FallbackSize)
		g.textures.Register(TextureGalaxy, cfg.Textures.Galaxy)
		g.textures.Register(TextureStarfield, cfg.Textures.Starfield)
		g.textures.Init()
		g.points = renderer.NewPointRenderer(g.textures)
		g.panel = ui.NewParamPanel(260, ui.AnchorTopRight)
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, 150)
		g.legend = controlsLegend + " | " + g.overlays.Legend()
		g.syncOverlays()
	}

	stars := galaxy.GenerateStarfield(cfg.Starfield.Count, cfg.Starfield.Spread, g.rng)
	g.starfield = g.scene.Attach(scene.KindStarfield, scene.NewGeometry(stars), starfieldMaterial(cfg))

	g.ctrl = controls.New(g.scene, cfg.Derived.GalaxyParams,
		controls.WithFields(cfg.Derived.Fields),
		controls.WithRand(g.rng),
		controls.WithTexture(TextureGalaxy),
		controls.WithOnRegenerate(g.onRegenerate),
	)
	if err := g.ctrl.Regenerate(); err != nil {
		g.Unload()
		return nil, err
	}

	g.logger.Info("game initialized",
		"seed", seed,
		"headless", g.headless,
		"stars", cfg.Starfield.Count,
		"params", cfg.Derived.GalaxyParams.Count,
	)
	return g, nil
}

// Update handles input, applies committed panel edits and advances the camera
// and animation by one frame.
func (g *Game) Update() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	g.perf.StartPhase(telemetry.PhaseRegenerate)
	g.applyPanelEvents()

	g.perf.StartPhase(telemetry.PhaseCamera)
	g.camera.Update()

	g.perf.StartPhase(telemetry.PhaseAnimate)
	g.animate(float64(frameTime()))
}

// UpdateHeadless runs one frame without a window. Each frame edits one field
// to a random value and commits it, exercising the full regenerate cycle.
func (g *Game) UpdateHeadless() {
	g.perf.StartFrame()

	g.perf.StartPhase(telemetry.PhaseInput)
	g.sweep()

	g.perf.StartPhase(telemetry.PhaseRegenerate)
	if _, err := g.ctrl.Commit(); err != nil {
		g.logger.Error("commit failed", "error", err)
	}

	g.perf.StartPhase(telemetry.PhaseAnimate)
	g.animate(headlessDT)

	g.perf.EndFrame()
	g.afterFrame()
}

// sweep sets the next field in turn to a random in-range value.
func (g *Game) sweep() {
	fields := g.ctrl.Fields()
	if len(fields) == 0 {
		return
	}
	f := fields[int(g.frame)%len(fields)]
	v := f.Range.Min + g.rng.Float64()*(f.Range.Max-f.Range.Min)
	if _, err := g.ctrl.Set(f.ID, v); err != nil {
		g.logger.Error("sweep failed", "field", f.Name, "error", err)
	}
}

// applyPanelEvents acts on the panel result of the previous Draw.
func (g *Game) applyPanelEvents() {
	ev := g.panelEvents
	g.panelEvents = ui.PanelEvents{}

	switch {
	case ev.Reset:
		if err := g.ctrl.Reset(); err != nil {
			g.logger.Error("reset failed", "error", err)
		}
	case ev.Commit:
		if _, err := g.ctrl.Commit(); err != nil {
			g.logger.Error("commit failed", "error", err)
		}
	}
}

// animate advances the idle galaxy rotation. Rotation holds while the
// auto-rotate overlay is off.
func (g *Game) animate(dt float64) {
	if g.overlays.IsEnabled(ui.OverlayAutoRotate) {
		g.elapsed += dt
	}
	e, ok := g.ctrl.Current()
	if !ok {
		return
	}
	if xf := g.scene.Transform(e); xf != nil {
		xf.RotationY = float32(g.elapsed * g.cfg.Animation.RotationSpeed)
	}
}

// afterFrame counts the frame and emits periodic telemetry.
func (g *Game) afterFrame() {
	g.frame++
	if window := int64(g.cfg.Telemetry.PerfWindow); window > 0 && g.frame%window == 0 {
		if err := g.output.WritePerf(g.perf.Stats(), g.frame); err != nil {
			g.logger.Error("failed to write perf", "error", err)
		}
	}
	g.perfLog.Do(g.logPerfStats)
}

// particles returns the particle count of the current galaxy.
func (g *Game) particles() int {
	e, ok := g.ctrl.Current()
	if !ok {
		return 0
	}
	if pc := g.scene.PointCloud(e); pc != nil {
		return pc.Geometry.Len()
	}
	return 0
}

// dumpPoints writes the current galaxy buffer to the output directory.
func (g *Game) dumpPoints(name string) {
	if g.output == nil {
		g.logger.Warn("point dump needs -output-dir")
		return
	}
	e, ok := g.ctrl.Current()
	if !ok {
		return
	}
	pc := g.scene.PointCloud(e)
	if pc == nil {
		return
	}
	if err := g.output.WritePoints(name, galaxyBuffer(pc.Geometry)); err != nil {
		g.logger.Error("failed to write points", "error", err)
		return
	}
	g.logger.Info("points written", "dir", g.output.Dir(), "file", name, "particles", pc.Geometry.Len())
}

// Frame returns the number of completed frames.
func (g *Game) Frame() int64 {
	return g.frame
}

// Controller returns the parameter controller.
func (g *Game) Controller() *controls.Controller {
	return g.ctrl
}

// Scene returns the scene graph.
func (g *Game) Scene() *scene.Scene {
	return g.scene
}

// Unload releases scene resources, GPU textures and output files.
func (g *Game) Unload() {
	if g.regens.Count() > 0 {
		g.logRegenStats()
	}
	if g.ctrl != nil {
		g.ctrl.Close()
	}
	g.scene.Close()
	if g.textures != nil {
		g.textures.Unload()
	}
	if err := g.output.Close(); err != nil {
		g.logger.Error("failed to close output", "error", err)
	}
}
