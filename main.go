package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/game"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run starts the viewer and returns the process exit code. Deferred cleanup
// runs before the code is returned.
func run(args []string) int {
	// Optional .env supplies flag defaults
	envErr := godotenv.Load()

	// CLI flags
	fs := flag.NewFlagSet("galaxy", flag.ContinueOnError)
	configPath := fs.String("config", os.Getenv("GALAXY_CONFIG"), "Path to config.yaml (empty = use defaults)")
	headless := fs.Bool("headless", false, "Run without graphics, regenerating every frame")
	seed := fs.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := fs.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")
	outputDir := fs.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	logLevel := fs.String("log-level", os.Getenv("GALAXY_LOG_LEVEL"), "Log level: debug, info, warn, error (empty = config)")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	cfg := config.Cfg()

	level := cfg.Logging.Level
	if *logLevel != "" {
		level = *logLevel
	}
	slog.SetDefault(game.NewLogger(os.Stdout, level, cfg.Logging.JSON))
	if envErr != nil && !os.IsNotExist(envErr) {
		slog.Warn("failed to read .env", "error", envErr)
	}

	opts := game.Options{
		Seed:      *seed,
		OutputDir: *outputDir,
		Headless:  *headless,
	}

	if *headless {
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to start", "error", err)
			return 1
		}
		defer g.Unload()

		slog.Info("starting headless run", "seed", *seed, "max_frames", *maxFrames)

		for {
			g.UpdateHeadless()

			if *maxFrames > 0 && g.Frame() >= *maxFrames {
				slog.Info("max frames reached", "frame", g.Frame())
				return 0
			}
		}
	}

	// Graphical mode
	var flags uint32 = rl.FlagMsaa4xHint
	if cfg.Screen.Resizable {
		flags |= rl.FlagWindowResizable
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Galaxy")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to start", "error", err)
		return 1
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && g.Frame() >= *maxFrames {
			break
		}
	}
	return 0
}
