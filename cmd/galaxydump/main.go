// Command galaxydump generates one galaxy (or the starfield) and writes the
// particle buffer as CSV.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/galaxy"
	"github.com/pthm-cable/galaxy/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	out := flag.String("out", "points.csv", "Output CSV path (- = stdout)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	count := flag.Int("count", 0, "Override particle count")
	branches := flag.Int("branches", 0, "Override branch count")
	spin := flag.Float64("spin", 0, "Override spin (0 = config)")
	starfield := flag.Bool("starfield", false, "Dump the background starfield instead")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := run(*configPath, *out, *seed, *count, *branches, *spin, *starfield); err != nil {
		slog.Error("galaxydump failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath, out string, seed int64, count, branches int, spin float64, starfield bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var buf *galaxy.Buffer
	if starfield {
		buf = galaxy.GenerateStarfield(cfg.Starfield.Count, cfg.Starfield.Spread, rng)
	} else {
		p := cfg.Derived.GalaxyParams
		if count > 0 {
			p.Count = count
		}
		if branches > 0 {
			p.Branches = branches
		}
		if spin != 0 {
			p.Spin = spin
		}
		start := time.Now()
		buf, err = galaxy.Generate(p, rng)
		if err != nil {
			return err
		}
		slog.Info("generated", "count", p.Count, "duration_ms", time.Since(start).Milliseconds(), "summary", galaxy.Summarize(buf))
	}

	if err := writePoints(out, buf); err != nil {
		return err
	}
	slog.Info("points written", "path", out, "particles", buf.Len(), "seed", seed)
	return nil
}

// writePoints writes buf as CSV to path, or to stdout for "-".
func writePoints(path string, buf *galaxy.Buffer) error {
	if path == "-" {
		return telemetry.WritePoints(os.Stdout, buf)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := telemetry.WritePoints(f, buf); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
