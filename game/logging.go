package game

import (
	"io"
	"log/slog"
	"strings"
)

// ParseLogLevel maps a config level name to a slog level. Unknown names
// fall back to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info", "":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger builds the process logger: JSON lines by default, text otherwise.
func NewLogger(w io.Writer, level string, json bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLogLevel(level)}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// logPerfStats logs the rolling frame statistics.
func (g *Game) logPerfStats() {
	g.logger.Info("perf",
		"frame", g.frame,
		"stats", g.perf.Stats(),
		"particles", g.particles(),
	)
}

// logRegenStats logs the regeneration summary.
func (g *Game) logRegenStats() {
	g.logger.Info("regenerations", "stats", g.regens.Stats())
}
