package game

import "github.com/pthm-cable/galaxy/controls"

// onRegenerate records a finished regeneration.
func (g *Game) onRegenerate(ev controls.RegenEvent) {
	rec := g.regens.Record(ev)
	g.lastRegen = ev.Duration
	if err := g.output.WriteRegen(rec); err != nil {
		g.logger.Error("failed to write regeneration", "error", err)
	}
	g.logger.Info("galaxy regenerated",
		"generation", ev.Generation,
		"count", ev.Params.Count,
		"branches", ev.Params.Branches,
		"duration_ms", ev.Duration.Milliseconds(),
		"finite", ev.Summary.Finite,
	)
}
