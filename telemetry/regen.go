package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/galaxy/controls"
)

// RegenRecord is one committed regeneration, flattened for CSV export.
type RegenRecord struct {
	Generation   int     `csv:"generation"`
	Count        int     `csv:"count"`
	Size         float64 `csv:"size"`
	Radius       float64 `csv:"radius"`
	Branches     int     `csv:"branches"`
	Spin         float64 `csv:"spin"`
	Randomness   float64 `csv:"randomness"`
	InsideColor  string  `csv:"inside_color"`
	MidColor     string  `csv:"mid_color"`
	OutsideColor string  `csv:"outside_color"`
	DurationUS   int64   `csv:"duration_us"`
	MeanRadius   float64 `csv:"mean_radius"`
	MaxRadius    float64 `csv:"max_radius"`
	MaxHeight    float64 `csv:"max_height"`
	Finite       bool    `csv:"finite"`
}

// NewRegenRecord flattens a controller event.
func NewRegenRecord(ev controls.RegenEvent) RegenRecord {
	p := ev.Params
	return RegenRecord{
		Generation:   ev.Generation,
		Count:        p.Count,
		Size:         p.Size,
		Radius:       p.Radius,
		Branches:     p.Branches,
		Spin:         p.Spin,
		Randomness:   p.Randomness,
		InsideColor:  p.InsideColor.Hex(),
		MidColor:     p.MidColor.Hex(),
		OutsideColor: p.OutsideColor.Hex(),
		DurationUS:   ev.Duration.Microseconds(),
		MeanRadius:   ev.Summary.MeanRadius,
		MaxRadius:    ev.Summary.MaxRadius,
		MaxHeight:    ev.Summary.MaxHeight,
		Finite:       ev.Summary.Finite,
	}
}

// RegenTracker accumulates regeneration timings.
type RegenTracker struct {
	durations []float64 // seconds
	particles []float64
	last      RegenRecord
}

// NewRegenTracker creates an empty tracker.
func NewRegenTracker() *RegenTracker {
	return &RegenTracker{}
}

// Record adds an event and returns its flattened record.
func (r *RegenTracker) Record(ev controls.RegenEvent) RegenRecord {
	rec := NewRegenRecord(ev)
	r.durations = append(r.durations, ev.Duration.Seconds())
	r.particles = append(r.particles, float64(ev.Params.Count))
	r.last = rec
	return rec
}

// Count returns the number of recorded regenerations.
func (r *RegenTracker) Count() int {
	return len(r.durations)
}

// Last returns the most recent record. ok is false before the first Record.
func (r *RegenTracker) Last() (RegenRecord, bool) {
	return r.last, len(r.durations) > 0
}

// RegenStats summarizes recorded regenerations.
type RegenStats struct {
	Count        int
	MeanDuration time.Duration
	MaxDuration  time.Duration
	StdDuration  time.Duration
	// Mean generation cost per particle
	PerParticle time.Duration
}

// Stats computes summary statistics over every recorded regeneration.
func (r *RegenTracker) Stats() RegenStats {
	n := len(r.durations)
	if n == 0 {
		return RegenStats{}
	}
	mean, std := stat.MeanStdDev(r.durations, nil)
	if n == 1 {
		std = 0
	}
	s := RegenStats{
		Count:        n,
		MeanDuration: seconds(mean),
		MaxDuration:  seconds(floats.Max(r.durations)),
		StdDuration:  seconds(std),
	}
	if total := floats.Sum(r.particles); total > 0 {
		s.PerParticle = seconds(floats.Sum(r.durations) / total)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s RegenStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("count", s.Count),
		slog.Int64("mean_us", s.MeanDuration.Microseconds()),
		slog.Int64("max_us", s.MaxDuration.Microseconds()),
		slog.Int64("std_us", s.StdDuration.Microseconds()),
		slog.Int64("per_particle_ns", s.PerParticle.Nanoseconds()),
	)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
