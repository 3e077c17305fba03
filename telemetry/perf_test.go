package telemetry

import (
	"math"
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseInput)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseDraw)
		time.Sleep(200 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration")
	}
	if _, ok := stats.PhaseAvg[PhaseInput]; !ok {
		t.Error("expected input phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseDraw]; !ok {
		t.Error("expected draw phase to be tracked")
	}
	if pc.Frames() != 5 {
		t.Errorf("Frames() = %d, want 5", pc.Frames())
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseAnimate)
		time.Sleep(10 * time.Microsecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	if stats.AvgFrame <= 0 {
		t.Error("expected positive average frame duration after window filled")
	}
	if stats.FramesPerSecond <= 0 {
		t.Error("expected positive frames per second")
	}
	if pc.Frames() != 10 {
		t.Errorf("Frames() = %d, want 10", pc.Frames())
	}
}

// fakeClock advances only when told to.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newFakeCollector(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1700000000, 0)}
	pc := NewPerfCollector(window)
	pc.SetClock(clock.now)
	return pc, clock
}

func TestPerfCollector_Ordering(t *testing.T) {
	pc, clock := newFakeCollector(20)

	for i := 0; i < 20; i++ {
		pc.StartFrame()
		pc.StartPhase(PhaseDraw)
		clock.advance(time.Duration(i%4+1) * time.Millisecond)
		pc.EndFrame()
	}

	s := pc.Stats()
	if s.MinFrame != time.Millisecond || s.MaxFrame != 4*time.Millisecond {
		t.Errorf("min/max = %v/%v, want 1ms/4ms", s.MinFrame, s.MaxFrame)
	}
	if s.AvgFrame != 2500*time.Microsecond {
		t.Errorf("avg = %v, want 2.5ms", s.AvgFrame)
	}
	if s.P95Frame < s.MinFrame || s.P95Frame > s.MaxFrame {
		t.Errorf("p95 %v outside [%v, %v]", s.P95Frame, s.MinFrame, s.MaxFrame)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc, clock := newFakeCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartFrame()
		pc.StartPhase("fast")
		clock.advance(time.Millisecond)
		pc.StartPhase("slow")
		clock.advance(3 * time.Millisecond)
		pc.EndFrame()
	}

	stats := pc.Stats()
	tests := []struct {
		phase string
		avg   time.Duration
		pct   float64
	}{
		{"fast", time.Millisecond, 25},
		{"slow", 3 * time.Millisecond, 75},
	}
	for _, tt := range tests {
		if got := stats.PhaseAvg[tt.phase]; got != tt.avg {
			t.Errorf("%s avg = %v, want %v", tt.phase, got, tt.avg)
		}
		if got := stats.PhasePct[tt.phase]; math.Abs(got-tt.pct) > 1e-9 {
			t.Errorf("%s pct = %.3f, want %.0f", tt.phase, got, tt.pct)
		}
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	pc := NewPerfCollector(0)

	stats := pc.Stats()
	if stats.AvgFrame != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_RecordPresent(t *testing.T) {
	pc, clock := newFakeCollector(10)

	pc.RecordPresent()
	clock.advance(20 * time.Millisecond)
	pc.RecordPresent()

	stats := pc.Stats()
	if stats.Interval != 20*time.Millisecond || math.Abs(stats.FPS-50) > 1e-9 {
		t.Errorf("interval/fps = %v/%v, want 20ms/50", stats.Interval, stats.FPS)
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgFrame: 1500 * time.Microsecond,
		PhasePct: map[string]float64{PhaseDraw: 60, PhaseRegenerate: 30},
	}
	rec := s.ToCSV(42)
	if rec.Frame != 42 || rec.AvgFrameUS != 1500 {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.DrawPct != 60 || rec.RegeneratePct != 30 || rec.InputPct != 0 {
		t.Errorf("unexpected phase columns %+v", rec)
	}
}
