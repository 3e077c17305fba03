package telemetry

import (
	"bytes"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/galaxy/config"
	"github.com/pthm-cable/galaxy/galaxy"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v; want nil, nil", om, err)
	}

	// Nil manager swallows every call.
	if err := om.WriteRegen(RegenRecord{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Error(err)
	}
	if err := om.WriteConfig(nil); err != nil {
		t.Error(err)
	}
	if err := om.WritePoints("x.csv", &galaxy.Buffer{}); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager has a directory")
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := 1; i <= 3; i++ {
		if err := om.WriteRegen(NewRegenRecord(regenEvent(i, 1000*i, time.Millisecond))); err != nil {
			t.Fatalf("WriteRegen: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{AvgFrame: time.Millisecond}, 60); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.WritePerf(PerfStats{AvgFrame: 2 * time.Millisecond}, 120); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var regens []RegenRecord
	readCSV(t, filepath.Join(dir, "regenerations.csv"), &regens)
	if len(regens) != 3 {
		t.Fatalf("got %d regeneration rows, want 3", len(regens))
	}
	if regens[2].Generation != 3 || regens[2].Count != 3000 {
		t.Errorf("last row = %+v", regens[2])
	}

	var perf []PerfStatsCSV
	readCSV(t, filepath.Join(dir, "perf.csv"), &perf)
	if len(perf) != 2 || perf[1].Frame != 120 || perf[1].AvgFrameUS != 2000 {
		t.Errorf("perf rows = %+v", perf)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config snapshot does not reload: %v", err)
	}
}

func TestWritePoints(t *testing.T) {
	p := galaxy.DefaultParams()
	p.Count = 50
	buf, err := galaxy.Generate(p, newRand())
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := WritePoints(&out, buf); err != nil {
		t.Fatalf("WritePoints: %v", err)
	}
	header, _, _ := strings.Cut(out.String(), "\n")
	if header != "x,y,z,r,g,b" {
		t.Errorf("header = %q", header)
	}

	var rows []PointRecord
	if err := gocsv.UnmarshalBytes(out.Bytes(), &rows); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(rows) != 50 {
		t.Fatalf("got %d rows, want 50", len(rows))
	}
	if rows[7].X != buf.Positions[21] || rows[7].B != buf.Colors[23] {
		t.Errorf("row 7 = %+v", rows[7])
	}
}

func TestPointRecordsWithoutColors(t *testing.T) {
	buf := galaxy.GenerateStarfield(4, 10, newRand())
	rows := PointRecords(buf)
	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}
	for _, r := range rows {
		if r.R != 0 || r.G != 0 || r.B != 0 {
			t.Errorf("starfield row has color %+v", r)
		}
	}
}

func readCSV(t *testing.T, path string, out any) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}
