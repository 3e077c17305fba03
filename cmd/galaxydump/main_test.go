package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWritesPoints(t *testing.T) {
	tests := []struct {
		name      string
		starfield bool
		header    string
	}{
		{"galaxy", false, "x,y,z,r,g,b"},
		{"starfield", true, "x,y,z,r,g,b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "points.csv")
			if err := run("", out, 1, 25, 3, 0, tt.starfield); err != nil {
				t.Fatalf("run: %v", err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			if lines[0] != tt.header {
				t.Errorf("header = %q, want %q", lines[0], tt.header)
			}
			if !tt.starfield && len(lines) != 26 {
				t.Errorf("got %d lines, want header + 25", len(lines))
			}
		})
	}
}

func TestRunReportsWriteErrors(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be created as a file.
	if err := run("", dir, 1, 25, 3, 0, false); err == nil {
		t.Error("expected error writing to a directory path")
	}
	if err := run("", filepath.Join(dir, "missing", "points.csv"), 1, 25, 3, 0, false); err == nil {
		t.Error("expected error for missing parent directory")
	}
}
