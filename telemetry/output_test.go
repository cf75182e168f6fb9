package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/esimmons/folio/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// Nil manager accepts writes
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" {
		t.Error("nil manager has a directory")
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WriteStats(WindowStats{WindowEndFrame: i * 300, Mode: "sketch", Particles: 5625}); err != nil {
			t.Fatalf("WriteStats: %v", err)
		}
	}
	if err := om.WritePerf(PerfStats{FPS: 60}, 300); err != nil {
		t.Fatalf("WritePerf: %v", err)
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkTrackLap, Frame: 960, Description: "lap"}); err != nil {
		t.Fatalf("WriteBookmark: %v", err)
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

	lines := readLines(t, filepath.Join(dir, StatsFile))
	if len(lines) != 4 {
		t.Fatalf("%s has %d lines, want header + 3", StatsFile, len(lines))
	}
	if !strings.HasPrefix(lines[0], "window_end,time,mode,particles,disp_mean") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[3], "900,") {
		t.Errorf("last row = %q", lines[3])
	}

	perf := readLines(t, filepath.Join(dir, PerfFile))
	if len(perf) != 2 || !strings.Contains(perf[0], "grid_pct") {
		t.Errorf("perf.csv = %v", perf)
	}

	bms := readLines(t, filepath.Join(dir, BookmarksFile))
	if len(bms) != 2 || bms[1] != "track_lap,960,lap" {
		t.Errorf("bookmarks.csv = %v", bms)
	}

	if _, err := config.Load(filepath.Join(dir, ConfigFile)); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}
