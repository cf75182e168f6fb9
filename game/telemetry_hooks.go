package game

import (
	"log/slog"

	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/telemetry"
)

// recorder holds the telemetry shared by both drivers.
type recorder struct {
	perf      *telemetry.PerfCollector
	collector *telemetry.Collector
	bookmarks *telemetry.BookmarkDetector
	output    *telemetry.OutputManager
	logStats  bool

	// Called for each bookmark after it is logged and written
	onBookmark func(bm *telemetry.Bookmark)
}

func newRecorder(cfg *config.Config, opts Options) (*recorder, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}
	return &recorder{
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		collector: telemetry.NewCollector(opts.Mode, opts.StatsWindowSec, cfg.Screen.TargetFPS),
		bookmarks: telemetry.NewBookmarkDetector(10),
		output:    output,
		logStats:  opts.LogStats,
	}, nil
}

// flush checks if the stats window should be flushed and handles bookmarks.
// sample is only called when a window ends.
func (r *recorder) flush(frame int32, sample func() telemetry.Sample) {
	if !r.collector.ShouldFlush(frame) {
		return
	}

	stats := r.collector.Flush(frame, sample())
	perfStats := r.perf.Stats()

	if r.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := r.output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := r.output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range r.bookmarks.Check(stats) {
		if r.logStats {
			bm.LogBookmark()
		}
		if err := r.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
		if r.onBookmark != nil {
			r.onBookmark(&bm)
		}
	}
}

func (r *recorder) close() {
	if err := r.output.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
