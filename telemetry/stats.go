// Package telemetry collects windowed statistics, timing and notable moments
// for the particle sketch and the page effects.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of frames.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	TimeSec          float64 `csv:"time"`
	Mode             string  `csv:"mode"`

	// Particle grid, sampled at window end
	Particles int     `csv:"particles"`
	DispMean  float64 `csv:"disp_mean"`
	DispStd   float64 `csv:"disp_std"`
	DispP50   float64 `csv:"disp_p50"`
	DispP90   float64 `csv:"disp_p90"`
	DispMax   float64 `csv:"disp_max"`
	Displaced int     `csv:"displaced"` // Particles further than DisplacedDistance from origin
	SpeedMean float64 `csv:"speed_mean"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	// Input during the window
	PointerFrames int `csv:"pointer_frames"` // Frames the pointer was inside the canvas
	Clicks        int `csv:"clicks"`
	Keys          int `csv:"keys"`
	Scrolls       int `csv:"scrolls"`

	// Page state at window end
	Motes         int     `csv:"motes"`
	Links         int     `csv:"links"`
	TrackCycles   int     `csv:"track_cycles"`
	TrackProgress float64 `csv:"track_progress"`
	Revealed      int     `csv:"revealed"`
	RevealTargets int     `csv:"reveal_targets"`
	LightboxOpen  bool    `csv:"lightbox_open"`
}

// DisplacedDistance is the distance from origin beyond which a particle counts as displaced.
const DisplacedDistance = 2.0

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// Distribution summarizes a sample.
type Distribution struct {
	Mean, Std     float64
	P50, P90, Max float64
}

// Summarize computes mean, sample standard deviation, median, 90th percentile and
// maximum. values is sorted in place.
func Summarize(values []float64) Distribution {
	n := len(values)
	if n == 0 {
		return Distribution{}
	}
	sort.Float64s(values)

	var d Distribution
	if n == 1 {
		d.Mean = values[0]
	} else {
		d.Mean, d.Std = stat.MeanStdDev(values, nil)
	}
	d.P50 = Percentile(values, 0.5)
	d.P90 = Percentile(values, 0.9)
	d.Max = floats.Max(values)
	return d
}

// CountAbove returns how many values exceed limit.
func CountAbove(values []float64, limit float64) int {
	n := 0
	for _, v := range values {
		if v > limit {
			n++
		}
	}
	return n
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("time", s.TimeSec),
		slog.String("mode", s.Mode),
		slog.Int("particles", s.Particles),
		slog.Float64("disp_mean", s.DispMean),
		slog.Float64("disp_std", s.DispStd),
		slog.Float64("disp_p50", s.DispP50),
		slog.Float64("disp_p90", s.DispP90),
		slog.Float64("disp_max", s.DispMax),
		slog.Int("displaced", s.Displaced),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("speed_max", s.SpeedMax),
		slog.Int("pointer_frames", s.PointerFrames),
		slog.Int("clicks", s.Clicks),
		slog.Int("keys", s.Keys),
		slog.Int("scrolls", s.Scrolls),
		slog.Int("motes", s.Motes),
		slog.Int("links", s.Links),
		slog.Int("track_cycles", s.TrackCycles),
		slog.Float64("track_progress", s.TrackProgress),
		slog.Int("revealed", s.Revealed),
		slog.Int("reveal_targets", s.RevealTargets),
		slog.Bool("lightbox_open", s.LightboxOpen),
	)
}

// LogStats logs the window stats using slog. Only the fields relevant to the
// mode are included.
func (s WindowStats) LogStats() {
	attrs := []any{
		"window_end", s.WindowEndFrame,
		"time", s.TimeSec,
		"mode", s.Mode,
		"clicks", s.Clicks,
	}
	if s.Particles > 0 {
		attrs = append(attrs,
			"particles", s.Particles,
			"disp_mean", s.DispMean,
			"disp_p90", s.DispP90,
			"disp_max", s.DispMax,
			"displaced", s.Displaced,
			"speed_mean", s.SpeedMean,
			"pointer_frames", s.PointerFrames,
		)
	}
	if s.RevealTargets > 0 || s.Motes > 0 {
		attrs = append(attrs,
			"motes", s.Motes,
			"links", s.Links,
			"track_cycles", s.TrackCycles,
			"track_progress", s.TrackProgress,
			"revealed", s.Revealed,
			"scrolls", s.Scrolls,
		)
	}
	slog.Info("stats", attrs...)
}
