package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	d := Summarize(values)

	if math.Abs(d.Mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", d.Mean)
	}
	// Sample standard deviation of 0.1..1.0
	if math.Abs(d.Std-0.30277) > 0.001 {
		t.Errorf("std = %v, want ~0.3028", d.Std)
	}
	if math.Abs(d.P50-0.55) > 0.001 {
		t.Errorf("p50 = %v, want 0.55", d.P50)
	}
	if math.Abs(d.P90-0.91) > 0.001 {
		t.Errorf("p90 = %v, want 0.91", d.P90)
	}
	if d.Max != 1.0 {
		t.Errorf("max = %v, want 1", d.Max)
	}
	if values[0] != 0.1 {
		t.Error("Summarize should sort its input")
	}
}

func TestSummarizeSmall(t *testing.T) {
	if d := Summarize(nil); d != (Distribution{}) {
		t.Errorf("empty = %+v, want zero", d)
	}
	d := Summarize([]float64{4})
	if d.Mean != 4 || d.Std != 0 || d.Max != 4 || d.P90 != 4 {
		t.Errorf("single = %+v", d)
	}
}

func TestCountAbove(t *testing.T) {
	if got := CountAbove([]float64{0, 1, 2, 2.5, 10}, DisplacedDistance); got != 2 {
		t.Errorf("CountAbove = %d, want 2", got)
	}
}
