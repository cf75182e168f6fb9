package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	tests := []struct {
		name   string
		window float64
		fps    int
		want   int32
	}{
		{"five seconds", 5, 60, 300},
		{"default fps", 1, 0, 60},
		{"at least one frame", 0.001, 60, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector("sketch", tt.window, tt.fps)
			if got := c.WindowDurationFrames(); got != tt.want {
				t.Errorf("WindowDurationFrames = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector("sketch", 1, 60)

	if c.ShouldFlush(59) {
		t.Error("flush before window end")
	}
	if !c.ShouldFlush(60) {
		t.Error("no flush at window end")
	}

	for i := 0; i < 30; i++ {
		c.RecordPointer()
	}
	c.RecordClick()
	c.RecordKey()
	c.RecordScroll()

	s := c.Flush(60, Sample{
		Disp:  []float64{0, 0, 3, 5},
		Speed: []float64{0, 1, 1, 2},
		Motes: 12,
		Links: 4,
	})

	if s.WindowEndFrame != 60 || s.WindowStartFrame != 0 || s.Mode != "sketch" {
		t.Errorf("window = %d..%d mode %q", s.WindowStartFrame, s.WindowEndFrame, s.Mode)
	}
	if math.Abs(s.TimeSec-1) > 1e-9 {
		t.Errorf("time = %v, want 1", s.TimeSec)
	}
	if s.Particles != 4 || s.Displaced != 2 || s.DispMax != 5 || s.DispMean != 2 {
		t.Errorf("displacement stats = %+v", s)
	}
	if s.SpeedMean != 1 || s.SpeedMax != 2 {
		t.Errorf("speed mean %v max %v", s.SpeedMean, s.SpeedMax)
	}
	if s.PointerFrames != 30 || s.Clicks != 1 || s.Keys != 1 || s.Scrolls != 1 {
		t.Errorf("counters = %d %d %d %d", s.PointerFrames, s.Clicks, s.Keys, s.Scrolls)
	}
	if s.Motes != 12 || s.Links != 4 {
		t.Errorf("page state = %d motes %d links", s.Motes, s.Links)
	}

	// Counters reset, next window starts at the flush frame
	next := c.Flush(120, Sample{})
	if next.WindowStartFrame != 60 || next.Clicks != 0 || next.PointerFrames != 0 {
		t.Errorf("second window = %+v", next)
	}
	if next.Particles != 0 || next.DispMean != 0 {
		t.Errorf("empty sample produced %+v", next)
	}
}
