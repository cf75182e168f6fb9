package page

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/esimmons/folio/geom"
)

const ms = time.Millisecond

func TestTrackCycle(t *testing.T) {
	c := loadController(t, "home")
	tr := c.Track()
	caption := tr.Caption()
	length := tr.Length()
	if length <= 0 {
		t.Fatalf("track length = %v", length)
	}

	c.Frame(0)
	if tr.State() != TrackDrawing || tr.Progress() != 0 {
		t.Fatalf("first frame: state %v progress %v", tr.State(), tr.Progress())
	}
	if tr.DashOffset() != length {
		t.Errorf("first frame offset = %v, want %v", tr.DashOffset(), length)
	}
	if caption.HasClass(ShowClass) {
		t.Error("caption shown before 20%")
	}

	c.Frame(3200 * ms)
	if !caption.HasClass(ShowClass) || caption.HasClass(HideClass) {
		t.Errorf("caption classes at 20%% = %v", caption.Classes)
	}

	c.Frame(8000 * ms)
	if math.Abs(tr.Progress()-0.5) > 1e-9 {
		t.Errorf("progress at 8s = %v, want 0.5", tr.Progress())
	}
	if math.Abs(float64(tr.DashOffset()-length/2)) > 1e-3 {
		t.Errorf("offset at 8s = %v, want %v", tr.DashOffset(), length/2)
	}

	c.Frame(16000 * ms)
	if tr.State() != TrackPaused {
		t.Fatalf("state at 16s = %v, want paused", tr.State())
	}
	if tr.DashOffset() != 0 {
		t.Errorf("paused offset = %v, want 0", tr.DashOffset())
	}
	pos, angle := tr.Car()
	if pos != tr.Path().End() || angle != 0 {
		t.Errorf("paused car = %v rot %v, want end rot 0", pos, angle)
	}
	if !caption.HasClass(ShowClass) {
		t.Error("caption should stay visible while paused")
	}

	// Still inside the pause
	c.Frame(18999 * ms)
	if tr.State() != TrackPaused || tr.DashOffset() != 0 {
		t.Errorf("pause ended early: state %v offset %v", tr.State(), tr.DashOffset())
	}

	c.Frame(19001 * ms)
	if tr.State() != TrackDrawing {
		t.Fatalf("state after pause = %v, want drawing", tr.State())
	}
	if tr.Progress() != 0 {
		t.Errorf("progress after reset = %v, want 0", tr.Progress())
	}
	if tr.DashOffset() != length {
		t.Errorf("offset after reset = %v, want %v", tr.DashOffset(), length)
	}
	if !caption.HasClass(HideClass) || caption.HasClass(ShowClass) {
		t.Errorf("caption classes after reset = %v", caption.Classes)
	}
	if tr.Cycles() != 1 {
		t.Errorf("Cycles() = %d, want 1", tr.Cycles())
	}

	// The new cycle is timed from the reset frame
	c.Frame(27001 * ms)
	if math.Abs(tr.Progress()-0.5) > 1e-9 {
		t.Errorf("progress 8s into second cycle = %v, want 0.5", tr.Progress())
	}
}

func TestTrackClickRestarts(t *testing.T) {
	c := loadController(t, "home")
	tr := c.Track()

	c.Frame(0)
	c.Frame(16000 * ms)
	if tr.State() != TrackPaused {
		t.Fatal("expected pause")
	}

	// Click on a descendant of the svg
	c.Dispatch(Click{Target: c.Document().ByID("racing-car")})
	if tr.State() != TrackDrawing {
		t.Errorf("click should cancel the pause")
	}
	if !tr.Caption().HasClass(HideClass) {
		t.Error("click should hide the caption")
	}

	// Next frame starts the cycle
	c.Frame(17000 * ms)
	if tr.Progress() != 0 {
		t.Errorf("progress on restart frame = %v, want 0", tr.Progress())
	}
	c.Frame(21000 * ms)
	if math.Abs(tr.Progress()-0.25) > 1e-9 {
		t.Errorf("progress 4s after restart = %v, want 0.25", tr.Progress())
	}

	// The cancelled pause does not reset the new cycle
	c.Frame(21500 * ms)
	if tr.Progress() < 0.25 {
		t.Errorf("stale pause reset the cycle: progress %v", tr.Progress())
	}
}

func TestTrackClickOutsideIgnored(t *testing.T) {
	c := loadController(t, "home")
	tr := c.Track()
	c.Frame(0)
	c.Frame(8000 * ms)

	c.Dispatch(Click{Target: c.Document().First("hero-title")})
	c.Frame(8100 * ms)
	if tr.Progress() < 0.5 {
		t.Errorf("click outside the svg restarted the track: progress %v", tr.Progress())
	}
}

func trackDoc(t *testing.T, path string) *Document {
	return parseDoc(t, `
width: 400
height: 400
elements:
  - class: map-container
    rect: [0, 0, 400, 400]
    children:
      - class: circuit-svg
        rect: [0, 0, 400, 400]
        children:
          - id: racing-track-path
            path: `+path+`
          - id: progressive-track
            path: `+path+`
          - id: racing-car
  - id: animation-text
`)
}

func TestTrackCarHeading(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		at    time.Duration
		pos   geom.Vec2
		angle float32
	}{
		{"east", "M 0 0 L 160 0", 8000 * ms, geom.V(80, 0), 0},
		{"south", "M 0 0 L 0 160", 8000 * ms, geom.V(0, 80), 90},
		{"west", "M 160 0 L 0 0", 4000 * ms, geom.V(120, 0), 180},
		// Within one unit of the end the heading looks back at the start
		{"wraps to start", "M 0 0 L 160 0", 15950 * ms, geom.V(159.5, 0), 180},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, trackDoc(t, tt.path))
			c.Frame(0)
			c.Frame(tt.at)

			pos, angle := c.Track().Car()
			if pos.Dist(tt.pos) > 1e-3 {
				t.Errorf("car at %v, want %v", pos, tt.pos)
			}
			if math.Abs(float64(angle-tt.angle)) > 1e-3 {
				t.Errorf("heading = %v, want %v", angle, tt.angle)
			}
		})
	}
}

func TestTrackHoverScale(t *testing.T) {
	c := loadController(t, "home")
	tr := c.Track()
	svg := tr.SVG()
	car := c.Document().ByID("racing-car")

	c.Dispatch(PointerMove{Point: svg.Bounds.Center(), Target: car})
	for i := 1; i <= 60; i++ {
		c.Frame(time.Duration(i) * 16 * ms)
	}
	if math.Abs(float64(tr.Scale()-1.02)) > 1e-3 {
		t.Errorf("hover scale after 1s = %v, want 1.02", tr.Scale())
	}

	c.Dispatch(PointerMove{Point: geom.V(5, 500), Target: nil})
	for i := 61; i <= 120; i++ {
		c.Frame(time.Duration(i) * 16 * ms)
	}
	if math.Abs(float64(tr.Scale()-1)) > 1e-3 {
		t.Errorf("scale after leaving = %v, want 1", tr.Scale())
	}
}

func TestTrackMissingElements(t *testing.T) {
	doc := trackDoc(t, "M 0 0 L 10 0")
	// Caption removed: the feature is skipped, not an error
	doc.ByID("animation-text").ID = "renamed"
	delete(doc.byID, "animation-text")

	c := newController(t, doc)
	if c.Track() != nil {
		t.Error("track should be disabled without its caption")
	}
}

func TestTrackNeedsMapContainer(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no container", `
width: 400
height: 400
elements:
  - class: circuit-svg
    rect: [0, 0, 400, 400]
    children:
      - id: racing-track-path
        path: M 0 0 L 160 0
      - id: progressive-track
        path: M 0 0 L 160 0
      - id: racing-car
  - id: animation-text
`},
		{"svg outside container", `
width: 400
height: 400
elements:
  - class: map-container
    rect: [0, 0, 400, 100]
  - class: circuit-svg
    rect: [0, 100, 400, 300]
    children:
      - id: racing-track-path
        path: M 0 0 L 160 0
      - id: progressive-track
        path: M 0 0 L 160 0
      - id: racing-car
  - id: animation-text
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newController(t, parseDoc(t, tt.src))
			if c.Track() != nil {
				t.Error("track enabled without a map container around the svg")
			}
			if slices.Contains(c.FeatureNames(), "track") {
				t.Errorf("features = %v, want no track", c.FeatureNames())
			}
		})
	}

	c := newController(t, trackDoc(t, "M 0 0 L 160 0"))
	if c.Track() == nil {
		t.Error("track disabled inside a map container")
	}
}
