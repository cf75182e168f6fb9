package telemetry

// Sample is the state captured at the end of a window.
type Sample struct {
	// Per-particle displacement from origin and speed, from Grid.Sample
	Disp  []float64
	Speed []float64

	Motes         int
	Links         int
	TrackCycles   int
	TrackProgress float64
	Revealed      int
	RevealTargets int
	LightboxOpen  bool
}

// Collector counts input within frame windows and produces WindowStats.
type Collector struct {
	mode                 string
	windowDurationSec    float64
	windowDurationFrames int32
	fps                  int

	windowStartFrame int32

	// Counters for the current window
	pointerFrames int
	clicks        int
	keys          int
	scrolls       int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds of frames
// fps: frames per second used for frame-to-time conversion
func NewCollector(mode string, windowDurationSec float64, fps int) *Collector {
	if fps < 1 {
		fps = 60
	}
	frames := int32(windowDurationSec * float64(fps))
	if frames < 1 {
		frames = 1
	}
	return &Collector{
		mode:                 mode,
		windowDurationSec:    windowDurationSec,
		windowDurationFrames: frames,
		fps:                  fps,
	}
}

// RecordPointer records a frame with the pointer over the canvas.
func (c *Collector) RecordPointer() {
	c.pointerFrames++
}

// RecordClick records a click.
func (c *Collector) RecordClick() {
	c.clicks++
}

// RecordKey records a key press.
func (c *Collector) RecordKey() {
	c.keys++
}

// RecordScroll records a scroll that moved the viewport.
func (c *Collector) RecordScroll() {
	c.scrolls++
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(frame int32) bool {
	return frame-c.windowStartFrame >= c.windowDurationFrames
}

// Flush produces a WindowStats and resets counters for the next window.
// The sample's slices are sorted in place.
func (c *Collector) Flush(frame int32, s Sample) WindowStats {
	disp := Summarize(s.Disp)
	speed := Summarize(s.Speed)

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   frame,
		TimeSec:          float64(frame) / float64(c.fps),
		Mode:             c.mode,

		Particles: len(s.Disp),
		DispMean:  disp.Mean,
		DispStd:   disp.Std,
		DispP50:   disp.P50,
		DispP90:   disp.P90,
		DispMax:   disp.Max,
		Displaced: CountAbove(s.Disp, DisplacedDistance),
		SpeedMean: speed.Mean,
		SpeedP90:  speed.P90,
		SpeedMax:  speed.Max,

		PointerFrames: c.pointerFrames,
		Clicks:        c.clicks,
		Keys:          c.keys,
		Scrolls:       c.scrolls,

		Motes:         s.Motes,
		Links:         s.Links,
		TrackCycles:   s.TrackCycles,
		TrackProgress: s.TrackProgress,
		Revealed:      s.Revealed,
		RevealTargets: s.RevealTargets,
		LightboxOpen:  s.LightboxOpen,
	}

	c.windowStartFrame = frame
	c.pointerFrames = 0
	c.clicks = 0
	c.keys = 0
	c.scrolls = 0

	return stats
}

// WindowDurationFrames returns the number of frames per window.
func (c *Collector) WindowDurationFrames() int32 {
	return c.windowDurationFrames
}
