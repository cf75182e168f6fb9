package page

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/geom"
)

// TrackState is the phase of the track drawing cycle.
type TrackState int

const (
	// TrackDrawing draws the line and drives the car along it.
	TrackDrawing TrackState = iota
	// TrackPaused holds the finished drawing before the next cycle.
	TrackPaused
)

func (s TrackState) String() string {
	switch s {
	case TrackDrawing:
		return "drawing"
	case TrackPaused:
		return "paused"
	default:
		return fmt.Sprintf("TrackState(%d)", int(s))
	}
}

// Caption classes.
const (
	ShowClass = "show"
	HideClass = "hide"
)

// Track draws the circuit progressively while a car follows the drawn tip.
type Track struct {
	doc         *Document
	svg         *Element
	progressive *Element
	car         *Element
	caption     *Element

	path     *geom.Path
	basePath *geom.Path
	length   float32

	duration  time.Duration
	pause     time.Duration
	captionAt float64
	lookahead float32

	state        TrackState
	started      bool
	start        time.Duration
	pauseStart   time.Duration
	captionShown bool
	cycles       int

	progress   float64
	dashOffset float32
	carPos     geom.Vec2
	carAngle   float32

	spring      harmonica.Spring
	scale       float64
	scaleVel    float64
	scaleTarget float64
	hoverScale  float64
}

func setupTrack(doc *Document, cfg *config.Config) (*Track, error) {
	container := doc.First("map-container")
	if container == nil {
		return nil, missing(".map-container")
	}
	var svg *Element
	for _, e := range doc.ByClass("circuit-svg") {
		if doc.Contains(container, e) {
			svg = e
			break
		}
	}
	if svg == nil {
		return nil, missing(".map-container .circuit-svg")
	}
	find := func(id string) *Element {
		e := doc.ByID(id)
		if e == nil || !doc.Contains(svg, e) {
			return nil
		}
		return e
	}
	base := find("racing-track-path")
	if base == nil {
		return nil, missing("#racing-track-path")
	}
	progressive := find("progressive-track")
	if progressive == nil {
		return nil, missing("#progressive-track")
	}
	car := find("racing-car")
	if car == nil {
		return nil, missing("#racing-car")
	}
	caption := doc.ByID("animation-text")
	if caption == nil {
		return nil, missing("#animation-text")
	}

	path, err := geom.ParsePath(progressive.Path, cfg.Track.CurveSegments)
	if err != nil {
		return nil, fmt.Errorf("progressive track: %w", err)
	}
	basePath, err := geom.ParsePath(base.Path, cfg.Track.CurveSegments)
	if err != nil {
		return nil, fmt.Errorf("racing track: %w", err)
	}

	t := &Track{
		doc:         doc,
		svg:         svg,
		progressive: progressive,
		car:         car,
		caption:     caption,
		path:        path,
		basePath:    basePath,
		length:      path.Length(),
		duration:    cfg.Derived.TrackDuration,
		pause:       cfg.Derived.TrackPause,
		captionAt:   cfg.Track.CaptionAt,
		lookahead:   float32(cfg.Track.Lookahead),
		spring: harmonica.NewSpring(
			harmonica.FPS(max(cfg.Screen.TargetFPS, 1)),
			cfg.Track.HoverFrequency,
			cfg.Track.HoverDamping,
		),
		scale:       1,
		scaleTarget: 1,
		hoverScale:  cfg.Track.HoverScale,
	}
	t.dashOffset = t.length
	t.carPos = path.Start()
	return t, nil
}

func (t *Track) name() string { return "track" }

// State returns the current phase.
func (t *Track) State() TrackState { return t.state }

// Progress returns the drawn fraction of the current cycle, in [0, 1].
func (t *Track) Progress() float64 { return t.progress }

// Path returns the flattened track in svg coordinates.
func (t *Track) Path() *geom.Path { return t.path }

// BasePath returns the full circuit drawn under the progressive track.
func (t *Track) BasePath() *geom.Path { return t.basePath }

// Length returns the total track length.
func (t *Track) Length() float32 { return t.length }

// DashOffset returns the undrawn length of the track.
func (t *Track) DashOffset() float32 { return t.dashOffset }

// Drawn returns the drawn length of the track.
func (t *Track) Drawn() float32 { return t.length - t.dashOffset }

// Car returns the car position in svg coordinates and its heading in degrees.
func (t *Track) Car() (geom.Vec2, float32) { return t.carPos, t.carAngle }

// CarSize returns the car's drawn width and height from its attributes.
func (t *Track) CarSize() (w, h float32) {
	return attrFloat(t.car, "width", 18), attrFloat(t.car, "height", 10)
}

func attrFloat(e *Element, name string, def float32) float32 {
	v, err := strconv.ParseFloat(e.Attr(name), 32)
	if err != nil {
		return def
	}
	return float32(v)
}

// Scale returns the current hover scale of the svg.
func (t *Track) Scale() float32 { return float32(t.scale) }

// Cycles returns how many drawing cycles have completed.
func (t *Track) Cycles() int { return t.cycles }

// SVG returns the element the track is drawn in.
func (t *Track) SVG() *Element { return t.svg }

// Caption returns the caption element.
func (t *Track) Caption() *Element { return t.caption }

func (t *Track) handle(ev Event) {
	switch ev := ev.(type) {
	case Click:
		if t.doc.Contains(t.svg, ev.Target) {
			t.restart()
		}
	case PointerEnter:
		if ev.Target == t.svg {
			t.scaleTarget = t.hoverScale
		}
	case PointerLeave:
		if ev.Target == t.svg {
			t.scaleTarget = 1
		}
	}
}

// restart abandons the current cycle; the next frame starts a new one.
func (t *Track) restart() {
	t.state = TrackDrawing
	t.started = false
	t.hideCaption()
}

func (t *Track) hideCaption() {
	t.caption.RemoveClass(ShowClass)
	t.caption.AddClass(HideClass)
	t.captionShown = false
}

func (t *Track) frame(now time.Duration) {
	t.scale, t.scaleVel = t.spring.Update(t.scale, t.scaleVel, t.scaleTarget)

	if t.state == TrackPaused {
		if now-t.pauseStart < t.pause {
			return
		}
		t.reset()
	}

	if !t.started {
		t.start = now
		t.started = true
	}

	progress := float64(now-t.start) / float64(t.duration)
	if progress >= 1 {
		t.state = TrackPaused
		t.pauseStart = now
		t.progress = 1
		t.dashOffset = 0
		t.carPos = t.path.End()
		t.carAngle = 0
		t.cycles++
		return
	}
	t.progress = progress

	if progress >= t.captionAt && !t.captionShown {
		t.caption.RemoveClass(HideClass)
		t.caption.AddClass(ShowClass)
		t.captionShown = true
	}

	drawn := t.length * float32(progress)
	t.dashOffset = t.length - drawn
	t.carPos = t.path.PointAt(drawn)

	ahead := drawn + t.lookahead
	if ahead >= t.length {
		ahead = 0
	}
	t.carAngle = geom.Degrees(t.path.PointAt(ahead).Sub(t.carPos).Angle())
}

// reset clears the finished drawing and parks the car at the start.
func (t *Track) reset() {
	t.hideCaption()
	t.dashOffset = t.length
	t.carPos = t.path.Start()
	t.carAngle = 0
	t.progress = 0
	t.state = TrackDrawing
	t.started = false
}
