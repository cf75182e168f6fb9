package page

import (
	"time"

	"github.com/esimmons/folio/camera"
	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/geom"
)

// Reveal adds the reveal class to targets once enough of them scrolls into view.
type Reveal struct {
	cam     *camera.Camera
	targets []*Element

	threshold float32
	margin    [4]float32 // top, right, bottom, left
	class     string
	fade      time.Duration
	slide     float32

	now        time.Duration
	revealedAt map[*Element]time.Duration
}

func setupReveal(doc *Document, cfg *config.Config, cam *camera.Camera) (*Reveal, error) {
	rc := cfg.Reveal
	var targets []*Element
	for _, class := range rc.Targets {
		targets = append(targets, doc.ByClass(class)...)
	}
	if len(targets) == 0 {
		return nil, missing("reveal targets")
	}

	r := &Reveal{
		cam:       cam,
		targets:   targets,
		threshold: float32(rc.Threshold),
		margin: [4]float32{
			float32(rc.MarginTop),
			float32(rc.MarginRight),
			float32(rc.MarginBottom),
			float32(rc.MarginLeft),
		},
		class:      rc.Class,
		fade:       cfg.Derived.RevealFade,
		slide:      float32(rc.Slide),
		revealedAt: make(map[*Element]time.Duration),
	}
	r.observe()
	return r, nil
}

func (r *Reveal) name() string { return "reveal" }

// Root returns the page rectangle targets must intersect: the viewport with
// the root margin applied.
func (r *Reveal) Root() geom.Rect {
	m := r.margin
	return r.cam.VisibleRect().Inset(m[0], m[1], m[2], m[3])
}

// Ratio returns the fraction of e's area inside the root rectangle.
func (r *Reveal) Ratio(e *Element) float32 {
	area := e.Bounds.Area()
	if area == 0 {
		return 0
	}
	return r.Root().Intersect(e.Bounds).Area() / area
}

// Targets returns the observed elements.
func (r *Reveal) Targets() []*Element { return r.targets }

// Revealed reports whether e has been revealed.
func (r *Reveal) Revealed(e *Element) bool {
	_, ok := r.revealedAt[e]
	return ok
}

// Opacity returns the fade-in opacity of e at time now, from 0 to 1.
func (r *Reveal) Opacity(e *Element, now time.Duration) float32 {
	return r.fraction(e, now)
}

// Offset returns the downward offset of e at time now, shrinking from the
// slide distance to 0 as it fades in.
func (r *Reveal) Offset(e *Element, now time.Duration) float32 {
	return r.slide * (1 - r.fraction(e, now))
}

func (r *Reveal) fraction(e *Element, now time.Duration) float32 {
	at, ok := r.revealedAt[e]
	if !ok {
		return 0
	}
	if r.fade <= 0 {
		return 1
	}
	return geom.Clamp01(float32(now-at) / float32(r.fade))
}

func (r *Reveal) handle(ev Event) {
	switch ev.(type) {
	case Scroll, Resize:
		r.observe()
	}
}

func (r *Reveal) frame(now time.Duration) {
	r.now = now
	r.observe()
}

// observe reveals every target that crosses the threshold. Revealed targets
// are never hidden again.
func (r *Reveal) observe() {
	for _, e := range r.targets {
		if r.Revealed(e) {
			continue
		}
		if r.Root().Intersect(e.Bounds).Empty() {
			continue
		}
		if r.Ratio(e) >= r.threshold {
			e.AddClass(r.class)
			r.revealedAt[e] = r.now
		}
	}
}
