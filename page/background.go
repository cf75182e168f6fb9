package page

import (
	"math/rand"
	"time"

	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/geom"
	"github.com/esimmons/folio/systems"
)

// Background animates the floating motes behind the page.
type Background struct {
	canvas *Element
	field  *systems.MoteField
	paused bool
	frames int
}

func setupBackground(doc *Document, cfg *config.Config, width, height float32, rng *rand.Rand) (*Background, error) {
	canvas := doc.ByID("background-canvas")
	if canvas == nil {
		return nil, missing("#background-canvas")
	}
	canvas.Bounds = geom.R(0, 0, width, height)
	return &Background{
		canvas: canvas,
		field:  systems.NewMoteField(systems.MoteParamsFromConfig(cfg), width, height, rng),
	}, nil
}

func (b *Background) name() string { return "background" }

// Field returns the mote field.
func (b *Background) Field() *systems.MoteField { return b.field }

// Canvas returns the element the motes are drawn into.
func (b *Background) Canvas() *Element { return b.canvas }

// Paused reports whether updates are suspended because the window is hidden.
func (b *Background) Paused() bool { return b.paused }

// Frames returns how many frames have been simulated.
func (b *Background) Frames() int { return b.frames }

func (b *Background) handle(ev Event) {
	switch ev := ev.(type) {
	case VisibilityChange:
		b.paused = ev.Hidden
	case Resize:
		b.canvas.Bounds = geom.R(0, 0, ev.Width, ev.Height)
		b.field.Resize(ev.Width, ev.Height)
	}
}

func (b *Background) frame(now time.Duration) {
	if b.paused {
		return
	}
	b.field.Update(float64(now) / float64(time.Millisecond))
	b.frames++
}
