package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/esimmons/folio/components"
	"github.com/esimmons/folio/geom"
	"github.com/esimmons/folio/systems"
)

// MoteRenderer draws the floating background particles and their links.
type MoteRenderer struct {
	tints []colorful.Color
	links []systems.Link
}

// NewMoteRenderer creates a mote renderer for the given tint palette.
// Links take the first tint.
func NewMoteRenderer(tints []colorful.Color) *MoteRenderer {
	if len(tints) == 0 {
		tints = []colorful.Color{colorAccent}
	}
	return &MoteRenderer{tints: tints}
}

// Links returns how many links the last Draw rendered.
func (r *MoteRenderer) Links() int { return len(r.links) }

// Draw renders the field with its canvas top-left at origin on screen.
func (r *MoteRenderer) Draw(field *systems.MoteField, origin geom.Vec2) {
	r.links = field.Links()
	for _, l := range r.links {
		a := l.A.Add(origin)
		b := l.B.Add(origin)
		rl.DrawLineV(rl.Vector2{X: a.X, Y: a.Y}, rl.Vector2{X: b.X, Y: b.Y}, toRL(r.tints[0], l.Alpha))
	}

	field.Each(func(pos components.Position, m components.Mote) {
		tint := r.tints[int(m.Tint)%len(r.tints)]
		rl.DrawCircleV(rl.Vector2{X: origin.X + pos.X, Y: origin.Y + pos.Y}, m.Size, toRL(tint, m.Opacity))
	})
}
