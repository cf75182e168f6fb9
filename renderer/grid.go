package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/esimmons/folio/systems"
)

// GridRenderer draws the particle grid.
type GridRenderer struct {
	pointSize  float32
	background rl.Color
}

// NewGridRenderer creates a grid renderer clearing to the given grey level.
func NewGridRenderer(pointSize float32, background uint8) *GridRenderer {
	return &GridRenderer{
		pointSize:  pointSize,
		background: rl.Color{R: background, G: background, B: background, A: 255},
	}
}

// SetPointSize changes the drawn particle radius.
func (r *GridRenderer) SetPointSize(size float32) {
	r.pointSize = size
}

// Draw clears the canvas and renders every particle as a filled circle shaded by
// its brightness. Nothing but the background is drawn until the grid is ready.
func (r *GridRenderer) Draw(g *systems.Grid) {
	rl.ClearBackground(r.background)
	if !g.Ready() {
		return
	}

	particles := g.Particles()
	for i := range particles {
		p := &particles[i]
		v := uint8(p.Brightness)
		rl.DrawCircleV(rl.Vector2{X: p.Pos.X, Y: p.Pos.Y}, r.pointSize, rl.Color{R: v, G: v, B: v, A: 255})
	}
}
