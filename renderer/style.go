// Package renderer draws the particle sketch and the page effects with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
)

// Page palette.
var (
	colorPage     = colorful.MustParseHex("#0F1115")
	colorPanel    = colorful.MustParseHex("#1B1F27")
	colorPanelHot = colorful.MustParseHex("#262C38")
	colorText     = colorful.MustParseHex("#E6E9EF")
	colorMuted    = colorful.MustParseHex("#7F8C8D")
	colorAccent   = colorful.MustParseHex("#4A90E2")
	colorTrack    = colorful.MustParseHex("#3A3F4B")
	colorCar      = colorful.MustParseHex("#E74C3C")
)

// toRL converts a color and an opacity in [0, 1] to a raylib color.
func toRL(c colorful.Color, alpha float32) rl.Color {
	r, g, b := c.Clamped().RGB255()
	if alpha < 0 {
		alpha = 0
	} else if alpha > 1 {
		alpha = 1
	}
	return rl.Color{R: r, G: g, B: b, A: uint8(alpha * 255)}
}

// hover lightens c for elements under the pointer.
func hover(c colorful.Color) colorful.Color {
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.08)
}
