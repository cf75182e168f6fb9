package renderer

import (
	"log/slog"
	"path/filepath"
	"slices"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/esimmons/folio/camera"
	"github.com/esimmons/folio/geom"
	"github.com/esimmons/folio/page"
)

// Text sizes.
const (
	titleSize = 40
	bodySize  = 20
	smallSize = 16
)

// PageRenderer draws a page document and the state of its features.
type PageRenderer struct {
	assetDir string
	motes    *MoteRenderer
	textures map[string]rl.Texture2D
	failed   map[string]bool
}

// NewPageRenderer creates a page renderer. Image sources are resolved against assetDir.
func NewPageRenderer(assetDir string, tints []colorful.Color) *PageRenderer {
	return &PageRenderer{
		assetDir: assetDir,
		motes:    NewMoteRenderer(tints),
		textures: make(map[string]rl.Texture2D),
		failed:   make(map[string]bool),
	}
}

// Motes returns the renderer used for the background canvas.
func (r *PageRenderer) Motes() *MoteRenderer { return r.motes }

// Draw renders the whole page: background canvas, scrolled content, the track
// animation, and fixed elements on top.
func (r *PageRenderer) Draw(c *page.Controller) {
	rl.ClearBackground(toRL(colorPage, 1))
	doc := c.Document()
	cam := c.Camera()

	if bg := c.Background(); bg != nil && doc.Displayed(bg.Canvas()) {
		b := bg.Canvas().Bounds
		r.motes.Draw(bg.Field(), geom.V(b.X, b.Y))
	}

	for _, e := range doc.Elements() {
		if !e.Fixed && cam.IsVisible(e.Bounds) && doc.Displayed(e) {
			r.drawElement(c, e, cam.RectToScreen(e.Bounds))
		}
	}
	if t := c.Track(); t != nil && cam.IsVisible(t.SVG().Bounds) {
		r.drawTrack(t, cam)
	}
	for _, e := range doc.Elements() {
		if e.Fixed && doc.Displayed(e) {
			r.drawElement(c, e, e.Bounds)
		}
	}
}

// reveal returns the fade and slide of e, inherited from the nearest observed ancestor.
func reveal(c *page.Controller, e *page.Element) (alpha, slide float32) {
	r := c.Reveal()
	if r == nil {
		return 1, 0
	}
	targets := r.Targets()
	doc := c.Document()
	for n := e; n != nil; n = doc.ParentOf(n) {
		if slices.Contains(targets, n) {
			return r.Opacity(n, c.Now()), r.Offset(n, c.Now())
		}
	}
	return 1, 0
}

// drawElement draws e into its screen rectangle.
func (r *PageRenderer) drawElement(c *page.Controller, e *page.Element, screen geom.Rect) {
	alpha, slide := reveal(c, e)
	if alpha <= 0 {
		return
	}
	b := screen.Translate(geom.V(0, slide))
	rect := rl.Rectangle{X: b.X, Y: b.Y, Width: b.W, Height: b.H}
	hot := c.Hovered(e)

	switch {
	case e.HasClass("background-canvas"), e.HasClass("circuit-svg"),
		e.ID == "racing-track-path", e.ID == "progressive-track", e.ID == "racing-car":
		// Drawn by the background and track passes
		return

	case e.HasClass("navbar"):
		rl.DrawRectangleRec(rect, toRL(colorPanel, 0.95))

	case e.HasClass("nav-toggle"):
		r.drawToggle(rect, e.HasClass(page.ActiveClass))
		return

	case e.HasClass("nav-menu"):
		if !e.HasClass(page.ActiveClass) {
			return
		}
		rl.DrawRectangleRec(rect, toRL(colorPanelHot, 1))

	case e.HasClass("nav-link"):
		if menu := c.Document().ParentOf(e); menu != nil && !menu.HasClass(page.ActiveClass) {
			return
		}
		col := colorText
		if hot {
			col = colorAccent
		}
		drawCentered(e.Text, rect, bodySize, toRL(col, 1))
		return

	case e.HasClass("lightbox"):
		rl.DrawRectangleRec(rect, rl.Color{A: 230})
		return

	case e.HasClass("lightbox-img"):
		r.drawImage(e.Src, rect, 1)
		gui.Label(rl.Rectangle{X: rect.X, Y: rect.Y + rect.Height + 8, Width: rect.Width, Height: 24}, e.Src)
		return

	case e.HasClass("close"):
		drawCross(rect, toRL(colorText, 1))
		return

	case e.HasClass("gallery-item"):
		r.drawImage(e.Src, rect, alpha)
		if hot {
			rl.DrawRectangleLinesEx(rect, 2, toRL(colorAccent, alpha))
		}
		return

	case e.ID == "animation-text":
		if !e.HasClass(page.ShowClass) {
			return
		}
		drawCentered(e.Text, rect, bodySize, toRL(colorMuted, 1))
		return

	case e.HasClass("project-btn"), e.HasClass("skill-category"):
		col := colorPanel
		if hot {
			col = hover(col)
		}
		rl.DrawRectangleRounded(rect, 0.08, 8, toRL(col, alpha))
		rl.DrawText(e.Text, int32(rect.X+20), int32(rect.Y+20), bodySize, toRL(colorText, alpha))
		return
	}

	if e.Text != "" {
		size := int32(bodySize)
		if e.HasClass("hero-title") {
			size = titleSize
		} else if e.HasClass("nav-logo") || e.HasClass("footer") {
			size = smallSize
		}
		rl.DrawText(e.Text, int32(rect.X), int32(rect.Y), size, toRL(colorText, alpha))
	}
}

func (r *PageRenderer) drawToggle(rect rl.Rectangle, active bool) {
	col := toRL(colorText, 1)
	if active {
		drawCross(rect, col)
		return
	}
	for i := 0; i < 3; i++ {
		y := rect.Y + rect.Height*float32(i+1)/4
		rl.DrawLineEx(rl.Vector2{X: rect.X + 6, Y: y}, rl.Vector2{X: rect.X + rect.Width - 6, Y: y}, 3, col)
	}
}

// drawTrack renders the circuit, the drawn part of the progressive track and the car,
// scaled about the svg center.
func (r *PageRenderer) drawTrack(t *page.Track, cam *camera.Camera) {
	svg := t.SVG().Bounds
	center := cam.RectToScreen(svg).Center()
	scale := t.Scale()
	toScreen := func(p geom.Vec2) rl.Vector2 {
		at := geom.V(cam.WorldToScreen(svg.X+p.X, svg.Y+p.Y))
		s := center.Add(at.Sub(center).Scale(scale))
		return rl.Vector2{X: s.X, Y: s.Y}
	}

	drawPolyline(t.BasePath().Points(), toScreen, 8*scale, toRL(colorTrack, 1))
	drawPolyline(t.Path().Prefix(t.Drawn()), toScreen, 4*scale, toRL(colorAccent, 1))

	pos, deg := t.Car()
	w, h := t.CarSize()
	at := toScreen(pos)
	rl.DrawRectanglePro(
		rl.Rectangle{X: at.X, Y: at.Y, Width: w * scale, Height: h * scale},
		rl.Vector2{X: w * scale / 2, Y: h * scale / 2},
		deg,
		toRL(colorCar, 1),
	)
}

func drawPolyline(pts []geom.Vec2, toScreen func(geom.Vec2) rl.Vector2, thick float32, col rl.Color) {
	for i := 1; i < len(pts); i++ {
		rl.DrawLineEx(toScreen(pts[i-1]), toScreen(pts[i]), thick, col)
	}
}

func drawCross(rect rl.Rectangle, col rl.Color) {
	pad := rect.Width / 4
	rl.DrawLineEx(rl.Vector2{X: rect.X + pad, Y: rect.Y + pad}, rl.Vector2{X: rect.X + rect.Width - pad, Y: rect.Y + rect.Height - pad}, 3, col)
	rl.DrawLineEx(rl.Vector2{X: rect.X + rect.Width - pad, Y: rect.Y + pad}, rl.Vector2{X: rect.X + pad, Y: rect.Y + rect.Height - pad}, 3, col)
}

func drawCentered(text string, rect rl.Rectangle, size int32, col rl.Color) {
	w := rl.MeasureText(text, size)
	rl.DrawText(text, int32(rect.X+rect.Width/2)-w/2, int32(rect.Y+rect.Height/2)-size/2, size, col)
}

// drawImage draws the texture for src fitted into rect, or a placeholder if it
// cannot be loaded.
func (r *PageRenderer) drawImage(src string, rect rl.Rectangle, alpha float32) {
	tex, ok := r.texture(src)
	if !ok {
		rl.DrawRectangleRec(rect, toRL(colorPanel, alpha))
		drawCentered(filepath.Base(src), rect, smallSize, toRL(colorMuted, alpha))
		return
	}
	srcRect := rl.Rectangle{Width: float32(tex.Width), Height: float32(tex.Height)}
	rl.DrawTexturePro(tex, srcRect, rect, rl.Vector2{}, 0, rl.Color{R: 255, G: 255, B: 255, A: uint8(alpha * 255)})
}

// texture loads src on first use. Failures are logged once.
func (r *PageRenderer) texture(src string) (rl.Texture2D, bool) {
	if src == "" || r.failed[src] {
		return rl.Texture2D{}, false
	}
	if tex, ok := r.textures[src]; ok {
		return tex, true
	}
	path := filepath.Join(r.assetDir, src)
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		slog.Warn("image failed to load", "path", path)
		r.failed[src] = true
		return rl.Texture2D{}, false
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	r.textures[src] = tex
	return tex, true
}

// Unload frees loaded textures.
func (r *PageRenderer) Unload() {
	for src, tex := range r.textures {
		rl.UnloadTexture(tex)
		delete(r.textures, src)
	}
}
