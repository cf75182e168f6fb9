package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/esimmons/folio/geom"
	"github.com/esimmons/folio/page"
)

// Scroll distances in page pixels.
const (
	wheelScroll = 60
	keyScroll   = 40
)

// keyNames maps the keys the page reacts to onto their DOM names.
var keyNames = map[int32]string{
	rl.KeyEscape:   page.KeyEscape,
	rl.KeyEnter:    "Enter",
	rl.KeySpace:    " ",
	rl.KeyTab:      "Tab",
	rl.KeyUp:       "ArrowUp",
	rl.KeyDown:     "ArrowDown",
	rl.KeyPageUp:   "PageUp",
	rl.KeyPageDown: "PageDown",
	rl.KeyHome:     "Home",
	rl.KeyEnd:      "End",
}

// handleInput turns window input into page events.
func (p *Page) handleInput() {
	p.handleResize()
	p.handleVisibility()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	m := rl.GetMousePosition()
	pt := geom.V(m.X, m.Y)
	if m != p.pointer {
		p.pointer = m
		p.ctrl.Dispatch(page.PointerMove{Point: pt, Target: p.hit(pt)})
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		p.ctrl.Dispatch(page.Click{Target: p.hit(pt), Point: pt})
		p.rec.collector.RecordClick()
	}

	for key, name := range keyNames {
		if rl.IsKeyPressed(key) {
			p.ctrl.Dispatch(page.KeyDown{Key: name})
			p.rec.collector.RecordKey()
		}
	}
	p.handleScrollInput()
}

func (p *Page) hit(pt geom.Vec2) *page.Element {
	return p.ctrl.Document().HitTest(pt, p.cam)
}

// handleScrollInput scrolls with the wheel and the usual navigation keys.
func (p *Page) handleScrollInput() {
	if rl.IsKeyPressed(rl.KeyHome) {
		p.scroll(page.Scroll{Y: 0})
		return
	}
	if rl.IsKeyPressed(rl.KeyEnd) {
		p.scroll(page.Scroll{Y: p.cam.MaxScroll()})
		return
	}

	var dy float32
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		dy -= wheel * wheelScroll
	}
	if rl.IsKeyDown(rl.KeyDown) {
		dy += keyScroll
	}
	if rl.IsKeyDown(rl.KeyUp) {
		dy -= keyScroll
	}
	if rl.IsKeyPressed(rl.KeyPageDown) || rl.IsKeyPressed(rl.KeySpace) {
		dy += p.cam.ViewportH * 0.9
	}
	if rl.IsKeyPressed(rl.KeyPageUp) {
		dy -= p.cam.ViewportH * 0.9
	}
	if dy != 0 {
		p.scroll(page.ScrollBy{DY: dy})
	}
}

// scroll dispatches a Scroll or ScrollBy event and counts it if the offset moved.
func (p *Page) scroll(ev page.Event) {
	before := p.cam.ScrollY
	p.ctrl.Dispatch(ev)
	if p.cam.ScrollY != before {
		p.rec.collector.RecordScroll()
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (p *Page) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w == p.screenW && h == p.screenH {
		return
	}
	p.screenW, p.screenH = w, h
	p.ctrl.Dispatch(page.Resize{Width: float32(w), Height: float32(h)})
}

// handleVisibility reports minimizing and restoring the window as visibility changes.
func (p *Page) handleVisibility() {
	hidden := rl.IsWindowMinimized() || rl.IsWindowHidden()
	if hidden != p.hidden {
		p.hidden = hidden
		p.ctrl.Dispatch(page.VisibilityChange{Hidden: hidden})
	}
}
