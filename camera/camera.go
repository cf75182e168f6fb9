// Package camera provides the scrolling viewport over a page.
package camera

import "github.com/esimmons/folio/geom"

// Camera is a window onto a page taller (or wider) than the screen.
// The page scrolls vertically; horizontally it is pinned to the left edge.
type Camera struct {
	// ScrollY is the page coordinate at the top of the viewport
	ScrollY float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Page dimensions
	PageW, PageH float32
}

// New creates a camera scrolled to the top of the page.
func New(viewportW, viewportH, pageW, pageH float32) *Camera {
	return &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		PageW:     pageW,
		PageH:     pageH,
	}
}

// WorldToScreen converts page coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	return wx, wy - c.ScrollY
}

// ScreenToWorld converts screen coordinates to page coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	return sx, sy + c.ScrollY
}

// RectToScreen converts a page rectangle to screen coordinates.
func (c *Camera) RectToScreen(r geom.Rect) geom.Rect {
	return r.Translate(geom.V(0, -c.ScrollY))
}

// VisibleRect returns the page-coordinate rectangle currently on screen.
func (c *Camera) VisibleRect() geom.Rect {
	return geom.R(0, c.ScrollY, c.ViewportW, c.ViewportH)
}

// IsVisible reports whether any part of r is on screen.
func (c *Camera) IsVisible(r geom.Rect) bool {
	return !c.VisibleRect().Intersect(r).Empty()
}

// MaxScroll returns the largest scroll offset that keeps the viewport on the page.
func (c *Camera) MaxScroll() float32 {
	return max(0, c.PageH-c.ViewportH)
}

// ScrollBy moves the viewport by dy page pixels, clamped to the page.
// Returns true if the offset changed.
func (c *Camera) ScrollBy(dy float32) bool {
	return c.ScrollTo(c.ScrollY + dy)
}

// ScrollTo sets the scroll offset, clamped to the page.
// Returns true if the offset changed.
func (c *Camera) ScrollTo(y float32) bool {
	y = geom.Clamp(y, 0, c.MaxScroll())
	if y == c.ScrollY {
		return false
	}
	c.ScrollY = y
	return true
}

// Resize updates viewport dimensions and re-clamps the scroll offset.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.ScrollTo(c.ScrollY)
}
