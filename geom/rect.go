package geom

// Rect is an axis-aligned rectangle; X, Y is the top-left corner.
type Rect struct {
	X, Y, W, H float32
}

// R creates a Rect.
func R(x, y, w, h float32) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Area returns the rectangle area, zero for empty rectangles.
func (r Rect) Area() float32 {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r (edges inclusive on the top-left).
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Intersect returns the overlap of r and o. The result is empty when they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Inset grows r outward by the given margins (negative values shrink it),
// following CSS margin order: top, right, bottom, left.
func (r Rect) Inset(top, right, bottom, left float32) Rect {
	return Rect{
		X: r.X - left,
		Y: r.Y - top,
		W: r.W + left + right,
		H: r.H + top + bottom,
	}
}

// Center returns the rectangle center.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{X: r.X + d.X, Y: r.Y + d.Y, W: r.W, H: r.H}
}
