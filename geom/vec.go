// Package geom provides the small amount of 2D geometry the effects need:
// a vector value type, rectangles, and flattened SVG paths.
package geom

import "math"

// Vec2 is a 2D vector with value semantics.
type Vec2 struct {
	X, Y float32
}

// V creates a Vec2.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

// Sub returns v - w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// MagSq returns the squared magnitude.
func (v Vec2) MagSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Mag returns the magnitude.
func (v Vec2) Mag() float32 {
	return float32(math.Sqrt(float64(v.MagSq())))
}

// Normalize returns the unit vector in the direction of v.
// The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	m := v.Mag()
	if m == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / m, Y: v.Y / m}
}

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float32 {
	return v.Sub(w).Mag()
}

// Angle returns the direction of v in radians.
func (v Vec2) Angle() float32 {
	return float32(math.Atan2(float64(v.Y), float64(v.X)))
}

// Lerp interpolates between v and w.
func (v Vec2) Lerp(w Vec2, t float32) Vec2 {
	return Vec2{X: v.X + (w.X-v.X)*t, Y: v.Y + (w.Y-v.Y)*t}
}

// Sq returns x*x.
func Sq(x float32) float32 {
	return x * x
}

// Map linearly re-maps v from [inMin, inMax] to [outMin, outMax] without clamping.
func Map(v, inMin, inMax, outMin, outMax float32) float32 {
	return outMin + (v-inMin)/(inMax-inMin)*(outMax-outMin)
}

// Clamp clamps v between lo and hi.
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * 180 / math.Pi
}
