// Package components defines ECS components for the floating background motes.
package components

// Position is a mote's location in canvas pixels.
type Position struct {
	X, Y float32
}

// Velocity is a mote's drift in pixels per frame.
type Velocity struct {
	X, Y float32
}

// Mote holds the appearance of one background particle.
type Mote struct {
	Size    float32 // radius in pixels
	Opacity float32 // pulses within the configured floor and ceiling
	Tint    uint8   // index into the configured tint palette
}
