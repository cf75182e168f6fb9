package page

import "github.com/esimmons/folio/geom"

// Event is an input delivered to the page controller.
type Event interface {
	isEvent()
}

// KeyEscape is the Key value of the escape key.
const KeyEscape = "Escape"

// Click is a primary-button click. Target is the hit element, nil over empty space.
type Click struct {
	Target *Element
	Point  geom.Vec2 // Screen coordinates
}

// KeyDown is a key press. Key uses DOM key names ("Escape", "a", ...).
type KeyDown struct {
	Key string
}

// PointerMove reports the pointer position and the element under it.
type PointerMove struct {
	Point  geom.Vec2 // Screen coordinates
	Target *Element
}

// PointerEnter is sent when the pointer moves onto Target or one of its descendants.
type PointerEnter struct {
	Target *Element
}

// PointerLeave is sent when the pointer leaves Target and all of its descendants.
type PointerLeave struct {
	Target *Element
}

// VisibilityChange reports the window being hidden (minimized, unfocused) or shown.
type VisibilityChange struct {
	Hidden bool
}

// Resize reports a new viewport size.
type Resize struct {
	Width, Height float32
}

// Scroll reports a new vertical scroll offset.
type Scroll struct {
	Y float32
}

// ScrollBy moves the scroll offset by DY. Features receive it as a Scroll to
// the clamped result.
type ScrollBy struct {
	DY float32
}

func (Click) isEvent()            {}
func (KeyDown) isEvent()          {}
func (PointerMove) isEvent()      {}
func (PointerEnter) isEvent()     {}
func (PointerLeave) isEvent()     {}
func (VisibilityChange) isEvent() {}
func (Resize) isEvent()           {}
func (Scroll) isEvent()           {}
func (ScrollBy) isEvent()         {}
