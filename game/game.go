// Package game runs the particle sketch and the page effects in a raylib window
// or headless.
package game

import (
	"github.com/esimmons/folio/config"
)

// Driver is one runnable mode.
type Driver interface {
	// Update reads window input and advances one frame.
	Update()
	// UpdateHeadless advances one frame with scripted input and no window.
	UpdateHeadless()
	// Draw renders the current frame. Only valid with a window open.
	Draw()
	// Frame returns the number of frames advanced.
	Frame() int32
	// Unload releases resources and closes output files.
	Unload()
}

// New creates the driver for opts.Mode. opts must have been validated.
func New(cfg *config.Config, opts Options) (Driver, error) {
	if opts.Mode == ModePage {
		return NewPage(cfg, opts)
	}
	return NewSketch(cfg, opts)
}
