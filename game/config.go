package game

import (
	"fmt"

	"github.com/esimmons/folio/config"
)

// Modes.
const (
	ModeSketch = "sketch"
	ModePage   = "page"
)

// Options holds run settings from the command line.
type Options struct {
	Mode     string
	Page     string // Layout name in page mode
	Image    string // Source bitmap in sketch mode, empty = config default
	AssetDir string // Root for page image sources

	Seed           int64
	Headless       bool
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
	SnapshotDir    string // Grid snapshots are saved here on bookmarks
	Restore        string // Grid snapshot to restore at startup
}

// Validate checks the mode and fills defaults from cfg.
func (o *Options) Validate(cfg *config.Config) error {
	switch o.Mode {
	case "":
		o.Mode = ModeSketch
	case ModeSketch, ModePage:
	default:
		return fmt.Errorf("unknown mode %q", o.Mode)
	}
	if o.Page == "" {
		o.Page = "home"
	}
	if o.Image == "" {
		o.Image = cfg.Sketch.Image
	}
	if o.AssetDir == "" {
		o.AssetDir = "."
	}
	if o.StatsWindowSec <= 0 {
		o.StatsWindowSec = cfg.Telemetry.StatsWindow
	}
	return nil
}

// WindowSize returns the window dimensions for the mode.
func (o Options) WindowSize(cfg *config.Config) (w, h int32) {
	if o.Mode == ModePage {
		return int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	}
	return int32(cfg.Sketch.Width), int32(cfg.Sketch.Height)
}
