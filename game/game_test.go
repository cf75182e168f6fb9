package game

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/esimmons/folio/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

// writeGradient writes a small horizontal gradient PNG and returns its path.
func writeGradient(t *testing.T) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 32, 32))
	for x := 0; x < 32; x++ {
		for y := 0; y < 32; y++ {
			img.SetGray(x, y, color.Gray{Y: uint8(x * 8)})
		}
	}
	path := filepath.Join(t.TempDir(), "gradient.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func headlessOptions(t *testing.T, cfg *config.Config, mode string) Options {
	t.Helper()
	opts := Options{Mode: mode, Seed: 1, Headless: true, StatsWindowSec: 1}
	if err := opts.Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return opts
}

func TestOptionsValidate(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		name    string
		opts    Options
		want    Options
		wantErr bool
	}{
		{
			name: "defaults",
			opts: Options{},
			want: Options{Mode: ModeSketch, Page: "home", Image: cfg.Sketch.Image, AssetDir: ".", StatsWindowSec: cfg.Telemetry.StatsWindow},
		},
		{
			name: "explicit",
			opts: Options{Mode: ModePage, Page: "about", Image: "x.png", AssetDir: "site", StatsWindowSec: 2},
			want: Options{Mode: ModePage, Page: "about", Image: "x.png", AssetDir: "site", StatsWindowSec: 2},
		},
		{
			name:    "unknown mode",
			opts:    Options{Mode: "gallery"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.opts != tt.want {
				t.Errorf("Validate = %+v, want %+v", tt.opts, tt.want)
			}
		})
	}
}

func TestOptionsWindowSize(t *testing.T) {
	cfg := testConfig(t)

	w, h := Options{Mode: ModeSketch}.WindowSize(cfg)
	if int(w) != cfg.Sketch.Width || int(h) != cfg.Sketch.Height {
		t.Errorf("sketch window = %dx%d, want %dx%d", w, h, cfg.Sketch.Width, cfg.Sketch.Height)
	}
	w, h = Options{Mode: ModePage}.WindowSize(cfg)
	if int(w) != cfg.Screen.Width || int(h) != cfg.Screen.Height {
		t.Errorf("page window = %dx%d, want %dx%d", w, h, cfg.Screen.Width, cfg.Screen.Height)
	}
}

func TestSketchHeadless(t *testing.T) {
	cfg := testConfig(t)
	opts := headlessOptions(t, cfg, ModeSketch)
	opts.Image = writeGradient(t)
	opts.OutputDir = t.TempDir()

	d, err := New(cfg, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, ok := d.(*Sketch)
	if !ok {
		t.Fatalf("New returned %T, want *Sketch", d)
	}
	if !s.Grid().Ready() {
		t.Fatal("grid not ready after loading image")
	}

	for i := 0; i < 120; i++ {
		d.UpdateHeadless()
	}
	if d.Frame() != 120 {
		t.Errorf("Frame = %d, want 120", d.Frame())
	}

	moved := false
	for _, p := range s.Grid().Particles() {
		if p.Pos != p.Origin {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("no particle moved after 120 frames")
	}
	d.Unload()

	data, err := os.ReadFile(filepath.Join(opts.OutputDir, "grid_stats.csv"))
	if err != nil {
		t.Fatalf("reading stats: %v", err)
	}
	// Header plus one row per one-second window
	if lines := bytes.Count(data, []byte("\n")); lines != 3 {
		t.Errorf("grid_stats.csv has %d lines, want 3", lines)
	}
}

func TestSketchMissingImage(t *testing.T) {
	cfg := testConfig(t)
	opts := headlessOptions(t, cfg, ModeSketch)
	opts.Image = filepath.Join(t.TempDir(), "missing.png")

	s, err := NewSketch(cfg, opts)
	if err != nil {
		t.Fatalf("NewSketch: %v", err)
	}
	defer s.Unload()

	if s.Grid().Ready() {
		t.Fatal("grid ready without an image")
	}
	for i := 0; i < 10; i++ {
		s.UpdateHeadless()
	}
	if len(s.Grid().Particles()) != 0 {
		t.Errorf("grid has %d particles, want 0", len(s.Grid().Particles()))
	}
}

func TestPageHeadlessScrolls(t *testing.T) {
	cfg := testConfig(t)
	opts := headlessOptions(t, cfg, ModePage)

	p, err := NewPage(cfg, opts)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	defer p.Unload()

	for i := 0; i < 50; i++ {
		p.UpdateHeadless()
	}
	if got := p.Controller().Camera().ScrollY; got != 50*headlessScrollStep {
		t.Errorf("ScrollY = %v, want %v", got, 50*headlessScrollStep)
	}
	if p.Controller().Track() == nil {
		t.Fatal("home page has no track")
	}
	if p.Controller().Track().Progress() <= 0 {
		t.Error("track did not advance")
	}
}

func TestPageUnknownLayout(t *testing.T) {
	cfg := testConfig(t)
	opts := headlessOptions(t, cfg, ModePage)
	opts.Page = "missing"

	if _, err := NewPage(cfg, opts); err == nil {
		t.Error("NewPage with unknown layout succeeded")
	}
}
