package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/esimmons/folio/camera"
	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/page"
	"github.com/esimmons/folio/renderer"
	"github.com/esimmons/folio/telemetry"
)

// Headless scrolling: down and back up at a steady rate.
const headlessScrollStep = 4

// Page runs the page effects on one layout.
type Page struct {
	cfg      *config.Config
	opts     Options
	ctrl     *page.Controller
	cam      *camera.Camera
	renderer *renderer.PageRenderer
	rec      *recorder

	frame     int32
	frameTime time.Duration
	scrollDir float32

	// Last pointer state, for diffing input
	pointer     rl.Vector2
	hidden      bool
	screenW     int32
	screenH     int32
	lightboxWas bool
}

// NewPage loads the layout and sets up its features.
func NewPage(cfg *config.Config, opts Options) (*Page, error) {
	doc, err := page.LoadLayout(opts.Page)
	if err != nil {
		return nil, err
	}

	w, h := opts.WindowSize(cfg)
	cam := camera.New(float32(w), float32(h), doc.Width, doc.Height)
	ctrl, err := page.New(doc, cfg, cam, rand.New(rand.NewSource(opts.Seed)))
	if err != nil {
		return nil, err
	}

	rec, err := newRecorder(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("setting up telemetry: %w", err)
	}

	p := &Page{
		cfg:       cfg,
		opts:      opts,
		ctrl:      ctrl,
		cam:       cam,
		rec:       rec,
		frameTime: time.Second / time.Duration(max(cfg.Screen.TargetFPS, 1)),
		scrollDir: 1,
		screenW:   w,
		screenH:   h,
		pointer:   rl.Vector2{X: -1, Y: -1},
	}
	if !opts.Headless {
		p.renderer = renderer.NewPageRenderer(opts.AssetDir, cfg.Derived.Tints)
	}

	slog.Info("page loaded", "layout", opts.Page, "title", doc.Title, "features", ctrl.FeatureNames())
	return p, nil
}

// Controller returns the page controller.
func (p *Page) Controller() *page.Controller { return p.ctrl }

// Frame returns the number of frames run.
func (p *Page) Frame() int32 { return p.frame }

// Update translates window input into page events and advances one frame.
// The perf step ends in Draw.
func (p *Page) Update() {
	p.rec.perf.StartStep()
	p.rec.perf.StartPhase(telemetry.PhaseInput)
	p.handleInput()
	p.advance(time.Duration(rl.GetTime() * float64(time.Second)))
}

// UpdateHeadless advances one frame of fixed length, scrolling the page down
// and back up.
func (p *Page) UpdateHeadless() {
	p.rec.perf.StartStep()
	p.rec.perf.StartPhase(telemetry.PhaseInput)
	p.scroll(page.ScrollBy{DY: p.scrollDir * headlessScrollStep})
	if y := p.cam.ScrollY; y >= p.cam.MaxScroll() || y <= 0 {
		p.scrollDir = -p.scrollDir
	}
	p.advance(time.Duration(p.frame+1) * p.frameTime)
	p.rec.perf.EndStep()
}

func (p *Page) advance(now time.Duration) {
	p.rec.perf.StartPhase(telemetry.PhasePage)
	p.ctrl.Frame(now)
	p.frame++

	if lb := p.ctrl.Lightbox(); lb != nil && lb.Open() != p.lightboxWas {
		p.lightboxWas = lb.Open()
		slog.Debug("lightbox", "open", p.lightboxWas, "src", lb.Image().Src)
	}

	p.rec.perf.StartPhase(telemetry.PhaseTelemetry)
	p.rec.flush(p.frame, p.sample)
}

// sample reads the page state at the end of a stats window.
func (p *Page) sample() telemetry.Sample {
	var s telemetry.Sample
	if bg := p.ctrl.Background(); bg != nil {
		s.Motes = bg.Field().Count()
		p.rec.perf.StartPhase(telemetry.PhaseLinks)
		s.Links = len(bg.Field().Links())
		p.rec.perf.StartPhase(telemetry.PhaseTelemetry)
	}
	if t := p.ctrl.Track(); t != nil {
		s.TrackCycles = t.Cycles()
		s.TrackProgress = t.Progress()
	}
	if r := p.ctrl.Reveal(); r != nil {
		s.RevealTargets = len(r.Targets())
		for _, e := range r.Targets() {
			if r.Revealed(e) {
				s.Revealed++
			}
		}
	}
	if lb := p.ctrl.Lightbox(); lb != nil {
		s.LightboxOpen = lb.Open()
	}
	return s
}

// Draw renders the page and the status bar.
func (p *Page) Draw() {
	p.rec.perf.RecordFrame()
	p.rec.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	p.renderer.Draw(p.ctrl)
	drawStatus(p.status(), float32(p.screenW), float32(p.screenH))
	rl.EndDrawing()
	p.rec.perf.EndStep()
}

func (p *Page) status() string {
	s := fmt.Sprintf("%s  scroll %.0f/%.0f  fps %d", p.opts.Page, p.cam.ScrollY, p.cam.MaxScroll(), rl.GetFPS())
	if t := p.ctrl.Track(); t != nil {
		s += fmt.Sprintf("  track %s %.0f%%", t.State(), t.Progress()*100)
	}
	if bg := p.ctrl.Background(); bg != nil {
		s += fmt.Sprintf("  motes %d links %d", bg.Field().Count(), p.renderer.Motes().Links())
	}
	return s
}

// Unload releases textures and closes output files.
func (p *Page) Unload() {
	if p.renderer != nil {
		p.renderer.Unload()
	}
	p.rec.close()
}
