package game

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/geom"
	"github.com/esimmons/folio/renderer"
	"github.com/esimmons/folio/systems"
	"github.com/esimmons/folio/telemetry"
)

// Headless pointer sweep: a circle around the canvas center.
const (
	sweepRadius = 150
	sweepPeriod = 240 // frames per revolution
)

// Sketch runs the image-driven particle grid.
type Sketch struct {
	cfg      *config.Config
	opts     Options
	grid     *systems.Grid
	renderer *renderer.GridRenderer
	rec      *recorder

	width, height float32
	pointer       geom.Vec2
	frame         int32
	paused        bool

	disp, speed []float64 // Reused telemetry buffers
}

// NewSketch creates the sketch and loads its source image. A missing or
// undecodable image is logged and leaves the grid empty.
func NewSketch(cfg *config.Config, opts Options) (*Sketch, error) {
	rec, err := newRecorder(cfg, opts)
	if err != nil {
		return nil, fmt.Errorf("setting up telemetry: %w", err)
	}

	s := &Sketch{
		cfg:    cfg,
		opts:   opts,
		width:  cfg.Derived.SketchW32,
		height: cfg.Derived.SketchH32,
		rec:    rec,
		// Far away until the pointer is first read
		pointer: geom.V(-1e6, -1e6),
	}
	s.grid = systems.NewGrid(systems.GridParamsFromConfig(cfg), s.width, s.height, rand.New(rand.NewSource(opts.Seed)))
	if !opts.Headless {
		s.renderer = renderer.NewGridRenderer(float32(cfg.Grid.PointSize), cfg.Sketch.Background)
	}
	rec.onBookmark = s.saveSnapshot

	s.load()
	if opts.Restore != "" && s.grid.Ready() {
		snap, err := telemetry.LoadSnapshot(opts.Restore)
		if err == nil {
			err = snap.Restore(s.grid)
		}
		if err != nil {
			slog.Error("failed to restore snapshot", "path", opts.Restore, "error", err)
		} else {
			slog.Info("snapshot restored", "path", opts.Restore, "frame", snap.Frame)
		}
	}
	return s, nil
}

func (s *Sketch) load() {
	img, err := systems.LoadImage(s.opts.Image)
	if err != nil {
		slog.Error("image failed to load", "path", s.opts.Image, "error", err)
		return
	}
	s.grid.Initialize(img)
	slog.Info("grid initialized",
		"image", s.opts.Image,
		"cols", s.grid.Cols(),
		"rows", s.grid.Rows(),
	)
}

// Grid returns the particle grid.
func (s *Sketch) Grid() *systems.Grid { return s.grid }

// Frame returns the number of frames stepped.
func (s *Sketch) Frame() int32 { return s.frame }

// Update reads input and steps the grid once. The perf step ends in Draw.
func (s *Sketch) Update() {
	s.rec.perf.StartStep()
	s.rec.perf.StartPhase(telemetry.PhaseInput)
	s.handleInput()
	if !s.paused {
		s.step()
	}
}

// UpdateHeadless steps the grid with the pointer sweeping a circle.
func (s *Sketch) UpdateHeadless() {
	s.rec.perf.StartStep()
	s.rec.perf.StartPhase(telemetry.PhaseInput)
	a := 2 * math.Pi * float64(s.frame%sweepPeriod) / sweepPeriod
	s.pointer = geom.V(
		s.width/2+sweepRadius*float32(math.Cos(a)),
		s.height/2+sweepRadius*float32(math.Sin(a)),
	)
	s.rec.collector.RecordPointer()
	s.step()
	s.rec.perf.EndStep()
}

func (s *Sketch) step() {
	s.rec.perf.StartPhase(telemetry.PhaseGrid)
	s.grid.Step(s.pointer)
	s.frame++

	s.rec.perf.StartPhase(telemetry.PhaseTelemetry)
	s.rec.flush(s.frame, s.sample)
}

func (s *Sketch) sample() telemetry.Sample {
	s.disp, s.speed = s.grid.Sample(s.disp[:0], s.speed[:0])
	return telemetry.Sample{Disp: s.disp, Speed: s.speed}
}

func (s *Sketch) handleInput() {
	m := rl.GetMousePosition()
	s.pointer = geom.V(m.X, m.Y)
	if m.X >= 0 && m.Y >= 0 && m.X < s.width && m.Y < s.height {
		s.rec.collector.RecordPointer()
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		s.rec.collector.RecordClick()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		s.paused = !s.paused
		s.rec.collector.RecordKey()
	}
	// Reload the image and rebuild the grid at rest
	if rl.IsKeyPressed(rl.KeyR) {
		s.load()
		s.rec.collector.RecordKey()
	}
}

// Draw renders the grid and the status bar.
func (s *Sketch) Draw() {
	s.rec.perf.RecordFrame()
	s.rec.perf.StartPhase(telemetry.PhaseDraw)

	rl.BeginDrawing()
	s.renderer.Draw(s.grid)

	status := fmt.Sprintf("frame %d  fps %d", s.frame, rl.GetFPS())
	if !s.grid.Ready() {
		status += "  no image"
	}
	if s.paused {
		status += "  PAUSED"
	}
	drawStatus(status, s.width, s.height)
	rl.EndDrawing()
	s.rec.perf.EndStep()
}

func (s *Sketch) saveSnapshot(bm *telemetry.Bookmark) {
	if s.opts.SnapshotDir == "" || !s.grid.Ready() {
		return
	}
	snap := telemetry.NewSnapshot(s.grid, s.frame, s.opts.Seed, s.opts.Image, bm)
	path, err := telemetry.SaveSnapshot(snap, s.opts.SnapshotDir)
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "frame", s.frame)
}

// Unload releases resources and closes output files.
func (s *Sketch) Unload() {
	s.rec.close()
}
