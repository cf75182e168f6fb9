// Grid preview tool - interactive tuning of the particle grid forces with sliders.
//
// Usage: go run ./cmd/gridpreview [-config config.yaml] [-image image.png]
package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/geom"
	"github.com/esimmons/folio/renderer"
	"github.com/esimmons/folio/systems"
)

const panelWidth = 360

// slider binds one grid constant to a slider.
type slider struct {
	label    string
	min, max float32
	format   string
	value    *float64
	// Changes that only reach particles through a fresh Initialize
	rebuild bool
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	imagePath := flag.String("image", "", "Source image (empty = use config)")
	flag.Parse()

	config.MustInit(*configPath)
	cfg := config.Cfg()
	if *imagePath == "" {
		*imagePath = cfg.Sketch.Image
	}
	img, err := systems.LoadImage(*imagePath)
	if err != nil {
		slog.Error("image failed to load", "path", *imagePath, "error", err)
		os.Exit(1)
	}

	w, h := cfg.Sketch.Width, cfg.Sketch.Height
	rl.InitWindow(int32(w+panelWidth), int32(h), "Grid Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	defaults := cfg.Grid
	grid := systems.NewGrid(systems.GridParamsFromConfig(cfg), float32(w), float32(h), rand.New(rand.NewSource(1)))
	grid.Initialize(img)
	draw := renderer.NewGridRenderer(float32(cfg.Grid.PointSize), cfg.Sketch.Background)

	g := &cfg.Grid
	sliders := []slider{
		{label: "Influence radius", min: 10, max: 300, format: "%.0f", value: &g.InfluenceRadius, rebuild: true},
		{label: "Bounce factor", min: 0, max: 4, format: "%.2f", value: &g.BounceFactor, rebuild: true},
		{label: "Pointer force", min: 0, max: 10, format: "%.2f", value: &g.PointerForce},
		{label: "Lift max", min: 0, max: 10, format: "%.2f", value: &g.LiftMax},
		{label: "Lift damping", min: 0, max: 1, format: "%.2f", value: &g.LiftDamping},
		{label: "Spring", min: 0, max: 0.5, format: "%.3f", value: &g.Spring},
		{label: "Jitter", min: 0, max: 1, format: "%.3f", value: &g.Jitter},
		{label: "Damping", min: 0.5, max: 1, format: "%.3f", value: &g.Damping},
		{label: "Neighbor repulsion", min: 0, max: 2, format: "%.2f", value: &g.NeighborRepulsion},
		{label: "Point size", min: 0.5, max: 6, format: "%.1f", value: &g.PointSize},
	}

	paused := false
	for !rl.WindowShouldClose() {
		m := rl.GetMousePosition()
		pointer := geom.V(m.X, m.Y)
		if m.X >= float32(w) {
			// Over the panel
			pointer = geom.V(-1e6, -1e6)
		}
		if !paused {
			grid.Step(pointer)
		}

		rl.BeginDrawing()
		draw.Draw(grid)

		panelX := float32(w + 10)
		panelY := float32(10)
		gui.Panel(rl.Rectangle{X: float32(w), Y: 0, Width: panelWidth, Height: float32(h)}, "Grid Parameters")
		panelY += 30

		changed, rebuild := false, false
		for _, s := range sliders {
			gui.Label(rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 20, Height: 16}, s.label)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 90, Height: 20},
				"", fmt.Sprintf(s.format, *s.value),
				float32(*s.value), s.min, s.max,
			)
			if float64(v) != *s.value {
				*s.value = float64(v)
				changed = true
				rebuild = rebuild || s.rebuild
			}
			panelY += 30
		}

		if changed {
			apply(cfg, grid, draw, img, rebuild)
		}

		panelY += 10
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 100, Height: 30}, toggleText(paused, "Resume", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 110, Y: panelY, Width: 100, Height: 30}, "Rebuild") {
			grid.Initialize(img)
		}
		if gui.Button(rl.Rectangle{X: panelX + 220, Y: panelY, Width: 100, Height: 30}, "Reset All") {
			cfg.Grid = defaults
			apply(cfg, grid, draw, img, true)
		}

		gui.StatusBar(rl.Rectangle{X: float32(w), Y: float32(h - 22), Width: panelWidth, Height: 22},
			fmt.Sprintf("%dx%d  fps %d  C copies YAML", grid.Cols(), grid.Rows(), rl.GetFPS()))

		// Copy to clipboard on C key
		if rl.IsKeyPressed(rl.KeyC) {
			out, err := yaml.Marshal(map[string]config.GridConfig{"grid": cfg.Grid})
			if err != nil {
				slog.Error("failed to marshal grid config", "error", err)
			} else {
				rl.SetClipboardText(string(out))
			}
		}

		rl.EndDrawing()
	}
}

// apply pushes the edited grid config into the running grid.
func apply(cfg *config.Config, grid *systems.Grid, draw *renderer.GridRenderer, img image.Image, rebuild bool) {
	cfg.Derived.BounceRadius = cfg.Grid.Spacing * cfg.Grid.BounceFactor
	grid.SetParams(systems.GridParamsFromConfig(cfg))
	draw.SetPointSize(float32(cfg.Grid.PointSize))
	if rebuild {
		grid.Initialize(img)
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
