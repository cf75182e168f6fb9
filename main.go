package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	mode := flag.String("mode", game.ModeSketch, "What to run: sketch or page")
	pageName := flag.String("page", "home", "Page layout in page mode")
	image := flag.String("image", "", "Source image for the sketch (empty = use config)")
	assetDir := flag.String("asset-dir", ".", "Directory page image sources are relative to")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for grid snapshot files")
	restore := flag.String("restore", "", "Grid snapshot to restore at startup")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	verbose := flag.Bool("v", false, "Debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Mode:           *mode,
		Page:           *pageName,
		Image:          *image,
		AssetDir:       *assetDir,
		Seed:           rngSeed,
		Headless:       *headless,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		SnapshotDir:    *snapshotDir,
		Restore:        *restore,
	}
	if err := opts.Validate(cfg); err != nil {
		slog.Error("invalid options", "error", err)
		os.Exit(1)
	}

	if *headless {
		if err := run(cfg, opts, *maxFrames); err != nil {
			slog.Error("failed to start", "mode", opts.Mode, "error", err)
			os.Exit(1)
		}
		return
	}

	w, h := opts.WindowSize(cfg)
	if opts.Mode == game.ModePage {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(w, h, windowTitle(opts))
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	if err := run(cfg, opts, *maxFrames); err != nil {
		slog.Error("failed to start", "mode", opts.Mode, "error", err)
	}
}

func run(cfg *config.Config, opts game.Options, maxFrames int) error {
	d, err := game.New(cfg, opts)
	if err != nil {
		return err
	}
	defer d.Unload()

	slog.Info("starting",
		"mode", opts.Mode,
		"headless", opts.Headless,
		"seed", opts.Seed,
		"stats_window", opts.StatsWindowSec,
		"max_frames", maxFrames,
	)

	for {
		if opts.Headless {
			d.UpdateHeadless()
		} else {
			if rl.WindowShouldClose() {
				return nil
			}
			d.Update()
			d.Draw()
		}

		if maxFrames > 0 && int(d.Frame()) >= maxFrames {
			slog.Info("max frames reached", "frame", d.Frame())
			return nil
		}
	}
}

func windowTitle(opts game.Options) string {
	if opts.Mode == game.ModePage {
		return "Portfolio - " + opts.Page
	}
	return "Particle Sketch"
}
