// Package config provides configuration loading and access for the sketch and page effects.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Sketch     SketchConfig     `yaml:"sketch"`
	Grid       GridConfig       `yaml:"grid"`
	Background BackgroundConfig `yaml:"background"`
	Track      TrackConfig      `yaml:"track"`
	Reveal     RevealConfig     `yaml:"reveal"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for page mode.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SketchConfig holds the particle sketch canvas settings.
type SketchConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Image      string `yaml:"image"`      // Source bitmap sampled into the grid
	Background uint8  `yaml:"background"` // Grey level cleared every frame
}

// GridConfig holds particle grid geometry and force constants.
type GridConfig struct {
	Cols              int     `yaml:"cols"`
	Rows              int     `yaml:"rows"`
	Spacing           float64 `yaml:"spacing"`
	InfluenceRadius   float64 `yaml:"influence_radius"`   // Pointer repulsion radius
	BounceFactor      float64 `yaml:"bounce_factor"`      // BounceRadius = Spacing * this
	PointerForce      float64 `yaml:"pointer_force"`      // Multiplier on the pointer falloff
	LiftMax           float64 `yaml:"lift_max"`           // Lift at brightness 255 before damping
	LiftDamping       float64 `yaml:"lift_damping"`       // Scales the lift force down
	Spring            float64 `yaml:"spring"`             // Origin-return spring constant
	Jitter            float64 `yaml:"jitter"`             // Per-axis jitter half-range
	Damping           float64 `yaml:"damping"`            // Velocity multiplier per frame (<1)
	NeighborRepulsion float64 `yaml:"neighbor_repulsion"` // Peak neighbor push
	PointSize         float64 `yaml:"point_size"`         // Drawn particle radius
}

// BackgroundConfig holds floating background particle parameters.
type BackgroundConfig struct {
	MaxParticles    int      `yaml:"max_particles"`
	AreaPerParticle float64  `yaml:"area_per_particle"` // count = min(max, floor(w*h/this))
	Speed           float64  `yaml:"speed"`             // Velocity range per axis, centered on 0
	MinSize         float64  `yaml:"min_size"`
	SizeRange       float64  `yaml:"size_range"`
	MinOpacity      float64  `yaml:"min_opacity"`
	OpacityRange    float64  `yaml:"opacity_range"`
	OpacityFloor    float64  `yaml:"opacity_floor"`
	OpacityCeil     float64  `yaml:"opacity_ceil"`
	PulseRate       float64  `yaml:"pulse_rate"`   // Radians per millisecond of wall clock
	PulsePhase      float64  `yaml:"pulse_phase"`  // Radians per pixel of x
	PulseAmount     float64  `yaml:"pulse_amount"` // Opacity change per frame at sin=1
	LinkDistance    float64  `yaml:"link_distance"`
	LinkAlpha       float64  `yaml:"link_alpha"`
	Tints           []string `yaml:"tints"` // Hex colors, chosen uniformly
}

// TrackConfig holds the progressive track animation parameters.
type TrackConfig struct {
	DurationMS     float64 `yaml:"duration_ms"`
	PauseMS        float64 `yaml:"pause_ms"`
	CaptionAt      float64 `yaml:"caption_at"`      // Progress at which the caption appears
	Lookahead      float64 `yaml:"lookahead"`       // Path length ahead used for car heading
	CurveSegments  int     `yaml:"curve_segments"`  // Polyline segments per bezier
	HoverScale     float64 `yaml:"hover_scale"`
	HoverFrequency float64 `yaml:"hover_frequency"` // Spring angular frequency
	HoverDamping   float64 `yaml:"hover_damping"`   // Spring damping ratio
}

// RevealConfig holds scroll-reveal observer parameters.
type RevealConfig struct {
	Threshold    float64  `yaml:"threshold"`
	MarginTop    float64  `yaml:"margin_top"`
	MarginRight  float64  `yaml:"margin_right"`
	MarginBottom float64  `yaml:"margin_bottom"`
	MarginLeft   float64  `yaml:"margin_left"`
	Class        string   `yaml:"class"`
	Targets      []string `yaml:"targets"` // Classes of observed elements
	FadeMS       float64  `yaml:"fade_ms"`
	Slide        float64  `yaml:"slide"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	BounceRadius  float64          // Grid.Spacing * Grid.BounceFactor
	SketchW32     float32          // Sketch.Width as float32
	SketchH32     float32          // Sketch.Height as float32
	ScreenW32     float32          // Screen.Width as float32
	ScreenH32     float32          // Screen.Height as float32
	Tints         []colorful.Color // Parsed Background.Tints
	TrackDuration time.Duration
	TrackPause    time.Duration
	RevealFade    time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.BounceRadius = c.Grid.Spacing * c.Grid.BounceFactor
	c.Derived.SketchW32 = float32(c.Sketch.Width)
	c.Derived.SketchH32 = float32(c.Sketch.Height)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if len(c.Background.Tints) == 0 {
		c.Background.Tints = []string{"#4A90E2", "#7F8C8D"}
	}
	c.Derived.Tints = make([]colorful.Color, 0, len(c.Background.Tints))
	for _, hex := range c.Background.Tints {
		col, err := colorful.Hex(hex)
		if err != nil {
			return fmt.Errorf("parsing background tint %q: %w", hex, err)
		}
		c.Derived.Tints = append(c.Derived.Tints, col)
	}

	c.Derived.TrackDuration = msDuration(c.Track.DurationMS)
	c.Derived.TrackPause = msDuration(c.Track.PauseMS)
	c.Derived.RevealFade = msDuration(c.Reveal.FadeMS)
	return nil
}

func msDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
