package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/esimmons/folio/components"
	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/geom"
)

// MoteParams holds the floating background particle constants.
type MoteParams struct {
	MaxParticles    int
	AreaPerParticle float32
	Speed           float32
	MinSize         float32
	SizeRange       float32
	MinOpacity      float32
	OpacityRange    float32
	OpacityFloor    float32
	OpacityCeil     float32
	PulseRate       float64
	PulsePhase      float64
	PulseAmount     float32
	LinkDistance    float32
	LinkAlpha       float32
	Tints           int
}

// MoteParamsFromConfig converts the background config to mote parameters.
func MoteParamsFromConfig(cfg *config.Config) MoteParams {
	b := cfg.Background
	return MoteParams{
		MaxParticles:    b.MaxParticles,
		AreaPerParticle: float32(b.AreaPerParticle),
		Speed:           float32(b.Speed),
		MinSize:         float32(b.MinSize),
		SizeRange:       float32(b.SizeRange),
		MinOpacity:      float32(b.MinOpacity),
		OpacityRange:    float32(b.OpacityRange),
		OpacityFloor:    float32(b.OpacityFloor),
		OpacityCeil:     float32(b.OpacityCeil),
		PulseRate:       b.PulseRate,
		PulsePhase:      b.PulsePhase,
		PulseAmount:     float32(b.PulseAmount),
		LinkDistance:    float32(b.LinkDistance),
		LinkAlpha:       float32(b.LinkAlpha),
		Tints:           len(cfg.Derived.Tints),
	}
}

// Link is a connecting line between two motes closer than the link distance.
type Link struct {
	A, B  geom.Vec2
	Alpha float32
}

// MoteField is the floating particle background. Motes are entities in an ECS world.
type MoteField struct {
	world    *ecs.World
	mapper   *ecs.Map3[components.Position, components.Velocity, components.Mote]
	filter   *ecs.Filter3[components.Position, components.Velocity, components.Mote]
	posMap   *ecs.Map[components.Position]
	moteMap  *ecs.Map[components.Mote]
	entities []ecs.Entity

	params        MoteParams
	width, height float32
	rng           *rand.Rand

	grid   *SpatialGrid
	points []geom.Vec2
	near   []int
	links  []Link
}

// NewMoteField creates a field sized to a width x height canvas and spawns its motes.
func NewMoteField(params MoteParams, width, height float32, rng *rand.Rand) *MoteField {
	world := ecs.NewWorld()
	f := &MoteField{
		world:   world,
		mapper:  ecs.NewMap3[components.Position, components.Velocity, components.Mote](world),
		filter:  ecs.NewFilter3[components.Position, components.Velocity, components.Mote](world),
		posMap:  ecs.NewMap[components.Position](world),
		moteMap: ecs.NewMap[components.Mote](world),
		params:  params,
		rng:     rng,
	}
	f.Resize(width, height)
	return f
}

// MoteCount returns how many motes a width x height canvas holds.
func MoteCount(params MoteParams, width, height float32) int {
	if params.AreaPerParticle <= 0 {
		return 0
	}
	n := int(math.Floor(float64(width) * float64(height) / float64(params.AreaPerParticle)))
	return min(params.MaxParticles, n)
}

// Resize adopts a new canvas size and respawns every mote.
func (f *MoteField) Resize(width, height float32) {
	f.width, f.height = width, height

	for _, e := range f.entities {
		f.mapper.Remove(e)
	}
	f.entities = f.entities[:0]

	n := MoteCount(f.params, width, height)
	for i := 0; i < n; i++ {
		f.spawn()
	}

	cell := f.params.LinkDistance
	if cell <= 0 {
		cell = 100
	}
	f.grid = NewSpatialGrid(max(width, 1), max(height, 1), cell)
}

func (f *MoteField) spawn() {
	p := f.params
	pos := components.Position{
		X: f.rng.Float32() * f.width,
		Y: f.rng.Float32() * f.height,
	}
	vel := components.Velocity{
		X: (f.rng.Float32() - 0.5) * p.Speed,
		Y: (f.rng.Float32() - 0.5) * p.Speed,
	}
	mote := components.Mote{
		Size:    f.rng.Float32()*p.SizeRange + p.MinSize,
		Opacity: f.rng.Float32()*p.OpacityRange + p.MinOpacity,
	}
	if p.Tints > 1 {
		mote.Tint = uint8(f.rng.Intn(p.Tints))
	}
	f.add(pos, vel, mote)
}

func (f *MoteField) add(pos components.Position, vel components.Velocity, mote components.Mote) ecs.Entity {
	e := f.mapper.NewEntity(&pos, &vel, &mote)
	f.entities = append(f.entities, e)
	return e
}

// Count returns the number of live motes.
func (f *MoteField) Count() int {
	return len(f.entities)
}

// Size returns the canvas dimensions.
func (f *MoteField) Size() (width, height float32) {
	return f.width, f.height
}

// Update drifts every mote, wraps it at the canvas edges and pulses its opacity.
// nowMS is wall-clock milliseconds; the pulse phase depends on it.
func (f *MoteField) Update(nowMS float64) {
	p := f.params
	query := f.filter.Query()
	for query.Next() {
		pos, vel, mote := query.Get()

		pos.X += vel.X
		pos.Y += vel.Y

		if pos.X < 0 {
			pos.X = f.width
		}
		if pos.X > f.width {
			pos.X = 0
		}
		if pos.Y < 0 {
			pos.Y = f.height
		}
		if pos.Y > f.height {
			pos.Y = 0
		}

		pulse := math.Sin(nowMS*p.PulseRate + float64(pos.X)*p.PulsePhase)
		mote.Opacity += float32(pulse) * p.PulseAmount
		mote.Opacity = geom.Clamp(mote.Opacity, p.OpacityFloor, p.OpacityCeil)
	}
}

// Each calls fn for every mote.
func (f *MoteField) Each(fn func(pos components.Position, mote components.Mote)) {
	query := f.filter.Query()
	for query.Next() {
		pos, _, mote := query.Get()
		fn(*pos, *mote)
	}
}

// Links returns a line for every pair of motes closer than the link distance,
// with alpha fading linearly to zero at that distance. The slice is reused
// between calls.
func (f *MoteField) Links() []Link {
	f.points = f.points[:0]
	query := f.filter.Query()
	for query.Next() {
		pos, _, _ := query.Get()
		f.points = append(f.points, geom.V(pos.X, pos.Y))
	}

	f.grid.Clear()
	for i, pt := range f.points {
		f.grid.Insert(i, pt)
	}

	maxDist := f.params.LinkDistance
	f.links = f.links[:0]
	for i, a := range f.points {
		f.near = f.grid.QueryRadiusInto(f.near[:0], f.points, a, maxDist)
		for _, j := range f.near {
			// Each pair once
			if j <= i {
				continue
			}
			d := a.Dist(f.points[j])
			f.links = append(f.links, Link{
				A:     a,
				B:     f.points[j],
				Alpha: (maxDist - d) / maxDist * f.params.LinkAlpha,
			})
		}
	}
	return f.links
}
