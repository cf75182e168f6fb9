package systems

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"

	"github.com/esimmons/folio/config"
	"github.com/esimmons/folio/geom"
)

// Particle is one grid cell's point. Origin is fixed at construction.
type Particle struct {
	Pos    geom.Vec2
	Origin geom.Vec2
	Vel    geom.Vec2
	Acc    geom.Vec2

	Brightness      float32 // HSB brightness of the source cell, 0-255
	InfluenceRadius float32
	BounceRadius    float32
}

func (p *Particle) applyForce(f geom.Vec2) {
	p.Acc = p.Acc.Add(f)
}

// GridParams holds grid geometry and force constants.
type GridParams struct {
	Cols, Rows        int
	Spacing           float32
	InfluenceRadius   float32
	BounceRadius      float32
	PointerForce      float32
	LiftMax           float32
	LiftDamping       float32
	Spring            float32
	Jitter            float32
	Damping           float32
	NeighborRepulsion float32
}

// GridParamsFromConfig converts the loaded grid config to simulation parameters.
func GridParamsFromConfig(cfg *config.Config) GridParams {
	g := cfg.Grid
	return GridParams{
		Cols:              g.Cols,
		Rows:              g.Rows,
		Spacing:           float32(g.Spacing),
		InfluenceRadius:   float32(g.InfluenceRadius),
		BounceRadius:      float32(cfg.Derived.BounceRadius),
		PointerForce:      float32(g.PointerForce),
		LiftMax:           float32(g.LiftMax),
		LiftDamping:       float32(g.LiftDamping),
		Spring:            float32(g.Spring),
		Jitter:            float32(g.Jitter),
		Damping:           float32(g.Damping),
		NeighborRepulsion: float32(g.NeighborRepulsion),
	}
}

// Grid is the image-driven particle grid. Particles are stored column-major.
type Grid struct {
	params        GridParams
	width, height float32
	particles     []Particle
	ready         bool
	rng           *rand.Rand
}

// NewGrid creates an empty grid for a canvas of the given size.
// The grid is not ready until Initialize succeeds.
func NewGrid(params GridParams, width, height float32, rng *rand.Rand) *Grid {
	return &Grid{
		params: params,
		width:  width,
		height: height,
		rng:    rng,
	}
}

// Initialize samples img into one particle per cell. A nil image (asset not loaded)
// leaves the grid not ready and creates nothing.
func (g *Grid) Initialize(img image.Image) bool {
	g.particles = nil
	g.ready = false
	if img == nil {
		return false
	}

	cols, rows := g.params.Cols, g.params.Rows
	small := Downsample(img, cols, rows)

	sp := g.params.Spacing
	left := g.width/2 - float32(cols)*sp/2
	top := g.height/2 - float32(rows)*sp/2

	g.particles = make([]Particle, 0, cols*rows)
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			pos := geom.V(left+float32(i)*sp, top+float32(j)*sp)
			g.particles = append(g.particles, Particle{
				Pos:             pos,
				Origin:          pos,
				Brightness:      Brightness(small.At(i, j)),
				InfluenceRadius: g.params.InfluenceRadius,
				BounceRadius:    g.params.BounceRadius,
			})
		}
	}
	g.ready = true
	return true
}

// Ready reports whether the grid has been initialized from an image.
func (g *Grid) Ready() bool {
	return g.ready
}

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.params.Cols }

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.params.Rows }

// Params returns the current force parameters.
func (g *Grid) Params() GridParams { return g.params }

// SetParams replaces the force constants. Per-particle radii keep the values they
// were created with until the next Initialize.
func (g *Grid) SetParams(p GridParams) {
	if p.Cols != g.params.Cols || p.Rows != g.params.Rows || p.Spacing != g.params.Spacing {
		// Geometry changes need a fresh Initialize
		g.ready = false
		g.particles = nil
	}
	g.params = p
}

// At returns the particle at column i, row j.
func (g *Grid) At(i, j int) *Particle {
	return &g.particles[i*g.params.Rows+j]
}

// Particles returns all particles in grid order.
func (g *Grid) Particles() []Particle {
	return g.particles
}

// Step runs one frame: every particle, in grid order, first takes neighbor repulsion
// and then its own update. No-op until the grid is ready.
func (g *Grid) Step(pointer geom.Vec2) {
	if !g.ready {
		return
	}
	for i := 0; i < g.params.Cols; i++ {
		for j := 0; j < g.params.Rows; j++ {
			g.InteractWithNeighbors(i, j)
			g.UpdateParticle(i, j, pointer)
		}
	}
}

// RepulsionFactor returns the pointer falloff (1 - (d/r)^2)^2, clamped at zero.
// It is 1 when the pointer sits on the particle and 0 at or beyond r.
func RepulsionFactor(d, r float32) float32 {
	if d >= r {
		return 0
	}
	f := max(0, 1-geom.Sq(d/r))
	return f * f
}

// PointerForce returns the repulsion a pointer applies to a particle at pos.
func (g *Grid) PointerForce(p *Particle, pointer geom.Vec2) geom.Vec2 {
	dir := p.Pos.Sub(pointer)
	d := dir.Mag()
	if d >= p.InfluenceRadius {
		return geom.Vec2{}
	}
	return dir.Normalize().Scale(RepulsionFactor(d, p.InfluenceRadius) * g.params.PointerForce)
}

// UpdateParticle accumulates pointer, lift, spring and jitter forces on particle (i, j)
// and integrates it.
func (g *Grid) UpdateParticle(i, j int, pointer geom.Vec2) {
	p := g.At(i, j)

	p.applyForce(g.PointerForce(p, pointer))

	// Brighter cells float up
	lift := geom.Map(p.Brightness, 0, 255, 0, -g.params.LiftMax)
	p.applyForce(geom.V(0, lift*g.params.LiftDamping))

	p.applyForce(p.Origin.Sub(p.Pos).Scale(g.params.Spring))

	if jit := g.params.Jitter; jit > 0 {
		p.applyForce(geom.V(
			(g.rng.Float32()*2-1)*jit,
			(g.rng.Float32()*2-1)*jit,
		))
	}

	p.Vel = p.Vel.Add(p.Acc).Scale(g.params.Damping)
	p.Pos = p.Pos.Add(p.Vel)
	p.Acc = geom.Vec2{}
}

// InteractWithNeighbors pushes particle (i, j) away from each of its up-to-8 grid
// neighbors that is closer than its bounce radius. The push scales with overlap and
// peaks at NeighborRepulsion.
func (g *Grid) InteractWithNeighbors(i, j int) {
	p := g.At(i, j)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			ni, nj := i+dx, j+dy
			if ni < 0 || nj < 0 || ni >= g.params.Cols || nj >= g.params.Rows {
				continue
			}
			other := g.At(ni, nj)
			d := p.Pos.Dist(other.Pos)
			if d <= 0 || d >= p.BounceRadius {
				continue
			}
			overlap := 1 - d/p.BounceRadius
			push := p.Pos.Sub(other.Pos).Normalize().Scale(g.params.NeighborRepulsion * overlap)
			p.applyForce(push)
		}
	}
}

// Sample appends each particle's displacement from its origin and its speed.
func (g *Grid) Sample(disp, speed []float64) ([]float64, []float64) {
	for k := range g.particles {
		p := &g.particles[k]
		disp = append(disp, float64(p.Pos.Dist(p.Origin)))
		speed = append(speed, float64(p.Vel.Mag()))
	}
	return disp, speed
}

// Downsample resizes img to cols x rows with bilinear filtering.
func Downsample(img image.Image, cols, rows int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	draw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Brightness returns the HSB brightness of c on a 0-255 scale, i.e. its largest channel.
func Brightness(c color.Color) float32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	col := colorful.Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
	}
	_, _, v := col.Hsv()
	return float32(v * 255)
}
