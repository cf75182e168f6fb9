package geom

import (
	"fmt"
	"sort"
	"strconv"
)

// Path is an SVG path flattened to a polyline, measured by arc length.
type Path struct {
	points []Vec2
	cum    []float32 // cum[i] is the length from points[0] to points[i]
}

// NewPolyline builds a path through the given points.
func NewPolyline(points ...Vec2) *Path {
	p := &Path{}
	for _, pt := range points {
		p.lineTo(pt)
	}
	return p
}

func (p *Path) lineTo(pt Vec2) {
	if len(p.points) == 0 {
		p.points = append(p.points, pt)
		p.cum = append(p.cum, 0)
		return
	}
	last := p.points[len(p.points)-1]
	p.points = append(p.points, pt)
	p.cum = append(p.cum, p.cum[len(p.cum)-1]+last.Dist(pt))
}

// Length returns the total arc length.
func (p *Path) Length() float32 {
	if len(p.cum) == 0 {
		return 0
	}
	return p.cum[len(p.cum)-1]
}

// Points returns the flattened vertices.
func (p *Path) Points() []Vec2 {
	return p.points
}

// Start returns the first point of the path.
func (p *Path) Start() Vec2 {
	return p.PointAt(0)
}

// End returns the last point of the path.
func (p *Path) End() Vec2 {
	return p.PointAt(p.Length())
}

// PointAt returns the point at arc length l, clamped to the path.
func (p *Path) PointAt(l float32) Vec2 {
	n := len(p.points)
	if n == 0 {
		return Vec2{}
	}
	if l <= 0 || n == 1 {
		return p.points[0]
	}
	if l >= p.Length() {
		return p.points[n-1]
	}
	// First vertex at or beyond l
	i := sort.Search(n, func(k int) bool { return p.cum[k] >= l })
	seg := p.cum[i] - p.cum[i-1]
	if seg == 0 {
		return p.points[i]
	}
	t := (l - p.cum[i-1]) / seg
	return p.points[i-1].Lerp(p.points[i], t)
}

// Prefix returns the vertices covering arc length [0, l], ending exactly at PointAt(l).
func (p *Path) Prefix(l float32) []Vec2 {
	if len(p.points) == 0 || l <= 0 {
		return nil
	}
	out := make([]Vec2, 0, len(p.points))
	for i, pt := range p.points {
		if p.cum[i] >= l {
			break
		}
		out = append(out, pt)
	}
	return append(out, p.PointAt(l))
}

// ParsePath parses SVG path data. Supported commands are M, L, H, V, C, S, Q and Z
// in absolute and relative forms; curves are flattened into segments lines each.
func ParsePath(d string, segments int) (*Path, error) {
	if segments < 1 {
		segments = 1
	}
	toks, err := tokenizePath(d)
	if err != nil {
		return nil, err
	}

	p := &Path{}
	var (
		cur, start, ctrl Vec2
		cmd              byte
		hasCtrl          bool
	)
	i := 0
	num := func() (float32, error) {
		if i >= len(toks) || toks[i].cmd != 0 {
			return 0, fmt.Errorf("path: expected number after %q", cmd)
		}
		v := toks[i].num
		i++
		return v, nil
	}
	pair := func(rel bool) (Vec2, error) {
		x, err := num()
		if err != nil {
			return Vec2{}, err
		}
		y, err := num()
		if err != nil {
			return Vec2{}, err
		}
		v := Vec2{X: x, Y: y}
		if rel {
			v = v.Add(cur)
		}
		return v, nil
	}

	for i < len(toks) {
		if toks[i].cmd != 0 {
			cmd = toks[i].cmd
			i++
		} else if cmd == 0 {
			return nil, fmt.Errorf("path: data must start with a command")
		}
		rel := cmd >= 'a' && cmd <= 'z'

		switch cmd {
		case 'M', 'm':
			pt, err := pair(rel)
			if err != nil {
				return nil, err
			}
			// Later movetos join the previous subpath; the track is one stroke.
			p.lineTo(pt)
			cur, start = pt, pt
			hasCtrl = false
			// Extra coordinate pairs after a moveto are implicit linetos
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l':
			pt, err := pair(rel)
			if err != nil {
				return nil, err
			}
			p.lineTo(pt)
			cur = pt
			hasCtrl = false
		case 'H', 'h':
			x, err := num()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			cur = Vec2{X: x, Y: cur.Y}
			p.lineTo(cur)
			hasCtrl = false
		case 'V', 'v':
			y, err := num()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			cur = Vec2{X: cur.X, Y: y}
			p.lineTo(cur)
			hasCtrl = false
		case 'C', 'c':
			c1, err := pair(rel)
			if err != nil {
				return nil, err
			}
			c2, err := pair(rel)
			if err != nil {
				return nil, err
			}
			end, err := pair(rel)
			if err != nil {
				return nil, err
			}
			p.cubic(cur, c1, c2, end, segments)
			cur, ctrl, hasCtrl = end, c2, true
		case 'S', 's':
			c1 := cur
			if hasCtrl {
				c1 = cur.Add(cur.Sub(ctrl))
			}
			c2, err := pair(rel)
			if err != nil {
				return nil, err
			}
			end, err := pair(rel)
			if err != nil {
				return nil, err
			}
			p.cubic(cur, c1, c2, end, segments)
			cur, ctrl, hasCtrl = end, c2, true
		case 'Q', 'q':
			c, err := pair(rel)
			if err != nil {
				return nil, err
			}
			end, err := pair(rel)
			if err != nil {
				return nil, err
			}
			p.quad(cur, c, end, segments)
			cur = end
			hasCtrl = false
		case 'Z', 'z':
			p.lineTo(start)
			cur = start
			hasCtrl = false
			// Z takes no arguments; a following number is an error
			if i < len(toks) && toks[i].cmd == 0 {
				return nil, fmt.Errorf("path: unexpected number after %q", cmd)
			}
		default:
			return nil, fmt.Errorf("path: unsupported command %q", cmd)
		}
	}

	if len(p.points) == 0 {
		return nil, fmt.Errorf("path: no drawable segments")
	}
	return p, nil
}

func (p *Path) cubic(p0, p1, p2, p3 Vec2, segments int) {
	for s := 1; s <= segments; s++ {
		t := float32(s) / float32(segments)
		u := 1 - t
		a := u * u * u
		b := 3 * u * u * t
		c := 3 * u * t * t
		d := t * t * t
		p.lineTo(Vec2{
			X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
			Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
		})
	}
}

func (p *Path) quad(p0, p1, p2 Vec2, segments int) {
	for s := 1; s <= segments; s++ {
		t := float32(s) / float32(segments)
		u := 1 - t
		p.lineTo(Vec2{
			X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
			Y: u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y,
		})
	}
}

type pathToken struct {
	cmd byte // 0 for numbers
	num float32
}

// tokenizePath splits path data into commands and numbers. Numbers may be separated
// by whitespace, commas, a sign, or a second decimal point ("1.5.5" is 1.5 and .5).
func tokenizePath(d string) ([]pathToken, error) {
	var toks []pathToken
	i := 0
	for i < len(d) {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isPathCommand(c):
			toks = append(toks, pathToken{cmd: c})
			i++
		case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
			j := i
			if d[j] == '-' || d[j] == '+' {
				j++
			}
			seenDot, seenExp := false, false
		scan:
			for j < len(d) {
				switch ch := d[j]; {
				case ch >= '0' && ch <= '9':
					j++
				case ch == '.' && !seenDot && !seenExp:
					seenDot = true
					j++
				case (ch == 'e' || ch == 'E') && !seenExp && j > i:
					seenExp = true
					j++
					if j < len(d) && (d[j] == '-' || d[j] == '+') {
						j++
					}
				default:
					break scan
				}
			}
			v, err := strconv.ParseFloat(d[i:j], 32)
			if err != nil {
				return nil, fmt.Errorf("path: bad number %q: %w", d[i:j], err)
			}
			toks = append(toks, pathToken{num: float32(v)})
			i = j
		default:
			return nil, fmt.Errorf("path: unexpected character %q at %d", c, i)
		}
	}
	return toks, nil
}

func isPathCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'Z', 'z',
		'T', 't', 'A', 'a':
		return true
	}
	return false
}
