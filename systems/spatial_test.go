package systems

import (
	"sort"
	"testing"

	"github.com/esimmons/folio/geom"
)

func TestSpatialGridQueryRadius(t *testing.T) {
	pts := []geom.Vec2{
		geom.V(10, 10),
		geom.V(50, 10),
		geom.V(110, 10),
		geom.V(500, 500),
		geom.V(-20, -20), // outside the area, clamped into the corner cell
	}
	g := NewSpatialGrid(600, 600, 100)
	for i, p := range pts {
		g.Insert(i, p)
	}

	tests := []struct {
		name   string
		center geom.Vec2
		radius float32
		want   []int
	}{
		{"near origin", geom.V(10, 10), 50, []int{0, 1, 4}},
		{"across cells", geom.V(80, 10), 40, []int{1, 2}},
		{"strict boundary", geom.V(10, 10), 40, []int{0}},
		{"far corner", geom.V(590, 590), 200, []int{3}},
		{"nothing", geom.V(300, 300), 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.QueryRadiusInto(nil, pts, tt.center, tt.radius)
			sort.Ints(got)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSpatialGridClear(t *testing.T) {
	pts := []geom.Vec2{geom.V(5, 5)}
	g := NewSpatialGrid(100, 100, 10)
	g.Insert(0, pts[0])
	g.Clear()
	if got := g.QueryRadiusInto(nil, pts, pts[0], 50); len(got) != 0 {
		t.Errorf("expected empty grid after Clear, got %v", got)
	}
}
