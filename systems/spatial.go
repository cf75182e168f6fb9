package systems

import "github.com/esimmons/folio/geom"

// SpatialGrid buckets point indices into square cells for radius queries.
type SpatialGrid struct {
	cellSize float32
	cols     int
	rows     int
	cells    [][]int
}

// NewSpatialGrid creates a spatial grid covering a width x height area.
func NewSpatialGrid(width, height, cellSize float32) *SpatialGrid {
	cols := int(width/cellSize) + 1
	rows := int(height/cellSize) + 1

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all points from the grid, keeping cell capacity.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds point index idx at p. Points outside the area land in the edge cells.
func (g *SpatialGrid) Insert(idx int, p geom.Vec2) {
	c := g.cellIndex(p.X, p.Y)
	g.cells[c] = append(g.cells[c], idx)
}

// QueryRadiusInto appends indices of points within radius of p to dst.
// pts must be the slice the indices were inserted from.
func (g *SpatialGrid) QueryRadiusInto(dst []int, pts []geom.Vec2, p geom.Vec2, radius float32) []int {
	cellRadius := int(radius/g.cellSize) + 1
	centerCol, centerRow := g.cellCoords(p.X, p.Y)
	radiusSq := radius * radius

	for dc := -cellRadius; dc <= cellRadius; dc++ {
		col := centerCol + dc
		if col < 0 || col >= g.cols {
			continue
		}
		for dr := -cellRadius; dr <= cellRadius; dr++ {
			row := centerRow + dr
			if row < 0 || row >= g.rows {
				continue
			}
			for _, idx := range g.cells[row*g.cols+col] {
				if pts[idx].Sub(p).MagSq() < radiusSq {
					dst = append(dst, idx)
				}
			}
		}
	}
	return dst
}

func (g *SpatialGrid) cellCoords(x, y float32) (col, row int) {
	col = int(x / g.cellSize)
	row = int(y / g.cellSize)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}

// cellIndex returns the flat index for a position.
func (g *SpatialGrid) cellIndex(x, y float32) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}
