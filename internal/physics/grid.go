package physics

import "math"

// Grid is a uniform grid for broad-phase collision detection over a bounded playfield.
// Rectangles are inserted by bounds and index; a query visits every index whose
// cells intersect the query rectangle. An index may be visited more than once
// when its rectangle spans several cells shared with the query.
//
// Positions outside the playfield are clamped into the border cells, so entities
// that are partly off-screen (enemies entering from above) are still found.
type Grid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       []gridCell
}

// gridCell stores the indices of rectangles that touch a grid cell.
// The slice is reused between frames (reset to [:0]) to avoid allocations.
type gridCell struct {
	items []int
}

// NewGrid creates a grid covering a playfield of the given dimensions.
func NewGrid(width, height, cellSize float64) *Grid {
	cols := int(math.Ceil(width / cellSize))
	rows := int(math.Ceil(height / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &Grid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]gridCell, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].items = g.cells[i].items[:0]
	}
}

// Insert adds an item (identified by index) to every cell its bounds touch.
func (g *Grid) Insert(r Rect, index int) {
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			g.cells[offset+col].items = append(g.cells[offset+col].items, index)
		}
	}
}

// Query calls fn for each item index stored in the cells touched by r.
// If fn returns true, iteration stops early.
func (g *Grid) Query(r Rect, fn func(index int) bool) {
	c0, r0, c1, r1 := g.span(r)
	for row := r0; row <= r1; row++ {
		offset := row * g.cols
		for col := c0; col <= c1; col++ {
			for _, idx := range g.cells[offset+col].items {
				if fn(idx) {
					return
				}
			}
		}
	}
}

// span returns the inclusive cell range touched by r.
func (g *Grid) span(r Rect) (c0, r0, c1, r1 int) {
	c0, r0 = g.posToCell(r.X, r.Y)
	c1, r1 = g.posToCell(r.Right(), r.Bottom())
	return c0, r0, c1, r1
}

// posToCell converts playfield coordinates to grid cell coordinates,
// clamped to the valid range.
func (g *Grid) posToCell(x, y float64) (col, row int) {
	col = int(math.Floor(x * g.invCellSize))
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(math.Floor(y * g.invCellSize))
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
