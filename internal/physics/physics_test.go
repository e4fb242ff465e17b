package physics

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectOverlaps(t *testing.T) {
	base := Rect{X: 10, Y: 10, W: 10, H: 10}

	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"identical", base, true},
		{"partial overlap", Rect{X: 15, Y: 15, W: 10, H: 10}, true},
		{"contained", Rect{X: 12, Y: 12, W: 2, H: 2}, true},
		{"touching right edge", Rect{X: 20, Y: 10, W: 10, H: 10}, false},
		{"touching bottom edge", Rect{X: 10, Y: 20, W: 10, H: 10}, false},
		{"touching left edge", Rect{X: 0, Y: 10, W: 10, H: 10}, false},
		{"touching top edge", Rect{X: 10, Y: 0, W: 10, H: 10}, false},
		{"far away", Rect{X: 100, Y: 100, W: 5, H: 5}, false},
		{"same column, no vertical overlap", Rect{X: 10, Y: 30, W: 10, H: 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.o))
			assert.Equal(t, tt.want, tt.o.Overlaps(base), "overlap must be symmetric")
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(12, 0, 10))
	assert.Equal(t, 4.5, Clamp(4.5, 0, 10))
}

func TestGridQueryFindsNeighbours(t *testing.T) {
	g := NewGrid(100, 100, 20)
	g.Insert(Rect{X: 5, Y: 5, W: 10, H: 10}, 0)
	g.Insert(Rect{X: 80, Y: 80, W: 10, H: 10}, 1)
	g.Insert(Rect{X: 15, Y: 15, W: 10, H: 10}, 2) // spans four cells

	got := collect(g, Rect{X: 18, Y: 18, W: 1, H: 1})
	assert.Equal(t, []int{0, 2}, got)

	got = collect(g, Rect{X: 85, Y: 85, W: 1, H: 1})
	assert.Equal(t, []int{1}, got)
}

func TestGridClampsOffFieldRects(t *testing.T) {
	g := NewGrid(100, 100, 20)
	// Enemy entering from above the playfield.
	g.Insert(Rect{X: 40, Y: -35, W: 35, H: 35}, 7)

	got := collect(g, Rect{X: 50, Y: -10, W: 5, H: 15})
	assert.Equal(t, []int{7}, got)
}

func TestGridClearAndEarlyStop(t *testing.T) {
	g := NewGrid(100, 100, 50)
	for i := 0; i < 5; i++ {
		g.Insert(Rect{X: 1, Y: 1, W: 1, H: 1}, i)
	}

	visits := 0
	g.Query(Rect{X: 0, Y: 0, W: 2, H: 2}, func(int) bool {
		visits++
		return visits == 2
	})
	assert.Equal(t, 2, visits)

	g.Clear()
	assert.Empty(t, collect(g, Rect{X: 0, Y: 0, W: 100, H: 100}))
}

// collect returns the unique sorted indices visited by a query.
func collect(g *Grid, r Rect) []int {
	seen := map[int]bool{}
	g.Query(r, func(idx int) bool {
		seen[idx] = true
		return false
	})
	out := make([]int, 0, len(seen))
	for idx := range seen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
