package core

import "fmt"

// firstRingOffsets walks the Moore neighborhood counter-clockwise from east.
var firstRingOffsets = [8][2]int{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// secondRingOffsets covers the sixteen cells at Chebyshev distance two,
// in the same counter-clockwise order starting from due east.
var secondRingOffsets = [16][2]int{
	{2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {-1, 2}, {-2, 2}, {-2, 1},
	{-2, 0}, {-2, -1}, {-2, -2}, {-1, -2}, {0, -2}, {1, -2}, {2, -2}, {2, -1},
}

// RasterGrid is a rectangular cell lattice with toroidal (looped) edges.
// It provides the neighbor topology consumed by the simulations; field
// data lives separately in a FieldStore.
type RasterGrid struct {
	W, H int
}

// NewRasterGrid allocates a grid with the given dimensions.
func NewRasterGrid(w, h int) (*RasterGrid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: grid dimensions %dx%d must be positive", ErrConfiguration, w, h)
	}
	return &RasterGrid{W: w, H: h}, nil
}

// NumCells returns the total cell count.
func (g *RasterGrid) NumCells() int { return g.W * g.H }

// Index returns the linear slice index for coordinates (x, y).
func (g *RasterGrid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *RasterGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// FirstRing returns, for every requested cell, its eight Moore neighbors
// under looped wrapping, ordered counter-clockwise from east.
func (g *RasterGrid) FirstRing(cells []int) [][]int {
	return g.ring(cells, firstRingOffsets[:])
}

// SecondRing returns, for every requested cell, the sixteen cells at
// Chebyshev distance two under looped wrapping. On grids narrower than
// five cells the wrapped ring revisits interior cells; callers that sum
// over the ring see those cells weighted by their multiplicity.
func (g *RasterGrid) SecondRing(cells []int) [][]int {
	return g.ring(cells, secondRingOffsets[:])
}

func (g *RasterGrid) ring(cells []int, offsets [][2]int) [][]int {
	out := make([][]int, len(cells))
	for i, c := range cells {
		x, y := c%g.W, c/g.W
		ring := make([]int, len(offsets))
		for j, d := range offsets {
			nx, ny := g.Wrap(x+d[0], y+d[1])
			ring[j] = g.Index(nx, ny)
		}
		out[i] = ring
	}
	return out
}
