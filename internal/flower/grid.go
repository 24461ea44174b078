package flower

import (
	"errors"
	"fmt"
	"strings"

	"flowergame/internal/core"
)

// ErrInvalidSize is returned when a grid is requested with a non-positive
// width or height.
var ErrInvalidSize = errors.New("grid dimensions must be positive")

// Grid owns every flower on the board. Cells are stored row-major and each
// holds at most one flower.
type Grid struct {
	size  core.Size
	cells []*Flower

	nextSpecies Species
	rng         *core.RNG
}

// NewGrid allocates an empty grid. All probabilistic decisions draw from rng.
func NewGrid(w, h int, rng *core.RNG) (*Grid, error) {
	size := core.Size{W: w, H: h}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	if rng == nil {
		return nil, errors.New("grid requires a random source")
	}
	return &Grid{size: size, cells: make([]*Flower, size.Cells()), rng: rng}, nil
}

// Size reports the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// At returns the flower at (x, y), or nil when the cell is empty or outside
// the grid.
func (g *Grid) At(x, y int) *Flower {
	if !g.size.Contains(x, y) {
		return nil
	}
	return g.cells[g.size.Index(x, y)]
}

// Place puts f at (x, y), replacing any occupant. A flower already present
// elsewhere on the grid is moved rather than duplicated.
func (g *Grid) Place(x, y int, f *Flower) {
	if !g.size.Contains(x, y) {
		return
	}
	if f != nil {
		g.RemoveFlower(f)
	}
	g.cells[g.size.Index(x, y)] = f
}

// NewSpecies hands out the next unused species identifier.
func (g *Grid) NewSpecies() Species {
	s := g.nextSpecies
	g.nextSpecies++
	return s
}

// Adjacent returns the in-bounds orthogonal neighbors of (x, y).
func (g *Grid) Adjacent(x, y int) []core.Point {
	return g.size.Adjacent4(x, y)
}

// RemoveFlower empties every cell holding f and reports how many were cleared.
func (g *Grid) RemoveFlower(f *Flower) int {
	removed := 0
	for i, c := range g.cells {
		if c == f {
			g.cells[i] = nil
			removed++
		}
	}
	return removed
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c != nil {
			n++
		}
	}
	return n
}

// Victory reports whether exactly one species survives and its members share
// a single corruption status. The surviving species is returned on success.
func (g *Grid) Victory() (Species, bool) {
	present := make(map[Species]struct{})
	var last Species
	corrupted, clean := false, false
	for _, c := range g.cells {
		if c == nil {
			continue
		}
		present[c.species] = struct{}{}
		last = c.species
		if c.Corrupted {
			corrupted = true
		} else {
			clean = true
		}
	}
	if len(present) == 1 && corrupted != clean {
		return last, true
	}
	return 0, false
}

// String renders the grid one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.size.H; y++ {
		for x := 0; x < g.size.W; x++ {
			if x > 0 {
				b.WriteString(" | ")
			}
			if f := g.At(x, y); f != nil {
				b.WriteString(f.String())
			} else {
				b.WriteString("Empty")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
