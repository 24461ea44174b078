package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the total number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// Point addresses a single cell by column (X) and row (Y).
type Point struct {
	X, Y int
}
