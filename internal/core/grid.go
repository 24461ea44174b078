package core

// orthogonal lists neighbor offsets in scan order: left, right, up, down.
var orthogonal = [4]Point{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}}

// Index returns the linear row-major index for coordinates (x, y).
func (s Size) Index(x, y int) int { return y*s.W + x }

// Contains reports whether (x, y) lies inside the grid.
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.W && y >= 0 && y < s.H
}

// Adjacent4 returns the orthogonal neighbors of (x, y) clipped to the grid
// bounds. Diagonals are excluded and the order is always left, right, up,
// down.
func (s Size) Adjacent4(x, y int) []Point {
	out := make([]Point, 0, len(orthogonal))
	for _, d := range orthogonal {
		nx, ny := x+d.X, y+d.Y
		if s.Contains(nx, ny) {
			out = append(out, Point{X: nx, Y: ny})
		}
	}
	return out
}
