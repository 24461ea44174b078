package flower

// CellState is the exported state of one occupied cell.
type CellState struct {
	Row, Col  int
	Species   Species
	HP        int
	Attack    int
	Corrupted bool
}

// Snapshot is a point-in-time copy of every occupied cell, listed in
// row-major discovery order.
type Snapshot struct {
	Turn  int
	Cells []CellState
}

// Snapshot copies the current occupants. The result shares no memory with the
// grid.
func (g *Grid) Snapshot(turn int) Snapshot {
	snap := Snapshot{Turn: turn, Cells: make([]CellState, 0, g.Count())}
	for y := 0; y < g.size.H; y++ {
		for x := 0; x < g.size.W; x++ {
			f := g.At(x, y)
			if f == nil {
				continue
			}
			snap.Cells = append(snap.Cells, CellState{
				Row:       y,
				Col:       x,
				Species:   f.species,
				HP:        f.HP,
				Attack:    f.Attack,
				Corrupted: f.Corrupted,
			})
		}
	}
	return snap
}
