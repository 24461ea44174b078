// Package viewer turns recorded snapshots into an ordered sequence of frames.
package viewer

import (
	"errors"
	"image/color"
	"math/rand/v2"
	"sort"

	"flowergame/internal/core"
	"flowergame/internal/flower"
)

// ErrEmptyLog is returned when no snapshot holds an occupied cell, so the
// board size cannot be derived.
var ErrEmptyLog = errors.New("log holds no occupied cells")

const (
	emptyIndex     = 0
	corruptedIndex = 1
	firstSpecies   = 2
)

var (
	// EmptyColor fills unoccupied cells.
	EmptyColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// CorruptedColor overrides the species color of any corrupted flower.
	CorruptedColor = color.RGBA{R: 255, G: 128, B: 0, A: 255}
)

// Dimensions derives the board size as one past the largest column and row
// seen in any snapshot.
func Dimensions(states map[int]flower.Snapshot) (core.Size, error) {
	maxRow, maxCol := -1, -1
	for _, snap := range states {
		for _, c := range snap.Cells {
			if c.Row > maxRow {
				maxRow = c.Row
			}
			if c.Col > maxCol {
				maxCol = c.Col
			}
		}
	}
	if maxRow < 0 || maxCol < 0 {
		return core.Size{}, ErrEmptyLog
	}
	return core.Size{W: maxCol + 1, H: maxRow + 1}, nil
}

// Movie holds the frames of one recorded game.
type Movie struct {
	size    core.Size
	turns   []int
	states  map[int]flower.Snapshot
	palette []color.RGBA
	index   map[flower.Species]uint16
}

// NewMovie prepares frames for every recorded turn. Species colors are drawn
// from seed in order of first appearance, so the same seed always paints a
// log the same way.
func NewMovie(states map[int]flower.Snapshot, seed int64) (*Movie, error) {
	size, err := Dimensions(states)
	if err != nil {
		return nil, err
	}

	turns := make([]int, 0, len(states))
	for turn := range states {
		turns = append(turns, turn)
	}
	sort.Ints(turns)

	m := &Movie{
		size:    size,
		turns:   turns,
		states:  states,
		palette: []color.RGBA{EmptyColor, CorruptedColor},
		index:   make(map[flower.Species]uint16),
	}
	rng := rand.New(rand.NewPCG(uint64(seed), 0))
	for _, turn := range turns {
		for _, c := range states[turn].Cells {
			if _, ok := m.index[c.Species]; ok {
				continue
			}
			m.index[c.Species] = uint16(len(m.palette))
			m.palette = append(m.palette, randomColor(rng))
		}
	}
	return m, nil
}

func randomColor(rng *rand.Rand) color.RGBA {
	return color.RGBA{R: uint8(rng.IntN(256)), G: uint8(rng.IntN(256)), B: uint8(rng.IntN(256)), A: 255}
}

// Size reports the derived board dimensions.
func (m *Movie) Size() core.Size { return m.size }

// Len reports the number of frames.
func (m *Movie) Len() int { return len(m.turns) }

// Turn returns the turn number shown by frame i.
func (m *Movie) Turn(i int) int { return m.turns[i] }

// Palette returns the color table indexed by Frame values.
func (m *Movie) Palette() []color.RGBA { return m.palette }

// SpeciesColor reports the color assigned to a species.
func (m *Movie) SpeciesColor(s flower.Species) (color.RGBA, bool) {
	idx, ok := m.index[s]
	if !ok {
		return color.RGBA{}, false
	}
	return m.palette[idx], true
}

// Frame returns row-major palette indices for frame i.
func (m *Movie) Frame(i int) []uint16 {
	cells := make([]uint16, m.size.Cells())
	for _, c := range m.states[m.turns[i]].Cells {
		idx := m.index[c.Species]
		if c.Corrupted {
			idx = corruptedIndex
		}
		cells[m.size.Index(c.Col, c.Row)] = idx
	}
	return cells
}

// FrameStats summarises the population shown by one frame.
type FrameStats struct {
	Turn      int
	Flowers   int
	Corrupted int
	Species   int
}

// Stats counts flowers, corrupted flowers and distinct species in frame i.
func (m *Movie) Stats(i int) FrameStats {
	snap := m.states[m.turns[i]]
	st := FrameStats{Turn: m.turns[i], Flowers: len(snap.Cells)}
	seen := make(map[flower.Species]struct{})
	for _, c := range snap.Cells {
		if c.Corrupted {
			st.Corrupted++
		}
		seen[c.Species] = struct{}{}
	}
	st.Species = len(seen)
	return st
}
