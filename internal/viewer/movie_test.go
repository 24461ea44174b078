package viewer

import (
	"bytes"
	"errors"
	"image/gif"
	"testing"
	"time"

	"flowergame/internal/flower"
)

func sampleStates() map[int]flower.Snapshot {
	return map[int]flower.Snapshot{
		10: {Turn: 10, Cells: []flower.CellState{
			{Row: 0, Col: 0, Species: 3, HP: 1, Attack: 1},
			{Row: 2, Col: 1, Species: 3, HP: 1, Attack: 1, Corrupted: true},
		}},
		0: {Turn: 0, Cells: []flower.CellState{
			{Row: 0, Col: 3, Species: 5, HP: 1, Attack: 1},
			{Row: 1, Col: 0, Species: 3, HP: 1, Attack: 1},
		}},
		20: {Turn: 20},
	}
}

func TestDimensionsFromMaxima(t *testing.T) {
	size, err := Dimensions(sampleStates())
	if err != nil {
		t.Fatalf("dimensions: %v", err)
	}
	if size.W != 4 || size.H != 3 {
		t.Fatalf("size = %+v, expected 4x3", size)
	}
}

func TestDimensionsEmptyLog(t *testing.T) {
	_, err := Dimensions(map[int]flower.Snapshot{0: {Turn: 0}})
	if !errors.Is(err, ErrEmptyLog) {
		t.Fatalf("expected ErrEmptyLog, got %v", err)
	}
}

func TestMovieFramesAscendByTurn(t *testing.T) {
	m, err := NewMovie(sampleStates(), 1)
	if err != nil {
		t.Fatalf("new movie: %v", err)
	}
	if m.Len() != 3 {
		t.Fatalf("expected 3 frames, got %d", m.Len())
	}
	for i, want := range []int{0, 10, 20} {
		if m.Turn(i) != want {
			t.Fatalf("frame %d shows turn %d, expected %d", i, m.Turn(i), want)
		}
	}
}

func TestMovieColoring(t *testing.T) {
	m, err := NewMovie(sampleStates(), 1)
	if err != nil {
		t.Fatalf("new movie: %v", err)
	}
	w := m.Size().W
	palette := m.Palette()

	frame := m.Frame(1)
	s3, ok := m.SpeciesColor(3)
	if !ok {
		t.Fatal("species 3 should have a color")
	}
	if palette[frame[0]] != s3 {
		t.Fatalf("clean flower should use its species color")
	}
	if palette[frame[2*w+1]] != CorruptedColor {
		t.Fatalf("corrupted flower should use the corrupted color")
	}
	if palette[frame[1]] != EmptyColor {
		t.Fatalf("unoccupied cell should use the empty color")
	}

	for _, idx := range m.Frame(2) {
		if palette[idx] != EmptyColor {
			t.Fatal("empty snapshot should render fully empty")
		}
	}
}

func TestMovieColorsStableForSeed(t *testing.T) {
	a, err := NewMovie(sampleStates(), 9)
	if err != nil {
		t.Fatalf("new movie: %v", err)
	}
	b, err := NewMovie(sampleStates(), 9)
	if err != nil {
		t.Fatalf("new movie: %v", err)
	}
	for _, s := range []flower.Species{3, 5} {
		ca, _ := a.SpeciesColor(s)
		cb, _ := b.SpeciesColor(s)
		if ca != cb {
			t.Fatalf("species %d colored differently for identical seeds", s)
		}
	}
	if len(a.Palette()) != 4 {
		t.Fatalf("expected empty, corrupted and two species colors, got %d", len(a.Palette()))
	}
}

func TestEncodeGIF(t *testing.T) {
	m, err := NewMovie(sampleStates(), 1)
	if err != nil {
		t.Fatalf("new movie: %v", err)
	}
	var buf bytes.Buffer
	if err := EncodeGIF(&buf, m, 200*time.Millisecond, 3); err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded.Image) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(decoded.Image))
	}
	if decoded.Delay[0] != 20 {
		t.Fatalf("expected 20cs delay, got %d", decoded.Delay[0])
	}
	b := decoded.Image[0].Bounds()
	if b.Dx() != 12 || b.Dy() != 9 {
		t.Fatalf("frame bounds %v, expected 12x9", b)
	}
}

func TestMovieStats(t *testing.T) {
	m, err := NewMovie(sampleStates(), 1)
	if err != nil {
		t.Fatalf("new movie: %v", err)
	}
	got := m.Stats(0)
	want := FrameStats{Turn: 0, Flowers: 2, Corrupted: 0, Species: 2}
	if got != want {
		t.Fatalf("stats = %+v, expected %+v", got, want)
	}
	if got := m.Stats(1); got.Corrupted != 1 || got.Species != 1 {
		t.Fatalf("unexpected stats for turn 10: %+v", got)
	}
}
