// Package storage persists turn snapshots so finished games can be replayed.
package storage

import (
	"context"
	"errors"

	"flowergame/internal/flower"
)

var (
	// ErrDuplicateTurn is returned when a run already holds a snapshot for the
	// turn being written. Snapshots are never merged.
	ErrDuplicateTurn = errors.New("snapshot already recorded for turn")
	// ErrNotFound is returned when a log or run does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNoRun is returned when writing before BeginRun.
	ErrNoRun = errors.New("no active run")
)

// RunInfo describes one recorded game.
type RunInfo struct {
	ID     string
	Width  int
	Height int
	Seed   int64
}

// Store records snapshots for the active run and reads back any recorded run.
type Store interface {
	Init(ctx context.Context) error
	BeginRun(ctx context.Context, run RunInfo) (RunInfo, error)
	WriteSnapshot(ctx context.Context, snap flower.Snapshot) error
	Runs(ctx context.Context) ([]RunInfo, error)
	LoadSnapshots(ctx context.Context, runID string) (map[int]flower.Snapshot, error)
	Close() error
}

func cloneSnapshot(snap flower.Snapshot) flower.Snapshot {
	cells := make([]flower.CellState, len(snap.Cells))
	copy(cells, snap.Cells)
	return flower.Snapshot{Turn: snap.Turn, Cells: cells}
}

func speciesCode(s flower.Species) int64 { return int64(s) }

func speciesFromCode(code int64) flower.Species { return flower.Species(code) }
