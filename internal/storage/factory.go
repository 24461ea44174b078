package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"flowergame/internal/flower"
)

// NewStore returns an uninitialised store for the given backend.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "memory":
		return NewMemoryStore(), nil
	case "", "sqlite":
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// Open initialises a store and starts a new run on it, which becomes the
// target of subsequent WriteSnapshot calls.
func Open(ctx context.Context, kind, path string, run RunInfo) (Store, RunInfo, error) {
	store, err := NewStore(kind, path)
	if err != nil {
		return nil, RunInfo{}, err
	}
	if err := store.Init(ctx); err != nil {
		return nil, RunInfo{}, fmt.Errorf("open %s store %q: %w", kind, path, err)
	}
	run, err = store.BeginRun(ctx, run)
	if err != nil {
		_ = store.Close()
		return nil, RunInfo{}, err
	}
	return store, run, nil
}

// Load reads every snapshot of a run from an existing sqlite log. An empty
// runID selects the most recent run.
func Load(ctx context.Context, path, runID string) (map[int]flower.Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("log %s: %w", path, ErrNotFound)
		}
		return nil, err
	}
	store := NewSQLiteStore(path)
	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("open log %s: %w", path, err)
	}
	defer store.Close()
	return store.LoadSnapshots(ctx, runID)
}
