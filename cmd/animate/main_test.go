package main

import (
	"context"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"flowergame/internal/app"
	"flowergame/internal/flower"
	"flowergame/internal/storage"
	"flowergame/internal/viewer"
)

func TestLoadAndExport(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	logPath := filepath.Join(dir, "game_log.db")

	store, _, err := storage.Open(ctx, "sqlite", logPath, storage.RunInfo{Width: 3, Height: 2})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, snap := range []flower.Snapshot{
		{Turn: 0, Cells: []flower.CellState{{Row: 1, Col: 2, Species: 0, HP: 3, Attack: 3}}},
		{Turn: 10, Cells: []flower.CellState{{Row: 0, Col: 0, Species: 0, HP: 3, Attack: 3, Corrupted: true}}},
	} {
		if err := store.WriteSnapshot(ctx, snap); err != nil {
			t.Fatalf("write turn %d: %v", snap.Turn, err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	cfg := app.NewViewConfig()
	cfg.LogFile = logPath
	cfg.Seed = 1
	cfg.Scale = 2
	movie, err := load(ctx, cfg)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if movie.Len() != 2 || movie.Size().W != 3 || movie.Size().H != 2 {
		t.Fatalf("unexpected movie: %d frames, size %+v", movie.Len(), movie.Size())
	}

	out := filepath.Join(dir, "anim.gif")
	if err := viewer.WriteGIF(out, movie, cfg.FrameInterval(), cfg.Scale); err != nil {
		t.Fatalf("write gif: %v", err)
	}
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open gif: %v", err)
	}
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	if len(anim.Image) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(anim.Image))
	}
}

func TestWindowTitle(t *testing.T) {
	got := windowTitle("game_log.db")
	if got != "flowergame: game_log.db" {
		t.Fatalf("windowTitle = %q", got)
	}
	for _, r := range got {
		if r > 0x7f {
			t.Fatalf("window title should be plain ASCII, got %q", got)
		}
	}
}
