// Command flowergame simulates the flower contest on a width x height grid
// and records snapshots of the board to a log file.
//
// Usage:
//
//	flowergame [flags] width height
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"flowergame/internal/app"
	"flowergame/internal/core"
	"flowergame/internal/flower"
	"flowergame/internal/game"
	"flowergame/internal/storage"
)

func main() {
	cfg := app.NewSimConfig()
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	res, err := run(context.Background(), cfg, log.Default())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s after %d turns; %d snapshots in %s\n", res.State, res.Turn, res.Snapshots, cfg.LogFile)
}

func run(ctx context.Context, cfg *app.SimConfig, logger *log.Logger) (game.Result, error) {
	seed := cfg.EffectiveSeed()
	grid, err := flower.NewGrid(cfg.Width, cfg.Height, core.NewRNG(seed))
	if err != nil {
		return game.Result{}, err
	}

	store, info, err := storage.Open(ctx, cfg.Backend, cfg.LogFile, storage.RunInfo{
		Width:  cfg.Width,
		Height: cfg.Height,
		Seed:   seed,
	})
	if err != nil {
		return game.Result{}, err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Printf("close %s: %v", cfg.LogFile, cerr)
		}
	}()

	logger.Printf("Initial seeding (run %s, seed %d)", info.ID, seed)
	grid.Seed()

	return game.New(grid, store, logger).Run(ctx)
}
