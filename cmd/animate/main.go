// Command animate replays a flower game log, either in a window or as an
// animated GIF.
//
// Usage:
//
//	animate [flags] logfile
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"flowergame/internal/app"
	"flowergame/internal/storage"
	"flowergame/internal/viewer"
)

func main() {
	cfg := app.NewViewConfig()
	if err := cfg.Parse(flag.CommandLine, os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	movie, err := load(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Output != "" {
		if err := viewer.WriteGIF(cfg.Output, movie, cfg.FrameInterval(), cfg.Scale); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d frames to %s", movie.Len(), cfg.Output)
		return
	}

	if err := play(movie, cfg); err != nil {
		log.Fatal(err)
	}
}

func load(ctx context.Context, cfg *app.ViewConfig) (*viewer.Movie, error) {
	states, err := storage.Load(ctx, cfg.LogFile, cfg.Run)
	if err != nil {
		return nil, err
	}
	return viewer.NewMovie(states, cfg.EffectiveSeed())
}

func windowTitle(logFile string) string {
	return "flowergame: " + logFile
}
