//go:build !ebiten

package main

import (
	"errors"

	"flowergame/internal/app"
	"flowergame/internal/viewer"
)

func play(*viewer.Movie, *app.ViewConfig) error {
	return errors.New("interactive playback requires the ebiten build tag; rebuild with `-tags ebiten` or pass --output to export a GIF")
}
