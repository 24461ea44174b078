//go:build ebiten

package main

import (
	"errors"

	"flowergame/internal/app"
	"flowergame/internal/viewer"

	"github.com/hajimehoshi/ebiten/v2"
)

func play(movie *viewer.Movie, cfg *app.ViewConfig) error {
	v := app.NewViewer(movie, cfg.Scale, cfg.FrameInterval())
	w, h := v.Layout(0, 0)

	ebiten.SetWindowTitle(windowTitle(cfg.LogFile))
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(v); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
