//go:build ebiten

package app

import (
	"fmt"
	"time"

	"flowergame/internal/core"
	"flowergame/internal/render"
	"flowergame/internal/ui"
	"flowergame/internal/viewer"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const hudWidth = 180

// Viewer adapts a recorded movie to the ebiten.Game interface.
type Viewer struct {
	movie   *viewer.Movie
	painter *render.GridPainter
	hud     *ui.HUD
	step    *core.FixedStep

	scale    int
	frame    int
	paused   bool
	tickOnce bool
}

// NewViewer constructs a Viewer that advances one frame per interval.
func NewViewer(movie *viewer.Movie, scale int, interval time.Duration) *Viewer {
	size := movie.Size()
	return &Viewer{
		movie:   movie,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(hudWidth),
		step:    core.NewFixedStep(interval),
		scale:   scale,
	}
}

// Update handles input and advances playback, looping at the end.
func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		v.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.frame = 0
	}

	advance := v.step.ShouldStep()
	if (!v.paused && advance) || v.tickOnce {
		v.frame = (v.frame + 1) % v.movie.Len()
		v.tickOnce = false
	}
	return nil
}

// Draw renders the current frame and the status panel.
func (v *Viewer) Draw(screen *ebiten.Image) {
	v.painter.Blit(screen, v.movie.Frame(v.frame), v.movie.Palette(), v.scale)

	st := v.movie.Stats(v.frame)
	lines := []string{
		fmt.Sprintf("turn %d", st.Turn),
		fmt.Sprintf("frame %d/%d", v.frame+1, v.movie.Len()),
		fmt.Sprintf("flowers %d", st.Flowers),
		fmt.Sprintf("corrupted %d", st.Corrupted),
		fmt.Sprintf("species %d", st.Species),
	}
	if v.paused {
		lines = append(lines, "paused")
	}
	w, h := v.painter.Size()
	v.hud.Draw(screen, w*v.scale, h*v.scale, lines)
}

// Layout returns the logical screen size.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := v.painter.Size()
	return ScreenSize(w, h, v.scale, v.hud.Width())
}
