//go:build ebiten

package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const lineHeight = 16

// HUD renders a text panel to the right of the board.
type HUD struct {
	width      int
	panel      *ebiten.Image
	lastHeight int
}

// NewHUD constructs a HUD with the given panel width. A non-positive width
// disables the panel.
func NewHUD(width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{width: width}
}

// Width reports the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Draw paints the panel at offsetX with one entry of lines per row.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int, lines []string) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	for i, line := range lines {
		text.Draw(h.panel, line, basicfont.Face7x13, 8, lineHeight*(i+1), color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
