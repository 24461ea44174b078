package viewer

import (
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"time"

	"flowergame/internal/render"
)

// EncodeGIF writes every frame as one looping animated GIF. Each cell becomes
// a scale*scale block.
func EncodeGIF(w io.Writer, m *Movie, interval time.Duration, scale int) error {
	if m.Len() == 0 {
		return ErrEmptyLog
	}
	if scale < 1 {
		scale = 1
	}
	delay := int(interval / (10 * time.Millisecond))
	if delay < 1 {
		delay = 1
	}

	size := m.Size()
	bounds := image.Rect(0, 0, size.W*scale, size.H*scale)
	anim := &gif.GIF{}
	exact := len(m.Palette()) <= 256
	var pal color.Palette
	if exact {
		pal = make(color.Palette, len(m.Palette()))
		for i, c := range m.Palette() {
			pal[i] = c
		}
	}

	for i := 0; i < m.Len(); i++ {
		cells := render.Upscale(m.Frame(i), size.W, size.H, scale)
		var frame *image.Paletted
		if exact {
			frame = image.NewPaletted(bounds, pal)
			for j, c := range cells {
				frame.Pix[j] = uint8(c)
			}
		} else {
			rgba := image.NewRGBA(bounds)
			render.FillPaletteRGBA(rgba.Pix, cells, m.Palette())
			frame = image.NewPaletted(bounds, palette.Plan9)
			draw.Draw(frame, bounds, rgba, image.Point{}, draw.Src)
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	return gif.EncodeAll(w, anim)
}

// WriteGIF encodes the movie to path.
func WriteGIF(path string, m *Movie, interval time.Duration, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeGIF(f, m, interval, scale); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
