// Package render converts palette-indexed cell buffers into RGBA pixels.
package render

import "image/color"

// FillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black. Indices
// past the end of the palette use its last entry.
func FillPaletteRGBA(buf []byte, cells []uint16, palette []color.RGBA) {
	if len(palette) == 0 {
		for i := range cells {
			base := i * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			buf[base+3] = 0
		}
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := int(c)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Upscale repeats every cell of a w*h index buffer into a scale*scale block.
func Upscale(cells []uint16, w, h, scale int) []uint16 {
	if scale <= 1 {
		out := make([]uint16, len(cells))
		copy(out, cells)
		return out
	}
	sw := w * scale
	out := make([]uint16, sw*h*scale)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := cells[y*w+x]
			for dy := 0; dy < scale; dy++ {
				row := (y*scale + dy) * sw
				for dx := 0; dx < scale; dx++ {
					out[row+x*scale+dx] = v
				}
			}
		}
	}
	return out
}
