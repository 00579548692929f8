// Package render turns simulation draw lists into pixels.
package render

import (
	"image"
	"image/color"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/world"
)

// Rasterize clears the screen and draws every request in order. Draw
// positions are y-up from the bottom-left; frames store their top row first.
func Rasterize(screen *core.Screen, draws []world.DrawRequest) {
	screen.Clear()
	h := screen.Height()
	for _, d := range draws {
		f := d.Frame
		if f == nil {
			continue
		}
		top := h - (d.Y + f.H)
		for row := 0; row < f.H; row++ {
			sy := top + row
			if sy < 0 || sy >= h {
				continue
			}
			for col := 0; col < f.W; col++ {
				src := col
				if d.Flip {
					src = f.W - 1 - col
				}
				screen.Set(d.X+col, sy, f.At(src, row))
			}
		}
	}
}

// RGBA resolves the screen through a palette into dst, allocating it when nil
// or the wrong size.
func RGBA(screen *core.Screen, palette core.Palette, dst *image.RGBA) *image.RGBA {
	w, h := screen.Width(), screen.Height()
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	var lut [core.Shades]color.RGBA
	for i, c := range palette {
		lut[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	}
	for y := 0; y < h; y++ {
		row := screen.Row(y)
		off := y * dst.Stride
		for x, idx := range row {
			c := lut[idx%core.Shades]
			p := dst.Pix[off+4*x : off+4*x+4 : off+4*x+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
	}
	return dst
}
