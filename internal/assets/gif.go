package assets

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/sprite"
)

// DecodeGIF decodes an animated GIF into a sheet. Colours collapse onto the
// four shades by luminance and mostly transparent pixels become transparent.
// Frames are composited over the previous one; disposal methods are ignored.
func DecodeGIF(name string, r io.Reader) (*sprite.Sheet, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("assets: decode gif %s: %w", name, err)
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("assets: gif %s has no frames", name)
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	sheet := &sprite.Sheet{Name: name}
	for i, img := range g.Image {
		draw.Draw(canvas, img.Bounds(), img, img.Bounds().Min, draw.Over)

		w, h := bounds.Dx(), bounds.Dy()
		frame := &sprite.Frame{W: w, H: h, Pix: make([]uint8, w*h)}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				frame.Pix[y*w+x] = shadeOfRGBA(canvas.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y))
			}
		}
		if i < len(g.Delay) {
			frame.Delay = time.Duration(g.Delay[i]) * DelayUnit
		}
		sheet.Frames = append(sheet.Frames, frame)
	}
	return sheet, nil
}

func shadeOfRGBA(c interface{ RGBA() (r, g, b, a uint32) }) uint8 {
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return core.Transparent
	}
	// Rec. 601 luma on 16-bit channels.
	lum := (299*r + 587*g + 114*b) / 1000
	shade := lum * core.Shades / 0x10000
	if shade >= core.Shades {
		shade = core.Shades - 1
	}
	return uint8(shade)
}
