package render

import (
	"image"
	"testing"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/sprite"
	"github.com/mraof/gbjam5/internal/world"
)

// arrow is 3x2: top row "01.", bottom row "223".
func arrow() *sprite.Frame {
	return &sprite.Frame{W: 3, H: 2, Pix: []uint8{0, 1, core.Transparent, 2, 2, 3}}
}

func TestRasterizeFlipsY(t *testing.T) {
	s := core.NewScreen(8, 4)
	Rasterize(s, []world.DrawRequest{{Frame: arrow(), X: 1, Y: 0}})

	// y=0 is the bottom of the screen, so the frame's bottom row lands on
	// screen row 3.
	tests := []struct {
		x, y int
		want uint8
	}{
		{1, 2, 0}, {2, 2, 1}, {3, 2, core.Shades - 1},
		{1, 3, 2}, {2, 3, 2}, {3, 3, 3},
		{0, 3, core.Shades - 1},
	}
	for _, tc := range tests {
		if got := s.Get(tc.x, tc.y); got != tc.want {
			t.Errorf("Get(%d, %d) = %d, expected %d", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRasterizeHorizontalFlip(t *testing.T) {
	s := core.NewScreen(8, 4)
	Rasterize(s, []world.DrawRequest{{Frame: arrow(), X: 0, Y: 2, Flip: true}})

	if got := s.Get(2, 0); got != 0 {
		t.Errorf("flipped top-right = %d, expected 0", got)
	}
	if got := s.Get(1, 0); got != 1 {
		t.Errorf("flipped top-middle = %d, expected 1", got)
	}
	if got := s.Get(0, 1); got != 3 {
		t.Errorf("flipped bottom-left = %d, expected 3", got)
	}
}

func TestRasterizeTransparencyAndOrder(t *testing.T) {
	s := core.NewScreen(4, 2)
	under := &sprite.Frame{W: 3, H: 2, Pix: []uint8{1, 1, 1, 1, 1, 1}}
	Rasterize(s, []world.DrawRequest{
		{Frame: under},
		{Frame: arrow()},
		{Frame: nil},
	})
	if got := s.Get(2, 0); got != 1 {
		t.Errorf("transparent pixel should keep the layer below, got %d", got)
	}
	if got := s.Get(0, 0); got != 0 {
		t.Errorf("later draws go on top, got %d", got)
	}
}

func TestRasterizeClipsOffscreen(t *testing.T) {
	s := core.NewScreen(4, 4)
	Rasterize(s, []world.DrawRequest{
		{Frame: arrow(), X: -2, Y: 3},
		{Frame: arrow(), X: 3, Y: -1},
	})
	if got := s.Get(0, 0); got != 3 {
		t.Errorf("partially visible frame: Get(0,0) = %d, expected 3", got)
	}
	if got := s.Get(3, 3); got != 0 {
		t.Errorf("partially visible frame: Get(3,3) = %d, expected 0", got)
	}
}

func TestRGBA(t *testing.T) {
	s := core.NewScreen(2, 1)
	s.Set(0, 0, 0)
	life, _ := world.DefaultPalettes()

	img := RGBA(s, life, nil)
	if img.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if c := img.RGBAAt(0, 0); c.R != life[0].R || c.G != life[0].G || c.B != life[0].B || c.A != 0xff {
		t.Errorf("pixel 0 = %v, expected %v", c, life[0])
	}
	if c := img.RGBAAt(1, 0); c.R != life[3].R {
		t.Errorf("cleared pixel = %v, expected background %v", c, life[3])
	}

	again := RGBA(s, life, img)
	if again != img {
		t.Error("a matching destination should be reused")
	}
}
