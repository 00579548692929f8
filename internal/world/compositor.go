package world

import (
	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/sprite"
)

// DrawRequest places one frame on screen. X and Y are the frame's
// bottom-left corner in screen pixels with y growing upward.
type DrawRequest struct {
	Frame *sprite.Frame
	X, Y  int
	Flip  bool
}

// Camera follow margins.
const (
	camMarginX = core.ScreenW / 2
	camMarginY = core.ScreenH / 2
)

func (l *Level) updateCamera() {
	p := l.Entities[0]
	maxX := core.Max(0, l.grid.PixelWidth()-core.ScreenW)
	l.CamX = core.Clamp(p.X-camMarginX, 0, maxX)
	if l.grid.Wrap {
		l.CamY = p.Y - camMarginY
		return
	}
	maxY := core.Max(0, l.grid.PixelHeight()-core.ScreenH)
	l.CamY = core.Clamp(p.Y-camMarginY, 0, maxY)
}

// Compose builds the draw list for the current tick. While the sequencer
// runs, the cached list of the displayed world is reused and the fade
// overlay is added during the cross-fade.
func (l *Level) Compose() []DrawRequest {
	if !l.Paused {
		l.updateCamera()
		l.cache[l.version] = l.composeWorld(l.version)
	}

	draws := l.backgroundDraws()
	if !l.Paused {
		return append(draws, l.cache[l.version]...)
	}
	draws = append(draws, l.cache[l.shown]...)
	if i, ok := FadeFrame(l.Switch, l.version); ok {
		draws = append(draws, DrawRequest{Frame: l.fade.Frames[i]})
	}
	return draws
}

// backgroundDraws tiles each parallax layer twice across the screen width.
func (l *Level) backgroundDraws() []DrawRequest {
	n := len(l.backgrounds)
	draws := make([]DrawRequest, 0, 2*n)
	for i, bg := range l.backgrounds {
		off := -(i * i * l.CamX) / (n * n) % core.ScreenW
		f := bg.Frame()
		draws = append(draws,
			DrawRequest{Frame: f, X: off},
			DrawRequest{Frame: f, X: off + core.ScreenW},
		)
	}
	return draws
}

// composeWorld emits the visible tiles and the entities of world v relative
// to the camera.
func (l *Level) composeWorld(v core.Version) []DrawRequest {
	var draws []DrawRequest

	x0 := core.FloorDiv(l.CamX, core.TileSize)
	x1 := core.FloorDiv(l.CamX+core.ScreenW-1, core.TileSize)
	y0 := core.FloorDiv(l.CamY, core.TileSize)
	y1 := core.FloorDiv(l.CamY+core.ScreenH-1, core.TileSize)
	x0, x1 = core.Max(x0, 0), core.Min(x1, l.grid.Width-1)
	if !l.grid.Wrap {
		y0, y1 = core.Max(y0, 0), core.Min(y1, l.grid.Height-1)
	}

	unlocked := l.Unlocked()
	for ty := y0; ty <= y1; ty++ {
		for tx := x0; tx <= x1; tx++ {
			vis := l.grid.At(v, tx, ty).VisualFor(unlocked)
			if vis <= 0 || vis >= len(l.visuals) {
				continue
			}
			draws = append(draws, DrawRequest{
				Frame: l.visuals[vis].Frame(),
				X:     tx*core.TileSize - l.CamX,
				Y:     ty*core.TileSize - l.CamY,
			})
		}
	}

	// Player last so it is drawn on top.
	for i := len(l.Entities) - 1; i >= 0; i-- {
		e := l.Entities[i]
		if !e.Versions[v] {
			continue
		}
		spr := l.entitySprite(e, v)
		if spr == nil {
			continue
		}
		draws = append(draws, DrawRequest{
			Frame: spr.Frame(),
			X:     e.X - l.CamX,
			Y:     l.wrapNear(e.Y) - l.CamY,
			Flip:  !e.Facing,
		})
	}
	return draws
}

// wrapNear picks the copy of y closest to the camera in wraparound levels.
func (l *Level) wrapNear(y int) int {
	if !l.grid.Wrap {
		return y
	}
	h := l.grid.PixelHeight()
	mid := l.CamY + core.ScreenH/2
	y = mid + core.Mod(y-mid+h/2, h) - h/2
	return y
}

func (l *Level) entitySprite(e *Entity, v core.Version) *sprite.Sprite {
	switch k := e.Kind.(type) {
	case *Player:
		return k.Sprites[v].For(k.State)
	case *Enemy:
		return k.Sprites[v]
	case *Key:
		return k.Sprite
	}
	return nil
}
