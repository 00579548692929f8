package world

import "github.com/mraof/gbjam5/internal/core"

// Palette variant indices.
const (
	PaletteLife = iota
	PaletteDeath
	PaletteLifeEdge
	PaletteDeathEdge
	PaletteBlend25
	PaletteBlend50
	PaletteBlend75
	PaletteCount
)

// Palettes holds every variant a frame may select.
type Palettes [PaletteCount]core.Palette

// BuildPalettes derives the edge and blend variants from the two base
// palettes. Blends run from life toward death.
func BuildPalettes(life, death core.Palette) Palettes {
	var p Palettes
	p[PaletteLife] = life
	p[PaletteDeath] = death
	p[PaletteLifeEdge] = life.Darken()
	p[PaletteDeathEdge] = death.Darken()
	p[PaletteBlend25] = life.Lerp(death, 0.25)
	p[PaletteBlend50] = life.Lerp(death, 0.5)
	p[PaletteBlend75] = life.Lerp(death, 0.75)
	return p
}

func basePalette(v core.Version) int {
	if v == core.Death {
		return PaletteDeath
	}
	return PaletteLife
}

func edgePalette(v core.Version) int {
	if v == core.Death {
		return PaletteDeathEdge
	}
	return PaletteLifeEdge
}

// blendToward returns the blend that is quarters/4 of the way from the other
// world toward in.
func blendToward(in core.Version, quarters int) int {
	if in == core.Life {
		quarters = 4 - quarters
	}
	return PaletteBlend25 + quarters - 1
}

// Sequencer timing, in ticks remaining on the countdown.
const (
	switchTicks = 60
	edgeOutFrom = 57
	edgeInFrom  = 48
	fadeHalf    = 33
	fadeFrom    = 18
	commitAt    = 17
	blend75From = 9
	fadeFrames  = 5
	fadeStep    = 6
)

// PaletteFor maps the countdown and the incoming world to a palette index.
// The two edge phases come first, then the cross-fade walks the blends
// toward the incoming world before the tail settles on its edge.
func PaletteFor(sw int, in core.Version) int {
	switch {
	case sw <= 0:
		return basePalette(in)
	case sw >= edgeOutFrom:
		return edgePalette(in.Other())
	case sw >= edgeInFrom:
		return edgePalette(in)
	case sw >= fadeHalf:
		return blendToward(in, 1)
	case sw >= fadeFrom:
		return PaletteBlend50
	case sw >= blend75From:
		return blendToward(in, 3)
	default:
		return edgePalette(in)
	}
}

// FadeFrame returns the fade overlay frame for the countdown, if any.
func FadeFrame(sw int, in core.Version) (int, bool) {
	if sw < fadeFrom || sw >= edgeInFrom {
		return 0, false
	}
	i := (sw - fadeFrom) / fadeStep
	if in == core.Life {
		i = fadeFrames - 1 - i
	}
	return i, true
}
