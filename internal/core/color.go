package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a 24-bit RGB colour.
type Color struct {
	R, G, B uint8
}

// ParseColor parses "#rrggbb" or "rrggbb".
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("core: invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("core: invalid colour %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Lerp blends from c toward o by t in [0, 1].
func (c Color) Lerp(o Color, t float64) Color {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B)}
}

// Shades is the number of opaque colours in a palette. Pixel index Shades is
// transparent.
const Shades = 4

// Palette maps pixel indices 0..3 (darkest to lightest) to colours.
type Palette [Shades]Color

// Background returns the clear colour, the lightest shade.
func (p Palette) Background() Color {
	return p[Shades-1]
}

// Lerp blends every shade from p toward o by t.
func (p Palette) Lerp(o Palette, t float64) Palette {
	var out Palette
	for i := range p {
		out[i] = p[i].Lerp(o[i], t)
	}
	return out
}

// Darken shifts every shade one step darker; the darkest shade is kept.
func (p Palette) Darken() Palette {
	out := p
	for i := Shades - 1; i > 0; i-- {
		out[i] = p[i-1]
	}
	return out
}

// ParsePalette parses exactly four colours.
func ParsePalette(hex []string) (Palette, error) {
	var p Palette
	if len(hex) != Shades {
		return p, fmt.Errorf("core: palette needs %d colours, got %d", Shades, len(hex))
	}
	for i, h := range hex {
		c, err := ParseColor(h)
		if err != nil {
			return p, err
		}
		p[i] = c
	}
	return p, nil
}
