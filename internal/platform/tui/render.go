package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mraof/gbjam5/internal/core"
)

// halfBlock shows the upper pixel in the foreground and the lower pixel in
// the background, so one cell holds two pixel rows.
const halfBlock = "▀"

// HalfBlocks renders an indexed screen as true-colour half-block text.
// Styles are cached per colour pair.
type HalfBlocks struct {
	renderer *lipgloss.Renderer
	palette  core.Palette
	styles   map[[2]uint8]lipgloss.Style
}

// NewHalfBlocks creates a renderer. A nil lipgloss renderer uses the default
// one for stdout.
func NewHalfBlocks(r *lipgloss.Renderer) *HalfBlocks {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &HalfBlocks{renderer: r, styles: make(map[[2]uint8]lipgloss.Style)}
}

// SetPalette changes the colours; cached styles are dropped.
func (h *HalfBlocks) SetPalette(p core.Palette) {
	if p == h.palette && len(h.styles) > 0 {
		return
	}
	h.palette = p
	clear(h.styles)
}

func (h *HalfBlocks) style(top, bottom uint8) lipgloss.Style {
	key := [2]uint8{top % core.Shades, bottom % core.Shades}
	if s, ok := h.styles[key]; ok {
		return s
	}
	s := h.renderer.NewStyle().
		Foreground(lipgloss.Color(h.palette[key[0]].Hex())).
		Background(lipgloss.Color(h.palette[key[1]].Hex()))
	h.styles[key] = s
	return s
}

// Render converts the screen to ceil(height/2) lines of width cells.
// Adjacent cells with the same colour pair share one escape sequence.
func (h *HalfBlocks) Render(s *core.Screen) string {
	w, ht := s.Width(), s.Height()
	var sb strings.Builder
	sb.Grow(w * (ht/2 + 1) * 4)

	bg := uint8(core.Shades - 1)
	for y := 0; y < ht; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		top := s.Row(y)
		var bottom []uint8
		if y+1 < ht {
			bottom = s.Row(y + 1)
		}
		lower := func(x int) uint8 {
			if bottom == nil {
				return bg
			}
			return bottom[x]
		}

		x := 0
		for x < w {
			t, b := top[x], lower(x)
			start := x
			for x < w && top[x] == t && lower(x) == b {
				x++
			}
			sb.WriteString(h.style(t, b).Render(strings.Repeat(halfBlock, x-start)))
		}
	}
	return sb.String()
}
