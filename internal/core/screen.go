package core

// Transparent is the pixel index that leaves the destination untouched.
const Transparent uint8 = Shades

// Screen is an indexed pixel buffer. Row 0 is the top row, as displays expect.
// It decouples rendering from any frontend: the simulation output is
// rasterised here and frontends resolve indices through the active palette.
type Screen struct {
	width  int
	height int
	pix    []uint8
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height),
	}
	s.Clear()
	return s
}

// Width returns the screen width in pixels.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in pixels.
func (s *Screen) Height() int {
	return s.height
}

// Clear fills the entire screen with the background shade.
func (s *Screen) Clear() {
	s.Fill(Shades - 1)
}

// Fill fills the entire screen with the given index.
func (s *Screen) Fill(idx uint8) {
	for i := range s.pix {
		s.pix[i] = idx
	}
}

// Set places an index at the given position.
// Out-of-bounds coordinates and the transparent index are silently ignored.
func (s *Screen) Set(x, y int, idx uint8) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height || idx >= Transparent {
		return
	}
	s.pix[y*s.width+x] = idx
}

// Get returns the index at the given position.
// Returns the background shade for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) uint8 {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Shades - 1
	}
	return s.pix[y*s.width+x]
}

// Row returns row y of the buffer. The slice aliases the screen.
func (s *Screen) Row(y int) []uint8 {
	return s.pix[y*s.width : (y+1)*s.width]
}
