// Package sprite holds multi-frame indexed sprite sheets and the animator
// that steps through them.
//
// Animation is wall-clock based and advances only when a frame is requested,
// so a sprite that is not drawn during a tick does not animate.
package sprite

import (
	"time"

	"github.com/mraof/gbjam5/internal/core"
)

// Frame is one indexed image. Pix holds W*H shade indices, row 0 on top;
// core.Transparent marks see-through pixels.
type Frame struct {
	W, H  int
	Pix   []uint8
	Delay time.Duration
}

// At returns the pixel at (x, y) with y counted from the top row.
func (f *Frame) At(x, y int) uint8 {
	if x < 0 || x >= f.W || y < 0 || y >= f.H {
		return core.Transparent
	}
	return f.Pix[y*f.W+x]
}

// Sheet is a named list of frames.
type Sheet struct {
	Name   string
	Frames []*Frame
}

// Size returns the dimensions of the first frame.
func (s *Sheet) Size() (int, int) {
	if len(s.Frames) == 0 {
		return 0, 0
	}
	return s.Frames[0].W, s.Frames[0].H
}

// Clock supplies the current time to animators.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock only moves when told to.
type ManualClock struct {
	T time.Time
}

// Now returns the stored time.
func (c *ManualClock) Now() time.Time { return c.T }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.T = c.T.Add(d) }

// Sprite is an animated instance of a sheet. Several tiles may share one
// Sprite, in which case they animate in lockstep.
type Sprite struct {
	sheet *Sheet
	clock Clock
	index int
	since time.Time
}

// New creates a sprite positioned on the first frame.
func New(sheet *Sheet, clock Clock) *Sprite {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Sprite{sheet: sheet, clock: clock, since: clock.Now()}
}

// Sheet returns the underlying sheet.
func (s *Sprite) Sheet() *Sheet {
	return s.sheet
}

// Frame returns the frame to draw now. When the current frame has been shown
// for longer than its delay the animation steps once first.
func (s *Sprite) Frame() *Frame {
	if len(s.sheet.Frames) == 0 {
		return nil
	}
	now := s.clock.Now()
	cur := s.sheet.Frames[s.index]
	if now.Sub(s.since) > cur.Delay {
		s.index = (s.index + 1) % len(s.sheet.Frames)
		s.since = now
	}
	return s.sheet.Frames[s.index]
}

// Reset restarts the animation on the first frame.
func (s *Sprite) Reset() {
	s.index = 0
	s.since = s.clock.Now()
}

// Index returns the current frame index.
func (s *Sprite) Index() int {
	return s.index
}

// OnLastFrame reports whether the animation sits on its final frame.
func (s *Sprite) OnLastFrame() bool {
	return s.index == len(s.sheet.Frames)-1
}
