package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/mraof/gbjam5/internal/world"
)

// Cue is a short sound effect.
type Cue int

const (
	CueNone Cue = iota
	CueJump
	CueDeath
	CueCheckpoint
	CueDoor
	CueKey
	CueSwitch
	CueComplete
	CueError
)

// String returns the cue name.
func (c Cue) String() string {
	switch c {
	case CueJump:
		return "jump"
	case CueDeath:
		return "death"
	case CueCheckpoint:
		return "checkpoint"
	case CueDoor:
		return "door"
	case CueKey:
		return "key"
	case CueSwitch:
		return "switch"
	case CueComplete:
		return "complete"
	case CueError:
		return "error"
	default:
		return "none"
	}
}

// CueFor maps a simulation event to its sound effect.
func CueFor(ev world.Event) (Cue, bool) {
	switch ev.(type) {
	case world.Jumped:
		return CueJump, true
	case world.Died:
		return CueDeath, true
	case world.CheckpointSet:
		return CueCheckpoint, true
	case world.DoorOpened:
		return CueDoor, true
	case world.KeyCollected:
		return CueKey, true
	case world.WorldSwitched:
		return CueSwitch, true
	case world.LevelComplete:
		return CueComplete, true
	case world.LevelFailed:
		return CueError, true
	}
	return CueNone, false
}

// note is one square-wave tone. A zero frequency is a rest.
type note struct {
	freq float64
	dur  time.Duration
}

// melody lists the notes of each cue, in the register of a handheld's
// pulse channel.
var melody = map[Cue][]note{
	CueJump:       {{freq: 392, dur: 30 * time.Millisecond}, {freq: 587, dur: 50 * time.Millisecond}},
	CueDeath:      {{freq: 330, dur: 80 * time.Millisecond}, {freq: 262, dur: 80 * time.Millisecond}, {freq: 196, dur: 160 * time.Millisecond}},
	CueCheckpoint: {{freq: 523, dur: 60 * time.Millisecond}, {freq: 659, dur: 60 * time.Millisecond}, {freq: 784, dur: 90 * time.Millisecond}},
	CueDoor:       {{freq: 220, dur: 60 * time.Millisecond}, {freq: 0, dur: 20 * time.Millisecond}, {freq: 220, dur: 60 * time.Millisecond}},
	CueKey:        {{freq: 988, dur: 40 * time.Millisecond}, {freq: 1319, dur: 120 * time.Millisecond}},
	CueSwitch:     {{freq: 131, dur: 100 * time.Millisecond}, {freq: 165, dur: 100 * time.Millisecond}, {freq: 196, dur: 100 * time.Millisecond}, {freq: 262, dur: 200 * time.Millisecond}},
	CueComplete:   {{freq: 523, dur: 80 * time.Millisecond}, {freq: 659, dur: 80 * time.Millisecond}, {freq: 784, dur: 80 * time.Millisecond}, {freq: 1047, dur: 240 * time.Millisecond}},
	CueError:      {{freq: 110, dur: 150 * time.Millisecond}},
}

// Length returns how long a cue plays.
func (c Cue) Length() time.Duration {
	var total time.Duration
	for _, n := range melody[c] {
		total += n.dur
	}
	return total
}

// square generates a square wave at a fixed frequency.
type square struct {
	freq  float64
	phase float64
	rate  beep.SampleRate
	left  int
}

func newSquare(freq float64, dur time.Duration, rate beep.SampleRate) *square {
	return &square{freq: freq, rate: rate, left: rate.N(dur)}
}

func (s *square) Stream(samples [][2]float64) (int, bool) {
	if s.left <= 0 {
		return 0, false
	}
	n := min(len(samples), s.left)
	for i := 0; i < n; i++ {
		val := 0.0
		if s.freq > 0 {
			val = 1.0
			if s.phase >= 0.5 {
				val = -1.0
			}
			s.phase += s.freq / float64(s.rate)
			s.phase -= math.Floor(s.phase)
		}
		samples[i][0] = val
		samples[i][1] = val
	}
	s.left -= n
	return n, true
}

func (s *square) Err() error { return nil }

// Streamer builds the cue's sound at the given sample rate. CueNone yields
// nil.
func (c Cue) Streamer(rate beep.SampleRate) beep.Streamer {
	notes := melody[c]
	if len(notes) == 0 {
		return nil
	}
	parts := make([]beep.Streamer, len(notes))
	for i, n := range notes {
		parts[i] = newSquare(n.freq, n.dur, rate)
	}
	return beep.Seq(parts...)
}
