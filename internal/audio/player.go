// Package audio plays short square-wave cues for simulation events.
package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/mraof/gbjam5/internal/world"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes cues onto the speaker. A Player that was never started (or
// failed to start) accepts cues and drops them.
type Player struct {
	mu      sync.Mutex
	mixer   *beep.Mixer
	volume  float64
	started bool
	logger  *log.Logger

	// played counts cues per kind, started or not.
	played map[Cue]int
}

// NewPlayer creates a silent player. volume is in [0, 1].
func NewPlayer(volume float64, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.Default()
	}
	return &Player{
		mixer:  &beep.Mixer{},
		volume: clampVolume(volume),
		logger: logger,
		played: make(map[Cue]int),
	}
}

func clampVolume(v float64) float64 {
	return max(0, min(1, v))
}

// Start opens the speaker.
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}

// SetVolume changes the gain of cues played from now on.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clampVolume(v)
}

// Play queues one cue.
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := c.Streamer(sampleRate)
	if s == nil {
		return
	}
	p.played[c]++
	if !p.started {
		return
	}
	// Gain scales by 1+Gain; square waves are loud at full scale.
	gained := &effects.Gain{Streamer: s, Gain: p.volume*0.25 - 1}
	speaker.Lock()
	p.mixer.Add(gained)
	speaker.Unlock()
}

// Handle plays the cue of every event in a frame.
func (p *Player) Handle(events []world.Event) {
	for _, ev := range events {
		if c, ok := CueFor(ev); ok {
			p.logger.Debug("cue", "cue", c)
			p.Play(c)
		}
	}
}

// Played returns how many times a cue was requested.
func (p *Player) Played(c Cue) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[c]
}
