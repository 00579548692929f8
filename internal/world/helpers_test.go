package world

import (
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/sprite"
)

const tickDuration = 20 * time.Millisecond

type testAssets struct {
	sheets map[string]*sprite.Sheet
	levels map[string]string
}

func (a *testAssets) Sheet(name string) (*sprite.Sheet, bool) {
	s, ok := a.sheets[name]
	return s, ok
}

func (a *testAssets) LevelText(name string) (string, error) {
	text, ok := a.levels[name]
	if !ok {
		return "", fmt.Errorf("no level %q", name)
	}
	return text, nil
}

func testSheet(name string, frames, w, h int) *sprite.Sheet {
	s := &sprite.Sheet{Name: name}
	for i := 0; i < frames; i++ {
		s.Frames = append(s.Frames, &sprite.Frame{W: w, H: h, Pix: make([]uint8, w*h), Delay: tickDuration})
	}
	return s
}

func newTestAssets(levels map[string]string) *testAssets {
	a := &testAssets{sheets: make(map[string]*sprite.Sheet), levels: levels}
	add := func(name string, frames, w, h int) {
		a.sheets[name] = testSheet(name, frames, w, h)
	}
	for _, name := range RequiredSheets() {
		add(name, 3, 16, 16)
	}
	add(FadeSheet, 5, core.ScreenW, core.ScreenH)
	add(TitleSheet, 1, core.ScreenW, core.ScreenH)
	for _, name := range []string{
		"tiles/ground", "tiles/checkpoint", "tiles/switch", "tiles/door", "tiles/door_closed",
		"tiles/arrow_left", "tiles/arrow_right", "tiles/lock_open", "tiles/lock_closed",
		"enemies/slime_alive", "enemies/slime_dead", "items/key",
	} {
		add(name, 1, 16, 16)
	}
	add("bg/test_0", 1, core.ScreenW, core.ScreenH)
	add("bg/test_1", 1, core.ScreenW, core.ScreenH)
	return a
}

const legend = `#,tiles/ground,solid
C,tiles/checkpoint,checkpoint
S,tiles/switch,switch
D,tiles/door,door,second,tiles/door_closed
M,tiles/door,door,menu
X,tiles/door,door,missing
<,tiles/arrow_left,arrow,left
>,tiles/arrow_right,arrow,right
L,tiles/lock_open,keybackground,tiles/lock_closed
ENTITY
p,player
k,key
e,enemy,enemies/slime,right,collision,gravity,deadly
g,enemy,enemies/slime,left
`

// levelText assembles a level from its size line and both grid blocks.
func levelText(size string, life, death []string) string {
	text := legend + "LEVEL\nbg/test\n" + size + "\n"
	for _, row := range life {
		text += row + "\n"
	}
	for _, row := range death {
		text += row + "\n"
	}
	return text
}

var flatRows = []string{
	"          ",
	"          ",
	"p         ",
	"##########",
}

var emptyDeath = []string{
	"          ",
	"          ",
	"          ",
	"##########",
}

// harness drives a game tick by tick with a manual clock.
type harness struct {
	t      *testing.T
	game   *Game
	assets *testAssets
	clock  *sprite.ManualClock
	last   Frame
}

func newHarness(t *testing.T, levels map[string]string, start string) *harness {
	t.Helper()
	clock := &sprite.ManualClock{T: time.Unix(0, 0)}
	cfg := core.DefaultConfig()
	cfg.StartLevel = start
	assets := newTestAssets(levels)
	g, err := New(assets, cfg, WithClock(clock), WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	if start != "" {
		require.NoError(t, g.LoadLevel(start))
	}
	return &harness{t: t, game: g, assets: assets, clock: clock}
}

// single builds a harness on one level named "first".
func single(t *testing.T, size string, life, death []string) *harness {
	return newHarness(t, map[string]string{"first": levelText(size, life, death)}, "first")
}

func (h *harness) step(buttons ...core.Button) Frame {
	h.clock.Advance(tickDuration)
	h.last = h.game.Step(core.Press(buttons...))
	return h.last
}

func (h *harness) steps(n int, buttons ...core.Button) []Event {
	var events []Event
	for i := 0; i < n; i++ {
		events = append(events, h.step(buttons...).Events...)
	}
	return events
}

// until steps until cond holds, failing after limit ticks.
func (h *harness) until(limit int, cond func() bool, buttons ...core.Button) int {
	h.t.Helper()
	for i := 1; i <= limit; i++ {
		h.step(buttons...)
		if cond() {
			return i
		}
	}
	h.t.Fatalf("condition not met within %d ticks", limit)
	return 0
}

func (h *harness) level() *Level {
	return h.game.Level()
}

func (h *harness) player() (*Entity, *Player) {
	return h.level().player()
}

func hasEvent[T Event](events []Event) bool {
	for _, ev := range events {
		if _, ok := ev.(T); ok {
			return true
		}
	}
	return false
}
