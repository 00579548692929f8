package world

import (
	"errors"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraof/gbjam5/internal/core"
	"github.com/mraof/gbjam5/internal/level"
	"github.com/mraof/gbjam5/internal/sprite"
)

func TestMenuEntersStartLevel(t *testing.T) {
	levels := map[string]string{"first": levelText("10,4", flatRows, emptyDeath)}
	h := newHarness(t, levels, "")
	h.game.cfg.StartLevel = "first"
	require.True(t, h.game.InMenu())

	f := h.step()
	assert.True(t, f.PaletteChanged, "first frame always reports the palette")
	require.Len(t, f.Draws, 1)
	assert.Same(t, h.assets.sheets[TitleSheet].Frames[0], f.Draws[0].Frame)
	assert.Equal(t, PaletteLife, f.Palette)

	f = h.step(core.ButtonStart)
	assert.False(t, f.PaletteChanged)
	assert.False(t, h.game.InMenu(), "transition applies after the tick")
	assert.Equal(t, "first", h.level().Name)

	h.steps(3, core.ButtonStart)
	assert.Zero(t, h.level().Switch, "the start press that left the menu does not arm")
}

func TestMenuStartLevelMissing(t *testing.T) {
	h := newHarness(t, map[string]string{}, "")
	h.game.cfg.StartLevel = "nowhere"
	f := h.step(core.ButtonA)
	assert.True(t, h.game.InMenu())
	assert.True(t, hasEvent[LevelFailed](f.Events))
}

func TestSetPalettesRaisesChange(t *testing.T) {
	h := single(t, "10,4", flatRows, emptyDeath)
	h.step()
	assert.False(t, h.step().PaletteChanged)

	life, death := DefaultPalettes()
	h.game.SetPalettes(death, life)
	assert.True(t, h.step().PaletteChanged)
	assert.False(t, h.step().PaletteChanged)
	assert.Equal(t, death, h.game.Palettes()[PaletteLife])
}

func TestNewNeedsTitle(t *testing.T) {
	a := newTestAssets(nil)
	delete(a.sheets, TitleSheet)
	_, err := New(a, core.DefaultConfig())
	assert.True(t, errors.Is(err, level.ErrMissingSheet))
}

func TestLoadLevelNeedsPlayerSheets(t *testing.T) {
	a := newTestAssets(map[string]string{"first": levelText("10,4", flatRows, emptyDeath)})
	delete(a.sheets, PlayerSheet(core.Death, Reviving))
	g, err := New(a, core.DefaultConfig(), WithLogger(log.New(io.Discard)))
	require.NoError(t, err)

	err = g.LoadLevel("first")
	require.Error(t, err)
	assert.True(t, errors.Is(err, level.ErrMissingSheet))
	assert.Contains(t, err.Error(), "player/death_revive")
	assert.True(t, g.InMenu())
}

func TestReload(t *testing.T) {
	h := single(t, "10,4", flatRows, emptyDeath)
	h.steps(5, core.ButtonRight)
	require.NotZero(t, h.level().Player().X)

	h.assets.levels["first"] = levelText("10,4", []string{"", "", "   p", "##########"}, emptyDeath)
	require.NoError(t, h.game.Reload("other"))
	assert.NotEqual(t, 48, h.level().Player().X, "other levels are ignored")

	require.NoError(t, h.game.Reload("first"))
	assert.Equal(t, 48, h.level().Player().X)
}

func TestRequiredSheets(t *testing.T) {
	names := RequiredSheets()
	assert.Contains(t, names, FadeSheet)
	assert.Contains(t, names, TitleSheet)
	assert.Contains(t, names, "player/life_stand")
	assert.Contains(t, names, "player/death_revive")
	assert.Len(t, names, 3+2*len(playerAnimations))
}

func TestDeterminism(t *testing.T) {
	levels := map[string]string{
		"first": levelText("10,4",
			[]string{"          ", "    >  #  ", "pk  e   C ", "###  #####"},
			[]string{"          ", "  C       ", "p   g   k ", "##### ####"}),
	}
	buttons := []core.Button{core.ButtonLeft, core.ButtonRight, core.ButtonA, core.ButtonB, core.ButtonStart}

	run := func() []Snapshot {
		h := newHarness(t, levels, "first")
		rng := rand.New(rand.NewSource(42))
		var snaps []Snapshot
		for i := 0; i < 600; i++ {
			var held []core.Button
			for _, b := range buttons {
				if rng.Intn(3) == 0 {
					held = append(held, b)
				}
			}
			h.step(held...)
			snaps = append(snaps, h.game.Snapshot())
		}
		return snaps
	}

	a, b := run(), run()
	require.Len(t, b, len(a))
	for i := range a {
		require.Equal(t, a[i], b[i], "tick %d", i)
	}
}

func TestSnapshotInMenu(t *testing.T) {
	clock := &sprite.ManualClock{T: time.Unix(0, 0)}
	g, err := New(newTestAssets(nil), core.DefaultConfig(), WithClock(clock))
	require.NoError(t, err)
	g.Step(core.NewInputFrame())
	s := g.Snapshot()
	assert.True(t, s.InMenu)
	assert.Equal(t, uint64(1), s.Tick)
	assert.Empty(t, s.Entities)
}
