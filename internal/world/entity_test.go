package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mraof/gbjam5/internal/core"
)

func TestEnemyReversesAfterCollision(t *testing.T) {
	rows := []string{
		"          ",
		"          ",
		"p    e  # ",
		"##########",
	}
	h := single(t, "10,4", rows, emptyDeath)
	e := h.level().Entities[1]
	en := e.Kind.(*Enemy)

	h.until(30, func() bool { return e.Collisions.Has(core.DirRight) })
	assert.Equal(t, 112, e.X)
	assert.Equal(t, core.DirRight, en.Dir)

	h.step()
	assert.Equal(t, core.DirLeft, en.Dir, "reverses on the tick after the collision")
	assert.Equal(t, 110, e.X)
	assert.False(t, e.Facing)
}

func TestArrowOverridesDirection(t *testing.T) {
	rows := []string{
		"          ",
		"          ",
		"p  > g    ",
		"##########",
	}
	h := single(t, "10,4", rows, emptyDeath)
	e := h.level().Entities[1]
	en := e.Kind.(*Enemy)
	require.Equal(t, core.DirLeft, en.Dir)

	h.until(40, func() bool { return en.Dir == core.DirRight })
	x := e.X
	h.steps(3)
	assert.Equal(t, x+3, e.X, "walks right after passing the arrow")
	assert.Equal(t, 16, e.Y, "no physics means no gravity")
}

func TestEnemyWithoutCollisionStepsOnePixel(t *testing.T) {
	rows := []string{
		"          ",
		"          ",
		"p    g    ",
		"##########",
	}
	h := single(t, "10,4", rows, emptyDeath)
	e := h.level().Entities[1]
	require.Equal(t, 80, e.X)

	for i := 1; i <= 5; i++ {
		h.step()
		assert.Equal(t, 80-i, e.X, "tick %d", i)
		assert.Equal(t, 16, e.Y, "tick %d", i)
		assert.Zero(t, e.VX, "moves directly, not by velocity")
	}
}

func TestDeadlyEnemyKillsPlayer(t *testing.T) {
	rows := []string{
		"          ",
		"          ",
		"e  p      ",
		"##########",
	}
	h := single(t, "10,4", rows, emptyDeath)
	p, pl := h.player()

	h.until(30, func() bool { return p.Dead })
	events := h.step().Events
	assert.Equal(t, Dying, pl.State)
	assert.True(t, hasEvent[Died](events))
}

func TestEnemyOnlyActsInItsWorld(t *testing.T) {
	death := []string{
		"          ",
		"          ",
		"     e    ",
		"##########",
	}
	h := single(t, "10,4", flatRows, death)
	e := h.level().Entities[1]
	require.Equal(t, [2]bool{false, true}, e.Versions)

	h.steps(5)
	assert.Equal(t, 80, e.X)
}

func TestKeyPickupAndHoming(t *testing.T) {
	rows := []string{
		"          ",
		"          ",
		"pk        ",
		"##########",
	}
	h := single(t, "10,4", rows, emptyDeath)
	p, _ := h.player()
	key := h.level().Entities[1]
	k := key.Kind.(*Key)

	events := h.step(core.ButtonRight).Events
	require.True(t, k.Collected)
	assert.True(t, hasEvent[KeyCollected](events))
	assert.Equal(t, 1, h.level().KeysCollected)
	assert.Equal(t, homingGap, k.Homing)
	assert.Equal(t, [2]bool{true, true}, key.Versions, "collected keys follow into both worlds")

	h.steps(30, core.ButtonRight)
	h.steps(40)
	assert.Equal(t, homingGap, p.X-key.X, "key settles the homing distance behind")
	assert.Equal(t, p.Y, key.Y)
}

func TestKeyInOtherWorldIsNotCollected(t *testing.T) {
	death := []string{
		"          ",
		"          ",
		" k        ",
		"##########",
	}
	h := single(t, "10,4", flatRows, death)
	h.steps(10, core.ButtonRight)
	assert.Zero(t, h.level().KeysCollected)
}

func TestHomeStepNeverOvershoots(t *testing.T) {
	for _, gap := range []int{0, 12, 24} {
		for d := -100; d <= 100; d++ {
			step := homeStep(d, gap)
			excess := core.Abs(d) - gap
			if excess <= 0 {
				assert.Zero(t, step, "d=%d gap=%d", d, gap)
				continue
			}
			assert.Equal(t, core.Sign(d), core.Sign(step), "d=%d gap=%d", d, gap)
			assert.LessOrEqual(t, core.Abs(step), excess, "d=%d gap=%d", d, gap)
		}
	}
}

func TestDoorTransition(t *testing.T) {
	first := levelText("10,4", []string{"", "", "pD", "##########"}, emptyDeath)
	second := levelText("10,4", flatRows, emptyDeath)
	h := newHarness(t, map[string]string{"first": first, "second": second}, "first")
	_, pl := h.player()

	h.steps(4, core.ButtonRight)
	events := h.step(core.ButtonB).Events
	assert.Equal(t, Turning, pl.State)
	assert.True(t, hasEvent[DoorOpened](events))

	h.until(20, func() bool { return h.level().Name == "second" })
	var done *LevelComplete
	for _, ev := range h.last.Events {
		if lc, ok := ev.(LevelComplete); ok {
			done = &lc
		}
	}
	require.NotNil(t, done)
	assert.Equal(t, "first", done.Level)
	assert.Equal(t, "second", done.Next)
	assert.Positive(t, done.Ticks)
}

func TestLockedDoorNeedsKeys(t *testing.T) {
	h := single(t, "10,4", []string{"", "", "pD   k", "##########"}, emptyDeath)
	_, pl := h.player()
	require.Equal(t, 1, h.level().KeysRequired)

	h.steps(4, core.ButtonRight)
	events := h.steps(3, core.ButtonB)
	assert.NotEqual(t, Turning, pl.State)
	assert.False(t, hasEvent[DoorOpened](events))
}

func TestDoorToMissingLevelStays(t *testing.T) {
	h := single(t, "10,4", []string{"", "", "pX", "##########"}, emptyDeath)
	_, pl := h.player()

	h.steps(4, core.ButtonRight)
	h.step(core.ButtonB)
	h.until(20, func() bool { return hasEvent[LevelFailed](h.last.Events) })
	assert.Equal(t, "first", h.level().Name)
	assert.Equal(t, Standing, pl.State)
}

func TestDoorToMenu(t *testing.T) {
	h := single(t, "10,4", []string{"", "", "pM", "##########"}, emptyDeath)
	h.steps(4, core.ButtonRight)
	h.step(core.ButtonB)
	h.until(20, h.game.InMenu)
	assert.Nil(t, h.game.Level())
	assert.True(t, hasEvent[LevelComplete](h.last.Events))
}

func TestCheckpointInLife(t *testing.T) {
	h := single(t, "10,4", []string{"", "", "pC", "##########"}, emptyDeath)
	p, pl := h.player()

	h.steps(4, core.ButtonRight)
	events := h.step(core.ButtonB).Events
	assert.True(t, pl.HasCheckpoint)
	assert.Equal(t, p.X, pl.CheckX)
	assert.Equal(t, p.Y, pl.CheckY)
	assert.True(t, hasEvent[CheckpointSet](events))
	assert.NotEqual(t, Reviving, pl.State)
	assert.Zero(t, h.level().Switch)

	x := p.X
	h.step()
	assert.Equal(t, x, p.X, "the player halts on the checkpoint")
}
