package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

func TestDummy_RusherClosesAndStrikes(t *testing.T) {
	t.Parallel()

	a := testArena()
	a.cfg.Walls = nil
	foe := &fakeCombatant{id: 0x10000001, pos: model.V(0, 0), state: model.StatePatrol}
	a.AddCombatant(foe)
	d := addDummy(t, a, steady(config.BehaviorRusher, 10))

	stepFor(a, 1)
	x := d.Position().X
	assert.InDelta(t, 5, x, 0.2)

	stepFor(a, 2)
	assert.Greater(t, foe.damage, 0.0)
	dealt, _ := d.Stats()
	assert.InDelta(t, foe.damage, dealt, 1e-9)
	assert.LessOrEqual(t, d.Position().X, 1.8)
}

func TestDummy_KiterBacksOff(t *testing.T) {
	t.Parallel()

	a := testArena()
	a.cfg.Walls = nil
	foe := &fakeCombatant{id: 0x10000001, pos: model.V(6, 0), state: model.StatePatrol}
	a.AddCombatant(foe)
	d := addDummy(t, a, steady(config.BehaviorKiter, 10))

	stepFor(a, 0.5)
	assert.Greater(t, d.Position().X, 10.0)
	assert.Greater(t, foe.damage, 0.0, "kiter shoots while in range")
}

func TestDummy_KiterNeedsLineOfSight(t *testing.T) {
	t.Parallel()

	a := testArena()
	foe := &fakeCombatant{id: 0x10000001, pos: model.V(-3, 0), state: model.StatePatrol}
	a.AddCombatant(foe)
	addDummy(t, a, steady(config.BehaviorKiter, 3))

	stepFor(a, 0.3)
	assert.Zero(t, foe.damage)
}

func TestDummy_IgnoresDeadFoes(t *testing.T) {
	t.Parallel()

	a := testArena()
	foe := &fakeCombatant{id: 0x10000001, pos: model.V(0, 0), state: model.StateDead}
	a.AddCombatant(foe)
	d := addDummy(t, a, steady(config.BehaviorRusher, 10))

	stepFor(a, 1)
	assert.InDelta(t, 10, d.Position().X, 1e-9)
}

func TestDummy_JumpsAndLands(t *testing.T) {
	t.Parallel()

	a := testArena()
	foe := &fakeCombatant{id: 0x10000001, pos: model.V(19, 0), state: model.StatePatrol}
	a.AddCombatant(foe)
	cfg := steady(config.BehaviorJumper, 18)
	cfg.JumpChance = 100
	d := addDummy(t, a, cfg)

	a.Step(tickDT)
	snap, ok := d.Snapshot()
	require.True(t, ok)
	assert.False(t, snap.Grounded)
	assert.Greater(t, snap.Velocity.Y, 0.0)

	peak := 0.0
	for range 120 {
		a.Step(tickDT)
		peak = max(peak, d.Position().Y)
	}
	assert.Greater(t, peak, 0.5)
	assert.GreaterOrEqual(t, d.Position().Y, 0.0)
}

func TestDummy_DashSetsFlag(t *testing.T) {
	t.Parallel()

	a := testArena()
	a.cfg.Walls = nil
	foe := &fakeCombatant{id: 0x10000001, pos: model.V(-15, 0), state: model.StatePatrol}
	a.AddCombatant(foe)
	cfg := steady(config.BehaviorRusher, 10)
	cfg.DashChance = 1000
	d := addDummy(t, a, cfg)

	a.Step(tickDT)
	snap, _ := d.Snapshot()
	assert.True(t, snap.Dashing)
	assert.InDelta(t, -cfg.DashSpeed, snap.Velocity.X, 1e-9)
}

func TestDummy_StaysInArena(t *testing.T) {
	t.Parallel()

	a := testArena()
	foe := &fakeCombatant{id: 0x10000001, pos: model.V(15, 0), state: model.StatePatrol}
	a.AddCombatant(foe)
	d := addDummy(t, a, steady(config.BehaviorKiter, 19))

	stepFor(a, 3)
	assert.InDelta(t, 20, d.Position().X, 1e-9)
}

func TestDummy_DeadStopsMoving(t *testing.T) {
	t.Parallel()

	a := testArena()
	foe := &fakeCombatant{id: 0x10000001, pos: model.V(0, 0), state: model.StatePatrol}
	a.AddCombatant(foe)
	d := addDummy(t, a, steady(config.BehaviorRusher, 10))
	d.TakeDamage(d.Health().Max())

	stepFor(a, 1)
	snap, ok := d.Snapshot()
	require.True(t, ok)
	assert.False(t, snap.Alive)
	assert.InDelta(t, 10, snap.Position.X, 1e-9)
	_, hits := d.Stats()
	assert.Equal(t, 1, hits)
}
