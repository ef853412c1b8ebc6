package world

import (
	"math"
	"testing"

	"github.com/udisondev/bossmind/internal/combat"
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

const tickDT = 1.0 / 60

type fakeCombatant struct {
	id      uint32
	pos     model.Vec2
	state   model.State
	damage  float64
	hits    []model.AttackKind
	amounts []float64
}

func (f *fakeCombatant) ID() uint32         { return f.id }
func (f *fakeCombatant) State() model.State { return f.state }
func (f *fakeCombatant) Agent() model.Agent { return model.Agent{ID: f.id, Position: f.pos, Facing: 1} }
func (f *fakeCombatant) TakeDamage(amount float64) combat.HealthChange {
	f.damage += amount
	return combat.HealthChange{Incoming: amount, Applied: amount}
}
func (f *fakeCombatant) ReportHit(kind model.AttackKind, amount float64) {
	f.hits = append(f.hits, kind)
	f.amounts = append(f.amounts, amount)
}

func testArena() *Arena {
	return NewArena(config.ArenaConfig{
		MinX:    -20,
		MaxX:    20,
		GroundY: 0,
		Walls:   []config.Wall{{X: 0, Bottom: 0, Top: 3}},
	})
}

func still(spawnX float64) config.TargetConfig {
	cfg := config.DefaultTarget()
	cfg.Behavior = config.BehaviorIdle
	cfg.SpawnX = spawnX
	cfg.JumpChance = 0
	cfg.DashChance = 0
	return cfg
}

func steady(behavior string, spawnX float64) config.TargetConfig {
	cfg := still(spawnX)
	cfg.Behavior = behavior
	return cfg
}

func addDummy(t *testing.T, a *Arena, cfg config.TargetConfig) *Dummy {
	t.Helper()
	d := NewDummy(a.IDs().NextTargetID(), cfg, a.Config().GroundY, 1)
	a.AddTarget(d)
	return d
}

func stepFor(a *Arena, seconds float64) {
	for range int(math.Round(seconds / tickDT)) {
		a.Step(tickDT)
	}
}
