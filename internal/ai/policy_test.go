package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

func newBossPolicy(rng Rand, mutate func(*config.Agent)) (*Policy, *Cooldowns) {
	cfg := config.DefaultBoss()
	if mutate != nil {
		mutate(&cfg)
	}
	cd := NewCooldowns(cfg.Attacks, cfg.Counter)
	return NewPolicy(cd, cfg, config.DifficultyNormal.Preset(), rng), cd
}

func TestPolicy_BaselineBands(t *testing.T) {
	p, _ := newBossPolicy(fixedRand(0.99), nil)

	tests := []struct {
		dist float64
		want model.AttackKind
	}{
		{1, model.AttackMelee},
		{3, model.AttackBomb},
		{6, model.AttackDash},
		{10, model.AttackLaser},
		{16, model.AttackProjectile},
		{25, model.AttackNone},
	}
	for _, tt := range tests {
		d := p.Decide(Situation{Distance: tt.dist, Phase: 1})
		assert.Equal(t, tt.want, d.Kind, "distance %.1f", tt.dist)
		if tt.want != model.AttackNone {
			assert.Equal(t, ReasonBaseline, d.Reason)
		}
	}
}

func TestPolicy_SpecialsLockedInPhaseOneDespiteConfig(t *testing.T) {
	p, _ := newBossPolicy(fixedRand(0), func(a *config.Agent) {
		for i := range a.Attacks {
			a.Attacks[i].MinPhase = 1
		}
	})

	d := p.Decide(Situation{Distance: 6, Phase: 1})
	assert.Equal(t, model.AttackDash, d.Kind)
	assert.Equal(t, ReasonBaseline, d.Reason)

	d = p.Decide(Situation{Distance: 6, Phase: 2})
	assert.Equal(t, model.AttackDroneSpawn, d.Kind)
	assert.Equal(t, ReasonSpecial, d.Reason)
}

func TestPolicy_SpecialsGatedByPhase(t *testing.T) {
	p, _ := newBossPolicy(fixedRand(0), nil)

	assert.Equal(t, model.AttackDash, p.Decide(Situation{Distance: 6, Phase: 1}).Kind)

	d := p.Decide(Situation{Distance: 6, Phase: 2})
	assert.Equal(t, model.AttackDroneSpawn, d.Kind)
	assert.Equal(t, ReasonSpecial, d.Reason)
}

func TestPolicy_SpecialPriorityAndChance(t *testing.T) {
	p, _ := newBossPolicy(fixedRand(0.015), nil)

	assert.Equal(t, model.AttackGroundSlam, p.Decide(Situation{Distance: 3, Phase: 2}).Kind)
	assert.Equal(t, model.AttackRocket, p.Decide(Situation{Distance: 8, Phase: 3}).Kind)

	q, _ := newBossPolicy(fixedRand(0.5), nil)
	assert.Equal(t, model.AttackDash, q.Decide(Situation{Distance: 8, Phase: 3}).Kind)
}

func TestPolicy_RespectsCooldowns(t *testing.T) {
	p, cd := newBossPolicy(fixedRand(0.99), nil)

	cd.Trigger(model.AttackMelee, 1)
	assert.Equal(t, model.AttackProjectile, p.Decide(Situation{Distance: 1, Phase: 1}).Kind)

	cd.Trigger(model.AttackProjectile, 1)
	assert.Equal(t, model.AttackNone, p.Decide(Situation{Distance: 1, Phase: 1}).Kind)

	cd.Tick(10)
	assert.Equal(t, model.AttackMelee, p.Decide(Situation{Distance: 1, Phase: 1}).Kind)
}

func TestPolicy_AdaptsToJumpingTarget(t *testing.T) {
	p, _ := newBossPolicy(fixedRand(0.99), nil)
	jumpy := Biases{JumpFrequency: 0.5}

	d := p.Decide(Situation{Distance: 8, Phase: 1, ModelReady: true, Biases: jumpy})
	assert.Equal(t, model.AttackLaser, d.Kind)
	assert.Equal(t, ReasonAdaptive, d.Reason)

	assert.Equal(t, model.AttackDash, p.Decide(Situation{Distance: 8, Phase: 1, Biases: jumpy}).Kind,
		"biases are ignored until the model is ready")
}

func TestPolicy_AdaptsToDodgingTarget(t *testing.T) {
	p, cd := newBossPolicy(fixedRand(0.99), nil)
	dodgy := Biases{DodgeLeft: 0.7}

	assert.Equal(t, model.AttackProjectile,
		p.Decide(Situation{Distance: 16, Phase: 1, ModelReady: true, Biases: dodgy}).Kind,
		"bomb cannot reach")

	cd.Trigger(model.AttackMelee, 1)
	d := p.Decide(Situation{Distance: 1, Phase: 1, ModelReady: true, Biases: dodgy})
	assert.Equal(t, model.AttackBomb, d.Kind)
	assert.Equal(t, ReasonAdaptive, d.Reason)
}

func TestPolicy_ReactiveTeleport(t *testing.T) {
	p, cd := newBossPolicy(fixedRand(0.99), nil)

	d := p.Decide(Situation{Distance: 1, Phase: 2, RecentDamage: 350})
	assert.Equal(t, model.AttackTeleport, d.Kind)
	assert.Equal(t, ReasonReactive, d.Reason)

	assert.Equal(t, model.AttackMelee, p.Decide(Situation{Distance: 1, Phase: 1, RecentDamage: 350}).Kind)
	assert.Equal(t, model.AttackMelee, p.Decide(Situation{Distance: 1, Phase: 2, RecentDamage: 100}).Kind)

	cd.Trigger(model.AttackTeleport, 1)
	assert.Equal(t, model.AttackMelee, p.Decide(Situation{Distance: 1, Phase: 2, RecentDamage: 350}).Kind)
}

func TestPolicy_CheckCounter(t *testing.T) {
	certain := func(a *config.Agent) { a.Counter.Chance = 1 }

	tests := []struct {
		name   string
		rng    fixedRand
		mutate func(*config.Agent)
		sit    Situation
		want   bool
	}{
		{"fast approach in range", 0.99, certain, Situation{Distance: 2, ClosingSpeed: 5}, true},
		{"too slow", 0.99, certain, Situation{Distance: 2, ClosingSpeed: 3}, false},
		{"out of range", 0.99, certain, Situation{Distance: 4, ClosingSpeed: 5}, false},
		{"retreating", 0.99, certain, Situation{Distance: 2, ClosingSpeed: -5}, false},
		{"draw misses", 0.5, nil, Situation{Distance: 2, ClosingSpeed: 5}, false},
		{"draw hits", 0.2, nil, Situation{Distance: 2, ClosingSpeed: 5}, true},
		{"aggressive target doubles chance", 0.5, nil,
			Situation{Distance: 2, ClosingSpeed: 5, ModelReady: true, Biases: Biases{Aggressiveness: 1}}, true},
		{"disabled", 0, func(a *config.Agent) { a.Counter.Enabled = false }, Situation{Distance: 2, ClosingSpeed: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newBossPolicy(tt.rng, tt.mutate)
			assert.Equal(t, tt.want, p.CheckCounter(tt.sit))
		})
	}
}

func TestPolicy_CounterCooldown(t *testing.T) {
	p, cd := newBossPolicy(fixedRand(0), nil)
	s := Situation{Distance: 2, ClosingSpeed: 5}

	assert.True(t, p.CheckCounter(s))
	cd.Trigger(model.AttackCounter, 1)
	assert.False(t, p.CheckCounter(s))
}
