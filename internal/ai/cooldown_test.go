package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

func TestCooldowns_RespectTimer(t *testing.T) {
	cd := NewCooldowns([]config.AttackConfig{
		{Kind: "melee", Cooldown: 1.5, MaxRange: 2},
	}, config.CounterConfig{})

	require.True(t, cd.Ready(model.AttackMelee))
	cd.Trigger(model.AttackMelee, 1)
	assert.False(t, cd.Ready(model.AttackMelee))

	cd.Tick(1.0)
	assert.False(t, cd.Ready(model.AttackMelee))
	assert.InDelta(t, 0.5, cd.Get(model.AttackMelee).Remaining, 1e-9)

	cd.Tick(0.5)
	assert.True(t, cd.Ready(model.AttackMelee))

	cd.Trigger(model.AttackMelee, 0.5)
	assert.InDelta(t, 0.75, cd.Get(model.AttackMelee).Remaining, 1e-9)
}

func TestCooldowns_MissingKinds(t *testing.T) {
	cd := NewCooldowns([]config.AttackConfig{{Kind: "melee"}, {Kind: "bogus"}}, config.CounterConfig{})

	assert.Nil(t, cd.Get(model.AttackLaser))
	assert.Nil(t, cd.Get(model.AttackCounter))
	assert.Nil(t, cd.Get(model.AttackNone))
	assert.False(t, cd.Ready(model.AttackLaser))

	var kinds []model.AttackKind
	cd.Each(func(p *AttackProfile) { kinds = append(kinds, p.Kind) })
	assert.Equal(t, []model.AttackKind{model.AttackMelee}, kinds)
}

func TestCooldowns_CounterProfile(t *testing.T) {
	cd := NewCooldowns(nil, config.CounterConfig{Enabled: true, Range: 3, Cooldown: 6, Damage: 40})

	p := cd.Get(model.AttackCounter)
	require.NotNil(t, p)
	assert.Equal(t, 3.0, p.MaxRange)
	assert.Equal(t, 1, p.MinPhase)
	assert.True(t, p.Ready())
}

func TestAttackProfile_Gates(t *testing.T) {
	p := profileFromConfig(model.AttackRocket, config.AttackConfig{MinRange: 6, MaxRange: 20, MinPhase: 2})

	assert.False(t, p.InRange(5.9))
	assert.True(t, p.InRange(6))
	assert.True(t, p.InRange(20))
	assert.False(t, p.Unlocked(1))
	assert.True(t, p.Unlocked(3))
	assert.Equal(t, 1, p.Count)
}

func TestAttackProfile_SpecialsNeverUnlockInPhaseOne(t *testing.T) {
	for _, kind := range []model.AttackKind{
		model.AttackDroneSpawn, model.AttackGroundSlam, model.AttackTeleport, model.AttackRocket,
	} {
		p := profileFromConfig(kind, config.AttackConfig{MaxRange: 20, MinPhase: 1})
		assert.Equal(t, model.SpecialMinPhase, p.MinPhase, kind.String())
		assert.False(t, p.Unlocked(1), kind.String())
		assert.True(t, p.Unlocked(2), kind.String())
	}

	p := profileFromConfig(model.AttackMelee, config.AttackConfig{MaxRange: 2, MinPhase: 1})
	assert.True(t, p.Unlocked(1))
}

func TestCombo_ChainAndLapse(t *testing.T) {
	c := NewCombo(config.ComboConfig{MaxChain: 3, Window: 1, DamageStep: 0.25})

	assert.Equal(t, 1.0, c.DamageMultiplier())
	assert.True(t, c.Link())
	assert.Equal(t, 1.25, c.DamageMultiplier())
	assert.True(t, c.Link())
	assert.Equal(t, 1.5, c.DamageMultiplier())

	assert.False(t, c.Link(), "third strike ends the chain")
	assert.Zero(t, c.Count())

	assert.True(t, c.Link())
	assert.False(t, c.Tick(0.5))
	assert.True(t, c.Tick(0.6))
	assert.Zero(t, c.Count())
	assert.False(t, c.Tick(1))
}

func TestCombo_Disabled(t *testing.T) {
	c := NewCombo(config.ComboConfig{MaxChain: 1})
	assert.False(t, c.Link())
	assert.Equal(t, 1.0, c.DamageMultiplier())
}
