package ai

import (
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

// AttackProfile is the runtime record of one attack: static tuning plus the
// cooldown timer. Choosing the attack is what arms the timer.
type AttackProfile struct {
	Kind      model.AttackKind
	Cooldown  float64
	Remaining float64

	MinRange float64
	MaxRange float64
	Damage   float64
	MinPhase int
	Chance   float64

	Windup   float64
	Active   float64
	Recovery float64

	HyperArmor bool
	Speed      float64
	Radius     float64
	Count      int
	Knockback  float64
}

// Ready reports whether the cooldown has elapsed.
func (p *AttackProfile) Ready() bool { return p.Remaining <= 0 }

// InRange reports whether d lies inside the attack's band.
func (p *AttackProfile) InRange(d float64) bool {
	return d >= p.MinRange && d <= p.MaxRange
}

// Unlocked reports whether the attack is available in phase.
func (p *AttackProfile) Unlocked(phase int) bool { return phase >= p.MinPhase }

func profileFromConfig(kind model.AttackKind, c config.AttackConfig) *AttackProfile {
	minPhase := max(c.MinPhase, 1)
	if kind.IsSpecial() {
		minPhase = max(minPhase, model.SpecialMinPhase)
	}
	return &AttackProfile{
		Kind:       kind,
		Cooldown:   c.Cooldown,
		MinRange:   c.MinRange,
		MaxRange:   c.MaxRange,
		Damage:     c.Damage,
		MinPhase:   minPhase,
		Chance:     c.Chance,
		Windup:     c.Windup,
		Active:     c.Active,
		Recovery:   c.Recovery,
		HyperArmor: c.HyperArmor,
		Speed:      c.Speed,
		Radius:     c.Radius,
		Count:      max(c.Count, 1),
		Knockback:  c.Knockback,
	}
}

// Cooldowns holds the profile table of one agent, indexed by attack kind.
type Cooldowns struct {
	profiles [model.NumAttackKinds]*AttackProfile
}

// NewCooldowns builds the table from attack configs. Unknown kinds are skipped;
// config validation reports them. The counter-attack profile is added when enabled.
func NewCooldowns(attacks []config.AttackConfig, counter config.CounterConfig) *Cooldowns {
	c := &Cooldowns{}
	for _, a := range attacks {
		kind, ok := model.ParseAttackKind(a.Kind)
		if !ok || kind == model.AttackNone {
			continue
		}
		c.profiles[kind] = profileFromConfig(kind, a)
	}
	if counter.Enabled {
		c.profiles[model.AttackCounter] = &AttackProfile{
			Kind:     model.AttackCounter,
			Cooldown: counter.Cooldown,
			MaxRange: counter.Range,
			Damage:   counter.Damage,
			MinPhase: 1,
			Chance:   counter.Chance,
			Windup:   counter.Windup,
			Recovery: counter.Recovery,
			Radius:   counter.Reach,
			Count:    1,
		}
	}
	return c
}

// Get returns the profile for kind, or nil if the agent lacks it.
func (c *Cooldowns) Get(kind model.AttackKind) *AttackProfile {
	if kind <= model.AttackNone || int(kind) >= len(c.profiles) {
		return nil
	}
	return c.profiles[kind]
}

// Ready reports whether the agent has kind and it is off cooldown.
func (c *Cooldowns) Ready(kind model.AttackKind) bool {
	p := c.Get(kind)
	return p != nil && p.Ready()
}

// Trigger arms the cooldown of kind scaled by mul.
func (c *Cooldowns) Trigger(kind model.AttackKind, mul float64) {
	if p := c.Get(kind); p != nil {
		p.Remaining = p.Cooldown * mul
	}
}

// Clear makes kind ready immediately.
func (c *Cooldowns) Clear(kind model.AttackKind) {
	if p := c.Get(kind); p != nil {
		p.Remaining = 0
	}
}

// Tick counts every timer down.
func (c *Cooldowns) Tick(dt float64) {
	for _, p := range c.profiles {
		if p != nil && p.Remaining > 0 {
			p.Remaining = max(p.Remaining-dt, 0)
		}
	}
}

// Each calls fn for every populated profile in kind order.
func (c *Cooldowns) Each(fn func(*AttackProfile)) {
	for _, p := range c.profiles {
		if p != nil {
			fn(p)
		}
	}
}

// Combo tracks a melee chain. A landed strike opens a window in which the next
// strike skips the cooldown and hits harder; the chain ends at MaxChain or
// when the window lapses.
type Combo struct {
	maxChain int
	window   float64
	step     float64

	count int
	timer float64
}

// NewCombo creates an idle combo tracker. maxChain < 2 disables chaining.
func NewCombo(cfg config.ComboConfig) *Combo {
	return &Combo{maxChain: cfg.MaxChain, window: cfg.Window, step: cfg.DamageStep}
}

// Link records a landed strike. Returns true while the chain may continue.
func (c *Combo) Link() bool {
	if c.maxChain < 2 {
		return false
	}
	c.count++
	if c.count >= c.maxChain {
		c.Reset()
		return false
	}
	c.timer = c.window
	return true
}

// Tick expires the window. Returns true when an open chain lapsed.
func (c *Combo) Tick(dt float64) bool {
	if c.count == 0 {
		return false
	}
	c.timer -= dt
	if c.timer <= 0 {
		c.Reset()
		return true
	}
	return false
}

// Reset drops the chain.
func (c *Combo) Reset() {
	c.count = 0
	c.timer = 0
}

// Count returns strikes landed in the current chain.
func (c *Combo) Count() int { return c.count }

// DamageMultiplier scales the next strike by its position in the chain.
func (c *Combo) DamageMultiplier() float64 {
	return 1 + c.step*float64(c.count)
}
