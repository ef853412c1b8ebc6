package ai

import (
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

// Reason says which layer of the policy picked an attack.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonCounter  Reason = "counter"
	ReasonReactive Reason = "reactive"
	ReasonSpecial  Reason = "special"
	ReasonBaseline Reason = "baseline"
	ReasonAdaptive Reason = "adaptive"
)

// Decision is the attack chosen for this tick. Kind is AttackNone when nothing fits.
type Decision struct {
	Kind   model.AttackKind
	Reason Reason
}

// Situation is what the policy sees of the fight on one tick.
type Situation struct {
	Distance float64
	// ClosingSpeed is the target's speed toward the agent (negative when retreating).
	ClosingSpeed float64
	Phase        int
	// RecentDamage is damage taken inside the reactive-teleport window.
	RecentDamage float64
	ModelReady   bool
	Biases       Biases
}

// Special abilities in priority order.
var specialOrder = []model.AttackKind{
	model.AttackDroneSpawn,
	model.AttackGroundSlam,
	model.AttackTeleport,
	model.AttackRocket,
}

// Baseline attacks by ascending range band.
var baselineOrder = []model.AttackKind{
	model.AttackMelee,
	model.AttackBomb,
	model.AttackDash,
	model.AttackLaser,
	model.AttackProjectile,
}

// Policy picks attacks. It reads the cooldown table but never arms it; the
// engine does that when the attack actually starts.
type Policy struct {
	cd       *Cooldowns
	counter  config.CounterConfig
	teleport config.TeleportConfig
	learning config.LearningConfig

	chanceScale float64
	rng         Rand
}

// NewPolicy wires a policy to the agent's cooldown table and random source.
func NewPolicy(cd *Cooldowns, a config.Agent, preset config.DifficultyPreset, rng Rand) *Policy {
	return &Policy{
		cd:          cd,
		counter:     a.Counter,
		teleport:    a.Teleport,
		learning:    a.Learning,
		chanceScale: preset.ChanceScale,
		rng:         rng,
	}
}

// CheckCounter reports whether a fast approach inside counter range should be
// punished this tick. Aggressive targets are countered more often.
func (p *Policy) CheckCounter(s Situation) bool {
	if !p.counter.Enabled || !p.cd.Ready(model.AttackCounter) {
		return false
	}
	if s.Distance > p.counter.Range || s.ClosingSpeed < p.counter.SpeedThreshold {
		return false
	}
	chance := p.counter.Chance * p.chanceScale
	if s.ModelReady {
		chance *= 1 + s.Biases.Aggressiveness
	}
	return p.roll(chance)
}

// Decide runs the reactive, special and baseline layers in that order.
func (p *Policy) Decide(s Situation) Decision {
	if p.reactiveTeleport(s) {
		return Decision{Kind: model.AttackTeleport, Reason: ReasonReactive}
	}

	for _, kind := range specialOrder {
		prof := p.cd.Get(kind)
		if !p.available(prof, s) || !prof.InRange(s.Distance) {
			continue
		}
		if p.roll(prof.Chance * p.chanceScale) {
			return Decision{Kind: kind, Reason: ReasonSpecial}
		}
	}

	nominal := model.AttackNone
	for _, kind := range baselineOrder {
		prof := p.cd.Get(kind)
		if p.available(prof, s) && prof.InRange(s.Distance) {
			nominal = kind
			break
		}
	}
	if nominal == model.AttackNone {
		return Decision{}
	}

	if alt := p.adapt(nominal, s); alt != nominal {
		return Decision{Kind: alt, Reason: ReasonAdaptive}
	}
	return Decision{Kind: nominal, Reason: ReasonBaseline}
}

func (p *Policy) reactiveTeleport(s Situation) bool {
	if p.teleport.DamageThreshold <= 0 || s.RecentDamage < p.teleport.DamageThreshold {
		return false
	}
	return p.available(p.cd.Get(model.AttackTeleport), s)
}

// adapt swaps the nominal attack for one the target is less able to evade.
func (p *Policy) adapt(nominal model.AttackKind, s Situation) model.AttackKind {
	if !s.ModelReady {
		return nominal
	}
	b := s.Biases

	switch nominal {
	case model.AttackDash:
		if p.learning.JumpEvadeThreshold > 0 && b.JumpFrequency >= p.learning.JumpEvadeThreshold {
			for _, kind := range []model.AttackKind{model.AttackLaser, model.AttackProjectile} {
				prof := p.cd.Get(kind)
				if p.available(prof, s) && s.Distance <= prof.MaxRange {
					return kind
				}
			}
		}
	case model.AttackProjectile:
		if p.learning.DodgeThreshold > 0 && max(b.DodgeLeft, b.DodgeRight) >= p.learning.DodgeThreshold {
			prof := p.cd.Get(model.AttackBomb)
			if p.available(prof, s) && s.Distance <= prof.MaxRange {
				return model.AttackBomb
			}
		}
	}
	return nominal
}

func (p *Policy) available(prof *AttackProfile, s Situation) bool {
	return prof != nil && prof.Unlocked(s.Phase) && prof.Ready()
}

func (p *Policy) roll(chance float64) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 1 {
		return true
	}
	return p.rng.Float64() < chance
}
