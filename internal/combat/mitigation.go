package combat

import "github.com/udisondev/bossmind/internal/config"

// BlockReason says which stage stopped a hit entirely.
type BlockReason int

const (
	BlockNone BlockReason = iota
	BlockPhaseTransition
	BlockShield
)

func (b BlockReason) String() string {
	switch b {
	case BlockPhaseTransition:
		return "phase_transition"
	case BlockShield:
		return "shield"
	default:
		return "none"
	}
}

// Outcome records how one incoming hit was resolved.
type Outcome struct {
	Incoming float64
	Final    float64
	Blocked  BlockReason
	Armor    float64

	ShieldBroken   bool
	ShieldHitsLeft int

	// StaggerTriggered is set on the hit that crossed the threshold.
	StaggerTriggered bool
	// Amplified is set when the hit landed during a stagger.
	Amplified bool
}

// SideEffects are the one-way triggers evaluated after damage is applied.
type SideEffects struct {
	RageActivated bool
	PhasesEntered []int
}

// TickResult reports timer edges from Mitigator.Tick.
type TickResult struct {
	ShieldRestored   int
	StaggerRecovered bool
	TransitionEnded  bool
}

// Mitigator is the layered damage pipeline:
// phase-transition immunity → shield → armor → stagger.
// Register Mitigate on the agent's HealthPool and call AfterDamage from its observer.
type Mitigator struct {
	shield  *Shield
	stagger *Stagger
	rage    *Rage
	phase   *Phase

	baseArmor    float64
	hyperArmorDR float64
	hyperArmor   bool

	last      Outcome
	onOutcome func(Outcome)
}

// NewMitigator assembles a pipeline from its stages.
func NewMitigator(shield *Shield, stagger *Stagger, rage *Rage, phase *Phase, baseArmor, hyperArmorDR float64) *Mitigator {
	return &Mitigator{
		shield:       shield,
		stagger:      stagger,
		rage:         rage,
		phase:        phase,
		baseArmor:    baseArmor,
		hyperArmorDR: hyperArmorDR,
	}
}

// NewMitigatorFromConfig builds every stage from an agent profile.
func NewMitigatorFromConfig(a config.Agent) *Mitigator {
	return NewMitigator(
		NewShield(a.Shield.MaxHits, a.Shield.RegenDelay, a.Shield.RegenRate),
		NewStagger(a.Stagger.Threshold, a.Stagger.Duration, a.Stagger.Immunity, a.Stagger.DamageMultiplier),
		NewRage(a.Rage.Threshold, a.Rage.DamageMultiplier, a.Rage.SpeedMultiplier, a.Rage.CooldownMultiplier, a.Rage.ArmorPenalty),
		NewPhase(a.Phases.Phase2Threshold, a.Phases.Phase3Threshold, a.Phases.ArmorBonus, a.Phases.TransitionDuration),
		a.Armor,
		a.HyperArmor.DamageReduction,
	)
}

// OnOutcome registers a callback invoked for every processed hit.
func (m *Mitigator) OnOutcome(fn func(Outcome)) {
	m.onOutcome = fn
}

// SetHyperArmor toggles the armor floor used during designated attack windows.
func (m *Mitigator) SetHyperArmor(on bool) {
	m.hyperArmor = on
}

// Armor returns the effective armor right now.
func (m *Mitigator) Armor() float64 {
	return EffectiveArmor(ArmorInputs{
		Base:         m.baseArmor,
		PhaseBonus:   m.phase.ArmorBonus(),
		Raging:       m.rage.Active(),
		RagePenalty:  m.rage.ArmorPenalty(),
		HyperArmor:   m.hyperArmor,
		HyperArmorDR: m.hyperArmorDR,
	})
}

// Mitigate is a DamageModifier. Stages run strictly in order.
func (m *Mitigator) Mitigate(amount float64) float64 {
	out := Outcome{Incoming: amount, ShieldHitsLeft: m.shield.Hits()}

	switch {
	case m.phase.Transitioning():
		out.Blocked = BlockPhaseTransition
		m.shield.Interrupt()
	default:
		if absorbed, broken := m.shield.Absorb(); absorbed {
			out.Blocked = BlockShield
			out.ShieldBroken = broken
			out.ShieldHitsLeft = m.shield.Hits()
			break
		}
		m.shield.Interrupt()

		out.Armor = m.Armor()
		dmg := ApplyArmor(amount, out.Armor)

		wasStaggered := m.stagger.Staggered()
		dmg, out.StaggerTriggered = m.stagger.Apply(dmg)
		out.Amplified = wasStaggered
		out.Final = dmg
	}

	m.last = out
	if m.onOutcome != nil {
		m.onOutcome(out)
	}
	return out.Final
}

// AfterDamage runs the one-way rage and phase checks for the new health percent.
func (m *Mitigator) AfterDamage(hpPct float64) SideEffects {
	return SideEffects{
		RageActivated: m.rage.Check(hpPct),
		PhasesEntered: m.phase.Evaluate(hpPct),
	}
}

// Tick advances shield regen, stagger and the phase transition window.
func (m *Mitigator) Tick(dt float64) TickResult {
	return TickResult{
		ShieldRestored:   m.shield.Tick(dt),
		StaggerRecovered: m.stagger.Tick(dt),
		TransitionEnded:  m.phase.Tick(dt),
	}
}

// LastOutcome returns the most recent hit resolution.
func (m *Mitigator) LastOutcome() Outcome { return m.last }

func (m *Mitigator) Shield() *Shield   { return m.shield }
func (m *Mitigator) Stagger() *Stagger { return m.stagger }
func (m *Mitigator) Rage() *Rage       { return m.rage }
func (m *Mitigator) Phase() *Phase     { return m.phase }
