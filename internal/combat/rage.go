package combat

// Rage is a one-way low-health mode. Once active it stays active.
type Rage struct {
	threshold float64
	active    bool

	damageMul   float64
	speedMul    float64
	cooldownMul float64
	armorPen    float64
}

// NewRage creates a rage tracker. threshold <= 0 disables it.
func NewRage(threshold, damageMul, speedMul, cooldownMul, armorPenalty float64) *Rage {
	return &Rage{
		threshold:   threshold,
		damageMul:   orOne(damageMul),
		speedMul:    orOne(speedMul),
		cooldownMul: orOne(cooldownMul),
		armorPen:    armorPenalty,
	}
}

// Check activates rage when hpPct <= threshold. Returns true only on the activating call.
func (r *Rage) Check(hpPct float64) bool {
	if r.active || r.threshold <= 0 || hpPct > r.threshold {
		return false
	}
	r.active = true
	return true
}

func (r *Rage) Active() bool { return r.active }

// ArmorPenalty is subtracted from armor while raging.
func (r *Rage) ArmorPenalty() float64 { return r.armorPen }

// DamageMultiplier scales outgoing damage (1 when calm).
func (r *Rage) DamageMultiplier() float64 { return r.pick(r.damageMul) }

// SpeedMultiplier scales movement (1 when calm).
func (r *Rage) SpeedMultiplier() float64 { return r.pick(r.speedMul) }

// CooldownMultiplier scales cooldowns on use (1 when calm).
func (r *Rage) CooldownMultiplier() float64 { return r.pick(r.cooldownMul) }

func (r *Rage) pick(v float64) float64 {
	if r.active {
		return v
	}
	return 1
}

func orOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
