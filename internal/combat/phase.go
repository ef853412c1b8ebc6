package combat

// MaxPhase is the last escalation tier.
const MaxPhase = 3

// Phase derives the escalation tier from health percent against two
// descending thresholds. It never decreases, even after healing.
type Phase struct {
	current    int
	thresholds [MaxPhase - 1]float64 // [phase2, phase3]
	armorBonus [MaxPhase]float64

	transitionDuration float64
	transitionTimer    float64
}

// NewPhase creates a tracker in phase 1. A threshold <= 0 disables that phase.
// armorBonus is indexed by phase-1; missing entries are zero.
func NewPhase(phase2, phase3 float64, armorBonus []float64, transitionDuration float64) *Phase {
	p := &Phase{
		current:            1,
		thresholds:         [MaxPhase - 1]float64{phase2, phase3},
		transitionDuration: transitionDuration,
	}
	copy(p.armorBonus[:], armorBonus)
	return p
}

// Evaluate raises the phase for hpPct and returns every phase entered, in order.
// Skipping from 1 straight to 3 returns [2, 3].
func (p *Phase) Evaluate(hpPct float64) []int {
	var entered []int
	for p.current < MaxPhase {
		th := p.thresholds[p.current-1]
		if th <= 0 || hpPct > th {
			break
		}
		p.current++
		entered = append(entered, p.current)
	}
	if len(entered) > 0 && p.transitionDuration > 0 {
		p.transitionTimer = p.transitionDuration
	}
	return entered
}

// Tick counts down the transition window. ended reports the tick it closed.
func (p *Phase) Tick(dt float64) (ended bool) {
	if p.transitionTimer <= 0 {
		return false
	}
	p.transitionTimer -= dt
	if p.transitionTimer <= 0 {
		p.transitionTimer = 0
		return true
	}
	return false
}

func (p *Phase) Current() int { return p.current }

// Transitioning reports whether the invulnerable transition window is open.
func (p *Phase) Transitioning() bool { return p.transitionTimer > 0 }

// ArmorBonus returns the armor bonus of the current phase.
func (p *Phase) ArmorBonus() float64 { return p.armorBonus[p.current-1] }
