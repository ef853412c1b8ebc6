package combat

// Stagger accumulates mitigated damage and trips once a threshold is reached.
// Accumulation only happens while not staggered and not immune; the trip is a
// one-shot edge that zeroes the accumulator.
type Stagger struct {
	threshold  float64
	duration   float64
	immunity   float64
	multiplier float64

	accumulated   float64
	staggered     bool
	timer         float64
	immunityTimer float64
}

// NewStagger creates a stagger tracker. threshold <= 0 disables it.
func NewStagger(threshold, duration, immunity, multiplier float64) *Stagger {
	if multiplier <= 0 {
		multiplier = 1
	}
	return &Stagger{
		threshold:  threshold,
		duration:   duration,
		immunity:   immunity,
		multiplier: multiplier,
	}
}

// Apply processes post-armor damage. While staggered the damage is multiplied
// and nothing accumulates. Otherwise, outside the immunity window, the damage
// is added to the accumulator; triggered reports the edge.
func (s *Stagger) Apply(damage float64) (out float64, triggered bool) {
	if s.staggered {
		return damage * s.multiplier, false
	}
	if s.threshold <= 0 || s.immunityTimer > 0 {
		return damage, false
	}
	s.accumulated += damage
	if s.accumulated >= s.threshold {
		s.accumulated = 0
		s.staggered = true
		s.timer = s.duration
		return damage, true
	}
	return damage, false
}

// Tick counts down the stagger and immunity windows. recovered reports the
// tick the stagger ended (immunity starts then).
func (s *Stagger) Tick(dt float64) (recovered bool) {
	if s.staggered {
		s.timer -= dt
		if s.timer <= 0 {
			s.timer = 0
			s.staggered = false
			s.immunityTimer = s.immunity
			return true
		}
		return false
	}
	if s.immunityTimer > 0 {
		s.immunityTimer -= dt
		if s.immunityTimer < 0 {
			s.immunityTimer = 0
		}
	}
	return false
}

func (s *Stagger) Staggered() bool        { return s.staggered }
func (s *Stagger) Accumulated() float64   { return s.accumulated }
func (s *Stagger) Threshold() float64     { return s.threshold }
func (s *Stagger) Immune() bool           { return s.immunityTimer > 0 }
func (s *Stagger) TimeRemaining() float64 { return s.timer }
