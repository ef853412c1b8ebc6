package combat

// Shield absorbs whole hits. Invariant: 0 <= hits <= maxHits.
// Regeneration only progresses once regenDelay has elapsed since the last hit,
// whether the shield absorbed it or not.
type Shield struct {
	hits    int
	maxHits int

	regenDelay float64
	regenRate  float64 // hits per second

	delayTimer  float64
	accumulator float64
}

// NewShield creates a full shield. maxHits <= 0 yields a permanently empty shield.
func NewShield(maxHits int, regenDelay, regenRate float64) *Shield {
	if maxHits < 0 {
		maxHits = 0
	}
	return &Shield{
		hits:       maxHits,
		maxHits:    maxHits,
		regenDelay: regenDelay,
		regenRate:  regenRate,
	}
}

// Absorb consumes one hit if any remain and restarts the regen delay.
// broken reports that this hit emptied the shield.
func (s *Shield) Absorb() (absorbed, broken bool) {
	if s.hits <= 0 {
		return false, false
	}
	s.hits--
	s.delayTimer = s.regenDelay
	s.accumulator = 0
	return true, s.hits == 0
}

// Interrupt restarts the regen delay for a hit the shield did not absorb.
func (s *Shield) Interrupt() {
	if s.hits >= s.maxHits {
		return
	}
	s.delayTimer = s.regenDelay
	s.accumulator = 0
}

// Tick advances regeneration and returns the number of hits restored.
func (s *Shield) Tick(dt float64) int {
	if s.hits >= s.maxHits {
		s.accumulator = 0
		return 0
	}
	if s.delayTimer > 0 {
		s.delayTimer -= dt
		if s.delayTimer > 0 {
			return 0
		}
		// carry the overshoot into regen
		dt = -s.delayTimer
		s.delayTimer = 0
	}
	if s.regenRate <= 0 {
		return 0
	}

	s.accumulator += s.regenRate * dt
	restored := 0
	for s.accumulator >= 1 && s.hits < s.maxHits {
		s.accumulator--
		s.hits++
		restored++
	}
	if s.hits >= s.maxHits {
		s.accumulator = 0
	}
	return restored
}

func (s *Shield) Hits() int    { return s.hits }
func (s *Shield) MaxHits() int { return s.maxHits }
func (s *Shield) Active() bool { return s.hits > 0 }

// RegenDelayRemaining returns the time left before regeneration resumes.
func (s *Shield) RegenDelayRemaining() float64 { return s.delayTimer }
