package combat

import "github.com/udisondev/bossmind/internal/model"

// DamageModifier rewrites an incoming damage amount before it reaches the pool.
// Modifiers run in registration order; each sees the previous one's output.
type DamageModifier func(amount float64) float64

// HealthChange describes one mutation of a HealthPool.
type HealthChange struct {
	Incoming float64 // amount before modifiers
	Applied  float64 // amount actually removed (or restored, for heals)
	Current  float64
	Max      float64
	Died     bool
}

// Percent returns Current/Max, guarded against a zero max.
func (c HealthChange) Percent() float64 {
	return model.Ratio(c.Current, c.Max)
}

// HealthPool is an agent's own health. It is clamped to [0, max] on every
// mutation and reports death exactly once.
type HealthPool struct {
	current float64
	max     float64
	dead    bool

	modifiers []DamageModifier
	observers []func(HealthChange)
}

// NewHealthPool creates a full pool. A non-positive max is treated as 1.
func NewHealthPool(max float64) *HealthPool {
	if max <= 0 {
		max = 1
	}
	return &HealthPool{current: max, max: max}
}

// ApplyDamageModifier registers a pre-processing hook for incoming damage.
func (h *HealthPool) ApplyDamageModifier(fn DamageModifier) {
	if fn != nil {
		h.modifiers = append(h.modifiers, fn)
	}
}

// OnChange registers an observer called after every damage or heal.
func (h *HealthPool) OnChange(fn func(HealthChange)) {
	if fn != nil {
		h.observers = append(h.observers, fn)
	}
}

// TakeDamage runs the modifiers and removes the result from the pool.
// Returns the change that was applied. A dead pool ignores damage.
func (h *HealthPool) TakeDamage(amount float64) HealthChange {
	if h.dead || amount <= 0 {
		return HealthChange{Incoming: amount, Current: h.current, Max: h.max}
	}

	final := amount
	for _, m := range h.modifiers {
		final = m(final)
	}
	if final < 0 {
		final = 0
	}

	before := h.current
	h.current = model.Clamp(h.current-final, 0, h.max)

	change := HealthChange{
		Incoming: amount,
		Applied:  before - h.current,
		Current:  h.current,
		Max:      h.max,
	}
	if h.current <= 0 && !h.dead {
		h.dead = true
		change.Died = true
	}

	h.notify(change)
	return change
}

// Heal restores health, clamped to max. A dead pool cannot be healed.
func (h *HealthPool) Heal(amount float64) HealthChange {
	if h.dead || amount <= 0 {
		return HealthChange{Current: h.current, Max: h.max}
	}
	before := h.current
	h.current = model.Clamp(h.current+amount, 0, h.max)
	change := HealthChange{Applied: h.current - before, Current: h.current, Max: h.max}
	h.notify(change)
	return change
}

func (h *HealthPool) notify(c HealthChange) {
	for _, fn := range h.observers {
		fn(c)
	}
}

func (h *HealthPool) Current() float64 { return h.current }
func (h *HealthPool) Max() float64     { return h.max }
func (h *HealthPool) IsDead() bool     { return h.dead }

// Percent returns current/max in [0,1].
func (h *HealthPool) Percent() float64 {
	return model.Ratio(h.current, h.max)
}
