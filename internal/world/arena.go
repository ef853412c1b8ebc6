package world

import (
	"cmp"
	"log/slog"
	"slices"
	"sync"

	"github.com/udisondev/bossmind/internal/combat"
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

// Combatant is a hostile agent living in the arena.
type Combatant interface {
	ID() uint32
	State() model.State
	Agent() model.Agent
	TakeDamage(amount float64) combat.HealthChange
	ReportHit(kind model.AttackKind, amount float64)
}

// Arena is a flat side-view level: ground spans [MinX, MaxX] at GroundY and
// vertical walls block line of sight. It answers the engine's physics queries,
// owns the scripted targets and realizes effect intents.
type Arena struct {
	cfg config.ArenaConfig
	ids *ObjectIDGenerator

	targets    sync.Map // map[uint32]*Dummy
	combatants sync.Map // map[uint32]Combatant

	mu          sync.Mutex
	projectiles []*Projectile
	drones      []*Drone
}

// NewArena creates an empty arena.
func NewArena(cfg config.ArenaConfig) *Arena {
	return &Arena{
		cfg: cfg,
		ids: NewObjectIDGenerator(),
	}
}

// IDs returns the arena's ID generator.
func (a *Arena) IDs() *ObjectIDGenerator { return a.ids }

// Config returns the arena layout.
func (a *Arena) Config() config.ArenaConfig { return a.cfg }

// LineOfSight reports whether no wall crosses the segment from → to.
func (a *Arena) LineOfSight(from, to model.Vec2) bool {
	lo, hi := min(from.X, to.X), max(from.X, to.X)
	for _, w := range a.cfg.Walls {
		if w.X <= lo || w.X >= hi {
			continue
		}
		t := (w.X - from.X) / (to.X - from.X)
		y := model.Lerp(from.Y, to.Y, t)
		if y >= w.Bottom && y <= w.Top {
			return false
		}
	}
	return true
}

// Grounded reports whether there is floor beneath pos.
func (a *Arena) Grounded(pos model.Vec2) bool {
	return pos.X >= a.cfg.MinX && pos.X <= a.cfg.MaxX
}

// Overlap returns the live targets inside r in ID order.
func (a *Arena) Overlap(r model.Rect) []uint32 {
	var ids []uint32
	a.targets.Range(func(key, value any) bool {
		d := value.(*Dummy)
		if d.Alive() && r.Contains(d.Position()) {
			ids = append(ids, key.(uint32))
		}
		return true
	})
	slices.Sort(ids)
	return ids
}

// AddTarget registers a scripted target.
func (a *Arena) AddTarget(d *Dummy) {
	a.targets.Store(d.ID(), d)
	slog.Debug("target added", "objectID", d.ID(), "behavior", d.cfg.Behavior)
}

// Target returns the target registered under id.
func (a *Arena) Target(id uint32) (*Dummy, bool) {
	v, ok := a.targets.Load(id)
	if !ok {
		return nil, false
	}
	return v.(*Dummy), true
}

// AddCombatant registers an agent the targets can fight.
func (a *Arena) AddCombatant(c Combatant) {
	a.combatants.Store(c.ID(), c)
}

// RemoveCombatant forgets an agent.
func (a *Arena) RemoveCombatant(id uint32) {
	a.combatants.Delete(id)
}

func (a *Arena) combatant(id uint32) (Combatant, bool) {
	v, ok := a.combatants.Load(id)
	if !ok {
		return nil, false
	}
	return v.(Combatant), true
}

// liveCombatants returns the agents that are not dead, in ID order.
func (a *Arena) liveCombatants() []Combatant {
	var out []Combatant
	a.combatants.Range(func(_, value any) bool {
		c := value.(Combatant)
		if c.State() != model.StateDead {
			out = append(out, c)
		}
		return true
	})
	slices.SortFunc(out, func(x, y Combatant) int { return cmp.Compare(x.ID(), y.ID()) })
	return out
}

func (a *Arena) liveTargets() []*Dummy {
	var out []*Dummy
	a.targets.Range(func(_, value any) bool {
		if d := value.(*Dummy); d.Alive() {
			out = append(out, d)
		}
		return true
	})
	slices.SortFunc(out, func(x, y *Dummy) int { return cmp.Compare(x.ID(), y.ID()) })
	return out
}

// Step advances targets, projectiles and drones by dt seconds.
func (a *Arena) Step(dt float64) {
	foes := a.liveCombatants()
	a.targets.Range(func(_, value any) bool {
		value.(*Dummy).Step(dt, foes, a)
		return true
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.stepProjectiles(dt)
	a.stepDrones(dt)
}

// TargetsAlive reports whether any target still stands.
func (a *Arena) TargetsAlive() bool {
	return len(a.liveTargets()) > 0
}

// Active returns the number of projectiles and drones in flight.
func (a *Arena) Active() (projectiles, drones int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.projectiles), len(a.drones)
}
