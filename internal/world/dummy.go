package world

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"github.com/udisondev/bossmind/internal/ai"
	"github.com/udisondev/bossmind/internal/combat"
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

const (
	dashDuration   = 0.25
	knockbackDecay = 6.0
	// jumper behaviour multiplies the configured jump chance.
	jumperBoost = 3.0
	// kiter shots hit for a fraction of the melee damage.
	kiterDamageScale = 0.5
)

// Dummy is a scripted player stand-in. It moves, jumps, dashes and hits back
// according to its behaviour so agents have something realistic to read.
type Dummy struct {
	id     uint32
	cfg    config.TargetConfig
	health *combat.HealthPool
	rng    *rand.Rand

	mu        sync.RWMutex
	pos       model.Vec2
	vel       model.Vec2
	knockback model.Vec2
	facing    float64
	grounded  bool
	dashing   bool
	dashTimer float64
	dashDir   float64
	attackCD  float64

	damageDealt float64
	hitsTaken   int
}

// NewDummy creates a target standing at cfg.SpawnX on the arena floor.
func NewDummy(id uint32, cfg config.TargetConfig, groundY float64, seed uint64) *Dummy {
	return &Dummy{
		id:       id,
		cfg:      cfg,
		health:   combat.NewHealthPool(cfg.MaxHealth),
		rng:      rand.New(rand.NewPCG(seed, uint64(id))),
		pos:      model.V(cfg.SpawnX, groundY),
		facing:   -1,
		grounded: true,
	}
}

func (d *Dummy) ID() uint32                  { return d.id }
func (d *Dummy) Name() string                { return d.cfg.Name }
func (d *Dummy) Health() *combat.HealthPool  { return d.health }
func (d *Dummy) Config() config.TargetConfig { return d.cfg }
func (d *Dummy) Alive() bool                 { return !d.health.IsDead() }

// Position returns the current position.
func (d *Dummy) Position() model.Vec2 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.pos
}

// Place teleports the dummy and clears its motion.
func (d *Dummy) Place(pos model.Vec2) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pos = pos
	d.vel = model.Vec2{}
	d.knockback = model.Vec2{}
}

// Snapshot implements ai.Target.
func (d *Dummy) Snapshot() (model.TargetSnapshot, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return model.TargetSnapshot{
		ID:       d.id,
		Position: d.pos,
		Velocity: d.vel,
		Grounded: d.grounded,
		Dashing:  d.dashing,
		Alive:    !d.health.IsDead(),
	}, true
}

// TakeDamage applies damage from an agent.
func (d *Dummy) TakeDamage(amount float64) combat.HealthChange {
	c := d.health.TakeDamage(amount)
	d.mu.Lock()
	if c.Applied > 0 {
		d.hitsTaken++
	}
	d.mu.Unlock()
	if c.Died {
		slog.Info("target down", "objectID", d.id, "name", d.cfg.Name)
	}
	return c
}

// Knockback pushes the dummy away from origin with the given force.
func (d *Dummy) Knockback(origin model.Vec2, force float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	dir := model.Sign(d.pos.X - origin.X)
	if dir == 0 {
		dir = -d.facing
	}
	d.knockback = d.knockback.Add(model.V(dir*force, 0))
	if d.grounded {
		d.vel.Y = force * 0.5
		d.grounded = false
	}
	d.dashing = false
}

// Stats returns the damage dealt to agents and the number of hits taken.
func (d *Dummy) Stats() (damageDealt float64, hitsTaken int) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.damageDealt, d.hitsTaken
}

// Step runs one frame of scripted behaviour against the live foes.
func (d *Dummy) Step(dt float64, foes []Combatant, a *Arena) {
	if !d.Alive() {
		d.mu.Lock()
		d.vel = model.Vec2{}
		d.dashing = false
		d.mu.Unlock()
		return
	}

	d.mu.Lock()
	foe, dist := d.nearest(foes)
	d.steer(dt, foe, dist)
	d.integrate(dt, a.cfg)
	d.attackCD -= dt
	strike := foe != nil && d.attackCD <= 0 && d.inStrikeRange(dist)
	if strike {
		d.attackCD = d.cfg.AttackInterval
	}
	d.mu.Unlock()

	if strike {
		d.strike(foe, a)
	}
}

// nearest picks the closest living foe. Caller holds d.mu.
func (d *Dummy) nearest(foes []Combatant) (Combatant, float64) {
	var best Combatant
	bestDist := math.Inf(1)
	for _, f := range foes {
		dist := f.Agent().Position.Dist(d.pos)
		if dist < bestDist {
			best, bestDist = f, dist
		}
	}
	return best, bestDist
}

// steer picks horizontal intent, jumps and dashes. Caller holds d.mu.
func (d *Dummy) steer(dt float64, foe Combatant, dist float64) {
	var want float64
	if foe != nil {
		toward := model.Sign(foe.Agent().Position.X - d.pos.X)
		if toward != 0 {
			d.facing = toward
		}
		switch d.cfg.Behavior {
		case config.BehaviorRusher, config.BehaviorJumper:
			if dist > d.cfg.AttackRange*0.8 {
				want = toward
			}
		case config.BehaviorKiter:
			switch {
			case dist < d.cfg.PreferredRange-1:
				want = -toward
			case dist > d.cfg.PreferredRange+1:
				want = toward
			}
		}
	}

	if d.cfg.Behavior == config.BehaviorIdle || foe == nil {
		d.vel.X = d.knockback.X
		return
	}

	jumpChance := d.cfg.JumpChance
	if d.cfg.Behavior == config.BehaviorJumper {
		jumpChance *= jumperBoost
	}
	if d.grounded && d.rng.Float64() < jumpChance*dt {
		d.vel.Y = d.cfg.JumpSpeed
		d.grounded = false
	}

	if d.grounded && !d.dashing && want != 0 && d.rng.Float64() < d.cfg.DashChance*dt {
		d.dashing = true
		d.dashTimer = dashDuration
		d.dashDir = want
	}

	speed := d.cfg.Speed
	if d.dashing {
		want = d.dashDir
		speed = d.cfg.DashSpeed
		d.dashTimer -= dt
		if d.dashTimer <= 0 {
			d.dashing = false
		}
	}
	d.vel.X = want*speed + d.knockback.X
}

// integrate applies gravity, knockback decay and arena bounds. Caller holds d.mu.
func (d *Dummy) integrate(dt float64, arena config.ArenaConfig) {
	d.vel.Y -= d.cfg.Gravity * dt
	d.pos = d.pos.Add(d.vel.Scale(dt))

	if d.pos.Y <= arena.GroundY {
		d.pos.Y = arena.GroundY
		d.vel.Y = 0
		d.grounded = true
	} else {
		d.grounded = false
	}
	d.pos.X = model.Clamp(d.pos.X, arena.MinX, arena.MaxX)

	decay := math.Exp(-knockbackDecay * dt)
	d.knockback = d.knockback.Scale(decay)
	if d.knockback.LenSq() < 1e-4 {
		d.knockback = model.Vec2{}
	}
}

func (d *Dummy) inStrikeRange(dist float64) bool {
	switch d.cfg.Behavior {
	case config.BehaviorIdle:
		return false
	case config.BehaviorKiter:
		return dist <= d.cfg.PreferredRange+2
	default:
		return dist <= d.cfg.AttackRange
	}
}

// strike hits foe. Kiters shoot along line of sight, everything else swings.
func (d *Dummy) strike(foe Combatant, a *Arena) {
	amount := d.cfg.AttackDamage
	if d.cfg.Behavior == config.BehaviorKiter {
		if !a.LineOfSight(d.Position(), foe.Agent().Position) {
			return
		}
		amount *= kiterDamageScale
	}
	c := foe.TakeDamage(amount)

	d.mu.Lock()
	d.damageDealt += c.Applied
	d.mu.Unlock()

	if ai.IsDebugEnabled() {
		slog.Debug("target strike",
			"objectID", d.id,
			"foe", foe.ID(),
			"amount", amount,
			"dealt", c.Applied)
	}
}
