package world

import (
	"log/slog"
	"math"

	"github.com/udisondev/bossmind/internal/ai"
	"github.com/udisondev/bossmind/internal/model"
)

const (
	projectileTTL     = 4.0
	defaultShotSpeed  = 12.0
	projectileHitSlop = 0.5

	droneTTL      = 12.0
	droneSpeed    = 3.0
	droneReach    = 0.8
	droneInterval = 1.0
	droneSpacing  = 1.5
	droneHover    = 2.5
)

var _ ai.EffectsSink = (*Arena)(nil)

// Projectile is a shot in flight. Bombs fly to a fixed point and burst there;
// projectiles and rockets burst on the first target they touch.
type Projectile struct {
	ID       uint32
	SourceID uint32
	Kind     model.AttackKind
	Position model.Vec2
	Velocity model.Vec2
	Aim      model.Vec2
	Damage   float64
	Radius   float64
	TTL      float64
}

// Drone is a helper that drifts toward the nearest target and pokes it.
type Drone struct {
	ID       uint32
	SourceID uint32
	Position model.Vec2
	Damage   float64
	TTL      float64
	cooldown float64
}

// NotifyAttack logs the attack start.
func (a *Arena) NotifyAttack(n ai.AttackNotice) {
	if ai.IsDebugEnabled() {
		slog.Debug("attack started",
			"objectID", n.AgentID,
			"kind", n.Kind,
			"x", n.Position.X,
			"facing", n.Facing)
	}
}

// NotifyStagger logs the stagger.
func (a *Arena) NotifyStagger(agentID uint32) {
	if ai.IsDebugEnabled() {
		slog.Debug("agent staggered", "objectID", agentID)
	}
}

// RequestDamage applies damage to the named target.
func (a *Arena) RequestDamage(req ai.DamageRequest) {
	d, ok := a.Target(req.TargetID)
	if !ok {
		slog.Warn("damage for unknown target", "objectID", req.TargetID, "source", req.SourceID)
		return
	}
	d.TakeDamage(req.Amount)
}

// RequestKnockback pushes the named target.
func (a *Arena) RequestKnockback(req ai.KnockbackRequest) {
	d, ok := a.Target(req.TargetID)
	if !ok {
		return
	}
	d.Knockback(req.Origin, req.Force)
}

// SpawnProjectile launches a shot from req.From toward req.Aim.
func (a *Arena) SpawnProjectile(req ai.ProjectileRequest) {
	dir := req.Aim.Sub(req.From).Norm()
	if dir.LenSq() == 0 {
		dir = model.V(1, 0)
	}
	speed := req.Speed
	if speed <= 0 {
		speed = defaultShotSpeed
	}
	p := &Projectile{
		ID:       a.ids.NextEffectID(),
		SourceID: req.SourceID,
		Kind:     req.Kind,
		Position: req.From,
		Velocity: dir.Scale(speed),
		Aim:      req.Aim,
		Damage:   req.Damage,
		Radius:   req.Radius,
		TTL:      projectileTTL,
	}
	a.mu.Lock()
	a.projectiles = append(a.projectiles, p)
	a.mu.Unlock()
}

// SpawnDrone places req.Count drones hovering around req.Position.
func (a *Arena) SpawnDrone(req ai.DroneRequest) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range req.Count {
		offset := (float64(i) - float64(req.Count-1)/2) * droneSpacing
		a.drones = append(a.drones, &Drone{
			ID:       a.ids.NextEffectID(),
			SourceID: req.SourceID,
			Position: req.Position.Add(model.V(offset, droneHover)),
			Damage:   req.Damage,
			TTL:      droneTTL,
			cooldown: droneInterval,
		})
	}
	slog.Debug("drones spawned", "objectID", req.SourceID, "count", req.Count)
}

// Projectiles returns a copy of the shots in flight.
func (a *Arena) Projectiles() []Projectile {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Projectile, len(a.projectiles))
	for i, p := range a.projectiles {
		out[i] = *p
	}
	return out
}

// Caller holds a.mu.
func (a *Arena) stepProjectiles(dt float64) {
	targets := a.liveTargets()
	kept := a.projectiles[:0]
	for _, p := range a.projectiles {
		if a.stepProjectile(p, dt, targets) {
			kept = append(kept, p)
		}
	}
	clear(a.projectiles[len(kept):])
	a.projectiles = kept
}

// stepProjectile moves p and resolves impact. Returns false once p is spent.
func (a *Arena) stepProjectile(p *Projectile, dt float64, targets []*Dummy) bool {
	p.TTL -= dt
	step := p.Velocity.Scale(dt)

	if p.Kind == model.AttackBomb {
		if p.Position.Dist(p.Aim) <= step.Len() || p.Position.Y+step.Y <= a.cfg.GroundY {
			p.Position = p.Aim
			a.burst(p, targets)
			return false
		}
		p.Position = p.Position.Add(step)
		return p.TTL > 0
	}

	p.Position = p.Position.Add(step)
	contact := projectileHitSlop
	if p.Kind != model.AttackRocket {
		contact += p.Radius
	}
	for _, d := range targets {
		if d.Position().Dist(p.Position) > contact {
			continue
		}
		if p.Kind == model.AttackRocket {
			a.burst(p, targets)
		} else {
			a.impact(p.SourceID, p.Kind, d, p.Damage)
		}
		return false
	}

	if p.Position.X < a.cfg.MinX-projectileHitSlop || p.Position.X > a.cfg.MaxX+projectileHitSlop {
		return false
	}
	return p.TTL > 0
}

// burst damages every target within p.Radius of p.Position.
func (a *Arena) burst(p *Projectile, targets []*Dummy) {
	radius := math.Max(p.Radius, projectileHitSlop)
	for _, d := range targets {
		if d.Position().Dist(p.Position) <= radius {
			a.impact(p.SourceID, p.Kind, d, p.Damage)
		}
	}
}

// impact damages d and credits the source agent.
func (a *Arena) impact(source uint32, kind model.AttackKind, d *Dummy, amount float64) {
	c := d.TakeDamage(amount)
	if src, ok := a.combatant(source); ok {
		src.ReportHit(kind, c.Applied)
	}
}

// Caller holds a.mu.
func (a *Arena) stepDrones(dt float64) {
	targets := a.liveTargets()
	kept := a.drones[:0]
	for _, dr := range a.drones {
		dr.TTL -= dt
		dr.cooldown -= dt
		if dr.TTL <= 0 {
			continue
		}
		if t := nearestTarget(dr.Position, targets); t != nil {
			to := t.Position().Sub(dr.Position)
			if to.Len() <= droneReach {
				if dr.cooldown <= 0 {
					a.impact(dr.SourceID, model.AttackDroneSpawn, t, dr.Damage)
					dr.cooldown = droneInterval
				}
			} else {
				dr.Position = dr.Position.Add(to.Norm().Scale(droneSpeed * dt))
			}
		}
		kept = append(kept, dr)
	}
	clear(a.drones[len(kept):])
	a.drones = kept
}

func nearestTarget(from model.Vec2, targets []*Dummy) *Dummy {
	var best *Dummy
	bestDist := math.Inf(1)
	for _, d := range targets {
		if dist := d.Position().Dist(from); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}
