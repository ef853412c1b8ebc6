package ai

import (
	"github.com/udisondev/bossmind/internal/model"
)

// Stage is the step of an attack's windup → active → recovery sequence.
type Stage int

const (
	StageWindup Stage = iota
	StageActive
	StageRecovery
)

func (s Stage) String() string {
	switch s {
	case StageWindup:
		return "windup"
	case StageActive:
		return "active"
	case StageRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

// Minimum airtime before a ground slam may land.
const slamMinAirTime = 0.25

// ActiveAttack is the explicit sub-state of a running attack. The engine
// advances it once per tick; cancellation simply discards it.
type ActiveAttack struct {
	Kind    model.AttackKind
	Profile *AttackProfile
	Reason  Reason

	Stage    Stage
	Elapsed  float64
	Duration float64

	Aim    model.Vec2
	Origin model.Vec2
	// Landed is set once the attack damaged something.
	Landed bool

	hits map[uint32]bool
}

func newActiveAttack(p *AttackProfile, reason Reason) *ActiveAttack {
	a := &ActiveAttack{Kind: p.Kind, Profile: p, Reason: reason, hits: make(map[uint32]bool)}
	a.enter(StageWindup, p.Windup)
	return a
}

func (a *ActiveAttack) enter(stage Stage, duration float64) {
	a.Stage = stage
	a.Elapsed = 0
	a.Duration = duration
}

// Strategy executes one attack kind. Every hook is optional.
type Strategy struct {
	// Begin runs when windup starts.
	Begin func(e *Engine, a *ActiveAttack)
	// Strike runs once when the active stage starts.
	Strike func(e *Engine, a *ActiveAttack)
	// Update runs every active tick and reports completion.
	// Without it the active stage lasts the profile's Active time.
	Update func(e *Engine, a *ActiveAttack, dt float64) bool
	// Finish runs when the active stage completes normally.
	Finish func(e *Engine, a *ActiveAttack)
}

// DefaultStrategies maps every attack kind to its executor. Which of them an
// agent can use is decided by the profiles it is configured with.
func DefaultStrategies() map[model.AttackKind]Strategy {
	return map[model.AttackKind]Strategy{
		model.AttackMelee:      {Begin: faceTarget, Strike: meleeStrike},
		model.AttackCounter:    {Begin: faceTarget, Strike: meleeStrike},
		model.AttackDash:       {Begin: faceTarget, Strike: dashStart, Update: dashUpdate, Finish: dashFinish},
		model.AttackLaser:      {Begin: lockAim, Strike: laserFire},
		model.AttackProjectile: {Begin: lockAim, Strike: launch},
		model.AttackBomb:       {Begin: lockAim, Strike: launch},
		model.AttackRocket:     {Begin: lockAim, Strike: launch},
		model.AttackGroundSlam: {Begin: faceTarget, Update: slamUpdate, Finish: slamLand},
		model.AttackTeleport:   {Begin: fadeOut, Strike: blink, Finish: fadeIn},
		model.AttackDroneSpawn: {Strike: spawnDrones},
	}
}

func faceTarget(e *Engine, a *ActiveAttack) {
	a.Aim = e.perception.LastKnown()
	e.agent.FaceToward(a.Aim.X)
}

func lockAim(e *Engine, a *ActiveAttack) {
	a.Aim = e.AimPoint()
	e.agent.FaceToward(a.Aim.X)
}

func meleeStrike(e *Engine, a *ActiveAttack) {
	p := a.Profile
	self := e.agent
	reach := p.MaxRange + p.Radius/2
	center := self.Position.Add(self.FacingVec().Scale(reach / 2))
	region := model.RectAround(center, reach/2, max(p.Radius, 1))

	mult := 1.0
	if a.Kind == model.AttackMelee {
		mult = e.combo.DamageMultiplier()
	}
	for _, id := range e.overlap(region) {
		e.hit(a, id, p.Damage*mult)
	}

	if a.Kind == model.AttackMelee && a.Landed && e.combo.Link() {
		e.cooldowns.Clear(model.AttackMelee)
	}
}

func dashStart(e *Engine, a *ActiveAttack) {
	a.Origin = e.agent.Position
	e.agent.Flags.Dashing = true
}

func dashUpdate(e *Engine, a *ActiveAttack, dt float64) bool {
	self := e.agent
	dir := self.FacingVec()
	speed := a.Profile.Speed * e.speedMultiplier()
	next := self.Position.Add(dir.Scale(speed * dt))
	if !e.groundAhead(next, dir) {
		return true
	}
	self.Position = next
	self.Velocity = dir.Scale(speed)

	for _, id := range e.overlap(model.RectAround(self.Position, max(a.Profile.Radius, 0.5), 1)) {
		e.hit(a, id, a.Profile.Damage)
	}
	return a.Elapsed >= a.Duration
}

func dashFinish(e *Engine, _ *ActiveAttack) {
	e.agent.Flags.Dashing = false
	e.agent.Stop()
}

func laserFire(e *Engine, a *ActiveAttack) {
	if !e.hasSnap {
		return
	}
	eye := e.eye()
	dir := a.Aim.Sub(eye).Norm()
	if dir.LenSq() == 0 {
		dir = e.agent.FacingVec()
	}
	end := eye.Add(dir.Scale(a.Profile.MaxRange))

	t := e.snap.Position
	if distToSegment(t, eye, end) > a.Profile.Radius {
		return
	}
	if e.world != nil && !e.world.LineOfSight(eye, t) {
		return
	}
	e.hit(a, e.snap.ID, a.Profile.Damage)
}

func launch(e *Engine, a *ActiveAttack) {
	p := a.Profile
	from := e.eye()
	mid := float64(p.Count-1) / 2
	for i := 0; i < p.Count; i++ {
		aim := a.Aim
		aim.X += (float64(i) - mid) * p.Radius * 0.5
		e.sink.SpawnProjectile(ProjectileRequest{
			SourceID: e.id,
			Kind:     a.Kind,
			From:     from,
			Aim:      aim,
			Speed:    p.Speed,
			Damage:   p.Damage * e.mit.Rage().DamageMultiplier(),
			Radius:   p.Radius,
		})
	}
}

func slamUpdate(e *Engine, a *ActiveAttack, _ float64) bool {
	if a.Elapsed >= a.Duration {
		return true
	}
	return a.Elapsed >= slamMinAirTime && e.grounded(e.agent.Position)
}

func slamLand(e *Engine, a *ActiveAttack) {
	region := model.RectAround(e.agent.Position, a.Profile.Radius, 1)
	for _, id := range e.overlap(region) {
		e.hit(a, id, a.Profile.Damage)
	}
}

func fadeOut(e *Engine, _ *ActiveAttack) {
	e.agent.Flags.Teleporting = true
}

func blink(e *Engine, a *ActiveAttack) {
	a.Origin = e.agent.Position
	e.relocate(e.teleportDestination())
	e.agent.FaceToward(e.perception.LastKnown().X)
}

func fadeIn(e *Engine, _ *ActiveAttack) {
	e.agent.Flags.Teleporting = false
}

func spawnDrones(e *Engine, a *ActiveAttack) {
	e.sink.SpawnDrone(DroneRequest{
		SourceID: e.id,
		Position: e.agent.Position.Add(model.V(0, 2)),
		Count:    a.Profile.Count,
		Damage:   a.Profile.Damage * e.mit.Rage().DamageMultiplier(),
	})
}

func distToSegment(p, a, b model.Vec2) float64 {
	ab := b.Sub(a)
	l := ab.LenSq()
	if l == 0 {
		return p.Dist(a)
	}
	t := model.Clamp(p.Sub(a).Dot(ab)/l, 0, 1)
	return p.Dist(a.Add(ab.Scale(t)))
}
