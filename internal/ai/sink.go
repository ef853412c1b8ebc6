package ai

import "github.com/udisondev/bossmind/internal/model"

// AttackNotice tells presentation collaborators an attack started.
type AttackNotice struct {
	AgentID  uint32
	Kind     model.AttackKind
	Position model.Vec2
	Facing   int
	Aim      model.Vec2
}

// DamageRequest asks the target's owner to apply damage.
type DamageRequest struct {
	SourceID uint32
	TargetID uint32
	Kind     model.AttackKind
	Amount   float64
}

// KnockbackRequest asks the target's owner to push the target away from Origin.
type KnockbackRequest struct {
	SourceID uint32
	TargetID uint32
	Origin   model.Vec2
	Force    float64
}

// ProjectileRequest asks the physics collaborator to launch a projectile.
// Hits are reported back through Engine.ReportHit.
type ProjectileRequest struct {
	SourceID uint32
	Kind     model.AttackKind
	From     model.Vec2
	Aim      model.Vec2
	Speed    float64
	Damage   float64
	Radius   float64
}

// DroneRequest asks the world to spawn helper drones.
type DroneRequest struct {
	SourceID uint32
	Position model.Vec2
	Count    int
	Damage   float64
}

// EffectsSink is the intent surface the engine drives. Implementations realize
// the intents visually or physically; the engine never touches the target directly.
type EffectsSink interface {
	NotifyAttack(AttackNotice)
	NotifyStagger(agentID uint32)
	RequestDamage(DamageRequest)
	RequestKnockback(KnockbackRequest)
	SpawnProjectile(ProjectileRequest)
	SpawnDrone(DroneRequest)
}

// NopSink discards every intent.
type NopSink struct{}

func (NopSink) NotifyAttack(AttackNotice)         {}
func (NopSink) NotifyStagger(uint32)              {}
func (NopSink) RequestDamage(DamageRequest)       {}
func (NopSink) RequestKnockback(KnockbackRequest) {}
func (NopSink) SpawnProjectile(ProjectileRequest) {}
func (NopSink) SpawnDrone(DroneRequest)           {}
