package ai

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"reflect"
	"sync/atomic"

	"github.com/udisondev/bossmind/internal/combat"
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

// Deps are the collaborators injected into an Engine. Zero values get defaults.
type Deps struct {
	World World
	Sink  EffectsSink
	Rand  Rand
	// Health defaults to a full pool sized from the profile.
	Health     *combat.HealthPool
	Difficulty config.DifficultyPreset
	Strategies map[model.AttackKind]Strategy
}

type damageSample struct {
	at     float64
	amount float64
}

// Engine is the decision engine of one hostile agent. It is driven by Tick and
// is not safe for concurrent use; TickManager serialises access.
type Engine struct {
	id    uint32
	cfg   config.Agent
	agent *model.Agent

	health *combat.HealthPool
	mit    *combat.Mitigator
	sm     *StateMachine
	bus    *Bus

	perception  *Perception
	cooldowns   *Cooldowns
	combo       *Combo
	targetModel *TargetModel
	predictor   *Predictor
	policy      *Policy
	strategies  map[model.AttackKind]Strategy
	attack      *ActiveAttack

	world   World
	sink    EffectsSink
	target  Target
	snap    model.TargetSnapshot
	hasSnap bool

	patrolMin  float64
	patrolMax  float64
	lastSafe   model.Vec2
	stuckCount int

	now        float64
	tick       uint64
	stateTimer float64
	deathTimer float64
	damageLog  []damageSample
	expired    bool
	running    atomic.Bool
}

// NewEngine builds an engine for one agent profile.
func NewEngine(id uint32, cfg config.Agent, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("creating engine for %q: %w", cfg.Name, err)
	}
	class, _ := model.ParseClass(cfg.Class)

	if deps.Sink == nil {
		deps.Sink = NopSink{}
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewPCG(uint64(id), 0x5eed))
	}
	if deps.Difficulty == (config.DifficultyPreset{}) {
		deps.Difficulty = config.DifficultyNormal.Preset()
	}
	if deps.Health == nil {
		deps.Health = combat.NewHealthPool(cfg.MaxHealth)
	}
	if deps.Strategies == nil {
		deps.Strategies = DefaultStrategies()
	}

	spawn := model.V(cfg.Spawn.X, cfg.Spawn.Y)
	e := &Engine{
		id:          id,
		cfg:         cfg,
		agent:       model.NewAgent(id, cfg.Name, class, spawn, cfg.Armor),
		health:      deps.Health,
		mit:         combat.NewMitigatorFromConfig(cfg),
		bus:         NewBus(),
		perception:  NewPerception(cfg.Perception),
		cooldowns:   NewCooldowns(cfg.Attacks, cfg.Counter),
		combo:       NewCombo(cfg.Combo),
		targetModel: NewTargetModel(cfg.Learning),
		predictor:   NewPredictor(cfg.Prediction, deps.Difficulty.AccuracyScale),
		strategies:  deps.Strategies,
		world:       deps.World,
		sink:        deps.Sink,
		patrolMin:   cfg.Spawn.PatrolMin,
		patrolMax:   cfg.Spawn.PatrolMax,
		lastSafe:    spawn,
	}
	e.policy = NewPolicy(e.cooldowns, cfg, deps.Difficulty, deps.Rand)

	e.health.ApplyDamageModifier(e.mit.Mitigate)
	e.health.OnChange(e.onHealthChanged)
	e.mit.OnOutcome(e.onOutcome)
	e.agent.Flags.Shielded = e.mit.Shield().Active()

	initial := model.StateIdle
	if class == model.ClassBoss {
		initial = model.StatePatrol
	}
	e.sm = newStateMachine(class, initial, e.onExit, e.onEnter)

	return e, nil
}

// Start enables ticking.
func (e *Engine) Start() {
	if e.running.Swap(true) {
		return
	}
	if e.sm.Is(model.StateIdle) {
		e.stateTimer = e.cfg.Timings.IdleDwell
	}
	if IsDebugEnabled() {
		slog.Debug("engine started", "agent", e.agent.Name, "id", e.id, "state", e.sm.Current())
	}
}

// Stop disables ticking, drops any running attack and clears every listener.
func (e *Engine) Stop() {
	if !e.running.Swap(false) {
		return
	}
	e.clearAttack()
	e.bus.Clear()
	if IsDebugEnabled() {
		slog.Debug("engine stopped", "agent", e.agent.Name, "id", e.id)
	}
}

// Tick advances the agent by dt seconds.
func (e *Engine) Tick(dt float64) {
	if !e.running.Load() || dt <= 0 {
		return
	}
	e.now += dt
	e.tick++

	if e.sm.Is(model.StateDead) {
		e.tickDead(dt)
		return
	}

	e.tickTimers(dt)
	e.sense(dt)

	if e.agent.Flags.Staggered || e.agent.Flags.PhaseTransitioning {
		e.agent.Stop()
		e.agent.Armor = e.mit.Armor()
		return
	}

	before := e.agent.Position
	if e.attack != nil {
		e.advanceAttack(dt)
	}
	e.think(dt)
	e.move(dt)
	e.settle(before)
	e.agent.Armor = e.mit.Armor()
}

func (e *Engine) tickDead(dt float64) {
	if e.expired {
		return
	}
	e.deathTimer -= dt
	if e.deathTimer <= 0 {
		e.expired = true
		e.publish(Event{Type: EventDespawned})
	}
}

func (e *Engine) tickTimers(dt float64) {
	e.cooldowns.Tick(dt)
	e.combo.Tick(dt)

	res := e.mit.Tick(dt)
	e.agent.Flags.Shielded = e.mit.Shield().Active()
	if res.StaggerRecovered {
		e.agent.Flags.Staggered = false
		e.publish(Event{Type: EventStaggerRecovered})
	}
	if res.TransitionEnded {
		e.agent.Flags.PhaseTransitioning = false
	}

	cutoff := e.now - e.cfg.Teleport.DamageWindow
	n := 0
	for _, s := range e.damageLog {
		if s.at >= cutoff {
			e.damageLog[n] = s
			n++
		}
	}
	e.damageLog = e.damageLog[:n]
}

func (e *Engine) sense(dt float64) {
	var (
		snap model.TargetSnapshot
		ok   bool
	)
	if e.target != nil {
		snap, ok = e.target.Snapshot()
	}
	e.snap, e.hasSnap = snap, ok && snap.Alive

	switch e.perception.Update(dt, e.agent, snap, ok, e.world) {
	case EdgeAcquired:
		e.publish(Event{Type: EventTargetAcquired, Position: snap.Position})
	case EdgeLost:
		e.publish(Event{Type: EventTargetLost, Position: e.perception.LastKnown()})
	}

	if e.hasSnap {
		e.targetModel.Observe(e.now, dt, e.agent.Position, snap)
		e.predictor.Observe(dt, snap)
	}
}

func (e *Engine) think(dt float64) {
	detected := e.perception.Detected()
	mv := e.cfg.Movement

	switch e.sm.Current() {
	case model.StateIdle:
		e.agent.Stop()
		if detected && mv.ChaseEnabled {
			e.sm.Fire(evAlert)
			return
		}
		e.stateTimer -= dt
		if e.stateTimer <= 0 && mv.PatrolEnabled {
			e.sm.Fire(evPatrol)
		}

	case model.StatePatrol:
		if detected && mv.ChaseEnabled {
			if e.agent.Class == model.ClassBoss {
				e.sm.Fire(evChase)
			} else {
				e.sm.Fire(evAlert)
			}
			return
		}
		if !mv.PatrolEnabled {
			e.agent.Stop()
			e.sm.Fire(evIdle)
			return
		}
		e.patrolStep()

	case model.StateAlert:
		e.agent.Stop()
		if !detected {
			e.giveUp()
			return
		}
		e.agent.FaceToward(e.perception.LastKnown().X)
		e.stateTimer -= dt
		if e.stateTimer <= 0 {
			e.sm.Fire(evChase)
		}

	case model.StateChase:
		if !detected {
			e.giveUp()
			return
		}
		if e.tryAttack() {
			return
		}
		e.chaseStep()

	case model.StateAttack:
		if e.attack == nil {
			e.afterAttack()
		}

	case model.StateHurt:
		e.agent.Stop()
		e.stateTimer -= dt
		if e.stateTimer > 0 {
			return
		}
		if detected && mv.ChaseEnabled {
			e.sm.Fire(evChase)
		} else {
			e.giveUp()
		}
	}
}

// giveUp returns to the resting behaviour after losing the target.
func (e *Engine) giveUp() {
	if e.cfg.Movement.PatrolEnabled || e.agent.Class == model.ClassBoss {
		e.sm.Fire(evPatrol)
		return
	}
	e.sm.Fire(evIdle)
}

func (e *Engine) afterAttack() {
	if e.perception.Detected() && e.cfg.Movement.ChaseEnabled {
		e.sm.Fire(evChase)
		return
	}
	e.giveUp()
}

func (e *Engine) situation() Situation {
	self := e.agent.Position
	toSelf := self.Sub(e.snap.Position).Norm()

	var recent float64
	for _, s := range e.damageLog {
		recent += s.amount
	}
	return Situation{
		Distance:     self.Dist(e.snap.Position),
		ClosingSpeed: e.snap.Velocity.Dot(toSelf),
		Phase:        e.agent.Phase,
		RecentDamage: recent,
		ModelReady:   e.targetModel.Ready(),
		Biases:       e.targetModel.Biases(),
	}
}

func (e *Engine) tryAttack() bool {
	if !e.hasSnap {
		return false
	}
	s := e.situation()
	if e.policy.CheckCounter(s) {
		return e.startAttack(model.AttackCounter, ReasonCounter)
	}
	d := e.policy.Decide(s)
	if d.Kind == model.AttackNone {
		return false
	}
	return e.startAttack(d.Kind, d.Reason)
}

func (e *Engine) startAttack(kind model.AttackKind, reason Reason) bool {
	prof := e.cooldowns.Get(kind)
	strat, ok := e.strategies[kind]
	if prof == nil || !ok {
		return false
	}
	if !e.sm.Fire(evAttack) {
		return false
	}

	e.cooldowns.Trigger(kind, e.cooldownMultiplier())
	if kind == model.AttackTeleport {
		e.damageLog = e.damageLog[:0]
	}

	a := newActiveAttack(prof, reason)
	e.attack = a
	e.agent.Flags.Attacking = true
	e.agent.Stop()
	e.mit.SetHyperArmor(prof.HyperArmor)
	if strat.Begin != nil {
		strat.Begin(e, a)
	}

	e.sink.NotifyAttack(AttackNotice{
		AgentID:  e.id,
		Kind:     kind,
		Position: e.agent.Position,
		Facing:   e.agent.Facing,
		Aim:      a.Aim,
	})
	e.publish(Event{Type: EventAttackStart, Attack: kind})

	if IsDebugEnabled() {
		slog.Debug("attack started", "agent", e.agent.Name, "kind", kind, "reason", reason, "phase", e.agent.Phase)
	}
	return true
}

func (e *Engine) advanceAttack(dt float64) {
	a := e.attack
	strat := e.strategies[a.Kind]
	a.Elapsed += dt

	switch a.Stage {
	case StageWindup:
		if a.Elapsed < a.Duration {
			return
		}
		a.enter(StageActive, a.Profile.Active)
		if strat.Strike != nil {
			strat.Strike(e, a)
		}

	case StageActive:
		done := a.Elapsed >= a.Duration
		if strat.Update != nil {
			done = strat.Update(e, a, dt)
		}
		if !done || e.attack != a {
			return
		}
		if strat.Finish != nil {
			strat.Finish(e, a)
		}
		e.mit.SetHyperArmor(false)
		a.enter(StageRecovery, a.Profile.Recovery)

	case StageRecovery:
		if a.Elapsed >= a.Duration {
			e.clearAttack()
			if e.sm.Is(model.StateAttack) {
				e.afterAttack()
			}
		}
	}
}

// clearAttack discards the attack sub-state and every flag that belongs to it.
func (e *Engine) clearAttack() {
	e.attack = nil
	e.agent.Flags.Attacking = false
	e.agent.Flags.Dashing = false
	e.agent.Flags.Teleporting = false
	e.mit.SetHyperArmor(false)
	e.agent.Stop()
}

// cancelAttack aborts a running attack within the current tick.
func (e *Engine) cancelAttack() {
	if e.attack == nil {
		return
	}
	kind := e.attack.Kind
	e.clearAttack()
	e.publish(Event{Type: EventAttackCancelled, Attack: kind})
}

// hit requests damage on id once per attack.
func (e *Engine) hit(a *ActiveAttack, id uint32, base float64) {
	if a.hits[id] {
		return
	}
	a.hits[id] = true

	amount := base * e.mit.Rage().DamageMultiplier()
	e.sink.RequestDamage(DamageRequest{SourceID: e.id, TargetID: id, Kind: a.Kind, Amount: amount})
	if a.Profile.Knockback > 0 {
		e.sink.RequestKnockback(KnockbackRequest{
			SourceID: e.id,
			TargetID: id,
			Origin:   e.agent.Position,
			Force:    a.Profile.Knockback,
		})
	}
	if !a.Landed {
		a.Landed = true
		e.publish(Event{Type: EventAttackHit, Attack: a.Kind, Amount: amount})
	}
}

func (e *Engine) onExit(from, _ model.State) {
	if from == model.StateAttack {
		e.cancelAttack()
	}
}

func (e *Engine) onEnter(from, to model.State) {
	a := e.agent
	switch to {
	case model.StateIdle:
		a.Stop()
		e.stateTimer = e.cfg.Timings.IdleDwell
	case model.StatePatrol:
		e.stuckCount = 0
	case model.StateAlert:
		a.Stop()
		a.FaceToward(e.perception.LastKnown().X)
		e.stateTimer = e.cfg.Timings.AlertDwell
	case model.StateChase:
		a.FaceToward(e.perception.LastKnown().X)
	case model.StateAttack:
		a.Stop()
	case model.StateHurt:
		a.Stop()
		e.stateTimer = e.cfg.Timings.HurtRecovery
	case model.StateDead:
		a.Stop()
		a.Flags = model.Flags{}
		e.deathTimer = e.cfg.Timings.DeathLinger
		e.perception.Reset()
	}

	e.publish(Event{Type: EventStateChanged, From: from, To: to})
	if to == model.StateDead {
		e.publish(Event{Type: EventDeath})
	}

	if IsDebugEnabled() {
		slog.Debug("state changed", "agent", a.Name, "from", from, "to", to, "tick", e.tick)
	}
}

func (e *Engine) onOutcome(out combat.Outcome) {
	e.agent.Flags.Shielded = e.mit.Shield().Active()
	if out.ShieldBroken {
		e.publish(Event{Type: EventShieldBroken})
	}
	if out.StaggerTriggered {
		e.agent.Flags.Staggered = true
		e.cancelAttack()
		e.sink.NotifyStagger(e.id)
		e.publish(Event{Type: EventStagger, Amount: out.Final})
		if IsDebugEnabled() {
			slog.Debug("staggered", "agent", e.agent.Name, "damage", out.Final)
		}
	}
}

func (e *Engine) onHealthChanged(c combat.HealthChange) {
	if c.Incoming <= 0 {
		return
	}
	if c.Applied > 0 {
		e.damageLog = append(e.damageLog, damageSample{at: e.now, amount: c.Applied})
		e.combo.Reset()
		e.publish(Event{Type: EventDamaged, Amount: c.Applied})
	}
	if c.Died {
		e.sm.Fire(evDie)
		return
	}

	fx := e.mit.AfterDamage(c.Percent())
	if fx.RageActivated {
		e.agent.Flags.Raging = true
		e.publish(Event{Type: EventRageActivated})
	}
	for _, p := range fx.PhasesEntered {
		e.enterPhase(p)
	}
	e.agent.Armor = e.mit.Armor()

	if c.Applied > 0 && e.agent.Class == model.ClassBasic {
		if e.sm.Is(model.StateHurt) {
			e.stateTimer = e.cfg.Timings.HurtRecovery
		} else {
			e.sm.Fire(evHurt)
		}
	}
}

func (e *Engine) enterPhase(p int) {
	a := e.agent
	a.Phase = p
	a.SpeedMultiplier *= orOne(e.cfg.Phases.SpeedMultiplier)
	a.CooldownMultiplier *= orOne(e.cfg.Phases.CooldownMultiplier)
	e.publish(Event{Type: EventPhaseChanged, Phase: p})

	if e.mit.Phase().Transitioning() && !a.Flags.PhaseTransitioning {
		a.Flags.PhaseTransitioning = true
		e.cancelAttack()
		a.Stop()
		e.knockbackPulse()
	}

	if IsDebugEnabled() {
		slog.Debug("phase entered", "agent", a.Name, "phase", p, "hp", e.health.Percent())
	}
}

func (e *Engine) knockbackPulse() {
	ph := e.cfg.Phases
	if !e.hasSnap || ph.KnockbackForce <= 0 {
		return
	}
	if e.agent.Position.Dist(e.snap.Position) > ph.KnockbackRadius {
		return
	}
	e.sink.RequestKnockback(KnockbackRequest{
		SourceID: e.id,
		TargetID: e.snap.ID,
		Origin:   e.agent.Position,
		Force:    ph.KnockbackForce,
	})
}

func (e *Engine) patrolStep() {
	a := e.agent
	switch {
	case a.Position.X <= e.patrolMin:
		a.Facing = 1
	case a.Position.X >= e.patrolMax:
		a.Facing = -1
	}
	if !e.groundAhead(a.Position, a.FacingVec()) {
		a.TurnAround()
	}
	a.Velocity = a.FacingVec().Scale(e.cfg.Movement.PatrolSpeed * e.speedMultiplier())
}

func (e *Engine) chaseStep() {
	a := e.agent
	goal := e.perception.LastKnown()
	a.FaceToward(goal.X)
	if math.Abs(goal.X-a.Position.X) <= e.cfg.Movement.StopDistance {
		a.Stop()
		return
	}
	// Hold at ledges rather than walk off.
	if !e.groundAhead(a.Position, a.FacingVec()) {
		a.Stop()
		return
	}
	a.Velocity = a.FacingVec().Scale(e.cfg.Movement.ChaseSpeed * e.speedMultiplier())
}

func (e *Engine) move(dt float64) {
	switch e.sm.Current() {
	case model.StatePatrol, model.StateChase:
		e.agent.Position = e.agent.Position.Add(e.agent.Velocity.Scale(dt))
	}
}

// settle checks footing after movement. Ungrounded positions are undone;
// repeated stuck detections teleport the agent back to its last safe point.
func (e *Engine) settle(before model.Vec2) {
	a := e.agent
	mv := e.cfg.Movement
	switch {
	case !e.grounded(a.Position):
		e.stuckCount++
		if a.Position != before {
			a.Position = before
			a.Stop()
		}
	case a.Velocity.LenSq() > 0 && a.Position.Dist(before) < mv.StuckEpsilon:
		e.stuckCount++
	default:
		e.stuckCount = 0
		e.lastSafe = a.Position
	}

	if mv.StuckTicks > 0 && e.stuckCount >= mv.StuckTicks {
		e.stuckCount = 0
		if IsDebugEnabled() {
			slog.Debug("stuck, repositioning", "agent", a.Name, "from", a.Position, "to", e.lastSafe)
		}
		e.relocate(e.lastSafe)
	}
}

func (e *Engine) relocate(pos model.Vec2) {
	e.agent.Position = pos
	e.agent.Stop()
	e.publish(Event{Type: EventRepositioned, Position: pos})
}

// teleportDestination prefers the far side of the target, then the near side,
// then the last safe point.
func (e *Engine) teleportDestination() model.Vec2 {
	if !e.hasSnap {
		return e.lastSafe
	}
	t := e.snap.Position
	side := model.Sign(t.X - e.agent.Position.X)
	if side == 0 {
		side = float64(e.agent.Facing)
	}
	offset := e.cfg.Teleport.BehindOffset
	for _, x := range []float64{t.X + side*offset, t.X - side*offset} {
		if p := model.V(x, e.agent.Position.Y); e.grounded(p) {
			return p
		}
	}
	return e.lastSafe
}

func (e *Engine) grounded(pos model.Vec2) bool {
	if e.world == nil {
		return true
	}
	return e.world.Grounded(pos)
}

func (e *Engine) groundAhead(pos, dir model.Vec2) bool {
	return e.grounded(pos.Add(dir.Scale(e.cfg.Movement.EdgeProbe)))
}

func (e *Engine) overlap(r model.Rect) []uint32 {
	if e.world == nil {
		return nil
	}
	return e.world.Overlap(r)
}

func (e *Engine) eye() model.Vec2 {
	return e.agent.Position.Add(model.V(0, e.cfg.Perception.EyeHeight))
}

func (e *Engine) speedMultiplier() float64 {
	return e.agent.SpeedMultiplier * e.mit.Rage().SpeedMultiplier()
}

func (e *Engine) cooldownMultiplier() float64 {
	return e.agent.CooldownMultiplier * e.mit.Rage().CooldownMultiplier()
}

func (e *Engine) publish(ev Event) {
	ev.AgentID = e.id
	ev.Agent = e.agent.Name
	ev.Tick = e.tick
	ev.Time = e.now
	if ev.Position == (model.Vec2{}) {
		ev.Position = e.agent.Position
	}
	e.bus.Publish(ev)
}

func orOne(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}

// TakeDamage routes a hit through the mitigation pipeline into the health pool.
func (e *Engine) TakeDamage(amount float64) combat.HealthChange {
	return e.health.TakeDamage(amount)
}

// Heal restores health. Phases and rage never revert.
func (e *Engine) Heal(amount float64) combat.HealthChange {
	return e.health.Heal(amount)
}

// ReportHit is called by the physics collaborator when a projectile, bomb,
// rocket or drone launched by this agent connects.
func (e *Engine) ReportHit(kind model.AttackKind, amount float64) {
	if e.sm.Is(model.StateDead) {
		return
	}
	e.publish(Event{Type: EventAttackHit, Attack: kind, Amount: amount})
}

// ForceState moves the agent to s if its class has that state.
func (e *Engine) ForceState(s model.State) bool {
	if e.sm.Is(s) {
		return false
	}
	return e.sm.Force(s)
}

// SetTarget replaces the tracked target and forgets what was learned about the old one.
// A nil target, typed or not, leaves the engine with nothing to detect.
func (e *Engine) SetTarget(t Target) {
	if isNilTarget(t) {
		t = nil
	}
	e.target = t
	if e.perception.Detected() {
		e.perception.Reset()
		e.publish(Event{Type: EventTargetLost, Position: e.perception.LastKnown()})
	}
	e.targetModel.Reset()
	e.predictor.Reset()
}

func isNilTarget(t Target) bool {
	if t == nil {
		return true
	}
	v := reflect.ValueOf(t)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Func, reflect.Interface, reflect.Slice, reflect.Chan:
		return v.IsNil()
	}
	return false
}

// SetPatrolBounds changes the patrol segment.
func (e *Engine) SetPatrolBounds(minX, maxX float64) {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	e.patrolMin, e.patrolMax = minX, maxX
}

// AimPoint returns where ranged attacks would aim right now.
func (e *Engine) AimPoint() model.Vec2 {
	if !e.hasSnap {
		return e.perception.LastKnown()
	}
	return e.predictor.AimPoint(e.snap.Position, e.targetModel.Biases(), e.targetModel.Ready())
}

func (e *Engine) ID() uint32                   { return e.id }
func (e *Engine) Name() string                 { return e.agent.Name }
func (e *Engine) State() model.State           { return e.sm.Current() }
func (e *Engine) Agent() model.Agent           { return *e.agent }
func (e *Engine) Profile() config.Agent        { return e.cfg }
func (e *Engine) Health() *combat.HealthPool   { return e.health }
func (e *Engine) Mitigator() *combat.Mitigator { return e.mit }
func (e *Engine) Events() *Bus                 { return e.bus }
func (e *Engine) Perception() *Perception      { return e.perception }
func (e *Engine) Cooldowns() *Cooldowns        { return e.cooldowns }
func (e *Engine) TargetModel() *TargetModel    { return e.targetModel }
func (e *Engine) Predictor() *Predictor        { return e.predictor }
func (e *Engine) Now() float64                 { return e.now }

// Attack returns a copy of the running attack sub-state.
func (e *Engine) Attack() (ActiveAttack, bool) {
	if e.attack == nil {
		return ActiveAttack{}, false
	}
	return *e.attack, true
}

// Expired reports whether a dead agent finished lingering and can be removed.
func (e *Engine) Expired() bool { return e.expired }
