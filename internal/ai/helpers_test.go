package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

const tickDT = 1.0 / 60

// fakeWorld is a flat world with optional walls, pits and overlap targets.
type fakeWorld struct {
	blockLOS bool
	noGround bool
	// pit removes ground for pitMin < x < pitMax when pitMax > pitMin.
	pitMin, pitMax float64
	targets        map[uint32]model.Vec2
}

func (w *fakeWorld) LineOfSight(_, _ model.Vec2) bool { return !w.blockLOS }

func (w *fakeWorld) Grounded(pos model.Vec2) bool {
	if w.noGround {
		return false
	}
	if w.pitMax > w.pitMin && pos.X > w.pitMin && pos.X < w.pitMax {
		return false
	}
	return true
}

func (w *fakeWorld) Overlap(r model.Rect) []uint32 {
	var ids []uint32
	for id, p := range w.targets {
		if r.Contains(p) {
			ids = append(ids, id)
		}
	}
	return ids
}

// fakeTarget returns a fixed snapshot.
type fakeTarget struct {
	snap model.TargetSnapshot
	gone bool
}

func newFakeTarget(x float64) *fakeTarget {
	return &fakeTarget{snap: model.TargetSnapshot{ID: 100, Position: model.V(x, 0), Grounded: true, Alive: true}}
}

func (t *fakeTarget) Snapshot() (model.TargetSnapshot, bool) {
	return t.snap, !t.gone
}

// recordingSink keeps every intent it receives.
type recordingSink struct {
	attacks     []AttackNotice
	staggers    int
	damage      []DamageRequest
	knockbacks  []KnockbackRequest
	projectiles []ProjectileRequest
	drones      []DroneRequest
}

func (s *recordingSink) NotifyAttack(n AttackNotice)         { s.attacks = append(s.attacks, n) }
func (s *recordingSink) NotifyStagger(uint32)                { s.staggers++ }
func (s *recordingSink) RequestDamage(r DamageRequest)       { s.damage = append(s.damage, r) }
func (s *recordingSink) RequestKnockback(r KnockbackRequest) { s.knockbacks = append(s.knockbacks, r) }
func (s *recordingSink) SpawnProjectile(r ProjectileRequest) {
	s.projectiles = append(s.projectiles, r)
}
func (s *recordingSink) SpawnDrone(r DroneRequest) { s.drones = append(s.drones, r) }

// fixedRand always returns the same draw.
type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

// eventLog records published events.
type eventLog struct {
	events []Event
}

func (l *eventLog) listen(e Event) { l.events = append(l.events, e) }

func (l *eventLog) ofType(t EventType) []Event {
	var out []Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func (l *eventLog) transitions() [][2]model.State {
	var out [][2]model.State
	for _, e := range l.ofType(EventStateChanged) {
		out = append(out, [2]model.State{e.From, e.To})
	}
	return out
}

type harness struct {
	engine *Engine
	world  *fakeWorld
	target *fakeTarget
	sink   *recordingSink
	log    *eventLog
}

func newHarness(t *testing.T, cfg config.Agent, targetX float64, rng Rand) *harness {
	t.Helper()

	h := &harness{
		world:  &fakeWorld{targets: map[uint32]model.Vec2{}},
		target: newFakeTarget(targetX),
		sink:   &recordingSink{},
		log:    &eventLog{},
	}
	if rng == nil {
		rng = fixedRand(0.99)
	}
	e, err := NewEngine(1, cfg, Deps{World: h.world, Sink: h.sink, Rand: rng})
	require.NoError(t, err)

	e.SetTarget(h.target)
	e.Events().Subscribe(h.log.listen)
	e.Start()
	h.engine = e
	return h
}

func (h *harness) tick(n int) {
	for range n {
		h.engine.Tick(tickDT)
	}
}

// tickUntil ticks until cond holds or limit ticks ran. Returns whether cond held.
func (h *harness) tickUntil(limit int, cond func() bool) bool {
	for range limit {
		h.engine.Tick(tickDT)
		if cond() {
			return true
		}
	}
	return false
}

// bossProfile is the default boss with the passive defences switched off so
// damage numbers are easy to follow.
func bossProfile() config.Agent {
	cfg := config.DefaultBoss()
	cfg.Spawn = config.SpawnConfig{X: 0, PatrolMin: -5, PatrolMax: 5}
	cfg.Armor = 0
	cfg.Shield.MaxHits = 0
	cfg.Stagger.Threshold = 0
	cfg.Rage.Threshold = 0
	cfg.Counter.Enabled = false
	cfg.Teleport.DamageThreshold = 0
	return cfg
}

func gruntProfile() config.Agent {
	cfg := config.DefaultBasic()
	cfg.Spawn = config.SpawnConfig{X: 0, PatrolMin: -5, PatrolMax: 5}
	return cfg
}
