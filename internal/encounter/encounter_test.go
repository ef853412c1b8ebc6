package encounter

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bossmind/internal/ai"
	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/model"
)

type fakeSource struct {
	bus     *ai.Bus
	profile config.Agent
}

func newFakeSource() *fakeSource {
	return &fakeSource{bus: ai.NewBus(), profile: config.DefaultBoss()}
}

func (f *fakeSource) ID() uint32            { return 0x10000001 }
func (f *fakeSource) Name() string          { return f.profile.Name }
func (f *fakeSource) Profile() config.Agent { return f.profile }
func (f *fakeSource) Events() *ai.Bus       { return f.bus }

var _ Source = (*ai.Engine)(nil)

func TestTracker_Accumulates(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	tr, err := Track(src, config.DifficultyHard)
	require.NoError(t, err)

	events := []ai.Event{
		{Type: ai.EventTargetAcquired, Tick: 1, Time: 0.1},
		{Type: ai.EventAttackStart, Attack: model.AttackMelee, Tick: 2, Time: 0.2},
		{Type: ai.EventAttackHit, Attack: model.AttackMelee, Amount: 30, Tick: 3, Time: 0.3},
		{Type: ai.EventAttackStart, Attack: model.AttackMelee, Tick: 4, Time: 0.4},
		{Type: ai.EventAttackStart, Attack: model.AttackLaser, Tick: 5, Time: 0.5},
		{Type: ai.EventAttackCancelled, Attack: model.AttackLaser, Tick: 6, Time: 0.6},
		{Type: ai.EventDamaged, Amount: 40, Tick: 7, Time: 0.7},
		{Type: ai.EventDamaged, Amount: 15, Tick: 8, Time: 0.8},
		{Type: ai.EventShieldBroken, Tick: 9, Time: 0.9},
		{Type: ai.EventStagger, Tick: 10, Time: 1.0},
		{Type: ai.EventPhaseChanged, Phase: 2, Tick: 11, Time: 1.1},
		{Type: ai.EventPhaseChanged, Phase: 3, Tick: 11, Time: 1.1},
		{Type: ai.EventRageActivated, Tick: 12, Time: 1.2},
		{Type: ai.EventRepositioned, Tick: 13, Time: 1.3},
	}
	for _, ev := range events {
		src.bus.Publish(ev)
	}

	s := tr.Finish(OutcomeTimeout)
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, src.ID(), s.AgentID)
	assert.Equal(t, "boss", s.Class)
	assert.Equal(t, "hard", s.Difficulty)
	assert.NotEmpty(t, s.ProfileDigest)
	assert.Equal(t, OutcomeTimeout, s.Outcome)
	assert.Equal(t, map[string]int{"melee": 2, "laser": 1}, s.AttacksStarted)
	assert.Equal(t, map[string]int{"melee": 1}, s.AttacksHit)
	assert.Equal(t, 3, s.TotalAttacks())
	assert.Equal(t, 1, s.AttacksCancelled)
	assert.InDelta(t, 55, s.DamageTaken, 1e-9)
	assert.InDelta(t, 30, s.DamageDealt, 1e-9)
	assert.Equal(t, 1, s.ShieldBreaks)
	assert.Equal(t, 1, s.Staggers)
	assert.Equal(t, 3, s.PhaseReached)
	assert.True(t, s.Rage)
	assert.Equal(t, 1, s.Repositions)
	assert.Equal(t, 1, s.Acquisitions)
	assert.Equal(t, uint64(13), s.Ticks)
	assert.InDelta(t, 1.3, s.Duration, 1e-9)
	assert.False(t, s.EndedAt.Before(s.StartedAt))
}

func TestTracker_DeathWinsOverOutcome(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	tr, err := Track(src, config.DifficultyNormal)
	require.NoError(t, err)

	src.bus.Publish(ai.Event{Type: ai.EventDeath, Tick: 50, Time: 5})
	s := tr.Finish(OutcomeVictory)
	assert.Equal(t, OutcomeDefeated, s.Outcome)
}

func TestTracker_FinishUnsubscribes(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	tr, err := Track(src, config.DifficultyNormal)
	require.NoError(t, err)
	require.Equal(t, 1, src.bus.Len())

	first := tr.Finish(OutcomeVictory)
	assert.Zero(t, src.bus.Len())

	src.bus.Publish(ai.Event{Type: ai.EventStagger})
	second := tr.Finish(OutcomeTimeout)
	assert.Equal(t, OutcomeVictory, second.Outcome)
	assert.Zero(t, second.Staggers)
	assert.Equal(t, first.EndedAt, second.EndedAt)
}

func TestTracker_SummaryIsACopy(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	tr, err := Track(src, config.DifficultyEasy)
	require.NoError(t, err)

	src.bus.Publish(ai.Event{Type: ai.EventAttackStart, Attack: model.AttackBomb})
	s := tr.Summary()
	s.AttacksStarted["bomb"] = 99

	assert.Equal(t, 1, tr.Summary().AttacksStarted["bomb"])
	assert.Equal(t, OutcomeOngoing, tr.Summary().Outcome)
}

func TestTracker_RealEngine(t *testing.T) {
	t.Parallel()

	profile := config.DefaultBoss()
	profile.Shield.MaxHits = 0
	e, err := ai.NewEngine(0x10000001, profile, ai.Deps{World: openWorld{}})
	require.NoError(t, err)
	tr, err := Track(e, config.DifficultyNormal)
	require.NoError(t, err)
	e.Start()

	e.TakeDamage(10)
	e.Tick(1.0 / 60)
	s := tr.Finish(OutcomeTimeout)

	assert.Greater(t, s.DamageTaken, 0.0)
	assert.Equal(t, e.Name(), s.AgentName)
}

type openWorld struct{}

func (openWorld) LineOfSight(_, _ model.Vec2) bool { return true }
func (openWorld) Grounded(model.Vec2) bool         { return true }
func (openWorld) Overlap(model.Rect) []uint32      { return nil }
