// Package encounter turns an agent's event stream into a fight summary.
package encounter

import (
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/bossmind/internal/ai"
	"github.com/udisondev/bossmind/internal/config"
)

// Outcome is how an encounter ended from the agent's point of view.
type Outcome string

const (
	OutcomeOngoing  Outcome = "ongoing"
	OutcomeDefeated Outcome = "defeated"
	OutcomeVictory  Outcome = "victory"
	OutcomeTimeout  Outcome = "timeout"
)

// Summary is the per-agent record persisted after a fight.
type Summary struct {
	ID            uuid.UUID
	AgentID       uint32
	AgentName     string
	Class         string
	ProfileDigest string
	Difficulty    string
	Outcome       Outcome

	StartedAt time.Time
	EndedAt   time.Time
	// Duration is simulated seconds, not wall-clock time.
	Duration float64
	Ticks    uint64

	PhaseReached     int
	Rage             bool
	Staggers         int
	ShieldBreaks     int
	Repositions      int
	Acquisitions     int
	AttacksCancelled int

	DamageTaken float64
	DamageDealt float64

	AttacksStarted map[string]int
	AttacksHit     map[string]int
}

// TotalAttacks returns the number of attacks started.
func (s Summary) TotalAttacks() int {
	n := 0
	for _, c := range s.AttacksStarted {
		n += c
	}
	return n
}

// Source is the agent a tracker listens to. *ai.Engine satisfies it.
type Source interface {
	ID() uint32
	Name() string
	Profile() config.Agent
	Events() *ai.Bus
}

// Tracker accumulates a Summary from bus events until Finish.
type Tracker struct {
	mu          sync.Mutex
	summary     Summary
	unsubscribe func()
	done        bool
}

// Track subscribes a new tracker to src's events.
func Track(src Source, difficulty config.Difficulty) (*Tracker, error) {
	profile := src.Profile()
	digest, err := profile.Digest()
	if err != nil {
		return nil, fmt.Errorf("tracking agent %q: %w", src.Name(), err)
	}

	t := &Tracker{
		summary: Summary{
			ID:             uuid.New(),
			AgentID:        src.ID(),
			AgentName:      src.Name(),
			Class:          profile.Class,
			ProfileDigest:  digest,
			Difficulty:     string(difficulty),
			Outcome:        OutcomeOngoing,
			StartedAt:      time.Now().UTC(),
			PhaseReached:   1,
			AttacksStarted: make(map[string]int),
			AttacksHit:     make(map[string]int),
		},
	}
	t.unsubscribe = src.Events().Subscribe(t.handle)
	return t, nil
}

func (t *Tracker) handle(ev ai.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}

	s := &t.summary
	s.Duration = ev.Time
	s.Ticks = ev.Tick

	switch ev.Type {
	case ai.EventAttackStart:
		s.AttacksStarted[ev.Attack.String()]++
	case ai.EventAttackHit:
		s.AttacksHit[ev.Attack.String()]++
		s.DamageDealt += ev.Amount
	case ai.EventAttackCancelled:
		s.AttacksCancelled++
	case ai.EventDamaged:
		s.DamageTaken += ev.Amount
	case ai.EventStagger:
		s.Staggers++
	case ai.EventShieldBroken:
		s.ShieldBreaks++
	case ai.EventRageActivated:
		s.Rage = true
	case ai.EventPhaseChanged:
		s.PhaseReached = max(s.PhaseReached, ev.Phase)
	case ai.EventRepositioned:
		s.Repositions++
	case ai.EventTargetAcquired:
		s.Acquisitions++
	case ai.EventDeath:
		s.Outcome = OutcomeDefeated
	}
}

// Finish stops listening and seals the summary. A recorded death wins over
// the outcome passed in. Calling Finish again returns the sealed summary.
func (t *Tracker) Finish(outcome Outcome) Summary {
	t.mu.Lock()
	if !t.done {
		t.done = true
		if t.summary.Outcome != OutcomeDefeated {
			t.summary.Outcome = outcome
		}
		t.summary.EndedAt = time.Now().UTC()
	}
	t.mu.Unlock()

	t.unsubscribe()
	return t.Summary()
}

// Summary returns a copy of the summary so far.
func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.summary
	s.AttacksStarted = maps.Clone(t.summary.AttacksStarted)
	s.AttacksHit = maps.Clone(t.summary.AttacksHit)
	return s
}
