package ai

import (
	"sync"

	"github.com/udisondev/bossmind/internal/model"
)

// EventType identifies a notification published on an agent's Bus.
type EventType int

const (
	EventStateChanged EventType = iota
	EventTargetAcquired
	EventTargetLost
	EventAttackStart
	EventAttackHit
	EventAttackCancelled
	EventStagger
	EventStaggerRecovered
	EventPhaseChanged
	EventRageActivated
	EventShieldBroken
	EventDamaged
	EventRepositioned
	EventDeath
	EventDespawned
)

var eventTypeNames = [...]string{
	EventStateChanged:     "state_changed",
	EventTargetAcquired:   "target_acquired",
	EventTargetLost:       "target_lost",
	EventAttackStart:      "attack_start",
	EventAttackHit:        "attack_hit",
	EventAttackCancelled:  "attack_cancelled",
	EventStagger:          "stagger",
	EventStaggerRecovered: "stagger_recovered",
	EventPhaseChanged:     "phase_changed",
	EventRageActivated:    "rage_activated",
	EventShieldBroken:     "shield_broken",
	EventDamaged:          "damaged",
	EventRepositioned:     "repositioned",
	EventDeath:            "death",
	EventDespawned:        "despawned",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return "unknown"
	}
	return eventTypeNames[t]
}

// Event is one notification. Only the fields relevant to Type are set.
type Event struct {
	Type    EventType
	AgentID uint32
	Agent   string
	Tick    uint64
	Time    float64

	From   model.State
	To     model.State
	Attack model.AttackKind
	Phase  int
	Amount float64

	Position model.Vec2
}

// Listener receives published events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Bus is an owned, ordered list of listeners with scoped subscriptions.
// The owning engine clears it on teardown.
type Bus struct {
	mu        sync.RWMutex
	listeners []subscription
	nextID    int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe adds a listener and returns the function that removes it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.listeners {
		if s.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers e to every listener in subscription order.
// Listeners may unsubscribe while being called.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	snapshot := make([]subscription, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.RUnlock()

	for _, s := range snapshot {
		s.fn(e)
	}
}

// Clear drops every listener.
func (b *Bus) Clear() {
	b.mu.Lock()
	b.listeners = nil
	b.mu.Unlock()
}

// Len returns the number of listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners)
}
