package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishOrderAndUnsubscribe(t *testing.T) {
	b := NewBus()
	var got []string

	unsubA := b.Subscribe(func(e Event) { got = append(got, "a:"+e.Type.String()) })
	b.Subscribe(func(e Event) { got = append(got, "b:"+e.Type.String()) })

	b.Publish(Event{Type: EventStagger})
	unsubA()
	unsubA()
	b.Publish(Event{Type: EventDeath})

	assert.Equal(t, []string{"a:stagger", "b:stagger", "b:death"}, got)
	assert.Equal(t, 1, b.Len())
}

func TestBus_UnsubscribeInsideListener(t *testing.T) {
	b := NewBus()
	calls := 0

	var unsub func()
	unsub = b.Subscribe(func(Event) {
		calls++
		unsub()
	})

	b.Publish(Event{})
	b.Publish(Event{})
	assert.Equal(t, 1, calls)
	assert.Zero(t, b.Len())
}

func TestBus_Clear(t *testing.T) {
	b := NewBus()
	calls := 0
	for range 3 {
		b.Subscribe(func(Event) { calls++ })
	}
	b.Clear()
	b.Publish(Event{})

	assert.Zero(t, calls)
	assert.Zero(t, b.Len())
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "phase_changed", EventPhaseChanged.String())
	assert.Equal(t, "despawned", EventDespawned.String())
	assert.Equal(t, "unknown", EventType(99).String())
}
