package trace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bossmind/internal/ai"
	"github.com/udisondev/bossmind/internal/model"
)

func TestFromEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   ai.Event
		want Record
	}{
		{
			name: "state change carries from and to",
			ev: ai.Event{
				Type: ai.EventStateChanged, AgentID: 7, Agent: "boss", Tick: 3, Time: 0.05,
				From: model.StatePatrol, To: model.StateChase, Position: model.V(1, 2),
			},
			want: Record{
				Tick: 3, Time: 0.05, AgentID: 7, Agent: "boss", Event: "state_changed",
				From: "PATROL", To: "CHASE", X: 1, Y: 2,
			},
		},
		{
			name: "attack hit carries kind and amount",
			ev:   ai.Event{Type: ai.EventAttackHit, AgentID: 7, Attack: model.AttackLaser, Amount: 25},
			want: Record{AgentID: 7, Event: "attack_hit", Attack: "laser", Amount: 25},
		},
		{
			name: "phase change omits state names",
			ev:   ai.Event{Type: ai.EventPhaseChanged, Phase: 2},
			want: Record{Event: "phase_changed", Phase: 2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FromEvent(tt.ev))
		})
	}
}

func TestWriter_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", FileName("combat", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Equal(t, "combat-2026-01-02-030405.jsonl.zst", filepath.Base(path))

	w, err := Create(path)
	require.NoError(t, err)

	bus := ai.NewBus()
	detach := w.Attach(bus)
	bus.Publish(ai.Event{Type: ai.EventAttackStart, Tick: 1, Attack: model.AttackMelee})
	bus.Publish(ai.Event{Type: ai.EventDamaged, Tick: 2, Amount: 12.5})
	detach()
	bus.Publish(ai.Event{Type: ai.EventDeath, Tick: 3})

	assert.Equal(t, 2, w.Count())
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.NoError(t, w.Err())

	got, err := ReadTrace(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "attack_start", got[0].Event)
	assert.Equal(t, "melee", got[0].Attack)
	assert.Equal(t, "damaged", got[1].Event)
	assert.InDelta(t, 12.5, got[1].Amount, 1e-9)
}

func TestWriter_WriteAfterClose(t *testing.T) {
	t.Parallel()

	w, err := Create(filepath.Join(t.TempDir(), "t.jsonl.zst"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.ErrorIs(t, w.Write(Record{Event: "x"}), os.ErrClosed)

	w.Record(ai.Event{Type: ai.EventDeath})
	assert.ErrorIs(t, w.Err(), os.ErrClosed)
}

func TestReadTrace_Errors(t *testing.T) {
	t.Parallel()

	_, err := ReadTrace(filepath.Join(t.TempDir(), "missing.jsonl.zst"))
	assert.Error(t, err)

	garbage := filepath.Join(t.TempDir(), "garbage.jsonl.zst")
	require.NoError(t, os.WriteFile(garbage, []byte("not zstd at all"), 0o644))
	_, err = ReadTrace(garbage)
	assert.Error(t, err)
}
