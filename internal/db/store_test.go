package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/encounter"
)

func sampleSummary(name string, ended time.Time) encounter.Summary {
	return encounter.Summary{
		ID:               uuid.New(),
		AgentID:          0x10000001,
		AgentName:        name,
		Class:            "boss",
		ProfileDigest:    "abc123",
		Difficulty:       "normal",
		Outcome:          encounter.OutcomeVictory,
		StartedAt:        ended.Add(-time.Minute),
		EndedAt:          ended,
		Duration:         60,
		Ticks:            3600,
		PhaseReached:     3,
		Rage:             true,
		Staggers:         2,
		ShieldBreaks:     1,
		Repositions:      1,
		Acquisitions:     4,
		AttacksCancelled: 3,
		DamageTaken:      1234.5,
		DamageDealt:      321,
		AttacksStarted:   map[string]int{"melee": 5, "laser": 2},
		AttacksHit:       map[string]int{"melee": 3},
	}
}

// storeContract runs the same assertions against every backend.
func storeContract(t *testing.T, store EncounterStore) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	first := sampleSummary("guardian", base)
	second := sampleSummary("guardian", base.Add(time.Hour))
	other := sampleSummary("grunt", base.Add(2*time.Hour))
	other.ProfileDigest = "zzz"
	other.AttacksHit = nil

	for _, s := range []encounter.Summary{first, second, other} {
		require.NoError(t, store.SaveEncounter(ctx, s))
	}

	all, err := store.ListEncounters(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, other.ID, all[0].ID, "newest first")
	assert.Equal(t, first.ID, all[2].ID)

	got := all[2]
	assert.Equal(t, first.AgentID, got.AgentID)
	assert.Equal(t, first.Outcome, got.Outcome)
	assert.True(t, first.EndedAt.Equal(got.EndedAt))
	assert.True(t, first.StartedAt.Equal(got.StartedAt))
	assert.Equal(t, first.AttacksStarted, got.AttacksStarted)
	assert.Equal(t, first.AttacksHit, got.AttacksHit)
	assert.Equal(t, 3, got.PhaseReached)
	assert.True(t, got.Rage)
	assert.InDelta(t, first.DamageTaken, got.DamageTaken, 1e-9)
	assert.Equal(t, first.Ticks, got.Ticks)
	assert.Empty(t, all[0].AttacksHit)

	byName, err := store.ListEncounters(ctx, ListFilter{AgentName: "guardian"})
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, second.ID, byName[0].ID)

	byDigest, err := store.ListEncounters(ctx, ListFilter{ProfileDigest: "zzz"})
	require.NoError(t, err)
	require.Len(t, byDigest, 1)
	assert.Equal(t, "grunt", byDigest[0].AgentName)

	limited, err := store.ListEncounters(ctx, ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	first.Outcome = encounter.OutcomeDefeated
	first.Staggers = 9
	require.NoError(t, store.SaveEncounter(ctx, first))
	byName, err = store.ListEncounters(ctx, ListFilter{AgentName: "guardian"})
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, encounter.OutcomeDefeated, byName[1].Outcome)
	assert.Equal(t, 9, byName[1].Staggers)
}

func TestSQLiteStore_Memory(t *testing.T) {
	t.Parallel()

	store, err := OpenSQLite(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	storeContract(t, store)
}

func TestSQLiteStore_FileReopen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sub", "encounters.db")

	store, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	s := sampleSummary("guardian", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, store.SaveEncounter(ctx, s))
	require.NoError(t, store.Close())

	store, err = OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	got, err := store.ListEncounters(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, s.ID, got[0].ID)
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	t.Parallel()

	_, err := OpenSQLite(context.Background(), "")
	assert.Error(t, err)
}

func TestOpen_Drivers(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, err := Open(ctx, config.StoreConfig{Driver: "mongo"})
	assert.ErrorIs(t, err, ErrUnknownDriver)

	store, err := Open(ctx, config.StoreConfig{Driver: "sqlite", Path: MemoryPath})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	assert.NoError(t, store.Close())
}

// Set BOSSMIND_TEST_POSTGRES_DSN to run against a real server.
func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("BOSSMIND_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("BOSSMIND_TEST_POSTGRES_DSN not set")
	}

	ctx := context.Background()
	require.NoError(t, RunMigrations(ctx, dsn))

	store, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Pool().Exec(ctx, "TRUNCATE encounters")
	require.NoError(t, err)

	storeContract(t, store)
}
