package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/db"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"loud", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), tt.in)
	}
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultEngine()
	applyOverrides(&cfg, options{seed: 42, difficulty: "hard", behavior: "kiter", trace: true})

	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, config.DifficultyHard, cfg.Difficulty)
	assert.Equal(t, config.BehaviorKiter, cfg.Target.Behavior)
	assert.True(t, cfg.Trace.Enabled)
}

func TestRun_PersistsSummaries(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "encounters.db")
	cfgPath := filepath.Join(dir, "combatsim.yaml")
	doc := "log_level: warn\nmax_ticks: 120\nstore:\n  driver: sqlite\n  path: " + dbPath + "\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(doc), 0o644))

	ctx := context.Background()
	require.NoError(t, run(ctx, []string{"-config", cfgPath, "-seed", "3"}))

	store, err := db.OpenSQLite(ctx, dbPath)
	require.NoError(t, err)
	defer store.Close()

	sums, err := store.ListEncounters(ctx, db.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, sums, len(config.DefaultEngine().Agents))
}

func TestRun_BadFlag(t *testing.T) {
	assert.Error(t, run(context.Background(), []string{"-nope"}))
}
