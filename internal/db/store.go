package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/bossmind/internal/config"
	"github.com/udisondev/bossmind/internal/encounter"
)

// ErrUnknownDriver is returned by Open for an unsupported store driver.
var ErrUnknownDriver = errors.New("unknown store driver")

// DefaultListLimit caps ListEncounters when the filter sets no limit.
const DefaultListLimit = 100

// EncounterStore persists encounter summaries.
type EncounterStore interface {
	SaveEncounter(ctx context.Context, s encounter.Summary) error
	ListEncounters(ctx context.Context, f ListFilter) ([]encounter.Summary, error)
	Close() error
}

// ListFilter narrows ListEncounters. Results are newest first.
type ListFilter struct {
	AgentName     string
	ProfileDigest string
	Limit         int
}

func (f ListFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}

// Open returns the store selected by cfg.Driver, migrated to the latest schema.
func Open(ctx context.Context, cfg config.StoreConfig) (EncounterStore, error) {
	switch cfg.Driver {
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		dsn := cfg.Database.DSN()
		if err := RunMigrations(ctx, dsn); err != nil {
			return nil, err
		}
		d, err := New(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("opening store: %w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// encounterColumns is the column order shared by every INSERT and SELECT.
const encounterColumns = `id, agent_id, agent_name, class, profile_digest, difficulty, outcome,
	started_at, ended_at, duration, ticks, phase_reached, rage, staggers, shield_breaks,
	repositions, acquisitions, attacks_cancelled, damage_taken, damage_dealt,
	attacks_started, attacks_hit`

// encounterRow is a Summary flattened to column values.
type encounterRow struct {
	ID               string
	AgentID          int64
	AgentName        string
	Class            string
	ProfileDigest    string
	Difficulty       string
	Outcome          string
	StartedAt        time.Time
	EndedAt          time.Time
	Duration         float64
	Ticks            int64
	PhaseReached     int
	Rage             bool
	Staggers         int
	ShieldBreaks     int
	Repositions      int
	Acquisitions     int
	AttacksCancelled int
	DamageTaken      float64
	DamageDealt      float64
	AttacksStarted   []byte
	AttacksHit       []byte
}

func rowFromSummary(s encounter.Summary) (encounterRow, error) {
	started, err := json.Marshal(orEmpty(s.AttacksStarted))
	if err != nil {
		return encounterRow{}, fmt.Errorf("encoding attacks started: %w", err)
	}
	hit, err := json.Marshal(orEmpty(s.AttacksHit))
	if err != nil {
		return encounterRow{}, fmt.Errorf("encoding attacks hit: %w", err)
	}
	return encounterRow{
		ID:               s.ID.String(),
		AgentID:          int64(s.AgentID),
		AgentName:        s.AgentName,
		Class:            s.Class,
		ProfileDigest:    s.ProfileDigest,
		Difficulty:       s.Difficulty,
		Outcome:          string(s.Outcome),
		StartedAt:        s.StartedAt.UTC(),
		EndedAt:          s.EndedAt.UTC(),
		Duration:         s.Duration,
		Ticks:            int64(s.Ticks),
		PhaseReached:     s.PhaseReached,
		Rage:             s.Rage,
		Staggers:         s.Staggers,
		ShieldBreaks:     s.ShieldBreaks,
		Repositions:      s.Repositions,
		Acquisitions:     s.Acquisitions,
		AttacksCancelled: s.AttacksCancelled,
		DamageTaken:      s.DamageTaken,
		DamageDealt:      s.DamageDealt,
		AttacksStarted:   started,
		AttacksHit:       hit,
	}, nil
}

func (r encounterRow) summary() (encounter.Summary, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return encounter.Summary{}, fmt.Errorf("parsing encounter id %q: %w", r.ID, err)
	}
	s := encounter.Summary{
		ID:               id,
		AgentID:          uint32(r.AgentID),
		AgentName:        r.AgentName,
		Class:            r.Class,
		ProfileDigest:    r.ProfileDigest,
		Difficulty:       r.Difficulty,
		Outcome:          encounter.Outcome(r.Outcome),
		StartedAt:        r.StartedAt.UTC(),
		EndedAt:          r.EndedAt.UTC(),
		Duration:         r.Duration,
		Ticks:            uint64(r.Ticks),
		PhaseReached:     r.PhaseReached,
		Rage:             r.Rage,
		Staggers:         r.Staggers,
		ShieldBreaks:     r.ShieldBreaks,
		Repositions:      r.Repositions,
		Acquisitions:     r.Acquisitions,
		AttacksCancelled: r.AttacksCancelled,
		DamageTaken:      r.DamageTaken,
		DamageDealt:      r.DamageDealt,
	}
	if err := json.Unmarshal(r.AttacksStarted, &s.AttacksStarted); err != nil {
		return encounter.Summary{}, fmt.Errorf("decoding attacks started for %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.AttacksHit, &s.AttacksHit); err != nil {
		return encounter.Summary{}, fmt.Errorf("decoding attacks hit for %s: %w", r.ID, err)
	}
	return s, nil
}

func orEmpty(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
