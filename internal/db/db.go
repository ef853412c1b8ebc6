package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/bossmind/internal/encounter"
)

// DB is the PostgreSQL encounter store.
type DB struct {
	pool *pgxpool.Pool
}

var _ EncounterStore = (*DB)(nil)

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() error {
	d.pool.Close()
	return nil
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

// SaveEncounter inserts or replaces the summary with the same ID.
func (d *DB) SaveEncounter(ctx context.Context, s encounter.Summary) error {
	r, err := rowFromSummary(s)
	if err != nil {
		return err
	}
	_, err = d.pool.Exec(ctx,
		`INSERT INTO encounters (`+encounterColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		         $16, $17, $18, $19, $20, $21::jsonb, $22::jsonb)
		 ON CONFLICT (id) DO UPDATE SET
		   outcome = EXCLUDED.outcome,
		   ended_at = EXCLUDED.ended_at,
		   duration = EXCLUDED.duration,
		   ticks = EXCLUDED.ticks,
		   phase_reached = EXCLUDED.phase_reached,
		   rage = EXCLUDED.rage,
		   staggers = EXCLUDED.staggers,
		   shield_breaks = EXCLUDED.shield_breaks,
		   repositions = EXCLUDED.repositions,
		   acquisitions = EXCLUDED.acquisitions,
		   attacks_cancelled = EXCLUDED.attacks_cancelled,
		   damage_taken = EXCLUDED.damage_taken,
		   damage_dealt = EXCLUDED.damage_dealt,
		   attacks_started = EXCLUDED.attacks_started,
		   attacks_hit = EXCLUDED.attacks_hit`,
		r.ID, r.AgentID, r.AgentName, r.Class, r.ProfileDigest, r.Difficulty, r.Outcome,
		r.StartedAt, r.EndedAt, r.Duration, r.Ticks, r.PhaseReached, r.Rage, r.Staggers,
		r.ShieldBreaks, r.Repositions, r.Acquisitions, r.AttacksCancelled,
		r.DamageTaken, r.DamageDealt, string(r.AttacksStarted), string(r.AttacksHit),
	)
	if err != nil {
		return fmt.Errorf("saving encounter %s: %w", r.ID, err)
	}
	return nil
}

// ListEncounters returns summaries matching f, newest first.
func (d *DB) ListEncounters(ctx context.Context, f ListFilter) ([]encounter.Summary, error) {
	rows, err := d.pool.Query(ctx,
		`SELECT id::text, agent_id, agent_name, class, profile_digest, difficulty, outcome,
		        started_at, ended_at, duration, ticks, phase_reached, rage, staggers, shield_breaks,
		        repositions, acquisitions, attacks_cancelled, damage_taken, damage_dealt,
		        attacks_started::text, attacks_hit::text
		 FROM encounters
		 WHERE ($1 = '' OR agent_name = $1) AND ($2 = '' OR profile_digest = $2)
		 ORDER BY ended_at DESC, id
		 LIMIT $3`,
		f.AgentName, f.ProfileDigest, f.limit(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying encounters: %w", err)
	}
	defer rows.Close()

	var out []encounter.Summary
	for rows.Next() {
		s, err := scanPgRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating encounters: %w", err)
	}
	return out, nil
}

func scanPgRow(rows pgx.Rows) (encounter.Summary, error) {
	var (
		r            encounterRow
		started, hit string
	)
	if err := rows.Scan(
		&r.ID, &r.AgentID, &r.AgentName, &r.Class, &r.ProfileDigest, &r.Difficulty, &r.Outcome,
		&r.StartedAt, &r.EndedAt, &r.Duration, &r.Ticks, &r.PhaseReached, &r.Rage, &r.Staggers,
		&r.ShieldBreaks, &r.Repositions, &r.Acquisitions, &r.AttacksCancelled,
		&r.DamageTaken, &r.DamageDealt, &started, &hit,
	); err != nil {
		return encounter.Summary{}, fmt.Errorf("scanning encounter: %w", err)
	}
	r.AttacksStarted, r.AttacksHit = []byte(started), []byte(hit)
	return r.summary()
}
