package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/udisondev/bossmind/internal/encounter"
)

// MemoryPath opens a private in-memory sqlite database.
const MemoryPath = ":memory:"

// SQLiteStore is the embedded encounter store.
type SQLiteStore struct {
	db *sql.DB
}

var _ EncounterStore = (*SQLiteStore)(nil)

// OpenSQLite opens (or creates) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("opening sqlite store: empty path")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating sqlite dir: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	// One connection keeps an in-memory database alive and serialises writers.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := initPragmas(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := migrate(ctx, sqlDB, goose.DialectSQLite3, "sqlite"); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &SQLiteStore{db: sqlDB}, nil
}

func initPragmas(ctx context.Context, sqlDB *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("applying %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveEncounter inserts or replaces the summary with the same ID.
func (s *SQLiteStore) SaveEncounter(ctx context.Context, sum encounter.Summary) error {
	r, err := rowFromSummary(sum)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO encounters (`+encounterColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.AgentID, r.AgentName, r.Class, r.ProfileDigest, r.Difficulty, r.Outcome,
		formatTime(r.StartedAt), formatTime(r.EndedAt), r.Duration, r.Ticks, r.PhaseReached,
		r.Rage, r.Staggers, r.ShieldBreaks, r.Repositions, r.Acquisitions, r.AttacksCancelled,
		r.DamageTaken, r.DamageDealt, string(r.AttacksStarted), string(r.AttacksHit),
	)
	if err != nil {
		return fmt.Errorf("saving encounter %s: %w", r.ID, err)
	}
	return nil
}

// ListEncounters returns summaries matching f, newest first.
func (s *SQLiteStore) ListEncounters(ctx context.Context, f ListFilter) ([]encounter.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+encounterColumns+`
		 FROM encounters
		 WHERE (?1 = '' OR agent_name = ?1) AND (?2 = '' OR profile_digest = ?2)
		 ORDER BY ended_at DESC, id
		 LIMIT ?3`,
		f.AgentName, f.ProfileDigest, f.limit(),
	)
	if err != nil {
		return nil, fmt.Errorf("querying encounters: %w", err)
	}
	defer rows.Close()

	var out []encounter.Summary
	for rows.Next() {
		var (
			r              encounterRow
			started, ended string
			atkStarted     string
			atkHit         string
		)
		if err := rows.Scan(
			&r.ID, &r.AgentID, &r.AgentName, &r.Class, &r.ProfileDigest, &r.Difficulty, &r.Outcome,
			&started, &ended, &r.Duration, &r.Ticks, &r.PhaseReached, &r.Rage, &r.Staggers,
			&r.ShieldBreaks, &r.Repositions, &r.Acquisitions, &r.AttacksCancelled,
			&r.DamageTaken, &r.DamageDealt, &atkStarted, &atkHit,
		); err != nil {
			return nil, fmt.Errorf("scanning encounter: %w", err)
		}
		if r.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if r.EndedAt, err = parseTime(ended); err != nil {
			return nil, err
		}
		r.AttacksStarted, r.AttacksHit = []byte(atkStarted), []byte(atkHit)

		sum, err := r.summary()
		if err != nil {
			return nil, err
		}
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating encounters: %w", err)
	}
	return out, nil
}

// sqliteTime sorts lexically in chronological order.
const sqliteTime = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(sqliteTime, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
