// Package history persists smoke-test outcomes to a local SQLite database so
// repeated runs against the same deployment can be compared over time.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tdsproject/deployment-smoke-tests/probes"
	"github.com/tdsproject/deployment-smoke-tests/suite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	environment TEXT NOT NULL,
	started_at TEXT NOT NULL,
	health_status TEXT NOT NULL,
	capabilities_status TEXT NOT NULL,
	main_api_status TEXT NOT NULL,
	duration_seconds REAL,
	passed INTEGER NOT NULL
)`

// Store is an append-only log of smoke-test runs.
type Store struct {
	db *sql.DB
}

// Run is one recorded environment run.
type Run struct {
	Environment  string
	StartedAt    time.Time
	Health       probes.Status
	Capabilities probes.Status
	MainAPI      probes.Status
	Duration     time.Duration
	Timed        bool
	Passed       bool
}

// Open opens (creating if necessary) the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// SQLite works best with a single connection for writes.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

// RecordRun appends one environment run to the log.
func (s *Store) RecordRun(ctx context.Context, environment string, startedAt time.Time, results suite.EnvironmentResults) error {
	duration := sql.NullFloat64{}
	if results.Timed {
		duration = sql.NullFloat64{Float64: results.Duration.Seconds(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (environment, started_at, health_status, capabilities_status, main_api_status, duration_seconds, passed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		environment,
		startedAt.UTC().Format(time.RFC3339),
		string(results.Health.Status),
		string(results.Capabilities.Status),
		string(results.MainAPI.Status),
		duration,
		results.OK(),
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Runs returns the recorded runs for one environment, most recent first.
func (s *Store) Runs(ctx context.Context, environment string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT environment, started_at, health_status, capabilities_status, main_api_status, duration_seconds, passed
		FROM runs WHERE environment = ? ORDER BY id DESC`,
		environment,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			startedAt string
			duration  sql.NullFloat64
			health    string
			caps      string
			mainAPI   string
		)
		if err := rows.Scan(&r.Environment, &startedAt, &health, &caps, &mainAPI, &duration, &r.Passed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		r.Health = probes.Status(health)
		r.Capabilities = probes.Status(caps)
		r.MainAPI = probes.Status(mainAPI)
		if duration.Valid {
			r.Timed = true
			r.Duration = time.Duration(duration.Float64 * float64(time.Second))
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
