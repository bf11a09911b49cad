package results

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store archives analysis reports in a SQLite database, one row per run.
type Store struct {
	db *sql.DB
}

// RunSummary is the listing view of an archived run.
type RunSummary struct {
	RunID     string    `json:"run_id"`
	NetName   string    `json:"net_name"`
	StartedAt time.Time `json:"started_at"`
}

// NewStore opens (creating if needed) a run archive at the given path.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		net_name TEXT NOT NULL,
		places INTEGER NOT NULL,
		transitions INTEGER NOT NULL,
		arcs INTEGER NOT NULL,
		started_at DATETIME NOT NULL,
		report TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_net ON runs(net_name);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save inserts a report into the archive.
func (s *Store) Save(report *Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (run_id, net_name, places, transitions, arcs, started_at, report)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		report.RunID, report.Net.Name, report.Net.Places, report.Net.Transitions,
		report.Net.Arcs, report.StartedAt, string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// Get loads one archived report by run identifier.
func (s *Store) Get(runID string) (*Report, error) {
	var payload string
	err := s.db.QueryRow(`SELECT report FROM runs WHERE run_id = ?`, runID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}

	var report Report
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// List returns archived runs, newest first.
func (s *Store) List() ([]RunSummary, error) {
	rows, err := s.db.Query(`SELECT run_id, net_name, started_at FROM runs ORDER BY started_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.RunID, &r.NetName, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
