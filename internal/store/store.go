package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists suite run history
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		test TEXT NOT NULL,
		device TEXT NOT NULL,
		query TEXT,
		status TEXT NOT NULL,
		failure_reason TEXT,
		report_path TEXT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS steps (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES runs(id),
		name TEXT NOT NULL,
		status TEXT NOT NULL,
		duration_ms INTEGER,
		screenshot_path TEXT,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	CREATE INDEX IF NOT EXISTS idx_steps_run_id ON steps(run_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveRun inserts a run and its steps, setting their IDs
func (s *Store) SaveRun(r *Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO runs (test, device, query, status, failure_reason, report_path, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.Test, r.Device, r.Query, r.Status, r.FailureReason, r.ReportPath, r.StartedAt, r.FinishedAt)
	if err != nil {
		return err
	}

	r.ID, err = res.LastInsertId()
	if err != nil {
		return err
	}

	for i := range r.Steps {
		step := &r.Steps[i]
		step.RunID = r.ID

		res, err := tx.Exec(`
			INSERT INTO steps (run_id, name, status, duration_ms, screenshot_path, detail)
			VALUES (?, ?, ?, ?, ?, ?)
		`, step.RunID, step.Name, step.Status, step.Duration.Milliseconds(), step.ScreenshotPath, step.Detail)
		if err != nil {
			return err
		}
		step.ID, err = res.LastInsertId()
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentRuns returns the most recent runs with their steps, newest first
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, test, device, query, status, failure_reason, report_path, started_at, finished_at
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		err := rows.Scan(&r.ID, &r.Test, &r.Device, &r.Query, &r.Status,
			&r.FailureReason, &r.ReportPath, &r.StartedAt, &r.FinishedAt)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		steps, err := s.runSteps(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Steps = steps
	}

	return runs, nil
}

// FailureCountSince counts failed runs started after the given time
func (s *Store) FailureCountSince(t time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM runs WHERE status = ? AND started_at >= ?
	`, StatusFailed, t).Scan(&n)
	return n, err
}

func (s *Store) runSteps(runID int64) ([]Step, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, name, status, duration_ms, screenshot_path, detail
		FROM steps
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []Step
	for rows.Next() {
		var st Step
		var durationMS int64
		err := rows.Scan(&st.ID, &st.RunID, &st.Name, &st.Status, &durationMS, &st.ScreenshotPath, &st.Detail)
		if err != nil {
			return nil, err
		}
		st.Duration = time.Duration(durationMS) * time.Millisecond
		steps = append(steps, st)
	}

	return steps, rows.Err()
}
