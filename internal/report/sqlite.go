package report

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSink persists triage runs so downstream tooling can plot or diff
// them. The core pipeline stays pure; this sink is the reporting side.
type SQLiteSink struct {
	db *sql.DB
}

const sinkSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	source TEXT NOT NULL,
	generated_at TEXT NOT NULL,
	rules TEXT NOT NULL,
	cells_changed INTEGER NOT NULL,
	total_records INTEGER NOT NULL,
	complete_count INTEGER NOT NULL,
	complete_fraction REAL NOT NULL
);
CREATE TABLE IF NOT EXISTS run_points (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	row_idx INTEGER NOT NULL,
	complete INTEGER NOT NULL,
	PRIMARY KEY (run_id, row_idx)
);`

// OpenSQLiteSink opens (creating if needed) a sink database at path. Use
// ":memory:" for a throwaway sink.
func OpenSQLiteSink(path string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sink database: %w", err)
	}
	if _, err := db.Exec(sinkSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sink schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Save writes one report as a run plus its per-row points, atomically.
// Returns the new run id.
func (s *SQLiteSink) Save(r Report) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO runs
		(source, generated_at, rules, cells_changed, total_records, complete_count, complete_fraction)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Source,
		r.GeneratedAt.UTC().Format(time.RFC3339),
		formatRules(r.Rules),
		r.CellsChanged,
		r.Summary.TotalRecords,
		r.Summary.CompleteCount,
		r.Summary.CompleteFraction,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO run_points (run_id, row_idx, complete) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range r.Points {
		complete := 0
		if p.Complete {
			complete = 1
		}
		if _, err := stmt.Exec(runID, p.Row, complete); err != nil {
			return 0, fmt.Errorf("failed to insert point for row %d: %w", p.Row, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// Close releases the underlying database handle.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
