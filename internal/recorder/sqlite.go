package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder journals scan runs to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads of the journal don't block a running scan.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id                TEXT,
			started_at            INTEGER NOT NULL,
			duration_ms           INTEGER,
			universe_size         INTEGER,
			chunks_total          INTEGER,
			chunks_failed         INTEGER,
			gainers               INTEGER,
			losers                INTEGER,
			skipped_no_data       INTEGER,
			skipped_short_history INTEGER,
			skipped_duplicate     INTEGER,
			skipped_error         INTEGER,
			outcome               TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON scan_runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_runs
		(run_id, started_at, duration_ms, universe_size,
		 chunks_total, chunks_failed, gainers, losers,
		 skipped_no_data, skipped_short_history, skipped_duplicate, skipped_error,
		 outcome)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.RunID, rec.StartedAt.Unix(), rec.Duration.Milliseconds(), rec.UniverseSize,
		rec.ChunksTotal, rec.ChunksFailed, rec.Gainers, rec.Losers,
		rec.SkippedNoData, rec.SkippedShortHistory, rec.SkippedDuplicate, rec.SkippedError,
		rec.Outcome,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
