package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
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

	// WAL mode so external tooling can read history while a run writes.
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
		`CREATE TABLE IF NOT EXISTS runs (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			status          TEXT NOT NULL,
			prev_base_price REAL,
			est_base_price  REAL,
			diff            REAL,
			pct_diff        REAL,
			prev_fx         REAL,
			latest_fx       REAL,
			total_usd       REAL,
			total_jpy       REAL,
			units           REAL,
			shares_json     TEXT,
			error           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordRun inserts one run outcome. Failed runs carry only status and
// error text; the estimate columns stay NULL.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()

	if rec.Estimate == nil {
		_, err := r.db.Exec(`INSERT INTO runs (timestamp, status, error) VALUES (?,?,?)`,
			now, rec.Status, rec.ErrText)
		return err
	}

	est := rec.Estimate
	sharesJSON, err := json.Marshal(est.Shares)
	if err != nil {
		return fmt.Errorf("marshal shares: %w", err)
	}

	_, err = r.db.Exec(`INSERT INTO runs
		(timestamp, status, prev_base_price, est_base_price, diff, pct_diff,
		 prev_fx, latest_fx, total_usd, total_jpy, units, shares_json, error)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		now, rec.Status, est.PrevBasePrice, est.EstBasePrice, est.Diff, est.PctDiff,
		est.PrevFX, est.LatestFX, est.TotalUSD, est.TotalJPY, est.Units,
		string(sharesJSON), rec.ErrText,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
