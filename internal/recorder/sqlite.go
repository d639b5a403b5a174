package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists history to a SQLite database.
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
		`CREATE TABLE IF NOT EXISTS refresh_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			generation  INTEGER,
			price       TEXT,
			last        REAL,
			change      REAL,
			ok          INTEGER,
			stale       INTEGER,
			error       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refresh_symbol_ts ON refresh_events(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS chart_builds (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			range_code TEXT,
			height     INTEGER,
			points     INTEGER,
			labels     INTEGER,
			stage      TEXT,
			error      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_chart_symbol_ts ON chart_builds(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRefresh(evt *RefreshEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO refresh_events
		(timestamp, symbol, generation, price, last, change, ok, stale, error)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		unixOrNow(evt.At), evt.Symbol, int64(evt.Generation), evt.Price,
		evt.Last, evt.Change, evt.OK, evt.Stale, evt.Error,
	)
	return err
}

func (r *SQLiteRecorder) RecordChart(evt *ChartEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO chart_builds
		(timestamp, symbol, range_code, height, points, labels, stage, error)
		VALUES (?,?,?,?,?,?,?,?)`,
		unixOrNow(evt.At), evt.Symbol, evt.Range, evt.Height,
		evt.Points, evt.Labels, evt.Stage, evt.Error,
	)
	return err
}

// CountRefreshes returns how many refresh events were recorded for symbol.
func (r *SQLiteRecorder) CountRefreshes(symbol string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM refresh_events WHERE symbol = ?`, symbol).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
