// Package storage provides SQLite-based persistence for level run records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run records.
type Store struct {
	db *sql.DB
}

// Run is one completed level: how long it took and how often the player died.
type Run struct {
	ID        int64
	Level     string
	Player    string // local user or SSH user name
	Ticks     int
	Deaths    int
	CreatedAt time.Time
}

// Duration converts the tick count at the given tick rate.
func (r Run) Duration(tickRate int) time.Duration {
	if tickRate <= 0 {
		return 0
	}
	return time.Duration(r.Ticks) * time.Second / time.Duration(tickRate)
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Level       string
	Runs        int
	BestTicks   int
	AvgDeaths   float64
	TotalDeaths int64
	LastPlayed  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL,
			deaths INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(level, ticks ASC, deaths ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a completed level.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run Run) (int64, error) {
	if run.Level == "" {
		return 0, errors.New("storage: run without a level")
	}
	result, err := s.db.Exec(
		"INSERT INTO runs (level, player, ticks, deaths) VALUES (?, ?, ?, ?)",
		run.Level, run.Player, run.Ticks, run.Deaths,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, level, player, ticks, deaths, created_at`

// BestRuns retrieves the N fastest runs of a level.
// Ties on time are broken by fewer deaths, then by age.
func (s *Store) BestRuns(level string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level = ?
		 ORDER BY ticks ASC, deaths ASC, id ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// AllRuns retrieves every run of a level, newest first.
func (s *Store) AllRuns(level string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE level = ?
		 ORDER BY id DESC`,
		level,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestRun returns the fastest run of a level, or nil when there is none.
func (s *Store) BestRun(level string) (*Run, error) {
	runs, err := s.BestRuns(level, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// ClearRuns deletes all runs of a level.
func (s *Store) ClearRuns(level string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level = ?", level)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Level, &r.Player, &r.Ticks, &r.Deaths, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(level string) (*LevelStats, error) {
	stats := &LevelStats{Level: level}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(ticks), 0), COALESCE(AVG(deaths), 0), COALESCE(SUM(deaths), 0)
		 FROM runs WHERE level = ?`,
		level,
	).Scan(&stats.Runs, &stats.BestTicks, &stats.AvgDeaths, &stats.TotalDeaths)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE level = ? ORDER BY id DESC LIMIT 1`,
		level,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has runs.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), MIN(ticks), AVG(deaths), SUM(deaths), MAX(created_at)
		 FROM runs
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Runs, &ls.BestTicks, &ls.AvgDeaths, &ls.TotalDeaths, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.Level] = &ls
	}

	return stats, rows.Err()
}
