// Package state persists a journal of restore runs so the operator can see
// what was restored, when, and how it went.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Manager handles persistence of restore run history
type Manager struct {
	db *sql.DB
}

// RunRecord represents a single restore run
type RunRecord struct {
	ID         int64
	BackupRoot string
	HomeDir    string
	StartTime  time.Time
	EndTime    time.Time
	Status     string // "success", "partial", "failed", "dry-run"
	Files      int
	Bytes      int64
	Conflicts  int
	Errors     int
}

// NewManager opens (creating if needed) the journal database under dataDir
func NewManager(dataDir string) (*Manager, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "homerestore.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Limit connection pool to prevent "database is locked" errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode and busy timeout: %w", err)
	}

	manager := &Manager{db: db}
	if err := manager.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return manager, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		backup_root TEXT NOT NULL,
		home_dir TEXT NOT NULL,
		start_time TIMESTAMP NOT NULL,
		end_time TIMESTAMP NOT NULL,
		status TEXT NOT NULL,
		files INTEGER DEFAULT 0,
		bytes INTEGER DEFAULT 0,
		conflicts INTEGER DEFAULT 0,
		errors INTEGER DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_runs_time ON runs(start_time DESC);
	CREATE INDEX IF NOT EXISTS idx_runs_status ON runs(status);
	`

	_, err := m.db.Exec(schema)
	return err
}

// SaveRun records one restore run
func (m *Manager) SaveRun(record RunRecord) error {
	switch record.Status {
	case "success", "partial", "failed", "dry-run":
	default:
		return fmt.Errorf("invalid status: %s", record.Status)
	}

	query := `
		INSERT INTO runs (backup_root, home_dir, start_time, end_time, status, files, bytes, conflicts, errors)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := m.db.Exec(query,
		record.BackupRoot,
		record.HomeDir,
		record.StartTime,
		record.EndTime,
		record.Status,
		record.Files,
		record.Bytes,
		record.Conflicts,
		record.Errors,
	)
	if err != nil {
		return fmt.Errorf("failed to save run record: %w", err)
	}

	return nil
}

// History retrieves the most recent runs, newest first
func (m *Manager) History(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	query := `
		SELECT id, backup_root, home_dir, start_time, end_time, status, files, bytes, conflicts, errors
		FROM runs
		ORDER BY start_time DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		err := rows.Scan(
			&record.ID,
			&record.BackupRoot,
			&record.HomeDir,
			&record.StartTime,
			&record.EndTime,
			&record.Status,
			&record.Files,
			&record.Bytes,
			&record.Conflicts,
			&record.Errors,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating records: %w", err)
	}

	return records, nil
}

// LastSuccess retrieves the most recent fully successful run, or nil
func (m *Manager) LastSuccess() (*RunRecord, error) {
	query := `
		SELECT id, backup_root, home_dir, start_time, end_time, status, files, bytes, conflicts, errors
		FROM runs
		WHERE status = 'success'
		ORDER BY start_time DESC
		LIMIT 1
	`

	var record RunRecord
	err := m.db.QueryRow(query).Scan(
		&record.ID,
		&record.BackupRoot,
		&record.HomeDir,
		&record.StartTime,
		&record.EndTime,
		&record.Status,
		&record.Files,
		&record.Bytes,
		&record.Conflicts,
		&record.Errors,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last success: %w", err)
	}

	return &record, nil
}

// Close closes the database connection
func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
