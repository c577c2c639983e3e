// Package history persists pipeline run records in SQLite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/DingxDon/Task-Automate/internal/domain"
	"github.com/DingxDon/Task-Automate/internal/ports"
)

// SQLiteStore records every pipeline invocation. History writes are
// best-effort from the pipeline's point of view; a store that failed to open
// surfaces errors instead of panicking.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) the runs database at path. An empty path
// defaults to ~/.taskauto/history/runs.db.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = filepath.Join(userHome(), ".taskauto", "history", "runs.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp TEXT,
		mode TEXT,
		instruction TEXT,
		code TEXT,
		dependencies TEXT,
		install_failed INTEGER,
		executed INTEGER,
		succeeded INTEGER,
		fault TEXT,
		generation_ms INTEGER,
		execution_ms INTEGER
	);`)
	return err
}

// Save inserts a new run record.
func (s *SQLiteStore) Save(record domain.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO runs
		(id, timestamp, mode, instruction, code, dependencies, install_failed, executed, succeeded, fault, generation_ms, execution_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Format(time.RFC3339),
		string(record.Mode),
		record.Instruction,
		record.Code,
		record.Dependencies,
		boolToInt(record.InstallFailed),
		boolToInt(record.Executed),
		boolToInt(record.Succeeded),
		record.Fault,
		record.GenerationMS,
		record.ExecutionMS,
	)
	return err
}

// Records returns run records, newest first, optionally filtered by a
// substring of the instruction or code.
func (s *SQLiteStore) Records(limit int, search string) ([]domain.RunRecord, error) {
	builder := strings.Builder{}
	builder.WriteString("SELECT id, timestamp, mode, instruction, code, dependencies, install_failed, executed, succeeded, fault, generation_ms, execution_ms FROM runs")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE instruction LIKE ? OR code LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY datetime(timestamp) DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var ts, mode string
		var installFailed, executed, succeeded int
		if err := rows.Scan(&rec.ID, &ts, &mode, &rec.Instruction, &rec.Code, &rec.Dependencies,
			&installFailed, &executed, &succeeded, &rec.Fault, &rec.GenerationMS, &rec.ExecutionMS); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			rec.Timestamp = t
		}
		rec.Mode = domain.Mode(mode)
		rec.InstallFailed = installFailed == 1
		rec.Executed = executed == 1
		rec.Succeeded = succeeded == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all run records.
func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec("DELETE FROM runs")
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func userHome() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.HistoryStore = (*SQLiteStore)(nil)
