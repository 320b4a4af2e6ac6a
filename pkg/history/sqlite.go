package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vaultenv/cipherlab/pkg/cipher"
)

// SQLiteRecorder persists history in a SQLite database
type SQLiteRecorder struct {
	db  *sql.DB
	max int
}

// NewSQLiteRecorder opens (creating if needed) the database at path
func NewSQLiteRecorder(path string, max int) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode so a second process can read while one writes
	db, err := sql.Open("sqlite3", path+"?mode=rwc&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	r := &SQLiteRecorder{db: db, max: max}
	if err := r.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return r, nil
}

func (s *SQLiteRecorder) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS operations (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		cipher TEXT NOT NULL,
		direction TEXT NOT NULL,
		input TEXT NOT NULL,
		output TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		created_by TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_operations_cipher ON operations(cipher, direction);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record appends an entry and prunes beyond the configured bound
func (s *SQLiteRecorder) Record(e Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO operations (id, cipher, direction, input, output, created_at, created_by)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID.String(), e.Cipher.String(), e.Direction.String(), e.Input, e.Output, e.Timestamp.UTC(), getCurrentUser())
	if err != nil {
		return fmt.Errorf("failed to insert entry: %w", err)
	}

	if s.max > 0 {
		_, err = tx.Exec(`
			DELETE FROM operations
			WHERE seq <= (SELECT MAX(seq) FROM operations) - ?
		`, s.max)
		if err != nil {
			return fmt.Errorf("failed to prune history: %w", err)
		}
	}

	return tx.Commit()
}

// List returns matching entries, oldest first
func (s *SQLiteRecorder) List(q Query) ([]Entry, error) {
	var (
		where []string
		args  []any
	)
	if q.Cipher != 0 {
		where = append(where, "cipher = ?")
		args = append(args, q.Cipher.String())
	}
	if q.Direction != 0 {
		where = append(where, "direction = ?")
		args = append(args, q.Direction.String())
	}

	query := "SELECT seq, id, cipher, direction, input, output, created_at FROM operations"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	// Negative LIMIT is unbounded in SQLite
	limit := -1
	if q.Limit > 0 {
		limit = q.Limit
	}
	query = "SELECT id, cipher, direction, input, output, created_at FROM (" +
		query + " ORDER BY seq DESC LIMIT ?) ORDER BY seq ASC"
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e             Entry
			id, kind, dir string
			createdAt     time.Time
		)
		if err := rows.Scan(&id, &kind, &dir, &e.Input, &e.Output, &createdAt); err != nil {
			return nil, err
		}
		if e.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("corrupt entry id %q: %w", id, err)
		}
		if e.Cipher, err = cipher.ParseKind(kind); err != nil {
			return nil, fmt.Errorf("corrupt entry %s: %w", id, err)
		}
		if e.Direction, err = cipher.ParseDirection(dir); err != nil {
			return nil, fmt.Errorf("corrupt entry %s: %w", id, err)
		}
		e.Timestamp = createdAt
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear removes every entry
func (s *SQLiteRecorder) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM operations`); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLiteRecorder) Close() error {
	return s.db.Close()
}

// getCurrentUser returns the current OS user
func getCurrentUser() string {
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	if user := os.Getenv("USERNAME"); user != "" {
		return user
	}
	return "unknown"
}
