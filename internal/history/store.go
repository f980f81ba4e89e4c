// Package history persists gate decisions in a local SQLite database so
// they can be queried after the fact. The JSONL audit log is the
// tamper-evident record; history is the queryable one.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS decisions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	ts         TEXT NOT NULL,
	session_id TEXT NOT NULL DEFAULT '',
	tool       TEXT NOT NULL DEFAULT '',
	file_path  TEXT NOT NULL,
	decision   TEXT NOT NULL,
	reason     TEXT NOT NULL DEFAULT '',
	rule_id    TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_decisions_decision ON decisions(decision);
CREATE INDEX IF NOT EXISTS idx_decisions_session ON decisions(session_id);
`

// Entry is one recorded gate decision.
type Entry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"ts"`
	SessionID string    `json:"session_id,omitempty"`
	Tool      string    `json:"tool,omitempty"`
	FilePath  string    `json:"file_path"`
	Decision  string    `json:"decision"`
	Reason    string    `json:"reason,omitempty"`
	RuleID    string    `json:"rule_id,omitempty"`
}

// Store is a SQLite-backed decision history.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "writegate-history.db")
	}
	return filepath.Join(home, ".writegate", "history.db")
}

// Open opens (or creates) the history database at path and ensures the
// schema exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("history: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Record inserts a decision. A zero Timestamp is set to now.
func (s *Store) Record(e Entry) error {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	_, err := s.db.Exec(
		`INSERT INTO decisions (ts, session_id, tool, file_path, decision, reason, rule_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339Nano), e.SessionID, e.Tool, e.FilePath, e.Decision, e.Reason, e.RuleID,
	)
	if err != nil {
		return fmt.Errorf("history: insert decision: %w", err)
	}
	return nil
}

// Recent returns the most recent decisions, newest first.
// blockedOnly limits the result to blocked writes.
func (s *Store) Recent(limit int, blockedOnly bool) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, ts, session_id, tool, file_path, decision, reason, rule_id
	          FROM decisions`
	args := []any{}
	if blockedOnly {
		query += ` WHERE decision = ?`
		args = append(args, "block")
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query decisions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts string
		if err := rows.Scan(&e.ID, &ts, &e.SessionID, &e.Tool, &e.FilePath, &e.Decision, &e.Reason, &e.RuleID); err != nil {
			return nil, fmt.Errorf("history: scan row: %w", err)
		}
		e.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate rows: %w", err)
	}

	return entries, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
