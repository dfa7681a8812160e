package audit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"allograft/internal/sentinel"
)

// SQLiteStore persists the event stream durably. Rows are append-only; the
// autoincrement id preserves arrival order across restarts.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the event database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if path == "" {
		path = "allograft-audit.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		ts TEXT NOT NULL,
		actor TEXT NOT NULL,
		action TEXT NOT NULL,
		subject TEXT NOT NULL,
		detail TEXT NOT NULL DEFAULT '',
		device TEXT NOT NULL DEFAULT '',
		request_id TEXT NOT NULL DEFAULT ''
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Append(ctx context.Context, event Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (ts, actor, action, subject, detail, device, request_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.Timestamp.UTC().Format(time.RFC3339Nano),
		event.Actor, string(event.Action), event.Subject,
		event.Detail, event.Device, event.RequestID,
	)
	if err != nil {
		return fmt.Errorf("%w: insert event: %v", sentinel.ErrUnavailable, err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Event, error) {
	return s.query(ctx, `SELECT ts, actor, action, subject, detail, device, request_id
		FROM events ORDER BY id`)
}

func (s *SQLiteStore) ListByAction(ctx context.Context, action Action) ([]Event, error) {
	return s.query(ctx, `SELECT ts, actor, action, subject, detail, device, request_id
		FROM events WHERE action = ? ORDER BY id`, string(action))
}

func (s *SQLiteStore) query(ctx context.Context, q string, args ...any) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Event
	for rows.Next() {
		var e Event
		var ts, action string
		if err := rows.Scan(&ts, &e.Actor, &action, &e.Subject, &e.Detail, &e.Device, &e.RequestID); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Action = Action(action)
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			e.Timestamp = parsed
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Ping reports whether the database is reachable, for readiness probes.
func (s *SQLiteStore) Ping() error {
	return s.db.Ping()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
