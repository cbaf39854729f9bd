// Package history keeps an optional local log of lookup queries in SQLite.
// It never stores dataset content, only what was asked and how many parts of
// the query went unmatched.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
	// fixed width so ts_utc sorts lexically
	tsLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Query is one logged lookup.
type Query struct {
	ID        string
	SessionID string
	Direction string
	Input     string
	// Segments is the number of terms or characters in the query.
	Segments  int
	Unmatched int
	Timestamp time.Time
}

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores q, filling in ID and Timestamp when unset.
func (s *Store) Record(ctx context.Context, q Query) (Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.Timestamp.IsZero() {
		q.Timestamp = time.Now().UTC()
	}
	if strings.TrimSpace(q.SessionID) == "" {
		return Query{}, fmt.Errorf("record query: session id must not be empty")
	}

	err := s.withRetry("record query", func() error {
		_, err := s.db.ExecContext(ctx, `
INSERT INTO queries (id, session_id, direction, input, segment_count, unmatched_count, ts_utc)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
			q.ID,
			q.SessionID,
			q.Direction,
			q.Input,
			q.Segments,
			q.Unmatched,
			q.Timestamp.UTC().Format(tsLayout),
		)
		return err
	})
	if err != nil {
		return Query{}, err
	}
	return q, nil
}

// Recent returns up to limit queries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Query, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	var rows *sql.Rows
	err := s.withRetry("load queries", func() error {
		var qErr error
		rows, qErr = s.db.QueryContext(ctx, `
SELECT id, session_id, direction, input, segment_count, unmatched_count, ts_utc
FROM queries
ORDER BY ts_utc DESC, id DESC
LIMIT ?`, limit)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queries := make([]Query, 0, limit)
	for rows.Next() {
		var (
			tsRaw string
			q     Query
		)
		if err := rows.Scan(&q.ID, &q.SessionID, &q.Direction, &q.Input, &q.Segments, &q.Unmatched, &tsRaw); err != nil {
			return nil, fmt.Errorf("scan query row: %w", err)
		}
		ts, err := time.Parse(tsLayout, tsRaw)
		if err != nil {
			return nil, fmt.Errorf("parse query timestamp %q: %w", tsRaw, err)
		}
		q.Timestamp = ts.UTC()
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate query rows: %w", err)
	}

	return queries, nil
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}
