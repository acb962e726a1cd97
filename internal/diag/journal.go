/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package diag

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	applog "launchpad/internal/log"
	"launchpad/internal/version"

	// Pure-Go SQLite driver (CGO-free)
	_ "modernc.org/sqlite"
)

// journalSchema is the version of the journal's SQLite layout.
const journalSchema = 1

// JournalSink appends events to a SQLite database so a later process
// (see `launchpad diag`) can inspect them.
type JournalSink struct {
	db   *sql.DB
	path string
	log  *slog.Logger

	mu     sync.Mutex
	closed bool
}

// OpenJournal creates or opens the journal at path, enabling WAL and
// ensuring the schema exists.
func OpenJournal(path string) (*JournalSink, error) {
	l := applog.WithOperation(applog.WithComponent("diag"), "journal_open").With(slog.String("path", path))
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("journal path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?cache=shared&_pragma=busy_timeout(5000)", filepath.ToSlash(path))
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if err := ensureJournalSchema(ctx, db); err != nil {
		_ = db.Close()
		l.Error("ensure journal schema failed", slog.Any("err", err))
		return nil, err
	}
	l.Debug("journal ready")
	return &JournalSink{db: db, path: path, log: l}, nil
}

func ensureJournalSchema(ctx context.Context, db *sql.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS events (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			ts             TEXT NOT NULL,
			level          TEXT NOT NULL,
			message        TEXT NOT NULL,
			correlation_id TEXT NOT NULL,
			metadata       TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_level ON events(level);`,
	}
	for _, q := range ddl {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}
	var cur string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key='schema'`).Scan(&cur)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		now := time.Now().UTC().Format(time.RFC3339)
		seed := [][2]string{
			{"schema", fmt.Sprint(journalSchema)},
			{"app", version.String()},
			{"created_at", now},
		}
		for _, kv := range seed {
			if _, err := db.ExecContext(ctx, `INSERT INTO meta (key, value) VALUES(?, ?)`, kv[0], kv[1]); err != nil {
				return fmt.Errorf("seed meta: %w", err)
			}
		}
	case err != nil:
		return fmt.Errorf("read schema: %w", err)
	case cur != fmt.Sprint(journalSchema):
		return fmt.Errorf("unsupported journal schema %s", cur)
	}
	return nil
}

// Path returns the journal's database file.
func (j *JournalSink) Path() string { return j.path }

// Emit inserts ev. Failures are logged and otherwise ignored.
func (j *JournalSink) Emit(ev Event) {
	if err := j.Append(context.Background(), ev); err != nil {
		j.log.Warn("journal append failed", slog.Any("err", err))
	}
}

// Append inserts ev and reports any failure.
func (j *JournalSink) Append(ctx context.Context, ev Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return errors.New("journal closed")
	}
	var meta sql.NullString
	if len(ev.Metadata) > 0 {
		b, err := json.Marshal(ev.Metadata)
		if err != nil {
			return fmt.Errorf("encode metadata: %w", err)
		}
		meta = sql.NullString{String: string(b), Valid: true}
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO events (ts, level, message, correlation_id, metadata) VALUES(?, ?, ?, ?, ?)`,
		ev.Timestamp.UTC().Format(time.RFC3339Nano), string(ev.Level), ev.Message, ev.CorrelationID, meta)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (j *JournalSink) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT ts, level, message, correlation_id, metadata FROM events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var (
			ts, level string
			ev        Event
			meta      sql.NullString
		)
		if err := rows.Scan(&ts, &level, &ev.Message, &ev.CorrelationID, &meta); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Level = Level(level)
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			ev.Timestamp = t
		}
		if meta.Valid && meta.String != "" {
			if err := json.Unmarshal([]byte(meta.String), &ev.Metadata); err != nil {
				return nil, fmt.Errorf("decode metadata: %w", err)
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Count returns the number of stored events.
func (j *JournalSink) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// Prune deletes all but the newest keepLast events and returns how many went.
func (j *JournalSink) Prune(ctx context.Context, keepLast int) (int64, error) {
	if keepLast < 0 {
		keepLast = 0
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	res, err := j.db.ExecContext(ctx,
		`DELETE FROM events WHERE id NOT IN (SELECT id FROM events ORDER BY id DESC LIMIT ?)`, keepLast)
	if err != nil {
		return 0, fmt.Errorf("prune events: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close releases the database. Further Emit calls are dropped.
func (j *JournalSink) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}
