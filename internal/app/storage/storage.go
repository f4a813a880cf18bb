// Package storage provides the durable key-value store that backs every
// collection in SlateTrack. Values are JSON documents kept in a single
// sqlite table; this is the only package that talks to sqlite directly.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// Well-known storage keys. One key per collection or single-record entry.
const (
	UsersKey     = "pm_users_v1"
	ProjectsKey  = "pm_projects_v1"
	WorkItemsKey = "pm_work_items_v1"
	AuthKey      = "pm_auth_v1"
	ThemeKey     = "pm_ui_theme_v1"
)

// KV is the storage contract the rest of the app depends on.
//
// Get never returns an error: a missing key or a value that no longer
// parses as JSON both yield the fallback. Corrupt entries are treated as
// absent rather than poisoning every caller.
type KV interface {
	Get(key string, out any) bool
	Set(key string, value any) error
	Remove(key string) error
}

// DB is a sqlite-backed KV. All writes rewrite the full value under the
// key; collections are small and single-process, so this is acceptable.
type DB struct {
	db *sql.DB
}

var _ KV = (*DB)(nil)

// Open opens (creating if needed) the sqlite file at path and ensures the
// kv table exists. Use ":memory:" for a throwaway store in tests.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure kv table: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the underlying sqlite handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping verifies the sqlite handle is still usable.
func (d *DB) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// Get unmarshals the stored value for key into out and reports whether a
// usable value was found. Missing keys, read failures, and malformed JSON
// all report false and leave out untouched, so callers fall back to their
// default.
func (d *DB) Get(key string, out any) bool {
	var raw string
	err := d.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false
	}
	return true
}

// Set marshals value as JSON and upserts it under key.
func (d *DB) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal value for %q: %w", key, err)
	}
	_, err = d.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, string(raw),
	)
	if err != nil {
		return fmt.Errorf("write %q: %w", key, err)
	}
	return nil
}

// Remove deletes the entry for key. Removing an absent key is not an error.
func (d *DB) Remove(key string) error {
	if _, err := d.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove %q: %w", key, err)
	}
	return nil
}

// SetRaw stores an already-encoded value verbatim. Tests use it to plant
// legacy or corrupt payloads.
func (d *DB) SetRaw(key, raw string) error {
	_, err := d.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, raw,
	)
	return err
}
