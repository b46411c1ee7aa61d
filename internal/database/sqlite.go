package database

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemorySQLite is the path that opens a private in-memory database.
const MemorySQLite = ":memory:"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	id             TEXT    PRIMARY KEY,
	name           TEXT    NOT NULL,
	description    TEXT    NOT NULL DEFAULT '',
	location       TEXT    NOT NULL DEFAULT '',
	category       TEXT    NOT NULL DEFAULT '',
	date_time      INTEGER NOT NULL,
	image_uri      TEXT    NOT NULL DEFAULT '',
	attendee_count INTEGER NOT NULL DEFAULT 0 CHECK (attendee_count >= 0),
	created_at     INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS events_created_at_idx ON events (created_at DESC);
`

// OpenSQLite opens the embedded store and applies the schema.
//
// The handle is limited to a single connection: SQLite allows one writer at a
// time, and a single connection also keeps an in-memory database alive for
// the lifetime of the handle.
func OpenSQLite(path string) (*sql.DB, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if path != MemorySQLite {
		path = filepath.Clean(path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000", "PRAGMA foreign_keys = ON"}
	if path != MemorySQLite {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL", "PRAGMA synchronous = NORMAL")
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite %q: %w", p, err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}
