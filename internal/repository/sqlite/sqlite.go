// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
// cross-compilation painful. modernc.org/sqlite is a pure Go translation of
// the SQLite sources — works everywhere Go works.
//
// SQLite fits this service well: a single-file embedded database, no server
// to run, ":memory:" for tests. The catalog is small (hundreds of rows) and
// read-mostly; WAL mode covers the concurrency the HTTP server needs.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import: the driver registers itself with database/sql under the
	// name "sqlite" in its init function.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements the repository
// interfaces. The server owns one DB and closes it on shutdown.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for an ephemeral one), sets
// the pragmas and runs the migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// One connection for the whole pool. SQLite allows a single writer, the
	// pragmas below are per-connection, and ":memory:" gives every new
	// connection its own empty database — all three want exactly one.
	conn.SetMaxOpenConns(1)

	// Ping forces a real connection now — a bad path surfaces here instead
	// of on the first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in progress — needed once
	// multiple HTTP requests hit the database at the same time.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Always defer this next to New.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent, so it is safe to run on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS classes (
			id         TEXT PRIMARY KEY,
			title      TEXT NOT NULL,
			subject    TEXT NOT NULL,
			grade      TEXT NOT NULL,
			teacher    TEXT NOT NULL,
			schedule   TEXT NOT NULL,
			room       TEXT NOT NULL,
			capacity   INTEGER NOT NULL,
			fee        REAL NOT NULL,
			currency   TEXT NOT NULL,
			status     TEXT NOT NULL,
			start_date TEXT NOT NULL DEFAULT '',
			end_date   TEXT NOT NULL DEFAULT '',
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_classes_created_at ON classes(created_at);
	`)
	if err != nil {
		return fmt.Errorf("creating classes table: %w", err)
	}

	// lower(username) is unique so "Admin" cannot register next to "admin" —
	// the service checks first, the index catches the race loser.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL DEFAULT 'ADMIN',
			created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
		CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(lower(username));
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	return nil
}
