package kvstore

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the pure-Go "sqlite" driver with
	// database/sql. No CGo, so the console cross-compiles cleanly.
	_ "modernc.org/sqlite"
)

// SQLite is a Store backed by a single-table sqlite database, typically at
// ~/.classtrack/state.db. One file per user, same as a browser profile.
type SQLite struct {
	conn *sql.DB
}

var _ Store = (*SQLite)(nil)

// OpenSQLite opens (and if needed creates) the state database at path.
// ":memory:" works too and is handy in tests.
func OpenSQLite(path string) (*SQLite, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("kvstore: opening %s: %w", path, err)
	}
	// One connection: with ":memory:" every pooled connection would be its
	// own empty database.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("kvstore: pinging %s: %w", path, err)
	}

	_, err = conn.Exec(`
		CREATE TABLE IF NOT EXISTS state (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("kvstore: creating state table: %w", err)
	}

	return &SQLite{conn: conn}, nil
}

// Close closes the underlying database. Call it when the command finishes.
func (s *SQLite) Close() error {
	return s.conn.Close()
}

func (s *SQLite) Get(key string) (string, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM state WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kvstore: getting %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLite) Set(key, value string) error {
	_, err := s.conn.Exec(
		`INSERT INTO state (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kvstore: setting %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	if _, err := s.conn.Exec(`DELETE FROM state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("kvstore: deleting %s: %w", key, err)
	}
	return nil
}
