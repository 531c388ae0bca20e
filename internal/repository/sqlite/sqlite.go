// Package sqlite implements the repository interfaces on SQLite via the
// pure-Go modernc.org/sqlite driver, so the binary needs no CGo and the
// tests can run against ":memory:" databases.
package sqlite

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath (":memory:" for tests), enables WAL so
// the digest scheduler can read while webhook handlers write, and runs
// migrations.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

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

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps it safe to
// run on every start.
func (db *DB) migrate() error {
	// users: one row per remote identifier, written once on name capture.
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	// attendance_records: append-only log. seq preserves insertion order
	// for ReadAll; submitted_date is stored as its own TEXT column because
	// the digest filters by string-exact date match.
	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS attendance_records (
			seq            INTEGER PRIMARY KEY AUTOINCREMENT,
			id             TEXT NOT NULL,
			submitted_at   DATETIME NOT NULL,
			user_id        TEXT NOT NULL,
			name           TEXT NOT NULL,
			day            TEXT NOT NULL DEFAULT '',
			submitted_date TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_attendance_date ON attendance_records(submitted_date);
	`)
	if err != nil {
		return fmt.Errorf("creating attendance_records table: %w", err)
	}

	return nil
}
