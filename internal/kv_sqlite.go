package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// chatKVTable holds every persisted value: prefixed keys mapped to JSON
// documents, the same layout the browser client kept in localStorage.
const chatKVTable = `
CREATE TABLE IF NOT EXISTS chatkv (
	key TEXT PRIMARY KEY,
	value TEXT
)`

// SQLiteKV is the durable key-value backend.
type SQLiteKV struct {
	db *sql.DB
}

// OpenSQLiteKV opens (and initializes if needed) the chat database at path.
// Use ":memory:" for an ephemeral store.
func OpenSQLiteKV(path string) (*SQLiteKV, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(chatKVTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create chatkv table: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

// NewSQLiteKV wraps an already-open database. The chatkv table must exist.
func NewSQLiteKV(db *sql.DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

// Get reads one value. The second return reports presence.
func (s *SQLiteKV) Get(key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRow("SELECT value FROM chatkv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Key: key, Op: "get", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

// Set writes one value, replacing any prior value for the key. Writing the
// same value twice leaves the store unchanged.
func (s *SQLiteKV) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO chatkv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StorageError{Key: key, Op: "set", Err: err}
	}
	return nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *SQLiteKV) Delete(key string) error {
	if _, err := s.db.Exec("DELETE FROM chatkv WHERE key = ?", key); err != nil {
		return &StorageError{Key: key, Op: "delete", Err: err}
	}
	return nil
}

// Keys lists keys matching the given prefix.
func (s *SQLiteKV) Keys(prefix string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT key FROM chatkv WHERE key LIKE ? AND value IS NOT NULL ORDER BY key",
		prefix+"%",
	)
	if err != nil {
		return nil, &StorageError{Key: prefix, Op: "keys", Err: err}
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, &StorageError{Key: prefix, Op: "keys", Err: err}
		}
		keys = append(keys, key)
	}

	if err := rows.Err(); err != nil {
		return nil, &StorageError{Key: prefix, Op: "keys", Err: err}
	}

	return keys, nil
}

// Close closes the underlying database.
func (s *SQLiteKV) Close() error {
	return s.db.Close()
}
