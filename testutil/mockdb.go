package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateInMemoryDB creates an in-memory SQLite database with the chatkv
// table for testing
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS chatkv (
		key TEXT PRIMARY KEY,
		value TEXT
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create chatkv table: %v", err)
	}

	return db
}

// CreateTestDB creates a test database with sample chat data
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)

	entries := []struct {
		key   string
		value string
	}{
		{
			key:   "activeSessionId",
			value: "session-a",
		},
		{
			key:   "sessionMessages:session-a",
			value: `[{"id":"m1","content":"hello","role":"user","timestamp":1000},{"id":"m2","content":"hi there","role":"assistant","timestamp":2000}]`,
		},
		{
			key:   "sessionMessages:session-b",
			value: `[{"id":"m3","content":"how are you?","role":"user","timestamp":3000}]`,
		},
		{
			key:   "previousSessions",
			value: `[{"id":"session-b","title":"how are you?...","timestamp":3000,"messageCount":1}]`,
		},
	}

	insertSQL := "INSERT INTO chatkv (key, value) VALUES (?, ?)"
	stmt, err := db.Prepare(insertSQL)
	if err != nil {
		db.Close()
		t.Fatalf("Failed to prepare insert statement: %v", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.Exec(entry.key, entry.value); err != nil {
			db.Close()
			t.Fatalf("Failed to insert %s: %v", entry.key, err)
		}
	}

	return db
}

// InsertValue inserts a key-value pair into the database
func InsertValue(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	insertSQL := "INSERT OR REPLACE INTO chatkv (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, key, value); err != nil {
		t.Fatalf("Failed to insert value: %v", err)
	}
}
