package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// SampleChats is a persisted chats record with two chats, the first one rated
const SampleChats = `[
  {"id":"chat-b","title":"Button labels...","createdAt":1709294400000,"messages":[
    {"role":"user","content":"Button labels for checkout"},
    {"role":"assistant","content":"Place order","feedback":{"rating":"positive","timestamp":"2024-03-01T12:30:00Z"}}
  ]},
  {"id":"chat-a","title":"New Chat 1","createdAt":1709208000000,"messages":[]}
]`

// SampleGuidelines is a persisted guidelines record
const SampleGuidelines = `[{"name":"voice.md","content":"Be concise."},{"name":"terms.txt","content":"Say sign in, not log in."}]`

// CreateKVFixture creates a SQLite database holding records in the kv table
func CreateKVFixture(t *testing.T, dbPath string, records map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`
	if _, err := db.Exec(createTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	for key, value := range records {
		if _, err := db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", key, value); err != nil {
			t.Fatalf("Failed to insert %s: %v", key, err)
		}
	}
}

// ReadKV returns the raw value stored at key in the database file, or "" if absent
func ReadKV(t *testing.T, dbPath, key string) string {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	var value string
	err = db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return ""
	}
	if err != nil {
		t.Fatalf("Failed to read %s: %v", key, err)
	}
	return value
}
