package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createKVTableSQL = `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`

// SQLiteStore keeps every key as one row of the kv table
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenDatabase opens (creating if needed) a SQLite database with the kv table
func OpenDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &StorageError{Path: path, Op: "open", Err: err}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// single writer; also keeps :memory: databases on one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if _, err := db.Exec(createKVTableSQL); err != nil {
		db.Close()
		return nil, &StorageError{Path: path, Op: "open", Err: err}
	}

	return db, nil
}

// OpenSQLiteStore opens the store backed by the database file at path
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Path: s.path, Op: "get", Err: err}
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return &StorageError{Path: s.path, Op: "set", Err: err}
	}
	return nil
}

func (s *SQLiteStore) Remove(key string) error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", key); err != nil {
		return &StorageError{Path: s.path, Op: "remove", Err: err}
	}
	return nil
}

// Apply runs the changes in one transaction
func (s *SQLiteStore) Apply(changes ...Change) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &StorageError{Path: s.path, Op: "set", Err: err}
	}
	for _, c := range changes {
		if c.Remove {
			_, err = tx.Exec("DELETE FROM kv WHERE key = ?", c.Key)
		} else {
			_, err = tx.Exec(
				"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
				c.Key, c.Value,
			)
		}
		if err != nil {
			tx.Rollback()
			return &StorageError{Path: s.path, Op: "set", Err: err}
		}
	}
	if err := tx.Commit(); err != nil {
		return &StorageError{Path: s.path, Op: "set", Err: err}
	}
	return nil
}

// Keys lists stored keys in lexical order
func (s *SQLiteStore) Keys() ([]string, error) {
	rows, err := s.db.Query("SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return keys, nil
}

func (s *SQLiteStore) Location() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
