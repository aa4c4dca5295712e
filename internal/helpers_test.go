package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/iksnae/uicopy/testutil"
)

var errDiskFull = errors.New("disk full")

// recordingStore counts writes and can be told to fail them
type recordingStore struct {
	Store

	mu      sync.Mutex
	writes  int
	failSet bool
}

func (s *recordingStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return &StorageError{Path: s.Location(), Op: "set", Err: errDiskFull}
	}
	s.writes++
	return s.Store.Set(key, value)
}

func (s *recordingStore) Apply(changes ...Change) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return &StorageError{Path: s.Location(), Op: "set", Err: errDiskFull}
	}
	s.writes++
	return s.Store.Apply(changes...)
}

func (s *recordingStore) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *recordingStore) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSet = fail
}

func newTestStore(t *testing.T) (*recordingStore, string) {
	t.Helper()
	path := filepath.Join(testutil.CreateTempDir(t), "uicopy.db")
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return &recordingStore{Store: store}, path
}

// failKeyWrites makes the database reject any write to key
func failKeyWrites(t *testing.T, s *SQLiteStore, key string) {
	t.Helper()
	for i, event := range []string{"INSERT", "UPDATE", "DELETE"} {
		row := "NEW"
		if event == "DELETE" {
			row = "OLD"
		}
		stmt := fmt.Sprintf(
			"CREATE TRIGGER fail_%d BEFORE %s ON kv WHEN %s.key = '%s' BEGIN SELECT RAISE(ABORT, 'disk full'); END",
			i, event, row, key,
		)
		if _, err := s.db.Exec(stmt); err != nil {
			t.Fatalf("create trigger: %v", err)
		}
	}
}

func reopenStore(t *testing.T, path string) Store {
	t.Helper()
	store, err := OpenSQLiteStore(path)
	if err != nil {
		t.Fatalf("OpenSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// testClock hands out increasing instants one second apart
func testClock() func() time.Time {
	var mu sync.Mutex
	next := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		next = next.Add(time.Second)
		return next
	}
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("chat-%02d", n)
	}
}

func newTestRepository(t *testing.T, store Store) *SessionRepository {
	t.Helper()
	repo, err := LoadSessionRepository(store)
	if err != nil {
		t.Fatalf("LoadSessionRepository() error = %v", err)
	}
	repo.now = testClock()
	repo.newID = sequentialIDs()
	return repo
}

func snapshotJSON(t *testing.T, c Collection) string {
	t.Helper()
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	return string(data)
}
