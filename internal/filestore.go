package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// FileStore keeps each key in its own file under a directory, with a YAML index
// describing what is stored. Writes go through a temp file and rename.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// StoreIndex is the human-readable summary written next to the records
type StoreIndex struct {
	Keys      []StoreIndexEntry `yaml:"keys"`
	UpdatedAt time.Time         `yaml:"updated_at"`
}

// StoreIndexEntry describes one stored key
type StoreIndexEntry struct {
	Key  string `yaml:"key"`
	Size int    `yaml:"size"`
}

// OpenFileStore opens (creating if needed) a directory-backed store
func OpenFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Path: dir, Op: "open", Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// GetIndexPath returns the path to the store index YAML file
func (fs *FileStore) GetIndexPath() string {
	return filepath.Join(fs.dir, "index.yaml")
}

// GetRecordPath returns the path of the file holding key
func (fs *FileStore) GetRecordPath(key string) string {
	return filepath.Join(fs.dir, key+".json")
}

func (fs *FileStore) Get(key string) (string, bool, error) {
	data, err := os.ReadFile(fs.GetRecordPath(key))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Path: fs.GetRecordPath(key), Op: "get", Err: err}
	}
	return string(data), true, nil
}

func (fs *FileStore) Set(key, value string) error {
	if err := validateFileKey(key); err != nil {
		return err
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.writeRecord(key, value); err != nil {
		return err
	}
	return fs.saveIndex()
}

func (fs *FileStore) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if err := fs.removeRecord(key); err != nil {
		return err
	}
	return fs.saveIndex()
}

// Apply writes the changes in order. When one fails the records already
// touched are put back to what they held before.
func (fs *FileStore) Apply(changes ...Change) error {
	for _, c := range changes {
		if err := validateFileKey(c.Key); err != nil {
			return err
		}
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var undo []savedRecord
	for _, c := range changes {
		value, exists, err := fs.Get(c.Key)
		if err != nil {
			fs.restore(undo)
			return err
		}
		undo = append(undo, savedRecord{key: c.Key, value: value, exists: exists})

		if c.Remove {
			err = fs.removeRecord(c.Key)
		} else {
			err = fs.writeRecord(c.Key, c.Value)
		}
		if err != nil {
			fs.restore(undo)
			return err
		}
	}
	return fs.saveIndex()
}

// savedRecord is the state of a key before Apply touched it
type savedRecord struct {
	key    string
	value  string
	exists bool
}

// restore puts records back, newest first; callers hold fs.mu
func (fs *FileStore) restore(undo []savedRecord) {
	for i := len(undo) - 1; i >= 0; i-- {
		r := undo[i]
		var err error
		if r.exists {
			err = fs.writeRecord(r.key, r.value)
		} else {
			err = fs.removeRecord(r.key)
		}
		if err != nil {
			LogError("Failed to restore %s: %v", r.key, err)
		}
	}
}

// writeRecord replaces the record through a temp file and rename; callers hold fs.mu
func (fs *FileStore) writeRecord(key, value string) error {
	path := fs.GetRecordPath(key)
	tmp, err := os.CreateTemp(fs.dir, "."+key+"-*")
	if err != nil {
		return &StorageError{Path: path, Op: "set", Err: err}
	}
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &StorageError{Path: path, Op: "set", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Path: path, Op: "set", Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Path: path, Op: "set", Err: err}
	}
	return nil
}

func (fs *FileStore) removeRecord(key string) error {
	if err := os.Remove(fs.GetRecordPath(key)); err != nil && !os.IsNotExist(err) {
		return &StorageError{Path: fs.GetRecordPath(key), Op: "remove", Err: err}
	}
	return nil
}

// Keys lists stored keys in lexical order
func (fs *FileStore) Keys() ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, &StorageError{Path: fs.dir, Op: "get", Err: err}
	}
	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, ".json") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(keys)
	return keys, nil
}

// LoadIndex loads the store index
func (fs *FileStore) LoadIndex() (*StoreIndex, error) {
	data, err := os.ReadFile(fs.GetIndexPath())
	if err != nil {
		return nil, err
	}
	var index StoreIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}
	return &index, nil
}

// saveIndex rewrites the index; callers hold fs.mu
func (fs *FileStore) saveIndex() error {
	keys, err := fs.Keys()
	if err != nil {
		return err
	}
	index := StoreIndex{Keys: make([]StoreIndexEntry, 0, len(keys)), UpdatedAt: time.Now().UTC()}
	for _, key := range keys {
		entry := StoreIndexEntry{Key: key}
		if info, err := os.Stat(fs.GetRecordPath(key)); err == nil {
			entry.Size = int(info.Size())
		}
		index.Keys = append(index.Keys, entry)
	}

	data, err := yaml.Marshal(&index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	return os.WriteFile(fs.GetIndexPath(), data, 0644)
}

func (fs *FileStore) Location() string {
	return fs.dir
}

func (fs *FileStore) Close() error {
	return nil
}

func validateFileKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("invalid store key: %q", key)
	}
	return nil
}
