package internal

import (
	"encoding/json"
	"fmt"
)

// Persisted keys
const (
	KeyAPIKey       = "apiKey"
	KeyEndpoint     = "endpoint"
	KeyEndpointName = "endpointName"
	KeyGuidelines   = "guidelines"
	KeyChats        = "chats"
	KeyActiveChat   = "activeChatId"
)

// Store is a durable string key/value facade
type Store interface {
	// Get returns the value for key; ok is false when the key was never set.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
	// Apply writes every change or none of them.
	Apply(changes ...Change) error
	Keys() ([]string, error)
	Location() string
	Close() error
}

// Change is one write of a batch; Remove deletes the key instead of setting Value
type Change struct {
	Key    string
	Value  string
	Remove bool
}

// JSONChange encodes v as a change setting key
func JSONChange(key string, v interface{}) (Change, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Change{}, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return Change{Key: key, Value: string(data)}, nil
}

// GetJSON decodes the record at key into v. It reports false when the key is absent.
func GetJSON(s Store, key string, v interface{}) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, &ParseError{Source: s.Location(), Key: key, Err: err}
	}
	return true, nil
}

// SetJSON encodes v and stores it at key
func SetJSON(s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return s.Set(key, string(data))
}

// OpenStore opens the store of the given kind ("sqlite" or "file") at path
func OpenStore(kind, path string) (Store, error) {
	switch kind {
	case "", "sqlite":
		return OpenSQLiteStore(path)
	case "file":
		return OpenFileStore(path)
	default:
		return nil, fmt.Errorf("unsupported store: %s (supported: sqlite, file)", kind)
	}
}
