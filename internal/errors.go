package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfigurationMissing is matched by ConfigurationError
	ErrConfigurationMissing = errors.New("configuration missing")

	ErrEmptyMessage        = errors.New("message is empty")
	ErrSubmissionInFlight  = errors.New("a reply is already pending for this chat")
	ErrSessionNotFound     = errors.New("chat not found")
	ErrMessageNotFound     = errors.New("message not found")
	ErrNotAssistantMessage = errors.New("feedback can only be attached to assistant messages")
)

// StorageError represents errors accessing the durable store
type StorageError struct {
	Path string
	Op   string // "open", "get", "set", "remove"
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ParseError represents errors decoding a persisted record
type ParseError struct {
	Source string // "sqlite", "file"
	Key    string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Source, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ConfigurationError is returned when credentials, endpoint or deployment are unset.
type ConfigurationError struct {
	Missing []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration missing: %s", strings.Join(e.Missing, ", "))
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfigurationMissing
}

// TransportError wraps a completion call that failed before any response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ServerError is a non-success HTTP response from the completion service.
// Structured is false when the body was not JSON and Message holds the truncated raw body.
type ServerError struct {
	Status     int
	Message    string
	Structured bool
}

func (e *ServerError) Error() string {
	if e.Structured {
		return fmt.Sprintf("%d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("Server returned %d: %s...", e.Status, e.Message)
}

// MalformedResponseError is a success response without a reply text.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return "malformed completion response: " + e.Reason
}

// FileReadError is a guideline file that could not be read.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

const configurationMessage = "Please configure your Azure API settings before sending messages."

// DisplayMessage converts a submission failure into the text shown to the user.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrConfigurationMissing) {
		return configurationMessage
	}
	return "Failed to get response: " + err.Error()
}
