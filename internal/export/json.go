package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/iksnae/uicopy/internal"
)

// JSONExporter exports a chat with its feedback as a pretty-printed JSON document
type JSONExporter struct {
	Now func() time.Time
}

// Export exports a session to JSON format
func (e *JSONExporter) Export(session internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(NewRecord(session, now(e.Now)))
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
