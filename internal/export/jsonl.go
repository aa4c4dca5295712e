package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/uicopy/internal"
)

// JSONLExporter exports sessions in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(session internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)

	for i, msg := range session.Messages {
		obj := map[string]interface{}{
			"chatId":  session.ID,
			"index":   i,
			"role":    msg.Role,
			"content": msg.Content,
		}
		if msg.Feedback != nil {
			obj["feedback"] = msg.Feedback
		}

		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
