package export

import (
	"io"
	"time"

	"github.com/iksnae/uicopy/internal"
	"gopkg.in/yaml.v3"
)

// YAMLExporter exports sessions in YAML format
type YAMLExporter struct {
	Now func() time.Time
}

// Export exports a session to YAML format
func (e *YAMLExporter) Export(session internal.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()

	return enc.Encode(NewRecord(session, now(e.Now)))
}

// Extension returns the file extension for this format
func (e *YAMLExporter) Extension() string {
	return "yaml"
}
