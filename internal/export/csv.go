package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/uicopy/internal"
)

const csvHeader = "Message Role,Message Content,Feedback Rating,Feedback Comments,Feedback Timestamp"

// TimestampFormat is how feedback timestamps appear in CSV
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// CSVExporter writes one row per message. Content and comments are always quoted.
type CSVExporter struct{}

// Export exports a session to CSV format
func (e *CSVExporter) Export(session internal.Session, w io.Writer) error {
	if _, err := io.WriteString(w, csvHeader+"\n"); err != nil {
		return err
	}
	for _, msg := range session.Messages {
		var rating, comments, stamp string
		if fb := msg.Feedback; fb != nil {
			rating = string(fb.Rating)
			comments = fb.Comments
			if fb.Timestamp != nil {
				stamp = FormatTimestamp(*fb.Timestamp)
			}
		}
		if _, err := fmt.Fprintf(w, "%s,%s,%s,%s,%s\n",
			msg.Role, QuoteField(msg.Content), rating, QuoteField(comments), stamp); err != nil {
			return err
		}
	}
	return nil
}

// QuoteField wraps s in double quotes, doubling any quote inside it
func QuoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// FormatTimestamp renders t the way CSV rows do
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// Extension returns the file extension for this format
func (e *CSVExporter) Extension() string {
	return "csv"
}
