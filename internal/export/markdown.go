package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/uicopy/internal"
)

// MarkdownExporter exports sessions in Markdown format
type MarkdownExporter struct{}

// Export exports a session to Markdown format
func (e *MarkdownExporter) Export(session internal.Session, w io.Writer) error {
	// Header
	_, _ = fmt.Fprintf(w, "# %s\n\n", session.Title)
	_, _ = fmt.Fprintf(w, "**Chat:** %s  \n", session.ID)
	_, _ = fmt.Fprintf(w, "**Created:** %s  \n", session.Created().UTC().Format(time.RFC3339))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(session.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range session.Messages {
		content := escapeMarkdown(msg.Content)
		_, _ = fmt.Fprintf(w, "**%s:**\n\n%s\n\n", msg.Role, content)

		if line := feedbackLine(msg.Feedback); line != "" {
			_, _ = fmt.Fprintf(w, "> %s\n\n", line)
		}

		if i < len(session.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func feedbackLine(fb *internal.Feedback) string {
	if fb == nil || (fb.Rating == internal.RatingNone && fb.Comments == "") {
		return ""
	}
	parts := []string{"Feedback:"}
	if fb.Rating != internal.RatingNone {
		parts = append(parts, string(fb.Rating))
	}
	if fb.Comments != "" {
		parts = append(parts, fmt.Sprintf("%q", fb.Comments))
	}
	return strings.Join(parts, " ")
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
