package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/uicopy/internal"
	"github.com/spf13/cobra"
)

var (
	limit int
)

var (
	// Styles for show command
	sessionHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("212")).
				Padding(0, 1).
				MarginBottom(1)

	sessionMetaStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("243")).
				MarginBottom(1)

	userMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				Padding(0, 1)

	assistantMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("135")).
				Bold(true).
				Padding(0, 1)

	messageContentStyle = lipgloss.NewStyle().
				Padding(0, 2).
				MarginBottom(1)

	feedbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Padding(0, 2)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [chat-id]",
	Short: "Show the messages of a chat",
	Long: `Display the messages of a chat with their feedback. Without an id the
active chat is shown. Message numbers are the ones 'rate' and 'comment' take.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		var ref string
		if len(args) > 0 {
			ref = args[0]
		}
		session, err := resolveSession(a.sessions.Snapshot(), ref)
		if err != nil {
			return err
		}

		showSession(cmd.OutOrStdout(), session, limit)
		return nil
	},
}

// showSession prints the chat header and its last n messages (all when n <= 0)
func showSession(out io.Writer, session internal.Session, n int) {
	displaySessionHeader(out, session)

	total := len(session.Messages)
	messages := session.Messages
	if n > 0 && n < total {
		messages = messages[total-n:]
	}
	offset := total - len(messages)
	for i, msg := range messages {
		displayMessage(out, offset+i+1, msg, total)
	}

	if offset > 0 {
		_, _ = fmt.Fprintln(out, lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Italic(true).
			Render(fmt.Sprintf("(%d earlier message(s) not shown)", offset)))
	}
}

func displaySessionHeader(out io.Writer, session internal.Session) {
	_, _ = fmt.Fprintln(out, sessionHeaderStyle.Render(fmt.Sprintf("💬 %s", session.Title)))

	metaParts := []string{fmt.Sprintf("ID: %s", session.ID)}
	if created := session.Created(); !created.IsZero() {
		metaParts = append(metaParts, fmt.Sprintf("Created: %s", created.Local().Format("2006-01-02 15:04")))
	}
	metaParts = append(metaParts, fmt.Sprintf("Messages: %d", len(session.Messages)))
	_, _ = fmt.Fprintln(out, sessionMetaStyle.Render(strings.Join(metaParts, " • ")))
	_, _ = fmt.Fprintln(out)
}

func displayMessage(out io.Writer, index int, msg internal.Message, total int) {
	var actorStyle lipgloss.Style
	var actorLabel string

	switch msg.Role {
	case internal.RoleUser:
		actorStyle = userMessageStyle
		actorLabel = "👤 You"
	case internal.RoleAssistant:
		actorStyle = assistantMessageStyle
		actorLabel = "🤖 Assistant"
	default:
		actorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
		actorLabel = fmt.Sprintf("🔧 %s", msg.Role)
	}

	header := actorStyle.Render(actorLabel) + " " + timestampStyle.Render(fmt.Sprintf("[%d/%d]", index, total))
	_, _ = fmt.Fprintln(out, header)

	content := strings.TrimSpace(msg.Content)
	if content != "" {
		_, _ = fmt.Fprintln(out, messageContentStyle.Render(wrapText(content, 80)))
	} else {
		_, _ = fmt.Fprintln(out, messageContentStyle.Foreground(lipgloss.Color("240")).Render("(empty message)"))
	}

	if line := formatFeedback(msg.Feedback); line != "" {
		_, _ = fmt.Fprintln(out, feedbackStyle.Render(line))
	}
	_, _ = fmt.Fprintln(out)
}

func formatFeedback(fb *internal.Feedback) string {
	if fb == nil {
		return ""
	}
	var parts []string
	switch fb.Rating {
	case internal.RatingPositive:
		parts = append(parts, "👍 positive")
	case internal.RatingNegative:
		parts = append(parts, "👎 negative")
	}
	if fb.Comments != "" {
		parts = append(parts, fmt.Sprintf("%q", fb.Comments))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Feedback: " + strings.Join(parts, " ")
}

func wrapText(text string, width int) string {
	lines := strings.Split(text, "\n")
	var wrapped []string

	for _, line := range lines {
		if len(line) <= width {
			wrapped = append(wrapped, line)
			continue
		}

		words := strings.Fields(line)
		currentLine := ""
		for _, word := range words {
			if len(currentLine)+len(word)+1 > width {
				if currentLine != "" {
					wrapped = append(wrapped, currentLine)
				}
				currentLine = word
			} else if currentLine == "" {
				currentLine = word
			} else {
				currentLine += " " + word
			}
		}
		if currentLine != "" {
			wrapped = append(wrapped, currentLine)
		}
	}

	return strings.Join(wrapped, "\n")
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the last N messages")
}
