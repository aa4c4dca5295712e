package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/uicopy/internal"
	"github.com/spf13/cobra"
)

var (
	// Styles
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135")).
			Bold(true)
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chats",
	Long:  `List all chats, newest first. The active chat is marked with *.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		displaySessions(cmd.OutOrStdout(), a.sessions.Snapshot(), time.Now())
		return nil
	},
}

func displaySessions(out io.Writer, c internal.Collection, now time.Time) {
	if len(c.Sessions) == 0 {
		_, _ = fmt.Fprintln(out, headerStyle.Render("📋 No chats yet"))
		return
	}

	_, _ = fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("📋 %d chat(s)", len(c.Sessions))))
	_, _ = fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, " \t"+titleStyle.Render("ID")+"\t"+titleStyle.Render("Title")+"\t"+titleStyle.Render("Messages")+"\t"+titleStyle.Render("Created")+"\t")
	_, _ = fmt.Fprintln(w, strings.Repeat("─", 80))

	for _, s := range c.Sessions {
		marker := " "
		if s.ID == c.ActiveID {
			marker = activeStyle.Render("*")
		}

		title := s.Title
		if len([]rune(title)) > 50 {
			title = string([]rune(title)[:47]) + "..."
		}

		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			marker,
			idStyle.Render(shortID(s.ID)),
			title,
			countStyle.Render(strconv.Itoa(len(s.Messages))),
			dateStyle.Render(formatCreated(s.Created(), now)),
		)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, idStyle.Render("💡 Tip: Use the ID (or a unique prefix like ")+
		lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Render(shortID(c.Sessions[0].ID))+
		idStyle.Render(") with `uicopy show <id>`"))
}

func formatCreated(t, now time.Time) string {
	if t.IsZero() {
		return "—"
	}
	diff := now.Sub(t)
	switch {
	case diff < 24*time.Hour:
		return "Today " + t.Format("15:04")
	case diff < 7*24*time.Hour:
		return t.Format("Mon 15:04")
	case diff < 365*24*time.Hour:
		return t.Format("Jan 02 15:04")
	default:
		return t.Format("2006-01-02")
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
