package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/uicopy/internal"
	"github.com/spf13/cobra"
)

// withApp opens the store for the duration of fn
func withApp(fn func(a *app) error) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new empty chat and make it active",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return newChat(cmd.OutOrStdout(), a)
		})
	},
}

var useCmd = &cobra.Command{
	Use:   "use <chat-id>",
	Short: "Make a chat the active one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return useChat(cmd.OutOrStdout(), a, args[0])
		})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <chat-id> <title...>",
	Short: "Rename a chat",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return renameChat(cmd.OutOrStdout(), a, args[0], strings.Join(args[1:], " "))
		})
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete <chat-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a chat",
	Long: `Delete a chat and all of its messages. When the active chat is deleted the
newest remaining chat becomes active.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return deleteChat(cmd.OutOrStdout(), a, args[0])
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear [chat-id]",
	Short: "Remove every message from a chat",
	Long:  `Remove every message from a chat, keeping its title. Without an id the active chat is cleared.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ref string
		if len(args) > 0 {
			ref = args[0]
		}
		return withApp(func(a *app) error {
			return clearChat(cmd.OutOrStdout(), a, ref)
		})
	},
}

func newChat(out io.Writer, a *app) error {
	id, err := a.sessions.CreateSession()
	if err != nil {
		return err
	}
	s, _ := a.sessions.Session(id)
	_, _ = fmt.Fprintf(out, "Created %s %s\n", titleStyle.Render(s.Title), idStyle.Render("("+shortID(id)+")"))
	return nil
}

func useChat(out io.Writer, a *app, ref string) error {
	s, err := resolveSession(a.sessions.Snapshot(), ref)
	if err != nil {
		return err
	}
	if err := a.sessions.SelectSession(s.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Active chat: %s %s\n", titleStyle.Render(s.Title), idStyle.Render("("+shortID(s.ID)+")"))
	return nil
}

func renameChat(out io.Writer, a *app, ref, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	s, err := resolveSession(a.sessions.Snapshot(), ref)
	if err != nil {
		return err
	}
	if err := a.sessions.RenameSession(s.ID, title); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Renamed %s to %s\n", idStyle.Render(shortID(s.ID)), titleStyle.Render(title))
	return nil
}

func deleteChat(out io.Writer, a *app, ref string) error {
	s, err := resolveSession(a.sessions.Snapshot(), ref)
	if err != nil {
		return err
	}
	if err := a.sessions.DeleteSession(s.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Deleted %s %s\n", titleStyle.Render(s.Title), idStyle.Render("("+shortID(s.ID)+")"))
	if active, ok := a.sessions.Active(); ok {
		_, _ = fmt.Fprintf(out, "Active chat: %s %s\n", titleStyle.Render(active.Title), idStyle.Render("("+shortID(active.ID)+")"))
	}
	return nil
}

func clearChat(out io.Writer, a *app, ref string) error {
	s, err := resolveSession(a.sessions.Snapshot(), ref)
	if err != nil {
		return err
	}
	if err := a.sessions.ClearMessages(s.ID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Cleared %d message(s) from %s\n", len(s.Messages), titleStyle.Render(s.Title))
	return nil
}

// activeLabel describes the active chat for prompts
func activeLabel(sessions *internal.SessionRepository) string {
	if s, ok := sessions.Active(); ok {
		return s.Title
	}
	return "no chat"
}

func init() {
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(useCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
}
