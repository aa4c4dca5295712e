package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/uicopy/internal"
	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:   "rate <chat-id> <message> <positive|negative>",
	Short: "Rate an assistant reply",
	Long: `Rate an assistant reply. Messages are numbered as in 'uicopy show'.
Rating a reply with the rating it already has clears it.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return rateMessage(cmd.OutOrStdout(), a, args[0], args[1], args[2])
		})
	},
}

var commentCmd = &cobra.Command{
	Use:   "comment <chat-id> <message> <text...>",
	Short: "Comment on an assistant reply",
	Long:  `Replace the comments on an assistant reply. An empty text removes them.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return commentMessage(cmd.OutOrStdout(), a, args[0], args[1], strings.Join(args[2:], " "))
		})
	},
}

func rateMessage(out io.Writer, a *app, ref, number, ratingArg string) error {
	rating, ok := internal.ParseRating(strings.ToLower(ratingArg))
	if !ok || rating == internal.RatingNone {
		return fmt.Errorf("invalid rating %q (use positive or negative)", ratingArg)
	}
	s, err := resolveSession(a.sessions.Snapshot(), ref)
	if err != nil {
		return err
	}
	index, err := parseMessageIndex(number)
	if err != nil {
		return err
	}
	if err := a.feedback.Rate(s.ID, index, rating); err != nil {
		return err
	}

	updated, _ := a.sessions.Session(s.ID)
	if fb := updated.Messages[index].Feedback; fb == nil || fb.Rating == internal.RatingNone {
		_, _ = fmt.Fprintf(out, "Cleared rating on message %d\n", index+1)
	} else {
		_, _ = fmt.Fprintf(out, "Rated message %d %s\n", index+1, fb.Rating)
	}
	return nil
}

func commentMessage(out io.Writer, a *app, ref, number, text string) error {
	s, err := resolveSession(a.sessions.Snapshot(), ref)
	if err != nil {
		return err
	}
	index, err := parseMessageIndex(number)
	if err != nil {
		return err
	}
	if err := a.feedback.Comment(s.ID, index, text); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Saved comment on message %d\n", index+1)
	return nil
}

func init() {
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(commentCmd)
}
