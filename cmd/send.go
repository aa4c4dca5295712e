package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/uicopy/internal"
	"github.com/spf13/cobra"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <text...>",
	Short: "Send one message to the active chat and print the reply",
	Long: `Send a message to the active chat and wait for the assistant's reply.
When no chat is active a new one is started and titled after the message.

The request carries every uploaded guideline as instructions, followed by the
full history of the chat.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			return sendMessage(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), a, strings.Join(args, " "))
		})
	},
}

func sendMessage(ctx context.Context, out, errOut io.Writer, a *app, text string) error {
	pending, err := a.orchestrator.Begin(text)
	if err != nil {
		printBanner(errOut, a.orchestrator.Banner().Message())
		return err
	}

	var reply string
	err = internal.ShowProgress(ctx, "Waiting for reply", func() error {
		var awaitErr error
		reply, awaitErr = pending.Await(ctx)
		return awaitErr
	})
	if err != nil {
		printBanner(errOut, a.orchestrator.Banner().Message())
		return err
	}

	displayReply(out, reply)
	return nil
}

func displayReply(out io.Writer, reply string) {
	_, _ = fmt.Fprintln(out, assistantMessageStyle.Render("🤖 Assistant"))
	_, _ = fmt.Fprintln(out, messageContentStyle.Render(wrapText(strings.TrimSpace(reply), 80)))
}

func printBanner(w io.Writer, message string) {
	if message == "" {
		return
	}
	_, _ = fmt.Fprintln(w, internal.RenderBanner(message))
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
