package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/uicopy/internal"
	"github.com/spf13/cobra"
)

var promptStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("212")).
	Bold(true)

const chatHelp = `Commands:
  /new                     start a new chat
  /list                    list chats
  /use <id>                switch to another chat
  /show [n]                show the active chat (last n messages)
  /rename <title>          rename the active chat
  /delete [id]             delete a chat (default: the active one)
  /clear                   remove every message from the active chat
  /rate <n> <+|->          rate reply n of the active chat
  /comment <n> <text>      comment on reply n of the active chat
  /guidelines              list uploaded guidelines
  /help                    show this help
  /quit                    leave (waits for pending replies)
Anything else is sent to the active chat.`

// chatCmd represents the interactive chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Start an interactive session. Lines are sent to the active chat and the
reply is printed when it arrives; you can keep working in other chats while a
reply is pending. Type /help for the list of commands.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			r := &repl{app: a, out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
			return r.run(cmd.Context(), cmd.InOrStdin())
		})
	},
}

// repl is the interactive loop. All output happens on the loop goroutine.
type repl struct {
	app    *app
	out    io.Writer
	errOut io.Writer

	results     chan internal.Result
	outstanding int
}

func (r *repl) run(ctx context.Context, in io.Reader) error {
	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
	}()

	r.results = make(chan internal.Result)
	_, _ = fmt.Fprintln(r.out, headerStyle.Render("💬 uicopy chat"))
	_, _ = fmt.Fprintln(r.out, idStyle.Render("Type /help for commands, /quit to leave."))
	r.prompt()

	quitting := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case res := <-r.results:
			r.outstanding--
			r.showResult(res)
			if quitting {
				if r.outstanding == 0 {
					printBanner(r.out, r.app.orchestrator.Banner().Message())
					return nil
				}
				continue
			}
			r.prompt()

		case line, ok := <-lines:
			if !ok || r.handle(ctx, done, line) {
				quitting = true
				lines = nil
				if r.outstanding == 0 {
					return nil
				}
				_, _ = fmt.Fprintf(r.out, "Waiting for %d pending reply(ies)...\n", r.outstanding)
				continue
			}
			r.prompt()
		}
	}
}

func (r *repl) prompt() {
	printBanner(r.out, r.app.orchestrator.Banner().Message())
	label := activeLabel(r.app.sessions)
	if active, ok := r.app.sessions.Active(); ok && r.app.orchestrator.Busy(active.ID) {
		label += " (waiting)"
	}
	_, _ = fmt.Fprint(r.out, promptStyle.Render(label+" ›")+" ")
}

// handle processes one input line and reports whether the user asked to quit
func (r *repl) handle(ctx context.Context, done <-chan struct{}, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	if !strings.HasPrefix(line, "/") {
		r.submit(ctx, done, line)
		return false
	}

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]
	rest := strings.TrimSpace(strings.TrimPrefix(line, name))

	var err error
	switch name {
	case "/quit", "/exit", "/q":
		return true
	case "/help", "/?":
		_, _ = fmt.Fprintln(r.out, chatHelp)
	case "/new":
		err = newChat(r.out, r.app)
	case "/list", "/ls":
		displaySessions(r.out, r.app.sessions.Snapshot(), time.Now())
	case "/use":
		if len(args) != 1 {
			err = fmt.Errorf("usage: /use <id>")
			break
		}
		err = useChat(r.out, r.app, args[0])
	case "/show":
		n := 0
		if len(args) > 0 {
			if _, scanErr := fmt.Sscan(args[0], &n); scanErr != nil {
				err = fmt.Errorf("usage: /show [n]")
				break
			}
		}
		var s internal.Session
		if s, err = resolveSession(r.app.sessions.Snapshot(), ""); err == nil {
			showSession(r.out, s, n)
		}
	case "/rename":
		err = renameChat(r.out, r.app, "", rest)
	case "/delete", "/rm":
		var ref string
		if len(args) > 0 {
			ref = args[0]
		}
		err = deleteChat(r.out, r.app, ref)
	case "/clear":
		err = clearChat(r.out, r.app, "")
	case "/rate":
		if len(args) != 2 {
			err = fmt.Errorf("usage: /rate <n> <positive|negative>")
			break
		}
		err = rateMessage(r.out, r.app, "", args[0], args[1])
	case "/comment":
		if len(args) < 1 {
			err = fmt.Errorf("usage: /comment <n> <text>")
			break
		}
		err = commentMessage(r.out, r.app, "", args[0], strings.TrimSpace(strings.TrimPrefix(rest, args[0])))
	case "/guidelines":
		displayGuidelines(r.out, r.app.guidelines.List())
	default:
		err = fmt.Errorf("unknown command %s (type /help)", name)
	}

	if err != nil {
		_, _ = fmt.Fprintln(r.errOut, errorStyle.Render("✗")+" "+err.Error())
	}
	return false
}

func (r *repl) submit(ctx context.Context, done <-chan struct{}, text string) {
	ch, err := r.app.orchestrator.SubmitAsync(ctx, text)
	switch {
	case err == nil:
	case errors.Is(err, internal.ErrSubmissionInFlight):
		_, _ = fmt.Fprintln(r.errOut, warningStyle.Render("⚠")+" Still waiting for a reply in this chat; switch chats with /new or /use")
		return
	case errors.Is(err, internal.ErrConfigurationMissing):
		// shown by the banner on the next prompt
		return
	default:
		_, _ = fmt.Fprintln(r.errOut, errorStyle.Render("✗")+" "+err.Error())
		return
	}

	r.outstanding++
	go func() {
		res := <-ch
		select {
		case r.results <- res:
		case <-done:
		}
	}()
}

func (r *repl) showResult(res internal.Result) {
	if res.Err != nil {
		// the orchestrator already put the failure on the banner
		return
	}
	s, ok := r.app.sessions.Session(res.SessionID)
	if !ok {
		_, _ = fmt.Fprintln(r.out, idStyle.Render("(a reply arrived for a deleted chat and was discarded)"))
		return
	}

	_, _ = fmt.Fprintln(r.out)
	if active, ok := r.app.sessions.Active(); !ok || active.ID != s.ID {
		_, _ = fmt.Fprintln(r.out, idStyle.Render(fmt.Sprintf("Reply in %s (%s):", s.Title, shortID(s.ID))))
	}
	displayReply(r.out, res.Reply)
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
