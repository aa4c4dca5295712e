package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/iksnae/uicopy/internal"
	"github.com/spf13/cobra"
)

var guidelinesCmd = &cobra.Command{
	Use:     "guidelines",
	Aliases: []string{"guideline", "gl"},
	Short:   "Manage the style guidelines sent with every request",
	Long: `Guidelines are text documents (voice and tone, terminology, ...) that are
sent as instructions with every message, in upload order.`,
}

var guidelinesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded guidelines",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			displayGuidelines(cmd.OutOrStdout(), a.guidelines.List())
			return nil
		})
	},
}

var guidelinesAddCmd = &cobra.Command{
	Use:   "add <file...>",
	Short: "Upload guideline files",
	Long: `Read the files and append them to the guidelines. If any file cannot be
read nothing is added.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			a.guidelines.Select(args...)

			var added int
			err := internal.ShowProgress(cmd.Context(), fmt.Sprintf("Reading %d file(s)", len(args)), func() error {
				var uploadErr error
				added, uploadErr = a.guidelines.Upload(cmd.Context())
				return uploadErr
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added %d guideline(s), %d in total\n", added, len(a.guidelines.List()))
			return nil
		})
	},
}

var guidelinesRemoveCmd = &cobra.Command{
	Use:     "remove <number>",
	Aliases: []string{"rm"},
	Short:   "Remove a guideline by the number shown in 'guidelines list'",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := parseMessageIndex(args[0])
		if err != nil {
			return fmt.Errorf("invalid guideline number %q", args[0])
		}
		return withApp(func(a *app) error {
			list := a.guidelines.List()
			if index >= len(list) {
				return fmt.Errorf("no guideline %d (%d uploaded)", index+1, len(list))
			}
			if err := a.guidelines.Remove(index); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", list[index].Name)
			return nil
		})
	},
}

func displayGuidelines(out io.Writer, guidelines []internal.Guideline) {
	if len(guidelines) == 0 {
		_, _ = fmt.Fprintln(out, "No guidelines uploaded (use 'uicopy guidelines add <file...>')")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(w, titleStyle.Render("#")+"\t"+titleStyle.Render("Name")+"\t"+titleStyle.Render("Size")+"\t"+titleStyle.Render("Preview")+"\t")
	for i, g := range guidelines {
		preview := strings.Join(strings.Fields(g.Content), " ")
		if len([]rune(preview)) > 40 {
			preview = string([]rune(preview)[:37]) + "..."
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n", i+1, g.Name, countStyle.Render(fmt.Sprintf("%d chars", len([]rune(g.Content)))), dateStyle.Render(preview))
	}
	_ = w.Flush()
}

func init() {
	guidelinesCmd.AddCommand(guidelinesListCmd)
	guidelinesCmd.AddCommand(guidelinesAddCmd)
	guidelinesCmd.AddCommand(guidelinesRemoveCmd)
	rootCmd.AddCommand(guidelinesCmd)
}
