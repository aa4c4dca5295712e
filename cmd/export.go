package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/uicopy/internal"
	"github.com/iksnae/uicopy/internal/export"
	"github.com/spf13/cobra"
)

var (
	format    string
	outputDir string
	sessionID string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export chats with their feedback",
	Long: `Export chats with their ratings and comments to json, csv, jsonl, md or yaml.
Each chat is written to its own file, chat_<id>.<ext>, in the output directory.

You can export all chats or a specific one by ID.
Use 'uicopy list' to see available chat IDs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		snapshot := a.sessions.Snapshot()
		sessions := snapshot.Sessions
		if sessionID != "" {
			s, err := resolveSession(snapshot, sessionID)
			if err != nil {
				return err
			}
			sessions = []internal.Session{s}
		}
		if len(sessions) == 0 {
			internal.PrintWarning("No chats to export")
			return nil
		}

		exported := 0
		steps := []internal.ProgressStep{
			{
				Message: "Preparing output directory",
				Fn: func() error {
					if err := os.MkdirAll(outputDir, 0755); err != nil {
						return fmt.Errorf("failed to create output directory: %w", err)
					}
					return nil
				},
			},
			{
				Message: fmt.Sprintf("Exporting %d chat(s) to %s", len(sessions), outputDir),
				Fn: func() error {
					for _, session := range sessions {
						path := filepath.Join(outputDir, fmt.Sprintf("chat_%s.%s", session.ID, exporter.Extension()))
						if err := exportSession(exporter, session, path); err != nil {
							internal.LogError("%v", err)
							if sessionID != "" {
								return err
							}
							continue
						}
						exported++
					}
					return nil
				},
			},
		}
		err = internal.ShowProgressWithSteps(cmd.Context(), steps)
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Export complete: %d chat(s) exported to %s\n", exported, outputDir)
		if exported < len(sessions) {
			return fmt.Errorf("%d chat(s) could not be exported (see log)", len(sessions)-exported)
		}
		return nil
	},
}

func exportSession(exporter export.Exporter, session internal.Session, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := exporter.Export(session, file); err != nil {
		_ = file.Close()
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	if err := file.Close(); err != nil {
		return &internal.ExportError{Format: exporter.Extension(), Path: path, Err: err}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "Export format (json, csv, jsonl, md, yaml)")
	exportCmd.Flags().StringVarP(&outputDir, "out", "o", "./exports", "Output directory")
	exportCmd.Flags().StringVar(&sessionID, "session-id", "", "Export a specific chat by ID")
}
