package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/iksnae/uicopy/internal"
	"github.com/iksnae/uicopy/internal/config"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	storagePath string
	storeKind   string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "uicopy",
	Short: "Draft and refine UI copy with an Azure OpenAI deployment",
	Long: `A terminal chat client for writing UI text against your own style guidelines.

Conversations are kept in independent chats stored on this machine. Every
request carries the uploaded guideline documents as instructions, and every
reply can be rated and commented on for later export.

Quick Start:
  uicopy settings set --api-key KEY --endpoint URL --endpoint-name DEPLOYMENT
  uicopy guidelines add voice.md terms.txt
  uicopy chat                            # Interactive session
  uicopy send "Label for a save button"  # One-shot message
  uicopy export --format csv             # Export feedback`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(config.Env())
	},
}

func setupLogging(env *config.UICopyEnv) {
	if env.LogLevel != "" {
		internal.SetLogLevel(internal.ParseLogLevel(env.LogLevel))
	}
	if verbose {
		internal.SetVerbose(true)
	}
	internal.SetLogFile(env.LogFile)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	defer internal.SyncLogs()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		internal.SyncLogs()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storagePath, "storage", "", "Custom storage location (path to database file or store directory)")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "", "Store backend: sqlite or file (default from UICOPY_STORE)")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
