package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/uicopy/internal"
	"github.com/iksnae/uicopy/internal/config"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that uicopy can open its store and reach a configured deployment",
	Long: `Check the health of uicopy by verifying:
  • Data directory and store location
  • Store accessibility
  • Chats and guidelines can be decoded
  • Azure OpenAI settings are complete

This command is useful for debugging storage and configuration issues.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		line := func(a ...interface{}) { _, _ = fmt.Fprintln(out, a...) }
		detail := func(format string, a ...interface{}) {
			if healthcheckVerbose {
				_, _ = fmt.Fprintf(out, "   "+format+"\n", a...)
			}
		}

		line(sectionStyle.Render("🔍 uicopy Health Check"))
		line()

		// Step 1: Resolve paths
		line(infoStyle.Render("Step 1: Resolving store location..."))
		env := config.Env()
		kind := storeKind
		if kind == "" {
			kind = env.Store
		}
		path, err := env.StorePath(kind, storagePath)
		if err != nil {
			line(errorStyle.Render("❌ Failed to resolve store location:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		line(successStyle.Render("✅ Store location resolved"))
		detail("Home: %s", env.Home)
		detail("Backend: %s", kind)
		detail("Path: %s", path)
		detail("Log level: %s", internal.GetLogLevel())
		for _, f := range env.EnvFiles {
			detail("Loaded: %s", f)
		}
		line()

		// Step 2: Open store
		line(infoStyle.Render("Step 2: Opening store..."))
		store, err := internal.OpenStore(kind, path)
		if err != nil {
			line(errorStyle.Render("❌ Failed to open store"))
			line()
			line("Error details:")
			line(err)
			return fmt.Errorf("health check failed: %w", err)
		}
		defer store.Close()
		line(successStyle.Render("✅ Store opened"))
		if keys, err := store.Keys(); err == nil {
			detail("Keys: %s", strings.Join(keys, ", "))
		}
		line()

		// Step 3: Load chats
		line(infoStyle.Render("Step 3: Loading chats..."))
		sessions, err := internal.LoadSessionRepository(store)
		if err != nil {
			line(errorStyle.Render("❌ Failed to load chats:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		snapshot := sessions.Snapshot()
		messages := 0
		for _, s := range snapshot.Sessions {
			messages += len(s.Messages)
		}
		if len(snapshot.Sessions) > 0 {
			line(successStyle.Render(fmt.Sprintf("✅ Found %d chat(s) with %d message(s)", len(snapshot.Sessions), messages)))
			for i, s := range snapshot.Sessions {
				if i < 5 {
					detail("[%d] %s (ID: %s)", i+1, s.Title, shortID(s.ID))
				}
			}
			if len(snapshot.Sessions) > 5 {
				detail("... and %d more", len(snapshot.Sessions)-5)
			}
		} else {
			line(warningStyle.Render("⚠️  No chats yet"))
		}
		line()

		// Step 4: Load guidelines
		line(infoStyle.Render("Step 4: Loading guidelines..."))
		guidelines, err := internal.LoadGuidelineStore(store)
		if err != nil {
			line(errorStyle.Render("❌ Failed to load guidelines:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		if n := len(guidelines.List()); n > 0 {
			line(successStyle.Render(fmt.Sprintf("✅ Found %d guideline(s)", n)))
		} else {
			line(warningStyle.Render("⚠️  No guidelines uploaded"))
		}
		line()

		// Step 5: Settings
		line(infoStyle.Render("Step 5: Checking Azure OpenAI settings..."))
		settings, err := internal.NewSettingsStore(store, internal.Settings{
			APIKey:       env.AzureAPIKey,
			Endpoint:     env.AzureEndpoint,
			EndpointName: env.AzureEndpointName,
		}).Load()
		if err != nil {
			line(errorStyle.Render("❌ Failed to load settings:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		missing := settings.Missing()
		if len(missing) == 0 {
			line(successStyle.Render("✅ Settings complete"))
			detail("Requests to: %s", settings.CompletionURL(env.APIVersion))
		} else {
			line(warningStyle.Render("⚠️  Missing settings: " + strings.Join(missing, ", ")))
			detail("Use 'uicopy settings set' or the AZURE_* environment variables")
		}
		line()

		// Summary
		line(sectionStyle.Render("📊 Summary"))
		line()
		if len(missing) == 0 {
			line(successStyle.Render("✅ Health check passed!"))
		} else {
			line(warningStyle.Render("⚠️  Store is working but messages cannot be sent until settings are complete"))
		}
		line(fmt.Sprintf("   • Store: %s (%s)", kind, store.Location()))
		line(fmt.Sprintf("   • Chats: %d", len(snapshot.Sessions)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show detailed diagnostic information")
}
