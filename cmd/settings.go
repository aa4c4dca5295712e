package cmd

import (
	"fmt"
	"strings"

	"github.com/iksnae/uicopy/internal"
	"github.com/spf13/cobra"
)

var (
	settingsAPIKey       string
	settingsEndpoint     string
	settingsEndpointName string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the Azure OpenAI settings",
	Long: `Settings are kept in the store. Keys that were never set fall back to
AZURE_API_KEY, AZURE_ENDPOINT_URL and AZURE_ENDPOINT_NAME.`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings (the API key is masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(a *app) error {
			s, err := a.settings.Load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			show := func(label, value string) {
				if value == "" {
					value = warningStyle.Render("(not set)")
				}
				_, _ = fmt.Fprintf(out, "%-14s %s\n", label+":", value)
			}
			show("API key", s.MaskedKey())
			show("Endpoint", s.Endpoint)
			show("Deployment", s.EndpointName)
			if s.Validate() == nil {
				_, _ = fmt.Fprintf(out, "%-14s %s\n", "Requests to:", idStyle.Render(s.CompletionURL(a.env.APIVersion)))
			}
			return nil
		})
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save settings",
	Long: `Save one or more settings. Only the flags that are given change; pass an
empty value to unset a key.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("api-key") && !flags.Changed("endpoint") && !flags.Changed("endpoint-name") {
			return fmt.Errorf("nothing to set (use --api-key, --endpoint or --endpoint-name)")
		}
		return withApp(func(a *app) error {
			// only the stored values, so the environment fallback is not persisted
			stored, err := internal.NewSettingsStore(a.store, internal.Settings{}).Load()
			if err != nil {
				return err
			}
			if flags.Changed("api-key") {
				stored.APIKey = strings.TrimSpace(settingsAPIKey)
			}
			if flags.Changed("endpoint") {
				stored.Endpoint = strings.TrimSpace(settingsEndpoint)
			}
			if flags.Changed("endpoint-name") {
				stored.EndpointName = strings.TrimSpace(settingsEndpointName)
			}
			if err := a.settings.Save(stored); err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✅ Settings saved"))
			merged, err := a.settings.Load()
			if err != nil {
				return err
			}
			if missing := merged.Missing(); len(missing) > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s still missing: %s\n", warningStyle.Render("⚠️"), strings.Join(missing, ", "))
			}
			return nil
		})
	},
}

func init() {
	settingsSetCmd.Flags().StringVar(&settingsAPIKey, "api-key", "", "Azure OpenAI API key")
	settingsSetCmd.Flags().StringVar(&settingsEndpoint, "endpoint", "", "Azure OpenAI endpoint URL (https://<resource>.openai.azure.com)")
	settingsSetCmd.Flags().StringVar(&settingsEndpointName, "endpoint-name", "", "Deployment name")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}
