package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/uicopy/internal"
	"github.com/iksnae/uicopy/internal/config"
	"github.com/iksnae/uicopy/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var envVars = []string{
	"UICOPY_STORE",
	"UICOPY_LOG_FILE",
	"UICOPY_LOG_LEVEL",
	"UICOPY_API_VERSION",
	"UICOPY_REQUEST_TIMEOUT",
	"AZURE_API_KEY",
	"AZURE_ENDPOINT_URL",
	"AZURE_ENDPOINT_NAME",
}

// setupCmdTest points the CLI at a fresh data directory and resets every flag.
// It returns the path of the SQLite store.
func setupCmdTest(t *testing.T) string {
	t.Helper()
	home := testutil.CreateTempDir(t)
	t.Setenv("UICOPY_HOME", home)
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	config.ResetEnv()
	t.Cleanup(config.ResetEnv)

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	return filepath.Join(home, "uicopy.db")
}

// resetFlags restores flag defaults between Execute calls, which share state
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// withCompletionServer configures the deployment to be srv
func withCompletionServer(t *testing.T, srv *testutil.CompletionServer) {
	t.Helper()
	t.Setenv("AZURE_API_KEY", "test-key")
	t.Setenv("AZURE_ENDPOINT_URL", srv.URL)
	t.Setenv("AZURE_ENDPOINT_NAME", "copy-writer")
	config.ResetEnv()
}

// runCommand executes the CLI with args and returns what it printed
func runCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// loadCollection reads the persisted chats the way the next command would
func loadCollection(t *testing.T) internal.Collection {
	t.Helper()
	a, err := openApp()
	if err != nil {
		t.Fatalf("openApp() error = %v", err)
	}
	defer a.Close()
	return a.sessions.Snapshot()
}
