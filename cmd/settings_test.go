package cmd

import (
	"strings"
	"testing"

	"github.com/iksnae/uicopy/internal"
	"github.com/iksnae/uicopy/testutil"
)

func TestSettingsCommands(t *testing.T) {
	dbPath := setupCmdTest(t)

	stdout, _, err := runCommand(t, "", "settings", "show")
	if err != nil {
		t.Fatalf("settings show error = %v", err)
	}
	if strings.Count(stdout, "(not set)") != 3 {
		t.Errorf("expected three unset values:\n%s", stdout)
	}

	if _, _, err := runCommand(t, "", "settings", "set"); err == nil {
		t.Error("settings set without flags should fail")
	}

	stdout, _, err = runCommand(t, "", "settings", "set", "--api-key", "secret-1234", "--endpoint", "https://example.openai.azure.com/")
	if err != nil {
		t.Fatalf("settings set error = %v", err)
	}
	if !strings.Contains(stdout, "still missing: "+internal.KeyEndpointName) {
		t.Errorf("missing deployment not reported:\n%s", stdout)
	}

	resetFlags(rootCmd)
	if _, _, err := runCommand(t, "", "settings", "set", "--endpoint-name", "copy"); err != nil {
		t.Fatalf("settings set error = %v", err)
	}
	if got := testutil.ReadKV(t, dbPath, internal.KeyAPIKey); got != "secret-1234" {
		t.Errorf("api key = %q, should survive a partial update", got)
	}

	stdout, _, err = runCommand(t, "", "settings", "show")
	if err != nil {
		t.Fatalf("settings show error = %v", err)
	}
	if strings.Contains(stdout, "secret-1234") || !strings.Contains(stdout, "*******1234") {
		t.Errorf("api key should be masked:\n%s", stdout)
	}
	if !strings.Contains(stdout, "https://example.openai.azure.com/openai/deployments/copy/chat/completions?api-version=2023-05-15") {
		t.Errorf("completion URL not shown:\n%s", stdout)
	}
}

func TestSettingsSet_DoesNotPersistEnvironment(t *testing.T) {
	dbPath := setupCmdTest(t)
	t.Setenv("AZURE_API_KEY", "from-env")
	t.Setenv("AZURE_ENDPOINT_URL", "https://env.example.com")

	if _, _, err := runCommand(t, "", "settings", "set", "--endpoint-name", "copy"); err != nil {
		t.Fatalf("settings set error = %v", err)
	}
	if got := testutil.ReadKV(t, dbPath, internal.KeyAPIKey); got != "" {
		t.Errorf("stored api key = %q, want empty", got)
	}
	if got := testutil.ReadKV(t, dbPath, internal.KeyEndpointName); got != "copy" {
		t.Errorf("stored endpoint name = %q, want copy", got)
	}
}
