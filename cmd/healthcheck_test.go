package cmd

import (
	"net/http"
	"strings"
	"testing"

	"github.com/iksnae/uicopy/testutil"
)

func TestHealthcheckCommand(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dbPath string)
		args  []string
		want  []string
	}{
		{
			name: "fresh store without settings",
			args: []string{"healthcheck"},
			want: []string{"Store opened", "Found 1 chat(s) with 0 message(s)", "No guidelines uploaded", "Missing settings: apiKey, endpoint, endpointName"},
		},
		{
			name: "seeded and configured",
			setup: func(t *testing.T, dbPath string) {
				seedChats(t, dbPath)
				withCompletionServer(t, testutil.NewCompletionServer(t, http.StatusOK, testutil.CompletionReply("ok")))
			},
			args: []string{"healthcheck", "--details"},
			want: []string{"Found 2 chat(s) with 2 message(s)", "Found 2 guideline(s)", "Settings complete", "Health check passed!", "(ID: chat-b)", "Log level: info"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := setupCmdTest(t)
			if tt.setup != nil {
				tt.setup(t, dbPath)
			}
			stdout, _, err := runCommand(t, "", tt.args...)
			if err != nil {
				t.Fatalf("healthcheck error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout, want) {
					t.Errorf("output missing %q:\n%s", want, stdout)
				}
			}
		})
	}
}

func TestHealthcheckCommand_CorruptChats(t *testing.T) {
	dbPath := setupCmdTest(t)
	testutil.CreateKVFixture(t, dbPath, map[string]string{"chats": "{not json"})

	if _, _, err := runCommand(t, "", "healthcheck"); err == nil {
		t.Error("healthcheck should fail on an unreadable chats record")
	}
}
