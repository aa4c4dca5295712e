package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/uicopy/testutil"
)

func TestExportCommand(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantFiles []string
		wantErr   bool
	}{
		{
			name:      "all chats as json by default",
			args:      []string{"export"},
			wantFiles: []string{"chat_chat-a.json", "chat_chat-b.json"},
		},
		{
			name:      "single chat as csv",
			args:      []string{"export", "--format", "csv", "--session-id", "chat-b"},
			wantFiles: []string{"chat_chat-b.csv"},
		},
		{
			name:      "markdown alias",
			args:      []string{"export", "-f", "markdown", "--session-id", "chat-a"},
			wantFiles: []string{"chat_chat-a.md"},
		},
		{
			name:    "invalid format",
			args:    []string{"export", "--format", "invalid"},
			wantErr: true,
		},
		{
			name:    "unknown chat",
			args:    []string{"export", "--session-id", "nope"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbPath := setupCmdTest(t)
			seedChats(t, dbPath)
			outDir := filepath.Join(testutil.CreateTempDir(t), "exports")

			_, _, err := runCommand(t, "", append(tt.args, "--out", outDir)...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("export error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			entries, err := os.ReadDir(outDir)
			if err != nil {
				t.Fatalf("ReadDir() error = %v", err)
			}
			var got []string
			for _, e := range entries {
				got = append(got, e.Name())
			}
			if strings.Join(got, ",") != strings.Join(tt.wantFiles, ",") {
				t.Errorf("files = %v, want %v", got, tt.wantFiles)
			}
		})
	}
}

func TestExportCommand_Content(t *testing.T) {
	dbPath := setupCmdTest(t)
	seedChats(t, dbPath)
	outDir := testutil.CreateTempDir(t)

	if _, _, err := runCommand(t, "", "export", "--session-id", "chat-b", "--out", outDir); err != nil {
		t.Fatalf("json export error = %v", err)
	}
	data, err := os.ReadFile(filepath.Join(outDir, "chat_chat-b.json"))
	if err != nil {
		t.Fatal(err)
	}
	var record struct {
		ChatID   string `json:"chatId"`
		Title    string `json:"title"`
		Messages []struct {
			Role     string                 `json:"role"`
			Feedback map[string]interface{} `json:"feedback"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if record.ChatID != "chat-b" || record.Title != "Button labels..." || len(record.Messages) != 2 {
		t.Errorf("record = %+v", record)
	}
	if record.Messages[0].Feedback != nil || record.Messages[1].Feedback["rating"] != "positive" {
		t.Errorf("feedback = %v / %v", record.Messages[0].Feedback, record.Messages[1].Feedback)
	}

	resetFlags(rootCmd)
	if _, _, err := runCommand(t, "", "export", "-f", "csv", "--session-id", "chat-b", "--out", outDir); err != nil {
		t.Fatalf("csv export error = %v", err)
	}
	data, err = os.ReadFile(filepath.Join(outDir, "chat_chat-b.csv"))
	if err != nil {
		t.Fatal(err)
	}
	want := "Message Role,Message Content,Feedback Rating,Feedback Comments,Feedback Timestamp\n" +
		"user,\"Button labels for checkout\",,\"\",\n" +
		"assistant,\"Place order\",positive,\"\",2024-03-01T12:30:00.000Z\n"
	if string(data) != want {
		t.Errorf("csv =\n%s\nwant\n%s", data, want)
	}
}
