package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
		want    string
	}{
		{
			name: "version flag",
			args: []string{"--version"},
			want: "dev",
		},
		{
			name: "help flag",
			args: []string{"--help"},
			want: "uicopy chat",
		},
		{
			name:    "unknown command",
			args:    []string{"nonexistent-command"},
			wantErr: true,
		},
		{
			name:    "unsupported store",
			args:    []string{"--store", "postgres", "list"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCmdTest(t)
			stdout, _, err := runCommand(t, "", tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.want != "" && !strings.Contains(stdout, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, stdout)
			}
		})
	}
}

func TestRootCommand_VerboseFlag(t *testing.T) {
	setupCmdTest(t)
	if _, _, err := runCommand(t, "", "--verbose", "list"); err != nil {
		t.Fatalf("list --verbose error = %v", err)
	}
	if !verbose {
		t.Error("--verbose was not parsed")
	}
}

func TestFileStoreBackend(t *testing.T) {
	setupCmdTest(t)
	t.Setenv("UICOPY_STORE", "file")

	if _, _, err := runCommand(t, "", "new"); err != nil {
		t.Fatalf("new error = %v", err)
	}
	c := loadCollection(t)
	if len(c.Sessions) != 2 {
		t.Fatalf("got %d chats, want 2 (default chat + new)", len(c.Sessions))
	}
	if c.ActiveID != c.Sessions[0].ID {
		t.Errorf("active = %q, want the newest chat %q", c.ActiveID, c.Sessions[0].ID)
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("UICOPY_HOME"), "store", "index.yaml")); err != nil {
		t.Errorf("file store index not written: %v", err)
	}
}

func TestParseMessageIndex(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{arg: "1", want: 0},
		{arg: "12", want: 11},
		{arg: "0", wantErr: true},
		{arg: "-2", wantErr: true},
		{arg: "3abc", wantErr: true},
		{arg: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseMessageIndex(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMessageIndex(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseMessageIndex(%q) = %d, want %d", tt.arg, got, tt.want)
		}
	}
}
