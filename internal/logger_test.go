package internal

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetLogLevel(t *testing.T) {
	originalLevel := GetLogLevel()
	defer SetLogLevel(originalLevel)

	SetLogLevel(LogLevelDebug)
	if GetLogLevel() != LogLevelDebug {
		t.Errorf("SetLogLevel() level = %v, want LogLevelDebug", GetLogLevel())
	}
	if atom.Level() != zapcore.DebugLevel {
		t.Errorf("zap level = %v, want debug", atom.Level())
	}

	SetLogLevel(LogLevelError)
	if GetLogLevel() != LogLevelError {
		t.Errorf("SetLogLevel() level = %v, want LogLevelError", GetLogLevel())
	}
	if atom.Level() != zapcore.ErrorLevel {
		t.Errorf("zap level = %v, want error", atom.Level())
	}
}

func TestSetVerbose(t *testing.T) {
	originalLevel := GetLogLevel()
	defer SetLogLevel(originalLevel)

	SetVerbose(true)
	if GetLogLevel() != LogLevelDebug {
		t.Errorf("SetVerbose(true) level = %v, want LogLevelDebug", GetLogLevel())
	}

	SetVerbose(false)
	if GetLogLevel() != LogLevelInfo {
		t.Errorf("SetVerbose(false) level = %v, want LogLevelInfo", GetLogLevel())
	}
}

func TestLogLevelString(t *testing.T) {
	for _, level := range []LogLevel{LogLevelError, LogLevelWarn, LogLevelInfo, LogLevelDebug} {
		if got := ParseLogLevel(level.String()); got != level {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", level.String(), got, level)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   LogLevelError,
		"warn":    LogLevelWarn,
		"warning": LogLevelWarn,
		"info":    LogLevelInfo,
		"debug":   LogLevelDebug,
		"":        LogLevelInfo,
		"bogus":   LogLevelInfo,
	}
	for name, want := range tests {
		if got := ParseLogLevel(name); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestSetLogFile(t *testing.T) {
	defer SetLogFile("")

	path := filepath.Join(t.TempDir(), "uicopy.log")
	SetLogFile(path)
	LogError("written to %s", "file")
	SyncLogs()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestLogFunctions(t *testing.T) {
	LogError("test error message")
	LogWarn("test warning message")
	LogInfo("test info message")
	LogDebug("test debug message")
}
