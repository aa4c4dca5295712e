// Package config resolves uicopy settings from the environment, optional .env
// files and the per-OS data directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIVersion     = "2023-05-15"
	defaultRequestTimeout = 60 * time.Second
	defaultStore          = "sqlite"
)

// UICopyEnv holds every environment variable uicopy reads.
type UICopyEnv struct {
	// Home is the data directory (UICOPY_HOME)
	Home string

	// Store selects the durable store, sqlite or file (UICOPY_STORE)
	Store string

	// LogFile enables the rotating JSON log (UICOPY_LOG_FILE)
	LogFile string

	// LogLevel is error, warn, info or debug (UICOPY_LOG_LEVEL)
	LogLevel string

	// APIVersion is the api-version query parameter (UICOPY_API_VERSION)
	APIVersion string

	// RequestTimeout bounds one completion call (UICOPY_REQUEST_TIMEOUT)
	RequestTimeout time.Duration

	// AzureAPIKey is used when no key was saved (AZURE_API_KEY)
	AzureAPIKey string

	// AzureEndpoint is used when no endpoint was saved (AZURE_ENDPOINT_URL)
	AzureEndpoint string

	// AzureEndpointName is used when no deployment was saved (AZURE_ENDPOINT_NAME)
	AzureEndpointName string

	// EnvFiles lists the .env files that were loaded
	EnvFiles []string
}

var (
	env     *UICopyEnv
	envOnce sync.Once
)

// Env returns the singleton environment configuration.
// .env files in the working directory and in the data directory are loaded
// first; variables already set in the process win.
func Env() *UICopyEnv {
	envOnce.Do(func() {
		var loaded []string
		loaded = append(loaded, loadEnvFile(".env")...)
		home := getEnvDefault("UICOPY_HOME", DefaultHome())
		loaded = append(loaded, loadEnvFile(filepath.Join(home, ".env"))...)

		env = &UICopyEnv{
			Home:              getEnvDefault("UICOPY_HOME", home),
			Store:             getEnvDefault("UICOPY_STORE", defaultStore),
			LogFile:           os.Getenv("UICOPY_LOG_FILE"),
			LogLevel:          os.Getenv("UICOPY_LOG_LEVEL"),
			APIVersion:        getEnvDefault("UICOPY_API_VERSION", defaultAPIVersion),
			RequestTimeout:    getEnvDuration("UICOPY_REQUEST_TIMEOUT", defaultRequestTimeout),
			AzureAPIKey:       os.Getenv("AZURE_API_KEY"),
			AzureEndpoint:     os.Getenv("AZURE_ENDPOINT_URL"),
			AzureEndpointName: os.Getenv("AZURE_ENDPOINT_NAME"),
			EnvFiles:          loaded,
		}
	})
	return env
}

// ResetEnv resets the cached environment (for testing).
func ResetEnv() {
	envOnce = sync.Once{}
	env = nil
}

func loadEnvFile(path string) []string {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return nil
	}
	return []string{path}
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvDuration accepts Go durations ("90s") or plain seconds ("90")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

// DefaultHome returns the per-OS data directory
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "uicopy")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "uicopy")
		}
		return filepath.Join(home, "AppData", "Roaming", "uicopy")
	default:
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			return filepath.Join(xdg, "uicopy")
		}
		return filepath.Join(home, ".local", "share", "uicopy")
	}
}

// StorePath is where the durable store of the given kind lives under Home.
// override, when set, is used as is.
func (e *UICopyEnv) StorePath(kind, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	switch kind {
	case "", "sqlite":
		return filepath.Join(e.Home, "uicopy.db"), nil
	case "file":
		return filepath.Join(e.Home, "store"), nil
	default:
		return "", fmt.Errorf("unsupported store: %s (supported: sqlite, file)", kind)
	}
}
