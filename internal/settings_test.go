package internal

import (
	"errors"
	"reflect"
	"testing"
)

func TestSettings_Missing(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		want     []string
	}{
		{"complete", Settings{"k", "https://x", "d"}, nil},
		{"empty", Settings{}, []string{KeyAPIKey, KeyEndpoint, KeyEndpointName}},
		{"whitespace only", Settings{"k", "  ", "d"}, []string{KeyEndpoint}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.Missing(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Missing() = %v, want %v", got, tt.want)
			}
			err := tt.settings.Validate()
			if (err != nil) != (tt.want != nil) {
				t.Errorf("Validate() = %v", err)
			}
			if err != nil && !errors.Is(err, ErrConfigurationMissing) {
				t.Errorf("Validate() error %v should match ErrConfigurationMissing", err)
			}
		})
	}
}

func TestSettings_CompletionURL(t *testing.T) {
	tests := []struct {
		endpoint   string
		apiVersion string
		want       string
	}{
		{"https://res.openai.azure.com/", "", "https://res.openai.azure.com/openai/deployments/gpt/chat/completions?api-version=2023-05-15"},
		{"https://res.openai.azure.com", "2024-02-01", "https://res.openai.azure.com/openai/deployments/gpt/chat/completions?api-version=2024-02-01"},
		{" https://res.openai.azure.com/ ", "", "https://res.openai.azure.com/openai/deployments/gpt/chat/completions?api-version=2023-05-15"},
	}
	for _, tt := range tests {
		s := Settings{APIKey: "k", Endpoint: tt.endpoint, EndpointName: "gpt"}
		if got := s.CompletionURL(tt.apiVersion); got != tt.want {
			t.Errorf("CompletionURL(%q) = %q, want %q", tt.apiVersion, got, tt.want)
		}
	}
}

func TestSettings_MaskedKey(t *testing.T) {
	tests := map[string]string{
		"":             "",
		"abc":          "***",
		"abcdef123456": "********3456",
	}
	for key, want := range tests {
		if got := (Settings{APIKey: key}).MaskedKey(); got != want {
			t.Errorf("MaskedKey(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestSettingsStore(t *testing.T) {
	store, path := newTestStore(t)
	ss := NewSettingsStore(store, Settings{APIKey: "env-key", Endpoint: "https://env", EndpointName: "env-dep"})

	got, err := ss.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != ss.Fallback {
		t.Errorf("Load() with nothing stored = %+v, want fallback", got)
	}

	if err := ss.Save(Settings{APIKey: "stored-key", Endpoint: "https://stored"}); err != nil {
		t.Fatal(err)
	}

	reloaded := NewSettingsStore(reopenStore(t, path), ss.Fallback)
	got, err = reloaded.Load()
	if err != nil {
		t.Fatal(err)
	}
	want := Settings{APIKey: "stored-key", Endpoint: "https://stored", EndpointName: "env-dep"}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}
