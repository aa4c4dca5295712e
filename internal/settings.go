package internal

import (
	"fmt"
	"strings"
)

// DefaultAPIVersion is the api-version query parameter sent to the deployment
const DefaultAPIVersion = "2023-05-15"

// Settings holds the completion service credentials
type Settings struct {
	APIKey       string
	Endpoint     string
	EndpointName string
}

// Missing lists the persisted keys that are unset
func (s Settings) Missing() []string {
	var missing []string
	if strings.TrimSpace(s.APIKey) == "" {
		missing = append(missing, KeyAPIKey)
	}
	if strings.TrimSpace(s.Endpoint) == "" {
		missing = append(missing, KeyEndpoint)
	}
	if strings.TrimSpace(s.EndpointName) == "" {
		missing = append(missing, KeyEndpointName)
	}
	return missing
}

// Validate returns a ConfigurationError when any setting is unset
func (s Settings) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return &ConfigurationError{Missing: missing}
	}
	return nil
}

// CompletionURL is the chat completions URL for the deployment
func (s Settings) CompletionURL(apiVersion string) string {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	endpoint := strings.TrimSuffix(strings.TrimSpace(s.Endpoint), "/")
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s", endpoint, s.EndpointName, apiVersion)
}

// MaskedKey hides all but the last four characters of the API key
func (s Settings) MaskedKey() string {
	if len(s.APIKey) <= 4 {
		return strings.Repeat("*", len(s.APIKey))
	}
	return strings.Repeat("*", len(s.APIKey)-4) + s.APIKey[len(s.APIKey)-4:]
}

// SettingsStore reads and writes settings in the durable store. Fallback fills
// any key the store does not hold.
type SettingsStore struct {
	store    Store
	Fallback Settings
}

// NewSettingsStore creates a SettingsStore
func NewSettingsStore(store Store, fallback Settings) *SettingsStore {
	return &SettingsStore{store: store, Fallback: fallback}
}

// Load returns the stored settings merged with the fallback
func (ss *SettingsStore) Load() (Settings, error) {
	var s Settings
	fields := []struct {
		key      string
		dst      *string
		fallback string
	}{
		{KeyAPIKey, &s.APIKey, ss.Fallback.APIKey},
		{KeyEndpoint, &s.Endpoint, ss.Fallback.Endpoint},
		{KeyEndpointName, &s.EndpointName, ss.Fallback.EndpointName},
	}
	for _, f := range fields {
		value, ok, err := ss.store.Get(f.key)
		if err != nil {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f.key, err)
		}
		if !ok || value == "" {
			value = f.fallback
		}
		*f.dst = value
	}
	return s, nil
}

// Save persists every setting, including empty ones
func (ss *SettingsStore) Save(s Settings) error {
	for key, value := range map[string]string{
		KeyAPIKey:       s.APIKey,
		KeyEndpoint:     s.Endpoint,
		KeyEndpointName: s.EndpointName,
	} {
		if err := ss.store.Set(key, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}
	return nil
}
