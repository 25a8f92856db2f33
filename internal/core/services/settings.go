package services

import (
	"fmt"
	"os"
	"sort"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyAPIBaseURL        = "api.base_url"
	keyOAuthClientID     = "oauth.client_id"
	keyOAuthClientSecret = "oauth.client_secret"
	keyStorageDataDir    = "storage.data_dir"
)

// envOverrides maps config keys to the environment variables that
// take precedence over the config file.
var envOverrides = map[string]string{
	keyAPIBaseURL:        "LEADLENS_API_URL",
	keyOAuthClientID:     "LEADLENS_OAUTH_CLIENT_ID",
	keyOAuthClientSecret: "LEADLENS_OAUTH_CLIENT_SECRET",
	keyStorageDataDir:    "LEADLENS_DATA_DIR",
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := &domain.AppSettings{
		API: domain.APISettings{
			BaseURL: s.effective(keyAPIBaseURL),
		},
		OAuth: domain.OAuthSettings{
			ClientID:     s.effective(keyOAuthClientID),
			ClientSecret: s.effective(keyOAuthClientSecret),
		},
		Storage: domain.StorageSettings{
			DataDir: s.effective(keyStorageDataDir),
		},
	}

	return settings, nil
}

// GetValue returns the effective value for a known config key.
func (s *SettingsService) GetValue(key string) (string, error) {
	if _, ok := envOverrides[key]; !ok {
		return "", fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	return s.effective(key), nil
}

// SetValue writes a known config key to the config file.
func (s *SettingsService) SetValue(key, value string) error {
	if _, ok := envOverrides[key]; !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns all known config keys, sorted.
func (s *SettingsService) Keys() []string {
	keys := make([]string, 0, len(envOverrides))
	for key := range envOverrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that the settings required for enrichment are present.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is not set (config file or %s)", envOverrides[keyAPIBaseURL])
	}
	if settings.OAuth.ClientID == "" {
		return fmt.Errorf("oauth.client_id is not set (config file or %s)", envOverrides[keyOAuthClientID])
	}

	return nil
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// effective resolves a key with environment taking precedence over file.
func (s *SettingsService) effective(key string) string {
	if env := envOverrides[key]; env != "" {
		if val := os.Getenv(env); val != "" {
			return val
		}
	}
	return s.configStore.GetString(key)
}
