package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// fakeConfigStore is an in-memory driven.ConfigStore.
type fakeConfigStore struct {
	data   map[string]any
	setErr error
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{data: make(map[string]any)}
}

func (s *fakeConfigStore) Get(key string) (any, bool) {
	val, ok := s.data[key]
	return val, ok
}

func (s *fakeConfigStore) GetString(key string) string {
	if val, ok := s.data[key].(string); ok {
		return val
	}
	return ""
}

func (s *fakeConfigStore) GetInt(key string) int {
	if val, ok := s.data[key].(int); ok {
		return val
	}
	return 0
}

func (s *fakeConfigStore) GetBool(key string) bool {
	if val, ok := s.data[key].(bool); ok {
		return val
	}
	return false
}

func (s *fakeConfigStore) GetStringSlice(key string) []string {
	if val, ok := s.data[key].([]string); ok {
		return val
	}
	return nil
}

func (s *fakeConfigStore) Set(key string, value any) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.data[key] = value
	return nil
}

func (s *fakeConfigStore) Save() error { return nil }
func (s *fakeConfigStore) Load() error { return nil }
func (s *fakeConfigStore) Path() string {
	return "/tmp/config.toml"
}

func TestSettingsService_Get_FromFile(t *testing.T) {
	store := newFakeConfigStore()
	store.data["api.base_url"] = "https://enrich.example.com"
	store.data["oauth.client_id"] = "client-123"
	svc := NewSettingsService(store)

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, "https://enrich.example.com", settings.API.BaseURL)
	assert.Equal(t, "client-123", settings.OAuth.ClientID)
	assert.Empty(t, settings.Storage.DataDir)
}

func TestSettingsService_Get_EnvOverridesFile(t *testing.T) {
	store := newFakeConfigStore()
	store.data["api.base_url"] = "https://file.example.com"
	t.Setenv("LEADLENS_API_URL", "https://env.example.com")
	svc := NewSettingsService(store)

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", settings.API.BaseURL)
}

func TestSettingsService_GetValue(t *testing.T) {
	store := newFakeConfigStore()
	store.data["oauth.client_id"] = "client-123"
	svc := NewSettingsService(store)

	val, err := svc.GetValue("oauth.client_id")
	require.NoError(t, err)
	assert.Equal(t, "client-123", val)

	_, err = svc.GetValue("not.a.key")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetValue(t *testing.T) {
	store := newFakeConfigStore()
	svc := NewSettingsService(store)

	require.NoError(t, svc.SetValue("api.base_url", "https://enrich.example.com"))
	assert.Equal(t, "https://enrich.example.com", store.data["api.base_url"])

	err := svc.SetValue("not.a.key", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsService_SetValue_StoreError(t *testing.T) {
	store := newFakeConfigStore()
	store.setErr = errors.New("disk full")
	svc := NewSettingsService(store)

	err := svc.SetValue("api.base_url", "https://enrich.example.com")
	assert.ErrorContains(t, err, "disk full")
}

func TestSettingsService_Keys(t *testing.T) {
	svc := NewSettingsService(newFakeConfigStore())

	assert.Equal(t, []string{
		"api.base_url",
		"oauth.client_id",
		"oauth.client_secret",
		"storage.data_dir",
	}, svc.Keys())
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		data    map[string]any
		wantErr string
	}{
		{
			name:    "missing everything",
			data:    map[string]any{},
			wantErr: "api.base_url",
		},
		{
			name:    "missing client id",
			data:    map[string]any{"api.base_url": "https://x.example.com"},
			wantErr: "oauth.client_id",
		},
		{
			name: "complete",
			data: map[string]any{
				"api.base_url":    "https://x.example.com",
				"oauth.client_id": "client-123",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeConfigStore()
			store.data = tt.data
			svc := NewSettingsService(store)

			err := svc.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
