package cli

import (
	"bytes"
	"context"
	"fmt"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// fakeSession is a canned driving.SessionService.
type fakeSession struct {
	snapshot  domain.SessionSnapshot
	loginErr  error
	logoutErr error
	submitErr error
	inputs    map[domain.InputField]string
}

func newFakeSession() *fakeSession {
	return &fakeSession{inputs: make(map[domain.InputField]string)}
}

func (s *fakeSession) Login(context.Context) error {
	if s.loginErr != nil {
		s.snapshot.LastError = domain.MsgLoginFailed
		return s.loginErr
	}
	return nil
}

func (s *fakeSession) Logout(context.Context) error {
	if s.logoutErr != nil {
		s.snapshot.LastError = domain.MsgLogoutFailed
		return s.logoutErr
	}
	return nil
}

func (s *fakeSession) UpdateInput(field domain.InputField, value string) error {
	s.inputs[field] = value
	return nil
}

func (s *fakeSession) Submit(context.Context) error {
	return s.submitErr
}

func (s *fakeSession) Snapshot() domain.SessionSnapshot {
	return s.snapshot
}

func (s *fakeSession) Subscribe(driving.SessionObserver) func() {
	return func() {}
}

func (s *fakeSession) Close() {}

// fakeRequests is a canned driving.RequestService.
type fakeRequests struct {
	requests []domain.StoredRequest
	err      error
}

func (s *fakeRequests) List(context.Context) ([]domain.StoredRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.requests, nil
}

// fakeSettings is a canned driving.SettingsService.
type fakeSettings struct {
	values map[string]string
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]string)}
}

func (s *fakeSettings) Get() (*domain.AppSettings, error) {
	return &domain.AppSettings{}, nil
}

func (s *fakeSettings) GetValue(key string) (string, error) {
	val, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	return val, nil
}

func (s *fakeSettings) SetValue(key, value string) error {
	if _, ok := s.values[key]; !ok {
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
	s.values[key] = value
	return nil
}

func (s *fakeSettings) Keys() []string {
	return []string{"api.base_url", "oauth.client_id", "oauth.client_secret", "storage.data_dir"}
}

func (s *fakeSettings) Validate() error { return nil }
func (s *fakeSettings) Path() string    { return "/tmp/config.toml" }

// setupTestServices installs fakes and returns them plus a cleanup func.
func setupTestServices() (*fakeSession, *fakeRequests, *fakeSettings, func()) {
	session := newFakeSession()
	requests := &fakeRequests{}
	settings := newFakeSettings()
	settings.values["api.base_url"] = ""
	settings.values["oauth.client_id"] = ""
	settings.values["oauth.client_secret"] = ""
	settings.values["storage.data_dir"] = ""

	SetServices(session, requests, settings)
	return session, requests, settings, func() {
		SetServices(nil, nil, nil)
	}
}

// execute runs the root command with args and captures output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
