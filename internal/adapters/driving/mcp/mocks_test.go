package mcp

import (
	"context"
	"sync"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// mockSessionService is a mock implementation of driving.SessionService.
type mockSessionService struct {
	mu        sync.Mutex
	snapshot  domain.SessionSnapshot
	inputs    map[domain.InputField]string
	submitErr error
	inputErr  error
}

func newMockSessionService() *mockSessionService {
	return &mockSessionService{inputs: make(map[domain.InputField]string)}
}

func (m *mockSessionService) Login(_ context.Context) error  { return nil }
func (m *mockSessionService) Logout(_ context.Context) error { return nil }

func (m *mockSessionService) UpdateInput(field domain.InputField, value string) error {
	if m.inputErr != nil {
		return m.inputErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs[field] = value
	return nil
}

func (m *mockSessionService) Submit(_ context.Context) error {
	return m.submitErr
}

func (m *mockSessionService) Snapshot() domain.SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

func (m *mockSessionService) Subscribe(_ driving.SessionObserver) func() {
	return func() {}
}

func (m *mockSessionService) Close() {}

// mockRequestService is a mock implementation of driving.RequestService.
type mockRequestService struct {
	requests []domain.StoredRequest
	err      error
}

func (m *mockRequestService) List(_ context.Context) ([]domain.StoredRequest, error) {
	return m.requests, m.err
}
