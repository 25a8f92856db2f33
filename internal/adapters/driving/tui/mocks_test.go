package tui

import (
	"context"
	"sync"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driving"
)

// MockSessionService is a canned driving.SessionService for tests.
type MockSessionService struct {
	mu        sync.Mutex
	snapshot  domain.SessionSnapshot
	observers []driving.SessionObserver
	inputs    map[domain.InputField]string

	LoginFunc  func(ctx context.Context) error
	LogoutFunc func(ctx context.Context) error
	SubmitFunc func(ctx context.Context) error
}

func NewMockSessionService() *MockSessionService {
	return &MockSessionService{inputs: make(map[domain.InputField]string)}
}

func (m *MockSessionService) Login(ctx context.Context) error {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx)
	}
	return nil
}

func (m *MockSessionService) Logout(ctx context.Context) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockSessionService) UpdateInput(field domain.InputField, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs[field] = value
	return nil
}

func (m *MockSessionService) Submit(ctx context.Context) error {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx)
	}
	return nil
}

func (m *MockSessionService) Snapshot() domain.SessionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot
}

func (m *MockSessionService) Subscribe(observer driving.SessionObserver) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, observer)
	return func() {}
}

func (m *MockSessionService) Close() {}

// Push delivers a snapshot to all registered observers.
func (m *MockSessionService) Push(snap domain.SessionSnapshot) {
	m.mu.Lock()
	m.snapshot = snap
	observers := make([]driving.SessionObserver, len(m.observers))
	copy(observers, m.observers)
	m.mu.Unlock()

	for _, obs := range observers {
		obs(snap)
	}
}

// MockRequestService is a canned driving.RequestService for tests.
type MockRequestService struct {
	Requests []domain.StoredRequest
	Err      error
}

func (m *MockRequestService) List(context.Context) ([]domain.StoredRequest, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Requests, nil
}
