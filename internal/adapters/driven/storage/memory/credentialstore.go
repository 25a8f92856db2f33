package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
	"github.com/leadlens-labs/leadlens-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is an in-memory implementation of driven.CredentialStore.
// Credentials do not survive the process; use the sqlite store for that.
type CredentialStore struct {
	mu    sync.RWMutex
	creds map[string]domain.Credential
}

// NewCredentialStore creates a new in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		creds: make(map[string]domain.Credential),
	}
}

// Save stores or replaces the credential for its provider.
func (s *CredentialStore) Save(_ context.Context, cred domain.Credential) error {
	if cred.Provider == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if cred.ID == "" {
		cred.ID = uuid.NewString()
	}
	cred.UpdatedAt = time.Now()
	s.creds[cred.Provider] = cred
	return nil
}

// Get retrieves the credential for a provider.
func (s *CredentialStore) Get(_ context.Context, provider string) (*domain.Credential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cred, ok := s.creds[provider]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &cred, nil
}

// Delete removes the credential for a provider.
func (s *CredentialStore) Delete(_ context.Context, provider string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.creds, provider)
	return nil
}
